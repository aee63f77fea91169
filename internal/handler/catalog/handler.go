package catalog

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/patient-api/internal/handler"
	"github.com/jwalitptl/patient-api/internal/model"
	"github.com/jwalitptl/patient-api/internal/service/catalog"
)

type Handler struct {
	service *catalog.Service
}

func NewHandler(service *catalog.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/catalogs/:kind", h.ListCatalog)
}

func (h *Handler) ListCatalog(c *gin.Context) {
	kind := model.CatalogKind(c.Param("kind"))
	if !kind.Valid() {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("unknown catalog kind"))
		return
	}

	entries, err := h.service.List(c.Request.Context(), kind)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(entries))
}
