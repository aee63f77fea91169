package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	apperrors "github.com/jwalitptl/patient-api/pkg/errors"
)

type Response struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Field   string      `json:"field,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func NewSuccessResponse(data interface{}) *Response {
	return &Response{
		Status: "success",
		Data:   data,
	}
}

func NewErrorResponse(message string) *Response {
	return &Response{
		Status:  "error",
		Message: message,
	}
}

// statusForKind owns the error-kind to wire-status mapping. Services
// never see HTTP codes.
func statusForKind(kind apperrors.Kind) int {
	switch kind {
	case apperrors.KindValidation:
		return http.StatusBadRequest
	case apperrors.KindPatientNotFound, apperrors.KindProviderNotFound:
		return http.StatusNotFound
	case apperrors.KindDuplicateNationalID, apperrors.KindDuplicateEmail,
		apperrors.KindDuplicatePolicy, apperrors.KindDuplicateProviderCode,
		apperrors.KindProviderInUse:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// RespondError translates a service error into the response envelope.
func RespondError(c *gin.Context, err error) {
	kind := apperrors.KindOf(err)
	status := statusForKind(kind)

	resp := NewErrorResponse(err.Error())
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		resp.Field = appErr.Field
		resp.Message = appErr.Message
	}
	if status == http.StatusInternalServerError {
		log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("request failed")
		resp.Message = "internal error"
	}

	c.JSON(status, resp)
}
