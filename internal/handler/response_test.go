package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/jwalitptl/patient-api/pkg/errors"
)

func TestStatusForKind(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, statusForKind(apperrors.KindValidation))
	assert.Equal(t, http.StatusNotFound, statusForKind(apperrors.KindPatientNotFound))
	assert.Equal(t, http.StatusNotFound, statusForKind(apperrors.KindProviderNotFound))
	assert.Equal(t, http.StatusConflict, statusForKind(apperrors.KindDuplicateNationalID))
	assert.Equal(t, http.StatusConflict, statusForKind(apperrors.KindDuplicateEmail))
	assert.Equal(t, http.StatusConflict, statusForKind(apperrors.KindDuplicatePolicy))
	assert.Equal(t, http.StatusConflict, statusForKind(apperrors.KindDuplicateProviderCode))
	assert.Equal(t, http.StatusConflict, statusForKind(apperrors.KindProviderInUse))
	assert.Equal(t, http.StatusInternalServerError, statusForKind(apperrors.KindInternal))
}

func respond(t *testing.T, err error) (*httptest.ResponseRecorder, Response) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/test", nil)

	RespondError(c, err)

	var resp Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return w, resp
}

func TestRespondErrorValidation(t *testing.T) {
	w, resp := respond(t, apperrors.NewValidation("phone", "phone must contain only digits"))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "error", resp.Status)
	assert.Equal(t, "phone", resp.Field)
	assert.Equal(t, "phone must contain only digits", resp.Message)
}

func TestRespondErrorNotFound(t *testing.T) {
	id := uuid.New()
	w, resp := respond(t, apperrors.NewPatientNotFound(id))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, resp.Message, id.String())
}

func TestRespondErrorWrapped(t *testing.T) {
	wrapped := fmt.Errorf("register: %w", apperrors.NewDuplicateEmail("a@b.com"))
	w, resp := respond(t, wrapped)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "email", resp.Field)
}

func TestRespondErrorMasksInternals(t *testing.T) {
	w, resp := respond(t, fmt.Errorf("pq: connection refused"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "internal error", resp.Message)
}
