package patient

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/patient-api/internal/model"
	apperrors "github.com/jwalitptl/patient-api/pkg/errors"
	"github.com/jwalitptl/patient-api/pkg/metrics"
)

var testMetrics = metrics.NewMetrics("patient_api", "handler_test")

type mockService struct {
	registerFn          func(ctx context.Context, req *model.RegisterPatientRequest) (*model.Patient, error)
	getFn               func(ctx context.Context, id uuid.UUID) (*model.Patient, error)
	getByNationalIDFn   func(ctx context.Context, nationalID string) (*model.Patient, error)
	updateFn            func(ctx context.Context, id uuid.UUID, req *model.UpdatePatientRequest) (*model.Patient, error)
	deactivateFn        func(ctx context.Context, id uuid.UUID) error
	addContactFn        func(ctx context.Context, patientID uuid.UUID, req *model.AddEmergencyContactRequest) (*model.EmergencyContact, error)
	listContactsFn      func(ctx context.Context, patientID uuid.UUID) ([]*model.EmergencyContact, error)
}

func (m *mockService) RegisterPatient(ctx context.Context, req *model.RegisterPatientRequest) (*model.Patient, error) {
	return m.registerFn(ctx, req)
}

func (m *mockService) GetPatient(ctx context.Context, id uuid.UUID) (*model.Patient, error) {
	return m.getFn(ctx, id)
}

func (m *mockService) GetPatientByNationalID(ctx context.Context, nationalID string) (*model.Patient, error) {
	return m.getByNationalIDFn(ctx, nationalID)
}

func (m *mockService) UpdatePatient(ctx context.Context, id uuid.UUID, req *model.UpdatePatientRequest) (*model.Patient, error) {
	return m.updateFn(ctx, id, req)
}

func (m *mockService) DeactivatePatient(ctx context.Context, id uuid.UUID) error {
	return m.deactivateFn(ctx, id)
}

func (m *mockService) AddEmergencyContact(ctx context.Context, patientID uuid.UUID, req *model.AddEmergencyContactRequest) (*model.EmergencyContact, error) {
	return m.addContactFn(ctx, patientID, req)
}

func (m *mockService) ListEmergencyContacts(ctx context.Context, patientID uuid.UUID) ([]*model.EmergencyContact, error) {
	return m.listContactsFn(ctx, patientID)
}

func setupRouter(svc *mockService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewHandler(svc, testMetrics).RegisterRoutes(r.Group("/api/v1"))
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRegisterPatientEndpoint(t *testing.T) {
	svc := &mockService{
		registerFn: func(ctx context.Context, req *model.RegisterPatientRequest) (*model.Patient, error) {
			return model.NewPatient(req)
		},
	}
	r := setupRouter(svc)

	w := doJSON(t, r, http.MethodPost, "/api/v1/patients", map[string]interface{}{
		"national_id_number": "12345678",
		"full_name":          "Maria Gonzalez",
		"birth_date":         "1990-05-12T00:00:00Z",
		"gender":             "FEMALE",
		"marital_status":     "SINGLE",
		"phone":              "5551234567",
		"email":              "maria@example.com",
		"address":            "742 Evergreen Terrace",
	})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"success"`)
}

func TestRegisterPatientEndpointMissingFields(t *testing.T) {
	r := setupRouter(&mockService{})

	w := doJSON(t, r, http.MethodPost, "/api/v1/patients", map[string]interface{}{
		"full_name": "Maria Gonzalez",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRegisterPatientEndpointConflict(t *testing.T) {
	svc := &mockService{
		registerFn: func(ctx context.Context, req *model.RegisterPatientRequest) (*model.Patient, error) {
			return nil, apperrors.NewDuplicateNationalID(req.NationalID)
		},
	}
	r := setupRouter(svc)

	w := doJSON(t, r, http.MethodPost, "/api/v1/patients", map[string]interface{}{
		"national_id_number": "12345678",
		"full_name":          "Maria Gonzalez",
		"birth_date":         "1990-05-12T00:00:00Z",
		"gender":             "FEMALE",
		"marital_status":     "SINGLE",
		"phone":              "5551234567",
		"email":              "maria@example.com",
		"address":            "742 Evergreen Terrace",
	})

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "already exists")
}

func TestGetPatientEndpointBadID(t *testing.T) {
	r := setupRouter(&mockService{})

	w := doJSON(t, r, http.MethodGet, "/api/v1/patients/not-a-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetPatientEndpointNotFound(t *testing.T) {
	id := uuid.New()
	svc := &mockService{
		getFn: func(ctx context.Context, got uuid.UUID) (*model.Patient, error) {
			return nil, apperrors.NewPatientNotFound(got)
		},
	}
	r := setupRouter(svc)

	w := doJSON(t, r, http.MethodGet, "/api/v1/patients/"+id.String(), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetPatientByNationalIDEndpoint(t *testing.T) {
	svc := &mockService{
		getByNationalIDFn: func(ctx context.Context, nationalID string) (*model.Patient, error) {
			return &model.Patient{NationalID: nationalID, FullName: "Maria Gonzalez"}, nil
		},
	}
	r := setupRouter(svc)

	w := doJSON(t, r, http.MethodGet, "/api/v1/patients/national/12345678", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "12345678")
}

func TestAddEmergencyContactEndpoint(t *testing.T) {
	id := uuid.New()
	svc := &mockService{
		addContactFn: func(ctx context.Context, patientID uuid.UUID, req *model.AddEmergencyContactRequest) (*model.EmergencyContact, error) {
			return model.NewEmergencyContact(patientID, req)
		},
	}
	r := setupRouter(svc)

	w := doJSON(t, r, http.MethodPost, "/api/v1/patients/"+id.String()+"/emergency-contacts", map[string]interface{}{
		"full_name":    "Jorge Gonzalez",
		"phone":        "5559876543",
		"relationship": "SPOUSE",
	})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), id.String())
}

func TestDeactivatePatientEndpoint(t *testing.T) {
	id := uuid.New()
	var deactivated uuid.UUID
	svc := &mockService{
		deactivateFn: func(ctx context.Context, got uuid.UUID) error {
			deactivated = got
			return nil
		},
	}
	r := setupRouter(svc)

	w := doJSON(t, r, http.MethodDelete, "/api/v1/patients/"+id.String(), nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, id, deactivated)
}
