package patient

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/patient-api/internal/model"
	apperrors "github.com/jwalitptl/patient-api/pkg/errors"
)

type mockPatientRepo struct {
	createFn             func(ctx context.Context, p *model.Patient) error
	getFn                func(ctx context.Context, id uuid.UUID) (*model.Patient, error)
	getByNationalIDFn    func(ctx context.Context, nationalID string) (*model.Patient, error)
	getByEmailFn         func(ctx context.Context, email string) (*model.Patient, error)
	existsByNationalIDFn func(ctx context.Context, nationalID string) (bool, error)
	existsByEmailFn      func(ctx context.Context, email string) (bool, error)
	updateFn             func(ctx context.Context, p *model.Patient) error
	deactivateFn         func(ctx context.Context, id uuid.UUID) error
}

func (m *mockPatientRepo) Create(ctx context.Context, p *model.Patient) error {
	return m.createFn(ctx, p)
}

func (m *mockPatientRepo) Get(ctx context.Context, id uuid.UUID) (*model.Patient, error) {
	return m.getFn(ctx, id)
}

func (m *mockPatientRepo) GetByNationalID(ctx context.Context, nationalID string) (*model.Patient, error) {
	return m.getByNationalIDFn(ctx, nationalID)
}

func (m *mockPatientRepo) GetByEmail(ctx context.Context, email string) (*model.Patient, error) {
	return m.getByEmailFn(ctx, email)
}

func (m *mockPatientRepo) ExistsByNationalID(ctx context.Context, nationalID string) (bool, error) {
	return m.existsByNationalIDFn(ctx, nationalID)
}

func (m *mockPatientRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return m.existsByEmailFn(ctx, email)
}

func (m *mockPatientRepo) Update(ctx context.Context, p *model.Patient) error {
	return m.updateFn(ctx, p)
}

func (m *mockPatientRepo) Deactivate(ctx context.Context, id uuid.UUID) error {
	return m.deactivateFn(ctx, id)
}

type mockContactRepo struct {
	createFn        func(ctx context.Context, c *model.EmergencyContact) error
	listByPatientFn func(ctx context.Context, patientID uuid.UUID) ([]*model.EmergencyContact, error)
}

func (m *mockContactRepo) Create(ctx context.Context, c *model.EmergencyContact) error {
	return m.createFn(ctx, c)
}

func (m *mockContactRepo) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*model.EmergencyContact, error) {
	return m.listByPatientFn(ctx, patientID)
}

type mockCatalogLookup struct {
	existsFn func(ctx context.Context, kind model.CatalogKind, code string) (bool, error)
}

func (m *mockCatalogLookup) Exists(ctx context.Context, kind model.CatalogKind, code string) (bool, error) {
	return m.existsFn(ctx, kind, code)
}

func allCodesValid() *mockCatalogLookup {
	return &mockCatalogLookup{
		existsFn: func(ctx context.Context, kind model.CatalogKind, code string) (bool, error) {
			return true, nil
		},
	}
}

func newRegisterRequest() *model.RegisterPatientRequest {
	return &model.RegisterPatientRequest{
		NationalID:    "12345678",
		FullName:      "Maria Gonzalez",
		BirthDate:     time.Date(1990, 5, 12, 0, 0, 0, 0, time.UTC),
		Gender:        "FEMALE",
		MaritalStatus: "SINGLE",
		Phone:         "5551234567",
		Email:         "maria@example.com",
		Address:       "742 Evergreen Terrace",
	}
}

func existingPatient() *model.Patient {
	p, err := model.NewPatient(newRegisterRequest())
	if err != nil {
		panic(err)
	}
	return p
}

func TestRegisterPatient(t *testing.T) {
	var created *model.Patient
	repo := &mockPatientRepo{
		existsByNationalIDFn: func(ctx context.Context, nationalID string) (bool, error) { return false, nil },
		existsByEmailFn:      func(ctx context.Context, email string) (bool, error) { return false, nil },
		createFn: func(ctx context.Context, p *model.Patient) error {
			created = p
			return nil
		},
	}
	svc := NewService(repo, &mockContactRepo{}, allCodesValid())

	patient, err := svc.RegisterPatient(context.Background(), newRegisterRequest())
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, created.ID, patient.ID)
	assert.True(t, patient.IsActive)
}

func TestRegisterPatientDuplicateNationalID(t *testing.T) {
	repo := &mockPatientRepo{
		existsByNationalIDFn: func(ctx context.Context, nationalID string) (bool, error) { return true, nil },
	}
	svc := NewService(repo, &mockContactRepo{}, allCodesValid())

	_, err := svc.RegisterPatient(context.Background(), newRegisterRequest())
	assert.True(t, apperrors.IsKind(err, apperrors.KindDuplicateNationalID))
}

func TestRegisterPatientDuplicateEmail(t *testing.T) {
	repo := &mockPatientRepo{
		existsByNationalIDFn: func(ctx context.Context, nationalID string) (bool, error) { return false, nil },
		existsByEmailFn:      func(ctx context.Context, email string) (bool, error) { return true, nil },
	}
	svc := NewService(repo, &mockContactRepo{}, allCodesValid())

	_, err := svc.RegisterPatient(context.Background(), newRegisterRequest())
	assert.True(t, apperrors.IsKind(err, apperrors.KindDuplicateEmail))
}

func TestRegisterPatientUnknownGender(t *testing.T) {
	repo := &mockPatientRepo{
		existsByNationalIDFn: func(ctx context.Context, nationalID string) (bool, error) { return false, nil },
		existsByEmailFn:      func(ctx context.Context, email string) (bool, error) { return false, nil },
	}
	catalogs := &mockCatalogLookup{
		existsFn: func(ctx context.Context, kind model.CatalogKind, code string) (bool, error) {
			return kind != model.CatalogGender, nil
		},
	}
	svc := NewService(repo, &mockContactRepo{}, catalogs)

	_, err := svc.RegisterPatient(context.Background(), newRegisterRequest())
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "gender", appErr.Field)
}

func TestRegisterPatientInvalidShapeSkipsRepo(t *testing.T) {
	svc := NewService(&mockPatientRepo{}, &mockContactRepo{}, allCodesValid())

	req := newRegisterRequest()
	req.NationalID = "123"
	_, err := svc.RegisterPatient(context.Background(), req)
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
}

func TestGetPatientNotFound(t *testing.T) {
	repo := &mockPatientRepo{
		getFn: func(ctx context.Context, id uuid.UUID) (*model.Patient, error) { return nil, nil },
	}
	svc := NewService(repo, &mockContactRepo{}, allCodesValid())

	_, err := svc.GetPatient(context.Background(), uuid.New())
	assert.True(t, apperrors.IsKind(err, apperrors.KindPatientNotFound))
}

func TestGetPatientByNationalIDNotFound(t *testing.T) {
	repo := &mockPatientRepo{
		getByNationalIDFn: func(ctx context.Context, nationalID string) (*model.Patient, error) { return nil, nil },
	}
	svc := NewService(repo, &mockContactRepo{}, allCodesValid())

	_, err := svc.GetPatientByNationalID(context.Background(), "99999999")
	assert.True(t, apperrors.IsKind(err, apperrors.KindPatientNotFound))
}

func TestUpdatePatientKeepsOwnEmail(t *testing.T) {
	patient := existingPatient()
	repo := &mockPatientRepo{
		getFn:    func(ctx context.Context, id uuid.UUID) (*model.Patient, error) { return patient, nil },
		updateFn: func(ctx context.Context, p *model.Patient) error { return nil },
		getByEmailFn: func(ctx context.Context, email string) (*model.Patient, error) {
			t.Fatal("unchanged email should not hit the repository")
			return nil, nil
		},
	}
	svc := NewService(repo, &mockContactRepo{}, allCodesValid())

	sameEmail := "MARIA@example.com"
	updated, err := svc.UpdatePatient(context.Background(), patient.ID, &model.UpdatePatientRequest{Email: &sameEmail})
	require.NoError(t, err)
	assert.Equal(t, "maria@example.com", updated.Email)
}

func TestUpdatePatientRejectsTakenEmail(t *testing.T) {
	patient := existingPatient()
	other := existingPatient()
	repo := &mockPatientRepo{
		getFn:        func(ctx context.Context, id uuid.UUID) (*model.Patient, error) { return patient, nil },
		getByEmailFn: func(ctx context.Context, email string) (*model.Patient, error) { return other, nil },
	}
	svc := NewService(repo, &mockContactRepo{}, allCodesValid())

	taken := "taken@example.com"
	_, err := svc.UpdatePatient(context.Background(), patient.ID, &model.UpdatePatientRequest{Email: &taken})
	assert.True(t, apperrors.IsKind(err, apperrors.KindDuplicateEmail))
}

func TestDeactivatePatient(t *testing.T) {
	patient := existingPatient()
	var deactivated uuid.UUID
	repo := &mockPatientRepo{
		getFn: func(ctx context.Context, id uuid.UUID) (*model.Patient, error) { return patient, nil },
		deactivateFn: func(ctx context.Context, id uuid.UUID) error {
			deactivated = id
			return nil
		},
	}
	svc := NewService(repo, &mockContactRepo{}, allCodesValid())

	require.NoError(t, svc.DeactivatePatient(context.Background(), patient.ID))
	assert.Equal(t, patient.ID, deactivated)
}

func TestAddEmergencyContact(t *testing.T) {
	patient := existingPatient()
	repo := &mockPatientRepo{
		getFn: func(ctx context.Context, id uuid.UUID) (*model.Patient, error) { return patient, nil },
	}
	contacts := &mockContactRepo{
		createFn: func(ctx context.Context, c *model.EmergencyContact) error { return nil },
	}
	svc := NewService(repo, contacts, allCodesValid())

	contact, err := svc.AddEmergencyContact(context.Background(), patient.ID, &model.AddEmergencyContactRequest{
		FullName:     "Jorge Gonzalez",
		Phone:        "5559876543",
		Relationship: "SPOUSE",
	})
	require.NoError(t, err)
	assert.Equal(t, patient.ID, contact.PatientID)
}

func TestAddEmergencyContactUnknownRelationship(t *testing.T) {
	patient := existingPatient()
	repo := &mockPatientRepo{
		getFn: func(ctx context.Context, id uuid.UUID) (*model.Patient, error) { return patient, nil },
	}
	catalogs := &mockCatalogLookup{
		existsFn: func(ctx context.Context, kind model.CatalogKind, code string) (bool, error) { return false, nil },
	}
	svc := NewService(repo, &mockContactRepo{}, catalogs)

	_, err := svc.AddEmergencyContact(context.Background(), patient.ID, &model.AddEmergencyContactRequest{
		FullName:     "Jorge Gonzalez",
		Phone:        "5559876543",
		Relationship: "NEIGHBOR",
	})
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
}

func TestAddEmergencyContactPatientMissing(t *testing.T) {
	repo := &mockPatientRepo{
		getFn: func(ctx context.Context, id uuid.UUID) (*model.Patient, error) { return nil, nil },
	}
	svc := NewService(repo, &mockContactRepo{}, allCodesValid())

	_, err := svc.AddEmergencyContact(context.Background(), uuid.New(), &model.AddEmergencyContactRequest{
		FullName:     "Jorge Gonzalez",
		Phone:        "5559876543",
		Relationship: "SPOUSE",
	})
	assert.True(t, apperrors.IsKind(err, apperrors.KindPatientNotFound))
}
