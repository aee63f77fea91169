package patient

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/jwalitptl/patient-api/internal/model"
	"github.com/jwalitptl/patient-api/internal/repository"
	apperrors "github.com/jwalitptl/patient-api/pkg/errors"
)

type PatientServicer interface {
	RegisterPatient(ctx context.Context, req *model.RegisterPatientRequest) (*model.Patient, error)
	GetPatient(ctx context.Context, id uuid.UUID) (*model.Patient, error)
	GetPatientByNationalID(ctx context.Context, nationalID string) (*model.Patient, error)
	UpdatePatient(ctx context.Context, id uuid.UUID, req *model.UpdatePatientRequest) (*model.Patient, error)
	DeactivatePatient(ctx context.Context, id uuid.UUID) error
	AddEmergencyContact(ctx context.Context, patientID uuid.UUID, req *model.AddEmergencyContactRequest) (*model.EmergencyContact, error)
	ListEmergencyContacts(ctx context.Context, patientID uuid.UUID) ([]*model.EmergencyContact, error)
}

// CatalogLookup confirms referenced catalog codes exist. An unknown
// code is caller-supplied input, so it surfaces as a validation error,
// not a not-found.
type CatalogLookup interface {
	Exists(ctx context.Context, kind model.CatalogKind, code string) (bool, error)
}

type Service struct {
	repo        repository.PatientRepository
	contactRepo repository.EmergencyContactRepository
	catalogs    CatalogLookup
}

func NewService(repo repository.PatientRepository, contactRepo repository.EmergencyContactRepository, catalogs CatalogLookup) *Service {
	return &Service{
		repo:        repo,
		contactRepo: contactRepo,
		catalogs:    catalogs,
	}
}

// RegisterPatient checks, in order: field shape, national-id
// uniqueness, email uniqueness, catalog codes. The order is fixed so
// callers get deterministic error reporting.
func (s *Service) RegisterPatient(ctx context.Context, req *model.RegisterPatientRequest) (*model.Patient, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	exists, err := s.repo.ExistsByNationalID(ctx, req.NationalID)
	if err != nil {
		return nil, fmt.Errorf("failed to check national ID: %w", err)
	}
	if exists {
		return nil, apperrors.NewDuplicateNationalID(req.NationalID)
	}

	exists, err = s.repo.ExistsByEmail(ctx, strings.ToLower(req.Email))
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return nil, apperrors.NewDuplicateEmail(req.Email)
	}

	if err := s.checkCatalogCode(ctx, model.CatalogGender, "gender", req.Gender); err != nil {
		return nil, err
	}
	if req.BloodType != nil {
		if err := s.checkCatalogCode(ctx, model.CatalogBloodType, "blood_type", *req.BloodType); err != nil {
			return nil, err
		}
	}
	if err := s.checkCatalogCode(ctx, model.CatalogMaritalStatus, "marital_status", req.MaritalStatus); err != nil {
		return nil, err
	}

	patient, err := model.NewPatient(req)
	if err != nil {
		return nil, err
	}

	// The unique indexes on national_id_number and email are the final
	// arbiter under concurrent registration; the checks above only give
	// a friendlier error.
	if err := s.repo.Create(ctx, patient); err != nil {
		return nil, err
	}

	log.Info().Str("national_id", patient.NationalID).Msg("patient registered")
	return patient, nil
}

func (s *Service) GetPatient(ctx context.Context, id uuid.UUID) (*model.Patient, error) {
	patient, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get patient: %w", err)
	}
	if patient == nil {
		return nil, apperrors.NewPatientNotFound(id)
	}
	return patient, nil
}

func (s *Service) GetPatientByNationalID(ctx context.Context, nationalID string) (*model.Patient, error) {
	patient, err := s.repo.GetByNationalID(ctx, nationalID)
	if err != nil {
		return nil, fmt.Errorf("failed to get patient: %w", err)
	}
	if patient == nil {
		return nil, apperrors.NewPatientNotFoundByNationalID(nationalID)
	}
	return patient, nil
}

// UpdatePatient mutates only the listed fields; national id and birth
// date are immutable post-creation.
func (s *Service) UpdatePatient(ctx context.Context, id uuid.UUID, req *model.UpdatePatientRequest) (*model.Patient, error) {
	patient, err := s.GetPatient(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Email != nil {
		email := strings.ToLower(*req.Email)
		if email != patient.Email {
			other, err := s.repo.GetByEmail(ctx, email)
			if err != nil {
				return nil, fmt.Errorf("failed to check email: %w", err)
			}
			if other != nil && other.ID != patient.ID {
				return nil, apperrors.NewDuplicateEmail(*req.Email)
			}
		}
	}

	if req.MaritalStatus != nil {
		if err := s.checkCatalogCode(ctx, model.CatalogMaritalStatus, "marital_status", *req.MaritalStatus); err != nil {
			return nil, err
		}
	}

	if err := patient.Apply(req); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, patient); err != nil {
		return nil, err
	}

	log.Info().Str("national_id", patient.NationalID).Msg("patient updated")
	return patient, nil
}

func (s *Service) DeactivatePatient(ctx context.Context, id uuid.UUID) error {
	patient, err := s.GetPatient(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Deactivate(ctx, patient.ID); err != nil {
		return fmt.Errorf("failed to deactivate patient: %w", err)
	}

	log.Info().Str("national_id", patient.NationalID).Msg("patient deactivated")
	return nil
}

func (s *Service) AddEmergencyContact(ctx context.Context, patientID uuid.UUID, req *model.AddEmergencyContactRequest) (*model.EmergencyContact, error) {
	patient, err := s.GetPatient(ctx, patientID)
	if err != nil {
		return nil, err
	}

	if err := s.checkCatalogCode(ctx, model.CatalogRelationshipType, "relationship", req.Relationship); err != nil {
		return nil, err
	}

	contact, err := model.NewEmergencyContact(patient.ID, req)
	if err != nil {
		return nil, err
	}

	if err := s.contactRepo.Create(ctx, contact); err != nil {
		return nil, err
	}

	log.Info().Str("national_id", patient.NationalID).Msg("emergency contact added")
	return contact, nil
}

func (s *Service) ListEmergencyContacts(ctx context.Context, patientID uuid.UUID) ([]*model.EmergencyContact, error) {
	if _, err := s.GetPatient(ctx, patientID); err != nil {
		return nil, err
	}
	return s.contactRepo.ListByPatient(ctx, patientID)
}

func (s *Service) checkCatalogCode(ctx context.Context, kind model.CatalogKind, field, code string) error {
	exists, err := s.catalogs.Exists(ctx, kind, code)
	if err != nil {
		return fmt.Errorf("failed to check %s code: %w", field, err)
	}
	if !exists {
		return apperrors.NewValidation(field, fmt.Sprintf("invalid %s code: %s", field, code))
	}
	return nil
}
