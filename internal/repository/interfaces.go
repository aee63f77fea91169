package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jwalitptl/patient-api/internal/model"
)

// All repository interfaces in one file. Implementations must make a
// create that violates a uniqueness constraint fail atomically, leaving
// no partial record, and surface it as the matching typed error from
// pkg/errors. Lookups return (nil, nil) when the row is absent.
type (
	PatientRepository interface {
		Create(ctx context.Context, patient *model.Patient) error
		Get(ctx context.Context, id uuid.UUID) (*model.Patient, error)
		GetByNationalID(ctx context.Context, nationalID string) (*model.Patient, error)
		GetByEmail(ctx context.Context, email string) (*model.Patient, error)
		ExistsByNationalID(ctx context.Context, nationalID string) (bool, error)
		ExistsByEmail(ctx context.Context, email string) (bool, error)
		Update(ctx context.Context, patient *model.Patient) error
		Deactivate(ctx context.Context, id uuid.UUID) error
	}

	EmergencyContactRepository interface {
		Create(ctx context.Context, contact *model.EmergencyContact) error
		ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*model.EmergencyContact, error)
	}

	InsurancePolicyRepository interface {
		Create(ctx context.Context, policy *model.InsurancePolicy) error
		Get(ctx context.Context, id uuid.UUID) (*model.InsurancePolicy, error)
		GetByPatient(ctx context.Context, patientID uuid.UUID) (*model.InsurancePolicy, error)
		ExistsByPatient(ctx context.Context, patientID uuid.UUID) (bool, error)
		ExistsByPolicyNumber(ctx context.Context, policyNumber string) (bool, error)
		ExistsByProvider(ctx context.Context, providerID uuid.UUID) (bool, error)
		Update(ctx context.Context, policy *model.InsurancePolicy) error
		MarkExpired(ctx context.Context, now time.Time) (int64, error)
	}

	InsuranceProviderRepository interface {
		Create(ctx context.Context, provider *model.InsuranceProvider) error
		Get(ctx context.Context, id uuid.UUID) (*model.InsuranceProvider, error)
		GetByCode(ctx context.Context, code string) (*model.InsuranceProvider, error)
		List(ctx context.Context) ([]*model.InsuranceProvider, error)
		Update(ctx context.Context, provider *model.InsuranceProvider) error
		Delete(ctx context.Context, id uuid.UUID) error
	}

	CatalogRepository interface {
		Exists(ctx context.Context, kind model.CatalogKind, code string) (bool, error)
		List(ctx context.Context, kind model.CatalogKind) ([]*model.CatalogEntry, error)
	}
)
