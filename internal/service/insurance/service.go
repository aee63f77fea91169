package insurance

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/jwalitptl/patient-api/internal/model"
	"github.com/jwalitptl/patient-api/internal/repository"
	apperrors "github.com/jwalitptl/patient-api/pkg/errors"
)

type InsuranceServicer interface {
	AddPolicy(ctx context.Context, patientID uuid.UUID, req *model.AddInsurancePolicyRequest) (*model.InsurancePolicy, error)
	GetStatus(ctx context.Context, patientID uuid.UUID) (*model.InsuranceStatusSummary, error)
}

type CatalogLookup interface {
	Exists(ctx context.Context, kind model.CatalogKind, code string) (bool, error)
}

type Service struct {
	policyRepo   repository.InsurancePolicyRepository
	providerRepo repository.InsuranceProviderRepository
	patientRepo  repository.PatientRepository
	catalogs     CatalogLookup
	now          func() time.Time
}

func NewService(
	policyRepo repository.InsurancePolicyRepository,
	providerRepo repository.InsuranceProviderRepository,
	patientRepo repository.PatientRepository,
	catalogs CatalogLookup,
) *Service {
	return &Service{
		policyRepo:   policyRepo,
		providerRepo: providerRepo,
		patientRepo:  patientRepo,
		catalogs:     catalogs,
		now:          time.Now,
	}
}

// AddPolicy runs its checks in a fixed order so callers always receive
// the most fundamental failure first: patient existence, the
// one-policy-per-patient rule, provider existence, policy-number
// uniqueness, status code, then the date window at construction.
func (s *Service) AddPolicy(ctx context.Context, patientID uuid.UUID, req *model.AddInsurancePolicyRequest) (*model.InsurancePolicy, error) {
	patient, err := s.patientRepo.Get(ctx, patientID)
	if err != nil {
		return nil, fmt.Errorf("failed to get patient: %w", err)
	}
	if patient == nil {
		return nil, apperrors.NewPatientNotFound(patientID)
	}

	// One policy per patient, ever. An expired policy still counts.
	hasPolicy, err := s.policyRepo.ExistsByPatient(ctx, patientID)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing policy: %w", err)
	}
	if hasPolicy {
		return nil, apperrors.NewDuplicatePolicy(
			fmt.Sprintf("patient %s already has an insurance policy", patientID))
	}

	provider, err := s.providerRepo.Get(ctx, req.ProviderID)
	if err != nil {
		return nil, fmt.Errorf("failed to get provider: %w", err)
	}
	if provider == nil || !provider.IsActive {
		return nil, apperrors.NewProviderNotFound(req.ProviderID)
	}

	taken, err := s.policyRepo.ExistsByPolicyNumber(ctx, req.PolicyNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to check policy number: %w", err)
	}
	if taken {
		return nil, apperrors.NewDuplicatePolicy(
			fmt.Sprintf("insurance policy with number %s already exists", req.PolicyNumber))
	}

	status := req.StatusOrDefault()
	exists, err := s.catalogs.Exists(ctx, model.CatalogInsuranceStatus, status)
	if err != nil {
		return nil, fmt.Errorf("failed to check status code: %w", err)
	}
	if !exists {
		return nil, apperrors.NewValidation("status", fmt.Sprintf("invalid insurance status code: %s", status))
	}

	policy, err := model.NewInsurancePolicy(patientID, req)
	if err != nil {
		return nil, err
	}

	// The unique constraints on patient_id and policy_number are the
	// final arbiter when two calls race past the checks above.
	if err := s.policyRepo.Create(ctx, policy); err != nil {
		return nil, err
	}

	log.Info().
		Str("national_id", patient.NationalID).
		Str("policy_number", policy.PolicyNumber).
		Str("provider", provider.Name).
		Msg("insurance policy added")
	return policy, nil
}

// GetStatus recomputes the live policy status at read time. A policy
// whose effective status is not ACTIVE still reports HasPolicy, but
// ActivePolicy stays empty. The recomputed value is not persisted here;
// the sweep worker owns that write path.
func (s *Service) GetStatus(ctx context.Context, patientID uuid.UUID) (*model.InsuranceStatusSummary, error) {
	patient, err := s.patientRepo.Get(ctx, patientID)
	if err != nil {
		return nil, fmt.Errorf("failed to get patient: %w", err)
	}
	if patient == nil {
		return nil, apperrors.NewPatientNotFound(patientID)
	}

	policy, err := s.policyRepo.GetByPatient(ctx, patientID)
	if err != nil {
		return nil, fmt.Errorf("failed to get policy: %w", err)
	}

	summary := &model.InsuranceStatusSummary{PatientID: patientID}
	if policy == nil {
		return summary, nil
	}

	summary.HasPolicy = true
	effective := policy.EffectiveStatus(s.now())
	if effective == model.InsuranceStatusActive {
		policy.Status = effective
		summary.HasActiveInsurance = true
		summary.ActivePolicy = policy
	}
	return summary, nil
}
