package provider

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

type ProviderServicer interface {
	CreateProvider(ctx context.Context, req *model.CreateProviderRequest) (*model.InsuranceProvider, error)
	GetProvider(ctx context.Context, id uuid.UUID) (*model.InsuranceProvider, error)
	ListProviders(ctx context.Context) ([]*model.InsuranceProvider, error)
	UpdateProvider(ctx context.Context, id uuid.UUID, req *model.UpdateProviderRequest) (*model.InsuranceProvider, error)
	DeactivateProvider(ctx context.Context, id uuid.UUID) error
	DeleteProvider(ctx context.Context, id uuid.UUID) error
}

type Service struct {
	repo       repository.InsuranceProviderRepository
	policyRepo repository.InsurancePolicyRepository
}

func NewService(repo repository.InsuranceProviderRepository, policyRepo repository.InsurancePolicyRepository) *Service {
	return &Service{repo: repo, policyRepo: policyRepo}
}

func (s *Service) CreateProvider(ctx context.Context, req *model.CreateProviderRequest) (*model.InsuranceProvider, error) {
	provider, err := model.NewInsuranceProvider(req)
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByCode(ctx, strings.ToUpper(req.Code))
	if err != nil {
		return nil, fmt.Errorf("failed to check provider code: %w", err)
	}
	if existing != nil {
		return nil, apperrors.NewDuplicateProviderCode(provider.Code)
	}

	if err := s.repo.Create(ctx, provider); err != nil {
		return nil, err
	}

	log.Info().Str("code", provider.Code).Msg("insurance provider created")
	return provider, nil
}

func (s *Service) GetProvider(ctx context.Context, id uuid.UUID) (*model.InsuranceProvider, error) {
	provider, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get provider: %w", err)
	}
	if provider == nil {
		return nil, apperrors.NewProviderNotFound(id)
	}
	return provider, nil
}

func (s *Service) ListProviders(ctx context.Context) ([]*model.InsuranceProvider, error) {
	return s.repo.List(ctx)
}

func (s *Service) UpdateProvider(ctx context.Context, id uuid.UUID, req *model.UpdateProviderRequest) (*model.InsuranceProvider, error) {
	provider, err := s.GetProvider(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := provider.Apply(req); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, provider); err != nil {
		return nil, err
	}
	return provider, nil
}

// DeactivateProvider takes the provider out of service for new
// policies. Existing policies keep their reference.
func (s *Service) DeactivateProvider(ctx context.Context, id uuid.UUID) error {
	provider, err := s.GetProvider(ctx, id)
	if err != nil {
		return err
	}

	provider.Deactivate()
	if err := s.repo.Update(ctx, provider); err != nil {
		return err
	}

	log.Info().Str("code", provider.Code).Msg("insurance provider deactivated")
	return nil
}

// DeleteProvider refuses while any policy references the provider.
// The foreign key backs this check up at the store level.
func (s *Service) DeleteProvider(ctx context.Context, id uuid.UUID) error {
	provider, err := s.GetProvider(ctx, id)
	if err != nil {
		return err
	}

	inUse, err := s.policyRepo.ExistsByProvider(ctx, provider.ID)
	if err != nil {
		return fmt.Errorf("failed to check provider references: %w", err)
	}
	if inUse {
		return apperrors.NewProviderInUse(provider.ID)
	}

	if err := s.repo.Delete(ctx, provider.ID); err != nil {
		return err
	}

	log.Info().Str("code", provider.Code).Msg("insurance provider deleted")
	return nil
}
