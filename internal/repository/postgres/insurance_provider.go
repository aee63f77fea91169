package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/jwalitptl/patient-api/internal/model"
	"github.com/jwalitptl/patient-api/internal/repository"
	apperrors "github.com/jwalitptl/patient-api/pkg/errors"
)

type insuranceProviderRepository struct {
	db *sqlx.DB
}

func NewInsuranceProviderRepository(db *sqlx.DB) repository.InsuranceProviderRepository {
	return &insuranceProviderRepository{db: db}
}

func (r *insuranceProviderRepository) Create(ctx context.Context, provider *model.InsuranceProvider) error {
	query := `
		INSERT INTO insurance_providers (id, name, code, phone, email, website, address, is_active, created_at, updated_at)
		VALUES (:id, :name, :code, :phone, :email, :website, :address, :is_active, :created_at, :updated_at)
	`
	if _, err := r.db.NamedExecContext(ctx, query, provider); err != nil {
		if violatedConstraint(err) == "insurance_providers_code_key" {
			return apperrors.NewDuplicateProviderCode(provider.Code)
		}
		return fmt.Errorf("failed to create insurance provider: %w", err)
	}
	return nil
}

func (r *insuranceProviderRepository) Get(ctx context.Context, id uuid.UUID) (*model.InsuranceProvider, error) {
	return r.getBy(ctx, `SELECT * FROM insurance_providers WHERE id = $1`, id)
}

func (r *insuranceProviderRepository) GetByCode(ctx context.Context, code string) (*model.InsuranceProvider, error) {
	return r.getBy(ctx, `SELECT * FROM insurance_providers WHERE code = UPPER($1)`, code)
}

func (r *insuranceProviderRepository) getBy(ctx context.Context, query string, arg interface{}) (*model.InsuranceProvider, error) {
	var provider model.InsuranceProvider
	err := r.db.GetContext(ctx, &provider, query, arg)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get insurance provider: %w", err)
	}
	return &provider, nil
}

func (r *insuranceProviderRepository) List(ctx context.Context) ([]*model.InsuranceProvider, error) {
	query := `SELECT * FROM insurance_providers ORDER BY name`
	var providers []*model.InsuranceProvider
	if err := r.db.SelectContext(ctx, &providers, query); err != nil {
		return nil, fmt.Errorf("failed to list insurance providers: %w", err)
	}
	return providers, nil
}

func (r *insuranceProviderRepository) Update(ctx context.Context, provider *model.InsuranceProvider) error {
	query := `
		UPDATE insurance_providers SET
			name = :name,
			phone = :phone,
			email = :email,
			website = :website,
			address = :address,
			is_active = :is_active,
			updated_at = :updated_at
		WHERE id = :id
	`
	if _, err := r.db.NamedExecContext(ctx, query, provider); err != nil {
		return fmt.Errorf("failed to update insurance provider: %w", err)
	}
	return nil
}

func (r *insuranceProviderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM insurance_providers WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("failed to delete insurance provider: %w", err)
	}
	return nil
}
