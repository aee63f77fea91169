package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/jwalitptl/patient-api/internal/model"
	"github.com/jwalitptl/patient-api/internal/repository"
	apperrors "github.com/jwalitptl/patient-api/pkg/errors"
)

type insurancePolicyRepository struct {
	db *sqlx.DB
}

func NewInsurancePolicyRepository(db *sqlx.DB) repository.InsurancePolicyRepository {
	return &insurancePolicyRepository{db: db}
}

func (r *insurancePolicyRepository) Create(ctx context.Context, policy *model.InsurancePolicy) error {
	query := `
		INSERT INTO insurance_policies (
			id, patient_id, provider_id, policy_number, coverage_details,
			valid_from, valid_until, status_code, created_at, updated_at
		) VALUES (
			:id, :patient_id, :provider_id, :policy_number, :coverage_details,
			:valid_from, :valid_until, :status_code, :created_at, :updated_at
		)
	`
	if _, err := r.db.NamedExecContext(ctx, query, policy); err != nil {
		switch violatedConstraint(err) {
		case "insurance_policies_patient_id_key":
			return apperrors.NewDuplicatePolicy(
				fmt.Sprintf("patient %s already has an insurance policy", policy.PatientID))
		case "insurance_policies_policy_number_key":
			return apperrors.NewDuplicatePolicy(
				fmt.Sprintf("insurance policy with number %s already exists", policy.PolicyNumber))
		}
		return fmt.Errorf("failed to create insurance policy: %w", err)
	}
	return nil
}

func (r *insurancePolicyRepository) Get(ctx context.Context, id uuid.UUID) (*model.InsurancePolicy, error) {
	return r.getBy(ctx, `SELECT * FROM insurance_policies WHERE id = $1`, id)
}

func (r *insurancePolicyRepository) GetByPatient(ctx context.Context, patientID uuid.UUID) (*model.InsurancePolicy, error) {
	return r.getBy(ctx, `SELECT * FROM insurance_policies WHERE patient_id = $1`, patientID)
}

func (r *insurancePolicyRepository) getBy(ctx context.Context, query string, arg interface{}) (*model.InsurancePolicy, error) {
	var policy model.InsurancePolicy
	err := r.db.GetContext(ctx, &policy, query, arg)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get insurance policy: %w", err)
	}
	return &policy, nil
}

func (r *insurancePolicyRepository) ExistsByPatient(ctx context.Context, patientID uuid.UUID) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS (SELECT 1 FROM insurance_policies WHERE patient_id = $1)`, patientID)
}

func (r *insurancePolicyRepository) ExistsByPolicyNumber(ctx context.Context, policyNumber string) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS (SELECT 1 FROM insurance_policies WHERE policy_number = $1)`, policyNumber)
}

func (r *insurancePolicyRepository) ExistsByProvider(ctx context.Context, providerID uuid.UUID) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS (SELECT 1 FROM insurance_policies WHERE provider_id = $1)`, providerID)
}

func (r *insurancePolicyRepository) exists(ctx context.Context, query string, arg interface{}) (bool, error) {
	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, arg); err != nil {
		return false, fmt.Errorf("failed to check policy existence: %w", err)
	}
	return exists, nil
}

func (r *insurancePolicyRepository) Update(ctx context.Context, policy *model.InsurancePolicy) error {
	query := `
		UPDATE insurance_policies SET
			coverage_details = :coverage_details,
			valid_from = :valid_from,
			valid_until = :valid_until,
			status_code = :status_code,
			updated_at = :updated_at
		WHERE id = :id
	`
	if _, err := r.db.NamedExecContext(ctx, query, policy); err != nil {
		return fmt.Errorf("failed to update insurance policy: %w", err)
	}
	return nil
}

// MarkExpired persists EXPIRED for every stored-ACTIVE policy whose
// window has passed. Used by the periodic sweep; reads never depend on
// it because effective status is recomputed per lookup.
func (r *insurancePolicyRepository) MarkExpired(ctx context.Context, now time.Time) (int64, error) {
	query := `
		UPDATE insurance_policies
		SET status_code = $1, updated_at = $2
		WHERE status_code = $3 AND valid_until < $2
	`
	res, err := r.db.ExecContext(ctx, query, model.InsuranceStatusExpired, now.UTC(), model.InsuranceStatusActive)
	if err != nil {
		return 0, fmt.Errorf("failed to mark expired policies: %w", err)
	}
	return res.RowsAffected()
}
