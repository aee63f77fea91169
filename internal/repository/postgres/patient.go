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

type patientRepository struct {
	db *sqlx.DB
}

func NewPatientRepository(db *sqlx.DB) repository.PatientRepository {
	return &patientRepository{db: db}
}

func (r *patientRepository) Create(ctx context.Context, patient *model.Patient) error {
	query := `
		INSERT INTO patients (
			id, national_id_number, full_name, birth_date, gender_code,
			blood_type_code, marital_status_code, phone, email, address,
			occupation, allergies, chronic_conditions, is_active,
			created_at, updated_at
		) VALUES (
			:id, :national_id_number, :full_name, :birth_date, :gender_code,
			:blood_type_code, :marital_status_code, :phone, :email, :address,
			:occupation, :allergies, :chronic_conditions, :is_active,
			:created_at, :updated_at
		)
	`
	if _, err := r.db.NamedExecContext(ctx, query, patient); err != nil {
		switch violatedConstraint(err) {
		case "patients_national_id_number_key":
			return apperrors.NewDuplicateNationalID(patient.NationalID)
		case "patients_email_key":
			return apperrors.NewDuplicateEmail(patient.Email)
		}
		return fmt.Errorf("failed to create patient: %w", err)
	}
	return nil
}

func (r *patientRepository) Get(ctx context.Context, id uuid.UUID) (*model.Patient, error) {
	return r.getBy(ctx, `SELECT * FROM patients WHERE id = $1`, id)
}

func (r *patientRepository) GetByNationalID(ctx context.Context, nationalID string) (*model.Patient, error) {
	return r.getBy(ctx, `SELECT * FROM patients WHERE national_id_number = $1`, nationalID)
}

func (r *patientRepository) GetByEmail(ctx context.Context, email string) (*model.Patient, error) {
	return r.getBy(ctx, `SELECT * FROM patients WHERE email = LOWER($1)`, email)
}

func (r *patientRepository) getBy(ctx context.Context, query string, arg interface{}) (*model.Patient, error) {
	var patient model.Patient
	err := r.db.GetContext(ctx, &patient, query, arg)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get patient: %w", err)
	}
	return &patient, nil
}

func (r *patientRepository) ExistsByNationalID(ctx context.Context, nationalID string) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS (SELECT 1 FROM patients WHERE national_id_number = $1)`, nationalID)
}

func (r *patientRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS (SELECT 1 FROM patients WHERE email = LOWER($1))`, email)
}

func (r *patientRepository) exists(ctx context.Context, query string, arg interface{}) (bool, error) {
	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, arg); err != nil {
		return false, fmt.Errorf("failed to check patient existence: %w", err)
	}
	return exists, nil
}

func (r *patientRepository) Update(ctx context.Context, patient *model.Patient) error {
	query := `
		UPDATE patients SET
			full_name = :full_name,
			phone = :phone,
			email = :email,
			address = :address,
			marital_status_code = :marital_status_code,
			occupation = :occupation,
			allergies = :allergies,
			chronic_conditions = :chronic_conditions,
			is_active = :is_active,
			updated_at = :updated_at
		WHERE id = :id
	`
	if _, err := r.db.NamedExecContext(ctx, query, patient); err != nil {
		if violatedConstraint(err) == "patients_email_key" {
			return apperrors.NewDuplicateEmail(patient.Email)
		}
		return fmt.Errorf("failed to update patient: %w", err)
	}
	return nil
}

func (r *patientRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE patients SET is_active = FALSE, updated_at = $1 WHERE id = $2`
	if _, err := r.db.ExecContext(ctx, query, time.Now().UTC(), id); err != nil {
		return fmt.Errorf("failed to deactivate patient: %w", err)
	}
	return nil
}
