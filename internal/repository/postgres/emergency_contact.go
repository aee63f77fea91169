package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/jwalitptl/patient-api/internal/model"
	"github.com/jwalitptl/patient-api/internal/repository"
)

type emergencyContactRepository struct {
	db *sqlx.DB
}

func NewEmergencyContactRepository(db *sqlx.DB) repository.EmergencyContactRepository {
	return &emergencyContactRepository{db: db}
}

func (r *emergencyContactRepository) Create(ctx context.Context, contact *model.EmergencyContact) error {
	query := `
		INSERT INTO emergency_contacts (id, patient_id, full_name, phone, relationship_code, created_at, updated_at)
		VALUES (:id, :patient_id, :full_name, :phone, :relationship_code, :created_at, :updated_at)
	`
	if _, err := r.db.NamedExecContext(ctx, query, contact); err != nil {
		return fmt.Errorf("failed to create emergency contact: %w", err)
	}
	return nil
}

func (r *emergencyContactRepository) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*model.EmergencyContact, error) {
	query := `SELECT * FROM emergency_contacts WHERE patient_id = $1 ORDER BY created_at`
	var contacts []*model.EmergencyContact
	if err := r.db.SelectContext(ctx, &contacts, query, patientID); err != nil {
		return nil, fmt.Errorf("failed to list emergency contacts: %w", err)
	}
	return contacts, nil
}
