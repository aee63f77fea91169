package model

import "github.com/google/uuid"

// EmergencyContact belongs to exactly one patient and is removed with
// it (cascade on the owning row).
type EmergencyContact struct {
	Base
	PatientID    uuid.UUID `db:"patient_id" json:"patient_id"`
	FullName     string    `db:"full_name" json:"full_name"`
	Phone        string    `db:"phone" json:"phone"`
	Relationship string    `db:"relationship_code" json:"relationship"`
}

type AddEmergencyContactRequest struct {
	FullName     string `json:"full_name" binding:"required"`
	Phone        string `json:"phone" binding:"required"`
	Relationship string `json:"relationship" binding:"required"`
}

func (r *AddEmergencyContactRequest) Validate() error {
	if err := validateRequiredMax("full_name", r.FullName, 100); err != nil {
		return err
	}
	return errOrNil(validatePhone("phone", r.Phone))
}

// NewEmergencyContact constructs a validated contact owned by the
// given patient.
func NewEmergencyContact(patientID uuid.UUID, r *AddEmergencyContactRequest) (*EmergencyContact, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return &EmergencyContact{
		Base:         NewBase(),
		PatientID:    patientID,
		FullName:     r.FullName,
		Phone:        r.Phone,
		Relationship: r.Relationship,
	}, nil
}
