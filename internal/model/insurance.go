package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/jwalitptl/patient-api/pkg/errors"
)

// InsuranceStatus is a code from the insurance_statuses catalog.
type InsuranceStatus string

const (
	InsuranceStatusActive    InsuranceStatus = "ACTIVE"
	InsuranceStatusInactive  InsuranceStatus = "INACTIVE"
	InsuranceStatusSuspended InsuranceStatus = "SUSPENDED"
	InsuranceStatusExpired   InsuranceStatus = "EXPIRED"
)

// InsurancePolicy references exactly one patient and one provider.
// At most one policy exists per patient, ever; the patient_id unique
// constraint is the final arbiter under concurrent creation.
type InsurancePolicy struct {
	Base
	PatientID       uuid.UUID       `db:"patient_id" json:"patient_id"`
	ProviderID      uuid.UUID       `db:"provider_id" json:"provider_id"`
	PolicyNumber    string          `db:"policy_number" json:"policy_number"`
	CoverageDetails string          `db:"coverage_details" json:"coverage_details"`
	ValidFrom       time.Time       `db:"valid_from" json:"valid_from"`
	ValidUntil      time.Time       `db:"valid_until" json:"valid_until"`
	Status          InsuranceStatus `db:"status_code" json:"status"`
}

// EffectiveStatus recomputes the live status from the stored status and
// the validity window. Manual states (SUSPENDED, INACTIVE) are
// authoritative; otherwise the window decides between EXPIRED and
// ACTIVE. Pure function of its inputs, never persisted here.
func (p *InsurancePolicy) EffectiveStatus(now time.Time) InsuranceStatus {
	switch p.Status {
	case InsuranceStatusSuspended, InsuranceStatusInactive:
		return p.Status
	}
	if now.After(p.ValidUntil) {
		return InsuranceStatusExpired
	}
	return InsuranceStatusActive
}

type AddInsurancePolicyRequest struct {
	ProviderID      uuid.UUID `json:"provider_id" binding:"required"`
	PolicyNumber    string    `json:"policy_number" binding:"required"`
	CoverageDetails string    `json:"coverage_details" binding:"required"`
	ValidFrom       time.Time `json:"valid_from" binding:"required"`
	ValidUntil      time.Time `json:"valid_until" binding:"required"`
	Status          string    `json:"status"`
}

// StatusOrDefault returns the requested initial status code, defaulting
// to ACTIVE.
func (r *AddInsurancePolicyRequest) StatusOrDefault() string {
	if r.Status == "" {
		return string(InsuranceStatusActive)
	}
	return r.Status
}

func (r *AddInsurancePolicyRequest) Validate() error {
	if err := validateRequiredMax("policy_number", r.PolicyNumber, 50); err != nil {
		return err
	}
	if err := validateRequiredMax("coverage_details", r.CoverageDetails, 500); err != nil {
		return err
	}
	if !r.ValidFrom.Before(r.ValidUntil) {
		return apperrors.NewValidation("valid_from", "valid from date must be before valid until date")
	}
	return nil
}

// NewInsurancePolicy constructs a validated policy for the patient.
func NewInsurancePolicy(patientID uuid.UUID, r *AddInsurancePolicyRequest) (*InsurancePolicy, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return &InsurancePolicy{
		Base:            NewBase(),
		PatientID:       patientID,
		ProviderID:      r.ProviderID,
		PolicyNumber:    r.PolicyNumber,
		CoverageDetails: r.CoverageDetails,
		ValidFrom:       r.ValidFrom,
		ValidUntil:      r.ValidUntil,
		Status:          InsuranceStatus(r.StatusOrDefault()),
	}, nil
}

// InsuranceStatusSummary is the result of an insurance status lookup.
// ActivePolicy is set only when the recomputed status is ACTIVE; an
// expired or suspended policy still yields HasPolicy true.
type InsuranceStatusSummary struct {
	PatientID          uuid.UUID        `json:"patient_id"`
	HasPolicy          bool             `json:"has_policy"`
	HasActiveInsurance bool             `json:"has_active_insurance"`
	ActivePolicy       *InsurancePolicy `json:"active_policy,omitempty"`
}

func (s InsuranceStatusSummary) String() string {
	return fmt.Sprintf("patient=%s has_policy=%t active=%t", s.PatientID, s.HasPolicy, s.HasActiveInsurance)
}
