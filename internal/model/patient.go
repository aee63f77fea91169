package model

import (
	"strings"
	"time"

	"github.com/lib/pq"

	apperrors "github.com/jwalitptl/patient-api/pkg/errors"
)

// Patient is the aggregate root of the service. National id and email
// are unique across all patients. Patients are soft-deactivated, never
// hard-deleted.
type Patient struct {
	Base
	NationalID        string         `db:"national_id_number" json:"national_id_number"`
	FullName          string         `db:"full_name" json:"full_name"`
	BirthDate         time.Time      `db:"birth_date" json:"birth_date"`
	Gender            string         `db:"gender_code" json:"gender"`
	BloodType         *string        `db:"blood_type_code" json:"blood_type,omitempty"`
	MaritalStatus     string         `db:"marital_status_code" json:"marital_status"`
	Phone             string         `db:"phone" json:"phone"`
	Email             string         `db:"email" json:"email"`
	Address           string         `db:"address" json:"address"`
	Occupation        *string        `db:"occupation" json:"occupation,omitempty"`
	Allergies         pq.StringArray `db:"allergies" json:"allergies"`
	ChronicConditions pq.StringArray `db:"chronic_conditions" json:"chronic_conditions"`
	IsActive          bool           `db:"is_active" json:"is_active"`
}

// Age in whole years at the given instant.
func (p *Patient) Age(now time.Time) int {
	age := now.Year() - p.BirthDate.Year()
	if now.YearDay() < p.BirthDate.YearDay() {
		age--
	}
	return age
}

type RegisterPatientRequest struct {
	NationalID        string    `json:"national_id_number" binding:"required"`
	FullName          string    `json:"full_name" binding:"required"`
	BirthDate         time.Time `json:"birth_date" binding:"required"`
	Gender            string    `json:"gender" binding:"required"`
	BloodType         *string   `json:"blood_type"`
	MaritalStatus     string    `json:"marital_status" binding:"required"`
	Phone             string    `json:"phone" binding:"required"`
	Email             string    `json:"email" binding:"required,email"`
	Address           string    `json:"address" binding:"required"`
	Occupation        *string   `json:"occupation"`
	Allergies         []string  `json:"allergies"`
	ChronicConditions []string  `json:"chronic_conditions"`
}

// Validate runs the per-field rules. No I/O; catalog codes are checked
// by the service against the catalog lookup.
func (r *RegisterPatientRequest) Validate() error {
	if err := validateNationalID(r.NationalID); err != nil {
		return err
	}
	if err := validateRequiredMax("full_name", r.FullName, 100); err != nil {
		return err
	}
	if err := validateBirthDate(r.BirthDate); err != nil {
		return err
	}
	if err := validatePhone("phone", r.Phone); err != nil {
		return err
	}
	if err := validateEmail("email", r.Email); err != nil {
		return err
	}
	if err := validateRequiredMax("address", r.Address, 200); err != nil {
		return err
	}
	if r.Occupation != nil && len(*r.Occupation) > 100 {
		return apperrors.NewValidation("occupation", "occupation must not exceed 100 characters")
	}
	return nil
}

// NewPatient constructs a validated patient from a registration
// request. Email is stored lowercased so uniqueness is
// case-insensitive.
func NewPatient(r *RegisterPatientRequest) (*Patient, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return &Patient{
		Base:              NewBase(),
		NationalID:        r.NationalID,
		FullName:          r.FullName,
		BirthDate:         r.BirthDate,
		Gender:            r.Gender,
		BloodType:         r.BloodType,
		MaritalStatus:     r.MaritalStatus,
		Phone:             r.Phone,
		Email:             strings.ToLower(r.Email),
		Address:           r.Address,
		Occupation:        r.Occupation,
		Allergies:         append(pq.StringArray{}, r.Allergies...),
		ChronicConditions: append(pq.StringArray{}, r.ChronicConditions...),
		IsActive:          true,
	}, nil
}

// UpdatePatientRequest carries a partial field set. Nil means
// unchanged. National id and birth date are immutable post-creation
// and deliberately absent.
type UpdatePatientRequest struct {
	FullName          *string  `json:"full_name"`
	Phone             *string  `json:"phone"`
	Email             *string  `json:"email" binding:"omitempty,email"`
	Address           *string  `json:"address"`
	MaritalStatus     *string  `json:"marital_status"`
	Occupation        *string  `json:"occupation"`
	Allergies         []string `json:"allergies"`
	ChronicConditions []string `json:"chronic_conditions"`
}

// Apply validates and applies the partial update. Validation re-runs on
// every mutation so an update can never leave the entity invalid.
func (p *Patient) Apply(r *UpdatePatientRequest) error {
	if r.FullName != nil {
		if err := validateRequiredMax("full_name", *r.FullName, 100); err != nil {
			return err
		}
		p.FullName = *r.FullName
	}
	if r.Phone != nil {
		if err := validatePhone("phone", *r.Phone); err != nil {
			return err
		}
		p.Phone = *r.Phone
	}
	if r.Email != nil {
		if err := validateEmail("email", *r.Email); err != nil {
			return err
		}
		p.Email = strings.ToLower(*r.Email)
	}
	if r.Address != nil {
		if err := validateRequiredMax("address", *r.Address, 200); err != nil {
			return err
		}
		p.Address = *r.Address
	}
	if r.MaritalStatus != nil {
		p.MaritalStatus = *r.MaritalStatus
	}
	if r.Occupation != nil {
		if len(*r.Occupation) > 100 {
			return apperrors.NewValidation("occupation", "occupation must not exceed 100 characters")
		}
		p.Occupation = r.Occupation
	}
	if r.Allergies != nil {
		p.Allergies = append(pq.StringArray{}, r.Allergies...)
	}
	if r.ChronicConditions != nil {
		p.ChronicConditions = append(pq.StringArray{}, r.ChronicConditions...)
	}
	p.Touch()
	return nil
}

// Deactivate soft-deletes the patient.
func (p *Patient) Deactivate() {
	p.IsActive = false
	p.Touch()
}

func validateNationalID(nationalID string) *apperrors.AppError {
	if nationalID == "" {
		return apperrors.NewValidation("national_id_number", "national ID number cannot be empty")
	}
	if !digitsRx.MatchString(nationalID) {
		return apperrors.NewValidation("national_id_number", "national ID number must contain only digits")
	}
	if len(nationalID) < 6 || len(nationalID) > 10 {
		return apperrors.NewValidation("national_id_number", "national ID number must be between 6 and 10 digits")
	}
	return nil
}

func validateBirthDate(birthDate time.Time) *apperrors.AppError {
	now := time.Now()
	if birthDate.After(now) {
		return apperrors.NewValidation("birth_date", "birth date cannot be in the future")
	}
	age := now.Year() - birthDate.Year()
	if now.YearDay() < birthDate.YearDay() {
		age--
	}
	if age > 150 {
		return apperrors.NewValidation("birth_date", "age cannot exceed 150 years")
	}
	return nil
}
