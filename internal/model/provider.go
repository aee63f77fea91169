package model

import (
	"strings"

	apperrors "github.com/jwalitptl/patient-api/pkg/errors"
)

// InsuranceProvider is an independent entity. Providers referenced by
// policies may not be deleted; they are deactivated instead.
type InsuranceProvider struct {
	Base
	Name     string  `db:"name" json:"name"`
	Code     string  `db:"code" json:"code"`
	Phone    *string `db:"phone" json:"phone,omitempty"`
	Email    *string `db:"email" json:"email,omitempty"`
	Website  *string `db:"website" json:"website,omitempty"`
	Address  *string `db:"address" json:"address,omitempty"`
	IsActive bool    `db:"is_active" json:"is_active"`
}

type CreateProviderRequest struct {
	Name    string  `json:"name" binding:"required"`
	Code    string  `json:"code" binding:"required,providercode"`
	Phone   *string `json:"phone"`
	Email   *string `json:"email" binding:"omitempty,email"`
	Website *string `json:"website"`
	Address *string `json:"address"`
}

func (r *CreateProviderRequest) Validate() error {
	if err := validateRequiredMax("name", r.Name, 100); err != nil {
		return err
	}
	if err := validateProviderCode(r.Code); err != nil {
		return err
	}
	return r.validateOptionals()
}

func (r *CreateProviderRequest) validateOptionals() error {
	if r.Phone != nil {
		if err := validatePhone("phone", *r.Phone); err != nil {
			return err
		}
	}
	if r.Email != nil {
		if err := validateEmail("email", *r.Email); err != nil {
			return err
		}
	}
	if r.Website != nil && len(*r.Website) > 200 {
		return apperrors.NewValidation("website", "website must not exceed 200 characters")
	}
	if r.Address != nil && len(*r.Address) > 200 {
		return apperrors.NewValidation("address", "address must not exceed 200 characters")
	}
	return nil
}

// NewInsuranceProvider constructs a validated provider. Codes are
// stored uppercased, emails lowercased.
func NewInsuranceProvider(r *CreateProviderRequest) (*InsuranceProvider, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	p := &InsuranceProvider{
		Base:     NewBase(),
		Name:     r.Name,
		Code:     strings.ToUpper(r.Code),
		Phone:    r.Phone,
		Website:  r.Website,
		Address:  r.Address,
		IsActive: true,
	}
	if r.Email != nil {
		email := strings.ToLower(*r.Email)
		p.Email = &email
	}
	return p, nil
}

type UpdateProviderRequest struct {
	Name    *string `json:"name"`
	Phone   *string `json:"phone"`
	Email   *string `json:"email" binding:"omitempty,email"`
	Website *string `json:"website"`
	Address *string `json:"address"`
}

// Apply validates and applies the partial update. The code is
// immutable once assigned.
func (p *InsuranceProvider) Apply(r *UpdateProviderRequest) error {
	if r.Name != nil {
		if err := validateRequiredMax("name", *r.Name, 100); err != nil {
			return err
		}
		p.Name = *r.Name
	}
	if r.Phone != nil {
		if err := validatePhone("phone", *r.Phone); err != nil {
			return err
		}
		p.Phone = r.Phone
	}
	if r.Email != nil {
		if err := validateEmail("email", *r.Email); err != nil {
			return err
		}
		email := strings.ToLower(*r.Email)
		p.Email = &email
	}
	if r.Website != nil {
		if len(*r.Website) > 200 {
			return apperrors.NewValidation("website", "website must not exceed 200 characters")
		}
		p.Website = r.Website
	}
	if r.Address != nil {
		if len(*r.Address) > 200 {
			return apperrors.NewValidation("address", "address must not exceed 200 characters")
		}
		p.Address = r.Address
	}
	p.Touch()
	return nil
}

// Deactivate takes the provider out of service for new policies.
func (p *InsuranceProvider) Deactivate() {
	p.IsActive = false
	p.Touch()
}

func validateProviderCode(code string) error {
	if err := validateRequiredMax("code", code, 20); err != nil {
		return err
	}
	if !providerCodeRx.MatchString(code) {
		return apperrors.NewValidation("code", "code must be alphanumeric (dashes and underscores allowed)")
	}
	return nil
}
