package model

import (
	"fmt"
	"regexp"

	apperrors "github.com/jwalitptl/patient-api/pkg/errors"
)

var (
	emailRx        = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	digitsRx       = regexp.MustCompile(`^[0-9]+$`)
	providerCodeRx = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)
)

// ValidProviderCode reports whether code has the shape accepted for
// insurance provider codes. Exposed for binding-level validation.
func ValidProviderCode(code string) bool {
	return len(code) <= 20 && providerCodeRx.MatchString(code)
}

// errOrNil keeps a nil *AppError from becoming a non-nil error value.
func errOrNil(err *apperrors.AppError) error {
	if err != nil {
		return err
	}
	return nil
}

func validateRequiredMax(field, value string, max int) *apperrors.AppError {
	if value == "" {
		return apperrors.NewValidation(field, fmt.Sprintf("%s cannot be empty", field))
	}
	if len(value) > max {
		return apperrors.NewValidation(field, fmt.Sprintf("%s must not exceed %d characters", field, max))
	}
	return nil
}

func validatePhone(field, phone string) *apperrors.AppError {
	if phone == "" {
		return apperrors.NewValidation(field, "phone cannot be empty")
	}
	if !digitsRx.MatchString(phone) {
		return apperrors.NewValidation(field, "phone must contain only digits")
	}
	if len(phone) < 7 || len(phone) > 15 {
		return apperrors.NewValidation(field, "phone must be between 7 and 15 digits")
	}
	return nil
}

func validateEmail(field, email string) *apperrors.AppError {
	if email == "" {
		return apperrors.NewValidation(field, "email cannot be empty")
	}
	if !emailRx.MatchString(email) {
		return apperrors.NewValidation(field, "invalid email format")
	}
	return nil
}
