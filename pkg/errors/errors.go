package errors

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Kind identifies the class of an application error. The transport
// layer maps kinds to wire status codes; services only guarantee a
// stable, distinguishable kind per failure condition.
type Kind string

const (
	KindValidation            Kind = "validation"
	KindPatientNotFound       Kind = "patient_not_found"
	KindProviderNotFound      Kind = "provider_not_found"
	KindDuplicateNationalID   Kind = "duplicate_national_id"
	KindDuplicateEmail        Kind = "duplicate_email"
	KindDuplicatePolicy       Kind = "duplicate_policy"
	KindDuplicateProviderCode Kind = "duplicate_provider_code"
	KindProviderInUse         Kind = "provider_in_use"
	KindInternal              Kind = "internal"
)

// AppError represents an application error
type AppError struct {
	Kind    Kind   `json:"kind"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// KindOf returns the kind carried by err, or KindInternal for errors
// that did not originate from this package.
func KindOf(err error) Kind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}

// Error constructors
func NewValidation(field, reason string) *AppError {
	return &AppError{
		Kind:    KindValidation,
		Field:   field,
		Message: reason,
	}
}

func NewPatientNotFound(id uuid.UUID) *AppError {
	return &AppError{
		Kind:    KindPatientNotFound,
		Message: fmt.Sprintf("patient %s not found", id),
	}
}

func NewPatientNotFoundByNationalID(nationalID string) *AppError {
	return &AppError{
		Kind:    KindPatientNotFound,
		Message: fmt.Sprintf("patient with national ID %s not found", nationalID),
	}
}

func NewProviderNotFound(id uuid.UUID) *AppError {
	return &AppError{
		Kind:    KindProviderNotFound,
		Message: fmt.Sprintf("insurance provider %s not found or inactive", id),
	}
}

func NewDuplicateNationalID(nationalID string) *AppError {
	return &AppError{
		Kind:    KindDuplicateNationalID,
		Field:   "national_id_number",
		Message: fmt.Sprintf("patient with national ID %s already exists", nationalID),
	}
}

func NewDuplicateEmail(email string) *AppError {
	return &AppError{
		Kind:    KindDuplicateEmail,
		Field:   "email",
		Message: fmt.Sprintf("email %s is already registered", email),
	}
}

func NewDuplicatePolicy(message string) *AppError {
	return &AppError{
		Kind:    KindDuplicatePolicy,
		Message: message,
	}
}

func NewDuplicateProviderCode(code string) *AppError {
	return &AppError{
		Kind:    KindDuplicateProviderCode,
		Field:   "code",
		Message: fmt.Sprintf("insurance provider with code %s already exists", code),
	}
}

func NewProviderInUse(id uuid.UUID) *AppError {
	return &AppError{
		Kind:    KindProviderInUse,
		Message: fmt.Sprintf("insurance provider %s is referenced by existing policies", id),
	}
}

func NewInternal(err error) *AppError {
	return &AppError{
		Kind:    KindInternal,
		Message: "internal error",
		Err:     err,
	}
}
