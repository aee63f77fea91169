package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindValidation, KindOf(NewValidation("phone", "bad phone")))
	assert.Equal(t, KindPatientNotFound, KindOf(NewPatientNotFound(uuid.New())))
	assert.Equal(t, KindPatientNotFound, KindOf(NewPatientNotFoundByNationalID("12345678")))
	assert.Equal(t, KindInternal, KindOf(errors.New("plain")))
	assert.Equal(t, KindInternal, KindOf(nil))
}

func TestKindOfWrapped(t *testing.T) {
	err := fmt.Errorf("outer: %w", NewDuplicateEmail("a@b.com"))
	assert.Equal(t, KindDuplicateEmail, KindOf(err))
	assert.True(t, IsKind(err, KindDuplicateEmail))
	assert.False(t, IsKind(err, KindDuplicateNationalID))
}

func TestInternalUnwraps(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewInternal(cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestValidationCarriesField(t *testing.T) {
	err := NewValidation("email", "invalid email format")
	assert.Equal(t, "email", err.Field)
	assert.Equal(t, "invalid email format", err.Error())
}
