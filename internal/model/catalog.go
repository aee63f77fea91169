package model

import "github.com/google/uuid"

// CatalogKind names one of the reference tables. Catalog values are
// open (rows can be added without code changes); the set of kinds is
// closed because each kind is backed by its own table.
type CatalogKind string

const (
	CatalogGender           CatalogKind = "genders"
	CatalogBloodType        CatalogKind = "blood_types"
	CatalogMaritalStatus    CatalogKind = "marital_statuses"
	CatalogRelationshipType CatalogKind = "relationship_types"
	CatalogInsuranceStatus  CatalogKind = "insurance_statuses"
)

func (k CatalogKind) Valid() bool {
	switch k {
	case CatalogGender, CatalogBloodType, CatalogMaritalStatus,
		CatalogRelationshipType, CatalogInsuranceStatus:
		return true
	}
	return false
}

// CatalogEntry is a single reference value, referenced by code from
// domain entities.
type CatalogEntry struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Code        string    `json:"code" db:"code"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description" db:"description"`
}
