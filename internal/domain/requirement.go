package domain

import (
	"time"

	"github.com/google/uuid"
)

// DocumentRequirement is one entry of the per-service requirement catalog.
// Only active requirements of a service type participate in classification.
type DocumentRequirement struct {
	ID           uuid.UUID   `json:"id" db:"id"`
	ServiceType  ServiceType `json:"service_type" db:"service_type"`
	Name         string      `json:"name" db:"name"`
	Description  string      `json:"description" db:"description"`
	ValidityDays int         `json:"validity_days" db:"validity_days"`
	IsMandatory  bool        `json:"is_mandatory" db:"is_mandatory"`
	IsActive     bool        `json:"is_active" db:"is_active"`
	CreatedAt    time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at" db:"updated_at"`
}

// HasExpiry reports whether documents for this requirement expire at all.
// ValidityDays == 0 means the document never expires.
func (r *DocumentRequirement) HasExpiry() bool {
	return r.ValidityDays > 0
}
