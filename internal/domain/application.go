package domain

import (
	"time"

	"github.com/google/uuid"
)

type Application struct {
	ID                uuid.UUID         `json:"id" db:"id"`
	UserID            uuid.UUID         `json:"user_id" db:"user_id"`
	ApplicationNumber string            `json:"application_number" db:"application_number"`
	ServiceType       ServiceType       `json:"service_type" db:"service_type"`
	Purpose           string            `json:"purpose" db:"purpose"`
	Status            ApplicationStatus `json:"status" db:"status"`
	SubmittedAt       *time.Time        `json:"submitted_at,omitempty" db:"submitted_at"`
	CreatedAt         time.Time         `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time         `json:"updated_at" db:"updated_at"`

	Documents []SubmittedDocument `json:"documents,omitempty" db:"-"`
}

type ServiceType string

const (
	ServiceIdentityCertificate ServiceType = "SURAT_KETERANGAN_IDENTITAS"
)

func (s ServiceType) IsValid() bool {
	return s == ServiceIdentityCertificate
}

// NumberPrefix is the leading segment of human-readable application numbers,
// e.g. SKI-2026-000421.
func (s ServiceType) NumberPrefix() string {
	switch s {
	case ServiceIdentityCertificate:
		return "SKI"
	default:
		return "APP"
	}
}

type ApplicationStatus string

const (
	AppStatusDraft      ApplicationStatus = "draft"
	AppStatusSubmitted  ApplicationStatus = "submitted"
	AppStatusPending    ApplicationStatus = "pending"
	AppStatusIncomplete ApplicationStatus = "incomplete"
	AppStatusRejected   ApplicationStatus = "rejected"
	AppStatusApproved   ApplicationStatus = "approved"
)

func (s ApplicationStatus) IsValid() bool {
	switch s {
	case AppStatusDraft, AppStatusSubmitted, AppStatusPending, AppStatusIncomplete, AppStatusRejected, AppStatusApproved:
		return true
	default:
		return false
	}
}

type CreateApplicationInput struct {
	ServiceType ServiceType `json:"service_type" validate:"required"`
	Purpose     string      `json:"purpose" validate:"required,max=500"`
}

type ReviewApplicationInput struct {
	Status ApplicationStatus `json:"status" validate:"required"`
	Note   *string           `json:"note,omitempty" validate:"omitempty,max=500"`
}
