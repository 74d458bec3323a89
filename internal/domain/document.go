package domain

import (
	"time"

	"github.com/google/uuid"
)

type SubmittedDocument struct {
	ID            uuid.UUID      `json:"id" db:"id"`
	ApplicationID uuid.UUID      `json:"application_id" db:"application_id"`
	RequirementID uuid.UUID      `json:"requirement_id" db:"requirement_id"`
	UploadedBy    uuid.UUID      `json:"uploaded_by" db:"uploaded_by"`
	FileName      string         `json:"file_name" db:"file_name"`
	FileSize      int64          `json:"file_size" db:"file_size"`
	MimeType      string         `json:"mime_type" db:"mime_type"`
	StoragePath   string         `json:"-" db:"storage_path"`
	URL           string         `json:"url" db:"-"`
	Status        DocumentStatus `json:"status" db:"status"`
	ExpiresAt     *time.Time     `json:"expires_at,omitempty" db:"expires_at"`
	ReusedFromID  *uuid.UUID     `json:"reused_from_document_id,omitempty" db:"reused_from_document_id"`
	CreatedAt     time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at" db:"updated_at"`
}

type DocumentStatus string

const (
	DocStatusPending  DocumentStatus = "pending"
	DocStatusApproved DocumentStatus = "approved"
	DocStatusRejected DocumentStatus = "rejected"
	DocStatusExpired  DocumentStatus = "expired"
)

func (s DocumentStatus) IsValid() bool {
	switch s {
	case DocStatusPending, DocStatusApproved, DocStatusRejected, DocStatusExpired:
		return true
	default:
		return false
	}
}

type UploadDocumentInput struct {
	RequirementID uuid.UUID  `json:"requirement_id" validate:"required"`
	ExpiresAt     *time.Time `json:"expires_at,omitempty"`
}

type ReviewDocumentInput struct {
	Status DocumentStatus `json:"status" validate:"required"`
	Note   *string        `json:"note,omitempty" validate:"omitempty,max=500"`
}
