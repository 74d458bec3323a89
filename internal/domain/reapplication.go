package domain

import (
	"time"

	"github.com/google/uuid"
)

// RequirementStatus is the per-requirement classification result for one
// application: which requirement slots are satisfied, reusable or outstanding.
type RequirementStatus string

const (
	ReqStatusValid    RequirementStatus = "valid"
	ReqStatusExpired  RequirementStatus = "expired"
	ReqStatusRejected RequirementStatus = "rejected"
	ReqStatusPending  RequirementStatus = "pending"
	ReqStatusMissing  RequirementStatus = "missing"
)

type DocumentClassification struct {
	Requirement     DocumentRequirement `json:"requirement"`
	Document        *SubmittedDocument  `json:"document,omitempty"`
	Status          RequirementStatus   `json:"status"`
	CanReuse        bool                `json:"can_reuse"`
	ExpiresAt       *time.Time          `json:"expires_at,omitempty"`
	DaysUntilExpiry *int                `json:"days_until_expiry,omitempty"`
}

type ReapplicationReason string

const (
	ReasonRejectedApplication    ReapplicationReason = "rejected_application"
	ReasonIncompleteRequirements ReapplicationReason = "incomplete_requirements"
	ReasonExpiredDocuments       ReapplicationReason = "expired_documents"
	ReasonUserRequest            ReapplicationReason = "user_request"
)

// ReapplicationPlan is the dry-run preview of a re-application: which
// documents carry over and which must be uploaded again. Building the plan
// has no side effects; it only becomes durable through a commit.
type ReapplicationPlan struct {
	OriginalApplicationID uuid.UUID   `json:"original_application_id"`
	ApplicationNumber     string      `json:"application_number"`
	ServiceType           ServiceType `json:"service_type"`
	// SourceUpdatedAt pins the original application's version the plan was
	// computed against. Commit rejects the plan when it has moved on.
	SourceUpdatedAt   time.Time                `json:"source_updated_at"`
	Items             []DocumentClassification `json:"items"`
	TotalRequirements int                      `json:"total_requirements"`
	ReusableCount     int                      `json:"reusable_count"`
	RequiredNewCount  int                      `json:"required_new_count"`
	CompletionRatio   float64                  `json:"completion_ratio"`
	Reason            ReapplicationReason      `json:"reason"`
}

// ReapplicationRecord is the write-once audit trail of one committed
// re-application, linking the original application to its successor.
type ReapplicationRecord struct {
	ID                    uuid.UUID           `json:"id" db:"id"`
	OriginalApplicationID uuid.UUID           `json:"original_application_id" db:"original_application_id"`
	NewApplicationID      uuid.UUID           `json:"new_application_id" db:"new_application_id"`
	UserID                uuid.UUID           `json:"user_id" db:"user_id"`
	Reason                ReapplicationReason `json:"reason" db:"reason"`
	ReusedCount           int                 `json:"reused_count" db:"reused_count"`
	RequiredNewCount      int                 `json:"required_new_count" db:"required_new_count"`
	Status                string              `json:"status" db:"status"`
	CreatedAt             time.Time           `json:"created_at" db:"created_at"`
	UpdatedAt             time.Time           `json:"updated_at" db:"updated_at"`
}

type CommitReapplicationInput struct {
	SourceUpdatedAt time.Time `json:"source_updated_at" validate:"required"`
}

// EligibleApplication pairs a past application with the reason it may be
// re-applied from.
type EligibleApplication struct {
	Application        Application `json:"application"`
	HasExpiredDocument bool        `json:"has_expired_document"`
}
