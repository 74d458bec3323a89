package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type Notification struct {
	ID            uuid.UUID        `json:"id" db:"id"`
	UserID        uuid.UUID        `json:"user_id" db:"user_id"`
	ApplicationID *uuid.UUID       `json:"application_id,omitempty" db:"application_id"`
	Type          NotificationType `json:"type" db:"type"`
	Title         string           `json:"title" db:"title"`
	Message       string           `json:"message" db:"message"`
	Data          json.RawMessage  `json:"data,omitempty" db:"data"`
	IsRead        bool             `json:"is_read" db:"is_read"`
	ReadAt        *time.Time       `json:"read_at,omitempty" db:"read_at"`
	IsEmailSent   bool             `json:"is_email_sent" db:"is_email_sent"`
	CreatedAt     time.Time        `json:"created_at" db:"created_at"`
}

type NotificationType string

const (
	NotifApplicationSubmitted NotificationType = "APPLICATION_SUBMITTED"
	NotifApplicationReviewed  NotificationType = "APPLICATION_REVIEWED"
	NotifDocumentReviewed     NotificationType = "DOCUMENT_REVIEWED"
	NotifReapplicationCreated NotificationType = "REAPPLICATION_CREATED"
)
