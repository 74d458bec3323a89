package repository

import (
	"github.com/jmoiron/sqlx"
)

type Repositories struct {
	User          UserRepository
	Session       SessionRepository
	Application   ApplicationRepository
	Document      DocumentRepository
	Requirement   RequirementRepository
	Reapplication ReapplicationRepository
	Notification  NotificationRepository
	AuditLog      AuditLogRepository
}

func NewRepositories(db *sqlx.DB) *Repositories {
	return &Repositories{
		User:          NewUserRepository(db),
		Session:       NewSessionRepository(db),
		Application:   NewApplicationRepository(db),
		Document:      NewDocumentRepository(db),
		Requirement:   NewRequirementRepository(db),
		Reapplication: NewReapplicationRepository(db),
		Notification:  NewNotificationRepository(db),
		AuditLog:      NewAuditLogRepository(db),
	}
}
