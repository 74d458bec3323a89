package handler

import "sertifikat-identitas/internal/service"

type Handlers struct {
	Auth          *AuthHandler
	Requirement   *RequirementHandler
	Application   *ApplicationHandler
	Document      *DocumentHandler
	Reapplication *ReapplicationHandler
	Review        *ReviewHandler
	Notification  *NotificationHandler
	Audit         *AuditHandler
}

func NewHandlers(services *service.Services) *Handlers {
	return &Handlers{
		Auth:          NewAuthHandler(services.Auth),
		Requirement:   NewRequirementHandler(services.Requirement),
		Application:   NewApplicationHandler(services.Application),
		Document:      NewDocumentHandler(services.Document),
		Reapplication: NewReapplicationHandler(services.Reapplication),
		Review:        NewReviewHandler(services.Review),
		Notification:  NewNotificationHandler(services.Notification),
		Audit:         NewAuditHandler(services.Audit),
	}
}
