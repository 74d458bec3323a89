package service

import (
	"github.com/minio/minio-go/v7"
	"github.com/redis/go-redis/v9"

	"sertifikat-identitas/internal/config"
	"sertifikat-identitas/internal/pkg/appnumber"
	"sertifikat-identitas/internal/repository"
	"sertifikat-identitas/internal/service/application"
	"sertifikat-identitas/internal/service/audit"
	"sertifikat-identitas/internal/service/auth"
	"sertifikat-identitas/internal/service/document"
	"sertifikat-identitas/internal/service/email"
	"sertifikat-identitas/internal/service/notification"
	"sertifikat-identitas/internal/service/reapplication"
	"sertifikat-identitas/internal/service/requirement"
	"sertifikat-identitas/internal/service/review"
)

type Services struct {
	Auth          auth.Service
	Email         email.Service
	Requirement   requirement.Service
	Application   application.Service
	Document      document.Service
	Reapplication reapplication.Service
	Review        review.Service
	Notification  notification.Service
	Audit         audit.Service
}

func NewServices(repos *repository.Repositories, redis *redis.Client, minioClient *minio.Client, cfg *config.Config) *Services {
	emailService := email.NewService(cfg)
	authService := auth.NewService(repos.User, repos.Session, emailService, cfg)
	requirementService := requirement.NewService(repos.Requirement, redis)
	notificationService := notification.NewService(repos.Notification, repos.User, emailService)
	numberGen := appnumber.NewRedisGenerator(redis)

	applicationService := application.NewService(repos.Application, repos.Document, requirementService, notificationService, numberGen)
	documentService := document.NewService(repos.Document, repos.Application, requirementService, minioClient, cfg)
	reapplicationService := reapplication.NewService(
		repos.Application,
		repos.Document,
		repos.Reapplication,
		repos.AuditLog,
		requirementService,
		notificationService,
		numberGen,
	)
	reviewService := review.NewService(repos.Application, repos.Document, repos.AuditLog, notificationService)
	auditService := audit.NewService(repos.AuditLog)

	return &Services{
		Auth:          authService,
		Email:         emailService,
		Requirement:   requirementService,
		Application:   applicationService,
		Document:      documentService,
		Reapplication: reapplicationService,
		Review:        reviewService,
		Notification:  notificationService,
		Audit:         auditService,
	}
}
