package review

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"

	"sertifikat-identitas/internal/domain"
	"sertifikat-identitas/internal/repository"
	"sertifikat-identitas/internal/service/notification"
)

var (
	ErrApplicationNotFound = errors.New("application not found")
	ErrDocumentNotFound    = errors.New("document not found")
	ErrInvalidStatus       = errors.New("invalid review status")
	ErrNotReviewable       = errors.New("application has not been submitted")
)

// RequestMeta carries caller information for the audit trail.
type RequestMeta struct {
	IPAddress *string
	UserAgent *string
}

type Service interface {
	ReviewApplication(ctx context.Context, reviewerID, applicationID uuid.UUID, input domain.ReviewApplicationInput, meta *RequestMeta) (*domain.Application, error)
	ReviewDocument(ctx context.Context, reviewerID, documentID uuid.UUID, input domain.ReviewDocumentInput, meta *RequestMeta) (*domain.SubmittedDocument, error)
}

type service struct {
	appRepo   repository.ApplicationRepository
	docRepo   repository.DocumentRepository
	auditRepo repository.AuditLogRepository
	notifSvc  notification.Service
}

func NewService(
	appRepo repository.ApplicationRepository,
	docRepo repository.DocumentRepository,
	auditRepo repository.AuditLogRepository,
	notifSvc notification.Service,
) Service {
	return &service{
		appRepo:   appRepo,
		docRepo:   docRepo,
		auditRepo: auditRepo,
		notifSvc:  notifSvc,
	}
}

func (s *service) ReviewApplication(ctx context.Context, reviewerID, applicationID uuid.UUID, input domain.ReviewApplicationInput, meta *RequestMeta) (*domain.Application, error) {
	switch input.Status {
	case domain.AppStatusPending, domain.AppStatusIncomplete, domain.AppStatusRejected, domain.AppStatusApproved:
	default:
		return nil, fmt.Errorf("%w: %s", ErrInvalidStatus, input.Status)
	}

	app, err := s.appRepo.GetByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if app == nil {
		return nil, ErrApplicationNotFound
	}
	if app.Status == domain.AppStatusDraft {
		return nil, ErrNotReviewable
	}

	oldStatus := app.Status
	if err := s.appRepo.UpdateStatus(ctx, app.ID, input.Status); err != nil {
		return nil, fmt.Errorf("failed to update application status: %w", err)
	}
	app.Status = input.Status

	s.logReview(ctx, reviewerID, "REVIEW_APPLICATION", "APPLICATION", app.ID, oldStatus, input.Status, meta)

	if err := s.notifSvc.NotifyApplicationReviewed(ctx, app, input.Status, input.Note); err != nil {
		log.Printf("Failed to notify applicant for application %s: %v", app.ID, err)
	}

	return app, nil
}

func (s *service) ReviewDocument(ctx context.Context, reviewerID, documentID uuid.UUID, input domain.ReviewDocumentInput, meta *RequestMeta) (*domain.SubmittedDocument, error) {
	if !input.Status.IsValid() || input.Status == domain.DocStatusPending {
		return nil, fmt.Errorf("%w: %s", ErrInvalidStatus, input.Status)
	}

	doc, err := s.docRepo.GetByID(ctx, documentID)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, ErrDocumentNotFound
	}

	app, err := s.appRepo.GetByID(ctx, doc.ApplicationID)
	if err != nil {
		return nil, err
	}
	if app == nil {
		return nil, ErrApplicationNotFound
	}

	oldStatus := doc.Status
	if err := s.docRepo.UpdateStatus(ctx, doc.ID, input.Status); err != nil {
		return nil, fmt.Errorf("failed to update document status: %w", err)
	}
	doc.Status = input.Status

	s.logReview(ctx, reviewerID, "REVIEW_DOCUMENT", "DOCUMENT", doc.ID, oldStatus, input.Status, meta)

	if err := s.notifSvc.NotifyDocumentReviewed(ctx, app, doc, input.Status, input.Note); err != nil {
		log.Printf("Failed to notify applicant for document %s: %v", doc.ID, err)
	}

	return doc, nil
}

func (s *service) logReview(ctx context.Context, reviewerID uuid.UUID, action, entityType string, entityID uuid.UUID, oldStatus, newStatus interface{}, meta *RequestMeta) {
	var ip, ua *string
	if meta != nil {
		ip = meta.IPAddress
		ua = meta.UserAgent
	}

	entry := repository.NewAuditEntry(reviewerID, action, entityType, entityID,
		map[string]interface{}{"status": oldStatus},
		map[string]interface{}{"status": newStatus},
		ip, ua,
	)

	if err := s.auditRepo.Create(ctx, entry); err != nil {
		log.Printf("Failed to write audit log for %s %s: %v", entityType, entityID, err)
	}
}
