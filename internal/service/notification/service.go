package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/google/uuid"

	"sertifikat-identitas/internal/domain"
	"sertifikat-identitas/internal/repository"
	"sertifikat-identitas/internal/service/email"
)

type Service interface {
	List(ctx context.Context, userID uuid.UUID, unreadOnly bool, params domain.PaginationParams) (domain.PaginatedResponse[domain.Notification], error)
	GetUnreadCount(ctx context.Context, userID uuid.UUID) (int64, error)
	MarkAsRead(ctx context.Context, id uuid.UUID) error
	MarkAllAsRead(ctx context.Context, userID uuid.UUID) error

	NotifyApplicationSubmitted(ctx context.Context, app *domain.Application) error
	NotifyApplicationReviewed(ctx context.Context, app *domain.Application, status domain.ApplicationStatus, note *string) error
	NotifyDocumentReviewed(ctx context.Context, app *domain.Application, doc *domain.SubmittedDocument, status domain.DocumentStatus, note *string) error
	DeliverReapplicationEmail(ctx context.Context, notifID uuid.UUID, record *domain.ReapplicationRecord, applicationNumber string)
}

type service struct {
	notifRepo repository.NotificationRepository
	userRepo  repository.UserRepository
	emailSvc  email.Service
}

func NewService(notifRepo repository.NotificationRepository, userRepo repository.UserRepository, emailSvc email.Service) Service {
	return &service{
		notifRepo: notifRepo,
		userRepo:  userRepo,
		emailSvc:  emailSvc,
	}
}

func (s *service) List(ctx context.Context, userID uuid.UUID, unreadOnly bool, params domain.PaginationParams) (domain.PaginatedResponse[domain.Notification], error) {
	notifications, total, err := s.notifRepo.ListByUser(ctx, userID, unreadOnly, params)
	if err != nil {
		return domain.PaginatedResponse[domain.Notification]{}, err
	}

	return domain.NewPaginatedResponse(notifications, params.Page, params.PageSize, total), nil
}

func (s *service) GetUnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	return s.notifRepo.CountUnread(ctx, userID)
}

func (s *service) MarkAsRead(ctx context.Context, id uuid.UUID) error {
	return s.notifRepo.MarkAsRead(ctx, id)
}

func (s *service) MarkAllAsRead(ctx context.Context, userID uuid.UUID) error {
	return s.notifRepo.MarkAllAsRead(ctx, userID)
}

// NotifyApplicationSubmitted fans out to every officer and admin so a new
// submission shows up in their queue.
func (s *service) NotifyApplicationSubmitted(ctx context.Context, app *domain.Application) error {
	recipients, err := s.userRepo.GetByRoles(ctx, []domain.UserRole{domain.RoleOfficer, domain.RoleAdmin})
	if err != nil {
		return fmt.Errorf("failed to get officers: %w", err)
	}

	data, _ := json.Marshal(map[string]string{
		"application_id":     app.ID.String(),
		"application_number": app.ApplicationNumber,
	})

	for _, recipient := range recipients {
		notif := &domain.Notification{
			ID:            uuid.New(),
			UserID:        recipient.ID,
			ApplicationID: &app.ID,
			Type:          domain.NotifApplicationSubmitted,
			Title:         "Permohonan Baru",
			Message:       fmt.Sprintf("Permohonan %s menunggu pemeriksaan", app.ApplicationNumber),
			Data:          json.RawMessage(data),
		}

		if err := s.notifRepo.Create(ctx, notif); err != nil {
			log.Printf("Failed to create notification for user %s: %v", recipient.ID, err)
		}
	}

	return nil
}

func (s *service) NotifyApplicationReviewed(ctx context.Context, app *domain.Application, status domain.ApplicationStatus, note *string) error {
	message := fmt.Sprintf("Permohonan %s Anda kini berstatus %s", app.ApplicationNumber, statusLabel(status))
	if note != nil && *note != "" {
		message += ": " + *note
	}

	data, _ := json.Marshal(map[string]string{
		"application_id":     app.ID.String(),
		"application_number": app.ApplicationNumber,
		"status":             string(status),
	})

	notif := &domain.Notification{
		ID:            uuid.New(),
		UserID:        app.UserID,
		ApplicationID: &app.ID,
		Type:          domain.NotifApplicationReviewed,
		Title:         "Status Permohonan Diperbarui",
		Message:       message,
		Data:          json.RawMessage(data),
	}

	if err := s.notifRepo.Create(ctx, notif); err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}

	go s.deliverStatusEmail(notif.ID, app, string(status), note)

	return nil
}

func (s *service) NotifyDocumentReviewed(ctx context.Context, app *domain.Application, doc *domain.SubmittedDocument, status domain.DocumentStatus, note *string) error {
	message := fmt.Sprintf("Dokumen %s pada permohonan %s kini berstatus %s", doc.FileName, app.ApplicationNumber, documentStatusLabel(status))
	if note != nil && *note != "" {
		message += ": " + *note
	}

	data, _ := json.Marshal(map[string]string{
		"application_id": app.ID.String(),
		"document_id":    doc.ID.String(),
		"status":         string(status),
	})

	notif := &domain.Notification{
		ID:            uuid.New(),
		UserID:        app.UserID,
		ApplicationID: &app.ID,
		Type:          domain.NotifDocumentReviewed,
		Title:         "Dokumen Diperiksa",
		Message:       message,
		Data:          json.RawMessage(data),
	}

	if err := s.notifRepo.Create(ctx, notif); err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}

	return nil
}

// DeliverReapplicationEmail sends the summary mail for a notification that
// was already written by the commit transaction, then flips its delivery
// flag. Failures only log; the committed records stand on their own.
func (s *service) DeliverReapplicationEmail(ctx context.Context, notifID uuid.UUID, record *domain.ReapplicationRecord, applicationNumber string) {
	user, err := s.userRepo.GetByID(ctx, record.UserID)
	if err != nil || user == nil {
		log.Printf("Failed to load user %s for reapplication email: %v", record.UserID, err)
		return
	}

	err = s.emailSvc.SendReapplicationSummary(ctx, user.Email, user.FullName, applicationNumber, record.ReusedCount, record.RequiredNewCount)
	if err != nil {
		log.Printf("Failed to send reapplication email to %s: %v", user.Email, err)
		return
	}

	if err := s.notifRepo.MarkEmailSent(ctx, notifID); err != nil {
		log.Printf("Failed to mark notification %s email sent: %v", notifID, err)
	}
}

func (s *service) deliverStatusEmail(notifID uuid.UUID, app *domain.Application, status string, note *string) {
	ctx := context.Background()

	user, err := s.userRepo.GetByID(ctx, app.UserID)
	if err != nil || user == nil {
		log.Printf("Failed to load user %s for status email: %v", app.UserID, err)
		return
	}

	err = s.emailSvc.SendApplicationStatusEmail(ctx, user.Email, user.FullName, app.ApplicationNumber, status, note)
	if err != nil {
		log.Printf("Failed to send status email to %s: %v", user.Email, err)
		return
	}

	if err := s.notifRepo.MarkEmailSent(ctx, notifID); err != nil {
		log.Printf("Failed to mark notification %s email sent: %v", notifID, err)
	}
}

func statusLabel(status domain.ApplicationStatus) string {
	switch status {
	case domain.AppStatusApproved:
		return "disetujui"
	case domain.AppStatusRejected:
		return "ditolak"
	case domain.AppStatusIncomplete:
		return "belum lengkap"
	case domain.AppStatusPending:
		return "sedang diproses"
	case domain.AppStatusSubmitted:
		return "diajukan"
	default:
		return string(status)
	}
}

func documentStatusLabel(status domain.DocumentStatus) string {
	switch status {
	case domain.DocStatusApproved:
		return "disetujui"
	case domain.DocStatusRejected:
		return "ditolak"
	case domain.DocStatusExpired:
		return "kedaluwarsa"
	default:
		return "menunggu pemeriksaan"
	}
}
