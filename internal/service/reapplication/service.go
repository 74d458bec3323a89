package reapplication

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"sertifikat-identitas/internal/domain"
	"sertifikat-identitas/internal/pkg/appnumber"
	"sertifikat-identitas/internal/repository"
	"sertifikat-identitas/internal/service/notification"
	"sertifikat-identitas/internal/service/requirement"
)

var (
	ErrApplicationNotFound = errors.New("application not found")
	ErrNotEligible         = errors.New("application is not eligible for re-application")
	// ErrStalePlan means the original application changed between plan
	// generation and commit confirmation; the caller must re-run the preview.
	ErrStalePlan = errors.New("plan is stale, application has changed")
	// ErrCommitConflict means another commit raced on the same original
	// application; retryable after re-fetching and re-confirming.
	ErrCommitConflict = errors.New("concurrent re-application commit detected")
)

// RequestMeta carries caller information for the audit trail.
type RequestMeta struct {
	IPAddress *string
	UserAgent *string
}

type Service interface {
	ListEligible(ctx context.Context, userID uuid.UUID) ([]domain.EligibleApplication, error)
	PreviewPlan(ctx context.Context, userID, applicationID uuid.UUID) (*domain.ReapplicationPlan, error)
	Commit(ctx context.Context, userID, applicationID uuid.UUID, input domain.CommitReapplicationInput, meta *RequestMeta) (*domain.Application, *domain.ReapplicationRecord, error)
	ListRecords(ctx context.Context, userID uuid.UUID, params domain.PaginationParams) (domain.PaginatedResponse[domain.ReapplicationRecord], error)
}

type service struct {
	appRepo   repository.ApplicationRepository
	docRepo   repository.DocumentRepository
	reappRepo repository.ReapplicationRepository
	auditRepo repository.AuditLogRepository
	reqSvc    requirement.Service
	notifSvc  notification.Service
	numberGen appnumber.Generator
}

func NewService(
	appRepo repository.ApplicationRepository,
	docRepo repository.DocumentRepository,
	reappRepo repository.ReapplicationRepository,
	auditRepo repository.AuditLogRepository,
	reqSvc requirement.Service,
	notifSvc notification.Service,
	numberGen appnumber.Generator,
) Service {
	return &service{
		appRepo:   appRepo,
		docRepo:   docRepo,
		reappRepo: reappRepo,
		auditRepo: auditRepo,
		reqSvc:    reqSvc,
		notifSvc:  notifSvc,
		numberGen: numberGen,
	}
}

func (s *service) ListEligible(ctx context.Context, userID uuid.UUID) ([]domain.EligibleApplication, error) {
	apps, err := s.appRepo.ListAllByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	eligible := make([]domain.EligibleApplication, 0)

	for i := range apps {
		app := &apps[i]
		if app.Status == domain.AppStatusDraft {
			continue
		}

		docs, err := s.docRepo.ListCurrentByApplication(ctx, app.ID)
		if err != nil {
			return nil, err
		}

		ok, hasExpired := IsEligible(app, docs, now)
		if !ok {
			continue
		}

		eligible = append(eligible, domain.EligibleApplication{
			Application:        *app,
			HasExpiredDocument: hasExpired,
		})
	}

	return eligible, nil
}

func (s *service) PreviewPlan(ctx context.Context, userID, applicationID uuid.UUID) (*domain.ReapplicationPlan, error) {
	_, _, plan, err := s.classify(ctx, userID, applicationID)
	if err != nil {
		return nil, err
	}
	return plan, nil
}

// Commit turns a confirmed plan into durable records. Classification is
// re-run against the application's state at confirmation time, never against
// the possibly stale preview; the repository's transaction additionally
// guards against a concurrent commit on the same original. Each call mints a
// fresh application number, so committing twice yields two applications.
func (s *service) Commit(ctx context.Context, userID, applicationID uuid.UUID, input domain.CommitReapplicationInput, meta *RequestMeta) (*domain.Application, *domain.ReapplicationRecord, error) {
	app, _, plan, err := s.classify(ctx, userID, applicationID)
	if err != nil {
		return nil, nil, err
	}

	if !app.UpdatedAt.Equal(input.SourceUpdatedAt) {
		return nil, nil, ErrStalePlan
	}

	number, err := s.numberGen.Next(ctx, app.ServiceType)
	if err != nil {
		return nil, nil, fmt.Errorf("allocate application number: %w", err)
	}

	newApp := &domain.Application{
		ID:                uuid.New(),
		UserID:            app.UserID,
		ApplicationNumber: number,
		ServiceType:       app.ServiceType,
		Purpose:           app.Purpose,
		Status:            domain.AppStatusDraft,
	}

	clones := make([]*domain.SubmittedDocument, 0, plan.ReusableCount)
	for _, item := range plan.Items {
		if !item.CanReuse || item.Document == nil {
			continue
		}
		original := item.Document
		clones = append(clones, &domain.SubmittedDocument{
			ID:            uuid.New(),
			ApplicationID: newApp.ID,
			RequirementID: original.RequirementID,
			UploadedBy:    original.UploadedBy,
			FileName:      original.FileName,
			FileSize:      original.FileSize,
			MimeType:      original.MimeType,
			StoragePath:   original.StoragePath,
			Status:        original.Status,
			ExpiresAt:     item.ExpiresAt,
			ReusedFromID:  &original.ID,
		})
	}

	record := &domain.ReapplicationRecord{
		ID:                    uuid.New(),
		OriginalApplicationID: app.ID,
		NewApplicationID:      newApp.ID,
		UserID:                app.UserID,
		Reason:                plan.Reason,
		ReusedCount:           plan.ReusableCount,
		RequiredNewCount:      plan.RequiredNewCount,
		Status:                "completed",
	}

	notifData, _ := json.Marshal(map[string]string{
		"reapplication_id":   record.ID.String(),
		"application_id":     newApp.ID.String(),
		"application_number": newApp.ApplicationNumber,
	})
	notif := &domain.Notification{
		ID:            uuid.New(),
		UserID:        app.UserID,
		ApplicationID: &newApp.ID,
		Type:          domain.NotifReapplicationCreated,
		Title:         "Permohonan Ulang Dibuat",
		Message: fmt.Sprintf("Permohonan ulang %s dibuat: %d dokumen digunakan kembali, %d dokumen perlu diunggah ulang",
			newApp.ApplicationNumber, plan.ReusableCount, plan.RequiredNewCount),
		Data: json.RawMessage(notifData),
	}

	err = s.reappRepo.Commit(ctx, app.ID, input.SourceUpdatedAt, newApp, clones, record, notif)
	if errors.Is(err, repository.ErrApplicationChanged) {
		return nil, nil, ErrCommitConflict
	}
	if err != nil {
		return nil, nil, err
	}

	s.logCommit(ctx, userID, app, record, meta)

	if s.notifSvc != nil {
		go s.notifSvc.DeliverReapplicationEmail(context.Background(), notif.ID, record, newApp.ApplicationNumber)
	}

	return newApp, record, nil
}

func (s *service) ListRecords(ctx context.Context, userID uuid.UUID, params domain.PaginationParams) (domain.PaginatedResponse[domain.ReapplicationRecord], error) {
	records, total, err := s.reappRepo.ListByUser(ctx, userID, params)
	if err != nil {
		return domain.PaginatedResponse[domain.ReapplicationRecord]{}, err
	}

	return domain.NewPaginatedResponse(records, params.Page, params.PageSize, total), nil
}

// classify loads the application, checks ownership and eligibility, and runs
// the classifier against the active catalog. Used by both preview and commit
// so commit always sees current state.
func (s *service) classify(ctx context.Context, userID, applicationID uuid.UUID) (*domain.Application, []domain.SubmittedDocument, *domain.ReapplicationPlan, error) {
	app, err := s.appRepo.GetByID(ctx, applicationID)
	if err != nil {
		return nil, nil, nil, err
	}
	if app == nil || app.UserID != userID {
		return nil, nil, nil, ErrApplicationNotFound
	}

	docs, err := s.docRepo.ListCurrentByApplication(ctx, app.ID)
	if err != nil {
		return nil, nil, nil, err
	}

	now := time.Now()
	if ok, _ := IsEligible(app, docs, now); !ok {
		return nil, nil, nil, ErrNotEligible
	}

	reqs, err := s.reqSvc.ListActive(ctx, app.ServiceType)
	if err != nil {
		// Fail closed: without the catalog no requirement may be treated
		// as satisfied, so no plan can be shown at all.
		return nil, nil, nil, err
	}

	items := ClassifyDocuments(reqs, docs, now)
	plan := BuildPlan(app, items)

	return app, docs, plan, nil
}

func (s *service) logCommit(ctx context.Context, userID uuid.UUID, app *domain.Application, record *domain.ReapplicationRecord, meta *RequestMeta) {
	var ip, ua *string
	if meta != nil {
		ip = meta.IPAddress
		ua = meta.UserAgent
	}

	entry := repository.NewAuditEntry(userID, "COMMIT_REAPPLICATION", "APPLICATION", app.ID,
		map[string]string{"status": string(app.Status)},
		map[string]interface{}{
			"reapplication_id":   record.ID.String(),
			"new_application_id": record.NewApplicationID.String(),
			"reason":             string(record.Reason),
			"reused_count":       record.ReusedCount,
			"required_new_count": record.RequiredNewCount,
		},
		ip, ua,
	)

	if err := s.auditRepo.Create(ctx, entry); err != nil {
		log.Printf("Failed to write audit log for reapplication %s: %v", record.ID, err)
	}
}
