package unit_test

import (
	"context"
	"testing"

	"sertifikat-identitas/internal/domain"
	"sertifikat-identitas/internal/service/review"
	"sertifikat-identitas/tests/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestReviewService_ReviewApplication(t *testing.T) {
	ctx := context.Background()
	reviewerID := uuid.New()

	submittedApp := func() *domain.Application {
		return &domain.Application{
			ID:                uuid.New(),
			UserID:            uuid.New(),
			ApplicationNumber: "SKI-2026-000007",
			ServiceType:       domain.ServiceIdentityCertificate,
			Status:            domain.AppStatusSubmitted,
		}
	}

	t.Run("Approve", func(t *testing.T) {
		appRepo := new(mocks.ApplicationRepository)
		docRepo := new(mocks.DocumentRepository)
		auditRepo := new(mocks.AuditLogRepository)
		notifSvc := new(mocks.NotificationService)
		svc := review.NewService(appRepo, docRepo, auditRepo, notifSvc)

		app := submittedApp()
		appRepo.On("GetByID", ctx, app.ID).Return(app, nil)
		appRepo.On("UpdateStatus", ctx, app.ID, domain.AppStatusApproved).Return(nil)
		auditRepo.On("Create", ctx, mock.MatchedBy(func(entry *domain.AuditLog) bool {
			return entry.UserID == reviewerID && entry.Action == "REVIEW_APPLICATION"
		})).Return(nil)
		notifSvc.On("NotifyApplicationReviewed", ctx, app, domain.AppStatusApproved, (*string)(nil)).Return(nil)

		reviewed, err := svc.ReviewApplication(ctx, reviewerID, app.ID, domain.ReviewApplicationInput{
			Status: domain.AppStatusApproved,
		}, nil)

		assert.NoError(t, err)
		assert.Equal(t, domain.AppStatusApproved, reviewed.Status)
		appRepo.AssertExpectations(t)
		auditRepo.AssertExpectations(t)
		notifSvc.AssertExpectations(t)
	})

	t.Run("Draft Is Not Reviewable", func(t *testing.T) {
		appRepo := new(mocks.ApplicationRepository)
		svc := review.NewService(appRepo, new(mocks.DocumentRepository), new(mocks.AuditLogRepository), new(mocks.NotificationService))

		app := submittedApp()
		app.Status = domain.AppStatusDraft
		appRepo.On("GetByID", ctx, app.ID).Return(app, nil)

		reviewed, err := svc.ReviewApplication(ctx, reviewerID, app.ID, domain.ReviewApplicationInput{
			Status: domain.AppStatusApproved,
		}, nil)

		assert.ErrorIs(t, err, review.ErrNotReviewable)
		assert.Nil(t, reviewed)
	})

	t.Run("Invalid Target Status", func(t *testing.T) {
		svc := review.NewService(new(mocks.ApplicationRepository), new(mocks.DocumentRepository), new(mocks.AuditLogRepository), new(mocks.NotificationService))

		reviewed, err := svc.ReviewApplication(ctx, reviewerID, uuid.New(), domain.ReviewApplicationInput{
			Status: domain.AppStatusDraft,
		}, nil)

		assert.ErrorIs(t, err, review.ErrInvalidStatus)
		assert.Nil(t, reviewed)
	})
}

func TestReviewService_ReviewDocument(t *testing.T) {
	ctx := context.Background()
	reviewerID := uuid.New()

	t.Run("Reject Document", func(t *testing.T) {
		appRepo := new(mocks.ApplicationRepository)
		docRepo := new(mocks.DocumentRepository)
		auditRepo := new(mocks.AuditLogRepository)
		notifSvc := new(mocks.NotificationService)
		svc := review.NewService(appRepo, docRepo, auditRepo, notifSvc)

		app := &domain.Application{
			ID:     uuid.New(),
			UserID: uuid.New(),
			Status: domain.AppStatusSubmitted,
		}
		doc := makeDocument(uuid.New(), domain.DocStatusPending, nil)
		doc.ApplicationID = app.ID
		note := "Hasil pindaian tidak terbaca"

		docRepo.On("GetByID", ctx, doc.ID).Return(&doc, nil)
		appRepo.On("GetByID", ctx, app.ID).Return(app, nil)
		docRepo.On("UpdateStatus", ctx, doc.ID, domain.DocStatusRejected).Return(nil)
		auditRepo.On("Create", ctx, mock.AnythingOfType("*domain.AuditLog")).Return(nil)
		notifSvc.On("NotifyDocumentReviewed", ctx, app, mock.AnythingOfType("*domain.SubmittedDocument"), domain.DocStatusRejected, &note).Return(nil)

		reviewed, err := svc.ReviewDocument(ctx, reviewerID, doc.ID, domain.ReviewDocumentInput{
			Status: domain.DocStatusRejected,
			Note:   &note,
		}, nil)

		assert.NoError(t, err)
		assert.Equal(t, domain.DocStatusRejected, reviewed.Status)
		docRepo.AssertExpectations(t)
		notifSvc.AssertExpectations(t)
	})

	t.Run("Pending Is Not A Review Outcome", func(t *testing.T) {
		svc := review.NewService(new(mocks.ApplicationRepository), new(mocks.DocumentRepository), new(mocks.AuditLogRepository), new(mocks.NotificationService))

		reviewed, err := svc.ReviewDocument(ctx, reviewerID, uuid.New(), domain.ReviewDocumentInput{
			Status: domain.DocStatusPending,
		}, nil)

		assert.ErrorIs(t, err, review.ErrInvalidStatus)
		assert.Nil(t, reviewed)
	})
}
