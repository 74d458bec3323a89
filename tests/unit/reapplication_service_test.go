package unit_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"sertifikat-identitas/internal/domain"
	"sertifikat-identitas/internal/repository"
	"sertifikat-identitas/internal/service/reapplication"
	"sertifikat-identitas/internal/service/requirement"
	"sertifikat-identitas/tests/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type reapplicationFixture struct {
	appRepo   *mocks.ApplicationRepository
	docRepo   *mocks.DocumentRepository
	reappRepo *mocks.ReapplicationRepository
	auditRepo *mocks.AuditLogRepository
	reqRepo   *mocks.RequirementRepository
	notifSvc  *mocks.NotificationService
	numberGen *mocks.NumberGenerator
	svc       reapplication.Service
}

func newReapplicationFixture() *reapplicationFixture {
	f := &reapplicationFixture{
		appRepo:   new(mocks.ApplicationRepository),
		docRepo:   new(mocks.DocumentRepository),
		reappRepo: new(mocks.ReapplicationRepository),
		auditRepo: new(mocks.AuditLogRepository),
		reqRepo:   new(mocks.RequirementRepository),
		notifSvc:  new(mocks.NotificationService),
		numberGen: new(mocks.NumberGenerator),
	}
	reqSvc := requirement.NewService(f.reqRepo, nil)
	f.svc = reapplication.NewService(f.appRepo, f.docRepo, f.reappRepo, f.auditRepo, reqSvc, f.notifSvc, f.numberGen)
	return f
}

func rejectedApplication(userID uuid.UUID) *domain.Application {
	return &domain.Application{
		ID:                uuid.New(),
		UserID:            userID,
		ApplicationNumber: "SKI-2025-000042",
		ServiceType:       domain.ServiceIdentityCertificate,
		Purpose:           "Persyaratan administrasi bank",
		Status:            domain.AppStatusRejected,
		UpdatedAt:         time.Now().Add(-24 * time.Hour).Truncate(time.Second),
	}
}

func TestReapplicationService_PreviewPlan(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		f := newReapplicationFixture()
		app := rejectedApplication(userID)

		validReq := makeRequirement("KTP", 0)
		missingReq := makeRequirement("Pas Foto", 0)
		doc := makeDocument(validReq.ID, domain.DocStatusApproved, timePtr(time.Now().AddDate(1, 0, 0)))

		f.appRepo.On("GetByID", ctx, app.ID).Return(app, nil)
		f.docRepo.On("ListCurrentByApplication", ctx, app.ID).Return([]domain.SubmittedDocument{doc}, nil)
		f.reqRepo.On("ListActiveByServiceType", ctx, app.ServiceType).Return([]domain.DocumentRequirement{validReq, missingReq}, nil)

		plan, err := f.svc.PreviewPlan(ctx, userID, app.ID)

		assert.NoError(t, err)
		assert.NotNil(t, plan)
		assert.Equal(t, app.ID, plan.OriginalApplicationID)
		assert.Equal(t, app.UpdatedAt, plan.SourceUpdatedAt)
		assert.Equal(t, 2, plan.TotalRequirements)
		assert.Equal(t, 1, plan.ReusableCount)
		assert.Equal(t, 1, plan.RequiredNewCount)
		assert.Equal(t, domain.ReasonRejectedApplication, plan.Reason)
		f.appRepo.AssertExpectations(t)
	})

	t.Run("Not Found For Other User", func(t *testing.T) {
		f := newReapplicationFixture()
		app := rejectedApplication(uuid.New()) // different owner

		f.appRepo.On("GetByID", ctx, app.ID).Return(app, nil)

		plan, err := f.svc.PreviewPlan(ctx, userID, app.ID)

		assert.ErrorIs(t, err, reapplication.ErrApplicationNotFound)
		assert.Nil(t, plan)
	})

	t.Run("Not Eligible", func(t *testing.T) {
		f := newReapplicationFixture()
		app := rejectedApplication(userID)
		app.Status = domain.AppStatusApproved

		f.appRepo.On("GetByID", ctx, app.ID).Return(app, nil)
		f.docRepo.On("ListCurrentByApplication", ctx, app.ID).Return([]domain.SubmittedDocument{}, nil)

		plan, err := f.svc.PreviewPlan(ctx, userID, app.ID)

		assert.ErrorIs(t, err, reapplication.ErrNotEligible)
		assert.Nil(t, plan)
	})

	t.Run("Catalog Failure Fails Closed", func(t *testing.T) {
		f := newReapplicationFixture()
		app := rejectedApplication(userID)

		f.appRepo.On("GetByID", ctx, app.ID).Return(app, nil)
		f.docRepo.On("ListCurrentByApplication", ctx, app.ID).Return([]domain.SubmittedDocument{}, nil)
		f.reqRepo.On("ListActiveByServiceType", ctx, app.ServiceType).Return(nil, errors.New("connection refused"))

		plan, err := f.svc.PreviewPlan(ctx, userID, app.ID)

		assert.ErrorIs(t, err, requirement.ErrCatalogUnavailable)
		assert.Nil(t, plan)
	})
}

func TestReapplicationService_Commit(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	setupCatalog := func(f *reapplicationFixture, app *domain.Application) (domain.DocumentRequirement, domain.SubmittedDocument) {
		validReq := makeRequirement("KTP", 0)
		missingReq := makeRequirement("Pas Foto", 0)
		doc := makeDocument(validReq.ID, domain.DocStatusApproved, timePtr(time.Now().AddDate(1, 0, 0)))

		f.appRepo.On("GetByID", ctx, app.ID).Return(app, nil)
		f.docRepo.On("ListCurrentByApplication", ctx, app.ID).Return([]domain.SubmittedDocument{doc}, nil)
		f.reqRepo.On("ListActiveByServiceType", ctx, app.ServiceType).Return([]domain.DocumentRequirement{validReq, missingReq}, nil)
		return validReq, doc
	}

	t.Run("Success", func(t *testing.T) {
		f := newReapplicationFixture()
		app := rejectedApplication(userID)
		_, originalDoc := setupCatalog(f, app)

		f.numberGen.On("Next", ctx, app.ServiceType).Return("SKI-2026-000101", nil)
		f.reappRepo.On("Commit", ctx, app.ID, app.UpdatedAt,
			mock.MatchedBy(func(newApp *domain.Application) bool {
				return newApp.Status == domain.AppStatusDraft &&
					newApp.UserID == userID &&
					newApp.ApplicationNumber == "SKI-2026-000101" &&
					newApp.Purpose == app.Purpose
			}),
			mock.MatchedBy(func(docs []*domain.SubmittedDocument) bool {
				return len(docs) == 1 &&
					docs[0].ReusedFromID != nil &&
					*docs[0].ReusedFromID == originalDoc.ID &&
					docs[0].StoragePath == originalDoc.StoragePath
			}),
			mock.MatchedBy(func(record *domain.ReapplicationRecord) bool {
				return record.OriginalApplicationID == app.ID &&
					record.ReusedCount == 1 &&
					record.RequiredNewCount == 1 &&
					record.Reason == domain.ReasonRejectedApplication
			}),
			mock.AnythingOfType("*domain.Notification"),
		).Return(nil).Once()
		f.auditRepo.On("Create", ctx, mock.AnythingOfType("*domain.AuditLog")).Return(nil).Maybe()
		f.notifSvc.On("DeliverReapplicationEmail", mock.Anything, mock.AnythingOfType("uuid.UUID"), mock.AnythingOfType("*domain.ReapplicationRecord"), "SKI-2026-000101").Maybe()

		input := domain.CommitReapplicationInput{SourceUpdatedAt: app.UpdatedAt}
		newApp, record, err := f.svc.Commit(ctx, userID, app.ID, input, nil)

		assert.NoError(t, err)
		assert.NotNil(t, newApp)
		assert.NotNil(t, record)
		assert.Equal(t, domain.AppStatusDraft, newApp.Status)
		assert.Equal(t, newApp.ID, record.NewApplicationID)
		f.reappRepo.AssertExpectations(t)
	})

	t.Run("Stale Plan", func(t *testing.T) {
		f := newReapplicationFixture()
		app := rejectedApplication(userID)
		setupCatalog(f, app)

		input := domain.CommitReapplicationInput{SourceUpdatedAt: app.UpdatedAt.Add(-time.Hour)}
		newApp, record, err := f.svc.Commit(ctx, userID, app.ID, input, nil)

		assert.ErrorIs(t, err, reapplication.ErrStalePlan)
		assert.Nil(t, newApp)
		assert.Nil(t, record)
		f.reappRepo.AssertNotCalled(t, "Commit")
	})

	t.Run("Concurrent Commit Conflict", func(t *testing.T) {
		f := newReapplicationFixture()
		app := rejectedApplication(userID)
		setupCatalog(f, app)

		f.numberGen.On("Next", ctx, app.ServiceType).Return("SKI-2026-000102", nil)
		f.reappRepo.On("Commit", ctx, app.ID, app.UpdatedAt,
			mock.Anything, mock.Anything, mock.Anything, mock.Anything,
		).Return(repository.ErrApplicationChanged).Once()

		input := domain.CommitReapplicationInput{SourceUpdatedAt: app.UpdatedAt}
		newApp, record, err := f.svc.Commit(ctx, userID, app.ID, input, nil)

		assert.ErrorIs(t, err, reapplication.ErrCommitConflict)
		assert.Nil(t, newApp)
		assert.Nil(t, record)
	})

	t.Run("Two Commits Produce Distinct Applications", func(t *testing.T) {
		f := newReapplicationFixture()
		app := rejectedApplication(userID)
		setupCatalog(f, app)

		f.numberGen.On("Next", ctx, app.ServiceType).Return("SKI-2026-000103", nil).Once()
		f.numberGen.On("Next", ctx, app.ServiceType).Return("SKI-2026-000104", nil).Once()
		f.reappRepo.On("Commit", ctx, app.ID, app.UpdatedAt,
			mock.Anything, mock.Anything, mock.Anything, mock.Anything,
		).Return(nil).Twice()
		f.auditRepo.On("Create", ctx, mock.AnythingOfType("*domain.AuditLog")).Return(nil).Maybe()
		f.notifSvc.On("DeliverReapplicationEmail", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Maybe()

		input := domain.CommitReapplicationInput{SourceUpdatedAt: app.UpdatedAt}
		first, _, err := f.svc.Commit(ctx, userID, app.ID, input, nil)
		assert.NoError(t, err)
		second, _, err := f.svc.Commit(ctx, userID, app.ID, input, nil)
		assert.NoError(t, err)

		assert.NotEqual(t, first.ID, second.ID)
		assert.NotEqual(t, first.ApplicationNumber, second.ApplicationNumber)
	})
}

func TestReapplicationService_ListEligible(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	f := newReapplicationFixture()

	rejected := *rejectedApplication(userID)
	draft := *rejectedApplication(userID)
	draft.Status = domain.AppStatusDraft
	approved := *rejectedApplication(userID)
	approved.Status = domain.AppStatusApproved

	expiredDoc := makeDocument(uuid.New(), domain.DocStatusApproved, timePtr(time.Now().AddDate(0, 0, -5)))

	f.appRepo.On("ListAllByUser", ctx, userID).Return([]domain.Application{rejected, draft, approved}, nil)
	f.docRepo.On("ListCurrentByApplication", ctx, rejected.ID).Return([]domain.SubmittedDocument{}, nil)
	f.docRepo.On("ListCurrentByApplication", ctx, approved.ID).Return([]domain.SubmittedDocument{expiredDoc}, nil)

	eligible, err := f.svc.ListEligible(ctx, userID)

	assert.NoError(t, err)
	assert.Len(t, eligible, 2)
	assert.Equal(t, rejected.ID, eligible[0].Application.ID)
	assert.False(t, eligible[0].HasExpiredDocument)
	assert.Equal(t, approved.ID, eligible[1].Application.ID)
	assert.True(t, eligible[1].HasExpiredDocument)
	f.docRepo.AssertNotCalled(t, "ListCurrentByApplication", ctx, draft.ID)
}
