package unit_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"sertifikat-identitas/internal/domain"
	"sertifikat-identitas/internal/service/application"
	"sertifikat-identitas/internal/service/requirement"
	"sertifikat-identitas/tests/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type applicationFixture struct {
	appRepo   *mocks.ApplicationRepository
	docRepo   *mocks.DocumentRepository
	reqRepo   *mocks.RequirementRepository
	notifSvc  *mocks.NotificationService
	numberGen *mocks.NumberGenerator
	svc       application.Service
}

func newApplicationFixture() *applicationFixture {
	f := &applicationFixture{
		appRepo:   new(mocks.ApplicationRepository),
		docRepo:   new(mocks.DocumentRepository),
		reqRepo:   new(mocks.RequirementRepository),
		notifSvc:  new(mocks.NotificationService),
		numberGen: new(mocks.NumberGenerator),
	}
	reqSvc := requirement.NewService(f.reqRepo, nil)
	f.svc = application.NewService(f.appRepo, f.docRepo, reqSvc, f.notifSvc, f.numberGen)
	return f
}

func TestApplicationService_Create(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		f := newApplicationFixture()

		f.numberGen.On("Next", ctx, domain.ServiceIdentityCertificate).Return("SKI-2026-000001", nil)
		f.appRepo.On("Create", ctx, mock.MatchedBy(func(app *domain.Application) bool {
			return app.UserID == userID &&
				app.Status == domain.AppStatusDraft &&
				app.ApplicationNumber == "SKI-2026-000001"
		})).Return(nil)

		app, err := f.svc.Create(ctx, userID, domain.CreateApplicationInput{
			ServiceType: domain.ServiceIdentityCertificate,
			Purpose:     "Pembukaan rekening",
		})

		assert.NoError(t, err)
		assert.NotNil(t, app)
		assert.Equal(t, domain.AppStatusDraft, app.Status)
		f.appRepo.AssertExpectations(t)
	})

	t.Run("Unknown Service Type", func(t *testing.T) {
		f := newApplicationFixture()

		app, err := f.svc.Create(ctx, userID, domain.CreateApplicationInput{
			ServiceType: "SURAT_LAIN",
			Purpose:     "x",
		})

		assert.ErrorIs(t, err, application.ErrInvalidServiceType)
		assert.Nil(t, app)
	})
}

func TestApplicationService_Submit(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	draftApp := func() *domain.Application {
		return &domain.Application{
			ID:          uuid.New(),
			UserID:      userID,
			ServiceType: domain.ServiceIdentityCertificate,
			Status:      domain.AppStatusDraft,
			UpdatedAt:   time.Now(),
		}
	}

	t.Run("Success", func(t *testing.T) {
		f := newApplicationFixture()
		app := draftApp()

		req := makeRequirement("KTP", 0)
		doc := makeDocument(req.ID, domain.DocStatusPending, nil)

		f.appRepo.On("GetByID", ctx, app.ID).Return(app, nil)
		f.reqRepo.On("ListActiveByServiceType", ctx, app.ServiceType).Return([]domain.DocumentRequirement{req}, nil)
		f.docRepo.On("ListCurrentByApplication", ctx, app.ID).Return([]domain.SubmittedDocument{doc}, nil)
		f.appRepo.On("MarkSubmitted", ctx, app.ID, mock.AnythingOfType("time.Time")).Return(nil)
		f.notifSvc.On("NotifyApplicationSubmitted", ctx, mock.AnythingOfType("*domain.Application")).Return(nil)

		submitted, err := f.svc.Submit(ctx, userID, app.ID)

		assert.NoError(t, err)
		assert.Equal(t, domain.AppStatusSubmitted, submitted.Status)
		assert.NotNil(t, submitted.SubmittedAt)
		f.appRepo.AssertExpectations(t)
		f.notifSvc.AssertExpectations(t)
	})

	t.Run("Missing Mandatory Document", func(t *testing.T) {
		f := newApplicationFixture()
		app := draftApp()

		req := makeRequirement("KTP", 0)

		f.appRepo.On("GetByID", ctx, app.ID).Return(app, nil)
		f.reqRepo.On("ListActiveByServiceType", ctx, app.ServiceType).Return([]domain.DocumentRequirement{req}, nil)
		f.docRepo.On("ListCurrentByApplication", ctx, app.ID).Return([]domain.SubmittedDocument{}, nil)

		submitted, err := f.svc.Submit(ctx, userID, app.ID)

		assert.ErrorIs(t, err, application.ErrMissingDocuments)
		assert.Nil(t, submitted)
		f.appRepo.AssertNotCalled(t, "MarkSubmitted", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Already Submitted", func(t *testing.T) {
		f := newApplicationFixture()
		app := draftApp()
		app.Status = domain.AppStatusSubmitted

		f.appRepo.On("GetByID", ctx, app.ID).Return(app, nil)

		submitted, err := f.svc.Submit(ctx, userID, app.ID)

		assert.ErrorIs(t, err, application.ErrNotDraft)
		assert.Nil(t, submitted)
	})

	t.Run("Catalog Failure Blocks Submission", func(t *testing.T) {
		f := newApplicationFixture()
		app := draftApp()

		f.appRepo.On("GetByID", ctx, app.ID).Return(app, nil)
		f.reqRepo.On("ListActiveByServiceType", ctx, app.ServiceType).Return(nil, errors.New("connection refused"))

		submitted, err := f.svc.Submit(ctx, userID, app.ID)

		assert.ErrorIs(t, err, requirement.ErrCatalogUnavailable)
		assert.Nil(t, submitted)
	})
}
