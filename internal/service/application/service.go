package application

import (
	"context"
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
	ErrInvalidServiceType  = errors.New("invalid service type")
	ErrNotDraft            = errors.New("only draft applications can be submitted")
	ErrMissingDocuments    = errors.New("mandatory requirements are missing documents")
)

type Service interface {
	Create(ctx context.Context, userID uuid.UUID, input domain.CreateApplicationInput) (*domain.Application, error)
	GetByID(ctx context.Context, userID, applicationID uuid.UUID) (*domain.Application, error)
	ListByUser(ctx context.Context, userID uuid.UUID, params domain.PaginationParams) (domain.PaginatedResponse[domain.Application], error)
	Submit(ctx context.Context, userID, applicationID uuid.UUID) (*domain.Application, error)
}

type service struct {
	appRepo   repository.ApplicationRepository
	docRepo   repository.DocumentRepository
	reqSvc    requirement.Service
	notifSvc  notification.Service
	numberGen appnumber.Generator
}

func NewService(
	appRepo repository.ApplicationRepository,
	docRepo repository.DocumentRepository,
	reqSvc requirement.Service,
	notifSvc notification.Service,
	numberGen appnumber.Generator,
) Service {
	return &service{
		appRepo:   appRepo,
		docRepo:   docRepo,
		reqSvc:    reqSvc,
		notifSvc:  notifSvc,
		numberGen: numberGen,
	}
}

func (s *service) Create(ctx context.Context, userID uuid.UUID, input domain.CreateApplicationInput) (*domain.Application, error) {
	if !input.ServiceType.IsValid() {
		return nil, ErrInvalidServiceType
	}

	number, err := s.numberGen.Next(ctx, input.ServiceType)
	if err != nil {
		return nil, fmt.Errorf("allocate application number: %w", err)
	}

	app := &domain.Application{
		ID:                uuid.New(),
		UserID:            userID,
		ApplicationNumber: number,
		ServiceType:       input.ServiceType,
		Purpose:           input.Purpose,
		Status:            domain.AppStatusDraft,
	}

	if err := s.appRepo.Create(ctx, app); err != nil {
		return nil, fmt.Errorf("failed to create application: %w", err)
	}

	return app, nil
}

func (s *service) GetByID(ctx context.Context, userID, applicationID uuid.UUID) (*domain.Application, error) {
	app, err := s.appRepo.GetByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if app == nil || app.UserID != userID {
		return nil, ErrApplicationNotFound
	}

	docs, err := s.docRepo.ListCurrentByApplication(ctx, app.ID)
	if err != nil {
		return nil, err
	}
	app.Documents = docs

	return app, nil
}

func (s *service) ListByUser(ctx context.Context, userID uuid.UUID, params domain.PaginationParams) (domain.PaginatedResponse[domain.Application], error) {
	apps, total, err := s.appRepo.ListByUser(ctx, userID, params)
	if err != nil {
		return domain.PaginatedResponse[domain.Application]{}, err
	}

	return domain.NewPaginatedResponse(apps, params.Page, params.PageSize, total), nil
}

// Submit moves a draft to submitted. Every active mandatory requirement must
// have a current document; the check fails closed when the catalog cannot be
// read.
func (s *service) Submit(ctx context.Context, userID, applicationID uuid.UUID) (*domain.Application, error) {
	app, err := s.appRepo.GetByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if app == nil || app.UserID != userID {
		return nil, ErrApplicationNotFound
	}
	if app.Status != domain.AppStatusDraft {
		return nil, ErrNotDraft
	}

	reqs, err := s.reqSvc.ListActive(ctx, app.ServiceType)
	if err != nil {
		return nil, err
	}

	docs, err := s.docRepo.ListCurrentByApplication(ctx, app.ID)
	if err != nil {
		return nil, err
	}

	covered := make(map[uuid.UUID]bool, len(docs))
	for _, doc := range docs {
		covered[doc.RequirementID] = true
	}
	for _, req := range reqs {
		if req.IsMandatory && !covered[req.ID] {
			return nil, fmt.Errorf("%w: %s", ErrMissingDocuments, req.Name)
		}
	}

	now := time.Now()
	if err := s.appRepo.MarkSubmitted(ctx, app.ID, now); err != nil {
		return nil, fmt.Errorf("failed to submit application: %w", err)
	}
	app.Status = domain.AppStatusSubmitted
	app.SubmittedAt = &now
	app.Documents = docs

	if err := s.notifSvc.NotifyApplicationSubmitted(ctx, app); err != nil {
		log.Printf("Failed to notify officers for application %s: %v", app.ID, err)
	}

	return app, nil
}
