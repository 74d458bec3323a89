package document

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"

	"sertifikat-identitas/internal/config"
	"sertifikat-identitas/internal/domain"
	"sertifikat-identitas/internal/repository"
	"sertifikat-identitas/internal/service/requirement"
)

var (
	ErrApplicationNotFound = errors.New("application not found")
	ErrDocumentNotFound    = errors.New("document not found")
	ErrUnknownRequirement  = errors.New("requirement does not belong to this service type")
	ErrApplicationLocked   = errors.New("documents can only be uploaded to draft applications")
)

type Service interface {
	Upload(ctx context.Context, userID, applicationID uuid.UUID, input domain.UploadDocumentInput, fileName string, fileSize int64, mimeType string, reader io.Reader) (*domain.SubmittedDocument, error)
	GetByID(ctx context.Context, userID, documentID uuid.UUID) (*domain.SubmittedDocument, error)
	ListByApplication(ctx context.Context, userID, applicationID uuid.UUID, includeSuperseded bool) ([]domain.SubmittedDocument, error)
	FillURLs(docs []domain.SubmittedDocument)
}

type service struct {
	docRepo     repository.DocumentRepository
	appRepo     repository.ApplicationRepository
	reqSvc      requirement.Service
	minioClient *minio.Client
	cfg         *config.Config
}

func NewService(
	docRepo repository.DocumentRepository,
	appRepo repository.ApplicationRepository,
	reqSvc requirement.Service,
	minioClient *minio.Client,
	cfg *config.Config,
) Service {
	return &service{
		docRepo:     docRepo,
		appRepo:     appRepo,
		reqSvc:      reqSvc,
		minioClient: minioClient,
		cfg:         cfg,
	}
}

// Upload stores the file in MinIO and records it against the requirement
// slot. A newer upload for the same requirement supersedes the older one;
// older rows stay for the audit trail.
func (s *service) Upload(ctx context.Context, userID, applicationID uuid.UUID, input domain.UploadDocumentInput, fileName string, fileSize int64, mimeType string, reader io.Reader) (*domain.SubmittedDocument, error) {
	app, err := s.appRepo.GetByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if app == nil || app.UserID != userID {
		return nil, ErrApplicationNotFound
	}
	if app.Status != domain.AppStatusDraft && app.Status != domain.AppStatusIncomplete {
		return nil, ErrApplicationLocked
	}

	req, err := s.requirementFor(ctx, app.ServiceType, input.RequirementID)
	if err != nil {
		return nil, err
	}

	docID := uuid.New()
	storagePath := fmt.Sprintf("dokumen/%s/%s", time.Now().Format("2006/01"), docID.String())

	_, err = s.minioClient.PutObject(ctx, s.cfg.MinIOBucket, storagePath, reader, fileSize, minio.PutObjectOptions{
		ContentType: mimeType,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload to MinIO: %w", err)
	}

	doc := &domain.SubmittedDocument{
		ID:            docID,
		ApplicationID: app.ID,
		RequirementID: req.ID,
		UploadedBy:    userID,
		FileName:      fileName,
		FileSize:      fileSize,
		MimeType:      mimeType,
		StoragePath:   storagePath,
		Status:        domain.DocStatusPending,
		ExpiresAt:     input.ExpiresAt,
	}

	if err := s.docRepo.Create(ctx, doc); err != nil {
		_ = s.minioClient.RemoveObject(ctx, s.cfg.MinIOBucket, storagePath, minio.RemoveObjectOptions{})
		return nil, err
	}

	doc.URL = s.getPublicURL(storagePath)
	return doc, nil
}

func (s *service) GetByID(ctx context.Context, userID, documentID uuid.UUID) (*domain.SubmittedDocument, error) {
	doc, err := s.docRepo.GetByID(ctx, documentID)
	if err != nil {
		return nil, err
	}
	if doc == nil || doc.UploadedBy != userID {
		return nil, ErrDocumentNotFound
	}

	doc.URL = s.getPublicURL(doc.StoragePath)
	return doc, nil
}

// ListByApplication returns the application's documents, by default one per
// requirement (the current one). With includeSuperseded the full upload
// history comes back, replaced versions included.
func (s *service) ListByApplication(ctx context.Context, userID, applicationID uuid.UUID, includeSuperseded bool) ([]domain.SubmittedDocument, error) {
	app, err := s.appRepo.GetByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if app == nil || app.UserID != userID {
		return nil, ErrApplicationNotFound
	}

	var docs []domain.SubmittedDocument
	if includeSuperseded {
		docs, err = s.docRepo.ListByApplication(ctx, app.ID)
	} else {
		docs, err = s.docRepo.ListCurrentByApplication(ctx, app.ID)
	}
	if err != nil {
		return nil, err
	}

	s.FillURLs(docs)
	return docs, nil
}

func (s *service) FillURLs(docs []domain.SubmittedDocument) {
	for i := range docs {
		docs[i].URL = s.getPublicURL(docs[i].StoragePath)
	}
}

func (s *service) requirementFor(ctx context.Context, serviceType domain.ServiceType, requirementID uuid.UUID) (*domain.DocumentRequirement, error) {
	reqs, err := s.reqSvc.ListActive(ctx, serviceType)
	if err != nil {
		return nil, err
	}

	for i := range reqs {
		if reqs[i].ID == requirementID {
			return &reqs[i], nil
		}
	}
	return nil, ErrUnknownRequirement
}

func (s *service) getPublicURL(storagePath string) string {
	scheme := "http"
	if s.cfg.MinIOPublicUseSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, s.cfg.MinIOPublicEndpoint, s.cfg.MinIOBucket, url.PathEscape(storagePath))
}
