package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"sertifikat-identitas/internal/domain"
)

type DocumentRepository interface {
	Create(ctx context.Context, doc *domain.SubmittedDocument) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.SubmittedDocument, error)
	ListByApplication(ctx context.Context, applicationID uuid.UUID) ([]domain.SubmittedDocument, error)
	ListCurrentByApplication(ctx context.Context, applicationID uuid.UUID) ([]domain.SubmittedDocument, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.DocumentStatus) error
}

type documentRepository struct {
	db *sqlx.DB
}

func NewDocumentRepository(db *sqlx.DB) DocumentRepository {
	return &documentRepository{db: db}
}

func (r *documentRepository) Create(ctx context.Context, doc *domain.SubmittedDocument) error {
	query := `
		INSERT INTO submitted_documents (id, application_id, requirement_id, uploaded_by, file_name, file_size, mime_type, storage_path, status, expires_at, reused_from_document_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING created_at, updated_at`

	return r.db.QueryRowxContext(ctx, query,
		doc.ID, doc.ApplicationID, doc.RequirementID, doc.UploadedBy, doc.FileName,
		doc.FileSize, doc.MimeType, doc.StoragePath, doc.Status, doc.ExpiresAt, doc.ReusedFromID,
	).Scan(&doc.CreatedAt, &doc.UpdatedAt)
}

func (r *documentRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.SubmittedDocument, error) {
	var doc domain.SubmittedDocument
	query := `SELECT * FROM submitted_documents WHERE id = $1`

	err := r.db.GetContext(ctx, &doc, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

func (r *documentRepository) ListByApplication(ctx context.Context, applicationID uuid.UUID) ([]domain.SubmittedDocument, error) {
	query := `
		SELECT * FROM submitted_documents
		WHERE application_id = $1
		ORDER BY created_at DESC`

	var docs []domain.SubmittedDocument
	err := r.db.SelectContext(ctx, &docs, query, applicationID)
	return docs, err
}

// ListCurrentByApplication returns at most one document per requirement: the
// most recently uploaded one. This is where the "one current document per
// (application, requirement)" invariant is enforced; classification assumes it.
func (r *documentRepository) ListCurrentByApplication(ctx context.Context, applicationID uuid.UUID) ([]domain.SubmittedDocument, error) {
	query := `
		SELECT DISTINCT ON (requirement_id) *
		FROM submitted_documents
		WHERE application_id = $1
		ORDER BY requirement_id, created_at DESC`

	var docs []domain.SubmittedDocument
	err := r.db.SelectContext(ctx, &docs, query, applicationID)
	return docs, err
}

func (r *documentRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.DocumentStatus) error {
	query := `UPDATE submitted_documents SET status = $2, updated_at = NOW() WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id, status)
	return err
}
