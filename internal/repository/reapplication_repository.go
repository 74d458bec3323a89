package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"sertifikat-identitas/internal/domain"
)

// ErrApplicationChanged is returned by Commit when the original application's
// updated_at no longer matches the one the plan was built against. The caller
// must re-run classification and re-confirm.
var ErrApplicationChanged = errors.New("application changed since plan was generated")

type ReapplicationRepository interface {
	// Commit writes the new application, its cloned documents, the
	// re-application record and the notification in one transaction. The
	// original application row is locked and its updated_at compared against
	// expectedUpdatedAt; a mismatch aborts with ErrApplicationChanged and
	// nothing is written.
	Commit(ctx context.Context, originalID uuid.UUID, expectedUpdatedAt time.Time, newApp *domain.Application, docs []*domain.SubmittedDocument, record *domain.ReapplicationRecord, notif *domain.Notification) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.ReapplicationRecord, error)
	ListByUser(ctx context.Context, userID uuid.UUID, params domain.PaginationParams) ([]domain.ReapplicationRecord, int64, error)
}

type reapplicationRepository struct {
	db *sqlx.DB
}

func NewReapplicationRepository(db *sqlx.DB) ReapplicationRepository {
	return &reapplicationRepository{db: db}
}

func (r *reapplicationRepository) Commit(ctx context.Context, originalID uuid.UUID, expectedUpdatedAt time.Time, newApp *domain.Application, docs []*domain.SubmittedDocument, record *domain.ReapplicationRecord, notif *domain.Notification) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	// Lock the original row so two concurrent commits on the same
	// application serialize here instead of both minting a successor.
	var currentUpdatedAt time.Time
	err = tx.QueryRowxContext(ctx,
		`SELECT updated_at FROM applications WHERE id = $1 FOR UPDATE`,
		originalID,
	).Scan(&currentUpdatedAt)
	if err != nil {
		return fmt.Errorf("lock original application: %w", err)
	}

	if !currentUpdatedAt.Equal(expectedUpdatedAt) {
		return ErrApplicationChanged
	}

	err = tx.QueryRowxContext(ctx, `
		INSERT INTO applications (id, user_id, application_number, service_type, purpose, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at`,
		newApp.ID, newApp.UserID, newApp.ApplicationNumber, newApp.ServiceType, newApp.Purpose, newApp.Status,
	).Scan(&newApp.CreatedAt, &newApp.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert new application: %w", err)
	}

	for _, doc := range docs {
		err = tx.QueryRowxContext(ctx, `
			INSERT INTO submitted_documents (id, application_id, requirement_id, uploaded_by, file_name, file_size, mime_type, storage_path, status, expires_at, reused_from_document_id)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
			RETURNING created_at, updated_at`,
			doc.ID, doc.ApplicationID, doc.RequirementID, doc.UploadedBy, doc.FileName,
			doc.FileSize, doc.MimeType, doc.StoragePath, doc.Status, doc.ExpiresAt, doc.ReusedFromID,
		).Scan(&doc.CreatedAt, &doc.UpdatedAt)
		if err != nil {
			return fmt.Errorf("clone document: %w", err)
		}
	}

	err = tx.QueryRowxContext(ctx, `
		INSERT INTO reapplication_records (id, original_application_id, new_application_id, user_id, reason, reused_count, required_new_count, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at`,
		record.ID, record.OriginalApplicationID, record.NewApplicationID, record.UserID,
		record.Reason, record.ReusedCount, record.RequiredNewCount, record.Status,
	).Scan(&record.CreatedAt, &record.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert reapplication record: %w", err)
	}

	err = tx.QueryRowxContext(ctx, `
		INSERT INTO notifications (id, user_id, application_id, type, title, message, data)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at`,
		notif.ID, notif.UserID, notif.ApplicationID, notif.Type, notif.Title, notif.Message, notif.Data,
	).Scan(&notif.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert notification: %w", err)
	}

	return tx.Commit()
}

func (r *reapplicationRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.ReapplicationRecord, error) {
	var record domain.ReapplicationRecord
	query := `SELECT * FROM reapplication_records WHERE id = $1`

	err := r.db.GetContext(ctx, &record, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *reapplicationRepository) ListByUser(ctx context.Context, userID uuid.UUID, params domain.PaginationParams) ([]domain.ReapplicationRecord, int64, error) {
	params.Validate()

	var total int64
	countQuery := `SELECT COUNT(*) FROM reapplication_records WHERE user_id = $1`
	if err := r.db.GetContext(ctx, &total, countQuery, userID); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT * FROM reapplication_records
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`

	var records []domain.ReapplicationRecord
	err := r.db.SelectContext(ctx, &records, query, userID, params.PageSize, params.Offset())
	return records, total, err
}
