package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"sertifikat-identitas/internal/domain"
)

type ApplicationRepository interface {
	Create(ctx context.Context, app *domain.Application) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Application, error)
	ListByUser(ctx context.Context, userID uuid.UUID, params domain.PaginationParams) ([]domain.Application, int64, error)
	ListAllByUser(ctx context.Context, userID uuid.UUID) ([]domain.Application, error)
	MarkSubmitted(ctx context.Context, id uuid.UUID, submittedAt time.Time) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.ApplicationStatus) error
}

type applicationRepository struct {
	db *sqlx.DB
}

func NewApplicationRepository(db *sqlx.DB) ApplicationRepository {
	return &applicationRepository{db: db}
}

func (r *applicationRepository) Create(ctx context.Context, app *domain.Application) error {
	query := `
		INSERT INTO applications (id, user_id, application_number, service_type, purpose, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at`

	return r.db.QueryRowxContext(ctx, query,
		app.ID, app.UserID, app.ApplicationNumber, app.ServiceType, app.Purpose, app.Status,
	).Scan(&app.CreatedAt, &app.UpdatedAt)
}

func (r *applicationRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Application, error) {
	var app domain.Application
	query := `SELECT * FROM applications WHERE id = $1`

	err := r.db.GetContext(ctx, &app, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &app, nil
}

func (r *applicationRepository) ListByUser(ctx context.Context, userID uuid.UUID, params domain.PaginationParams) ([]domain.Application, int64, error) {
	params.Validate()

	var total int64
	countQuery := `SELECT COUNT(*) FROM applications WHERE user_id = $1`
	if err := r.db.GetContext(ctx, &total, countQuery, userID); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT * FROM applications
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`

	var apps []domain.Application
	err := r.db.SelectContext(ctx, &apps, query, userID, params.PageSize, params.Offset())
	return apps, total, err
}

func (r *applicationRepository) ListAllByUser(ctx context.Context, userID uuid.UUID) ([]domain.Application, error) {
	query := `SELECT * FROM applications WHERE user_id = $1 ORDER BY created_at DESC`

	var apps []domain.Application
	err := r.db.SelectContext(ctx, &apps, query, userID)
	return apps, err
}

func (r *applicationRepository) MarkSubmitted(ctx context.Context, id uuid.UUID, submittedAt time.Time) error {
	query := `
		UPDATE applications
		SET status = $2, submitted_at = $3, updated_at = NOW()
		WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id, domain.AppStatusSubmitted, submittedAt)
	return err
}

func (r *applicationRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.ApplicationStatus) error {
	query := `UPDATE applications SET status = $2, updated_at = NOW() WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id, status)
	return err
}
