package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"sertifikat-identitas/internal/domain"
)

type RequirementRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.DocumentRequirement, error)
	ListActiveByServiceType(ctx context.Context, serviceType domain.ServiceType) ([]domain.DocumentRequirement, error)
}

type requirementRepository struct {
	db *sqlx.DB
}

func NewRequirementRepository(db *sqlx.DB) RequirementRepository {
	return &requirementRepository{db: db}
}

func (r *requirementRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.DocumentRequirement, error) {
	var req domain.DocumentRequirement
	query := `SELECT * FROM document_requirements WHERE id = $1`

	err := r.db.GetContext(ctx, &req, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *requirementRepository) ListActiveByServiceType(ctx context.Context, serviceType domain.ServiceType) ([]domain.DocumentRequirement, error) {
	query := `
		SELECT * FROM document_requirements
		WHERE service_type = $1 AND is_active = true
		ORDER BY name`

	var reqs []domain.DocumentRequirement
	err := r.db.SelectContext(ctx, &reqs, query, serviceType)
	return reqs, err
}
