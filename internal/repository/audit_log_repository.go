package repository

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"sertifikat-identitas/internal/domain"
)

type AuditLogRepository interface {
	Create(ctx context.Context, log *domain.AuditLog) error
	List(ctx context.Context, params domain.PaginationParams) ([]domain.AuditLog, int64, error)
	ListByEntity(ctx context.Context, entityType string, entityID uuid.UUID, params domain.PaginationParams) ([]domain.AuditLog, int64, error)
}

type auditLogRepository struct {
	db *sqlx.DB
}

func NewAuditLogRepository(db *sqlx.DB) AuditLogRepository {
	return &auditLogRepository{db: db}
}

func (r *auditLogRepository) Create(ctx context.Context, log *domain.AuditLog) error {
	query := `
		INSERT INTO audit_logs (id, user_id, action, entity_type, entity_id, old_value, new_value, ip_address, user_agent)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at`

	return r.db.QueryRowxContext(ctx, query,
		log.ID, log.UserID, log.Action, log.EntityType, log.EntityID,
		log.OldValue, log.NewValue, log.IPAddress, log.UserAgent,
	).Scan(&log.CreatedAt)
}

func (r *auditLogRepository) List(ctx context.Context, params domain.PaginationParams) ([]domain.AuditLog, int64, error) {
	params.Validate()

	var total int64
	countQuery := `SELECT COUNT(*) FROM audit_logs`
	if err := r.db.GetContext(ctx, &total, countQuery); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT
			al.*,
			u.full_name as user_name
		FROM audit_logs al
		LEFT JOIN users u ON al.user_id = u.id
		ORDER BY al.created_at DESC
		LIMIT $1 OFFSET $2`

	var logs []domain.AuditLog
	err := r.db.SelectContext(ctx, &logs, query, params.PageSize, params.Offset())
	return logs, total, err
}

func (r *auditLogRepository) ListByEntity(ctx context.Context, entityType string, entityID uuid.UUID, params domain.PaginationParams) ([]domain.AuditLog, int64, error) {
	params.Validate()

	var total int64
	countQuery := `SELECT COUNT(*) FROM audit_logs WHERE entity_type = $1 AND entity_id = $2`
	if err := r.db.GetContext(ctx, &total, countQuery, entityType, entityID); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT * FROM audit_logs
		WHERE entity_type = $1 AND entity_id = $2
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4`

	var logs []domain.AuditLog
	err := r.db.SelectContext(ctx, &logs, query, entityType, entityID, params.PageSize, params.Offset())
	return logs, total, err
}

// NewAuditEntry builds an audit log row with old/new values marshalled to
// JSON. Marshal failures leave the value empty rather than failing the write.
func NewAuditEntry(userID uuid.UUID, action, entityType string, entityID uuid.UUID, oldValue, newValue interface{}, ipAddress, userAgent *string) *domain.AuditLog {
	entry := &domain.AuditLog{
		ID:         uuid.New(),
		UserID:     userID,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		IPAddress:  ipAddress,
		UserAgent:  userAgent,
	}

	if oldValue != nil {
		if raw, err := json.Marshal(oldValue); err == nil {
			entry.OldValue = raw
		}
	}
	if newValue != nil {
		if raw, err := json.Marshal(newValue); err == nil {
			entry.NewValue = raw
		}
	}

	return entry
}
