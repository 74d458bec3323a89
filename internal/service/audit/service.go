package audit

import (
	"context"

	"github.com/google/uuid"

	"sertifikat-identitas/internal/domain"
	"sertifikat-identitas/internal/repository"
)

type Service interface {
	List(ctx context.Context, params domain.PaginationParams) (domain.PaginatedResponse[domain.AuditLog], error)
	ListByEntity(ctx context.Context, entityType string, entityID uuid.UUID, params domain.PaginationParams) (domain.PaginatedResponse[domain.AuditLog], error)
}

type service struct {
	auditRepo repository.AuditLogRepository
}

func NewService(auditRepo repository.AuditLogRepository) Service {
	return &service{auditRepo: auditRepo}
}

func (s *service) List(ctx context.Context, params domain.PaginationParams) (domain.PaginatedResponse[domain.AuditLog], error) {
	logs, total, err := s.auditRepo.List(ctx, params)
	if err != nil {
		return domain.PaginatedResponse[domain.AuditLog]{}, err
	}

	return domain.NewPaginatedResponse(logs, params.Page, params.PageSize, total), nil
}

func (s *service) ListByEntity(ctx context.Context, entityType string, entityID uuid.UUID, params domain.PaginationParams) (domain.PaginatedResponse[domain.AuditLog], error) {
	logs, total, err := s.auditRepo.ListByEntity(ctx, entityType, entityID, params)
	if err != nil {
		return domain.PaginatedResponse[domain.AuditLog]{}, err
	}

	return domain.NewPaginatedResponse(logs, params.Page, params.PageSize, total), nil
}
