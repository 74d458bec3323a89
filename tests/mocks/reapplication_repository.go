package mocks

import (
	"context"
	"time"

	"sertifikat-identitas/internal/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type ReapplicationRepository struct {
	mock.Mock
}

func (m *ReapplicationRepository) Commit(ctx context.Context, originalID uuid.UUID, expectedUpdatedAt time.Time, newApp *domain.Application, docs []*domain.SubmittedDocument, record *domain.ReapplicationRecord, notif *domain.Notification) error {
	args := m.Called(ctx, originalID, expectedUpdatedAt, newApp, docs, record, notif)
	return args.Error(0)
}

func (m *ReapplicationRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.ReapplicationRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReapplicationRecord), args.Error(1)
}

func (m *ReapplicationRepository) ListByUser(ctx context.Context, userID uuid.UUID, params domain.PaginationParams) ([]domain.ReapplicationRecord, int64, error) {
	args := m.Called(ctx, userID, params)
	return args.Get(0).([]domain.ReapplicationRecord), args.Get(1).(int64), args.Error(2)
}
