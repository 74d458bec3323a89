package mocks

import (
	"context"
	"time"

	"sertifikat-identitas/internal/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type ApplicationRepository struct {
	mock.Mock
}

func (m *ApplicationRepository) Create(ctx context.Context, app *domain.Application) error {
	args := m.Called(ctx, app)
	return args.Error(0)
}

func (m *ApplicationRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Application, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Application), args.Error(1)
}

func (m *ApplicationRepository) ListByUser(ctx context.Context, userID uuid.UUID, params domain.PaginationParams) ([]domain.Application, int64, error) {
	args := m.Called(ctx, userID, params)
	return args.Get(0).([]domain.Application), args.Get(1).(int64), args.Error(2)
}

func (m *ApplicationRepository) ListAllByUser(ctx context.Context, userID uuid.UUID) ([]domain.Application, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Application), args.Error(1)
}

func (m *ApplicationRepository) MarkSubmitted(ctx context.Context, id uuid.UUID, submittedAt time.Time) error {
	args := m.Called(ctx, id, submittedAt)
	return args.Error(0)
}

func (m *ApplicationRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.ApplicationStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}
