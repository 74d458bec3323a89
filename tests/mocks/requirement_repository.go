package mocks

import (
	"context"

	"sertifikat-identitas/internal/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type RequirementRepository struct {
	mock.Mock
}

func (m *RequirementRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.DocumentRequirement, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DocumentRequirement), args.Error(1)
}

func (m *RequirementRepository) ListActiveByServiceType(ctx context.Context, serviceType domain.ServiceType) ([]domain.DocumentRequirement, error) {
	args := m.Called(ctx, serviceType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DocumentRequirement), args.Error(1)
}
