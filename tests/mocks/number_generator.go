package mocks

import (
	"context"

	"sertifikat-identitas/internal/domain"

	"github.com/stretchr/testify/mock"
)

type NumberGenerator struct {
	mock.Mock
}

func (m *NumberGenerator) Next(ctx context.Context, serviceType domain.ServiceType) (string, error) {
	args := m.Called(ctx, serviceType)
	return args.String(0), args.Error(1)
}
