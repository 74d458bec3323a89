package mocks

import (
	"context"

	"sertifikat-identitas/internal/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type DocumentRepository struct {
	mock.Mock
}

func (m *DocumentRepository) Create(ctx context.Context, doc *domain.SubmittedDocument) error {
	args := m.Called(ctx, doc)
	return args.Error(0)
}

func (m *DocumentRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.SubmittedDocument, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SubmittedDocument), args.Error(1)
}

func (m *DocumentRepository) ListByApplication(ctx context.Context, applicationID uuid.UUID) ([]domain.SubmittedDocument, error) {
	args := m.Called(ctx, applicationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SubmittedDocument), args.Error(1)
}

func (m *DocumentRepository) ListCurrentByApplication(ctx context.Context, applicationID uuid.UUID) ([]domain.SubmittedDocument, error) {
	args := m.Called(ctx, applicationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SubmittedDocument), args.Error(1)
}

func (m *DocumentRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.DocumentStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}
