package mocks

import (
	"context"

	"sertifikat-identitas/internal/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type NotificationService struct {
	mock.Mock
}

func (m *NotificationService) List(ctx context.Context, userID uuid.UUID, unreadOnly bool, params domain.PaginationParams) (domain.PaginatedResponse[domain.Notification], error) {
	args := m.Called(ctx, userID, unreadOnly, params)
	return args.Get(0).(domain.PaginatedResponse[domain.Notification]), args.Error(1)
}

func (m *NotificationService) GetUnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *NotificationService) MarkAsRead(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *NotificationService) MarkAllAsRead(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *NotificationService) NotifyApplicationSubmitted(ctx context.Context, app *domain.Application) error {
	args := m.Called(ctx, app)
	return args.Error(0)
}

func (m *NotificationService) NotifyApplicationReviewed(ctx context.Context, app *domain.Application, status domain.ApplicationStatus, note *string) error {
	args := m.Called(ctx, app, status, note)
	return args.Error(0)
}

func (m *NotificationService) NotifyDocumentReviewed(ctx context.Context, app *domain.Application, doc *domain.SubmittedDocument, status domain.DocumentStatus, note *string) error {
	args := m.Called(ctx, app, doc, status, note)
	return args.Error(0)
}

func (m *NotificationService) DeliverReapplicationEmail(ctx context.Context, notifID uuid.UUID, record *domain.ReapplicationRecord, applicationNumber string) {
	m.Called(ctx, notifID, record, applicationNumber)
}
