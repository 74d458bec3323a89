package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type EmailService struct {
	mock.Mock
}

func (m *EmailService) SendEmailVerification(ctx context.Context, toEmail, fullName, verificationToken string) error {
	args := m.Called(ctx, toEmail, fullName, verificationToken)
	return args.Error(0)
}

func (m *EmailService) SendReapplicationSummary(ctx context.Context, toEmail, fullName, applicationNumber string, reusedCount, requiredNewCount int) error {
	args := m.Called(ctx, toEmail, fullName, applicationNumber, reusedCount, requiredNewCount)
	return args.Error(0)
}

func (m *EmailService) SendApplicationStatusEmail(ctx context.Context, toEmail, fullName, applicationNumber, status string, note *string) error {
	args := m.Called(ctx, toEmail, fullName, applicationNumber, status, note)
	return args.Error(0)
}
