package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type EmailService struct {
	mock.Mock
}

func (m *EmailService) SendReviewRequestEmail(ctx context.Context, toEmail, recipientName, requesterName, systemName string) error {
	args := m.Called(ctx, toEmail, recipientName, requesterName, systemName)
	return args.Error(0)
}

func (m *EmailService) SendDecisionEmail(ctx context.Context, toEmail, recipientName, systemName, status, message string) error {
	args := m.Called(ctx, toEmail, recipientName, systemName, status, message)
	return args.Error(0)
}

func (m *EmailService) SendGrantSummaryEmail(ctx context.Context, toEmail, recipientName, systemName, summary string) error {
	args := m.Called(ctx, toEmail, recipientName, systemName, summary)
	return args.Error(0)
}
