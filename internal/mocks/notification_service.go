package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"accessdesk/internal/domain"
)

type NotificationService struct {
	mock.Mock
}

func (m *NotificationService) Create(ctx context.Context, senderID *uuid.UUID, input domain.CreateNotificationInput) (*domain.Notification, error) {
	args := m.Called(ctx, senderID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Notification), args.Error(1)
}

func (m *NotificationService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Notification, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Notification), args.Error(1)
}

func (m *NotificationService) List(ctx context.Context, params domain.PaginationParams) (domain.PaginatedResponse[domain.Notification], error) {
	args := m.Called(ctx, params)
	return args.Get(0).(domain.PaginatedResponse[domain.Notification]), args.Error(1)
}

func (m *NotificationService) ListByRecipient(ctx context.Context, recipientID uuid.UUID, unreadOnly bool, params domain.PaginationParams) (domain.PaginatedResponse[domain.Notification], error) {
	args := m.Called(ctx, recipientID, unreadOnly, params)
	return args.Get(0).(domain.PaginatedResponse[domain.Notification]), args.Error(1)
}

func (m *NotificationService) MarkAsRead(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *NotificationService) MarkAllAsRead(ctx context.Context, recipientID uuid.UUID) error {
	args := m.Called(ctx, recipientID)
	return args.Error(0)
}

func (m *NotificationService) UnreadCount(ctx context.Context, recipientID uuid.UUID) (int64, error) {
	args := m.Called(ctx, recipientID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *NotificationService) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *NotificationService) NotifySupervisorReviewNeeded(ctx context.Context, req *domain.AccessRequest, supervisor *domain.Employee) error {
	args := m.Called(ctx, req, supervisor)
	return args.Error(0)
}

func (m *NotificationService) NotifyRequesterOfSupervisorDecision(ctx context.Context, req *domain.AccessRequest, approver *domain.Employee, decision domain.Decision) error {
	args := m.Called(ctx, req, approver, decision)
	return args.Error(0)
}

func (m *NotificationService) NotifyAdminsOfSupervisorDecision(ctx context.Context, req *domain.AccessRequest, approver *domain.Employee, decision domain.Decision) error {
	args := m.Called(ctx, req, approver, decision)
	return args.Error(0)
}

func (m *NotificationService) NotifyRequesterOfITRejection(ctx context.Context, req *domain.AccessRequest, reason string) error {
	args := m.Called(ctx, req, reason)
	return args.Error(0)
}

func (m *NotificationService) NotifyRequesterOfGrants(ctx context.Context, req *domain.AccessRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *NotificationService) NotifyRequesterOfExpiry(ctx context.Context, req *domain.AccessRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}
