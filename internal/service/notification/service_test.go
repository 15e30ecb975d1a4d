package notification_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"accessdesk/internal/domain"
	"accessdesk/internal/mocks"
	"accessdesk/internal/service/notification"
)

func newService(t *testing.T) (notification.Service, *mocks.NotificationRepository, *mocks.EmployeeRepository, *mocks.UserRepository) {
	t.Helper()
	notifRepo := new(mocks.NotificationRepository)
	employeeRepo := new(mocks.EmployeeRepository)
	systemRepo := new(mocks.SystemPlatformRepository)
	userRepo := new(mocks.UserRepository)
	emailSvc := new(mocks.EmailService)
	emailSvc.On("SendReviewRequestEmail", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()
	emailSvc.On("SendDecisionEmail", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()
	emailSvc.On("SendGrantSummaryEmail", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()

	svc := notification.NewService(notifRepo, employeeRepo, systemRepo, userRepo, emailSvc, zap.NewNop())
	return svc, notifRepo, employeeRepo, userRepo
}

func strPtr(s string) *string { return &s }

func TestNotificationService_Create(t *testing.T) {
	ctx := context.Background()

	recipient := &domain.Employee{
		ID:       uuid.New(),
		FullName: "Ada Wong",
		Email:    "ada@example.com",
	}

	t.Run("Defaults Channels And Priority", func(t *testing.T) {
		svc, notifRepo, employeeRepo, _ := newService(t)
		employeeRepo.On("GetByID", ctx, recipient.ID).Return(recipient, nil).Once()
		notifRepo.On("Create", ctx, mock.MatchedBy(func(n *domain.Notification) bool {
			return n.Priority == domain.PriorityMedium &&
				len(n.Channels) == 1 && n.Channels[0] == string(domain.ChannelInApp) &&
				*n.RecipientName == "Ada Wong" &&
				*n.RecipientEmail == "ada@example.com"
		})).Return(nil).Once()

		notif, err := svc.Create(ctx, nil, domain.CreateNotificationInput{
			RecipientID: recipient.ID,
			Type:        domain.NotifPending,
			Title:       "Heads up",
			Message:     "Something is pending",
		})

		assert.NoError(t, err)
		assert.NotNil(t, notif)
		notifRepo.AssertExpectations(t)
	})

	t.Run("Unknown Recipient Fails Validation", func(t *testing.T) {
		svc, notifRepo, employeeRepo, _ := newService(t)
		badID := uuid.New()
		employeeRepo.On("GetByID", ctx, badID).Return(nil, domain.NewNotFoundError("employee")).Once()

		notif, err := svc.Create(ctx, nil, domain.CreateNotificationInput{
			RecipientID: badID,
			Type:        domain.NotifPending,
			Title:       "Heads up",
			Message:     "Something is pending",
		})

		assert.Nil(t, notif)
		assert.True(t, domain.IsValidation(err))
		notifRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Invalid Type Fails Validation", func(t *testing.T) {
		svc, _, _, _ := newService(t)

		notif, err := svc.Create(ctx, nil, domain.CreateNotificationInput{
			RecipientID: recipient.ID,
			Type:        "carrier_pigeon",
			Title:       "Heads up",
			Message:     "Something is pending",
		})

		assert.Nil(t, notif)
		assert.True(t, domain.IsValidation(err))
	})

	t.Run("Missing Title Fails Validation", func(t *testing.T) {
		svc, _, _, _ := newService(t)

		notif, err := svc.Create(ctx, nil, domain.CreateNotificationInput{
			RecipientID: recipient.ID,
			Type:        domain.NotifPending,
			Message:     "no title",
		})

		assert.Nil(t, notif)
		assert.True(t, domain.IsValidation(err))
	})
}

func TestNotificationService_AdminFanOut(t *testing.T) {
	ctx := context.Background()

	approver := &domain.Employee{ID: uuid.New(), FullName: "Boss Person", Email: "boss@example.com"}
	req := &domain.AccessRequest{
		ID:         uuid.New(),
		EmployeeID: uuid.New(),
		SystemID:   uuid.New(),
		Status:     domain.StatusSupervisorApproved,
		EmployeeSnapshot: domain.EmployeeSnapshot{
			EmployeeFullName: strPtr("Ada Wong"),
			EmployeeEmail:    strPtr("ada@example.com"),
		},
		SystemSnapshot: domain.SystemSnapshot{SystemName: strPtr("ERP")},
	}

	t.Run("One Notification Per Active Admin", func(t *testing.T) {
		svc, notifRepo, _, userRepo := newService(t)

		admins := []domain.User{
			{ID: uuid.New(), FullName: "Admin One", Email: "one@example.com", IsActive: true},
			{ID: uuid.New(), FullName: "Admin Two", Email: "two@example.com", IsActive: true},
		}
		userRepo.On("ListActiveAdmins", ctx).Return(admins, nil).Once()
		notifRepo.On("Create", ctx, mock.MatchedBy(func(n *domain.Notification) bool {
			return *n.RelatedAccessRequestID == req.ID && n.Type == domain.NotifSupervisorApproved
		})).Return(nil).Twice()

		err := svc.NotifyAdminsOfSupervisorDecision(ctx, req, approver, domain.DecisionApproved)

		assert.NoError(t, err)
		notifRepo.AssertExpectations(t)
	})

	t.Run("No Admins Means No Writes", func(t *testing.T) {
		svc, notifRepo, _, userRepo := newService(t)
		userRepo.On("ListActiveAdmins", ctx).Return([]domain.User{}, nil).Once()

		err := svc.NotifyAdminsOfSupervisorDecision(ctx, req, approver, domain.DecisionApproved)

		assert.NoError(t, err)
		notifRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestNotificationService_ExpiryNotice(t *testing.T) {
	ctx := context.Background()

	req := &domain.AccessRequest{
		ID:         uuid.New(),
		EmployeeID: uuid.New(),
		SystemID:   uuid.New(),
		Status:     domain.StatusExpired,
		SystemSnapshot: domain.SystemSnapshot{SystemName: strPtr("ERP")},
	}

	svc, notifRepo, _, _ := newService(t)
	notifRepo.On("Create", ctx, mock.MatchedBy(func(n *domain.Notification) bool {
		return n.Type == domain.NotifExpired &&
			n.Priority == domain.PriorityLow &&
			*n.RecipientID == req.EmployeeID
	})).Return(nil).Once()

	err := svc.NotifyRequesterOfExpiry(ctx, req)

	assert.NoError(t, err)
	notifRepo.AssertExpectations(t)
}

func TestGrantSummary(t *testing.T) {
	expiry := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)

	grants := []domain.PermissionGrant{
		{TypeName: "read-only", CanRead: true},
		{TypeName: "read-write", CanRead: true, CanUpdate: true, AccessExpiryDate: &expiry},
		{TypeName: "locked"},
	}

	summary := notification.GrantSummary(grants)

	assert.Contains(t, summary, "read-only (read, no expiry)")
	assert.Contains(t, summary, "read-write (read/update, expires 2026-10-01)")
	assert.Contains(t, summary, "locked (no capabilities, no expiry)")
}
