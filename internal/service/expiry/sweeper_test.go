package expiry_test

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
	"accessdesk/internal/service/audit"
	"accessdesk/internal/service/expiry"
)

func newSweeper(requestRepo *mocks.AccessRequestRepository, notifSvc *mocks.NotificationService, auditRepo *mocks.AuditLogRepository) *expiry.Sweeper {
	auditRepo.On("Create", mock.Anything, mock.Anything).Return(nil).Maybe()
	auditSvc := audit.NewService(auditRepo, zap.NewNop())
	return expiry.NewSweeper(requestRepo, notifSvc, auditSvc, time.Hour, zap.NewNop())
}

func TestSweeper_RunOnce(t *testing.T) {
	ctx := context.Background()

	t.Run("Nothing Due", func(t *testing.T) {
		requestRepo := new(mocks.AccessRequestRepository)
		notifSvc := new(mocks.NotificationService)
		requestRepo.On("ExpireDue", ctx, mock.Anything).Return([]domain.AccessRequest{}, nil).Once()

		sweeper := newSweeper(requestRepo, notifSvc, new(mocks.AuditLogRepository))
		count, err := sweeper.RunOnce(ctx)

		assert.NoError(t, err)
		assert.Zero(t, count)
		notifSvc.AssertNotCalled(t, "NotifyRequesterOfExpiry", mock.Anything, mock.Anything)
	})

	t.Run("Expires And Notifies Each Requester", func(t *testing.T) {
		requestRepo := new(mocks.AccessRequestRepository)
		notifSvc := new(mocks.NotificationService)

		expired := []domain.AccessRequest{
			{ID: uuid.New(), Status: domain.StatusExpired, IsExpired: true},
			{ID: uuid.New(), Status: domain.StatusExpired, IsExpired: true},
		}
		requestRepo.On("ExpireDue", ctx, mock.Anything).Return(expired, nil).Once()
		notifSvc.On("NotifyRequesterOfExpiry", ctx, &expired[0]).Return(nil).Once()
		notifSvc.On("NotifyRequesterOfExpiry", ctx, &expired[1]).Return(nil).Once()

		sweeper := newSweeper(requestRepo, notifSvc, new(mocks.AuditLogRepository))
		count, err := sweeper.RunOnce(ctx)

		assert.NoError(t, err)
		assert.Equal(t, 2, count)
		notifSvc.AssertExpectations(t)
	})

	t.Run("Second Pass Is A No Op", func(t *testing.T) {
		requestRepo := new(mocks.AccessRequestRepository)
		notifSvc := new(mocks.NotificationService)

		expired := []domain.AccessRequest{{ID: uuid.New(), Status: domain.StatusExpired, IsExpired: true}}
		requestRepo.On("ExpireDue", ctx, mock.Anything).Return(expired, nil).Once()
		requestRepo.On("ExpireDue", ctx, mock.Anything).Return([]domain.AccessRequest{}, nil).Once()
		notifSvc.On("NotifyRequesterOfExpiry", ctx, mock.Anything).Return(nil).Once()

		sweeper := newSweeper(requestRepo, notifSvc, new(mocks.AuditLogRepository))

		first, err := sweeper.RunOnce(ctx)
		assert.NoError(t, err)
		assert.Equal(t, 1, first)

		second, err := sweeper.RunOnce(ctx)
		assert.NoError(t, err)
		assert.Zero(t, second)
	})

	t.Run("Records An Audit Entry Per Expired Request", func(t *testing.T) {
		requestRepo := new(mocks.AccessRequestRepository)
		notifSvc := new(mocks.NotificationService)
		auditRepo := new(mocks.AuditLogRepository)

		expired := []domain.AccessRequest{{ID: uuid.New(), Status: domain.StatusExpired, IsExpired: true}}
		requestRepo.On("ExpireDue", ctx, mock.Anything).Return(expired, nil).Once()
		notifSvc.On("NotifyRequesterOfExpiry", ctx, mock.Anything).Return(nil).Once()
		auditRepo.On("Create", ctx, mock.MatchedBy(func(entry *domain.AuditLog) bool {
			return entry.Action == "expire" && entry.ActorID == uuid.Nil && entry.EntityID == expired[0].ID
		})).Return(nil).Once()

		auditSvc := audit.NewService(auditRepo, zap.NewNop())
		sweeper := expiry.NewSweeper(requestRepo, notifSvc, auditSvc, time.Hour, zap.NewNop())

		count, err := sweeper.RunOnce(ctx)
		assert.NoError(t, err)
		assert.Equal(t, 1, count)
		auditRepo.AssertExpectations(t)
	})

	t.Run("Notification Failure Does Not Fail The Sweep", func(t *testing.T) {
		requestRepo := new(mocks.AccessRequestRepository)
		notifSvc := new(mocks.NotificationService)

		expired := []domain.AccessRequest{{ID: uuid.New(), Status: domain.StatusExpired, IsExpired: true}}
		requestRepo.On("ExpireDue", ctx, mock.Anything).Return(expired, nil).Once()
		notifSvc.On("NotifyRequesterOfExpiry", ctx, mock.Anything).Return(assert.AnError).Once()

		sweeper := newSweeper(requestRepo, notifSvc, new(mocks.AuditLogRepository))
		count, err := sweeper.RunOnce(ctx)

		assert.NoError(t, err)
		assert.Equal(t, 1, count)
	})
}
