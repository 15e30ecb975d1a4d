package dashboard_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"accessdesk/internal/domain"
	"accessdesk/internal/mocks"
	"accessdesk/internal/repository"
	"accessdesk/internal/service/dashboard"
)

func TestDashboardService_GetStats(t *testing.T) {
	ctx := context.Background()

	requestRepo := new(mocks.AccessRequestRepository)
	svc := dashboard.NewService(requestRepo, nil, zap.NewNop())

	byStatus := map[domain.RequestStatus]int64{
		domain.StatusPending:            4,
		domain.StatusSupervisorApproved: 2,
		domain.StatusITApproved:         1,
		domain.StatusApproved:           3,
		domain.StatusRejected:           5,
		domain.StatusExpired:            2,
	}
	topSystems := []repository.SystemRequestCount{
		{SystemID: uuid.New(), Count: 9},
	}

	requestRepo.On("CountAll", ctx).Return(int64(17), nil).Once()
	requestRepo.On("CountByStatus", ctx).Return(byStatus, nil).Once()
	requestRepo.On("MostRequestedSystems", ctx, 5).Return(topSystems, nil).Once()

	stats, err := svc.GetStats(ctx)

	assert.NoError(t, err)
	assert.Equal(t, int64(17), stats.TotalRequests)
	assert.Equal(t, int64(4), stats.PendingCount)
	// The approved bucket spans every post-supervisor status.
	assert.Equal(t, int64(6), stats.ApprovedCount)
	assert.Equal(t, int64(5), stats.RejectedCount)
	assert.Equal(t, int64(2), stats.ExpiredCount)
	assert.Len(t, stats.TopSystems, 1)
	requestRepo.AssertExpectations(t)
}
