package audit

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"accessdesk/internal/domain"
	"accessdesk/internal/mocks"
)

func TestRecord(t *testing.T) {
	actorID := uuid.New()
	entityID := uuid.New()

	t.Run("Captures Request Meta From Context", func(t *testing.T) {
		repo := new(mocks.AuditLogRepository)
		svc := NewService(repo, zap.NewNop())

		repo.On("Create", mock.Anything, mock.MatchedBy(func(entry *domain.AuditLog) bool {
			return entry.IPAddress != nil && *entry.IPAddress == "203.0.113.7" &&
				entry.UserAgent != nil && *entry.UserAgent == "curl/8.5.0"
		})).Return(nil).Once()

		ctx := domain.WithRequestMeta(context.Background(), domain.RequestMeta{
			IPAddress: "203.0.113.7",
			UserAgent: "curl/8.5.0",
		})
		svc.Record(ctx, actorID, "it_approve", "access_request", entityID, nil, nil)

		repo.AssertExpectations(t)
	})

	t.Run("Meta Absent Leaves Fields Nil", func(t *testing.T) {
		repo := new(mocks.AuditLogRepository)
		svc := NewService(repo, zap.NewNop())

		repo.On("Create", mock.Anything, mock.MatchedBy(func(entry *domain.AuditLog) bool {
			return entry.IPAddress == nil && entry.UserAgent == nil
		})).Return(nil).Once()

		svc.Record(context.Background(), actorID, "create", "access_request", entityID, nil, nil)

		repo.AssertExpectations(t)
	})

	t.Run("Repository Failure Does Not Panic", func(t *testing.T) {
		repo := new(mocks.AuditLogRepository)
		svc := NewService(repo, zap.NewNop())

		repo.On("Create", mock.Anything, mock.Anything).Return(assert.AnError).Once()

		svc.Record(context.Background(), actorID, "create", "access_request", entityID, nil, nil)

		repo.AssertExpectations(t)
	})
}
