package dashboard

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"accessdesk/internal/domain"
	"accessdesk/internal/repository"
)

const (
	statsCacheKey = "dashboard:stats"
	statsCacheTTL = 5 * time.Minute
)

// Stats is the aggregate view served to the dashboard. The approved bucket
// counts every request past the supervisor round: supervisor_approved,
// it_approved and approved.
type Stats struct {
	TotalRequests int64                           `json:"total_requests"`
	PendingCount  int64                           `json:"pending_count"`
	ApprovedCount int64                           `json:"approved_count"`
	RejectedCount int64                           `json:"rejected_count"`
	ExpiredCount  int64                           `json:"expired_count"`
	ByStatus      map[domain.RequestStatus]int64  `json:"by_status"`
	TopSystems    []repository.SystemRequestCount `json:"top_systems"`
	GeneratedAt   time.Time                       `json:"generated_at"`
}

type Service interface {
	GetStats(ctx context.Context) (*Stats, error)
	InvalidateCache(ctx context.Context)
}

type service struct {
	requestRepo repository.AccessRequestRepository
	cache       *redis.Client
	log         *zap.Logger
}

func NewService(requestRepo repository.AccessRequestRepository, cache *redis.Client, log *zap.Logger) Service {
	return &service{requestRepo: requestRepo, cache: cache, log: log}
}

func (s *service) GetStats(ctx context.Context) (*Stats, error) {
	if cached := s.fromCache(ctx); cached != nil {
		return cached, nil
	}

	total, err := s.requestRepo.CountAll(ctx)
	if err != nil {
		return nil, err
	}

	byStatus, err := s.requestRepo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}

	topSystems, err := s.requestRepo.MostRequestedSystems(ctx, 5)
	if err != nil {
		return nil, err
	}

	stats := &Stats{
		TotalRequests: total,
		PendingCount:  byStatus[domain.StatusPending],
		ApprovedCount: byStatus[domain.StatusSupervisorApproved] +
			byStatus[domain.StatusITApproved] +
			byStatus[domain.StatusApproved],
		RejectedCount: byStatus[domain.StatusRejected],
		ExpiredCount:  byStatus[domain.StatusExpired],
		ByStatus:      byStatus,
		TopSystems:    topSystems,
		GeneratedAt:   time.Now(),
	}

	s.toCache(ctx, stats)
	return stats, nil
}

func (s *service) InvalidateCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, statsCacheKey).Err(); err != nil {
		s.log.Warn("failed to invalidate stats cache", zap.Error(err))
	}
}

func (s *service) fromCache(ctx context.Context) *Stats {
	if s.cache == nil {
		return nil
	}
	raw, err := s.cache.Get(ctx, statsCacheKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			s.log.Warn("stats cache read failed", zap.Error(err))
		}
		return nil
	}
	var stats Stats
	if err := json.Unmarshal(raw, &stats); err != nil {
		s.log.Warn("stats cache entry corrupt, discarding", zap.Error(err))
		return nil
	}
	return &stats
}

func (s *service) toCache(ctx context.Context, stats *Stats) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(stats)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, statsCacheKey, raw, statsCacheTTL).Err(); err != nil {
		s.log.Warn("stats cache write failed", zap.Error(err))
	}
}
