package expiry

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"accessdesk/internal/repository"
	"accessdesk/internal/service/audit"
	"accessdesk/internal/service/notification"
)

// Sweeper periodically transitions temporary requests whose end date has
// passed. The repository guard makes each pass idempotent, so overlapping or
// repeated runs are harmless.
type Sweeper struct {
	requestRepo repository.AccessRequestRepository
	notifSvc    notification.Service
	auditSvc    audit.Service
	interval    time.Duration
	log         *zap.Logger
	stop        chan struct{}
	done        chan struct{}
}

func NewSweeper(requestRepo repository.AccessRequestRepository, notifSvc notification.Service, auditSvc audit.Service, interval time.Duration, log *zap.Logger) *Sweeper {
	return &Sweeper{
		requestRepo: requestRepo,
		notifSvc:    notifSvc,
		auditSvc:    auditSvc,
		interval:    interval,
		log:         log,
		stop:        make(chan struct{}),
		done:        make(chan struct{}),
	}
}

// Start runs one sweep immediately, then one per interval until Stop is
// called or the context is cancelled. It blocks; run it in a goroutine.
func (s *Sweeper) Start(ctx context.Context) {
	defer close(s.done)

	if _, err := s.RunOnce(ctx); err != nil {
		s.log.Error("expiry sweep failed", zap.Error(err))
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-s.stop:
			return
		case <-ticker.C:
			if _, err := s.RunOnce(ctx); err != nil {
				s.log.Error("expiry sweep failed", zap.Error(err))
			}
		}
	}
}

// Stop signals the sweep loop to exit and waits for it.
func (s *Sweeper) Stop() {
	close(s.stop)
	<-s.done
}

// RunOnce performs a single sweep and returns how many requests expired.
func (s *Sweeper) RunOnce(ctx context.Context) (int, error) {
	expired, err := s.requestRepo.ExpireDue(ctx, time.Now())
	if err != nil {
		return 0, err
	}
	if len(expired) == 0 {
		return 0, nil
	}

	s.log.Info("expired temporary access requests", zap.Int("count", len(expired)))

	for i := range expired {
		req := &expired[i]
		// uuid.Nil marks the system itself as the actor.
		s.auditSvc.Record(ctx, uuid.Nil, "expire", "access_request", req.ID,
			nil, map[string]any{"status": req.Status, "requested_end_date": req.RequestedEndDate})
		if err := s.notifSvc.NotifyRequesterOfExpiry(ctx, req); err != nil {
			s.log.Warn("failed to notify requester of expiry",
				zap.String("request_id", req.ID.String()), zap.Error(err))
		}
	}
	return len(expired), nil
}
