package audit

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"accessdesk/internal/domain"
	"accessdesk/internal/repository"
)

// Service appends to the audit trail. Record never returns an error: a trail
// write must not fail the operation it describes, so failures are logged and
// dropped.
type Service interface {
	Record(ctx context.Context, actorID uuid.UUID, action, entityType string, entityID uuid.UUID, oldValue, newValue any)
	List(ctx context.Context, params domain.PaginationParams) (domain.PaginatedResponse[domain.AuditLog], error)
}

type service struct {
	repo repository.AuditLogRepository
	log  *zap.Logger
}

func NewService(repo repository.AuditLogRepository, log *zap.Logger) Service {
	return &service{repo: repo, log: log}
}

func (s *service) Record(ctx context.Context, actorID uuid.UUID, action, entityType string, entityID uuid.UUID, oldValue, newValue any) {
	entry := &domain.AuditLog{
		ID:         uuid.New(),
		ActorID:    actorID,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		OldValue:   marshal(oldValue),
		NewValue:   marshal(newValue),
	}
	if meta, ok := domain.RequestMetaFrom(ctx); ok {
		if meta.IPAddress != "" {
			entry.IPAddress = &meta.IPAddress
		}
		if meta.UserAgent != "" {
			entry.UserAgent = &meta.UserAgent
		}
	}

	if err := s.repo.Create(ctx, entry); err != nil {
		s.log.Warn("failed to write audit entry",
			zap.String("action", action),
			zap.String("entity_type", entityType),
			zap.String("entity_id", entityID.String()),
			zap.Error(err))
	}
}

func (s *service) List(ctx context.Context, params domain.PaginationParams) (domain.PaginatedResponse[domain.AuditLog], error) {
	entries, total, err := s.repo.List(ctx, params)
	if err != nil {
		return domain.PaginatedResponse[domain.AuditLog]{}, err
	}
	return domain.NewPaginatedResponse(entries, params.Page, params.PageSize, total), nil
}

func marshal(v any) json.RawMessage {
	if v == nil {
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	return b
}
