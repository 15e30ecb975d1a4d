package notification

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"go.uber.org/zap"

	"accessdesk/internal/domain"
	"accessdesk/internal/repository"
	"accessdesk/internal/service/email"
)

// Service constructs and stores notification payloads for workflow
// transitions. Delivery beyond the email channel hand-off is someone else's
// problem; a failed notification never fails the transition that caused it.
type Service interface {
	Create(ctx context.Context, senderID *uuid.UUID, input domain.CreateNotificationInput) (*domain.Notification, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Notification, error)
	List(ctx context.Context, params domain.PaginationParams) (domain.PaginatedResponse[domain.Notification], error)
	ListByRecipient(ctx context.Context, recipientID uuid.UUID, unreadOnly bool, params domain.PaginationParams) (domain.PaginatedResponse[domain.Notification], error)
	MarkAsRead(ctx context.Context, id uuid.UUID) error
	MarkAllAsRead(ctx context.Context, recipientID uuid.UUID) error
	UnreadCount(ctx context.Context, recipientID uuid.UUID) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) error

	NotifySupervisorReviewNeeded(ctx context.Context, req *domain.AccessRequest, supervisor *domain.Employee) error
	NotifyRequesterOfSupervisorDecision(ctx context.Context, req *domain.AccessRequest, approver *domain.Employee, decision domain.Decision) error
	NotifyAdminsOfSupervisorDecision(ctx context.Context, req *domain.AccessRequest, approver *domain.Employee, decision domain.Decision) error
	NotifyRequesterOfITRejection(ctx context.Context, req *domain.AccessRequest, reason string) error
	NotifyRequesterOfGrants(ctx context.Context, req *domain.AccessRequest) error
	NotifyRequesterOfExpiry(ctx context.Context, req *domain.AccessRequest) error
}

type service struct {
	notifRepo    repository.NotificationRepository
	employeeRepo repository.EmployeeRepository
	systemRepo   repository.SystemPlatformRepository
	userRepo     repository.UserRepository
	emailSvc     email.Service
	log          *zap.Logger
}

func NewService(
	notifRepo repository.NotificationRepository,
	employeeRepo repository.EmployeeRepository,
	systemRepo repository.SystemPlatformRepository,
	userRepo repository.UserRepository,
	emailSvc email.Service,
	log *zap.Logger,
) Service {
	return &service{
		notifRepo:    notifRepo,
		employeeRepo: employeeRepo,
		systemRepo:   systemRepo,
		userRepo:     userRepo,
		emailSvc:     emailSvc,
		log:          log,
	}
}

func (s *service) Create(ctx context.Context, senderID *uuid.UUID, input domain.CreateNotificationInput) (*domain.Notification, error) {
	if input.Title == "" || input.Message == "" {
		return nil, domain.NewValidationError("title and message are required")
	}
	if !input.Type.IsValid() {
		return nil, domain.NewValidationError("invalid notification type: %s", input.Type)
	}
	for _, ch := range input.Channels {
		if !ch.IsValid() {
			return nil, domain.NewValidationError("invalid channel: %s", ch)
		}
	}

	recipient, err := s.employeeRepo.GetByID(ctx, input.RecipientID)
	if err != nil {
		if domain.IsNotFound(err) {
			return nil, domain.NewValidationError("invalid recipient: employee does not exist")
		}
		return nil, err
	}

	if input.RelatedSystemID != nil {
		if _, err := s.systemRepo.GetByID(ctx, *input.RelatedSystemID); err != nil {
			if domain.IsNotFound(err) {
				return nil, domain.NewValidationError("invalid related system: system does not exist")
			}
			return nil, err
		}
	}

	channels := make([]string, 0, len(input.Channels))
	for _, ch := range input.Channels {
		channels = append(channels, string(ch))
	}
	if len(channels) == 0 {
		channels = []string{string(domain.ChannelInApp)}
	}

	priority := input.Priority
	if priority == "" {
		priority = domain.PriorityMedium
	}

	notif := &domain.Notification{
		ID:              uuid.New(),
		RecipientID:     &recipient.ID,
		SenderID:        senderID,
		RecipientName:   &recipient.FullName,
		RecipientEmail:  &recipient.Email,
		RelatedSystemID: input.RelatedSystemID,
		Type:            input.Type,
		Priority:        priority,
		Title:           input.Title,
		Message:         input.Message,
		Channels:        pq.StringArray(channels),
	}

	if err := s.notifRepo.Create(ctx, notif); err != nil {
		return nil, err
	}
	return notif, nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*domain.Notification, error) {
	return s.notifRepo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, params domain.PaginationParams) (domain.PaginatedResponse[domain.Notification], error) {
	notifications, total, err := s.notifRepo.List(ctx, params)
	if err != nil {
		return domain.PaginatedResponse[domain.Notification]{}, err
	}
	return domain.NewPaginatedResponse(notifications, params.Page, params.PageSize, total), nil
}

func (s *service) ListByRecipient(ctx context.Context, recipientID uuid.UUID, unreadOnly bool, params domain.PaginationParams) (domain.PaginatedResponse[domain.Notification], error) {
	notifications, total, err := s.notifRepo.ListByRecipient(ctx, recipientID, unreadOnly, params)
	if err != nil {
		return domain.PaginatedResponse[domain.Notification]{}, err
	}
	return domain.NewPaginatedResponse(notifications, params.Page, params.PageSize, total), nil
}

func (s *service) MarkAsRead(ctx context.Context, id uuid.UUID) error {
	return s.notifRepo.MarkAsRead(ctx, id)
}

func (s *service) MarkAllAsRead(ctx context.Context, recipientID uuid.UUID) error {
	return s.notifRepo.MarkAllAsRead(ctx, recipientID)
}

func (s *service) UnreadCount(ctx context.Context, recipientID uuid.UUID) (int64, error) {
	return s.notifRepo.CountUnread(ctx, recipientID)
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.notifRepo.Delete(ctx, id)
}

func (s *service) NotifySupervisorReviewNeeded(ctx context.Context, req *domain.AccessRequest, supervisor *domain.Employee) error {
	notif := &domain.Notification{
		ID:                     uuid.New(),
		RecipientID:            &supervisor.ID,
		SenderID:               &req.EmployeeID,
		RecipientName:          &supervisor.FullName,
		RecipientEmail:         &supervisor.Email,
		SenderName:             req.EmployeeFullName,
		SenderEmail:            req.EmployeeEmail,
		RelatedAccessRequestID: &req.ID,
		RelatedSystemID:        &req.SystemID,
		Type:                   domain.NotifSupervisorNeedsToAct,
		Priority:               priorityFor(req.UrgencyLevel),
		Title:                  "Access Request Awaiting Your Approval",
		Message: fmt.Sprintf("%s requested access to %s and is waiting for your decision.",
			displayName(req.EmployeeFullName), displayName(req.SystemName)),
		Channels: pq.StringArray{string(domain.ChannelInApp), string(domain.ChannelEmail)},
	}

	if err := s.notifRepo.Create(ctx, notif); err != nil {
		return err
	}

	s.deliverEmail(notif, func() error {
		return s.emailSvc.SendReviewRequestEmail(context.Background(),
			supervisor.Email, supervisor.FullName,
			displayName(req.EmployeeFullName), displayName(req.SystemName))
	})
	return nil
}

func (s *service) NotifyRequesterOfSupervisorDecision(ctx context.Context, req *domain.AccessRequest, approver *domain.Employee, decision domain.Decision) error {
	notifType := domain.NotifSupervisorApproved
	title := "Access Request Approved by Supervisor"
	message := fmt.Sprintf("%s approved your access request for %s.",
		approver.FullName, displayName(req.SystemName))

	if decision == domain.DecisionRejected {
		notifType = domain.NotifRejected
		title = "Access Request Rejected"
		message = fmt.Sprintf("%s rejected your access request for %s.",
			approver.FullName, displayName(req.SystemName))
	} else if req.Status == domain.StatusPending {
		// Not every recorded approver has decided yet.
		notifType = domain.NotifPending
		title = "Access Request Decision Recorded"
		message = fmt.Sprintf("%s approved your access request for %s; other approvals are still pending.",
			approver.FullName, displayName(req.SystemName))
	}

	notif := &domain.Notification{
		ID:                     uuid.New(),
		RecipientID:            &req.EmployeeID,
		SenderID:               &approver.ID,
		RecipientName:          req.EmployeeFullName,
		RecipientEmail:         req.EmployeeEmail,
		SenderName:             &approver.FullName,
		SenderEmail:            &approver.Email,
		RelatedAccessRequestID: &req.ID,
		RelatedSystemID:        &req.SystemID,
		Type:                   notifType,
		Priority:               priorityFor(req.UrgencyLevel),
		Title:                  title,
		Message:                message,
		Channels:               pq.StringArray{string(domain.ChannelInApp), string(domain.ChannelEmail)},
	}

	if err := s.notifRepo.Create(ctx, notif); err != nil {
		return err
	}

	if req.EmployeeEmail != nil {
		s.deliverEmail(notif, func() error {
			return s.emailSvc.SendDecisionEmail(context.Background(),
				*req.EmployeeEmail, displayName(req.EmployeeFullName),
				displayName(req.SystemName), string(req.Status), message)
		})
	}
	return nil
}

// NotifyAdminsOfSupervisorDecision fans out to every active admin account so
// IT knows the request may be ready for its round.
func (s *service) NotifyAdminsOfSupervisorDecision(ctx context.Context, req *domain.AccessRequest, approver *domain.Employee, decision domain.Decision) error {
	admins, err := s.userRepo.ListActiveAdmins(ctx)
	if err != nil {
		return fmt.Errorf("failed to list admins: %w", err)
	}

	message := fmt.Sprintf("%s recorded a %s decision on %s's request for %s.",
		approver.FullName, decision,
		displayName(req.EmployeeFullName), displayName(req.SystemName))

	for _, admin := range admins {
		notif := &domain.Notification{
			ID:                     uuid.New(),
			RecipientID:            admin.EmployeeID,
			SenderID:               &approver.ID,
			RecipientName:          &admin.FullName,
			RecipientEmail:         &admin.Email,
			SenderName:             &approver.FullName,
			SenderEmail:            &approver.Email,
			RelatedAccessRequestID: &req.ID,
			RelatedSystemID:        &req.SystemID,
			Type:                   typeForStatus(req.Status),
			Priority:               priorityFor(req.UrgencyLevel),
			Title:                  "Supervisor Decision Logged",
			Message:                message,
			Channels:               pq.StringArray{string(domain.ChannelInApp)},
		}

		if err := s.notifRepo.Create(ctx, notif); err != nil {
			s.log.Warn("failed to create admin notification",
				zap.String("user_id", admin.ID.String()), zap.Error(err))
		}
	}
	return nil
}

func (s *service) NotifyRequesterOfITRejection(ctx context.Context, req *domain.AccessRequest, reason string) error {
	message := fmt.Sprintf("IT rejected your access request for %s.", displayName(req.SystemName))
	if reason != "" {
		message += " Reason: " + reason
	}

	notif := &domain.Notification{
		ID:                     uuid.New(),
		RecipientID:            &req.EmployeeID,
		RecipientName:          req.EmployeeFullName,
		RecipientEmail:         req.EmployeeEmail,
		RelatedAccessRequestID: &req.ID,
		RelatedSystemID:        &req.SystemID,
		Type:                   domain.NotifRejected,
		Priority:               priorityFor(req.UrgencyLevel),
		Title:                  "Access Request Rejected by IT",
		Message:                message,
		Channels:               pq.StringArray{string(domain.ChannelInApp), string(domain.ChannelEmail)},
	}

	if err := s.notifRepo.Create(ctx, notif); err != nil {
		return err
	}

	if req.EmployeeEmail != nil {
		s.deliverEmail(notif, func() error {
			return s.emailSvc.SendDecisionEmail(context.Background(),
				*req.EmployeeEmail, displayName(req.EmployeeFullName),
				displayName(req.SystemName), string(domain.StatusRejected), message)
		})
	}
	return nil
}

// NotifyRequesterOfGrants emits a single summary covering every granted
// access type's capability flags and expiry.
func (s *service) NotifyRequesterOfGrants(ctx context.Context, req *domain.AccessRequest) error {
	summary := GrantSummary(req.GrantedPermissions)

	notif := &domain.Notification{
		ID:                     uuid.New(),
		RecipientID:            &req.EmployeeID,
		RecipientName:          req.EmployeeFullName,
		RecipientEmail:         req.EmployeeEmail,
		RelatedAccessRequestID: &req.ID,
		RelatedSystemID:        &req.SystemID,
		Type:                   domain.NotifApproved,
		Priority:               priorityFor(req.UrgencyLevel),
		Title:                  "Access Granted",
		Message: fmt.Sprintf("IT approved your access request for %s. %s",
			displayName(req.SystemName), summary),
		Channels: pq.StringArray{string(domain.ChannelInApp), string(domain.ChannelEmail)},
	}

	if err := s.notifRepo.Create(ctx, notif); err != nil {
		return err
	}

	if req.EmployeeEmail != nil {
		s.deliverEmail(notif, func() error {
			return s.emailSvc.SendGrantSummaryEmail(context.Background(),
				*req.EmployeeEmail, displayName(req.EmployeeFullName),
				displayName(req.SystemName), summary)
		})
	}
	return nil
}

func (s *service) NotifyRequesterOfExpiry(ctx context.Context, req *domain.AccessRequest) error {
	notif := &domain.Notification{
		ID:                     uuid.New(),
		RecipientID:            &req.EmployeeID,
		RecipientName:          req.EmployeeFullName,
		RecipientEmail:         req.EmployeeEmail,
		RelatedAccessRequestID: &req.ID,
		RelatedSystemID:        &req.SystemID,
		Type:                   domain.NotifExpired,
		Priority:               domain.PriorityLow,
		Title:                  "Access Expired",
		Message: fmt.Sprintf("Your temporary access to %s has expired.",
			displayName(req.SystemName)),
		Channels: pq.StringArray{string(domain.ChannelInApp)},
	}
	return s.notifRepo.Create(ctx, notif)
}

// deliverEmail hands the payload to the email channel asynchronously when the
// notification targets it. Failures are logged, never propagated.
func (s *service) deliverEmail(notif *domain.Notification, send func() error) {
	if !notif.HasChannel(domain.ChannelEmail) || s.emailSvc == nil {
		return
	}
	go func() {
		if err := send(); err != nil {
			s.log.Warn("failed to send notification email",
				zap.String("notification_id", notif.ID.String()), zap.Error(err))
		}
	}()
}

// GrantSummary renders the capability flags and expiry of each grant into one
// human-readable line.
func GrantSummary(grants []domain.PermissionGrant) string {
	parts := make([]string, 0, len(grants))
	for _, g := range grants {
		caps := make([]string, 0, 4)
		if g.CanRead {
			caps = append(caps, "read")
		}
		if g.CanInsert {
			caps = append(caps, "insert")
		}
		if g.CanUpdate {
			caps = append(caps, "update")
		}
		if g.CanDelete {
			caps = append(caps, "delete")
		}
		capText := "no capabilities"
		if len(caps) > 0 {
			capText = strings.Join(caps, "/")
		}

		expiry := "no expiry"
		if g.AccessExpiryDate != nil {
			expiry = "expires " + g.AccessExpiryDate.Format("2006-01-02")
		}
		parts = append(parts, fmt.Sprintf("%s (%s, %s)", g.TypeName, capText, expiry))
	}
	return "Granted: " + strings.Join(parts, "; ") + "."
}

func priorityFor(urgency domain.UrgencyLevel) domain.NotificationPriority {
	switch urgency {
	case domain.UrgencyCritical:
		return domain.PriorityUrgent
	case domain.UrgencyHigh:
		return domain.PriorityHigh
	case domain.UrgencyLow:
		return domain.PriorityLow
	default:
		return domain.PriorityMedium
	}
}

func typeForStatus(status domain.RequestStatus) domain.NotificationType {
	t := domain.NotificationType(status)
	if t.IsValid() {
		return t
	}
	return domain.NotifPending
}

func displayName(s *string) string {
	if s == nil || *s == "" {
		return "(unknown)"
	}
	return *s
}
