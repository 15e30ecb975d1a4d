package accessrequest

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"accessdesk/internal/domain"
	"accessdesk/internal/repository"
	"accessdesk/internal/service/audit"
	"accessdesk/internal/service/notification"
)

// Service drives a request through its two approval rounds: the supervisor
// round recomputes status from the recorded entry set on every decision, and
// the IT round either clears the request with a validated grant list or
// rejects it outright.
type Service interface {
	Create(ctx context.Context, input domain.CreateAccessRequestInput) (*domain.AccessRequest, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.AccessRequest, error)
	List(ctx context.Context, filter repository.AccessRequestFilter, params domain.PaginationParams) (domain.PaginatedResponse[domain.AccessRequest], error)
	Update(ctx context.Context, id uuid.UUID, input domain.UpdateAccessRequestInput) (*domain.AccessRequest, error)
	Delete(ctx context.Context, id uuid.UUID) error

	SupervisorDecide(ctx context.Context, requestID uuid.UUID, input domain.SupervisorDecisionInput) (*domain.AccessRequest, error)
	ITDecide(ctx context.Context, requestID uuid.UUID, input domain.ITDecisionInput) (*domain.AccessRequest, error)

	SetNotificationService(notifSvc notification.Service)
}

type service struct {
	requestRepo    repository.AccessRequestRepository
	employeeRepo   repository.EmployeeRepository
	systemRepo     repository.SystemPlatformRepository
	accessTypeRepo repository.AccessTypeRepository
	notifSvc       notification.Service
	auditSvc       audit.Service
	log            *zap.Logger
}

func NewService(
	requestRepo repository.AccessRequestRepository,
	employeeRepo repository.EmployeeRepository,
	systemRepo repository.SystemPlatformRepository,
	accessTypeRepo repository.AccessTypeRepository,
	auditSvc audit.Service,
	log *zap.Logger,
) Service {
	return &service{
		requestRepo:    requestRepo,
		employeeRepo:   employeeRepo,
		systemRepo:     systemRepo,
		accessTypeRepo: accessTypeRepo,
		auditSvc:       auditSvc,
		log:            log,
	}
}

// SetNotificationService breaks the construction cycle between the request
// workflow and the notification service.
func (s *service) SetNotificationService(notifSvc notification.Service) {
	s.notifSvc = notifSvc
}

func (s *service) Create(ctx context.Context, input domain.CreateAccessRequestInput) (*domain.AccessRequest, error) {
	employee, err := s.employeeRepo.GetByID(ctx, input.EmployeeID)
	if err != nil {
		if domain.IsNotFound(err) {
			return nil, domain.NewValidationError("invalid employee reference: employee does not exist")
		}
		return nil, err
	}

	system, err := s.systemRepo.GetByID(ctx, input.SystemID)
	if err != nil {
		if domain.IsNotFound(err) {
			return nil, domain.NewValidationError("invalid system reference: system does not exist")
		}
		return nil, err
	}

	urgency := input.UrgencyLevel
	if urgency == "" {
		urgency = domain.UrgencyNormal
	}
	if !urgency.IsValid() {
		return nil, domain.NewValidationError("invalid urgency level: %s", urgency)
	}

	durationType := input.DurationType
	if durationType == "" {
		durationType = domain.DurationTemporary
	}
	if !durationType.IsValid() {
		return nil, domain.NewValidationError("invalid duration type: %s", durationType)
	}

	req := &domain.AccessRequest{
		ID:                 uuid.New(),
		EmployeeID:         employee.ID,
		SystemID:           system.ID,
		EmployeeSnapshot:   snapshotEmployee(employee),
		SystemSnapshot:     snapshotSystem(system),
		Justification:      input.Justification,
		BusinessPurpose:    input.BusinessPurpose,
		UrgencyLevel:       urgency,
		DurationType:       durationType,
		RequestedStartDate: input.RequestedStartDate,
		RequestedEndDate:   input.RequestedEndDate,
		Status:             domain.StatusPending,
	}

	if durationType == domain.DurationTemporary && input.RequestedEndDate == nil {
		// Allowed, but the sweep only expires requests with an end date.
		s.log.Warn("temporary request has no end date and will never expire",
			zap.String("employee_id", employee.ID.String()))
	}

	if err := s.requestRepo.Create(ctx, req); err != nil {
		return nil, err
	}

	s.auditSvc.Record(ctx, employee.ID, "create", "access_request", req.ID, nil, req)

	if supervisor := s.supervisorFor(ctx, employee); supervisor != nil {
		if err := s.notifSvc.NotifySupervisorReviewNeeded(ctx, req, supervisor); err != nil {
			s.log.Warn("failed to notify supervisor of new request",
				zap.String("request_id", req.ID.String()), zap.Error(err))
		}
	} else {
		s.log.Info("request created without supervisor on record, requester may self-approve",
			zap.String("request_id", req.ID.String()),
			zap.String("employee_id", employee.ID.String()))
	}

	return req, nil
}

// supervisorFor resolves the employee's supervisor, or nil when none is on
// record. A nil supervisor means no review prompt goes out and the requester
// is allowed to approve their own supervisor round. Tightening that policy
// only touches this function.
func (s *service) supervisorFor(ctx context.Context, employee *domain.Employee) *domain.Employee {
	if employee.SupervisorID == nil {
		return nil
	}
	supervisor, err := s.employeeRepo.GetByID(ctx, *employee.SupervisorID)
	if err != nil {
		s.log.Warn("failed to resolve supervisor",
			zap.String("employee_id", employee.ID.String()), zap.Error(err))
		return nil
	}
	return supervisor
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*domain.AccessRequest, error) {
	return s.requestRepo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter repository.AccessRequestFilter, params domain.PaginationParams) (domain.PaginatedResponse[domain.AccessRequest], error) {
	requests, total, err := s.requestRepo.List(ctx, filter, params)
	if err != nil {
		return domain.PaginatedResponse[domain.AccessRequest]{}, err
	}
	return domain.NewPaginatedResponse(requests, params.Page, params.PageSize, total), nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input domain.UpdateAccessRequestInput) (*domain.AccessRequest, error) {
	req, err := s.requestRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.EmployeeID != nil && *input.EmployeeID != req.EmployeeID {
		employee, err := s.employeeRepo.GetByID(ctx, *input.EmployeeID)
		if err != nil {
			if domain.IsNotFound(err) {
				return nil, domain.NewValidationError("invalid employee reference: employee does not exist")
			}
			return nil, err
		}
		req.EmployeeID = employee.ID
		req.EmployeeSnapshot = snapshotEmployee(employee)
	}

	if input.SystemID != nil && *input.SystemID != req.SystemID {
		system, err := s.systemRepo.GetByID(ctx, *input.SystemID)
		if err != nil {
			if domain.IsNotFound(err) {
				return nil, domain.NewValidationError("invalid system reference: system does not exist")
			}
			return nil, err
		}
		req.SystemID = system.ID
		req.SystemSnapshot = snapshotSystem(system)
	}

	if input.Justification != nil {
		req.Justification = input.Justification
	}
	if input.BusinessPurpose != nil {
		req.BusinessPurpose = input.BusinessPurpose
	}
	if input.UrgencyLevel != nil {
		if !input.UrgencyLevel.IsValid() {
			return nil, domain.NewValidationError("invalid urgency level: %s", *input.UrgencyLevel)
		}
		req.UrgencyLevel = *input.UrgencyLevel
	}
	if input.DurationType != nil {
		if !input.DurationType.IsValid() {
			return nil, domain.NewValidationError("invalid duration type: %s", *input.DurationType)
		}
		req.DurationType = *input.DurationType
	}
	if input.RequestedStartDate != nil {
		req.RequestedStartDate = input.RequestedStartDate
	}
	if input.RequestedEndDate != nil {
		req.RequestedEndDate = input.RequestedEndDate
	}

	if err := s.requestRepo.Update(ctx, req); err != nil {
		return nil, err
	}
	return req, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.requestRepo.Delete(ctx, id)
}

func (s *service) SupervisorDecide(ctx context.Context, requestID uuid.UUID, input domain.SupervisorDecisionInput) (*domain.AccessRequest, error) {
	if !input.Role.IsValid() {
		return nil, domain.NewValidationError("invalid approver role: %s", input.Role)
	}
	if input.Decision != domain.DecisionApproved && input.Decision != domain.DecisionRejected {
		return nil, domain.NewValidationError("decision must be approved or rejected")
	}

	approver, err := s.employeeRepo.GetByID(ctx, input.ApproverID)
	if err != nil {
		if domain.IsNotFound(err) {
			return nil, domain.NewValidationError("invalid approver reference: employee does not exist")
		}
		return nil, err
	}

	entry := domain.SupervisorApproval{
		ID:         uuid.New(),
		RequestID:  requestID,
		ApproverID: approver.ID,
		Role:       input.Role,
		Decision:   input.Decision,
		Comments:   input.Comments,
		DecidedAt:  time.Now(),
	}

	req, err := s.requestRepo.ApplySupervisorDecision(ctx, requestID, entry)
	if err != nil {
		return nil, err
	}

	s.auditSvc.Record(ctx, approver.ID, "supervisor_decision", "access_request", req.ID, nil, entry)

	if err := s.notifSvc.NotifyRequesterOfSupervisorDecision(ctx, req, approver, input.Decision); err != nil {
		s.log.Warn("failed to notify requester of supervisor decision",
			zap.String("request_id", req.ID.String()), zap.Error(err))
	}
	if err := s.notifSvc.NotifyAdminsOfSupervisorDecision(ctx, req, approver, input.Decision); err != nil {
		s.log.Warn("failed to fan out supervisor decision to admins",
			zap.String("request_id", req.ID.String()), zap.Error(err))
	}

	return req, nil
}

func (s *service) ITDecide(ctx context.Context, requestID uuid.UUID, input domain.ITDecisionInput) (*domain.AccessRequest, error) {
	approver, err := s.employeeRepo.GetByID(ctx, input.ApprovedBy)
	if err != nil {
		if domain.IsNotFound(err) {
			return nil, domain.NewValidationError("invalid approver reference: employee does not exist")
		}
		return nil, err
	}

	switch input.Action {
	case domain.ITActionReject:
		return s.itReject(ctx, requestID, approver, stringOrEmpty(input.Comments))
	case domain.ITActionApprove:
	default:
		return nil, domain.NewValidationError("action must be approve or reject")
	}

	// An approve without grants is an implicit rejection: the request moves
	// to rejected and the caller still gets the failure.
	if len(input.Grants) == 0 {
		reason := "approval requires at least one grant"
		if _, err := s.itReject(ctx, requestID, approver, reason); err != nil {
			return nil, err
		}
		return nil, domain.NewValidationError("%s", reason)
	}

	// Resolve every access type before touching the grant list. One bad
	// reference rejects the whole request; nothing is applied piecemeal.
	now := time.Now()
	grants := make([]domain.PermissionGrant, 0, len(input.Grants))
	for _, instr := range input.Grants {
		accessType, err := s.accessTypeRepo.GetByID(ctx, instr.AccessTypeID)
		if err != nil {
			if domain.IsNotFound(err) {
				reason := "invalid access type reference: " + instr.AccessTypeID.String()
				if _, rejErr := s.itReject(ctx, requestID, approver, reason); rejErr != nil {
					return nil, rejErr
				}
				return nil, domain.NewValidationError("%s", reason)
			}
			return nil, err
		}

		grantedDate := now
		if instr.AccessGrantedDate != nil {
			grantedDate = *instr.AccessGrantedDate
		}
		expiryDate := instr.AccessExpiryDate
		if expiryDate == nil && accessType.DefaultDurationDays > 0 {
			d := grantedDate.AddDate(0, 0, accessType.DefaultDurationDays)
			expiryDate = &d
		}
		active := true
		if instr.IsAccessActive != nil {
			active = *instr.IsAccessActive
		}

		grants = append(grants, domain.PermissionGrant{
			ID:                uuid.New(),
			RequestID:         requestID,
			ApproverID:        approver.ID,
			AccessTypeID:      accessType.ID,
			TypeName:          accessType.TypeName,
			CanRead:           accessType.CanRead,
			CanInsert:         accessType.CanInsert,
			CanUpdate:         accessType.CanUpdate,
			CanDelete:         accessType.CanDelete,
			Comments:          input.Comments,
			AccessGrantedDate: grantedDate,
			AccessExpiryDate:  expiryDate,
			IsAccessActive:    active,
		})
	}

	req, err := s.requestRepo.ApplyGrants(ctx, requestID, grants)
	if err != nil {
		return nil, err
	}

	s.auditSvc.Record(ctx, approver.ID, "it_approve", "access_request", req.ID, nil, grants)

	if err := s.notifSvc.NotifyRequesterOfGrants(ctx, req); err != nil {
		s.log.Warn("failed to notify requester of grants",
			zap.String("request_id", req.ID.String()), zap.Error(err))
	}

	return req, nil
}

func (s *service) itReject(ctx context.Context, requestID uuid.UUID, approver *domain.Employee, reason string) (*domain.AccessRequest, error) {
	req, err := s.requestRepo.RejectByIT(ctx, requestID)
	if err != nil {
		return nil, err
	}

	s.auditSvc.Record(ctx, approver.ID, "it_reject", "access_request", req.ID, nil, map[string]string{"reason": reason})

	if err := s.notifSvc.NotifyRequesterOfITRejection(ctx, req, reason); err != nil {
		s.log.Warn("failed to notify requester of rejection",
			zap.String("request_id", req.ID.String()), zap.Error(err))
	}
	return req, nil
}

func snapshotEmployee(emp *domain.Employee) domain.EmployeeSnapshot {
	return domain.EmployeeSnapshot{
		EmployeeFullName:   &emp.FullName,
		EmployeeEmail:      &emp.Email,
		EmployeeCode:       &emp.EmployeeCode,
		EmployeeJobTitle:   emp.JobTitle,
		EmployeeDepartment: emp.DepartmentName,
	}
}

func snapshotSystem(sys *domain.SystemPlatform) domain.SystemSnapshot {
	return domain.SystemSnapshot{
		SystemName:    &sys.SystemName,
		SystemType:    &sys.SystemType,
		SecurityLevel: &sys.SecurityLevel,
	}
}

func stringOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
