package accessrequest_test

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
	"accessdesk/internal/service/accessrequest"
	"accessdesk/internal/service/audit"
)

type fixture struct {
	requestRepo    *mocks.AccessRequestRepository
	employeeRepo   *mocks.EmployeeRepository
	systemRepo     *mocks.SystemPlatformRepository
	accessTypeRepo *mocks.AccessTypeRepository
	auditRepo      *mocks.AuditLogRepository
	notifSvc       *mocks.NotificationService
	svc            accessrequest.Service
}

func newFixture() *fixture {
	f := &fixture{
		requestRepo:    new(mocks.AccessRequestRepository),
		employeeRepo:   new(mocks.EmployeeRepository),
		systemRepo:     new(mocks.SystemPlatformRepository),
		accessTypeRepo: new(mocks.AccessTypeRepository),
		auditRepo:      new(mocks.AuditLogRepository),
		notifSvc:       new(mocks.NotificationService),
	}
	f.auditRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	f.svc = accessrequest.NewService(
		f.requestRepo, f.employeeRepo, f.systemRepo, f.accessTypeRepo,
		audit.NewService(f.auditRepo, zap.NewNop()), zap.NewNop())
	f.svc.SetNotificationService(f.notifSvc)
	return f
}

func strPtr(s string) *string { return &s }

func TestAccessRequestService_Create(t *testing.T) {
	ctx := context.Background()

	deptName := "Engineering"
	supervisorID := uuid.New()
	employee := &domain.Employee{
		ID:             uuid.New(),
		FullName:       "Ada Wong",
		Email:          "ada@example.com",
		EmployeeCode:   "EMP-001",
		JobTitle:       strPtr("Engineer"),
		DepartmentName: &deptName,
		SupervisorID:   &supervisorID,
	}
	supervisor := &domain.Employee{
		ID:       supervisorID,
		FullName: "Boss Person",
		Email:    "boss@example.com",
	}
	system := &domain.SystemPlatform{
		ID:            uuid.New(),
		SystemName:    "ERP",
		SystemType:    "web",
		SecurityLevel: domain.SecurityHigh,
	}

	t.Run("Unknown Employee Fails Validation", func(t *testing.T) {
		f := newFixture()
		badID := uuid.New()
		f.employeeRepo.On("GetByID", ctx, badID).Return(nil, domain.NewNotFoundError("employee")).Once()

		req, err := f.svc.Create(ctx, domain.CreateAccessRequestInput{
			EmployeeID: badID,
			SystemID:   system.ID,
		})

		assert.Nil(t, req)
		assert.True(t, domain.IsValidation(err))
		f.requestRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Unknown System Fails Validation", func(t *testing.T) {
		f := newFixture()
		badID := uuid.New()
		f.employeeRepo.On("GetByID", ctx, employee.ID).Return(employee, nil).Once()
		f.systemRepo.On("GetByID", ctx, badID).Return(nil, domain.NewNotFoundError("system platform")).Once()

		req, err := f.svc.Create(ctx, domain.CreateAccessRequestInput{
			EmployeeID: employee.ID,
			SystemID:   badID,
		})

		assert.Nil(t, req)
		assert.True(t, domain.IsValidation(err))
	})

	t.Run("Temporary Without End Date Is Accepted", func(t *testing.T) {
		f := newFixture()
		f.employeeRepo.On("GetByID", ctx, employee.ID).Return(employee, nil).Once()
		f.employeeRepo.On("GetByID", ctx, supervisorID).Return(supervisor, nil).Once()
		f.systemRepo.On("GetByID", ctx, system.ID).Return(system, nil).Once()
		f.requestRepo.On("Create", ctx, mock.Anything).Return(nil).Once()
		f.notifSvc.On("NotifySupervisorReviewNeeded", ctx, mock.Anything, supervisor).Return(nil).Once()

		req, err := f.svc.Create(ctx, domain.CreateAccessRequestInput{
			EmployeeID:   employee.ID,
			SystemID:     system.ID,
			DurationType: domain.DurationTemporary,
		})

		assert.NoError(t, err)
		assert.Equal(t, domain.DurationTemporary, req.DurationType)
		assert.Nil(t, req.RequestedEndDate)
	})

	t.Run("Snapshots References And Notifies Supervisor", func(t *testing.T) {
		f := newFixture()
		f.employeeRepo.On("GetByID", ctx, employee.ID).Return(employee, nil).Once()
		f.employeeRepo.On("GetByID", ctx, supervisorID).Return(supervisor, nil).Once()
		f.systemRepo.On("GetByID", ctx, system.ID).Return(system, nil).Once()
		f.requestRepo.On("Create", ctx, mock.MatchedBy(func(r *domain.AccessRequest) bool {
			return r.Status == domain.StatusPending &&
				*r.EmployeeFullName == "Ada Wong" &&
				*r.EmployeeDepartment == "Engineering" &&
				*r.SystemName == "ERP" &&
				*r.SecurityLevel == domain.SecurityHigh
		})).Return(nil).Once()
		f.notifSvc.On("NotifySupervisorReviewNeeded", ctx, mock.Anything, supervisor).Return(nil).Once()

		req, err := f.svc.Create(ctx, domain.CreateAccessRequestInput{
			EmployeeID: employee.ID,
			SystemID:   system.ID,
		})

		assert.NoError(t, err)
		assert.Equal(t, domain.StatusPending, req.Status)
		assert.Equal(t, domain.UrgencyNormal, req.UrgencyLevel)
		assert.Equal(t, domain.DurationTemporary, req.DurationType)
		f.requestRepo.AssertExpectations(t)
		f.notifSvc.AssertExpectations(t)
	})

	t.Run("No Supervisor Means No Review Prompt", func(t *testing.T) {
		f := newFixture()
		orphan := &domain.Employee{
			ID:           uuid.New(),
			FullName:     "Solo Worker",
			Email:        "solo@example.com",
			EmployeeCode: "EMP-002",
		}
		f.employeeRepo.On("GetByID", ctx, orphan.ID).Return(orphan, nil).Once()
		f.systemRepo.On("GetByID", ctx, system.ID).Return(system, nil).Once()
		f.requestRepo.On("Create", ctx, mock.Anything).Return(nil).Once()

		req, err := f.svc.Create(ctx, domain.CreateAccessRequestInput{
			EmployeeID: orphan.ID,
			SystemID:   system.ID,
		})

		assert.NoError(t, err)
		assert.NotNil(t, req)
		f.notifSvc.AssertNotCalled(t, "NotifySupervisorReviewNeeded", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestAccessRequestService_SupervisorDecide(t *testing.T) {
	ctx := context.Background()
	requestID := uuid.New()

	approver := &domain.Employee{
		ID:       uuid.New(),
		FullName: "Boss Person",
		Email:    "boss@example.com",
	}

	t.Run("Invalid Role Rejected", func(t *testing.T) {
		f := newFixture()

		req, err := f.svc.SupervisorDecide(ctx, requestID, domain.SupervisorDecisionInput{
			ApproverID: approver.ID,
			Role:       "ceo",
			Decision:   domain.DecisionApproved,
		})

		assert.Nil(t, req)
		assert.True(t, domain.IsValidation(err))
	})

	t.Run("Pending Decision Rejected", func(t *testing.T) {
		f := newFixture()

		req, err := f.svc.SupervisorDecide(ctx, requestID, domain.SupervisorDecisionInput{
			ApproverID: approver.ID,
			Role:       domain.RoleSupervisor,
			Decision:   domain.DecisionPending,
		})

		assert.Nil(t, req)
		assert.True(t, domain.IsValidation(err))
	})

	t.Run("Unknown Approver Fails Validation", func(t *testing.T) {
		f := newFixture()
		f.employeeRepo.On("GetByID", ctx, approver.ID).Return(nil, domain.NewNotFoundError("employee")).Once()

		req, err := f.svc.SupervisorDecide(ctx, requestID, domain.SupervisorDecisionInput{
			ApproverID: approver.ID,
			Role:       domain.RoleSupervisor,
			Decision:   domain.DecisionApproved,
		})

		assert.Nil(t, req)
		assert.True(t, domain.IsValidation(err))
	})

	t.Run("Applies Entry And Fans Out", func(t *testing.T) {
		f := newFixture()
		updated := &domain.AccessRequest{
			ID:         requestID,
			EmployeeID: uuid.New(),
			Status:     domain.StatusSupervisorApproved,
		}

		f.employeeRepo.On("GetByID", ctx, approver.ID).Return(approver, nil).Once()
		f.requestRepo.On("ApplySupervisorDecision", ctx, requestID, mock.MatchedBy(func(e domain.SupervisorApproval) bool {
			return e.ApproverID == approver.ID &&
				e.Role == domain.RoleSupervisor &&
				e.Decision == domain.DecisionApproved &&
				!e.DecidedAt.IsZero()
		})).Return(updated, nil).Once()
		f.notifSvc.On("NotifyRequesterOfSupervisorDecision", ctx, updated, approver, domain.DecisionApproved).Return(nil).Once()
		f.notifSvc.On("NotifyAdminsOfSupervisorDecision", ctx, updated, approver, domain.DecisionApproved).Return(nil).Once()

		req, err := f.svc.SupervisorDecide(ctx, requestID, domain.SupervisorDecisionInput{
			ApproverID: approver.ID,
			Role:       domain.RoleSupervisor,
			Decision:   domain.DecisionApproved,
		})

		assert.NoError(t, err)
		assert.Equal(t, domain.StatusSupervisorApproved, req.Status)
		f.requestRepo.AssertExpectations(t)
		f.notifSvc.AssertExpectations(t)
	})

	t.Run("Notification Failure Does Not Fail Decision", func(t *testing.T) {
		f := newFixture()
		updated := &domain.AccessRequest{ID: requestID, Status: domain.StatusRejected}

		f.employeeRepo.On("GetByID", ctx, approver.ID).Return(approver, nil).Once()
		f.requestRepo.On("ApplySupervisorDecision", ctx, requestID, mock.Anything).Return(updated, nil).Once()
		f.notifSvc.On("NotifyRequesterOfSupervisorDecision", ctx, updated, approver, domain.DecisionRejected).Return(assert.AnError).Once()
		f.notifSvc.On("NotifyAdminsOfSupervisorDecision", ctx, updated, approver, domain.DecisionRejected).Return(assert.AnError).Once()

		req, err := f.svc.SupervisorDecide(ctx, requestID, domain.SupervisorDecisionInput{
			ApproverID: approver.ID,
			Role:       domain.RoleSupervisor,
			Decision:   domain.DecisionRejected,
		})

		assert.NoError(t, err)
		assert.Equal(t, domain.StatusRejected, req.Status)
	})
}

func TestAccessRequestService_ITDecide(t *testing.T) {
	ctx := context.Background()
	requestID := uuid.New()

	approver := &domain.Employee{
		ID:       uuid.New(),
		FullName: "IT Admin",
		Email:    "it@example.com",
	}

	t.Run("Reject Clears Grants", func(t *testing.T) {
		f := newFixture()
		rejected := &domain.AccessRequest{ID: requestID, Status: domain.StatusRejected}

		f.employeeRepo.On("GetByID", ctx, approver.ID).Return(approver, nil).Once()
		f.requestRepo.On("RejectByIT", ctx, requestID).Return(rejected, nil).Once()
		f.notifSvc.On("NotifyRequesterOfITRejection", ctx, rejected, "not justified").Return(nil).Once()

		req, err := f.svc.ITDecide(ctx, requestID, domain.ITDecisionInput{
			ApprovedBy: approver.ID,
			Action:     domain.ITActionReject,
			Comments:   strPtr("not justified"),
		})

		assert.NoError(t, err)
		assert.Equal(t, domain.StatusRejected, req.Status)
		f.requestRepo.AssertExpectations(t)
	})

	t.Run("Approve Without Grants Is An Implicit Rejection", func(t *testing.T) {
		f := newFixture()
		rejected := &domain.AccessRequest{ID: requestID, Status: domain.StatusRejected}

		f.employeeRepo.On("GetByID", ctx, approver.ID).Return(approver, nil).Once()
		f.requestRepo.On("RejectByIT", ctx, requestID).Return(rejected, nil).Once()
		f.notifSvc.On("NotifyRequesterOfITRejection", ctx, rejected, "approval requires at least one grant").Return(nil).Once()

		req, err := f.svc.ITDecide(ctx, requestID, domain.ITDecisionInput{
			ApprovedBy: approver.ID,
			Action:     domain.ITActionApprove,
		})

		assert.Nil(t, req)
		assert.True(t, domain.IsValidation(err))
		f.requestRepo.AssertExpectations(t)
		f.notifSvc.AssertExpectations(t)
		f.requestRepo.AssertNotCalled(t, "ApplyGrants", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("One Bad Reference Rejects The Whole Request", func(t *testing.T) {
		f := newFixture()
		goodType := &domain.AccessType{ID: uuid.New(), TypeName: "read-only", CanRead: true}
		badID := uuid.New()
		rejected := &domain.AccessRequest{ID: requestID, Status: domain.StatusRejected}

		f.employeeRepo.On("GetByID", ctx, approver.ID).Return(approver, nil).Once()
		f.accessTypeRepo.On("GetByID", ctx, goodType.ID).Return(goodType, nil).Once()
		f.accessTypeRepo.On("GetByID", ctx, badID).Return(nil, domain.NewNotFoundError("access type")).Once()
		f.requestRepo.On("RejectByIT", ctx, requestID).Return(rejected, nil).Once()
		f.notifSvc.On("NotifyRequesterOfITRejection", ctx, rejected, "invalid access type reference: "+badID.String()).Return(nil).Once()

		req, err := f.svc.ITDecide(ctx, requestID, domain.ITDecisionInput{
			ApprovedBy: approver.ID,
			Action:     domain.ITActionApprove,
			Grants: []domain.GrantInstruction{
				{AccessTypeID: goodType.ID},
				{AccessTypeID: badID},
			},
		})

		assert.Nil(t, req)
		assert.True(t, domain.IsValidation(err))
		assert.Contains(t, err.Error(), badID.String())
		f.requestRepo.AssertExpectations(t)
		f.notifSvc.AssertExpectations(t)
		f.requestRepo.AssertNotCalled(t, "ApplyGrants", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Approve Snapshots Capability Flags And Defaults", func(t *testing.T) {
		f := newFixture()
		accessType := &domain.AccessType{
			ID:                  uuid.New(),
			TypeName:            "read-write",
			DefaultDurationDays: 30,
			CanRead:             true,
			CanUpdate:           true,
		}
		approved := &domain.AccessRequest{ID: requestID, Status: domain.StatusApproved}

		f.employeeRepo.On("GetByID", ctx, approver.ID).Return(approver, nil).Once()
		f.accessTypeRepo.On("GetByID", ctx, accessType.ID).Return(accessType, nil).Once()
		f.requestRepo.On("ApplyGrants", ctx, requestID, mock.MatchedBy(func(grants []domain.PermissionGrant) bool {
			if len(grants) != 1 {
				return false
			}
			g := grants[0]
			return g.AccessTypeID == accessType.ID &&
				g.TypeName == "read-write" &&
				g.CanRead && g.CanUpdate && !g.CanInsert && !g.CanDelete &&
				g.IsAccessActive &&
				g.AccessExpiryDate != nil &&
				g.AccessExpiryDate.Sub(g.AccessGrantedDate) == 30*24*time.Hour
		})).Return(approved, nil).Once()
		f.notifSvc.On("NotifyRequesterOfGrants", ctx, approved).Return(nil).Once()

		req, err := f.svc.ITDecide(ctx, requestID, domain.ITDecisionInput{
			ApprovedBy: approver.ID,
			Action:     domain.ITActionApprove,
			Grants:     []domain.GrantInstruction{{AccessTypeID: accessType.ID}},
		})

		assert.NoError(t, err)
		assert.Equal(t, domain.StatusApproved, req.Status)
		f.requestRepo.AssertExpectations(t)
		f.notifSvc.AssertExpectations(t)
	})

	t.Run("Explicit Window Overrides Defaults", func(t *testing.T) {
		f := newFixture()
		accessType := &domain.AccessType{ID: uuid.New(), TypeName: "temp", DefaultDurationDays: 90, CanRead: true}
		approved := &domain.AccessRequest{ID: requestID, Status: domain.StatusApproved}

		granted := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
		expiry := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
		inactive := false

		f.employeeRepo.On("GetByID", ctx, approver.ID).Return(approver, nil).Once()
		f.accessTypeRepo.On("GetByID", ctx, accessType.ID).Return(accessType, nil).Once()
		f.requestRepo.On("ApplyGrants", ctx, requestID, mock.MatchedBy(func(grants []domain.PermissionGrant) bool {
			g := grants[0]
			return g.AccessGrantedDate.Equal(granted) &&
				g.AccessExpiryDate.Equal(expiry) &&
				!g.IsAccessActive
		})).Return(approved, nil).Once()
		f.notifSvc.On("NotifyRequesterOfGrants", ctx, approved).Return(nil).Once()

		_, err := f.svc.ITDecide(ctx, requestID, domain.ITDecisionInput{
			ApprovedBy: approver.ID,
			Action:     domain.ITActionApprove,
			Grants: []domain.GrantInstruction{{
				AccessTypeID:      accessType.ID,
				AccessGrantedDate: &granted,
				AccessExpiryDate:  &expiry,
				IsAccessActive:    &inactive,
			}},
		})

		assert.NoError(t, err)
		f.requestRepo.AssertExpectations(t)
	})

	t.Run("Unknown Action Rejected", func(t *testing.T) {
		f := newFixture()
		f.employeeRepo.On("GetByID", ctx, approver.ID).Return(approver, nil).Once()

		req, err := f.svc.ITDecide(ctx, requestID, domain.ITDecisionInput{
			ApprovedBy: approver.ID,
			Action:     "escalate",
		})

		assert.Nil(t, req)
		assert.True(t, domain.IsValidation(err))
	})
}
