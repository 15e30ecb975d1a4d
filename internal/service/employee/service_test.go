package employee_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"accessdesk/internal/domain"
	"accessdesk/internal/mocks"
	"accessdesk/internal/service/employee"
)

func TestEmployeeService_Create(t *testing.T) {
	ctx := context.Background()

	dept := &domain.Department{
		ID:             uuid.New(),
		DepartmentName: "Engineering",
		DepartmentCode: "ENG",
		IsActive:       true,
	}

	t.Run("Snapshots Department And Supervisor", func(t *testing.T) {
		empRepo := new(mocks.EmployeeRepository)
		deptRepo := new(mocks.DepartmentRepository)
		svc := employee.NewService(empRepo, deptRepo)

		supervisor := &domain.Employee{
			ID:       uuid.New(),
			FullName: "Boss Person",
			Email:    "boss@example.com",
		}

		empRepo.On("ExistsByEmailOrCode", ctx, "ada@example.com", "EMP-001", (*uuid.UUID)(nil)).Return(false, nil).Once()
		deptRepo.On("GetByID", ctx, dept.ID).Return(dept, nil).Once()
		empRepo.On("GetByID", ctx, supervisor.ID).Return(supervisor, nil).Once()
		empRepo.On("Create", ctx, mock.MatchedBy(func(e *domain.Employee) bool {
			return *e.DepartmentName == "Engineering" &&
				*e.DepartmentCode == "ENG" &&
				*e.SupervisorName == "Boss Person" &&
				*e.SupervisorEmail == "boss@example.com"
		})).Return(nil).Once()

		emp, err := svc.Create(ctx, domain.CreateEmployeeInput{
			FullName:     "Ada Wong",
			Email:        "ada@example.com",
			EmployeeCode: "EMP-001",
			DepartmentID: dept.ID,
			SupervisorID: &supervisor.ID,
		})

		assert.NoError(t, err)
		assert.True(t, emp.IsActive)
		empRepo.AssertExpectations(t)
	})

	t.Run("Duplicate Email Or Code Conflicts", func(t *testing.T) {
		empRepo := new(mocks.EmployeeRepository)
		deptRepo := new(mocks.DepartmentRepository)
		svc := employee.NewService(empRepo, deptRepo)

		empRepo.On("ExistsByEmailOrCode", ctx, "dup@example.com", "EMP-001", (*uuid.UUID)(nil)).Return(true, nil).Once()

		emp, err := svc.Create(ctx, domain.CreateEmployeeInput{
			FullName:     "Dup",
			Email:        "dup@example.com",
			EmployeeCode: "EMP-001",
			DepartmentID: dept.ID,
		})

		assert.Nil(t, emp)
		assert.True(t, domain.IsConflict(err))
	})

	t.Run("Self Supervision Rejected", func(t *testing.T) {
		empRepo := new(mocks.EmployeeRepository)
		deptRepo := new(mocks.DepartmentRepository)
		svc := employee.NewService(empRepo, deptRepo)

		empRepo.On("ExistsByEmailOrCode", ctx, mock.Anything, mock.Anything, (*uuid.UUID)(nil)).Return(false, nil).Once()
		deptRepo.On("GetByID", ctx, dept.ID).Return(dept, nil).Once()

		// The input supervisor ID cannot equal the new employee's generated ID,
		// so self supervision is only reachable through Update.
		supervisor := &domain.Employee{ID: uuid.New(), FullName: "Someone", Email: "s@example.com"}
		empRepo.On("GetByID", ctx, supervisor.ID).Return(supervisor, nil).Once()
		empRepo.On("Create", ctx, mock.Anything).Return(nil).Once()

		emp, err := svc.Create(ctx, domain.CreateEmployeeInput{
			FullName:     "Ada Wong",
			Email:        "ada@example.com",
			EmployeeCode: "EMP-001",
			DepartmentID: dept.ID,
			SupervisorID: &supervisor.ID,
		})

		assert.NoError(t, err)
		assert.NotNil(t, emp)
	})
}

func TestEmployeeService_Update(t *testing.T) {
	ctx := context.Background()

	employeeID := uuid.New()
	deptName := "Engineering"
	supervisorName := "Boss Person"
	supervisorEmail := "boss@example.com"

	current := func() *domain.Employee {
		return &domain.Employee{
			ID:              employeeID,
			FullName:        "Ada Wong",
			Email:           "ada@example.com",
			EmployeeCode:    "EMP-001",
			DepartmentID:    uuid.New(),
			DepartmentName:  &deptName,
			SupervisorID:    func() *uuid.UUID { id := uuid.New(); return &id }(),
			SupervisorName:  &supervisorName,
			SupervisorEmail: &supervisorEmail,
			IsActive:        true,
		}
	}

	t.Run("Clearing Supervisor Clears The Snapshot", func(t *testing.T) {
		empRepo := new(mocks.EmployeeRepository)
		deptRepo := new(mocks.DepartmentRepository)
		svc := employee.NewService(empRepo, deptRepo)

		empRepo.On("GetByID", ctx, employeeID).Return(current(), nil).Once()
		empRepo.On("Update", ctx, mock.MatchedBy(func(e *domain.Employee) bool {
			return e.SupervisorID == nil && e.SupervisorName == nil && e.SupervisorEmail == nil
		})).Return(nil).Once()

		var cleared *uuid.UUID
		emp, err := svc.Update(ctx, employeeID, domain.UpdateEmployeeInput{
			SupervisorID: &cleared,
		})

		assert.NoError(t, err)
		assert.Nil(t, emp.SupervisorID)
		empRepo.AssertExpectations(t)
	})

	t.Run("Self Supervision Rejected", func(t *testing.T) {
		empRepo := new(mocks.EmployeeRepository)
		deptRepo := new(mocks.DepartmentRepository)
		svc := employee.NewService(empRepo, deptRepo)

		empRepo.On("GetByID", ctx, employeeID).Return(current(), nil).Once()

		self := &employeeID
		emp, err := svc.Update(ctx, employeeID, domain.UpdateEmployeeInput{
			SupervisorID: &self,
		})

		assert.Nil(t, emp)
		assert.True(t, domain.IsValidation(err))
	})
}
