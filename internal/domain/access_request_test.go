package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"accessdesk/internal/domain"
)

func TestSupervisorOutcome(t *testing.T) {
	approved := domain.SupervisorApproval{Decision: domain.DecisionApproved}
	rejected := domain.SupervisorApproval{Decision: domain.DecisionRejected}
	pending := domain.SupervisorApproval{Decision: domain.DecisionPending}

	t.Run("No Entries Stays Pending", func(t *testing.T) {
		assert.Equal(t, domain.StatusPending, domain.SupervisorOutcome(nil))
		assert.Equal(t, domain.StatusPending, domain.SupervisorOutcome([]domain.SupervisorApproval{}))
	})

	t.Run("All Approved Advances", func(t *testing.T) {
		assert.Equal(t, domain.StatusSupervisorApproved,
			domain.SupervisorOutcome([]domain.SupervisorApproval{approved}))
		assert.Equal(t, domain.StatusSupervisorApproved,
			domain.SupervisorOutcome([]domain.SupervisorApproval{approved, approved, approved}))
	})

	t.Run("Any Rejection Dominates", func(t *testing.T) {
		assert.Equal(t, domain.StatusRejected,
			domain.SupervisorOutcome([]domain.SupervisorApproval{rejected}))
		assert.Equal(t, domain.StatusRejected,
			domain.SupervisorOutcome([]domain.SupervisorApproval{approved, rejected}))
		assert.Equal(t, domain.StatusRejected,
			domain.SupervisorOutcome([]domain.SupervisorApproval{rejected, approved}))
		assert.Equal(t, domain.StatusRejected,
			domain.SupervisorOutcome([]domain.SupervisorApproval{pending, rejected}))
	})

	t.Run("Undecided Entry Keeps Pending", func(t *testing.T) {
		assert.Equal(t, domain.StatusPending,
			domain.SupervisorOutcome([]domain.SupervisorApproval{pending}))
		assert.Equal(t, domain.StatusPending,
			domain.SupervisorOutcome([]domain.SupervisorApproval{approved, pending}))
	})
}

func TestRequestStatusIsValid(t *testing.T) {
	valid := []domain.RequestStatus{
		domain.StatusPending, domain.StatusSupervisorApproved, domain.StatusITApproved,
		domain.StatusApproved, domain.StatusRejected, domain.StatusActive,
		domain.StatusExpired, domain.StatusRevoked,
	}
	for _, s := range valid {
		assert.True(t, s.IsValid(), string(s))
	}
	assert.False(t, domain.RequestStatus("cancelled").IsValid())
	assert.False(t, domain.RequestStatus("").IsValid())
}

func TestApproverRoleIsValid(t *testing.T) {
	assert.True(t, domain.RoleSupervisor.IsValid())
	assert.True(t, domain.RoleDepartmentHead.IsValid())
	assert.True(t, domain.RoleHR.IsValid())
	assert.True(t, domain.RoleIT.IsValid())
	assert.False(t, domain.ApproverRole("ceo").IsValid())
	// The role vocabulary is case sensitive.
	assert.False(t, domain.ApproverRole("hr").IsValid())
}
