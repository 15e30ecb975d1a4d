package domain

import (
	"time"

	"github.com/google/uuid"
)

type RequestStatus string

const (
	StatusPending            RequestStatus = "pending"
	StatusSupervisorApproved RequestStatus = "supervisor_approved"
	StatusITApproved         RequestStatus = "it_approved"
	StatusApproved           RequestStatus = "approved"
	StatusRejected           RequestStatus = "rejected"
	StatusActive             RequestStatus = "active"
	StatusExpired            RequestStatus = "expired"
	StatusRevoked            RequestStatus = "revoked"
)

func (s RequestStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusSupervisorApproved, StatusITApproved,
		StatusApproved, StatusRejected, StatusActive, StatusExpired, StatusRevoked:
		return true
	default:
		return false
	}
}

type UrgencyLevel string

const (
	UrgencyLow      UrgencyLevel = "low"
	UrgencyNormal   UrgencyLevel = "normal"
	UrgencyHigh     UrgencyLevel = "high"
	UrgencyCritical UrgencyLevel = "critical"
)

func (u UrgencyLevel) IsValid() bool {
	switch u {
	case UrgencyLow, UrgencyNormal, UrgencyHigh, UrgencyCritical:
		return true
	default:
		return false
	}
}

type DurationType string

const (
	DurationPermanent DurationType = "permanent"
	DurationTemporary DurationType = "temporary"
)

func (d DurationType) IsValid() bool {
	return d == DurationPermanent || d == DurationTemporary
}

type ApproverRole string

const (
	RoleSupervisor     ApproverRole = "supervisor"
	RoleDepartmentHead ApproverRole = "department_head"
	RoleHR             ApproverRole = "HR"
	RoleIT             ApproverRole = "IT"
)

func (r ApproverRole) IsValid() bool {
	switch r {
	case RoleSupervisor, RoleDepartmentHead, RoleHR, RoleIT:
		return true
	default:
		return false
	}
}

type Decision string

const (
	DecisionPending  Decision = "pending"
	DecisionApproved Decision = "approved"
	DecisionRejected Decision = "rejected"
)

// EmployeeSnapshot is a denormalized copy of employee attributes, captured
// when the request is created or re-pointed so the request keeps displaying
// what was true at write time.
type EmployeeSnapshot struct {
	EmployeeFullName   *string `json:"employee_full_name" db:"employee_full_name"`
	EmployeeEmail      *string `json:"employee_email" db:"employee_email"`
	EmployeeCode       *string `json:"employee_code" db:"employee_code"`
	EmployeeJobTitle   *string `json:"employee_job_title" db:"employee_job_title"`
	EmployeeDepartment *string `json:"employee_department" db:"employee_department"`
}

type SystemSnapshot struct {
	SystemName    *string        `json:"system_name" db:"system_name"`
	SystemType    *string        `json:"system_type" db:"system_type"`
	SecurityLevel *SecurityLevel `json:"security_level" db:"security_level"`
}

type AccessRequest struct {
	ID         uuid.UUID `json:"id" db:"id"`
	EmployeeID uuid.UUID `json:"employee_id" db:"employee_id"`
	SystemID   uuid.UUID `json:"system_id" db:"system_id"`
	EmployeeSnapshot
	SystemSnapshot
	Justification      *string      `json:"justification,omitempty" db:"justification"`
	BusinessPurpose    *string      `json:"business_purpose,omitempty" db:"business_purpose"`
	UrgencyLevel       UrgencyLevel `json:"urgency_level" db:"urgency_level"`
	DurationType       DurationType `json:"duration_type" db:"duration_type"`
	RequestedStartDate *time.Time   `json:"requested_start_date,omitempty" db:"requested_start_date"`
	RequestedEndDate   *time.Time   `json:"requested_end_date,omitempty" db:"requested_end_date"`

	Status    RequestStatus `json:"status" db:"status"`
	IsExpired bool          `json:"is_expired" db:"is_expired"`
	CreatedAt time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt time.Time     `json:"updated_at" db:"updated_at"`

	SupervisorApprovals []SupervisorApproval `json:"supervisor_approvals" db:"-"`
	GrantedPermissions  []PermissionGrant    `json:"granted_permissions_by_it" db:"-"`
}

// SupervisorApproval is one approver's recorded decision. A request holds at
// most one entry per (approver, role) pair; re-deciding updates in place.
type SupervisorApproval struct {
	ID         uuid.UUID    `json:"id" db:"id"`
	RequestID  uuid.UUID    `json:"request_id" db:"request_id"`
	ApproverID uuid.UUID    `json:"approver_id" db:"approver_id"`
	Role       ApproverRole `json:"role" db:"role"`
	Decision   Decision     `json:"decision" db:"decision"`
	Comments   *string      `json:"comments,omitempty" db:"comments"`
	DecidedAt  time.Time    `json:"decided_at" db:"decided_at"`
}

// PermissionGrant binds an AccessType to a request with its own activation
// window. Unique per (approver, access type); re-granting updates in place.
// The capability flags are snapshotted from the AccessType at grant time.
type PermissionGrant struct {
	ID                uuid.UUID  `json:"id" db:"id"`
	RequestID         uuid.UUID  `json:"request_id" db:"request_id"`
	ApproverID        uuid.UUID  `json:"approver_id" db:"approver_id"`
	AccessTypeID      uuid.UUID  `json:"access_type_id" db:"access_type_id"`
	TypeName          string     `json:"type_name" db:"type_name"`
	CanRead           bool       `json:"can_read" db:"can_read"`
	CanInsert         bool       `json:"can_insert" db:"can_insert"`
	CanUpdate         bool       `json:"can_update" db:"can_update"`
	CanDelete         bool       `json:"can_delete" db:"can_delete"`
	Comments          *string    `json:"comments,omitempty" db:"comments"`
	AccessGrantedDate time.Time  `json:"access_granted_date" db:"access_granted_date"`
	AccessExpiryDate  *time.Time `json:"access_expiry_date,omitempty" db:"access_expiry_date"`
	IsAccessActive    bool       `json:"is_access_active" db:"is_access_active"`
}

// SupervisorOutcome derives the request status from the currently recorded
// supervisor entries. Any rejection dominates; a non-empty, unanimously
// approved set advances the request; anything else leaves it pending. The
// rule is deliberately "whoever decided, unanimously" rather than a required
// approver set; swapping the policy only touches this function.
func SupervisorOutcome(approvals []SupervisorApproval) RequestStatus {
	if len(approvals) == 0 {
		return StatusPending
	}

	allApproved := true
	for _, a := range approvals {
		switch a.Decision {
		case DecisionRejected:
			return StatusRejected
		case DecisionApproved:
		default:
			allApproved = false
		}
	}

	if allApproved {
		return StatusSupervisorApproved
	}
	return StatusPending
}

type CreateAccessRequestInput struct {
	EmployeeID         uuid.UUID    `json:"employee_id"`
	SystemID           uuid.UUID    `json:"system_id"`
	Justification      *string      `json:"justification,omitempty"`
	BusinessPurpose    *string      `json:"business_purpose,omitempty"`
	UrgencyLevel       UrgencyLevel `json:"urgency_level,omitempty"`
	DurationType       DurationType `json:"duration_type,omitempty"`
	RequestedStartDate *time.Time   `json:"requested_start_date,omitempty"`
	RequestedEndDate   *time.Time   `json:"requested_end_date,omitempty"`
}

type UpdateAccessRequestInput struct {
	EmployeeID         *uuid.UUID    `json:"employee_id,omitempty"`
	SystemID           *uuid.UUID    `json:"system_id,omitempty"`
	Justification      *string       `json:"justification,omitempty"`
	BusinessPurpose    *string       `json:"business_purpose,omitempty"`
	UrgencyLevel       *UrgencyLevel `json:"urgency_level,omitempty"`
	DurationType       *DurationType `json:"duration_type,omitempty"`
	RequestedStartDate *time.Time    `json:"requested_start_date,omitempty"`
	RequestedEndDate   *time.Time    `json:"requested_end_date,omitempty"`
}

type SupervisorDecisionInput struct {
	ApproverID uuid.UUID    `json:"approver_id"`
	Role       ApproverRole `json:"role"`
	Decision   Decision     `json:"decision"`
	Comments   *string      `json:"comments,omitempty"`
}

type ITAction string

const (
	ITActionApprove ITAction = "approve"
	ITActionReject  ITAction = "reject"
)

type GrantInstruction struct {
	AccessTypeID      uuid.UUID  `json:"access_type_id"`
	AccessGrantedDate *time.Time `json:"access_granted_date,omitempty"`
	AccessExpiryDate  *time.Time `json:"access_expiry_date,omitempty"`
	IsAccessActive    *bool      `json:"is_access_active,omitempty"`
}

type ITDecisionInput struct {
	ApprovedBy uuid.UUID          `json:"approved_by"`
	Action     ITAction           `json:"action"`
	Comments   *string            `json:"comments,omitempty"`
	Grants     []GrantInstruction `json:"grants,omitempty"`
}
