package domain

import (
	"time"

	"github.com/google/uuid"
)

type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

func (r RiskLevel) IsValid() bool {
	return r == RiskLow || r == RiskMedium || r == RiskHigh
}

type AccessType struct {
	ID                    uuid.UUID `json:"id" db:"id"`
	TypeName              string    `json:"type_name" db:"type_name"`
	Description           *string   `json:"description,omitempty" db:"description"`
	RequiresJustification bool      `json:"requires_justification" db:"requires_justification"`
	DefaultDurationDays   int       `json:"default_duration_days" db:"default_duration_days"`
	RiskLevel             RiskLevel `json:"risk_level" db:"risk_level"`
	CanRead               bool      `json:"can_read" db:"can_read"`
	CanInsert             bool      `json:"can_insert" db:"can_insert"`
	CanUpdate             bool      `json:"can_update" db:"can_update"`
	CanDelete             bool      `json:"can_delete" db:"can_delete"`
	IsActive              bool      `json:"is_active" db:"is_active"`
	CreatedAt             time.Time `json:"created_at" db:"created_at"`
	UpdatedAt             time.Time `json:"updated_at" db:"updated_at"`
}

type CreateAccessTypeInput struct {
	TypeName              string     `json:"type_name"`
	Description           *string    `json:"description,omitempty"`
	RequiresJustification *bool      `json:"requires_justification,omitempty"`
	DefaultDurationDays   *int       `json:"default_duration_days,omitempty"`
	RiskLevel             *RiskLevel `json:"risk_level,omitempty"`
	CanRead               *bool      `json:"can_read,omitempty"`
	CanInsert             *bool      `json:"can_insert,omitempty"`
	CanUpdate             *bool      `json:"can_update,omitempty"`
	CanDelete             *bool      `json:"can_delete,omitempty"`
	IsActive              *bool      `json:"is_active,omitempty"`
}

type UpdateAccessTypeInput struct {
	TypeName              *string    `json:"type_name,omitempty"`
	Description           *string    `json:"description,omitempty"`
	RequiresJustification *bool      `json:"requires_justification,omitempty"`
	DefaultDurationDays   *int       `json:"default_duration_days,omitempty"`
	RiskLevel             *RiskLevel `json:"risk_level,omitempty"`
	CanRead               *bool      `json:"can_read,omitempty"`
	CanInsert             *bool      `json:"can_insert,omitempty"`
	CanUpdate             *bool      `json:"can_update,omitempty"`
	CanDelete             *bool      `json:"can_delete,omitempty"`
	IsActive              *bool      `json:"is_active,omitempty"`
}
