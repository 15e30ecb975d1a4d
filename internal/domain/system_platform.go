package domain

import (
	"time"

	"github.com/google/uuid"
)

type SecurityLevel string

const (
	SecurityLow      SecurityLevel = "low"
	SecurityMedium   SecurityLevel = "medium"
	SecurityHigh     SecurityLevel = "high"
	SecurityCritical SecurityLevel = "critical"
)

func (s SecurityLevel) IsValid() bool {
	switch s {
	case SecurityLow, SecurityMedium, SecurityHigh, SecurityCritical:
		return true
	default:
		return false
	}
}

type SystemPlatform struct {
	ID                uuid.UUID     `json:"id" db:"id"`
	SystemName        string        `json:"system_name" db:"system_name"`
	SystemType        string        `json:"system_type" db:"system_type"`
	Description       *string       `json:"description,omitempty" db:"description"`
	SystemURL         *string       `json:"system_url,omitempty" db:"system_url"`
	OwnerDepartmentID uuid.UUID     `json:"owner_department_id" db:"owner_department_id"`
	ContactName       *string       `json:"contact_name,omitempty" db:"contact_name"`
	ContactEmail      *string       `json:"contact_email,omitempty" db:"contact_email"`
	ContactPhone      *string       `json:"contact_phone,omitempty" db:"contact_phone"`
	SecurityLevel     SecurityLevel `json:"security_level" db:"security_level"`
	IsActive          bool          `json:"is_active" db:"is_active"`
	CreatedAt         time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time     `json:"updated_at" db:"updated_at"`
}

type CreateSystemPlatformInput struct {
	SystemName        string         `json:"system_name"`
	SystemType        string         `json:"system_type"`
	Description       *string        `json:"description,omitempty"`
	SystemURL         *string        `json:"system_url,omitempty"`
	OwnerDepartmentID uuid.UUID      `json:"owner_department_id"`
	ContactName       *string        `json:"contact_name,omitempty"`
	ContactEmail      *string        `json:"contact_email,omitempty"`
	ContactPhone      *string        `json:"contact_phone,omitempty"`
	SecurityLevel     *SecurityLevel `json:"security_level,omitempty"`
	IsActive          *bool          `json:"is_active,omitempty"`
}

type UpdateSystemPlatformInput struct {
	SystemName        *string        `json:"system_name,omitempty"`
	SystemType        *string        `json:"system_type,omitempty"`
	Description       *string        `json:"description,omitempty"`
	SystemURL         *string        `json:"system_url,omitempty"`
	OwnerDepartmentID *uuid.UUID     `json:"owner_department_id,omitempty"`
	ContactName       *string        `json:"contact_name,omitempty"`
	ContactEmail      *string        `json:"contact_email,omitempty"`
	ContactPhone      *string        `json:"contact_phone,omitempty"`
	SecurityLevel     *SecurityLevel `json:"security_level,omitempty"`
	IsActive          *bool          `json:"is_active,omitempty"`
}
