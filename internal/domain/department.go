package domain

import (
	"time"

	"github.com/google/uuid"
)

type Department struct {
	ID               uuid.UUID  `json:"id" db:"id"`
	DepartmentName   string     `json:"department_name" db:"department_name"`
	DepartmentCode   string     `json:"department_code" db:"department_code"`
	HeadOfDepartment *uuid.UUID `json:"head_of_department,omitempty" db:"head_of_department"`
	Description      *string    `json:"description,omitempty" db:"description"`
	IsActive         bool       `json:"is_active" db:"is_active"`
	CreatedAt        time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at" db:"updated_at"`
}

type CreateDepartmentInput struct {
	DepartmentName   string     `json:"department_name"`
	DepartmentCode   string     `json:"department_code"`
	HeadOfDepartment *uuid.UUID `json:"head_of_department,omitempty"`
	Description      *string    `json:"description,omitempty"`
	IsActive         *bool      `json:"is_active,omitempty"`
}

type UpdateDepartmentInput struct {
	DepartmentName   *string    `json:"department_name,omitempty"`
	DepartmentCode   *string    `json:"department_code,omitempty"`
	HeadOfDepartment *uuid.UUID `json:"head_of_department,omitempty"`
	Description      *string    `json:"description,omitempty"`
	IsActive         *bool      `json:"is_active,omitempty"`
}
