package domain

import (
	"time"

	"github.com/google/uuid"
)

type Employee struct {
	ID           uuid.UUID  `json:"id" db:"id"`
	FullName     string     `json:"full_name" db:"full_name"`
	Email        string     `json:"email" db:"email"`
	Phone        *string    `json:"phone,omitempty" db:"phone"`
	EmployeeCode string     `json:"employee_code" db:"employee_code"`
	JobTitle     *string    `json:"job_title,omitempty" db:"job_title"`
	DepartmentID uuid.UUID  `json:"department_id" db:"department_id"`
	SupervisorID *uuid.UUID `json:"supervisor_id,omitempty" db:"supervisor_id"`

	// Denormalized at write time, like every other snapshot in the system.
	DepartmentName     *string `json:"department_name" db:"department_name"`
	DepartmentCode     *string `json:"department_code" db:"department_code"`
	SupervisorName     *string `json:"supervisor_name,omitempty" db:"supervisor_name"`
	SupervisorEmail    *string `json:"supervisor_email,omitempty" db:"supervisor_email"`
	SupervisorJobTitle *string `json:"supervisor_job_title,omitempty" db:"supervisor_job_title"`

	IsActive     bool       `json:"is_active" db:"is_active"`
	HireDate     *time.Time `json:"hire_date,omitempty" db:"hire_date"`
	ProfileImage *string    `json:"profile_image,omitempty" db:"profile_image"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at" db:"updated_at"`
}

type CreateEmployeeInput struct {
	FullName     string     `json:"full_name"`
	Email        string     `json:"email"`
	Phone        *string    `json:"phone,omitempty"`
	EmployeeCode string     `json:"employee_code"`
	JobTitle     *string    `json:"job_title,omitempty"`
	DepartmentID uuid.UUID  `json:"department_id"`
	SupervisorID *uuid.UUID `json:"supervisor_id,omitempty"`
	IsActive     *bool      `json:"is_active,omitempty"`
	HireDate     *time.Time `json:"hire_date,omitempty"`
}

type UpdateEmployeeInput struct {
	FullName     *string     `json:"full_name,omitempty"`
	Email        *string     `json:"email,omitempty"`
	Phone        *string     `json:"phone,omitempty"`
	EmployeeCode *string     `json:"employee_code,omitempty"`
	JobTitle     *string     `json:"job_title,omitempty"`
	DepartmentID *uuid.UUID  `json:"department_id,omitempty"`
	SupervisorID **uuid.UUID `json:"supervisor_id,omitempty"`
	IsActive     *bool       `json:"is_active,omitempty"`
	HireDate     *time.Time  `json:"hire_date,omitempty"`
}
