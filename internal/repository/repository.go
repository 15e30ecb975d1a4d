package repository

import (
	"github.com/jmoiron/sqlx"
)

type Repositories struct {
	Employee       EmployeeRepository
	Department     DepartmentRepository
	SystemPlatform SystemPlatformRepository
	AccessType     AccessTypeRepository
	AccessRequest  AccessRequestRepository
	Notification   NotificationRepository
	User           UserRepository
	Role           RoleRepository
	AuditLog       AuditLogRepository
}

func NewRepositories(db *sqlx.DB) *Repositories {
	return &Repositories{
		Employee:       NewEmployeeRepository(db),
		Department:     NewDepartmentRepository(db),
		SystemPlatform: NewSystemPlatformRepository(db),
		AccessType:     NewAccessTypeRepository(db),
		AccessRequest:  NewAccessRequestRepository(db),
		Notification:   NewNotificationRepository(db),
		User:           NewUserRepository(db),
		Role:           NewRoleRepository(db),
		AuditLog:       NewAuditLogRepository(db),
	}
}
