package handler

import (
	"github.com/gofiber/fiber/v2"

	"accessdesk/internal/domain"
	"accessdesk/internal/service"
)

type Handlers struct {
	Auth           *AuthHandler
	Employee       *EmployeeHandler
	Department     *DepartmentHandler
	SystemPlatform *SystemPlatformHandler
	AccessType     *AccessTypeHandler
	AccessRequest  *AccessRequestHandler
	Notification   *NotificationHandler
	Dashboard      *DashboardHandler
	Audit          *AuditHandler
}

func NewHandlers(services *service.Services) *Handlers {
	return &Handlers{
		Auth:           NewAuthHandler(services.Auth),
		Employee:       NewEmployeeHandler(services.Employee, services.Media),
		Department:     NewDepartmentHandler(services.Department),
		SystemPlatform: NewSystemPlatformHandler(services.SystemPlatform),
		AccessType:     NewAccessTypeHandler(services.AccessType),
		AccessRequest:  NewAccessRequestHandler(services.AccessRequest),
		Notification:   NewNotificationHandler(services.Notification),
		Dashboard:      NewDashboardHandler(services.Dashboard),
		Audit:          NewAuditHandler(services.Audit),
	}
}

func getPaginationParams(c *fiber.Ctx) domain.PaginationParams {
	params := domain.DefaultPagination()

	if page := c.QueryInt("page", 1); page > 0 {
		params.Page = page
	}
	if pageSize := c.QueryInt("page_size", 20); pageSize > 0 {
		params.PageSize = pageSize
	}

	params.Validate()
	return params
}
