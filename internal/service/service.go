package service

import (
	"github.com/minio/minio-go/v7"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"accessdesk/internal/config"
	"accessdesk/internal/repository"
	"accessdesk/internal/service/accessrequest"
	"accessdesk/internal/service/accesstype"
	"accessdesk/internal/service/audit"
	"accessdesk/internal/service/auth"
	"accessdesk/internal/service/dashboard"
	"accessdesk/internal/service/department"
	"accessdesk/internal/service/email"
	"accessdesk/internal/service/employee"
	"accessdesk/internal/service/expiry"
	"accessdesk/internal/service/media"
	"accessdesk/internal/service/notification"
	"accessdesk/internal/service/systemplatform"
)

type Services struct {
	Auth           auth.Service
	Employee       employee.Service
	Department     department.Service
	SystemPlatform systemplatform.Service
	AccessType     accesstype.Service
	AccessRequest  accessrequest.Service
	Notification   notification.Service
	Media          media.Service
	Email          email.Service
	Audit          audit.Service
	Dashboard      dashboard.Service
	ExpirySweeper  *expiry.Sweeper
}

func NewServices(repos *repository.Repositories, redis *redis.Client, minioClient *minio.Client, cfg *config.Config, log *zap.Logger) *Services {
	emailService := email.NewService(cfg)
	auditService := audit.NewService(repos.AuditLog, log)
	authService := auth.NewService(repos.User, repos.Role, repos.Employee, cfg)
	employeeService := employee.NewService(repos.Employee, repos.Department)
	departmentService := department.NewService(repos.Department, repos.Employee)
	systemPlatformService := systemplatform.NewService(repos.SystemPlatform, repos.Department)
	accessTypeService := accesstype.NewService(repos.AccessType)
	mediaService := media.NewService(repos.Employee, minioClient, cfg)

	notificationService := notification.NewService(
		repos.Notification, repos.Employee, repos.SystemPlatform, repos.User,
		emailService, log)

	accessRequestService := accessrequest.NewService(
		repos.AccessRequest, repos.Employee, repos.SystemPlatform, repos.AccessType,
		auditService, log)
	accessRequestService.SetNotificationService(notificationService)

	dashboardService := dashboard.NewService(repos.AccessRequest, redis, log)
	sweeper := expiry.NewSweeper(repos.AccessRequest, notificationService, auditService, cfg.ExpirySweepInterval, log)

	return &Services{
		Auth:           authService,
		Employee:       employeeService,
		Department:     departmentService,
		SystemPlatform: systemPlatformService,
		AccessType:     accessTypeService,
		AccessRequest:  accessRequestService,
		Notification:   notificationService,
		Media:          mediaService,
		Email:          emailService,
		Audit:          auditService,
		Dashboard:      dashboardService,
		ExpirySweeper:  sweeper,
	}
}
