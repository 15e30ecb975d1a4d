package main

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"accessdesk/internal/config"
	"accessdesk/internal/handler"
	"accessdesk/internal/logger"
	"accessdesk/internal/middleware"
	"accessdesk/internal/repository"
	"accessdesk/internal/service"
	"accessdesk/internal/service/auth"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()

	zlog := logger.New(cfg.Environment)
	defer zlog.Sync()

	db, err := config.NewPostgresDB(cfg)
	if err != nil {
		zlog.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	redis, err := config.NewRedisClient(cfg)
	if err != nil {
		zlog.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer redis.Close()

	minioClient, err := config.NewMinIOClient(cfg)
	if err != nil {
		zlog.Warn("Failed to connect to MinIO, profile image upload will not work", zap.Error(err))
	}

	repos := repository.NewRepositories(db)
	services := service.NewServices(repos, redis, minioClient, cfg, zlog)
	handlers := handler.NewHandlers(services)

	sweepCtx, cancelSweep := context.WithCancel(context.Background())
	defer cancelSweep()
	go services.ExpirySweeper.Start(sweepCtx)

	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler,
	})

	app.Use(recover.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Next: func(c *fiber.Ctx) bool {
			return c.Path() == "/health"
		},
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, PATCH, DELETE, OPTIONS",
	}))

	setupRoutes(app, handlers, services.Auth)

	zlog.Info("Server starting", zap.String("port", cfg.Port))
	if err := app.Listen(":" + cfg.Port); err != nil {
		zlog.Fatal("Failed to start server", zap.Error(err))
	}
}

func setupRoutes(app *fiber.App, h *handler.Handlers, authService auth.Service) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	v1 := app.Group("/api/v1")

	authGroup := v1.Group("/auth")
	authGroup.Post("/login", h.Auth.Login)

	protected := v1.Group("", middleware.AuthRequired(authService))

	users := protected.Group("/users")
	users.Get("/me", h.Auth.Me)
	users.Post("/", middleware.RequireRole("admin"), h.Auth.Register)
	users.Get("/:userId", middleware.RequireRole("admin"), h.Auth.GetUser)
	users.Put("/:userId", middleware.RequireRole("admin"), h.Auth.UpdateUser)
	users.Put("/:userId/roles", middleware.RequireRole("admin"), h.Auth.UpdateUserRoles)
	users.Delete("/:userId", middleware.RequireRole("admin"), h.Auth.DeleteUser)

	roles := protected.Group("/roles")
	roles.Get("/", middleware.RequireRole("admin"), h.Auth.ListRoles)
	roles.Put("/:roleId", middleware.RequireRole("admin"), h.Auth.UpdateRole)

	employees := protected.Group("/employees")
	employees.Post("/", middleware.RequireAnyRole("admin", "manager"), h.Employee.Create)
	employees.Get("/", h.Employee.List)
	employees.Get("/:employeeId", h.Employee.Get)
	employees.Put("/:employeeId", middleware.RequireAnyRole("admin", "manager"), h.Employee.Update)
	employees.Delete("/:employeeId", middleware.RequireRole("admin"), h.Employee.Delete)
	employees.Post("/:employeeId/profile-image", h.Employee.UploadProfileImage)
	employees.Delete("/:employeeId/profile-image", h.Employee.RemoveProfileImage)

	departments := protected.Group("/departments")
	departments.Post("/", middleware.RequireRole("admin"), h.Department.Create)
	departments.Get("/", h.Department.List)
	departments.Get("/:departmentId", h.Department.Get)
	departments.Put("/:departmentId", middleware.RequireRole("admin"), h.Department.Update)
	departments.Delete("/:departmentId", middleware.RequireRole("admin"), h.Department.Delete)

	systems := protected.Group("/systems")
	systems.Post("/", middleware.RequireRole("admin"), h.SystemPlatform.Create)
	systems.Get("/", h.SystemPlatform.List)
	systems.Get("/:systemId", h.SystemPlatform.Get)
	systems.Put("/:systemId", middleware.RequireRole("admin"), h.SystemPlatform.Update)
	systems.Delete("/:systemId", middleware.RequireRole("admin"), h.SystemPlatform.Delete)

	accessTypes := protected.Group("/access-types")
	accessTypes.Post("/", middleware.RequireRole("admin"), h.AccessType.Create)
	accessTypes.Get("/", h.AccessType.List)
	accessTypes.Get("/:accessTypeId", h.AccessType.Get)
	accessTypes.Put("/:accessTypeId", middleware.RequireRole("admin"), h.AccessType.Update)
	accessTypes.Delete("/:accessTypeId", middleware.RequireRole("admin"), h.AccessType.Delete)

	requests := protected.Group("/access-requests")
	requests.Post("/", h.AccessRequest.Create)
	requests.Get("/", h.AccessRequest.List)
	requests.Get("/:requestId", h.AccessRequest.Get)
	requests.Put("/:requestId", h.AccessRequest.Update)
	requests.Delete("/:requestId", middleware.RequireRole("admin"), h.AccessRequest.Delete)
	requests.Post("/:requestId/supervisor-decision", h.AccessRequest.SupervisorDecide)
	requests.Post("/:requestId/it-decision", middleware.RequireRole("admin"), h.AccessRequest.ITDecide)

	notifications := protected.Group("/notifications")
	notifications.Post("/", middleware.RequireRole("admin"), h.Notification.Create)
	notifications.Get("/", middleware.RequireRole("admin"), h.Notification.List)
	notifications.Get("/recipient/:recipientId", h.Notification.ListByRecipient)
	notifications.Get("/recipient/:recipientId/unread-count", h.Notification.UnreadCount)
	notifications.Post("/recipient/:recipientId/mark-all-read", h.Notification.MarkAllAsRead)
	notifications.Get("/:notificationId", h.Notification.Get)
	notifications.Patch("/:notificationId/read", h.Notification.MarkAsRead)
	notifications.Delete("/:notificationId", h.Notification.Delete)

	dashboard := protected.Group("/dashboard")
	dashboard.Get("/stats", h.Dashboard.GetStats)

	audit := protected.Group("/audit")
	audit.Get("/", middleware.RequireRole("admin"), h.Audit.List)
}
