package routes

import (
	"log"
	"os"

	controller "webgestor/controllers"
	"webgestor/middleware"
	"webgestor/models"
	"webgestor/store"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/websocket/v2"
)

func SetupAuthRoutes(app *fiber.App) {
	// Initialize logger
	authLogger := log.New(os.Stdout, "AUTH: ", log.Ldate|log.Ltime|log.Lshortfile)

	// Auth routes group with logging and rate limiting middleware
	auth := app.Group("/auth", logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}), middleware.AuthRateLimiter())

	// Public auth endpoints (no authentication required)
	auth.Post("/register", controller.Register)
	auth.Post("/login", controller.Login)
	auth.Post("/refresh", controller.RefreshToken)

	// Protected auth endpoints (require valid JWT)
	protectedAuth := auth.Group("", middleware.Protected())
	protectedAuth.Post("/logout", controller.Logout)
	protectedAuth.Post("/change-password", controller.ChangePassword)
	protectedAuth.Get("/me", controller.GetCurrentUser)
	protectedAuth.Put("/profile", controller.UpdateProfile)

	// Log initialization
	authLogger.Println("Authentication routes initialized successfully")
}

func SetupAPIRoutes(app *fiber.App, s *store.Store, directory store.UserDirectory) {
	// Initialize controllers with their respective loggers
	teamController := controller.NewTeamController(s, log.New(os.Stdout, "TEAM: ", log.LstdFlags))
	projectController := controller.NewProjectController(s, log.New(os.Stdout, "PROJECT: ", log.LstdFlags))
	taskController := controller.NewTaskController(s, log.New(os.Stdout, "TASK: ", log.LstdFlags))
	notificationController := controller.NewNotificationController(s, log.New(os.Stdout, "NOTIFY: ", log.LstdFlags))
	activityController := controller.NewActivityController(s, log.New(os.Stdout, "ACTIVITY: ", log.LstdFlags))
	userController := controller.NewUserController(s, directory, log.New(os.Stdout, "USER: ", log.LstdFlags))
	dashboardController := controller.NewDashboardController(s, log.New(os.Stdout, "DASHBOARD: ", log.LstdFlags))

	// API group with versioning and protection
	api := app.Group("/api/v1", middleware.Protected(), logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	// Dashboard routes
	dashboard := api.Group("/dashboard")
	dashboard.Get("/stats", dashboardController.GetDashboardStats)

	// Team routes; mutations are restricted to admins
	team := api.Group("/teams")
	team.Get("/", teamController.ListTeams)
	team.Get("/:id", teamController.GetTeam)
	team.Get("/:id/members", teamController.ListMembers)
	team.Post("/", middleware.RequireRole(models.RoleAdmin), teamController.CreateTeam)
	team.Put("/:id", middleware.RequireRole(models.RoleAdmin), teamController.UpdateTeam)
	team.Delete("/:id", middleware.RequireRole(models.RoleAdmin), teamController.DeleteTeam)
	team.Post("/:id/members", middleware.RequireRole(models.RoleAdmin, models.RoleLeader), teamController.AddMember)
	team.Delete("/:id/members/:userId", middleware.RequireRole(models.RoleAdmin, models.RoleLeader), teamController.RemoveMember)

	// Project routes; leaders manage their team's projects
	project := api.Group("/projects")
	project.Get("/", projectController.ListProjects)
	project.Get("/:id", projectController.GetProject)
	project.Post("/", middleware.RequireRole(models.RoleAdmin, models.RoleLeader), projectController.CreateProject)
	project.Put("/:id", middleware.RequireRole(models.RoleAdmin, models.RoleLeader), projectController.UpdateProject)
	project.Delete("/:id", middleware.RequireRole(models.RoleAdmin, models.RoleLeader), projectController.DeleteProject)

	// Task routes; per-task edit permission is checked in the controller
	task := api.Group("/tasks")
	task.Get("/", taskController.ListTasks)
	task.Get("/:id", taskController.GetTask)
	task.Post("/", middleware.RequireRole(models.RoleAdmin, models.RoleLeader), taskController.CreateTask)
	task.Put("/:id", taskController.UpdateTask)
	task.Delete("/:id", taskController.DeleteTask)
	task.Get("/:id/comments", taskController.ListComments)
	task.Post("/:id/comments", taskController.AddComment)

	// Notification routes
	notification := api.Group("/notifications")
	notification.Get("/", notificationController.ListNotifications)
	notification.Get("/unread-count", notificationController.UnreadCount)
	notification.Put("/:id/read", notificationController.MarkRead)
	notification.Put("/read-all", notificationController.MarkAllRead)

	// Activity feed
	api.Get("/activity", activityController.ListActivity)

	// User administration (admin only)
	user := api.Group("/users", middleware.RequireRole(models.RoleAdmin))
	user.Get("/", userController.ListUsers)
	user.Put("/:id/role", userController.UpdateUserRole)

	// WebSocket route for live notifications; authenticates inside the
	// handler since upgrade requests carry the token as a query param
	app.Get("/ws/notifications", websocket.New(controller.NotificationStream(s)))

	// Log initialization
	log.Println("API routes initialized successfully")
}

func SetupRoutes(app *fiber.App, s *store.Store, directory store.UserDirectory) {
	// Setup health check endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// Setup auth routes
	SetupAuthRoutes(app)

	// Setup API routes
	SetupAPIRoutes(app, s, directory)

	// Setup 404 handler
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error":   "Not Found",
			"message": "The requested resource was not found",
		})
	})
}
