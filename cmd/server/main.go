package main

import (
	"log"

	"github.com/gin-contrib/sessions"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/hld/work-schedule-api/internal/audit"
	"github.com/hld/work-schedule-api/internal/config"
	"github.com/hld/work-schedule-api/internal/constants"
	"github.com/hld/work-schedule-api/internal/database"
	"github.com/hld/work-schedule-api/internal/handlers"
	"github.com/hld/work-schedule-api/internal/middleware"
	"github.com/hld/work-schedule-api/internal/models"
	"github.com/hld/work-schedule-api/internal/repository"
	"github.com/hld/work-schedule-api/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	if err := database.AddIndexes(database.GetDB()); err != nil {
		log.Fatalf("Failed to add indexes: %v", err)
	}

	// Initialize Gin router
	r := gin.Default()

	// Setup session middleware with Redis
	redisAddr := cfg.RedisHost + ":" + cfg.RedisPort
	store, err := redisStore.NewStore(
		10,        // Redis pool size
		"tcp",     // network type
		redisAddr, // Redis address from config
		"",        // username (empty for default user)
		"",        // password (empty = no password)
		[]byte(cfg.SessionSecret), // authentication key
	)
	if err != nil {
		log.Fatalf("Failed to create Redis store: %v", err)
	}
	isProduction := cfg.GinMode == "release"
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   isProduction,
		SameSite: 2, // SameSite=Lax (1=Strict, 2=Lax, 3=None)
	})
	r.Use(sessions.Sessions(constants.SessionCookieName, store))

	// Wire repositories and services
	db := database.GetDB()
	auditor := audit.NewRecorder(db)

	userRepo := repository.NewUserRepository(db)
	inviteRepo := repository.NewInvitationRepository(db)
	scheduleRepo := repository.NewScheduleRepository(db)
	personnelRepo := repository.NewPersonnelRepository(db)

	authService := services.NewAuthService(userRepo, inviteRepo, auditor)
	scheduleService := services.NewScheduleService(scheduleRepo, auditor)
	exportService := services.NewExportService(auditor)
	personnelService := services.NewPersonnelService(personnelRepo, auditor)

	authHandler := handlers.NewAuthHandler(authService)
	scheduleHandler := handlers.NewScheduleHandler(scheduleService, exportService)
	personnelHandler := handlers.NewPersonnelHandler(personnelService)
	adminHandler := handlers.NewAdminHandler(userRepo, auditor)
	logHandler := handlers.NewLogHandler()

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Work Schedule API is running",
		})
	})

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/signup", authHandler.Signup)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", middleware.RequireAuth(), authHandler.GetCurrentUser)
		}

		// Invitation routes (protected)
		invitations := api.Group("/invitations")
		invitations.Use(middleware.RequireAuth())
		{
			invitations.POST("", authHandler.CreateInvitation)
			invitations.GET("", authHandler.ListInvitations)
		}

		// Schedule routes (protected; mutations gated per permission)
		schedule := api.Group("/schedule")
		schedule.Use(middleware.RequireAuth())
		{
			schedule.GET("", scheduleHandler.GetWeek)
			schedule.GET("/export", scheduleHandler.ExportWeek)
			schedule.POST("/tasks", middleware.RequirePermission(models.PermissionAdd), scheduleHandler.CreateTasks)
			schedule.GET("/tasks/:id", scheduleHandler.GetTask)
			schedule.PATCH("/tasks/:id", middleware.RequirePermission(models.PermissionEdit), scheduleHandler.UpdateTask)
			schedule.POST("/reorder", middleware.RequirePermission(models.PermissionEdit), scheduleHandler.ReorderTasks)
			schedule.DELETE("/tasks/:id", middleware.RequirePermission(models.PermissionDelete), scheduleHandler.DeleteTask)
			schedule.POST("/tasks/:id/restore", middleware.RequirePermission(models.PermissionDelete), scheduleHandler.RestoreTask)
		}

		// Personnel directory (reads for everyone, writes for admins)
		personnel := api.Group("/personnel")
		personnel.Use(middleware.RequireAuth())
		{
			personnel.GET("", personnelHandler.ListPersonnel)
			personnel.POST("", middleware.RequireAdmin(), personnelHandler.CreatePersonnel)
			personnel.DELETE("/:id", middleware.RequireAdmin(), personnelHandler.DeletePersonnel)
		}

		// Audit trail (protected)
		api.GET("/logs", middleware.RequireAuth(), logHandler.ListLogs)

		// Admin routes
		admin := api.Group("/admin")
		admin.Use(middleware.RequireAuth(), middleware.RequireAdmin())
		{
			admin.GET("/users", adminHandler.ListUsers)
			admin.PATCH("/users/:id/permissions", adminHandler.UpdatePermissions)
		}
	}

	// Start server
	log.Println("Server starting on :8080")
	if err := r.Run(":8080"); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
