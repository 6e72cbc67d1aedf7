package main

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fjaouad/notes-api/internal/auth"
	"github.com/fjaouad/notes-api/internal/config"
	"github.com/fjaouad/notes-api/internal/database"
	"github.com/fjaouad/notes-api/internal/handlers"
	"github.com/fjaouad/notes-api/internal/logger"
	"github.com/fjaouad/notes-api/internal/mailer"
	"github.com/fjaouad/notes-api/internal/metrics"
	"github.com/fjaouad/notes-api/internal/middleware"
	"github.com/fjaouad/notes-api/internal/repository"
	"github.com/fjaouad/notes-api/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	appLog, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		appLog.Fatal().Err(err).Msg("Failed to connect to database")
	}

	// Run migrations
	if err := database.Migrate(db); err != nil {
		appLog.Fatal().Err(err).Msg("Failed to run migrations")
	}

	// Repositories
	userRepo := repository.NewUserRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	noteRepo := repository.NewNoteRepository(db)
	tagRepo := repository.NewTagRepository(db)
	tokenRepo := repository.NewRefreshTokenRepository(db)

	// Services
	jwtService := auth.NewJWTService(cfg.AccessTokenSecret, cfg.RefreshTokenSecret, cfg.ResetTokenSecret)
	smtpMailer := mailer.NewSMTPMailer(cfg, appLog)
	uploadService := services.NewUploadService(cfg.UploadDir)
	authService := services.NewAuthService(userRepo, tokenRepo, jwtService, smtpMailer, appLog)
	categoryService := services.NewCategoryService(categoryRepo)
	noteService := services.NewNoteService(noteRepo, categoryRepo, tagRepo, uploadService, appLog)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	noteHandler := handlers.NewNoteHandler(noteService)

	// Metrics served on a separate listener
	m := metrics.New()
	go func() {
		addr := ":" + cfg.MetricsPort
		appLog.Info().Str("addr", addr).Msg("Metrics listening")
		if err := http.ListenAndServe(addr, m.Handler()); err != nil {
			appLog.Error().Err(err).Msg("Metrics server stopped")
		}
	}()

	// Initialize Gin router
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.RequestLogger(appLog))
	r.Use(m.Middleware())

	requireAuth := middleware.RequireAuth(jwtService, userRepo, appLog)
	requireVerified := middleware.RequireVerified()
	requireAdmin := middleware.RequireAdmin()

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": cfg.AppName + " is running",
		})
	})

	// API routes
	api := r.Group("/api/v1")
	{
		authRoutes := api.Group("/auth")
		{
			authRoutes.POST("/register", authHandler.Register)
			authRoutes.POST("/login", authHandler.Login)
			authRoutes.GET("/verify", authHandler.VerifyEmail)
			authRoutes.POST("/refresh-token", requireAuth, authHandler.RefreshToken)
			authRoutes.POST("/forgot-password", requireAuth, authHandler.ForgotPassword)
			authRoutes.DELETE("/logout", requireAuth, authHandler.Logout)
			authRoutes.PATCH("/reset-password/:token", requireAuth, authHandler.ResetPassword)
		}

		users := api.Group("/users")
		users.Use(requireAuth)
		{
			users.GET("/me", authHandler.Me)
			users.GET("/:id", requireAdmin, authHandler.GetUserByID)
		}

		categories := api.Group("/categories")
		categories.Use(requireAuth)
		{
			categories.POST("", categoryHandler.CreateCategory)
			categories.GET("", categoryHandler.ListCategories)
			categories.PUT("/:id", categoryHandler.UpdateCategory)
			categories.DELETE("/:id", categoryHandler.DeleteCategory)
		}

		notes := api.Group("/notes")
		notes.Use(requireAuth, requireVerified)
		{
			notes.POST("", noteHandler.CreateNote)
			notes.GET("", noteHandler.ListNotes)
			notes.GET("/:id", noteHandler.GetNote)
			notes.PATCH("/:id", noteHandler.UpdateNote)
			notes.DELETE("/:id", noteHandler.DeleteNote)
		}
	}

	// Start server
	addr := ":" + cfg.AppPort
	appLog.Info().Str("addr", addr).Msg("Server starting")
	if err := r.Run(addr); err != nil {
		appLog.Fatal().Err(err).Msg("Failed to start server")
	}
}
