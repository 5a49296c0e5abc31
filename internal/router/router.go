package router

import (
	"log"

	"firebase.google.com/go/v4/auth"
	sentryecho "github.com/getsentry/sentry-go/echo"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"gorm.io/gorm"

	"github.com/arpansahu/portfolio-api/internal/events"
	"github.com/arpansahu/portfolio-api/internal/handlers"
	"github.com/arpansahu/portfolio-api/internal/middleware"
	"github.com/arpansahu/portfolio-api/internal/models"
	"github.com/arpansahu/portfolio-api/internal/repositories"
	"github.com/arpansahu/portfolio-api/internal/services"
	"github.com/arpansahu/portfolio-api/pkg/config"
	"github.com/arpansahu/portfolio-api/pkg/mailer"
	"github.com/arpansahu/portfolio-api/pkg/storage"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo, sentryEnabled bool) {
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	e.Use(eMiddleware.Logger())
	if sentryEnabled {
		e.Use(sentryecho.New(sentryecho.Options{Repanic: true}))
	}
	log.Println("Global middleware configured.")
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(
	e *echo.Echo,
	db *gorm.DB,
	firebaseAuthClient *auth.Client,
	m *mailer.Mailer,
	store *storage.S3Storage,
	cfg *config.Config,
) {
	err := db.AutoMigrate(
		&models.Account{},
		&models.Category{},
		&models.Tag{},
		&models.BlogPost{},
		&models.PostLike{},
		&models.Comment{},
		&models.CommentLike{},
		&models.CommentEditHistory{},
		&models.Notification{},
		&models.EmailOTPRecord{},
		&models.ContactMessage{},
		&models.Resume{},
	)
	if err != nil {
		log.Fatalf("Failed to auto migrate models: %v", err)
	}
	log.Println("PostgreSQL auto-migrations completed for all models.")

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// --- Initialize Repositories ---
	accountRepo := repositories.NewPostgresAccountRepository(db)
	postRepo := repositories.NewPostgresPostRepository(db)
	taxonomyRepo := repositories.NewPostgresTaxonomyRepository(db)
	commentRepo := repositories.NewPostgresCommentRepository(db)
	commentLikeRepo := repositories.NewPostgresCommentLikeRepository(db)
	postLikeRepo := repositories.NewPostgresPostLikeRepository(db)
	notificationRepo := repositories.NewPostgresNotificationRepository(db)
	otpRepo := repositories.NewPostgresOTPRepository(db)
	contactRepo := repositories.NewPostgresContactRepository(db)
	resumeRepo := repositories.NewPostgresResumeRepository(db)

	// --- Services and the notification dispatcher ---
	notifier := events.NewNotifier(commentRepo, postRepo, notificationRepo)
	commentService := services.NewCommentService(commentRepo, commentLikeRepo, accountRepo)
	likeService := services.NewLikeService(postLikeRepo, commentLikeRepo, postRepo, commentRepo, accountRepo)
	otpService := services.NewOTPService(otpRepo, m, cfg.OTPSecret)
	contactService := services.NewContactService(contactRepo, otpService, m)

	// --- Handlers ---
	authHandler := handlers.NewAuthHandler(accountRepo, firebaseAuthClient, m, cfg.JWTSecret)
	profileHandler := handlers.NewProfileHandler(accountRepo, postRepo, commentRepo, postLikeRepo)
	blogHandler := handlers.NewBlogHandler(postRepo, taxonomyRepo, postLikeRepo, commentService, likeService, notifier)
	commentHandler := handlers.NewCommentHandler(postRepo, commentRepo, commentService, likeService, notifier)
	notificationHandler := handlers.NewNotificationHandler(notificationRepo)
	contactHandler := handlers.NewContactHandler(otpService, contactService)
	resumeHandler := handlers.NewResumeHandler(resumeRepo, store)

	// --- Unprotected routes for authentication ---
	authGroup := e.Group("/api/v1/auth")
	authHandler.RegisterAuthRoutes(authGroup)
	log.Println("Auth routes configured.")

	// --- Public routes (token parsed when present, never required) ---
	public := e.Group("/api/v1")
	public.Use(middleware.OptionalJWTAuth(cfg.JWTSecret))
	blogHandler.RegisterPublicRoutes(public)
	commentHandler.RegisterPublicRoutes(public)
	profileHandler.RegisterPublicRoutes(public)
	log.Println("Public blog and comment routes configured.")

	// --- Site-root routes used by the rendered pages ---
	site := e.Group("")
	contactHandler.RegisterContactRoutes(site)
	resumeHandler.RegisterPublicRoutes(site)
	log.Println("Contact and resume routes configured.")

	// --- Protected routes (require JWT authentication) ---
	api := e.Group("/api/v1")
	api.Use(middleware.JWTAuth(cfg.JWTSecret))
	log.Println("JWT authentication middleware applied to /api/v1 group.")

	profileHandler.RegisterProfileRoutes(api)
	blogHandler.RegisterAuthRoutes(api)
	commentHandler.RegisterAuthRoutes(api)
	notificationHandler.RegisterNotificationRoutes(api)
	log.Println("Profile, like and notification routes configured.")

	// --- Admin routes ---
	admin := e.Group("/api/v1/admin")
	admin.Use(middleware.JWTAuth(cfg.JWTSecret), middleware.AdminOnly())
	blogHandler.RegisterAdminRoutes(admin)
	commentHandler.RegisterAdminRoutes(admin)
	resumeHandler.RegisterAdminRoutes(admin)
	log.Println("Admin routes configured.")

	log.Println("All routes configured.")
}
