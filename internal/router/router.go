package router

import (
	"log"

	"firebase.google.com/go/v4/auth"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/studence/backend/internal/handlers"
	"github.com/studence/backend/internal/middleware"
	"github.com/studence/backend/internal/models"
	"github.com/studence/backend/internal/repositories"
	"gorm.io/gorm"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	log.Println("Global middleware configured.")
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, db *gorm.DB, firebaseAuthClient *auth.Client) {
	err := db.AutoMigrate(
		&models.User{},
		&models.Post{},
		&models.Like{},
		&models.Comment{},
		&models.Notification{},
	)
	if err != nil {
		log.Fatalf("Failed to auto migrate models: %v", err)
	}
	log.Println("Auto-migrations completed for all models.")

	e.GET("/health", handlers.HealthCheck)

	// --- Initialize Repositories ---
	userRepo := repositories.NewPostgresUserRepository(db)
	postRepo := repositories.NewPostgresPostRepository(db)
	likeRepo := repositories.NewPostgresLikeRepository(db)
	commentRepo := repositories.NewPostgresCommentRepository(db)
	notificationRepo := repositories.NewPostgresNotificationRepository(db)

	// --- Initialize Handlers ---
	postHandler := handlers.NewPostHandler(postRepo, userRepo, likeRepo, commentRepo)
	likeHandler := handlers.NewLikeHandler(likeRepo, postRepo, notificationRepo)
	commentHandler := handlers.NewCommentHandler(commentRepo, postRepo, notificationRepo)
	notificationHandler := handlers.NewNotificationHandler(notificationRepo)
	userHandler := handlers.NewUserHandler(userRepo)

	// --- Public routes (feed, counts, comment listing) ---
	public := e.Group("")
	postHandler.RegisterPublicRoutes(public)
	likeHandler.RegisterPublicRoutes(public)
	commentHandler.RegisterPublicRoutes(public)
	log.Println("Public routes configured.")

	// --- Optional-auth routes (like status answers for anonymous callers) ---
	optional := e.Group("", middleware.OptionalAuth(firebaseAuthClient, userRepo))
	likeHandler.RegisterOptionalAuthRoutes(optional)

	// --- Protected routes (require a verified Firebase ID token) ---
	api := e.Group("", middleware.RequireAuth(firebaseAuthClient, userRepo))
	postHandler.RegisterPostRoutes(api)
	likeHandler.RegisterLikeRoutes(api)
	commentHandler.RegisterCommentRoutes(api)
	notificationHandler.RegisterNotificationRoutes(api)
	userHandler.RegisterProfileRoutes(api)
	log.Println("Authenticated routes configured.")

	log.Println("All routes configured.")
}
