package router

import (
	"log"

	"firebase.google.com/go/v4/auth"
	"github.com/anonto42/medium-clone/backend/internal/handlers"
	"github.com/anonto42/medium-clone/backend/internal/middleware"
	"github.com/anonto42/medium-clone/backend/internal/repositories"
	"github.com/anonto42/medium-clone/backend/internal/services"
	"github.com/anonto42/medium-clone/backend/internal/token"
	"github.com/anonto42/medium-clone/backend/pkg/config"
	"github.com/anonto42/medium-clone/backend/validators"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// NewServer builds an echo instance with global middleware, the error handler, the
// validator and all routes.
func NewServer(cfg *config.Config, pgdb *gorm.DB, mgClient *mongo.Client, firebaseAuthClient *auth.Client) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = handlers.ErrorHandler
	e.Validator = validators.NewValidator()

	config.SetupMiddleware(e)
	log.Println("Global middleware configured.")

	SetupRoutes(e, cfg, pgdb, mgClient, firebaseAuthClient)
	return e
}

// SetupRoutes configures all application routes and injects dependencies. mgClient and
// firebaseAuthClient may be nil.
func SetupRoutes(e *echo.Echo, cfg *config.Config, pgdb *gorm.DB, mgClient *mongo.Client, firebaseAuthClient *auth.Client) {
	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// --- Initialize Repositories ---
	userRepo := repositories.NewPostgresUserRepository(pgdb)
	articleRepo := repositories.NewPostgresArticleRepository(pgdb)
	commentRepo := repositories.NewPostgresCommentRepository(pgdb)
	favoriteRepo := repositories.NewPostgresFavoriteRepository(pgdb)
	followRepo := repositories.NewPostgresFollowRepository(pgdb)

	var activityRepo repositories.ActivityRepository = repositories.NoopActivityRepository{}
	if mgClient != nil {
		activityRepo = repositories.NewMongoActivityRepository(mgClient.Database(cfg.MongoDatabase))
	}

	// --- Initialize Services ---
	clock := services.SystemClock()
	tokens := token.NewManager(cfg.JWTSecret, cfg.TokenTTL)

	var verifier services.IDTokenVerifier
	if firebaseAuthClient != nil {
		verifier = firebaseAuthClient
	}

	activityService := services.NewActivityService(activityRepo, clock)
	userService := services.NewUserService(userRepo, tokens, verifier)
	profileService := services.NewProfileService(userRepo, followRepo, activityService)
	articleService := services.NewArticleService(articleRepo, userRepo, favoriteRepo, followRepo, activityService, clock)
	commentService := services.NewCommentService(commentRepo, articleRepo, followRepo, activityService, clock)

	requireAuth := middleware.JWTAuthMiddleware(tokens)
	optionalAuth := middleware.OptionalJWTAuthMiddleware(tokens)

	// --- Unprotected routes for authentication ---
	authGroup := e.Group("/api/auth")
	handlers.NewAuthHandler(userService).RegisterAuthRoutes(authGroup, verifier != nil)
	log.Println("Auth routes configured.")

	api := e.Group("/api")

	handlers.NewUserHandler(userService, activityService).RegisterUserRoutes(api, requireAuth)
	log.Println("User routes configured.")

	handlers.NewProfileHandler(profileService).RegisterProfileRoutes(api, requireAuth, optionalAuth)
	log.Println("Profile routes configured.")

	handlers.NewFeedHandler(articleService).RegisterFeedRoutes(api, requireAuth)
	log.Println("Feed routes configured.")

	handlers.NewArticleHandler(articleService).RegisterArticleRoutes(api, requireAuth, optionalAuth)
	log.Println("Article routes configured.")

	handlers.NewCommentHandler(commentService).RegisterCommentRoutes(api, requireAuth, optionalAuth)
	log.Println("Comment routes configured.")

	log.Println("All routes configured.")
}
