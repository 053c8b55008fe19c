// Package server contains HTTP and WebSocket handlers for the application's API endpoints.
package server

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"
	"sync"
	"time"

	_ "stayhub/docs" // swagger docs
	"stayhub/internal/cache"
	"stayhub/internal/config"
	"stayhub/internal/database"
	"stayhub/internal/featureflags"
	"stayhub/internal/middleware"
	"stayhub/internal/models"
	"stayhub/internal/notifications"
	"stayhub/internal/policy"
	"stayhub/internal/repository"
	"stayhub/internal/service"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/swagger"
	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	db             *gorm.DB
	redis          *redis.Client
	app            *fiber.App
	promMiddleware *fiberprometheus.FiberPrometheus
	shutdownCtx    context.Context
	shutdownFn     context.CancelFunc

	userRepo     repository.UserRepository
	cityRepo     repository.CityRepository
	propertyRepo repository.PropertyRepository
	imageRepo    repository.ImageRepository
	bookingRepo  repository.BookingRepository
	reviewRepo   repository.ReviewRepository
	favoriteRepo repository.FavoriteRepository

	notifier     *notifications.Notifier
	hub          *notifications.Hub
	featureFlags *featureflags.Manager

	userService     *service.UserService
	cityService     *service.CityService
	propertyService *service.PropertyService
	imageService    *service.ImageService
	bookingService  *service.BookingService
	reviewService   *service.ReviewService
	favoriteService *service.FavoriteService

	// Fallback token revocation store for when Redis is unavailable.
	revokedMu sync.Mutex
	revoked   map[string]time.Time
}

// NewServer creates a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)

	return NewServerWithDeps(cfg, db, cache.GetClient())
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Use this in tests or when a bootstrap layer establishes DB/Redis and
// optionally performs explicit seeding.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*Server, error) {
	server := &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		promMiddleware: middleware.InitMetrics("stayhub-api"),
		userRepo:       repository.NewUserRepository(db),
		cityRepo:       repository.NewCityRepository(db),
		propertyRepo:   repository.NewPropertyRepository(db),
		imageRepo:      repository.NewImageRepository(db),
		bookingRepo:    repository.NewBookingRepository(db),
		reviewRepo:     repository.NewReviewRepository(db),
		favoriteRepo:   repository.NewFavoriteRepository(db),
		featureFlags:   featureflags.NewManager(cfg.FeatureFlags),
		revoked:        make(map[string]time.Time),
	}

	if redisClient != nil {
		server.notifier = notifications.NewNotifier(redisClient)
		server.hub = notifications.NewHub()
	}

	server.userService = service.NewUserService(server.userRepo)
	server.cityService = service.NewCityService(server.cityRepo)
	server.propertyService = service.NewPropertyService(server.propertyRepo, server.reviewRepo, server.cityRepo)
	server.imageService = service.NewImageService(server.imageRepo, server.propertyRepo,
		cfg.ImageUploadDir, cfg.ImageMaxSizeMB)
	server.bookingService = service.NewBookingService(server.bookingRepo, server.propertyRepo,
		server.notifier, server.featureFlags)
	server.reviewService = service.NewReviewService(server.reviewRepo, server.propertyRepo)
	server.favoriteService = service.NewFavoriteService(server.favoriteRepo, server.propertyRepo)

	return server, nil
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Panic recovery
	app.Use(recover.New())

	// Request ID for tracing
	app.Use(requestid.New())

	// Context Middleware to propagate Request ID and User ID
	app.Use(middleware.ContextMiddleware())

	// Prometheus Metrics
	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	// Distributed tracing spans
	if s.config.TracingEnabled {
		app.Use(middleware.TracingMiddleware())
	}

	// Security headers
	app.Use(helmet.New())

	// Structured Logging middleware (after requestid and context middleware)
	app.Use(middleware.StructuredLogger())

	// CORS middleware should run before middlewares that can short-circuit
	// (e.g. limiter) so browser clients still receive CORS headers on error
	// responses.
	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000,http://127.0.0.1:5173"
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, Upgrade, Connection, Sec-WebSocket-Key, Sec-WebSocket-Version",
		AllowCredentials: true,
		MaxAge:           86400, // 24 hours
	}))

	// Global rate limiting (100 requests per minute per IP)
	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
		// Never rate-limit preflight requests; they should be handled by CORS.
		Next: func(c *fiber.Ctx) bool {
			return c.Method() == fiber.MethodOptions
		},
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests, please try again later.",
			})
		},
	}))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	api := app.Group("/api")

	// Health checks
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)
	app.Get("/health", s.ReadinessCheck)

	// Metrics endpoint for Prometheus
	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}
	api.Get("/metrics/dashboard", monitor.New(monitor.Config{
		Title: "StayHub Backend Metrics Dashboard",
	}))

	// Swagger documentation
	api.Get("/swagger/*", swagger.HandlerDefault)

	// Auth routes
	auth := api.Group("/auth")
	auth.Post("/register", middleware.RateLimit(
		s.redis, 3, 10*time.Minute, "register"), s.Register)
	auth.Post("/login", middleware.RateLimit(
		s.redis, 10, 5*time.Minute, "login"), s.Login)
	auth.Post("/refresh", s.Refresh)
	auth.Post("/logout", s.Logout)

	// Public browse routes
	cities := api.Group("/cities")
	cities.Get("/", s.ListCities)
	cities.Get("/:id", s.GetCity)

	properties := api.Group("/properties")
	properties.Get("/", s.ListProperties)
	properties.Get("/:id/images", s.ListPropertyImages)
	properties.Get("/:id/reviews", s.ListPropertyReviews)
	properties.Get("/:id", s.GetProperty)

	// Protected routes
	protected := api.Group("", s.AuthRequired())

	// Profile routes
	users := protected.Group("/users")
	users.Get("/me", s.GetMyProfile)
	users.Put("/me", s.UpdateMyProfile)
	users.Delete("/me", s.DeleteMyAccount)
	users.Get("/me/flags", s.GetMyFeatureFlags)

	// City management (admin only)
	cityAdmin := protected.Group("/cities", s.RequireAction(policy.ActionManageCities))
	cityAdmin.Post("/", s.CreateCity)
	cityAdmin.Put("/:id", s.UpdateCity)
	cityAdmin.Delete("/:id", s.DeleteCity)

	// Listing management (host only)
	listings := protected.Group("/properties", s.RequireAction(policy.ActionManageListings))
	listings.Post("/", s.CreateProperty)
	listings.Put("/:id", s.UpdateProperty)
	listings.Delete("/:id", s.DeleteProperty)

	// Image management (host only)
	images := protected.Group("/properties/:id/images", s.RequireAction(policy.ActionManageImages))
	images.Post("/", s.UploadPropertyImage)
	images.Delete("/:imageId", s.DeletePropertyImage)

	// Booking routes (guest only)
	bookings := protected.Group("/bookings", s.RequireAction(policy.ActionManageBookings))
	bookings.Get("/", s.ListMyBookings)
	bookings.Post("/", middleware.RateLimit(
		s.redis, 10, time.Minute, "create_booking"), s.CreateBooking)
	bookings.Get("/:id", s.GetMyBooking)
	bookings.Put("/:id", s.UpdateMyBooking)
	bookings.Delete("/:id", s.DeleteMyBooking)

	// Review routes (guest only)
	reviews := protected.Group("/reviews", s.RequireAction(policy.ActionManageReviews))
	reviews.Get("/", s.ListMyReviews)
	reviews.Post("/", middleware.RateLimit(
		s.redis, 5, time.Minute, "create_review"), s.CreateReview)
	reviews.Get("/:id", s.GetMyReview)
	reviews.Put("/:id", s.UpdateMyReview)
	reviews.Delete("/:id", s.DeleteMyReview)

	// Favorite routes (guest only)
	favorites := protected.Group("/favorites", s.RequireAction(policy.ActionManageFavorites))
	favorites.Get("/", s.GetMyFavorites)
	favorites.Post("/items", s.AddFavorite)
	favorites.Delete("/items/:itemId", s.RemoveFavorite)

	// Websocket endpoint for booking events
	ws := api.Group("/ws", s.AuthRequired())
	ws.Get("/bookings", s.WebsocketBookingsHandler())

	// Admin routes
	admin := protected.Group("/admin", s.RequireAction(policy.ActionManageCities))
	admin.Get("/feature-flags", s.GetFeatureFlags)
}

// LivenessCheck handles liveness probe requests
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "up",
		"time":   time.Now(),
	})
}

// ReadinessCheck handles readiness probe requests
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	sqlDB, err := s.db.DB()
	if err != nil {
		dbStatus = "unhealthy"
	} else if err := sqlDB.PingContext(ctx); err != nil {
		dbStatus = "unhealthy"
	}

	redisStatus := "healthy"
	if s.redis != nil {
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	} else {
		// Redis is degraded-but-optional: booking events and token revocation
		// fall back to in-process behavior.
		redisStatus = "unavailable"
	}

	status := fiber.StatusOK
	overallStatus := "healthy"
	if dbStatus == "unhealthy" || redisStatus == "unhealthy" {
		status = fiber.StatusServiceUnavailable
		overallStatus = "unhealthy"
	}

	return c.Status(status).JSON(fiber.Map{
		"status": overallStatus,
		"checks": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
		},
		"time": time.Now(),
	})
}

// RequireAction returns middleware that rejects users whose role does not
// grant the given action. Must be placed after AuthRequired so that the role
// is available in locals.
func (s *Server) RequireAction(action policy.Action) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, _ := c.Locals("role").(models.Role)
		if !policy.Allow(role, action) {
			return models.RespondWithError(c, fiber.StatusForbidden,
				models.NewForbiddenError("Your role does not permit this action"))
		}
		return c.Next()
	}
}

// AuthRequired returns the authentication middleware
func (s *Server) AuthRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		tokenString := ""
		if authHeader != "" {
			parts := strings.Split(authHeader, " ")
			if len(parts) == 2 && parts[0] == "Bearer" {
				tokenString = parts[1]
			}
		}

		// WebSocket handshakes cannot set headers from browsers; accept the
		// access token as a query parameter there.
		if tokenString == "" && strings.HasPrefix(c.Path(), "/api/ws") {
			tokenString = c.Query("token")
		}

		if tokenString == "" {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Authorization required"))
		}

		claims, err := s.parseToken(tokenString)
		if err != nil {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid or expired token"))
		}

		if typ, _ := claims["typ"].(string); typ != tokenTypeAccess {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Access token required"))
		}

		sub, ok := claims["sub"].(string)
		if !ok {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid subject claim"))
		}
		userID, err := strconv.ParseUint(sub, 10, 32)
		if err != nil {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid user ID in token"))
		}

		role := models.Role("")
		if r, ok := claims["role"].(string); ok {
			role = models.Role(r)
		}
		if !role.Valid() {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid role claim"))
		}

		// Check JTI for revocation
		if jti, exists := claims["jti"].(string); exists && jti != "" {
			if s.isRevoked(c.Context(), jti) {
				return models.RespondWithError(c, fiber.StatusUnauthorized,
					models.NewUnauthorizedError("Token has been revoked"))
			}
		}

		// Store user ID and role in context
		c.Locals("userID", uint(userID))
		c.Locals("role", role)
		// Sync to UserContext for logging and downstream services
		ctx := context.WithValue(c.UserContext(), middleware.UserIDKey, uint(userID))
		c.SetUserContext(ctx)

		return c.Next()
	}
}

// parseToken validates signature, expiry, issuer and audience and returns the claims.
func (s *Server) parseToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.config.JWTSecret), nil
	},
		jwt.WithIssuer(tokenIssuer),
		jwt.WithAudience(tokenAudience),
	)
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("invalid token: %w", err)
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("invalid token claims")
	}
	return claims, nil
}

// Start starts the server
func (s *Server) Start() error {
	ctx, cancel := context.WithCancel(context.Background())
	s.shutdownCtx = ctx
	s.shutdownFn = cancel

	app := fiber.New(fiber.Config{
		AppName: "StayHub API",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			log.Printf("Error: %v", err)
			return models.RespondWithError(c, fiber.StatusInternalServerError,
				models.NewInternalError(err))
		},
	})
	s.app = app

	s.SetupMiddleware(app)
	s.SetupRoutes(app)

	// Wire the booking event hub to the Redis subscriber if available
	if s.notifier != nil && s.hub != nil {
		go func() {
			if err := s.hub.StartWiring(s.shutdownCtx, s.notifier); err != nil {
				log.Printf("failed to start %s wiring: %v", s.hub.Name(), err)
			}
		}()
	}

	log.Printf("Server starting on port %s...", s.config.Port)
	return app.Listen(":" + s.config.Port)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.shutdownFn != nil {
		s.shutdownFn()
	}

	if s.app != nil {
		if err := s.app.ShutdownWithContext(ctx); err != nil {
			log.Printf("error shutting down HTTP server: %v", err)
		}
	}

	if s.hub != nil {
		if err := s.hub.Shutdown(ctx); err != nil {
			log.Printf("error shutting down %s: %v", s.hub.Name(), err)
		}
	}

	if sqlDB, err := s.db.DB(); err == nil {
		if cerr := sqlDB.Close(); cerr != nil {
			log.Printf("error closing sql DB: %v", cerr)
		}
	}

	if s.redis != nil {
		if rerr := s.redis.Close(); rerr != nil {
			log.Printf("error closing redis: %v", rerr)
		}
	}

	log.Println("Server shutdown complete")
	return nil
}
