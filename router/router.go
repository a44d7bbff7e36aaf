package router

import (
	"context"
	"errors"
	"net/http"
	"os"
	"strconv"
	"time"

	analyticsAPI "beelinks-api/api/v1/analytics"
	authAPI "beelinks-api/api/v1/auth"
	avatarsAPI "beelinks-api/api/v1/avatars"
	csrfAPI "beelinks-api/api/v1/csrf"
	debugAPI "beelinks-api/api/v1/debug"
	linksAPI "beelinks-api/api/v1/links"
	sessionAPI "beelinks-api/api/v1/sessions"
	usersAPI "beelinks-api/api/v1/users"
	"beelinks-api/internal/analytics"
	internalAuth "beelinks-api/internal/auth"
	"beelinks-api/internal/avatar"
	jwt "beelinks-api/internal/jwt"
	"beelinks-api/internal/link"
	log "beelinks-api/internal/logger"
	"beelinks-api/internal/middleware"
	"beelinks-api/internal/profile"
	"beelinks-api/internal/qrcode"
	"beelinks-api/internal/repair"
	"beelinks-api/internal/session"
	"beelinks-api/pkg/config"
	"beelinks-api/pkg/db"
	"beelinks-api/pkg/redis"
	"beelinks-api/pkg/s3"

	"github.com/getsentry/sentry-go"
	sentrylogrus "github.com/getsentry/sentry-go/logrus"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/csrf"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Package-level services to avoid recreation
var (
	jwtService       *jwt.JWTService
	sessionService   *session.Service
	profileService   *profile.Service
	linkService      *link.Service
	analyticsService *analytics.Service
	avatarService    *avatar.Service
	qrService        *qrcode.Service
	repairService    *repair.Service
	authService      *internalAuth.Service
	authBroker       *internalAuth.Broker
	logger           *logrus.Logger
	customLogger     *log.Logger
)

// InitServices initializes all required services
func InitServices(database *gorm.DB, redisClient *redis.Client, appConfig *config.AppConfig) error {
	// Initialize logger with Sentry hook
	logger = logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	// Setup Sentry hook for logrus if DSN is provided
	sentryDSN := os.Getenv("SENTRY_DSN")
	if sentryDSN != "" {
		err := sentry.Init(sentry.ClientOptions{
			Dsn:         sentryDSN,
			Environment: os.Getenv("APP_ENV"),
			Release:     os.Getenv("APP_VERSION"),
		})
		if err != nil {
			return errors.New("failed to initialize Sentry: " + err.Error())
		}

		// Add Sentry hook to logrus
		levels := []logrus.Level{logrus.ErrorLevel, logrus.FatalLevel, logrus.PanicLevel}
		hook, err := sentrylogrus.New(levels, sentry.ClientOptions{
			Dsn: sentryDSN,
		})
		if err != nil {
			logger.WithError(err).Error("Failed to initialize Sentry hook")
		} else {
			logger.AddHook(hook)
			logger.Info("Sentry integration initialized successfully")
		}
	}

	// Initialize custom logger wrapper
	customLogger = log.New(logger)

	// Initialize JWT service
	var err error
	jwtService, err = jwt.NewJWTService(
		appConfig.JWT.Secret,
		appConfig.JWT.Issuer,
		appConfig.JWT.AccessExpiry,
		appConfig.JWT.RefreshExpiry,
	)
	if err != nil {
		logger.WithError(err).Error("Failed to initialize JWT service")
		return err
	}

	// Initialize session repository and service
	sessionRepo := session.NewRepository(database)
	sessionService = session.NewService(sessionRepo, redisClient, customLogger)

	// Initialize profile repository and service
	profileRepo := profile.NewRepository(database)
	profileService = profile.NewService(profileRepo, redisClient, customLogger)

	// Initialize analytics repository and service
	analyticsRepo := analytics.NewRepository(database)
	analyticsService = analytics.NewService(analyticsRepo, customLogger)

	// Initialize avatar repository and service on blob storage
	s3Client := s3.GetS3Client()
	avatarRepo := avatar.NewRepository(database)
	avatarService = avatar.NewService(avatarRepo, s3Client, customLogger)

	// Initialize QR code service
	qrService = qrcode.NewService(database, s3Client, customLogger)

	// Initialize the repair service, optionally on its elevated connection
	repairService, err = repair.NewService(database, appConfig.Repair, profileService, customLogger)
	if err != nil {
		logger.WithError(err).Error("Failed to initialize repair service")
		return err
	}

	// Initialize link repository and service. Link inserts that hit a
	// missing owner row go through the repair service before one retry.
	linkRepo := link.NewRepository(database)
	linkService = link.NewService(linkRepo, redisClient, func(ctx context.Context, userID string) error {
		_, repairErr := repairService.SyncCurrentUser(ctx, userID)
		return repairErr
	}, customLogger)

	// Initialize auth service with its event broker
	authBroker = internalAuth.NewBroker()
	authRepo := internalAuth.NewRepository(database)
	authService = internalAuth.NewService(authRepo, profileService, sessionService, jwtService, authBroker, customLogger)

	logger.Info("All services initialized successfully")
	return nil
}

// CSRFMiddleware creates a middleware for CSRF protection
func CSRFMiddleware(secret string, secure bool) gin.HandlerFunc {
	csrfMiddleware := csrf.Protect(
		[]byte(secret),
		csrf.Secure(secure),
		csrf.HttpOnly(true),
		csrf.Path("/"),
		csrf.CookieName("csrfToken"),
		csrf.MaxAge(3600), // 1 hour
		csrf.SameSite(csrf.SameSiteStrictMode),
		csrf.Domain("localhost"),
		csrf.ErrorHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Ensure CORS headers are set even for CSRF errors
			c, _ := gin.CreateTestContext(w)
			c.Request = r

			// Log CSRF error for monitoring
			logger.WithFields(logrus.Fields{
				"remoteIP":  c.ClientIP(),
				"path":      r.URL.Path,
				"method":    r.Method,
				"userAgent": r.UserAgent(),
			}).Error("CSRF token mismatch")

			c.IndentedJSON(http.StatusForbidden, gin.H{"error": "CSRF token mismatch"})
			c.Abort()
		})),
	)

	return func(c *gin.Context) {
		csrfMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			c.Request = r
			c.Next()
		})).ServeHTTP(c.Writer, c.Request)
		c.Abort()
	}
}

// SetupEngine creates a new Gin engine with default middleware
func SetupEngine() *gin.Engine {
	return gin.Default()
}

// SetupCsrfRoutes configures CSRF-related routes
func SetupCsrfRoutes(r *gin.Engine) {
	// Create API v1 group
	v1 := r.Group("/api/v1")

	// Create csrf handler
	csrfHandler := csrfAPI.NewHandler(customLogger)

	csrfAPI.RegisterPublicRoutes(v1, csrfHandler)
}

// SetupAuthRoutes configures auth-related routes
func SetupAuthRoutes(r *gin.Engine) {
	// Create API v1 group
	v1 := r.Group("/api/v1")

	// Create auth handler using the global services
	authHandler := authAPI.NewHandler(authService, jwtService, sessionService, customLogger)

	// Register public auth routes
	authAPI.RegisterPublicRoutes(v1, authHandler)

	// Create authenticated route group
	authGroup := v1.Group("/auth")
	authGroup.Use(middleware.JWTAuthMiddleware(jwtService, sessionService))
	authAPI.RegisterProtectedRoutes(authGroup, authHandler)
}

// SetupUsersRoutes configures profile-related routes
func SetupUsersRoutes(r *gin.Engine, appConfig *config.AppConfig) {
	// Create API v1 group
	v1 := r.Group("/api/v1")

	// Create users handler using the global services
	usersHandler := usersAPI.NewHandler(
		profileService,
		linkService,
		analyticsService,
		qrService,
		appConfig.PublicBaseURL,
		customLogger,
	)

	// Public profile routes run the optional middleware so logged-in
	// viewers get attributed on view events
	publicGroup := v1.Group("")
	publicGroup.Use(middleware.OptionalJWTAuthMiddleware(jwtService))
	usersAPI.RegisterPublicRoutes(publicGroup, usersHandler)

	// Protected routes require a full session
	protectedGroup := v1.Group("")
	protectedGroup.Use(middleware.JWTAuthMiddleware(jwtService, sessionService))
	usersAPI.RegisterProtectedRoutes(protectedGroup, usersHandler)
}

// SetupLinksRoutes configures link-related routes
func SetupLinksRoutes(r *gin.Engine) {
	// Create API v1 group
	v1 := r.Group("/api/v1")

	// Create links handler using the global services
	linksHandler := linksAPI.NewHandler(linkService, analyticsService, customLogger)

	// Click tracking is public but attributes logged-in viewers
	publicGroup := v1.Group("")
	publicGroup.Use(middleware.OptionalJWTAuthMiddleware(jwtService))
	linksAPI.RegisterPublicRoutes(publicGroup, linksHandler)

	// Link management requires a session
	protectedGroup := v1.Group("")
	protectedGroup.Use(middleware.JWTAuthMiddleware(jwtService, sessionService))
	linksAPI.RegisterProtectedRoutes(protectedGroup, linksHandler)
}

// SetupAnalyticsRoutes configures analytics routes
func SetupAnalyticsRoutes(r *gin.Engine) {
	// Create API v1 group
	v1 := r.Group("/api/v1")

	// Create analytics handler using the global service
	analyticsHandler := analyticsAPI.NewHandler(analyticsService, customLogger)

	protectedGroup := v1.Group("")
	protectedGroup.Use(middleware.JWTAuthMiddleware(jwtService, sessionService))
	analyticsAPI.RegisterProtectedRoutes(protectedGroup, analyticsHandler)
}

// SetupAvatarsRoutes configures avatar routes
func SetupAvatarsRoutes(r *gin.Engine) {
	// Create API v1 group
	v1 := r.Group("/api/v1")

	// Create avatars handler using the global service
	avatarsHandler := avatarsAPI.NewHandler(avatarService, customLogger)

	protectedGroup := v1.Group("")
	protectedGroup.Use(middleware.JWTAuthMiddleware(jwtService, sessionService))
	avatarsAPI.RegisterProtectedRoutes(protectedGroup, avatarsHandler)
}

// SetupDebugRoutes configures the profile diagnostic routes
func SetupDebugRoutes(r *gin.Engine) {
	// Create API v1 group
	v1 := r.Group("/api/v1")

	// Create debug handler using the global service
	debugHandler := debugAPI.NewHandler(repairService, customLogger)

	protectedGroup := v1.Group("")
	protectedGroup.Use(middleware.JWTAuthMiddleware(jwtService, sessionService))
	debugAPI.RegisterProtectedRoutes(protectedGroup, debugHandler)
}

// SetupSessionsRoutes configures session management routes
func SetupSessionsRoutes(r *gin.Engine) {
	// Create API v1 group
	v1 := r.Group("/api/v1")

	// Create session handler using the global service
	sessionHandler := sessionAPI.NewHandler(sessionService, customLogger)

	// Create session route group with auth middleware
	sessionGroup := v1.Group("/sessions")
	sessionGroup.Use(middleware.JWTAuthMiddleware(jwtService, sessionService))
	sessionAPI.RegisterProtectedRoutes(sessionGroup, sessionHandler)
}

// SetupHealthRoutes configures the health endpoint
func SetupHealthRoutes(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		if err := db.Health(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}

// SetupCSRFProtection configures CSRF protection
func SetupCSRFProtection(r *gin.Engine) error {
	csrfSecret := os.Getenv("CSRF_SECRET")
	if csrfSecret == "" {
		logger.Error("CSRF_SECRET environment variable is required")
		return errors.New("CSRF_SECRET environment variable is required")
	}

	csrfSecureStr := os.Getenv("CSRF_SECURE")
	csrfSecure, _ := strconv.ParseBool(csrfSecureStr)

	r.Use(CSRFMiddleware(csrfSecret, csrfSecure))

	return nil
}

// SetupCORS configures CORS settings
func SetupCORS(r *gin.Engine, appConfig *config.AppConfig) {
	// Trusted Proxies
	r.SetTrustedProxies([]string{appConfig.PublicBaseURL})

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{appConfig.PublicBaseURL}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization", "X-CSRF-TOKEN"}
	corsConfig.AllowCredentials = true
	corsConfig.MaxAge = 24 * time.Hour

	r.Use(cors.New(corsConfig))
}

// Broker returns the auth event broker, available after InitServices
func Broker() *internalAuth.Broker {
	return authBroker
}

// SetupRouter creates and configures the main router with all routes
func SetupRouter(database *gorm.DB, appConfig *config.AppConfig) (*gin.Engine, error) {
	// Set global database reference
	db.DB = database

	// Get Redis client
	redisClient := redis.GetDefault()

	// Initialize all services
	if err := InitServices(database, redisClient, appConfig); err != nil {
		// This error is already logged in InitServices
		return nil, err
	}

	// Create and configure Gin router
	r := SetupEngine()

	// Setup CORS
	SetupCORS(r, appConfig)

	// Setup CSRF protection
	if err := SetupCSRFProtection(r); err != nil {
		logger.WithError(err).Error("Failed to setup CSRF protection")
		return nil, err
	}

	// Configure routes
	SetupHealthRoutes(r)
	SetupCsrfRoutes(r)
	SetupAuthRoutes(r)
	SetupUsersRoutes(r, appConfig)
	SetupLinksRoutes(r)
	SetupAnalyticsRoutes(r)
	SetupAvatarsRoutes(r)
	SetupDebugRoutes(r)
	SetupSessionsRoutes(r)

	logger.Info("Router setup completed successfully")
	return r, nil
}
