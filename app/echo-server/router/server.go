package router

import (
	"net/http"
	"time"

	"shiftHire/business/analytics"
	"shiftHire/business/application"
	"shiftHire/business/auth"
	"shiftHire/business/job"
	"shiftHire/business/otp"
	"shiftHire/business/payments"
	"shiftHire/business/recommendation"
	"shiftHire/business/restaurant"
	"shiftHire/business/review"
	"shiftHire/business/worker"
	"shiftHire/internal/middleware"
	psqlRepo "shiftHire/internal/repository/postgres"
	"shiftHire/internal/rest"
	"shiftHire/pkg/metrics"
	"shiftHire/pkg/utils"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"
)

// Dependencies are the process-level resources the HTTP server is built from.
type Dependencies struct {
	DB          *gorm.DB
	Tokens      *utils.JWTManager
	OTPStore    otp.OTPStore
	OTPTTL      time.Duration
	Notifier    otp.NotificationRepository
	LLM         recommendation.LLMClient
	Gateway     payments.PaymentGateway
	Currency    string
	Metrics     *metrics.Collector
	Gatherer    prometheus.Gatherer
	CORSOrigins []string
}

// NewServer wires repositories, services and handlers into an echo instance.
func NewServer(deps Dependencies) *echo.Echo {
	validate := validator.New()

	// Init repo
	userRepo := psqlRepo.NewUserRepository(deps.DB)
	workerProfileRepo := psqlRepo.NewWorkerProfileRepository(deps.DB)
	restaurantProfileRepo := psqlRepo.NewRestaurantProfileRepository(deps.DB)
	jobRepo := psqlRepo.NewJobRepository(deps.DB)
	applicationRepo := psqlRepo.NewApplicationRepository(deps.DB)
	reviewRepo := psqlRepo.NewReviewRepository(deps.DB)
	analyticsRepo := psqlRepo.NewAnalyticsRepository(deps.DB)
	paymentsRepo := psqlRepo.NewPaymentsRepository(deps.DB)

	// Init service
	authService := auth.NewAuthService(userRepo, validate, deps.Tokens)
	otpService := otp.NewOTPService(deps.OTPStore, deps.Notifier, deps.OTPTTL)
	workerService := worker.NewWorkerService(workerProfileRepo)
	restaurantService := restaurant.NewRestaurantService(restaurantProfileRepo)
	jobService := job.NewJobService(jobRepo, restaurantProfileRepo)
	applicationService := application.NewApplicationService(applicationRepo, jobRepo, userRepo, workerProfileRepo)
	reviewService := review.NewReviewService(reviewRepo, userRepo)
	analyticsService := analytics.NewAnalyticsService(analyticsRepo)
	recommendationService := recommendation.NewRecommendationService(workerProfileRepo, jobRepo, deps.LLM, deps.Metrics)
	paymentsService := payments.NewPaymentsService(paymentsRepo, deps.Gateway, deps.Metrics, deps.Currency)

	// Init handler
	authHandler := rest.NewAuthHandler(authService, otpService)
	profileHandler := rest.NewProfileHandler(workerService, restaurantService)
	jobHandler := rest.NewJobHandler(jobService)
	applicationHandler := rest.NewApplicationHandler(applicationService)
	reviewHandler := rest.NewReviewHandler(reviewService)
	insightsHandler := rest.NewInsightsHandler(analyticsService, recommendationService)
	paymentsHandler := rest.NewPaymentsHandler(paymentsService)

	// Init echo
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// HTTP error handler
	e.HTTPErrorHandler = middleware.ErrorHandler

	// Global middleware
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: deps.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization, "Stripe-Signature"},
	}))
	e.Use(middleware.AccessLog())
	e.Use(deps.Metrics.Middleware())

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, fres.Response.StatusOK("ok"))
	})
	e.GET("/metrics", echo.WrapHandler(metrics.Handler(deps.Gatherer)))

	authRequired := middleware.AuthMiddleware(authService)

	// Setup routes
	api := e.Group("/api/v1")
	SetupAuthRoutes(api, authHandler)
	SetupWorkerRoutes(api, profileHandler, applicationHandler, insightsHandler, authRequired)
	SetupRestaurantRoutes(api, profileHandler, jobHandler, applicationHandler, insightsHandler, authRequired)
	SetupJobRoutes(api, jobHandler, authRequired)
	SetupApplicationRoutes(api, applicationHandler, authRequired)
	SetupReviewRoutes(api, reviewHandler, authRequired)
	SetPaymentsRoutes(api, paymentsHandler, authRequired)
	SetWebhookHandler(api, paymentsHandler)

	return e
}
