package router

import (
	"shiftHire/domain"
	"shiftHire/internal/middleware"
	"shiftHire/internal/rest"

	"github.com/labstack/echo/v4"
)

func SetupAuthRoutes(api *echo.Group, handler *rest.AuthHandler) {
	auth := api.Group("/auth")

	auth.POST("/register", handler.Register)
	auth.POST("/login", handler.Login)
	auth.POST("/send-otp", handler.SendOTP)
	auth.POST("/verify-otp", handler.VerifyOTP)
}

func SetupWorkerRoutes(api *echo.Group, profiles *rest.ProfileHandler, applications *rest.ApplicationHandler, insights *rest.InsightsHandler, authRequired echo.MiddlewareFunc) {
	workers := api.Group("/workers", authRequired, middleware.RequireRole(domain.RoleWorker))

	workers.POST("/profile", profiles.CreateWorkerProfile)
	workers.GET("/profile", profiles.GetWorkerProfile)
	workers.PUT("/profile", profiles.UpdateWorkerProfile)
	workers.GET("/applications", applications.ListWorkerApplications)
	workers.GET("/job-recommendations", insights.JobRecommendations)
}

func SetupRestaurantRoutes(api *echo.Group, profiles *rest.ProfileHandler, jobs *rest.JobHandler, applications *rest.ApplicationHandler, insights *rest.InsightsHandler, authRequired echo.MiddlewareFunc) {
	restaurants := api.Group("/restaurants", authRequired, middleware.RequireRole(domain.RoleRestaurant))

	restaurants.POST("/profile", profiles.CreateRestaurantProfile)
	restaurants.GET("/profile", profiles.GetRestaurantProfile)
	restaurants.PUT("/profile", profiles.UpdateRestaurantProfile)
	restaurants.GET("/jobs", jobs.ListRestaurantJobs)
	restaurants.GET("/applications/:job_id", applications.ListJobApplications)
	restaurants.PUT("/applications/:application_id", applications.UpdateStatus)
	restaurants.GET("/analytics", insights.RestaurantAnalytics)
}

func SetupJobRoutes(api *echo.Group, handler *rest.JobHandler, authRequired echo.MiddlewareFunc) {
	jobs := api.Group("/jobs")
	restaurantOnly := middleware.RequireRole(domain.RoleRestaurant)

	jobs.GET("", handler.ListJobs)
	jobs.GET("/:id", handler.GetJob)
	jobs.POST("", handler.CreateJob, authRequired, restaurantOnly)
	jobs.PUT("/:id", handler.UpdateJob, authRequired, restaurantOnly)
}

func SetupApplicationRoutes(api *echo.Group, handler *rest.ApplicationHandler, authRequired echo.MiddlewareFunc) {
	applications := api.Group("/applications", authRequired, middleware.RequireRole(domain.RoleWorker))
	applications.POST("/:job_id", handler.Apply)
}

func SetupReviewRoutes(api *echo.Group, handler *rest.ReviewHandler, authRequired echo.MiddlewareFunc) {
	reviews := api.Group("/reviews")

	reviews.GET("/:restaurant_id", handler.RestaurantReviews)
	reviews.POST("", handler.CreateReview, authRequired, middleware.RequireRole(domain.RoleWorker))
}

func SetPaymentsRoutes(api *echo.Group, handler *rest.PaymentsHandler, authRequired echo.MiddlewareFunc) {
	payments := api.Group("/payments", authRequired)
	payments.POST("/create-checkout", handler.CreateCheckout, middleware.RequireRole(domain.RoleRestaurant))
	payments.GET("/status/:session_id", handler.GetStatus)
}

func SetWebhookHandler(api *echo.Group, handler *rest.PaymentsHandler) {
	webhook := api.Group("/webhook")
	webhook.POST("/stripe", handler.StripeWebhook)
}
