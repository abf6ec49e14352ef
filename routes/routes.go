package routes

import (
	"time"

	"homeserve/config"
	"homeserve/handlers"
	"homeserve/middleware"
	"homeserve/models"
	"homeserve/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

var staffRoles = []models.Role{models.RoleAdmin, models.RoleManager}

// RegisterAuthRoutes registers account endpoints.
func RegisterAuthRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/auth")
	{
		api.POST("/register", hb.RegisterUserHandler)
		api.POST("/login", hb.LoginHandler)

		// Protected routes (Require Authentication)
		api.GET("/me", middleware.JWTAuthMiddleware(hb.Accounts, hb.AuthCache), hb.MeHandler)
	}
}

// RegisterCatalogRoutes registers the public service and add-on listings.
func RegisterCatalogRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/api/services", hb.GetAvailableServices)
	r.GET("/api/services/:id", hb.GetServiceByID)
	r.GET("/api/addons", hb.GetAddons)
}

// RegisterBookingRoutes sets up the endpoints for the booking engine.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	bookingGroup := r.Group("/api/bookings")
	{
		bookingGroup.Use(middleware.JWTAuthMiddleware(hb.Accounts, hb.AuthCache))
		bookingGroup.POST("", middleware.RequireRoles(models.RoleUser, models.RoleAdmin, models.RoleManager), hb.CreateBooking)
		bookingGroup.POST("/quote", hb.QuoteBooking)
		bookingGroup.GET("/availability", hb.CheckAvailability)
		bookingGroup.GET("/available-providers", hb.AvailableProviders)
		bookingGroup.GET("/my", middleware.RequireRoles(models.RoleUser), hb.ListMyBookings)
		bookingGroup.GET("/assigned", middleware.RequireRoles(models.ProviderRoles...), hb.ListAssignedBookings)
		bookingGroup.GET("/:id", hb.GetBooking)
		bookingGroup.PATCH("/:id/status", hb.UpdateBookingStatus)
		bookingGroup.PUT("/:id/cancel", hb.CancelBooking)
	}
}

// RegisterReviewRoutes sets up review endpoints. Reads are public; a token,
// when sent, lets staff and authors see unpublished reviews.
func RegisterReviewRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	reviewGroup := r.Group("/api/reviews")
	{
		optional := middleware.OptionalAuth(hb.Accounts, hb.AuthCache)
		reviewGroup.GET("", optional, hb.ListReviews)
		reviewGroup.GET("/provider/:providerId", optional, hb.ListProviderReviews)
		reviewGroup.GET("/service/:serviceId", optional, hb.ListServiceReviews)
		reviewGroup.GET("/:id", optional, hb.GetReview)

		auth := middleware.JWTAuthMiddleware(hb.Accounts, hb.AuthCache)
		reviewGroup.POST("", auth, middleware.RequireRoles(models.RoleUser), hb.CreateReview)
		reviewGroup.PUT("/:id", auth, hb.UpdateReview)
		reviewGroup.DELETE("/:id", auth, hb.DeleteReview)
		reviewGroup.POST("/:id/report", auth, hb.ReportReview)
		reviewGroup.PUT("/:id/moderate", auth, middleware.RequireRoles(models.RoleAdmin), hb.ModerateReview)
	}
}

// RegisterAdminRoutes sets up endpoints for admin and manager operations.
func RegisterAdminRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	adminGroup := r.Group("/api/admin")
	{
		adminGroup.Use(middleware.JWTAuthMiddleware(hb.Accounts, hb.AuthCache))
		adminGroup.Use(middleware.RequireRoles(staffRoles...))

		adminGroup.GET("/bookings", hb.ListAllBookings)
		adminGroup.GET("/bookings/stats", hb.BookingStats)
		adminGroup.PATCH("/bookings/:id", hb.UpdateBooking)
		adminGroup.PATCH("/bookings/:id/payment", hb.SetPaymentStatus)
		adminGroup.DELETE("/bookings/:id", middleware.RequireRoles(models.RoleAdmin), hb.DeleteBooking)

		adminGroup.GET("/services", hb.GetAvailableServices)
		adminGroup.POST("/services", hb.CreateService)
		adminGroup.PATCH("/services/:id/active", hb.SetServiceActive)
		adminGroup.PUT("/services/:id", hb.UpdateService)
		adminGroup.DELETE("/services/:id", middleware.RequireRoles(models.RoleAdmin), hb.DeleteService)
		adminGroup.GET("/addons", hb.GetAddons)
		adminGroup.POST("/addons", hb.CreateAddon)
		adminGroup.PATCH("/addons/:id/active", hb.SetAddonActive)
		adminGroup.PUT("/addons/:id", hb.UpdateAddon)
		adminGroup.DELETE("/addons/:id", middleware.RequireRoles(models.RoleAdmin), hb.DeleteAddon)

		adminGroup.GET("/reviews", hb.ListReviews)

		adminGroup.GET("/users", hb.ListUsers)
		adminGroup.POST("/users", hb.CreateAccount)
		adminGroup.PATCH("/users/:id/active", hb.SetUserActive)
		adminGroup.DELETE("/users/:id", middleware.RequireRoles(models.RoleAdmin), hb.DeleteUser)
	}
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
// metrics may be nil.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle, metrics *utils.Metrics) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     config.AllowedOrigins(),
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", utils.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", utils.RequestIDHeader},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))
	if metrics != nil {
		r.Use(metrics.Middleware())
		r.GET("/metrics", metrics.Handler())
	}
	r.GET("/health", hb.Health)

	RegisterAuthRoutes(r, hb)
	RegisterCatalogRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
	RegisterReviewRoutes(r, hb)
	RegisterAdminRoutes(r, hb)
}
