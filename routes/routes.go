// File: /routes/routes.go
package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"sees-api/config"
	"sees-api/controllers"
	"sees-api/middleware"
	"sees-api/models"
	"sees-api/repositories"
	"sees-api/services"
)

func SetupRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, emailService *services.EmailService) {
	// Services
	eventService := services.NewEventService(db)
	paymentService := services.NewPaymentService(db)
	analyticsRepo := repositories.NewAnalyticsRepository(db)

	// Controllers
	authController := controllers.NewAuthController(db, cfg.JWTSecret)
	eventController := controllers.NewEventController(db, eventService, emailService)
	paymentController := controllers.NewPaymentController(db, paymentService, emailService)
	adminController := controllers.NewAdminController(db, analyticsRepo)
	promoterController := controllers.NewPromoterController(db)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
			"status":  "healthy",
		})
	})

	api := r.Group("/api")

	// Auth routes (public)
	auth := api.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
	}

	// Event browsing (public)
	api.GET("/events", eventController.GetEvents)
	api.GET("/events/:id", eventController.GetEvent)

	// Protected routes
	protected := api.Group("/")
	protected.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	{
		// Profile and recommendations
		profile := protected.Group("/auth")
		{
			profile.GET("/profile", authController.GetProfile)
			profile.PUT("/profile", authController.UpdateProfile)
			profile.POST("/recommendations", authController.Recommendations)
		}

		// Event lifecycle and registration
		events := protected.Group("/events")
		{
			events.POST("", eventController.CreateEvent)
			events.PUT("/:id", eventController.UpdateEvent)
			events.DELETE("/:id", eventController.DeleteEvent)
			events.POST("/:id/register", eventController.RegisterForEvent)
			events.DELETE("/:id/register", eventController.CancelRegistration)
			events.DELETE("/:id/attendees/:attendeeId", eventController.RemoveAttendee)
			events.GET("/registered", eventController.GetRegisteredEvents)
		}

		// Payments
		payments := protected.Group("/payments")
		{
			payments.POST("/event-registration/:eventId", paymentController.EventRegistrationPayment)
			payments.POST("/event-promotion/:eventId",
				middleware.RequireRoles(models.RolePromoter),
				paymentController.EventPromotionPayment)
		}

		// Admin dashboard
		admin := protected.Group("/admin")
		admin.Use(middleware.RequireRoles(models.RoleAdmin))
		{
			admin.GET("/events", adminController.GetEvents)
			admin.GET("/stats", adminController.GetStats)
			admin.GET("/analytics/summary", adminController.AnalyticsSummary)
			admin.GET("/analytics/attendance", adminController.AnalyticsAttendance)
			admin.GET("/analytics/revenue", adminController.AnalyticsRevenue)
			admin.GET("/analytics/promotions", adminController.AnalyticsPromotions)
		}

		// Promoter dashboard
		promoter := protected.Group("/promoter")
		promoter.Use(middleware.RequireRoles(models.RolePromoter))
		{
			promoter.GET("/promotions", promoterController.GetPromotions)
			promoter.GET("/available-events", promoterController.GetAvailableEvents)
			promoter.GET("/stats", promoterController.GetStats)
		}
	}
}
