package routes

import (
	"net/http"
	"time"

	businessRepo "salonhub/database/repository/business"
	customerRepo "salonhub/database/repository/customer"
	"salonhub/handlers"
	"salonhub/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Handlers bundles everything route registration needs.
type Handlers struct {
	CustomerRepo customerRepo.CustomerRepository
	BusinessRepo businessRepo.BusinessRepository

	Booking  *handlers.BookingHandler
	Customer *handlers.CustomerHandler
	Business *handlers.BusinessHandler
	Admin    *handlers.AdminHandler
}

// RegisterRoutes wires all endpoints onto the router.
func RegisterRoutes(r *gin.Engine, h *Handlers) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	registerHealthRoute(r)
	registerCustomerRoutes(r, h)
	registerSalonRoutes(r, h)
	registerBookingRoutes(r, h)
	registerAdminRoutes(r, h)
}

func registerHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}

func registerCustomerRoutes(r *gin.Engine, h *Handlers) {
	api := r.Group("/api/customers")
	{
		api.POST("/register", h.Customer.Register)
		api.POST("/login", h.Customer.Login)

		// Protected routes (Require Authentication)
		api.Use(middleware.JWTAuthCustomerMiddleware(h.CustomerRepo))
		api.GET("/me", h.Customer.Me)
		api.PUT("/me", h.Customer.Update)
		api.DELETE("/me", h.Customer.Delete)
		api.PUT("/me/fcm-token", h.Customer.UpdateFCMToken)
		api.DELETE("/me/token", h.Customer.RevokeToken)
	}
}

func registerSalonRoutes(r *gin.Engine, h *Handlers) {
	api := r.Group("/api/salons")
	{
		api.POST("/register", h.Business.Register)
		api.POST("/login", h.Business.Login)

		// Public profile and availability views.
		api.GET("/:id", h.Business.GetByID)
		api.GET("/:id/slots", h.Booking.ListSlots)

		// Endpoints that modify salon data require strict authentication.
		protected := api.Group("/me")
		protected.Use(middleware.JWTAuthBusinessMiddleware(h.BusinessRepo))
		protected.PUT("", h.Business.Update)
		protected.DELETE("", h.Business.Delete)
		protected.POST("/services", h.Business.AddService)
		protected.PUT("/services/:serviceID", h.Business.UpdateService)
		protected.DELETE("/services/:serviceID", h.Business.RemoveService)
		protected.PUT("/availability/:date", h.Business.PublishAvailability)
		protected.GET("/bookings", h.Booking.BusinessBookings)
		protected.PATCH("/bookings/:id/status", h.Booking.Transition)
		protected.PUT("/fcm-token", h.Business.UpdateFCMToken)
		protected.DELETE("/token", h.Business.RevokeToken)
	}
}

func registerBookingRoutes(r *gin.Engine, h *Handlers) {
	api := r.Group("/api/bookings")
	{
		api.Use(middleware.JWTAuthCustomerMiddleware(h.CustomerRepo))
		api.POST("", h.Booking.Reserve)
		api.GET("", h.Booking.MyBookings)
		api.GET("/:id", h.Booking.GetBooking)
	}
}

func registerAdminRoutes(r *gin.Engine, h *Handlers) {
	api := r.Group("/api/admin")
	{
		api.Use(middleware.JWTAuthAdminMiddleware(h.CustomerRepo))
		api.GET("/customers", h.Admin.ListCustomers)
		api.GET("/salons", h.Admin.ListBusinesses)
		api.GET("/bookings", h.Booking.AdminList)
		api.PATCH("/bookings/:id/status", h.Booking.AdminTransition)
		api.DELETE("/bookings/:id", h.Booking.AdminDelete)
	}
}
