// File: salonhub/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"salonhub/config"
	"salonhub/cron"
	"salonhub/database"
	availabilityRepo "salonhub/database/repository/availability"
	bookingRepoPkg "salonhub/database/repository/booking"
	businessRepoPkg "salonhub/database/repository/business"
	customerRepoPkg "salonhub/database/repository/customer"
	"salonhub/handlers"
	"salonhub/middleware"
	"salonhub/routes"
	"salonhub/services/booking"
	"salonhub/services/business"
	"salonhub/services/customer"
	"salonhub/services/notification"
	"salonhub/services/tasks"
	"salonhub/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitRedis()
	utils.FirebaseInit()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	availRepo := availabilityRepo.NewMongoAvailabilityRepo()
	bookingRepo := bookingRepoPkg.NewMongoBookingRepo()
	businessRepo := businessRepoPkg.NewMongoBusinessRepo()
	customerRepo := customerRepoPkg.NewMongoCustomerRepo()

	// services.
	customerService := &customer.DefaultCustomerService{
		Repo: customerRepo,
	}
	businessService := &business.DefaultBusinessService{
		Repo:         businessRepo,
		Availability: availRepo,
	}

	notificationService, err := notification.NewFCMNotificationService(customerRepo, businessRepo)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize notification service: %v", err)
	}

	reminderScheduler := tasks.NewAsynqReminderScheduler()
	defer reminderScheduler.Close()

	bookingService := &booking.DefaultBookingService{
		Availability:        availRepo,
		Bookings:            bookingRepo,
		Businesses:          businessRepo,
		Customers:           customerRepo,
		Notifier:            notificationService,
		Reminders:           reminderScheduler,
		Logger:              logger,
		ReviewReminderDelay: time.Duration(config.AppConfig.ReviewReminderDelayMin) * time.Minute,
	}

	// Background worker delivering the durable review reminders.
	cron.InitReminderWorker(notificationService, bookingRepo)

	// Register routes with the assembled handlers.
	routes.RegisterRoutes(router, &routes.Handlers{
		CustomerRepo: customerRepo,
		BusinessRepo: businessRepo,
		Booking:      handlers.NewBookingHandler(bookingService, logger),
		Customer:     handlers.NewCustomerHandler(customerService),
		Business:     handlers.NewBusinessHandler(businessService),
		Admin:        handlers.NewAdminHandler(customerService, businessService),
	})

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
