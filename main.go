package main

import (
	"context"
	"log"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"train-booking/cart"
	"train-booking/config"
	"train-booking/database"
	"train-booking/handlers"
	"train-booking/notify"
	"train-booking/scheduler"
	"train-booking/services"
)

func main() {
	// Load configuration
	cfg := config.Load()
	log.Printf("Starting Train Booking System")

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()

	if err := database.RunMigrations(database.GetDB()); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	seed := cfg.GeneratorSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	// Stores and in-memory registries
	db := database.GetDB()
	tripStore := database.NewPostgresTripStore(db)
	ticketStore := database.NewPostgresTicketStore(db)
	customerStore := database.NewPostgresCustomerStore(db)
	promotionStore := database.NewPostgresPromotionStore(db)

	trips := services.NewTripRegistry()
	customers := services.NewCustomerRegistry()

	if err := restoreState(trips, customers, tripStore, ticketStore, customerStore); err != nil {
		log.Fatalf("Failed to restore persisted state: %v", err)
	}

	// Fresh database: generate the initial timetable
	generator := services.NewTripGenerator(trips, tripStore, rng)
	if trips.Len() == 0 {
		if err := generator.GenerateHorizon(time.Now(), cfg.GeneratorDaysAhead); err != nil {
			log.Fatalf("Failed to generate timetable: %v", err)
		}
	}

	// Notification dispatch
	dispatcher := notify.NewDispatcher(notify.LogSender{}, 256)
	dispatcher.Start()
	defer dispatcher.Stop()

	// Services
	tripService := services.NewTripService(trips, tripStore)
	bookingService := services.NewBookingService(trips, customers, ticketStore, dispatcher, time.Now)
	customerService := services.NewCustomerService(customers, customerStore)
	promotionService := services.NewPromotionService(promotionStore, tripStore, trips, customers, dispatcher)
	if promos, err := promotionStore.LoadPromotions(); err != nil {
		log.Fatalf("Failed to load promotions: %v", err)
	} else {
		for _, p := range promos {
			promotionService.Restore(p)
		}
	}

	carts := cart.NewManager(time.Duration(cfg.CartTTLMinutes)*time.Minute, time.Now)

	// Background jobs
	jobs := scheduler.New(carts, generator, cfg.GeneratorDaysAhead)
	if err := jobs.Start(); err != nil {
		log.Fatalf("Failed to start scheduler: %v", err)
	}
	defer jobs.Stop()

	// Setup Gin router
	router := setupRouter(tripService, bookingService, customerService, promotionService, carts)

	// Create HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: router,
	}

	// Start server in goroutine
	go func() {
		log.Printf("Server starting on port %s", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	// Graceful shutdown with 5 second timeout
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}

// restoreState rehydrates trips, customers and their ticket ledgers from the
// database into the in-memory registries.
func restoreState(trips *services.TripRegistry, customers *services.CustomerRegistry,
	tripStore *database.PostgresTripStore, ticketStore *database.PostgresTicketStore,
	customerStore *database.PostgresCustomerStore) error {

	persisted, err := tripStore.LoadTrips()
	if err != nil {
		return err
	}
	for _, t := range persisted {
		trips.Put(t)
	}

	accounts, err := customerStore.LoadCustomers()
	if err != nil {
		return err
	}
	for _, c := range accounts {
		customers.Put(c)
	}

	ledgers, err := ticketStore.LoadTickets(trips.Get)
	if err != nil {
		return err
	}
	for email, tickets := range ledgers {
		c, ok := customers.Get(email)
		if !ok {
			log.Printf("Skipping %d ticket(s) of unknown customer %s", len(tickets), email)
			continue
		}
		if err := c.AddTickets(tickets); err != nil {
			return err
		}
	}

	log.Printf("Restored %d trip(s), %d customer(s)", len(persisted), len(accounts))
	return nil
}

func setupRouter(tripService *services.TripService, bookingService *services.BookingService,
	customerService *services.CustomerService, promotionService *services.PromotionService,
	carts *cart.Manager) *gin.Engine {

	// Set Gin to release mode in production
	if os.Getenv("GIN_MODE") != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()

	// CORS configuration
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	tripHandler := &handlers.TripHandler{Trips: tripService}
	bookingHandler := &handlers.BookingHandler{Bookings: bookingService}
	adminHandler := &handlers.AdminHandler{Trips: tripService}
	customerHandler := &handlers.CustomerHandler{Customers: customerService}
	promotionHandler := &handlers.PromotionHandler{Promotions: promotionService}
	cartHandler := &handlers.CartHandler{Carts: carts, Bookings: bookingService}

	// API routes
	api := router.Group("/api")
	{
		// Trip search
		api.POST("/search", tripHandler.Search)
		api.GET("/trips/:id", tripHandler.Get)

		// Reservations
		api.POST("/reservations", bookingHandler.Reserve)
		api.POST("/reservations/batch", bookingHandler.ReserveBatch)
		api.DELETE("/tickets/:id", bookingHandler.Cancel)

		// Customers
		api.POST("/customers", customerHandler.Register)
		api.GET("/customers/:email", customerHandler.Get)

		// Admin trip mutations
		api.POST("/admin/trips/:id/delay", adminHandler.Delay)
		api.POST("/admin/trips/:id/cancel", adminHandler.Cancel)
		api.POST("/admin/trips/:id/platform", adminHandler.ChangePlatform)
		api.POST("/admin/trips/:id/reschedule", adminHandler.Reschedule)

		// Promotions
		api.POST("/promotions", promotionHandler.Create)
		api.POST("/promotions/:id/apply/:tripID", promotionHandler.Apply)
		api.POST("/promotions/:id/broadcast", promotionHandler.Broadcast)

		// Shopping carts
		api.POST("/carts", cartHandler.Create)
		api.POST("/carts/:id/items", cartHandler.Add)
		api.POST("/carts/:id/checkout", cartHandler.Checkout)
		api.DELETE("/carts/:id", cartHandler.Abandon)
	}

	// 404 handler
	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Route not found"})
	})

	return router
}
