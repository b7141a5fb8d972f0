package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"time"

	"mboma-backend/internal/archive"
	"mboma-backend/internal/auth"
	"mboma-backend/internal/cache"
	"mboma-backend/internal/config"
	"mboma-backend/internal/database"
	"mboma-backend/internal/db"
	"mboma-backend/internal/handlers"
	"mboma-backend/internal/health"
	h "mboma-backend/internal/http"
	"mboma-backend/internal/middleware"
	"mboma-backend/internal/monitoring"
	"mboma-backend/internal/receipts"
	"mboma-backend/internal/repositories"
	"mboma-backend/internal/services"
)

func main() {
	port := flag.Int("port", 0, "Server port (overrides config)")
	flag.Parse()

	cfg := config.Load()
	if *port != 0 {
		cfg.Server.Port = *port
	}

	pool := db.Connect(cfg)
	defer pool.Close()

	// Redis cache is optional; catalog reads fall back to Postgres
	if err := cache.Init(); err != nil {
		log.Printf("[Redis] Cache unavailable: %v (catalog reads go straight to Postgres)", err)
	} else {
		log.Println("[Redis] Cache connected successfully")
	}

	migrator := database.NewMigrator(pool)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := migrator.RunMigrations(ctx); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	healthChecker := health.NewHealthChecker(pool, cache.GetClient())

	// Monitoring dashboard API on its own port
	go monitoring.NewMonitoringServer(pool, cfg.Monitoring.Port).Start()

	jwtManager := auth.NewJWTManager(cfg)

	// Repositories
	userRepo := repositories.NewUserRepository(pool)
	locationRepo := repositories.NewLocationRepository(pool)
	houseRepo := repositories.NewHouseRepository(pool)
	bookingRepo := repositories.NewBookingRepository(pool)
	paymentRepo := repositories.NewPaymentRepository(pool)

	// Receipt artifacts, optionally archived to object storage
	archiver, err := archive.NewUploader(ctx, cfg)
	if err != nil {
		log.Printf("[Archive] Disabled: %v", err)
		archiver = nil
	}
	receiptGen, err := receipts.NewGenerator(cfg.Receipts.Dir, archiver)
	if err != nil {
		log.Fatalf("Failed to initialize receipts: %v", err)
	}

	// Services
	userService := services.NewUserService(userRepo)
	catalogService := services.NewCatalogService(locationRepo, houseRepo)
	bookingService := services.NewBookingService(bookingRepo, houseRepo)
	paymentService := services.NewPaymentService(paymentRepo, bookingRepo, houseRepo, userRepo, receiptGen)

	// Handlers
	authHandler := handlers.NewAuthHandler(userService, jwtManager)
	catalogHandler := handlers.NewCatalogHandler(catalogService)
	bookingHandler := handlers.NewBookingHandler(bookingService)
	paymentHandler := handlers.NewPaymentHandler(paymentService)
	healthHandler := handlers.NewHealthHandler(healthChecker)

	authMiddleware := middleware.NewAuthMiddleware(jwtManager)
	corsMiddleware := middleware.NewCORS(cfg)

	router := h.NewRouter(
		authHandler,
		catalogHandler,
		bookingHandler,
		paymentHandler,
		healthHandler,
		authMiddleware,
	)

	handler := middleware.PanicRecovery(middleware.MetricsMiddleware(corsMiddleware(router)))

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("M-Boma housing backend listening on %s", addr)
	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
