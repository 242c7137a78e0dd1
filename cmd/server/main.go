package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"time"

	"construct-backend/internal/cache"
	"construct-backend/internal/config"
	"construct-backend/internal/database"
	"construct-backend/internal/db"
	"construct-backend/internal/handlers"
	"construct-backend/internal/health"
	h "construct-backend/internal/http"
	"construct-backend/internal/middleware"
	"construct-backend/internal/monitoring"
	"construct-backend/internal/repositories"
	"construct-backend/internal/services"
	"construct-backend/migrations"
)

func main() {
	port := flag.Int("port", 0, "Server port (overrides config)")
	flag.Parse()

	// Load configuration
	cfg := config.Load()
	if *port != 0 {
		cfg.Server.Port = *port
	}

	// Connect to PostgreSQL
	connectCtx, cancelConnect := context.WithTimeout(context.Background(), 10*time.Second)
	pool, err := db.Connect(connectCtx, cfg)
	cancelConnect()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()
	log.Printf("Connected to database %s at %s:%d", cfg.Database.Name, cfg.Database.Host, cfg.Database.Port)

	// Initialize Redis cache (optional - graceful fallback if unavailable)
	if err := cache.Init(cfg.Redis.Host, cfg.Redis.Port, cfg.Redis.Password); err != nil {
		log.Printf("[Redis] Cache unavailable: %v (dashboard stats computed per request)", err)
	} else {
		log.Println("[Redis] Cache connected successfully")
	}
	defer cache.Close()

	// Run database migrations
	// Uses embedded migrations for standalone binary operation
	log.Println("Running database migrations...")
	migrator := database.NewMigratorWithFS(pool, migrations.FS, ".")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := migrator.RunMigrations(ctx); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize health checker
	healthChecker := health.NewHealthChecker(pool)

	// Start ops monitoring server in background
	go monitoring.NewMonitoringServer(pool, cfg.Server.MonitoringPort).Start()

	// Initialize repositories
	customerRepo := repositories.NewCustomerRepository(pool)
	workerRepo := repositories.NewWorkerRepository(pool)
	estimateRepo := repositories.NewEstimateRepository(pool)
	jobRepo := repositories.NewJobRepository(pool)
	supplierRepo := repositories.NewSupplierRepository(pool)
	materialRepo := repositories.NewMaterialRepository(pool)
	invoiceRepo := repositories.NewInvoiceRepository(pool)
	paymentRepo := repositories.NewPaymentRepository(pool)
	dashboardRepo := repositories.NewDashboardRepository(pool)

	// Initialize services
	ledgerService := services.NewLedgerService(invoiceRepo, paymentRepo)
	jobService := services.NewJobService(jobRepo, estimateRepo, materialRepo, ledgerService)
	dashboardService := services.NewDashboardService(dashboardRepo)
	reportService := services.NewReportService()

	// Initialize handlers
	customerHandler := handlers.NewCustomerHandler(customerRepo, estimateRepo, jobRepo, invoiceRepo)
	workerHandler := handlers.NewWorkerHandler(workerRepo)
	estimateHandler := handlers.NewEstimateHandler(estimateRepo)
	jobHandler := handlers.NewJobHandler(jobService)
	supplierHandler := handlers.NewSupplierHandler(supplierRepo)
	materialHandler := handlers.NewMaterialHandler(materialRepo)
	invoiceHandler := handlers.NewInvoiceHandler(ledgerService, reportService, customerRepo)
	paymentHandler := handlers.NewPaymentHandler(ledgerService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService, reportService)
	healthHandler := handlers.NewHealthHandler(healthChecker)

	// Create router
	router := h.NewRouter(
		customerHandler,
		workerHandler,
		estimateHandler,
		jobHandler,
		supplierHandler,
		materialHandler,
		invoiceHandler,
		paymentHandler,
		dashboardHandler,
		healthHandler,
	)

	// Wrap with panic recovery, CORS, metrics and request logging
	corsMiddleware := middleware.NewCORS(cfg)
	handler := middleware.PanicRecovery(middleware.MetricsMiddleware(middleware.APILogging(corsMiddleware(router))))

	// Start server
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("Server running on %s", addr)
	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
