package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/desertbloom-landscaping/backoffice-api/docs"
	"github.com/desertbloom-landscaping/backoffice-api/internal/auth"
	"github.com/desertbloom-landscaping/backoffice-api/internal/config"
	"github.com/desertbloom-landscaping/backoffice-api/internal/database"
	"github.com/desertbloom-landscaping/backoffice-api/internal/http/handler"
	"github.com/desertbloom-landscaping/backoffice-api/internal/http/middleware"
	"github.com/desertbloom-landscaping/backoffice-api/internal/http/router"
	"github.com/desertbloom-landscaping/backoffice-api/internal/jobs"
	"github.com/desertbloom-landscaping/backoffice-api/internal/logger"
	"github.com/desertbloom-landscaping/backoffice-api/internal/repository"
	"github.com/desertbloom-landscaping/backoffice-api/internal/service"
)

// @title Desert Bloom Backoffice API
// @version 1.0
// @description Pricing, quote request, and invoicing API for landscaping back-office operations

// @contact.name API Support
// @contact.email support@desertbloom.example

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT Bearer token

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name x-api-key
// @description API Key for system operations

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.NewLogger(&cfg.Logging, &cfg.App)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	log.Info("Starting application",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Environment),
		zap.Int("port", cfg.App.Port),
	)

	// Configure Swagger host based on environment
	if cfg.App.Environment == "development" {
		docs.SwaggerInfo.Host = fmt.Sprintf("localhost:%d", cfg.App.Port)
	}

	db, err := database.NewDatabase(&cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	// Initialize repositories
	quoteRepo := repository.NewQuoteRequestRepository(db)
	serviceRepo := repository.NewServiceRepository(db)
	invoiceRepo := repository.NewInvoiceRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	// Initialize services
	notificationService := service.NewNotificationService(notificationRepo, log)
	quoteService := service.NewQuoteService(quoteRepo, serviceRepo, notificationService, log)
	estimateService := service.NewEstimateService(log)
	catalogService := service.NewCatalogService(serviceRepo, log)
	invoiceService := service.NewInvoiceService(invoiceRepo, quoteRepo, notificationService, log)

	// Initialize middleware
	authMiddleware := auth.NewMiddleware(cfg, log)
	rateLimiter := middleware.NewRateLimiter(&cfg.RateLimit, log)

	// Initialize handlers
	quoteHandler := handler.NewQuoteHandler(quoteService, log)
	estimateHandler := handler.NewEstimateHandler(estimateService, log)
	invoiceHandler := handler.NewInvoiceHandler(invoiceService, log)
	catalogHandler := handler.NewCatalogHandler(catalogService, log)
	notificationHandler := handler.NewNotificationHandler(notificationService, log)

	// Setup router
	rt := router.NewRouter(
		cfg,
		log,
		db,
		authMiddleware,
		rateLimiter,
		quoteHandler,
		estimateHandler,
		invoiceHandler,
		catalogHandler,
		notificationHandler,
	)

	// Initialize and start scheduler for background jobs
	var scheduler *jobs.Scheduler
	if cfg.Jobs.Enabled {
		scheduler = jobs.NewScheduler(log)

		if err := jobs.RegisterStaleQuoteJob(
			scheduler,
			quoteService,
			log,
			cfg.Jobs.StaleQuoteCancelSchedule,
			cfg.Jobs.StaleQuoteMaxAge(),
			false,
		); err != nil {
			log.Error("Failed to register stale quote job", zap.Error(err))
		} else {
			scheduler.Start()
			log.Info("Scheduler started with stale quote job",
				zap.String("cron_expr", cfg.Jobs.StaleQuoteCancelSchedule),
				zap.Duration("max_age", cfg.Jobs.StaleQuoteMaxAge()),
			)
		}
	} else {
		log.Info("Background jobs disabled")
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      rt.Setup(),
		ReadTimeout:  cfg.Server.ReadTimeoutDuration(),
		WriteTimeout: cfg.Server.WriteTimeoutDuration(),
	}

	// Start server in goroutine
	serverErrors := make(chan error, 1)
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		serverErrors <- srv.ListenAndServe()
	}()

	// Wait for interrupt signal
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case sig := <-shutdown:
		log.Info("Shutdown signal received", zap.String("signal", sig.String()))

		// Stop scheduler if running
		if scheduler != nil {
			ctx := scheduler.Stop()
			<-ctx.Done()
			log.Info("Scheduler stopped")
		}

		// Graceful shutdown with timeout
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Error("Failed to shutdown gracefully", zap.Error(err))
			return err
		}

		log.Info("Server stopped gracefully")
	}

	return nil
}
