package router

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/desertbloom-landscaping/backoffice-api/internal/auth"
	"github.com/desertbloom-landscaping/backoffice-api/internal/config"
	"github.com/desertbloom-landscaping/backoffice-api/internal/database"
	"github.com/desertbloom-landscaping/backoffice-api/internal/http/handler"
	"github.com/desertbloom-landscaping/backoffice-api/internal/http/middleware"

	_ "github.com/desertbloom-landscaping/backoffice-api/docs" // Import generated swagger docs
)

type Router struct {
	cfg                 *config.Config
	logger              *zap.Logger
	db                  *gorm.DB
	authMiddleware      *auth.Middleware
	rateLimiter         *middleware.RateLimiter
	quoteHandler        *handler.QuoteHandler
	estimateHandler     *handler.EstimateHandler
	invoiceHandler      *handler.InvoiceHandler
	catalogHandler      *handler.CatalogHandler
	notificationHandler *handler.NotificationHandler
}

func NewRouter(
	cfg *config.Config,
	logger *zap.Logger,
	db *gorm.DB,
	authMiddleware *auth.Middleware,
	rateLimiter *middleware.RateLimiter,
	quoteHandler *handler.QuoteHandler,
	estimateHandler *handler.EstimateHandler,
	invoiceHandler *handler.InvoiceHandler,
	catalogHandler *handler.CatalogHandler,
	notificationHandler *handler.NotificationHandler,
) *Router {
	return &Router{
		cfg:                 cfg,
		logger:              logger,
		db:                  db,
		authMiddleware:      authMiddleware,
		rateLimiter:         rateLimiter,
		quoteHandler:        quoteHandler,
		estimateHandler:     estimateHandler,
		invoiceHandler:      invoiceHandler,
		catalogHandler:      catalogHandler,
		notificationHandler: notificationHandler,
	}
}

func (rt *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(rt.logger))
	r.Use(middleware.Logging(rt.logger))
	r.Use(middleware.SecurityHeaders(&rt.cfg.Security))
	r.Use(middleware.CORS(&rt.cfg.CORS, rt.cfg.App.Environment, rt.logger))
	r.Use(rt.rateLimiter.LimitByIP) // Apply IP-based rate limiting globally

	// Health check (basic liveness probe)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Database health check (readiness probe with pool stats)
	r.Get("/health/db", func(w http.ResponseWriter, r *http.Request) {
		stats, err := database.HealthCheckWithStats(rt.db)
		if err != nil {
			rt.logger.Error("Database health check failed", zap.Error(err))
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"status":  "unhealthy",
				"error":   err.Error(),
				"service": "database",
			})
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status":  "healthy",
			"service": "database",
			"stats": map[string]interface{}{
				"open_connections": stats.OpenConnections,
				"in_use":           stats.InUse,
				"idle":             stats.Idle,
			},
		})
	})

	// Combined readiness check (checks all dependencies)
	r.Get("/health/ready", func(w http.ResponseWriter, r *http.Request) {
		checks := make(map[string]interface{})
		allHealthy := true

		if err := database.HealthCheck(rt.db); err != nil {
			rt.logger.Error("Database health check failed", zap.Error(err))
			checks["database"] = map[string]interface{}{
				"status": "unhealthy",
				"error":  err.Error(),
			}
			allHealthy = false
		} else {
			checks["database"] = map[string]interface{}{
				"status": "healthy",
			}
		}

		w.Header().Set("Content-Type", "application/json")
		if allHealthy {
			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"status": "healthy",
				"checks": checks,
			})
		} else {
			w.WriteHeader(http.StatusServiceUnavailable)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"status": "unhealthy",
				"checks": checks,
			})
		}
	})

	// Swagger documentation
	if rt.cfg.Server.EnableSwagger {
		r.Get("/swagger/*", httpSwagger.Handler(
			httpSwagger.URL("/swagger/doc.json"),
		))
	}

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		// Public routes (no auth required)
		r.Post("/quotes", rt.quoteHandler.Submit)
		r.Post("/estimates/preview", rt.estimateHandler.Preview)
		r.Get("/estimates/presets", rt.estimateHandler.Presets)
		r.Get("/services", rt.catalogHandler.List)
		r.Get("/services/{id}", rt.catalogHandler.GetByID)
		r.Get("/services/{id}/project-types", rt.catalogHandler.AllowedProjectTypes)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(rt.authMiddleware.Authenticate)

			// Quote requests. Registered flat because the public group
			// already owns POST /quotes on the same subtree.
			r.Get("/quotes", rt.quoteHandler.List)
			r.Get("/quotes/{id}", rt.quoteHandler.GetByID)
			r.Post("/quotes/{id}/review", rt.quoteHandler.Review)
			r.Post("/quotes/{id}/send", rt.quoteHandler.Send)
			r.Post("/quotes/{id}/cancel", rt.quoteHandler.Cancel)

			// Estimates with full breakdowns
			r.Post("/estimates", rt.estimateHandler.Calculate)

			// Invoices
			r.Route("/invoices", func(r chi.Router) {
				r.Get("/", rt.invoiceHandler.List)
				r.Post("/", rt.invoiceHandler.Create)
				r.Post("/from-estimate", rt.invoiceHandler.CreateFromEstimate)
				r.Get("/{id}", rt.invoiceHandler.GetByID)
				r.Put("/{id}/status", rt.invoiceHandler.UpdateStatus)
			})

			// Service catalog management
			r.Post("/services", rt.catalogHandler.Create)

			// Notifications
			r.Route("/notifications", func(r chi.Router) {
				r.Get("/", rt.notificationHandler.List)
				r.Post("/", rt.notificationHandler.Create)
				r.Get("/count", rt.notificationHandler.GetUnreadCount)
				r.Put("/read-all", rt.notificationHandler.MarkAllAsRead)
				r.Get("/{id}", rt.notificationHandler.GetByID)
				r.Put("/{id}/read", rt.notificationHandler.MarkAsRead)
			})
		})
	})

	return r
}
