package routes

import (
	"time"

	"github.com/freightbooks/freightbooks-api/internal/config"
	domainRepo "github.com/freightbooks/freightbooks-api/internal/domain/repository"
	"github.com/freightbooks/freightbooks-api/internal/presentation/http/handler"
	"github.com/freightbooks/freightbooks-api/internal/presentation/http/middleware"
	"github.com/freightbooks/freightbooks-api/pkg/utils"
	"github.com/gin-gonic/gin"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth      *handler.AuthHandler
	Shipment  *handler.ShipmentHandler
	Receipt   *handler.ReceiptHandler
	Audit     *handler.AuditHandler
	Dashboard *handler.DashboardHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Public routes (no authentication required)
		registerAuthRoutes(v1, h)

		// Protected routes (authentication required)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))

		// Per-user rate limiter
		rateLimiter := middleware.NewUserRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
			BurstSize:         deps.Cfg.RateLimit.Requests,
			CleanupInterval:   5 * time.Minute,
			EntryTTL:          10 * time.Minute,
		})
		protected.Use(rateLimiter.Middleware())

		registerProtectedRoutes(protected, h, deps)
	}

	return router
}

func registerAuthRoutes(v1 *gin.RouterGroup, h *Handlers) {
	auth := v1.Group("/auth")
	{
		auth.POST("/login", h.Auth.Login)
		auth.POST("/refresh", h.Auth.RefreshToken)
	}
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	// Profile
	protected.GET("/profile", h.Auth.Profile)

	// Dashboard
	protected.GET("/dashboard", h.Dashboard.GetStats)

	// Shipments
	registerShipmentRoutes(protected, h)

	// Receipts
	registerReceiptRoutes(protected, h, deps)

	// Audit log (admin and finance only)
	registerAuditRoutes(protected, h)
}

func registerShipmentRoutes(protected *gin.RouterGroup, h *Handlers) {
	shipments := protected.Group("/shipments")
	{
		shipments.GET("", h.Shipment.List)
		shipments.POST("", h.Shipment.Create)
		shipments.GET("/:id", h.Shipment.Get)
		shipments.PUT("/:id", h.Shipment.Update)
		shipments.DELETE("/:id", h.Shipment.Delete)
	}
}

func registerReceiptRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	receipts := protected.Group("/receipts")
	{
		receipts.GET("", h.Receipt.List)
		// Receipt creation uses idempotency middleware so a retried save
		// cannot file the same receipt twice
		receipts.POST("", middleware.IdempotencyRequired(middleware.IdempotencyConfig{
			Repo: deps.IdempotencyRepo,
		}), h.Receipt.Create)
		receipts.GET("/:id", h.Receipt.Get)
		receipts.PUT("/:id", h.Receipt.Update)
		receipts.DELETE("/:id", h.Receipt.Delete)
		receipts.GET("/:id/export", h.Receipt.Export)
	}

	// Receipts filed under one PRO number
	protected.GET("/pros/:proNumber/receipts", h.Receipt.ListByPro)
}

func registerAuditRoutes(protected *gin.RouterGroup, h *Handlers) {
	audit := protected.Group("/audit-logs")
	audit.Use(middleware.RequireRole("admin", "finance"))
	{
		audit.GET("", h.Audit.List)
	}
}
