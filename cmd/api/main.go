package main

import (
	"log"
	"os"

	"github.com/freightbooks/freightbooks-api/internal/application/service"
	"github.com/freightbooks/freightbooks-api/internal/config"
	"github.com/freightbooks/freightbooks-api/internal/infrastructure/database"
	"github.com/freightbooks/freightbooks-api/internal/infrastructure/repository"
	"github.com/freightbooks/freightbooks-api/internal/presentation/http/handler"
	"github.com/freightbooks/freightbooks-api/internal/presentation/http/routes"
	"github.com/freightbooks/freightbooks-api/pkg/utils"
	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Seed default data
	if err := database.SeedDefaultData(db); err != nil {
		log.Printf("Warning: Failed to seed default data: %v", err)
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.ExpiryHours,
		cfg.JWT.RefreshExpiryHours,
	)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	shipmentRepo := repository.NewShipmentRepository(db)
	receiptRepo := repository.NewReceiptDocumentRepository(db)
	auditRepo := repository.NewAuditLogRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)
	analyticsRepo := repository.NewAnalyticsRepository(db)

	// Initialize services
	auditService := service.NewAuditService(auditRepo)
	authService := service.NewAuthService(userRepo, jwtManager)
	shipmentService := service.NewShipmentService(shipmentRepo, receiptRepo, auditService)
	receiptService := service.NewReceiptService(receiptRepo, shipmentRepo, auditService)
	dashboardService := service.NewDashboardService(analyticsRepo)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:      handler.NewAuthHandler(authService),
		Shipment:  handler.NewShipmentHandler(shipmentService),
		Receipt:   handler.NewReceiptHandler(receiptService),
		Audit:     handler.NewAuditHandler(auditService),
		Dashboard: handler.NewDashboardHandler(dashboardService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
	})

	// Get port from environment or use default
	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting %s server on port %s...", cfg.App.Name, port)
	log.Printf("Environment: %s", cfg.App.Env)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
		os.Exit(1)
	}
}
