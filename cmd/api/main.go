package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/serviceops/receipts-api/internal/application/service"
	"github.com/serviceops/receipts-api/internal/config"
	"github.com/serviceops/receipts-api/internal/infrastructure/database"
	"github.com/serviceops/receipts-api/internal/infrastructure/repository"
	"github.com/serviceops/receipts-api/internal/presentation/http/handler"
	"github.com/serviceops/receipts-api/internal/presentation/http/routes"
	"github.com/serviceops/receipts-api/pkg/email"
	"github.com/serviceops/receipts-api/pkg/utils"
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
	profileRepo := repository.NewProfileRepository(db)
	passwordResetRepo := repository.NewPasswordResetTokenRepository(db)
	receiptRepo := repository.NewReceiptRepository(db)
	providerRepo := repository.NewProviderRepository(db)
	serviceRepo := repository.NewServiceRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)

	// Initialize email service
	emailService := email.NewService(email.Config{
		SMTPHost:     cfg.Email.SMTPHost,
		SMTPPort:     cfg.Email.SMTPPort,
		SMTPUsername: cfg.Email.SMTPUser,
		SMTPPassword: cfg.Email.SMTPPass,
		FromName:     cfg.Email.FromName,
		FromEmail:    cfg.Email.FromAddress,
		FrontendURL:  cfg.Email.FrontendURL,
	})

	// Initialize services
	authService := service.NewAuthService(profileRepo, passwordResetRepo, jwtManager, emailService)
	receiptService := service.NewReceiptService(receiptRepo, providerRepo)
	workflowService := service.NewWorkflowService(receiptRepo)
	metricsService := service.NewMetricsService(receiptRepo)
	providerService := service.NewProviderService(providerRepo)
	catalogService := service.NewCatalogService(serviceRepo, providerRepo)
	backupService := service.NewBackupService(receiptRepo)
	userService := service.NewUserService(profileRepo)
	adminGate := service.NewAdminGate(cfg.AdminGate.Password, cfg.AdminGate.TTL)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:     handler.NewAuthHandler(authService, adminGate),
		Receipt:  handler.NewReceiptHandler(receiptService, workflowService),
		Metrics:  handler.NewMetricsHandler(metricsService),
		Provider: handler.NewProviderHandler(providerService),
		Service:  handler.NewServiceHandler(catalogService),
		User:     handler.NewUserHandler(userService),
		Backup:   handler.NewBackupHandler(backupService),
		Admin:    handler.NewAdminHandler(adminGate),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
		AdminGate:       adminGate,
	})

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
