package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/serviceops/receipts-api/internal/application/service"
	"github.com/serviceops/receipts-api/internal/config"
	"github.com/serviceops/receipts-api/internal/domain/enum"
	domainRepo "github.com/serviceops/receipts-api/internal/domain/repository"
	"github.com/serviceops/receipts-api/internal/presentation/http/handler"
	"github.com/serviceops/receipts-api/internal/presentation/http/middleware"
	"github.com/serviceops/receipts-api/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth     *handler.AuthHandler
	Receipt  *handler.ReceiptHandler
	Metrics  *handler.MetricsHandler
	Provider *handler.ProviderHandler
	Service  *handler.ServiceHandler
	User     *handler.UserHandler
	Backup   *handler.BackupHandler
	Admin    *handler.AdminHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
	AdminGate       *service.AdminGate
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
		auth.POST("/register", h.Auth.Register)
		auth.POST("/refresh", h.Auth.Refresh)
		auth.POST("/forgot-password", h.Auth.ForgotPassword)
		auth.POST("/reset-password", h.Auth.ResetPassword)
	}
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	protected.GET("/profile", h.Auth.Me)
	protected.POST("/auth/logout", h.Auth.Logout)

	registerReceiptRoutes(protected, h, deps)
	registerMetricsRoutes(protected, h)
	registerProviderRoutes(protected, h)
	registerServiceRoutes(protected, h)
	registerAdminRoutes(protected, h, deps)
}

func registerReceiptRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	receipts := protected.Group("/receipts")
	receipts.Use(middleware.RequirePermission(enum.PermNewServiceRead))
	{
		receipts.GET("", h.Receipt.List)
		receipts.GET("/search", h.Receipt.Search)
		receipts.GET("/delayed", h.Receipt.Delayed)
		receipts.GET("/activity", h.Receipt.Activity)
		receipts.GET("/:id", h.Receipt.Get)
		receipts.GET("/:id/items", h.Receipt.Items)
		receipts.GET("/:id/print", h.Receipt.Print)

		// Creation replays are caught by the idempotency key so a
		// double-submitted form cannot insert twice.
		create := receipts.Group("")
		create.Use(middleware.RequirePermission(enum.PermNewServiceWrite))
		create.Use(middleware.Idempotency(middleware.IdempotencyConfig{Repo: deps.IdempotencyRepo}))
		create.POST("", h.Receipt.Create)

		// Workflow transitions need the validation permission.
		workflow := receipts.Group("")
		workflow.Use(middleware.RequirePermission(enum.PermValidateServiceWrite))
		{
			workflow.POST("/approve", h.Receipt.Approve)
			workflow.POST("/reject", h.Receipt.Reject)
			workflow.POST("/reverse-approval", h.Receipt.ReverseApproval)
			workflow.POST("/pay", h.Receipt.MarkPaid)
			workflow.POST("/reverse-payment", h.Receipt.ReversePayment)
		}
	}
}

func registerMetricsRoutes(protected *gin.RouterGroup, h *Handlers) {
	metrics := protected.Group("/metrics")
	metrics.Use(middleware.RequirePermission(enum.PermValidateServiceRead))
	{
		metrics.GET("/receipts", h.Metrics.Receipts)
		metrics.GET("/payments", h.Metrics.Payments)
		metrics.GET("/trends", h.Metrics.Trends)
	}
}

func registerProviderRoutes(protected *gin.RouterGroup, h *Handlers) {
	providers := protected.Group("/providers")
	providers.Use(middleware.RequirePermission(enum.PermNewServiceRead))
	{
		providers.GET("", h.Provider.List)
		providers.GET("/:id", h.Provider.Get)

		write := providers.Group("")
		write.Use(middleware.RequirePermission(enum.PermNewServiceWrite))
		{
			write.POST("", h.Provider.Create)
			write.PUT("/:id", h.Provider.Update)
			write.DELETE("/:id", h.Provider.Delete)
		}
	}
}

func registerServiceRoutes(protected *gin.RouterGroup, h *Handlers) {
	services := protected.Group("/services")
	services.Use(middleware.RequirePermission(enum.PermNewServiceRead))
	{
		services.GET("", h.Service.List)
		services.GET("/:id", h.Service.Get)

		write := services.Group("")
		write.Use(middleware.RequirePermission(enum.PermNewServiceWrite))
		{
			write.POST("", h.Service.Create)
			write.PUT("/:id", h.Service.Update)
			write.DELETE("/:id", h.Service.Delete)
		}
	}
}

func registerAdminRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	// Entering and leaving the admin area only needs a valid session.
	protected.POST("/admin/elevate", h.Admin.Elevate)
	protected.DELETE("/admin/elevate", h.Admin.Drop)

	// Everything behind the gate needs the admin role, the admin
	// permission and a recent password verification.
	admin := protected.Group("")
	admin.Use(middleware.RequireRole(string(enum.RoleAdmin)))
	admin.Use(middleware.RequirePermission(enum.PermAdminRead))
	admin.Use(middleware.RequireAdminElevation(deps.AdminGate))
	{
		admin.GET("/users", h.User.List)

		adminWrite := admin.Group("")
		adminWrite.Use(middleware.RequirePermission(enum.PermAdminWrite))
		adminWrite.PUT("/users/roles", h.User.UpdateRoles)

		admin.GET("/backup/receipts.csv", h.Backup.ExportCSV)
		admin.GET("/backup/receipts.xlsx", h.Backup.ExportXLSX)
	}
}
