// Package v1 provides HTTP API version 1.
package v1

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"bahikhata/internal/domain/auth"
	"bahikhata/internal/domain/company"
	"bahikhata/internal/domain/masters/godown"
	"bahikhata/internal/domain/masters/ledger"
	"bahikhata/internal/domain/masters/ledgergroup"
	"bahikhata/internal/domain/masters/stockitem"
	"bahikhata/internal/domain/registers/stock"
	"bahikhata/internal/domain/reports"
	"bahikhata/internal/domain/voucher"
	"bahikhata/internal/infrastructure/http/v1/handlers"
	"bahikhata/internal/infrastructure/http/v1/middleware"
	"bahikhata/pkg/logger"
)

// RouterConfig holds everything the router wires together.
type RouterConfig struct {
	// Pool is the shared database pool (health checks).
	Pool *pgxpool.Pool

	// Logger for request logging.
	Logger *logger.Logger

	// JWTValidator for token validation.
	JWTValidator middleware.JWTValidator

	// Development switches Gin to debug mode.
	Development bool

	AuthService        *auth.Service
	CompanyService     *company.Service
	LedgerGroupService *ledgergroup.Service
	LedgerService      *ledger.Service
	StockItemService   *stockitem.Service
	GodownService      *godown.Service
	VoucherService     *voucher.Service
	StockService       *stock.Service
	ReportsService     *reports.Service
	AuditHistory       handlers.AuditHistory
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	if cfg.Development {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware (order matters)
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.ErrorHandler())

	// Health endpoints (no auth)
	healthHandler := handlers.NewHealthHandler(cfg.Pool)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
	}

	base := handlers.NewBaseHandler()

	apiV1 := router.Group("/api/v1")
	{
		authHandler := handlers.NewAuthHandler(base, cfg.AuthService, cfg.CompanyService)

		// Public auth endpoints
		apiV1.POST("/auth/signup", authHandler.Signup)
		apiV1.POST("/auth/login", authHandler.Login)

		// Everything else requires a valid token
		protected := apiV1.Group("")
		protected.Use(middleware.Auth(cfg.JWTValidator))

		protected.GET("/auth/me", authHandler.Me)

		registerMasterRoutes(protected, base, cfg)
		registerVoucherRoutes(protected, base, cfg)
		registerRegisterRoutes(protected, base, cfg)
		registerReportRoutes(protected, base, cfg)
		registerAuditRoutes(protected, base, cfg)
	}

	return router
}

// registerMasterRoutes wires the four master CRUDs.
func registerMasterRoutes(rg *gin.RouterGroup, base *handlers.BaseHandler, cfg RouterConfig) {
	{
		h := handlers.NewLedgerGroupHandler(base, cfg.LedgerGroupService)
		g := rg.Group("/ledger-groups")
		g.POST("", h.Create)
		g.GET("", h.List)
		g.GET("/:id", h.Get)
		g.PUT("/:id", h.Update)
		g.DELETE("/:id", middleware.RequireRole("owner"), h.Delete)
	}

	{
		h := handlers.NewLedgerHandler(base, cfg.LedgerService)
		g := rg.Group("/ledgers")
		g.POST("", h.Create)
		g.GET("", h.List)
		g.GET("/:id", h.Get)
		g.PUT("/:id", h.Update)
		g.DELETE("/:id", middleware.RequireRole("owner"), h.Delete)
	}

	{
		h := handlers.NewStockItemHandler(base, cfg.StockItemService)
		g := rg.Group("/stock-items")
		g.POST("", h.Create)
		g.GET("", h.List)
		g.GET("/:id", h.Get)
		g.PUT("/:id", h.Update)
		g.DELETE("/:id", middleware.RequireRole("owner"), h.Delete)
	}

	{
		h := handlers.NewGodownHandler(base, cfg.GodownService)
		g := rg.Group("/godowns")
		g.POST("", h.Create)
		g.GET("", h.List)
		g.GET("/:id", h.Get)
		g.PUT("/:id", h.Update)
		g.DELETE("/:id", middleware.RequireRole("owner"), h.Delete)
	}
}

// registerVoucherRoutes wires voucher posting and retrieval.
// Vouchers are immutable once posted, so there is no PUT or DELETE.
func registerVoucherRoutes(rg *gin.RouterGroup, base *handlers.BaseHandler, cfg RouterConfig) {
	h := handlers.NewVoucherHandler(base, cfg.VoucherService)
	g := rg.Group("/vouchers")
	g.POST("", h.Post)
	g.GET("", h.List)
	g.GET("/next-number", h.NextNumber)
	g.GET("/:id", h.Get)
}

// registerRegisterRoutes wires the stock register.
func registerRegisterRoutes(rg *gin.RouterGroup, base *handlers.BaseHandler, cfg RouterConfig) {
	h := handlers.NewStockHandler(base, cfg.StockService)
	g := rg.Group("/stock")
	g.GET("/:itemId/quantity", h.Quantity)
	g.GET("/:itemId/movements", h.Movements)
}

// registerAuditRoutes wires the change-history lookup. Owner-only,
// like the destructive master operations.
func registerAuditRoutes(rg *gin.RouterGroup, base *handlers.BaseHandler, cfg RouterConfig) {
	h := handlers.NewAuditHandler(base, cfg.AuditHistory)
	rg.GET("/audit/:table/:recordId", middleware.RequireRole("owner"), h.History)
}

// registerReportRoutes wires the derived read models.
func registerReportRoutes(rg *gin.RouterGroup, base *handlers.BaseHandler, cfg RouterConfig) {
	h := handlers.NewReportsHandler(base, cfg.ReportsService)
	g := rg.Group("/reports")
	g.GET("/ledger-balance/:ledgerId", h.LedgerBalance)
	g.GET("/trial-balance", h.TrialBalance)
	g.GET("/stock-summary", h.StockSummary)
	g.GET("/outstanding", h.Outstanding)
	g.GET("/ledger-statement/:ledgerId", h.LedgerStatement)
}
