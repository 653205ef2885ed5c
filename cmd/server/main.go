// Package main is the entry point for the bahikhata API server.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"bahikhata/internal/config"
	"bahikhata/internal/domain/auth"
	"bahikhata/internal/domain/company"
	"bahikhata/internal/domain/masters/godown"
	"bahikhata/internal/domain/masters/ledger"
	"bahikhata/internal/domain/masters/ledgergroup"
	"bahikhata/internal/domain/masters/stockitem"
	"bahikhata/internal/domain/registers/stock"
	"bahikhata/internal/domain/reports"
	"bahikhata/internal/domain/voucher"
	v1 "bahikhata/internal/infrastructure/http/v1"
	"bahikhata/internal/infrastructure/storage/postgres"
	"bahikhata/internal/infrastructure/storage/postgres/company_repo"
	"bahikhata/internal/infrastructure/storage/postgres/master_repo"
	"bahikhata/internal/infrastructure/storage/postgres/register_repo"
	"bahikhata/internal/infrastructure/storage/postgres/report_repo"
	"bahikhata/internal/infrastructure/storage/postgres/voucher_repo"
	"bahikhata/pkg/logger"
	"bahikhata/pkg/numerator"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(logger.Config{
		Level:       cfg.LogLevel,
		Development: cfg.IsDevelopment(),
	})
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	log.Info("starting bahikhata server")

	// --- Database ---
	poolCfg := postgres.DefaultPoolConfig(cfg.DatabaseURL)
	poolCfg.MaxConns = cfg.DBMaxConns
	poolCfg.MinConns = cfg.DBMinConns

	pool, err := postgres.NewPool(ctx, poolCfg)
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()
	log.Info("database connection established")

	txManager := postgres.NewTxManager(pool)

	// --- Repositories ---
	companyRepo := company_repo.NewCompanyRepo(txManager)
	userRepo := company_repo.NewUserRepo(txManager)
	groupRepo := master_repo.NewLedgerGroupRepo(txManager)
	ledgerRepo := master_repo.NewLedgerRepo(txManager)
	itemRepo := master_repo.NewStockItemRepo(txManager)
	godownRepo := master_repo.NewGodownRepo(txManager)
	voucherRepo := voucher_repo.NewVoucherRepo(txManager)
	stockRepo := register_repo.NewStockRepo(txManager)
	reportRepo := report_repo.NewReportRepo(txManager)

	// --- Cross-cutting services ---
	auditService, err := postgres.NewAuditService(txManager)
	if err != nil {
		log.Fatalw("failed to create audit service", "error", err)
	}

	sequencer := numerator.NewWithTxManager(txManager)

	oversellPolicy, err := stock.NewOversellPolicy(stock.PolicyMode(cfg.OversellMode), cfg.OversellExpression)
	if err != nil {
		log.Fatalw("failed to compile over-sell policy", "error", err)
	}

	jwtConfig := auth.DefaultJWTConfig(cfg.JWTSecret)
	jwtConfig.AccessTokenTTL = cfg.JWTTTL
	jwtService := auth.NewJWTService(jwtConfig)

	// --- Domain services ---
	authService := auth.NewService(userRepo, jwtService)
	companyService := company.NewService(companyRepo, userRepo, groupRepo, ledgerRepo, txManager, auditService)
	groupService := ledgergroup.NewService(groupRepo, txManager, auditService)
	ledgerService := ledger.NewService(ledgerRepo, groupRepo, txManager, auditService)
	itemService := stockitem.NewService(itemRepo, txManager, auditService)
	godownService := godown.NewService(godownRepo, txManager, auditService)
	stockService := stock.NewService(stockRepo)
	voucherService := voucher.NewService(
		voucherRepo,
		ledgerRepo,
		itemRepo,
		stockService,
		oversellPolicy,
		sequencer,
		txManager,
		auditService,
	)
	reportsService := reports.NewService(reportRepo, txManager)

	// --- Router ---
	router := v1.NewRouter(v1.RouterConfig{
		Pool:               pool.Unwrap(),
		Logger:             log,
		JWTValidator:       jwtService,
		Development:        cfg.IsDevelopment(),
		AuthService:        authService,
		CompanyService:     companyService,
		LedgerGroupService: groupService,
		LedgerService:      ledgerService,
		StockItemService:   itemService,
		GodownService:      godownService,
		VoucherService:     voucherService,
		StockService:       stockService,
		ReportsService:     reportsService,
		AuditHistory:       auditService,
	})

	// --- HTTP Server ---
	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	go func() {
		log.Infow("server starting", "addr", cfg.AppAddr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalw("server failed", "error", err)
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalw("server forced to shutdown", "error", err)
	}

	log.Info("server stopped")
}
