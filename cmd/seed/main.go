// Package main provides a CLI tool for seeding demo data: a demo
// company, a few masters and a handful of vouchers posted through the
// regular posting flow so every derived register stays consistent.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"

	"bahikhata/internal/core/types"
	"bahikhata/internal/domain/company"
	"bahikhata/internal/domain/masters/godown"
	"bahikhata/internal/domain/masters/ledger"
	"bahikhata/internal/domain/masters/stockitem"
	"bahikhata/internal/domain/registers/stock"
	"bahikhata/internal/domain/voucher"
	"bahikhata/internal/infrastructure/storage/postgres"
	"bahikhata/internal/infrastructure/storage/postgres/company_repo"
	"bahikhata/internal/infrastructure/storage/postgres/master_repo"
	"bahikhata/internal/infrastructure/storage/postgres/register_repo"
	"bahikhata/internal/infrastructure/storage/postgres/voucher_repo"
	"bahikhata/pkg/logger"
	"bahikhata/pkg/numerator"
)

func main() {
	log, err := logger.New(logger.Config{
		Level:       "info",
		Development: true,
	})
	if err != nil {
		fmt.Printf("failed to create logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()

	dbURL := os.Getenv("BAHI_DATABASE_URL")
	if dbURL == "" {
		log.Fatal("BAHI_DATABASE_URL environment variable is required")
	}

	pool, err := postgres.NewPool(ctx, postgres.DefaultPoolConfig(dbURL))
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()

	log.Info("connected to database")

	txManager := postgres.NewTxManager(pool)

	auditService, err := postgres.NewAuditService(txManager)
	if err != nil {
		log.Fatalw("failed to create audit service", "error", err)
	}

	groupRepo := master_repo.NewLedgerGroupRepo(txManager)
	ledgerRepo := master_repo.NewLedgerRepo(txManager)
	itemRepo := master_repo.NewStockItemRepo(txManager)
	godownRepo := master_repo.NewGodownRepo(txManager)
	voucherRepo := voucher_repo.NewVoucherRepo(txManager)
	stockRepo := register_repo.NewStockRepo(txManager)

	companyService := company.NewService(
		company_repo.NewCompanyRepo(txManager),
		company_repo.NewUserRepo(txManager),
		groupRepo,
		ledgerRepo,
		txManager,
		auditService,
	)
	ledgerService := ledger.NewService(ledgerRepo, groupRepo, txManager, auditService)
	itemService := stockitem.NewService(itemRepo, txManager, auditService)
	godownService := godown.NewService(godownRepo, txManager, auditService)
	stockService := stock.NewService(stockRepo)

	oversellPolicy, err := stock.NewOversellPolicy(stock.ModeWarn, "")
	if err != nil {
		log.Fatalw("failed to compile over-sell policy", "error", err)
	}

	voucherService := voucher.NewService(
		voucherRepo,
		ledgerRepo,
		itemRepo,
		stockService,
		oversellPolicy,
		numerator.NewWithTxManager(txManager),
		txManager,
		auditService,
	)

	// --- Demo company ---
	companyID, err := companyService.CreateCompanyAccount(ctx, company.SignupInput{
		CompanyName: "Sharma Textiles Demo",
		FullName:    "Ramesh Sharma",
		Email:       getEnv("SEED_EMAIL", "demo@bahikhata.local"),
		Password:    getEnv("SEED_PASSWORD", "Demo1234!"),
	})
	if err != nil {
		log.Fatalw("failed to create demo company", "error", err)
	}
	log.Infow("demo company created", "company_id", companyID)

	// --- Party ledgers ---
	debtors, err := groupRepo.GetByName(ctx, companyID, "Sundry Debtors")
	if err != nil || debtors == nil {
		log.Fatalw("seed group missing", "group", "Sundry Debtors", "error", err)
	}
	creditors, err := groupRepo.GetByName(ctx, companyID, "Sundry Creditors")
	if err != nil || creditors == nil {
		log.Fatalw("seed group missing", "group", "Sundry Creditors", "error", err)
	}

	supplier := ledger.New(companyID, creditors.ID, "Gupta Yarn Traders")
	if err := ledgerService.Create(ctx, supplier); err != nil {
		log.Fatalw("failed to create supplier ledger", "error", err)
	}
	customer := ledger.New(companyID, debtors.ID, "Verma Fabrics")
	if err := ledgerService.Create(ctx, customer); err != nil {
		log.Fatalw("failed to create customer ledger", "error", err)
	}

	// --- Inventory masters ---
	mainGodown := godown.New(companyID, "Main Godown")
	if err := godownService.Create(ctx, mainGodown); err != nil {
		log.Fatalw("failed to create godown", "error", err)
	}

	cotton := stockitem.New(companyID, "Cotton Suiting 58in", "Mtr", decimal.NewFromInt(5))
	cotton.ArticleNo = "CS-5801"
	cotton.Category = "Suiting"
	if err := itemService.Create(ctx, cotton); err != nil {
		log.Fatalw("failed to create stock item", "error", err)
	}

	// --- Vouchers through the posting flow ---
	today := time.Now().UTC().Truncate(24 * time.Hour)

	purchase, err := voucherService.Post(ctx, companyID, voucher.PostInput{
		Type:          voucher.TypePurchase,
		Date:          today.AddDate(0, 0, -7),
		PartyLedgerID: supplier.ID,
		Lines: []voucher.LineInput{{
			StockItemID: cotton.ID,
			GodownID:    &mainGodown.ID,
			Shade:       "Navy",
			Lot:         "L-101",
			Quantity:    types.NewQuantityFromFloat64(500),
			Rate:        types.MustMoney("220.00"),
		}},
		Freight:   types.MustMoney("1500.00"),
		Narration: "Opening stock purchase",
	})
	if err != nil {
		log.Fatalw("failed to post purchase", "error", err)
	}
	log.Infow("posted purchase", "number", purchase.Number, "grand_total", purchase.GrandTotal.String())

	sales, err := voucherService.Post(ctx, companyID, voucher.PostInput{
		Type:          voucher.TypeSales,
		Date:          today.AddDate(0, 0, -2),
		PartyLedgerID: customer.ID,
		Lines: []voucher.LineInput{{
			StockItemID: cotton.ID,
			GodownID:    &mainGodown.ID,
			Shade:       "Navy",
			Lot:         "L-101",
			Quantity:    types.NewQuantityFromFloat64(120),
			Rate:        types.MustMoney("265.00"),
		}},
		Discount:  types.MustMoney("500.00"),
		Narration: "First sale to Verma Fabrics",
	})
	if err != nil {
		log.Fatalw("failed to post sales", "error", err)
	}
	log.Infow("posted sales", "number", sales.Number, "grand_total", sales.GrandTotal.String())

	cash, err := ledgerRepo.GetByName(ctx, companyID, "Cash")
	if err != nil || cash == nil {
		log.Fatalw("seed ledger missing", "ledger", "Cash", "error", err)
	}

	receipt, err := voucherService.Post(ctx, companyID, voucher.PostInput{
		Type:            voucher.TypeReceipt,
		Date:            today,
		PartyLedgerID:   customer.ID,
		AccountLedgerID: &cash.ID,
		Amount:          types.MustMoney("20000.00"),
		Narration:       "Part payment received in cash",
	})
	if err != nil {
		log.Fatalw("failed to post receipt", "error", err)
	}
	log.Infow("posted receipt", "number", receipt.Number, "amount", receipt.GrandTotal.String())

	log.Info("seeding completed successfully")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
