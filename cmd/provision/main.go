// Package main provides a CLI for provisioning a company account:
// the company row, the owner user and the seed chart of accounts.
//
// Usage:
//
//	provision -company "Sharma Textiles" -owner "Ramesh Sharma" \
//	  -email ramesh@example.com -password <password>
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"bahikhata/internal/domain/company"
	"bahikhata/internal/infrastructure/storage/postgres"
	"bahikhata/internal/infrastructure/storage/postgres/company_repo"
	"bahikhata/internal/infrastructure/storage/postgres/master_repo"
	"bahikhata/pkg/logger"
)

func main() {
	companyName := flag.String("company", "", "company name (required)")
	ownerName := flag.String("owner", "", "owner full name")
	email := flag.String("email", "", "owner email (required)")
	password := flag.String("password", "", "owner password (required)")
	flag.Parse()

	if *companyName == "" || *email == "" || *password == "" {
		flag.Usage()
		os.Exit(1)
	}

	log, err := logger.New(logger.Config{Level: "info", Development: true})
	if err != nil {
		fmt.Printf("failed to create logger: %v\n", err)
		os.Exit(1)
	}

	dbURL := os.Getenv("BAHI_DATABASE_URL")
	if dbURL == "" {
		log.Fatal("BAHI_DATABASE_URL environment variable is required")
	}

	ctx := context.Background()

	pool, err := postgres.NewPool(ctx, postgres.DefaultPoolConfig(dbURL))
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()

	txManager := postgres.NewTxManager(pool)

	auditService, err := postgres.NewAuditService(txManager)
	if err != nil {
		log.Fatalw("failed to create audit service", "error", err)
	}

	svc := company.NewService(
		company_repo.NewCompanyRepo(txManager),
		company_repo.NewUserRepo(txManager),
		master_repo.NewLedgerGroupRepo(txManager),
		master_repo.NewLedgerRepo(txManager),
		txManager,
		auditService,
	)

	companyID, err := svc.CreateCompanyAccount(ctx, company.SignupInput{
		CompanyName: *companyName,
		FullName:    *ownerName,
		Email:       *email,
		Password:    *password,
	})
	if err != nil {
		log.Fatalw("provisioning failed", "error", err)
	}

	log.Infow("company provisioned",
		"company_id", companyID,
		"company", *companyName,
		"owner_email", *email,
	)
}
