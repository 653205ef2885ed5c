// Package numerator provides gap-free voucher numbering.
//
// Every voucher type keeps an independent counter per company, so a
// company's first SALES voucher and first PURCHASE voucher are both
// number 1. The counter row is bumped with a single UPSERT inside the
// caller's posting transaction: if the posting rolls back, so does the
// allocation, and the sequence never skips.
package numerator

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"bahikhata/internal/core/id"
	"bahikhata/internal/infrastructure/storage/postgres"
)

// Querier interface for database operations.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Service allocates sequential voucher numbers.
type Service struct {
	// staticQuerier is used when no transaction manager is wired (tests)
	staticQuerier Querier
	txManager     *postgres.TxManager
}

// New creates a numerator service with a static querier.
// Use for testing scenarios.
func New(querier Querier) *Service {
	return &Service{staticQuerier: querier}
}

// NewWithTxManager creates a numerator service that joins the active
// transaction from context. This is the production wiring: Next called
// inside a posting transaction allocates within that transaction.
func NewWithTxManager(txManager *postgres.TxManager) *Service {
	return &Service{txManager: txManager}
}

func (s *Service) getQuerier(ctx context.Context) Querier {
	if s.txManager != nil {
		return s.txManager.GetQuerier(ctx)
	}
	return s.staticQuerier
}

// Next allocates and returns the next number for the given company and
// voucher type. Numbering starts at 1. The row-level lock taken by the
// UPSERT serializes concurrent postings of the same type, so two
// simultaneous SALES vouchers commit with distinct consecutive numbers.
func (s *Service) Next(ctx context.Context, companyID id.ID, voucherType string) (int64, error) {
	if s == nil {
		return 0, fmt.Errorf("numerator service is not initialized")
	}

	var num int64
	err := s.getQuerier(ctx).QueryRow(ctx, `
		INSERT INTO voucher_sequences (company_id, voucher_type, current_val)
		VALUES ($1, $2, 1)
		ON CONFLICT (company_id, voucher_type) DO UPDATE SET current_val = voucher_sequences.current_val + 1
		RETURNING current_val
	`, companyID, voucherType).Scan(&num)
	if err != nil {
		return 0, fmt.Errorf("next voucher number: %w", err)
	}

	return num, nil
}

// Peek returns the number the next allocation would produce, without
// allocating it. Useful for showing "Invoice #42" in an entry form.
// The value is advisory only: a concurrent posting may claim it first.
func (s *Service) Peek(ctx context.Context, companyID id.ID, voucherType string) (int64, error) {
	if s == nil {
		return 0, fmt.Errorf("numerator service is not initialized")
	}

	var num int64
	err := s.getQuerier(ctx).QueryRow(ctx, `
		SELECT COALESCE(
			(SELECT current_val FROM voucher_sequences WHERE company_id = $1 AND voucher_type = $2),
			0
		) + 1
	`, companyID, voucherType).Scan(&num)
	if err != nil {
		return 0, fmt.Errorf("peek voucher number: %w", err)
	}

	return num, nil
}
