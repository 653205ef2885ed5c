package reports

import (
	"context"
	"fmt"

	"bahikhata/internal/core/apperror"
	"bahikhata/internal/core/id"
	"bahikhata/internal/core/tx"
	"bahikhata/internal/core/types"
)

// Groups whose ledgers appear on the outstanding report.
var outstandingGroups = []string{"Sundry Debtors", "Sundry Creditors"}

// Service computes the read models from raw repository aggregates.
// Reports that issue more than one query run in a read-only
// transaction so they see one snapshot of the books.
type Service struct {
	repo      Repository
	txManager tx.ReadOnlyManager
}

// NewService creates a reports service.
func NewService(repo Repository, txManager tx.ReadOnlyManager) *Service {
	return &Service{repo: repo, txManager: txManager}
}

// signedBalance converts raw sums into the ledger's natural-side
// balance: opening + Σdebit − Σcredit for debit-nature ledgers,
// opening + Σcredit − Σdebit for credit-nature ones.
func signedBalance(raw LedgerRaw) types.Money {
	net := raw.DebitTotal - raw.CreditTotal
	if raw.Nature.IsDebitNature() {
		return raw.OpeningBalance + net
	}
	return raw.OpeningBalance - net
}

// debitSideValue expresses a ledger's balance on the debit side,
// regardless of nature. Positive lands in the trial balance debit
// column, negative in the credit column.
func debitSideValue(raw LedgerRaw) types.Money {
	net := raw.DebitTotal - raw.CreditTotal
	if raw.Nature.IsDebitNature() {
		return net + raw.OpeningBalance
	}
	return net - raw.OpeningBalance
}

// GetLedgerBalance returns one ledger's signed balance.
func (s *Service) GetLedgerBalance(ctx context.Context, companyID, ledgerID id.ID) (*LedgerBalance, error) {
	raw, err := s.repo.GetLedgerRaw(ctx, companyID, ledgerID)
	if err != nil {
		return nil, fmt.Errorf("get ledger aggregate: %w", err)
	}
	if raw == nil {
		return nil, apperror.NewNotFound("ledger", ledgerID.String())
	}

	return &LedgerBalance{
		LedgerID:   raw.LedgerID,
		LedgerName: raw.LedgerName,
		GroupName:  raw.GroupName,
		Nature:     raw.Nature,
		Balance:    signedBalance(*raw),
	}, nil
}

// GetTrialBalance classifies every ledger into a debit or credit
// column. The column totals are always equal when the posted journal
// is balanced; a mismatch means corrupted data, not a report bug.
func (s *Service) GetTrialBalance(ctx context.Context, companyID id.ID) (*TrialBalance, error) {
	raws, err := s.repo.ListLedgerRaws(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("list ledger aggregates: %w", err)
	}

	report := &TrialBalance{Rows: make([]TrialBalanceRow, 0, len(raws))}
	for _, raw := range raws {
		row := TrialBalanceRow{
			LedgerID:   raw.LedgerID,
			LedgerName: raw.LedgerName,
			GroupName:  raw.GroupName,
		}

		v := debitSideValue(raw)
		switch {
		case v.IsPositive():
			row.Debit = v
		case v.IsNegative():
			row.Credit = v.Neg()
		}

		report.Rows = append(report.Rows, row)
		report.TotalDebit += row.Debit
		report.TotalCredit += row.Credit
	}

	return report, nil
}

// GetStockSummary returns the per-item quantity overview.
func (s *Service) GetStockSummary(ctx context.Context, companyID id.ID) ([]StockSummaryRow, error) {
	rows, err := s.repo.GetStockSummary(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("get stock summary: %w", err)
	}
	return rows, nil
}

// GetOutstanding returns non-zero balances of party ledgers under the
// Sundry Debtors and Sundry Creditors groups.
func (s *Service) GetOutstanding(ctx context.Context, companyID id.ID) ([]LedgerBalance, error) {
	raws, err := s.repo.ListLedgerRawsByGroups(ctx, companyID, outstandingGroups)
	if err != nil {
		return nil, fmt.Errorf("list party aggregates: %w", err)
	}

	out := make([]LedgerBalance, 0, len(raws))
	for _, raw := range raws {
		balance := signedBalance(raw)
		if balance.IsZero() {
			continue
		}
		out = append(out, LedgerBalance{
			LedgerID:   raw.LedgerID,
			LedgerName: raw.LedgerName,
			GroupName:  raw.GroupName,
			Nature:     raw.Nature,
			Balance:    balance,
		})
	}
	return out, nil
}

// GetLedgerStatement returns the chronological statement of one ledger
// with a running balance in the ledger's natural convention. The
// header aggregate and the lines come from separate queries, so both
// read the same snapshot: a voucher posted in between would otherwise
// desync the closing balance from the lines.
func (s *Service) GetLedgerStatement(ctx context.Context, companyID, ledgerID id.ID, filter StatementFilter) (*LedgerStatement, error) {
	var (
		raw   *LedgerRaw
		lines []StatementLine
	)
	err := s.txManager.ReadOnly(ctx, func(ctx context.Context) error {
		var err error
		raw, err = s.repo.GetLedgerRaw(ctx, companyID, ledgerID)
		if err != nil {
			return fmt.Errorf("get ledger aggregate: %w", err)
		}
		if raw == nil {
			return apperror.NewNotFound("ledger", ledgerID.String())
		}

		lines, err = s.repo.GetStatementLines(ctx, companyID, ledgerID, filter)
		if err != nil {
			return fmt.Errorf("get statement lines: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	statement := &LedgerStatement{
		LedgerID:       raw.LedgerID,
		LedgerName:     raw.LedgerName,
		Nature:         raw.Nature,
		OpeningBalance: raw.OpeningBalance,
		Lines:          lines,
	}

	running := raw.OpeningBalance
	for i, line := range lines {
		net := line.Debit - line.Credit
		if raw.Nature.IsDebitNature() {
			running += net
		} else {
			running -= net
		}
		statement.Lines[i].RunningBalance = running
	}
	statement.ClosingBalance = running

	return statement, nil
}
