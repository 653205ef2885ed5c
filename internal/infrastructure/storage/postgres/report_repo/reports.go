// Package report_repo provides the PostgreSQL implementation of the
// report repository. Aggregation queries are hand-written SQL; they
// join ledgers, groups and journal entries and return raw unsigned
// sums for the service to interpret.
package report_repo

import (
	"context"
	"fmt"

	"github.com/georgysavva/scany/v2/pgxscan"

	"bahikhata/internal/core/id"
	"bahikhata/internal/domain/reports"
	"bahikhata/internal/infrastructure/storage/postgres"
)

// ReportRepo implements reports.Repository.
type ReportRepo struct {
	txManager *postgres.TxManager
}

// NewReportRepo creates a new report repository.
func NewReportRepo(txManager *postgres.TxManager) *ReportRepo {
	return &ReportRepo{txManager: txManager}
}

const ledgerRawSelect = `
	SELECT
		l.id AS ledger_id,
		l.name AS ledger_name,
		g.name AS group_name,
		g.nature AS nature,
		l.opening_balance AS opening_balance,
		COALESCE(SUM(je.debit), 0) AS debit_total,
		COALESCE(SUM(je.credit), 0) AS credit_total
	FROM ledgers l
	JOIN ledger_groups g ON g.id = l.ledger_group_id
	LEFT JOIN journal_entries je ON je.ledger_id = l.id
`

// GetLedgerRaw aggregates one ledger, nil when absent.
func (r *ReportRepo) GetLedgerRaw(ctx context.Context, companyID, ledgerID id.ID) (*reports.LedgerRaw, error) {
	query := ledgerRawSelect + `
	WHERE l.company_id = $1 AND l.id = $2
	GROUP BY l.id, l.name, g.name, g.nature, l.opening_balance
	`

	var raw reports.LedgerRaw
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Get(ctx, querier, &raw, query, companyID, ledgerID); err != nil {
		if pgxscan.NotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("ledger aggregate: %w", err)
	}

	return &raw, nil
}

// ListLedgerRaws aggregates every ledger of the company.
func (r *ReportRepo) ListLedgerRaws(ctx context.Context, companyID id.ID) ([]reports.LedgerRaw, error) {
	query := ledgerRawSelect + `
	WHERE l.company_id = $1
	GROUP BY l.id, l.name, g.name, g.nature, l.opening_balance
	ORDER BY g.name, l.name
	`

	var raws []reports.LedgerRaw
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &raws, query, companyID); err != nil {
		return nil, fmt.Errorf("ledger aggregates: %w", err)
	}

	return raws, nil
}

// ListLedgerRawsByGroups aggregates ledgers whose group name is in
// groupNames.
func (r *ReportRepo) ListLedgerRawsByGroups(ctx context.Context, companyID id.ID, groupNames []string) ([]reports.LedgerRaw, error) {
	query := ledgerRawSelect + `
	WHERE l.company_id = $1 AND g.name = ANY($2)
	GROUP BY l.id, l.name, g.name, g.nature, l.opening_balance
	ORDER BY g.name, l.name
	`

	var raws []reports.LedgerRaw
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &raws, query, companyID, groupNames); err != nil {
		return nil, fmt.Errorf("ledger aggregates by group: %w", err)
	}

	return raws, nil
}

// GetStockSummary returns per-item current quantities joined with the
// item master. Items without movements show zero rather than being
// dropped.
func (r *ReportRepo) GetStockSummary(ctx context.Context, companyID id.ID) ([]reports.StockSummaryRow, error) {
	query := `
	SELECT
		si.id AS stock_item_id,
		si.name AS item_name,
		si.article_no AS article_no,
		si.category AS category,
		si.unit AS unit,
		COALESCE(SUM(CASE WHEN m.movement_type = 'IN' THEN m.quantity ELSE -m.quantity END), 0) AS current_qty
	FROM stock_items si
	LEFT JOIN stock_movements m ON m.stock_item_id = si.id
	WHERE si.company_id = $1
	GROUP BY si.id, si.name, si.article_no, si.category, si.unit
	ORDER BY si.name
	`

	var rows []reports.StockSummaryRow
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &rows, query, companyID); err != nil {
		return nil, fmt.Errorf("stock summary: %w", err)
	}

	return rows, nil
}

// GetStatementLines lists a ledger's journal entries joined with
// voucher headers, oldest first.
func (r *ReportRepo) GetStatementLines(ctx context.Context, companyID, ledgerID id.ID, filter reports.StatementFilter) ([]reports.StatementLine, error) {
	query := `
	SELECT
		v.id AS voucher_id,
		v.type AS voucher_type,
		v.number AS voucher_number,
		v.date AS date,
		v.narration AS narration,
		je.debit AS debit,
		je.credit AS credit
	FROM journal_entries je
	JOIN vouchers v ON v.id = je.voucher_id
	WHERE je.company_id = $1 AND je.ledger_id = $2
	`
	args := []any{companyID, ledgerID}
	argIndex := 3

	if filter.FromDate != nil {
		query += fmt.Sprintf(" AND v.date >= $%d", argIndex)
		args = append(args, *filter.FromDate)
		argIndex++
	}
	if filter.ToDate != nil {
		query += fmt.Sprintf(" AND v.date <= $%d", argIndex)
		args = append(args, *filter.ToDate)
		argIndex++
	}

	query += " ORDER BY v.date, v.number, je.id"

	var lines []reports.StatementLine
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &lines, query, args...); err != nil {
		return nil, fmt.Errorf("statement lines: %w", err)
	}

	return lines, nil
}

// Ensure interface compliance.
var _ reports.Repository = (*ReportRepo)(nil)
