package reports

import (
	"context"

	"bahikhata/internal/core/id"
)

// Repository defines report data access. All methods return raw sums;
// sign conventions are applied by the service.
type Repository interface {
	// GetLedgerRaw aggregates one ledger, nil when the ledger does not
	// exist in the company.
	GetLedgerRaw(ctx context.Context, companyID, ledgerID id.ID) (*LedgerRaw, error)

	// ListLedgerRaws aggregates every ledger of the company.
	ListLedgerRaws(ctx context.Context, companyID id.ID) ([]LedgerRaw, error)

	// ListLedgerRawsByGroups aggregates ledgers whose group name is in
	// groupNames. Used for the outstanding report.
	ListLedgerRawsByGroups(ctx context.Context, companyID id.ID, groupNames []string) ([]LedgerRaw, error)

	// GetStockSummary returns per-item current quantities joined with
	// the item master.
	GetStockSummary(ctx context.Context, companyID id.ID) ([]StockSummaryRow, error)

	// GetStatementLines lists a ledger's journal entries joined with
	// voucher headers, oldest first.
	GetStatementLines(ctx context.Context, companyID, ledgerID id.ID, filter StatementFilter) ([]StatementLine, error)
}
