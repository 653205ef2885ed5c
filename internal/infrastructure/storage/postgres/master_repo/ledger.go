package master_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"bahikhata/internal/core/id"
	"bahikhata/internal/domain/masters/ledger"
	"bahikhata/internal/infrastructure/storage/postgres"
)

const ledgersTable = "ledgers"

// LedgerRepo implements ledger.Repository.
type LedgerRepo struct {
	*baseMasterRepo[*ledger.Ledger]
}

// NewLedgerRepo creates a new ledger repository.
func NewLedgerRepo(txManager *postgres.TxManager) *LedgerRepo {
	return &LedgerRepo{
		baseMasterRepo: newBaseMasterRepo(
			txManager,
			ledgersTable,
			postgres.ExtractDBColumns[ledger.Ledger](),
			func() *ledger.Ledger { return &ledger.Ledger{} },
		),
	}
}

// Create inserts a new ledger.
func (r *LedgerRepo) Create(ctx context.Context, l *ledger.Ledger) error {
	return r.create(ctx, l)
}

// Update rewrites a ledger.
func (r *LedgerRepo) Update(ctx context.Context, l *ledger.Ledger) error {
	return r.update(ctx, l)
}

// Delete removes a ledger.
func (r *LedgerRepo) Delete(ctx context.Context, companyID, ledgerID id.ID) error {
	return r.deleteRow(ctx, companyID, ledgerID)
}

// GetByID retrieves a ledger, nil when absent.
func (r *LedgerRepo) GetByID(ctx context.Context, companyID, ledgerID id.ID) (*ledger.Ledger, error) {
	return r.getOne(ctx, squirrel.Eq{"id": ledgerID, "company_id": companyID})
}

// GetByName retrieves a ledger by its exact name, nil when absent.
func (r *LedgerRepo) GetByName(ctx context.Context, companyID id.ID, name string) (*ledger.Ledger, error) {
	return r.getOne(ctx, squirrel.Eq{"name": name, "company_id": companyID})
}

// GetByGroupName finds the first ledger whose group has the given name.
// The seed chart creates one ledger per trade group, so "first" is
// deterministic in practice; ties break on creation order.
func (r *LedgerRepo) GetByGroupName(ctx context.Context, companyID id.ID, groupName string) (*ledger.Ledger, error) {
	cols := make([]string, len(r.selectCols))
	for i, col := range r.selectCols {
		cols[i] = "l." + col
	}

	q := r.Builder().
		Select(cols...).
		From(ledgersTable + " l").
		Join(ledgerGroupsTable + " g ON g.id = l.ledger_group_id").
		Where(squirrel.Eq{"l.company_id": companyID, "g.name": groupName}).
		OrderBy("l.created_at").
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var l ledger.Ledger
	if err := pgxscan.Get(ctx, r.querier(ctx), &l, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get ledger by group name: %w", err)
	}

	return &l, nil
}

// List returns ledgers of a company with optional filtering.
func (r *LedgerRepo) List(ctx context.Context, companyID id.ID, filter ledger.Filter) ([]*ledger.Ledger, error) {
	q := r.baseSelect().
		Where(squirrel.Eq{"company_id": companyID})

	if filter.GroupID != nil {
		q = q.Where(squirrel.Eq{"ledger_group_id": *filter.GroupID})
	}
	if filter.Search != "" {
		q = q.Where(squirrel.ILike{"name": "%" + filter.Search + "%"})
	}

	q = q.OrderBy("name")
	if filter.Limit > 0 {
		q = q.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		q = q.Offset(uint64(filter.Offset))
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var ledgers []*ledger.Ledger
	if err := pgxscan.Select(ctx, r.querier(ctx), &ledgers, sql, args...); err != nil {
		return nil, fmt.Errorf("list ledgers: %w", err)
	}

	return ledgers, nil
}

// IsReferenced reports whether any journal entry points at the ledger.
func (r *LedgerRepo) IsReferenced(ctx context.Context, companyID, ledgerID id.ID) (bool, error) {
	return r.existsWhere(ctx, "journal_entries", squirrel.Eq{
		"company_id": companyID,
		"ledger_id":  ledgerID,
	})
}
