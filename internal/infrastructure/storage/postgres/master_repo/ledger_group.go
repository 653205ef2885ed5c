package master_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"bahikhata/internal/core/id"
	"bahikhata/internal/domain/masters/ledgergroup"
	"bahikhata/internal/infrastructure/storage/postgres"
)

const ledgerGroupsTable = "ledger_groups"

// LedgerGroupRepo implements ledgergroup.Repository.
type LedgerGroupRepo struct {
	*baseMasterRepo[*ledgergroup.LedgerGroup]
}

// NewLedgerGroupRepo creates a new ledger group repository.
func NewLedgerGroupRepo(txManager *postgres.TxManager) *LedgerGroupRepo {
	return &LedgerGroupRepo{
		baseMasterRepo: newBaseMasterRepo(
			txManager,
			ledgerGroupsTable,
			postgres.ExtractDBColumns[ledgergroup.LedgerGroup](),
			func() *ledgergroup.LedgerGroup { return &ledgergroup.LedgerGroup{} },
		),
	}
}

// Create inserts a new group.
func (r *LedgerGroupRepo) Create(ctx context.Context, group *ledgergroup.LedgerGroup) error {
	return r.create(ctx, group)
}

// Update rewrites a group.
func (r *LedgerGroupRepo) Update(ctx context.Context, group *ledgergroup.LedgerGroup) error {
	return r.update(ctx, group)
}

// Delete removes a group.
func (r *LedgerGroupRepo) Delete(ctx context.Context, companyID, groupID id.ID) error {
	return r.deleteRow(ctx, companyID, groupID)
}

// GetByID retrieves a group, nil when absent.
func (r *LedgerGroupRepo) GetByID(ctx context.Context, companyID, groupID id.ID) (*ledgergroup.LedgerGroup, error) {
	return r.getOne(ctx, squirrel.Eq{"id": groupID, "company_id": companyID})
}

// GetByName retrieves a group by its exact name, nil when absent.
func (r *LedgerGroupRepo) GetByName(ctx context.Context, companyID id.ID, name string) (*ledgergroup.LedgerGroup, error) {
	return r.getOne(ctx, squirrel.Eq{"name": name, "company_id": companyID})
}

// List returns all groups of a company ordered by name.
func (r *LedgerGroupRepo) List(ctx context.Context, companyID id.ID) ([]*ledgergroup.LedgerGroup, error) {
	q := r.baseSelect().
		Where(squirrel.Eq{"company_id": companyID}).
		OrderBy("name")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var groups []*ledgergroup.LedgerGroup
	if err := pgxscan.Select(ctx, r.querier(ctx), &groups, sql, args...); err != nil {
		return nil, fmt.Errorf("list ledger groups: %w", err)
	}

	return groups, nil
}

// HasLedgers reports whether any ledger belongs to the group.
func (r *LedgerGroupRepo) HasLedgers(ctx context.Context, companyID, groupID id.ID) (bool, error) {
	return r.existsWhere(ctx, ledgersTable, squirrel.Eq{
		"company_id":      companyID,
		"ledger_group_id": groupID,
	})
}

// HasChildren reports whether the group has child groups.
func (r *LedgerGroupRepo) HasChildren(ctx context.Context, companyID, groupID id.ID) (bool, error) {
	return r.existsWhere(ctx, ledgerGroupsTable, squirrel.Eq{
		"company_id": companyID,
		"parent_id":  groupID,
	})
}
