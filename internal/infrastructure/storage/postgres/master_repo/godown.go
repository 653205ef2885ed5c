package master_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"bahikhata/internal/core/id"
	"bahikhata/internal/domain/masters/godown"
	"bahikhata/internal/infrastructure/storage/postgres"
)

const godownsTable = "godowns"

// GodownRepo implements godown.Repository.
type GodownRepo struct {
	*baseMasterRepo[*godown.Godown]
}

// NewGodownRepo creates a new godown repository.
func NewGodownRepo(txManager *postgres.TxManager) *GodownRepo {
	return &GodownRepo{
		baseMasterRepo: newBaseMasterRepo(
			txManager,
			godownsTable,
			postgres.ExtractDBColumns[godown.Godown](),
			func() *godown.Godown { return &godown.Godown{} },
		),
	}
}

// Create inserts a new godown.
func (r *GodownRepo) Create(ctx context.Context, g *godown.Godown) error {
	return r.create(ctx, g)
}

// Update rewrites a godown.
func (r *GodownRepo) Update(ctx context.Context, g *godown.Godown) error {
	return r.update(ctx, g)
}

// Delete removes a godown.
func (r *GodownRepo) Delete(ctx context.Context, companyID, godownID id.ID) error {
	return r.deleteRow(ctx, companyID, godownID)
}

// GetByID retrieves a godown, nil when absent.
func (r *GodownRepo) GetByID(ctx context.Context, companyID, godownID id.ID) (*godown.Godown, error) {
	return r.getOne(ctx, squirrel.Eq{"id": godownID, "company_id": companyID})
}

// List returns all godowns of a company ordered by name.
func (r *GodownRepo) List(ctx context.Context, companyID id.ID) ([]*godown.Godown, error) {
	q := r.baseSelect().
		Where(squirrel.Eq{"company_id": companyID}).
		OrderBy("name")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var godowns []*godown.Godown
	if err := pgxscan.Select(ctx, r.querier(ctx), &godowns, sql, args...); err != nil {
		return nil, fmt.Errorf("list godowns: %w", err)
	}

	return godowns, nil
}

// IsReferenced reports whether any stock movement points at the godown.
func (r *GodownRepo) IsReferenced(ctx context.Context, companyID, godownID id.ID) (bool, error) {
	return r.existsWhere(ctx, "stock_movements", squirrel.Eq{
		"company_id": companyID,
		"godown_id":  godownID,
	})
}
