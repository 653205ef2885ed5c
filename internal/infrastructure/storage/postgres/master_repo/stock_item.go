package master_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"bahikhata/internal/core/id"
	"bahikhata/internal/domain/masters/stockitem"
	"bahikhata/internal/infrastructure/storage/postgres"
)

const stockItemsTable = "stock_items"

// StockItemRepo implements stockitem.Repository.
type StockItemRepo struct {
	*baseMasterRepo[*stockitem.StockItem]
}

// NewStockItemRepo creates a new stock item repository.
func NewStockItemRepo(txManager *postgres.TxManager) *StockItemRepo {
	return &StockItemRepo{
		baseMasterRepo: newBaseMasterRepo(
			txManager,
			stockItemsTable,
			postgres.ExtractDBColumns[stockitem.StockItem](),
			func() *stockitem.StockItem { return &stockitem.StockItem{} },
		),
	}
}

// Create inserts a new stock item.
func (r *StockItemRepo) Create(ctx context.Context, item *stockitem.StockItem) error {
	return r.create(ctx, item)
}

// Update rewrites a stock item.
func (r *StockItemRepo) Update(ctx context.Context, item *stockitem.StockItem) error {
	return r.update(ctx, item)
}

// Delete removes a stock item.
func (r *StockItemRepo) Delete(ctx context.Context, companyID, itemID id.ID) error {
	return r.deleteRow(ctx, companyID, itemID)
}

// GetByID retrieves a stock item, nil when absent.
func (r *StockItemRepo) GetByID(ctx context.Context, companyID, itemID id.ID) (*stockitem.StockItem, error) {
	return r.getOne(ctx, squirrel.Eq{"id": itemID, "company_id": companyID})
}

// GetByIDs retrieves several items in one query. Absent ids are simply
// missing from the result map; the caller decides whether that is an
// error.
func (r *StockItemRepo) GetByIDs(ctx context.Context, companyID id.ID, ids []id.ID) (map[id.ID]*stockitem.StockItem, error) {
	result := make(map[id.ID]*stockitem.StockItem, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	q := r.baseSelect().
		Where(squirrel.Eq{"company_id": companyID, "id": ids})

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var items []*stockitem.StockItem
	if err := pgxscan.Select(ctx, r.querier(ctx), &items, sql, args...); err != nil {
		return nil, fmt.Errorf("get stock items by ids: %w", err)
	}

	for _, item := range items {
		result[item.ID] = item
	}

	return result, nil
}

// List returns stock items of a company with optional filtering.
func (r *StockItemRepo) List(ctx context.Context, companyID id.ID, filter stockitem.Filter) ([]*stockitem.StockItem, error) {
	q := r.baseSelect().
		Where(squirrel.Eq{"company_id": companyID})

	if filter.Category != "" {
		q = q.Where(squirrel.Eq{"category": filter.Category})
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		q = q.Where(squirrel.Or{
			squirrel.ILike{"name": pattern},
			squirrel.ILike{"article_no": pattern},
		})
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

	var items []*stockitem.StockItem
	if err := pgxscan.Select(ctx, r.querier(ctx), &items, sql, args...); err != nil {
		return nil, fmt.Errorf("list stock items: %w", err)
	}

	return items, nil
}

// IsReferenced reports whether any voucher item or stock movement
// points at the item.
func (r *StockItemRepo) IsReferenced(ctx context.Context, companyID, itemID id.ID) (bool, error) {
	inVouchers, err := r.existsWhere(ctx, "voucher_items", squirrel.Eq{
		"company_id":    companyID,
		"stock_item_id": itemID,
	})
	if err != nil || inVouchers {
		return inVouchers, err
	}

	return r.existsWhere(ctx, "stock_movements", squirrel.Eq{
		"company_id":    companyID,
		"stock_item_id": itemID,
	})
}
