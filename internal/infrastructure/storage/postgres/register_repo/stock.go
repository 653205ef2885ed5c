// Package register_repo provides the PostgreSQL implementation of the
// stock movement register.
package register_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"

	"bahikhata/internal/core/id"
	"bahikhata/internal/core/types"
	"bahikhata/internal/domain/registers/stock"
	"bahikhata/internal/infrastructure/storage/postgres"
)

const stockMovementsTable = "stock_movements"

var movementCols = postgres.ExtractDBColumns[stock.Movement]()

// StockRepo implements stock.Repository. The movement log is
// append-only; there is no delete path.
type StockRepo struct {
	txManager *postgres.TxManager
	builder   squirrel.StatementBuilderType
}

// NewStockRepo creates a new stock register repository.
func NewStockRepo(txManager *postgres.TxManager) *StockRepo {
	return &StockRepo{
		txManager: txManager,
		builder:   squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// CreateMovements batch inserts movements. Uses COPY when inside a
// transaction, which voucher posting always is.
func (r *StockRepo) CreateMovements(ctx context.Context, movements []stock.Movement) error {
	if len(movements) == 0 {
		return nil
	}

	if tx := r.txManager.GetTx(ctx); tx != nil {
		inserter := postgres.NewBatchInserter(r.txManager)
		rows := make([][]any, 0, len(movements))
		for _, m := range movements {
			rows = append(rows, []any{
				m.ID, m.CompanyID, m.VoucherID, m.StockItemID, m.GodownID,
				m.Shade, m.Lot, m.Quantity, m.Type, m.CreatedAt,
			})
		}
		if _, err := inserter.CopyFromSlice(ctx, stockMovementsTable, movementCols, rows); err != nil {
			return fmt.Errorf("copy movements: %w", err)
		}
		return nil
	}

	q := r.builder.Insert(stockMovementsTable).Columns(movementCols...)
	for _, m := range movements {
		q = q.Values(
			m.ID, m.CompanyID, m.VoucherID, m.StockItemID, m.GodownID,
			m.Shade, m.Lot, m.Quantity, m.Type, m.CreatedAt,
		)
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	querier := r.txManager.GetQuerier(ctx)
	if _, err := querier.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert movements: %w", err)
	}

	return nil
}

// GetMovementsByVoucher retrieves all movements of one voucher.
func (r *StockRepo) GetMovementsByVoucher(ctx context.Context, companyID, voucherID id.ID) ([]stock.Movement, error) {
	q := r.builder.Select(movementCols...).
		From(stockMovementsTable).
		Where(squirrel.Eq{"company_id": companyID, "voucher_id": voucherID}).
		OrderBy("created_at")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var movements []stock.Movement
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &movements, sql, args...); err != nil {
		return nil, fmt.Errorf("select movements: %w", err)
	}

	return movements, nil
}

// CurrentQuantity computes the signed sum of movements for an item,
// optionally narrowed by godown, shade and lot.
func (r *StockRepo) CurrentQuantity(ctx context.Context, companyID, stockItemID id.ID, filter stock.Filter) (types.Quantity, error) {
	q := r.builder.Select(
		"COALESCE(SUM(CASE WHEN movement_type = 'IN' THEN quantity ELSE -quantity END), 0)",
	).
		From(stockMovementsTable).
		Where(squirrel.Eq{"company_id": companyID, "stock_item_id": stockItemID})

	q = applyDimensionFilter(q, filter)

	sql, args, err := q.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build query: %w", err)
	}

	var scaled int64
	querier := r.txManager.GetQuerier(ctx)
	err = querier.QueryRow(ctx, sql, args...).Scan(&scaled)
	if err != nil && err != pgx.ErrNoRows {
		return 0, fmt.Errorf("sum movements: %w", err)
	}

	return types.NewQuantityFromInt64Scaled(scaled), nil
}

// MovementHistory lists movements of an item, newest first.
func (r *StockRepo) MovementHistory(ctx context.Context, companyID, stockItemID id.ID, filter stock.HistoryFilter) ([]stock.Movement, error) {
	q := r.builder.Select(movementCols...).
		From(stockMovementsTable).
		Where(squirrel.Eq{"company_id": companyID, "stock_item_id": stockItemID})

	q = applyDimensionFilter(q, filter.Filter)

	if filter.FromDate != nil {
		q = q.Where(squirrel.GtOrEq{"created_at": *filter.FromDate})
	}
	if filter.ToDate != nil {
		q = q.Where(squirrel.LtOrEq{"created_at": *filter.ToDate})
	}

	q = q.OrderBy("created_at DESC")
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

	var movements []stock.Movement
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &movements, sql, args...); err != nil {
		return nil, fmt.Errorf("select history: %w", err)
	}

	return movements, nil
}

func applyDimensionFilter(q squirrel.SelectBuilder, filter stock.Filter) squirrel.SelectBuilder {
	if filter.GodownID != nil {
		q = q.Where(squirrel.Eq{"godown_id": *filter.GodownID})
	}
	if filter.Shade != "" {
		q = q.Where(squirrel.Eq{"shade": filter.Shade})
	}
	if filter.Lot != "" {
		q = q.Where(squirrel.Eq{"lot": filter.Lot})
	}
	return q
}

// Ensure interface compliance.
var _ stock.Repository = (*StockRepo)(nil)
