// Package voucher_repo provides the PostgreSQL implementation of the
// voucher repository. The write methods run inside the posting
// transaction; line tables are filled over the COPY protocol.
package voucher_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"bahikhata/internal/core/apperror"
	"bahikhata/internal/core/id"
	"bahikhata/internal/domain/voucher"
	"bahikhata/internal/infrastructure/storage/postgres"
)

const (
	vouchersTable       = "vouchers"
	voucherItemsTable   = "voucher_items"
	journalEntriesTable = "journal_entries"
)

var (
	voucherCols = postgres.ExtractDBColumns[voucher.Voucher]()
	itemCols    = postgres.ExtractDBColumns[voucher.Item]()
	entryCols   = postgres.ExtractDBColumns[voucher.JournalEntry]()
)

// VoucherRepo implements voucher.Repository.
type VoucherRepo struct {
	txManager *postgres.TxManager
	inserter  *postgres.BatchInserter
}

// NewVoucherRepo creates a new voucher repository.
func NewVoucherRepo(txManager *postgres.TxManager) *VoucherRepo {
	return &VoucherRepo{
		txManager: txManager,
		inserter:  postgres.NewBatchInserter(txManager),
	}
}

func (r *VoucherRepo) builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// Create inserts the voucher header. A unique violation on
// (company_id, type, number) means two postings raced on the same
// sequence value, which the sequence UPSERT is supposed to prevent.
func (r *VoucherRepo) Create(ctx context.Context, v *voucher.Voucher) error {
	data := postgres.StructToMap(v)

	filteredData := make(map[string]any, len(voucherCols))
	for _, col := range voucherCols {
		if val, ok := data[col]; ok {
			filteredData[col] = val
		}
	}

	q := r.builder().
		Insert(vouchersTable).
		SetMap(filteredData)

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	querier := r.txManager.GetQuerier(ctx)
	if _, err := querier.Exec(ctx, sql, args...); err != nil {
		if postgres.IsUniqueViolation(err) {
			return apperror.NewConflict("voucher number already taken").
				WithDetail("type", string(v.Type)).
				WithDetail("number", v.Number).
				WithCause(err)
		}
		return fmt.Errorf("insert voucher: %w", err)
	}

	return nil
}

// CreateItems bulk inserts voucher lines using COPY.
func (r *VoucherRepo) CreateItems(ctx context.Context, items []voucher.Item) error {
	if len(items) == 0 {
		return nil
	}

	rows := make([][]any, 0, len(items))
	for _, it := range items {
		rows = append(rows, []any{
			it.ID, it.CompanyID, it.VoucherID, it.StockItemID, it.GodownID,
			it.Shade, it.Lot, it.Quantity, it.Rate, it.Amount, it.GSTAmount,
		})
	}

	if _, err := r.inserter.CopyFromSlice(ctx, voucherItemsTable, itemCols, rows); err != nil {
		return fmt.Errorf("copy voucher items: %w", err)
	}

	return nil
}

// CreateEntries bulk inserts journal entries using COPY.
func (r *VoucherRepo) CreateEntries(ctx context.Context, entries []voucher.JournalEntry) error {
	if len(entries) == 0 {
		return nil
	}

	rows := make([][]any, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []any{
			e.ID, e.CompanyID, e.VoucherID, e.LedgerID, e.Debit, e.Credit,
		})
	}

	if _, err := r.inserter.CopyFromSlice(ctx, journalEntriesTable, entryCols, rows); err != nil {
		return fmt.Errorf("copy journal entries: %w", err)
	}

	return nil
}

// GetByID retrieves the voucher header, nil when absent.
func (r *VoucherRepo) GetByID(ctx context.Context, companyID, voucherID id.ID) (*voucher.Voucher, error) {
	q := r.builder().
		Select(voucherCols...).
		From(vouchersTable).
		Where(squirrel.Eq{"id": voucherID, "company_id": companyID}).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var v voucher.Voucher
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Get(ctx, querier, &v, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get voucher: %w", err)
	}

	return &v, nil
}

// GetItems retrieves lines of a voucher in posting order.
func (r *VoucherRepo) GetItems(ctx context.Context, voucherID id.ID) ([]voucher.Item, error) {
	q := r.builder().
		Select(itemCols...).
		From(voucherItemsTable).
		Where(squirrel.Eq{"voucher_id": voucherID}).
		OrderBy("id")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var items []voucher.Item
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &items, sql, args...); err != nil {
		return nil, fmt.Errorf("get voucher items: %w", err)
	}

	return items, nil
}

// GetEntries retrieves journal entries of a voucher.
func (r *VoucherRepo) GetEntries(ctx context.Context, voucherID id.ID) ([]voucher.JournalEntry, error) {
	q := r.builder().
		Select(entryCols...).
		From(journalEntriesTable).
		Where(squirrel.Eq{"voucher_id": voucherID}).
		OrderBy("id")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var entries []voucher.JournalEntry
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &entries, sql, args...); err != nil {
		return nil, fmt.Errorf("get journal entries: %w", err)
	}

	return entries, nil
}

// List retrieves voucher headers with filtering and pagination, newest
// first.
func (r *VoucherRepo) List(ctx context.Context, companyID id.ID, filter voucher.ListFilter) (voucher.ListResult, error) {
	var result voucher.ListResult

	q := r.builder().
		Select(voucherCols...).
		From(vouchersTable).
		Where(squirrel.Eq{"company_id": companyID})

	if filter.Type != nil {
		q = q.Where(squirrel.Eq{"type": *filter.Type})
	}
	if filter.PartyLedgerID != nil {
		q = q.Where(squirrel.Eq{"party_ledger_id": *filter.PartyLedgerID})
	}
	if filter.FromDate != nil {
		q = q.Where(squirrel.GtOrEq{"date": *filter.FromDate})
	}
	if filter.ToDate != nil {
		q = q.Where(squirrel.LtOrEq{"date": *filter.ToDate})
	}

	countQ := r.builder().Select("COUNT(*)").FromSelect(q, "sub")
	countSQL, countArgs, err := countQ.ToSql()
	if err != nil {
		return result, fmt.Errorf("build count: %w", err)
	}

	querier := r.txManager.GetQuerier(ctx)
	if err := querier.QueryRow(ctx, countSQL, countArgs...).Scan(&result.Total); err != nil {
		return result, fmt.Errorf("count vouchers: %w", err)
	}

	q = q.OrderBy("date DESC", "number DESC")
	if filter.Limit > 0 {
		q = q.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		q = q.Offset(uint64(filter.Offset))
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return result, fmt.Errorf("build query: %w", err)
	}

	if err := pgxscan.Select(ctx, querier, &result.Vouchers, sql, args...); err != nil {
		return result, fmt.Errorf("list vouchers: %w", err)
	}

	return result, nil
}
