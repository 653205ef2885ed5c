// Package master_repo provides PostgreSQL implementations for the
// master data repositories. Every query is scoped by company_id.
package master_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"

	"bahikhata/internal/core/apperror"
	"bahikhata/internal/core/id"
	"bahikhata/internal/infrastructure/storage/postgres"
)

// querierProvider yields the querier for a context: the open
// transaction when one is present, the pool otherwise. Satisfied by
// postgres.TxManager.
type querierProvider interface {
	GetQuerier(ctx context.Context) postgres.Querier
}

// baseMasterRepo provides common CRUD plumbing for master entities.
// Embed this in specific master repositories. newFn allocates the
// entity getOne scans into; T is always a pointer type, and pgxscan
// needs the allocated struct, not a pointer to the pointer.
type baseMasterRepo[T any] struct {
	db         querierProvider
	tableName  string
	selectCols []string
	newFn      func() T
}

func newBaseMasterRepo[T any](db querierProvider, tableName string, selectCols []string, newFn func() T) *baseMasterRepo[T] {
	return &baseMasterRepo[T]{
		db:         db,
		tableName:  tableName,
		selectCols: selectCols,
		newFn:      newFn,
	}
}

// Builder returns a new squirrel builder with PostgreSQL placeholder format.
func (r *baseMasterRepo[T]) Builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

func (r *baseMasterRepo[T]) querier(ctx context.Context) postgres.Querier {
	return r.db.GetQuerier(ctx)
}

// create inserts an entity using its "db" tags.
func (r *baseMasterRepo[T]) create(ctx context.Context, entity any) error {
	data := postgres.StructToMap(entity)
	if len(data) == 0 {
		return fmt.Errorf("no db tags found in entity")
	}

	filteredData := make(map[string]any, len(r.selectCols))
	for _, col := range r.selectCols {
		if val, ok := data[col]; ok {
			filteredData[col] = val
		}
	}

	q := r.Builder().
		Insert(r.tableName).
		SetMap(filteredData)

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.querier(ctx).Exec(ctx, sql, args...); err != nil {
		if postgres.IsUniqueViolation(err) {
			return apperror.NewDuplicate(r.tableName, "name", fmt.Sprint(data["name"]))
		}
		return fmt.Errorf("insert %s: %w", r.tableName, err)
	}

	return nil
}

// update rewrites all mutable columns of an entity, keyed by company
// and id.
func (r *baseMasterRepo[T]) update(ctx context.Context, entity any) error {
	data := postgres.StructToMap(entity)
	if len(data) == 0 {
		return fmt.Errorf("no db tags found in entity")
	}

	entityID, ok := data["id"]
	if !ok {
		return fmt.Errorf("entity has no 'id' field with db tag")
	}
	companyID, ok := data["company_id"]
	if !ok {
		return fmt.Errorf("entity has no 'company_id' field with db tag")
	}

	filteredData := make(map[string]any, len(r.selectCols))
	for _, col := range r.selectCols {
		switch col {
		case "id", "company_id", "created_at":
			continue
		}
		if val, ok := data[col]; ok {
			filteredData[col] = val
		}
	}

	q := r.Builder().
		Update(r.tableName).
		SetMap(filteredData).
		Where(squirrel.Eq{"id": entityID, "company_id": companyID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	result, err := r.querier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		if postgres.IsUniqueViolation(err) {
			return apperror.NewDuplicate(r.tableName, "name", fmt.Sprint(data["name"]))
		}
		return fmt.Errorf("update %s: %w", r.tableName, err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound(r.tableName, fmt.Sprint(entityID))
	}

	return nil
}

func (r *baseMasterRepo[T]) baseSelect() squirrel.SelectBuilder {
	return r.Builder().
		Select(r.selectCols...).
		From(r.tableName)
}

// getOne fetches a single entity matching the condition, or the zero
// value when no row exists. Absence is not an error at this layer.
func (r *baseMasterRepo[T]) getOne(ctx context.Context, where squirrel.Eq) (T, error) {
	var zero T

	q := r.baseSelect().Where(where).Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return zero, fmt.Errorf("build query: %w", err)
	}

	entity := r.newFn()
	if err := pgxscan.Get(ctx, r.querier(ctx), entity, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return zero, nil
		}
		return zero, fmt.Errorf("get %s: %w", r.tableName, err)
	}

	return entity, nil
}

// deleteRow removes one row scoped by company.
func (r *baseMasterRepo[T]) deleteRow(ctx context.Context, companyID, entityID id.ID) error {
	q := r.Builder().
		Delete(r.tableName).
		Where(squirrel.Eq{"id": entityID, "company_id": companyID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	result, err := r.querier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		if postgres.IsForeignKeyViolation(err) {
			return apperror.NewConflict("record is referenced by other records").
				WithDetail("entity", r.tableName).
				WithDetail("id", entityID.String()).
				WithCause(err)
		}
		return fmt.Errorf("delete %s: %w", r.tableName, err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound(r.tableName, entityID.String())
	}

	return nil
}

// existsWhere runs an existence probe against an arbitrary table.
func (r *baseMasterRepo[T]) existsWhere(ctx context.Context, table string, where squirrel.Eq) (bool, error) {
	q := r.Builder().
		Select("1").
		From(table).
		Where(where).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return false, fmt.Errorf("build query: %w", err)
	}

	var one int
	err = r.querier(ctx).QueryRow(ctx, sql, args...).Scan(&one)
	if err == pgx.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("exists %s: %w", table, err)
	}

	return true, nil
}
