// Package company_repo provides PostgreSQL implementations for the
// company and user repositories.
package company_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"bahikhata/internal/core/apperror"
	"bahikhata/internal/core/id"
	"bahikhata/internal/domain/company"
	"bahikhata/internal/infrastructure/storage/postgres"
)

const companiesTable = "companies"

var companyCols = postgres.ExtractDBColumns[company.Company]()

// CompanyRepo implements company.Repository.
type CompanyRepo struct {
	txManager *postgres.TxManager
}

// NewCompanyRepo creates a new company repository.
func NewCompanyRepo(txManager *postgres.TxManager) *CompanyRepo {
	return &CompanyRepo{txManager: txManager}
}

func (r *CompanyRepo) builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// Create inserts a company.
func (r *CompanyRepo) Create(ctx context.Context, c *company.Company) error {
	data := postgres.StructToMap(c)

	filteredData := make(map[string]any, len(companyCols))
	for _, col := range companyCols {
		if val, ok := data[col]; ok {
			filteredData[col] = val
		}
	}

	q := r.builder().
		Insert(companiesTable).
		SetMap(filteredData)

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	querier := r.txManager.GetQuerier(ctx)
	if _, err := querier.Exec(ctx, sql, args...); err != nil {
		if postgres.IsUniqueViolation(err) {
			return apperror.NewDuplicate("company", "name", c.Name)
		}
		return fmt.Errorf("insert company: %w", err)
	}

	return nil
}

// GetByID retrieves a company, nil when absent.
func (r *CompanyRepo) GetByID(ctx context.Context, companyID id.ID) (*company.Company, error) {
	q := r.builder().
		Select(companyCols...).
		From(companiesTable).
		Where(squirrel.Eq{"id": companyID}).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var c company.Company
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Get(ctx, querier, &c, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get company: %w", err)
	}

	return &c, nil
}

// Ensure interface compliance.
var _ company.Repository = (*CompanyRepo)(nil)
