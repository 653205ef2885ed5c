package master_repo

import (
	"context"
	"reflect"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bahikhata/internal/core/id"
	"bahikhata/internal/domain/masters/ledger"
	"bahikhata/internal/infrastructure/storage/postgres"
)

// fakeRows feeds canned result sets through the pgx.Rows interface so
// scan behavior can be exercised without a database.
type fakeRows struct {
	cols []string
	data [][]any
	idx  int
}

func (r *fakeRows) Close()                        {}
func (r *fakeRows) Err() error                    { return nil }
func (r *fakeRows) CommandTag() pgconn.CommandTag { return pgconn.CommandTag{} }
func (r *fakeRows) RawValues() [][]byte           { return nil }
func (r *fakeRows) Conn() *pgx.Conn               { return nil }

func (r *fakeRows) FieldDescriptions() []pgconn.FieldDescription {
	fds := make([]pgconn.FieldDescription, len(r.cols))
	for i, col := range r.cols {
		fds[i] = pgconn.FieldDescription{Name: col}
	}
	return fds
}

func (r *fakeRows) Next() bool {
	r.idx++
	return r.idx <= len(r.data)
}

func (r *fakeRows) Scan(dest ...any) error {
	row := r.data[r.idx-1]
	for i, d := range dest {
		reflect.ValueOf(d).Elem().Set(reflect.ValueOf(row[i]))
	}
	return nil
}

func (r *fakeRows) Values() ([]any, error) { return r.data[r.idx-1], nil }

type fakeQuerier struct {
	rows *fakeRows
}

func (q *fakeQuerier) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}

func (q *fakeQuerier) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return q.rows, nil
}

func (q *fakeQuerier) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return nil
}

type fakeDB struct {
	q postgres.Querier
}

func (f fakeDB) GetQuerier(ctx context.Context) postgres.Querier { return f.q }

func newLedgerRepoWithRows(rows *fakeRows) *LedgerRepo {
	return &LedgerRepo{
		baseMasterRepo: newBaseMasterRepo(
			fakeDB{q: &fakeQuerier{rows: rows}},
			ledgersTable,
			[]string{"id", "company_id", "name"},
			func() *ledger.Ledger { return &ledger.Ledger{} },
		),
	}
}

// getOne must hand pgxscan an allocated struct: scanning a multi-column
// row through a pointer to the pointer makes scany treat the
// destination as a primitive and fail on anything wider than one
// column.
func TestGetOne_ScansMultiColumnRow(t *testing.T) {
	ledgerID := id.New()
	companyID := id.New()

	repo := newLedgerRepoWithRows(&fakeRows{
		cols: []string{"id", "company_id", "name"},
		data: [][]any{{ledgerID, companyID, "Cash"}},
	})

	got, err := repo.GetByID(context.Background(), companyID, ledgerID)
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Equal(t, ledgerID, got.ID)
	assert.Equal(t, companyID, got.CompanyID)
	assert.Equal(t, "Cash", got.Name)
}

func TestGetOne_NilWhenAbsent(t *testing.T) {
	repo := newLedgerRepoWithRows(&fakeRows{
		cols: []string{"id", "company_id", "name"},
	})

	got, err := repo.GetByID(context.Background(), id.New(), id.New())
	require.NoError(t, err)
	assert.Nil(t, got)
}
