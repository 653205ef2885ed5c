package reports

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bahikhata/internal/core/apperror"
	"bahikhata/internal/core/id"
	"bahikhata/internal/core/types"
	"bahikhata/internal/domain/masters/ledgergroup"
)

type mockTxManager struct {
	readOnlyCalls int
}

func (m *mockTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (m *mockTxManager) ReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	m.readOnlyCalls++
	return fn(ctx)
}

type mockRepo struct {
	raws  []LedgerRaw
	rows  []StockSummaryRow
	lines []StatementLine
}

func (m *mockRepo) GetLedgerRaw(ctx context.Context, companyID, ledgerID id.ID) (*LedgerRaw, error) {
	for i := range m.raws {
		if m.raws[i].LedgerID == ledgerID {
			return &m.raws[i], nil
		}
	}
	return nil, nil
}

func (m *mockRepo) ListLedgerRaws(ctx context.Context, companyID id.ID) ([]LedgerRaw, error) {
	return m.raws, nil
}

func (m *mockRepo) ListLedgerRawsByGroups(ctx context.Context, companyID id.ID, groupNames []string) ([]LedgerRaw, error) {
	match := make(map[string]bool, len(groupNames))
	for _, g := range groupNames {
		match[g] = true
	}
	var out []LedgerRaw
	for _, raw := range m.raws {
		if match[raw.GroupName] {
			out = append(out, raw)
		}
	}
	return out, nil
}

func (m *mockRepo) GetStockSummary(ctx context.Context, companyID id.ID) ([]StockSummaryRow, error) {
	return m.rows, nil
}

func (m *mockRepo) GetStatementLines(ctx context.Context, companyID, ledgerID id.ID, filter StatementFilter) ([]StatementLine, error) {
	return m.lines, nil
}

func raw(name, group string, nature ledgergroup.Nature, opening, debit, credit string) LedgerRaw {
	return LedgerRaw{
		LedgerID:       id.New(),
		LedgerName:     name,
		GroupName:      group,
		Nature:         nature,
		OpeningBalance: types.MustMoney(opening),
		DebitTotal:     types.MustMoney(debit),
		CreditTotal:    types.MustMoney(credit),
	}
}

// A debtor who bought for 5250 and paid 2000 owes 3250; the balance is
// debit-positive for an asset ledger.
func TestGetLedgerBalance_DebitNature(t *testing.T) {
	repo := &mockRepo{raws: []LedgerRaw{
		raw("Mehta Fabrics", "Sundry Debtors", ledgergroup.NatureAsset, "0", "5250", "2000"),
	}}
	svc := NewService(repo, &mockTxManager{})

	b, err := svc.GetLedgerBalance(context.Background(), id.New(), repo.raws[0].LedgerID)
	require.NoError(t, err)
	assert.Equal(t, types.MustMoney("3250"), b.Balance)
}

// A creditor the company bought from for 5250: credit-positive for a
// liability ledger.
func TestGetLedgerBalance_CreditNature(t *testing.T) {
	repo := &mockRepo{raws: []LedgerRaw{
		raw("Surat Yarns", "Sundry Creditors", ledgergroup.NatureLiability, "0", "0", "5250"),
	}}
	svc := NewService(repo, &mockTxManager{})

	b, err := svc.GetLedgerBalance(context.Background(), id.New(), repo.raws[0].LedgerID)
	require.NoError(t, err)
	assert.Equal(t, types.MustMoney("5250"), b.Balance)
}

func TestGetLedgerBalance_OpeningBalanceCounts(t *testing.T) {
	repo := &mockRepo{raws: []LedgerRaw{
		raw("Bank", "Bank", ledgergroup.NatureAsset, "10000", "2000", "500"),
	}}
	svc := NewService(repo, &mockTxManager{})

	b, err := svc.GetLedgerBalance(context.Background(), id.New(), repo.raws[0].LedgerID)
	require.NoError(t, err)
	assert.Equal(t, types.MustMoney("11500"), b.Balance)
}

func TestGetLedgerBalance_NotFound(t *testing.T) {
	svc := NewService(&mockRepo{}, &mockTxManager{})

	_, err := svc.GetLedgerBalance(context.Background(), id.New(), id.New())
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
}

// One purchase of 5250 (5000 + 250 GST) posted against a supplier:
// the trial balance must classify each ledger on the right side and
// the two columns must be equal.
func TestGetTrialBalance_ColumnsBalance(t *testing.T) {
	repo := &mockRepo{raws: []LedgerRaw{
		raw("Purchase", "Purchase Account", ledgergroup.NatureExpense, "0", "5000", "0"),
		raw("GST", "Duties & Taxes", ledgergroup.NatureLiability, "0", "250", "0"),
		raw("Surat Yarns", "Sundry Creditors", ledgergroup.NatureLiability, "0", "0", "5250"),
	}}
	svc := NewService(repo, &mockTxManager{})

	tb, err := svc.GetTrialBalance(context.Background(), id.New())
	require.NoError(t, err)
	require.Len(t, tb.Rows, 3)

	assert.Equal(t, tb.TotalDebit, tb.TotalCredit)
	assert.Equal(t, types.MustMoney("5250"), tb.TotalDebit)

	byName := map[string]TrialBalanceRow{}
	for _, row := range tb.Rows {
		byName[row.LedgerName] = row
	}
	assert.Equal(t, types.MustMoney("5000"), byName["Purchase"].Debit)
	// GST paid on purchases sits on the debit side even though the
	// ledger's group is credit-natured
	assert.Equal(t, types.MustMoney("250"), byName["GST"].Debit)
	assert.Equal(t, types.MustMoney("5250"), byName["Surat Yarns"].Credit)
}

func TestGetTrialBalance_OpeningBalancesIncluded(t *testing.T) {
	repo := &mockRepo{raws: []LedgerRaw{
		raw("Cash", "Cash", ledgergroup.NatureAsset, "1000", "0", "0"),
		raw("Capital", "Capital Account", ledgergroup.NatureLiability, "1000", "0", "0"),
	}}
	svc := NewService(repo, &mockTxManager{})

	tb, err := svc.GetTrialBalance(context.Background(), id.New())
	require.NoError(t, err)
	assert.Equal(t, types.MustMoney("1000"), tb.TotalDebit)
	assert.Equal(t, tb.TotalDebit, tb.TotalCredit)
}

func TestGetOutstanding_SkipsZeroAndOtherGroups(t *testing.T) {
	repo := &mockRepo{raws: []LedgerRaw{
		raw("Mehta Fabrics", "Sundry Debtors", ledgergroup.NatureAsset, "0", "4410", "4410"),
		raw("Roy Traders", "Sundry Debtors", ledgergroup.NatureAsset, "0", "4410", "0"),
		raw("Surat Yarns", "Sundry Creditors", ledgergroup.NatureLiability, "0", "0", "5250"),
		raw("Bank", "Bank", ledgergroup.NatureAsset, "9000", "0", "0"),
	}}
	svc := NewService(repo, &mockTxManager{})

	out, err := svc.GetOutstanding(context.Background(), id.New())
	require.NoError(t, err)
	require.Len(t, out, 2)

	names := []string{out[0].LedgerName, out[1].LedgerName}
	assert.Contains(t, names, "Roy Traders")
	assert.Contains(t, names, "Surat Yarns")
}

func TestGetLedgerStatement_RunningBalance(t *testing.T) {
	ledgerRaw := raw("Mehta Fabrics", "Sundry Debtors", ledgergroup.NatureAsset, "100", "0", "0")
	repo := &mockRepo{
		raws: []LedgerRaw{ledgerRaw},
		lines: []StatementLine{
			{Debit: types.MustMoney("4410")},
			{Credit: types.MustMoney("2000")},
		},
	}
	txm := &mockTxManager{}
	svc := NewService(repo, txm)

	st, err := svc.GetLedgerStatement(context.Background(), id.New(), ledgerRaw.LedgerID, StatementFilter{})
	require.NoError(t, err)

	assert.Equal(t, types.MustMoney("100"), st.OpeningBalance)
	require.Len(t, st.Lines, 2)
	assert.Equal(t, types.MustMoney("4510"), st.Lines[0].RunningBalance)
	assert.Equal(t, types.MustMoney("2510"), st.Lines[1].RunningBalance)
	assert.Equal(t, types.MustMoney("2510"), st.ClosingBalance)

	// Header and lines come from two queries; both must run inside the
	// same read-only snapshot
	assert.Equal(t, 1, txm.readOnlyCalls)
}

func TestGetLedgerStatement_NotFound(t *testing.T) {
	svc := NewService(&mockRepo{}, &mockTxManager{})

	_, err := svc.GetLedgerStatement(context.Background(), id.New(), id.New(), StatementFilter{})
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
}
