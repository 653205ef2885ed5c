package voucher

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bahikhata/internal/core/apperror"
	"bahikhata/internal/core/id"
	"bahikhata/internal/core/types"
	"bahikhata/internal/domain/audit"
	"bahikhata/internal/domain/masters/ledger"
	"bahikhata/internal/domain/masters/stockitem"
	"bahikhata/internal/domain/registers/stock"
)

// --- Mocks ---

type mockTxManager struct{}

func (m *mockTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type mockSequencer struct {
	next  int64
	calls int
}

func (m *mockSequencer) Next(ctx context.Context, companyID id.ID, voucherType string) (int64, error) {
	m.calls++
	m.next++
	return m.next, nil
}

func (m *mockSequencer) Peek(ctx context.Context, companyID id.ID, voucherType string) (int64, error) {
	return m.next + 1, nil
}

type mockVoucherRepo struct {
	created *Voucher
	items   []Item
	entries []JournalEntry
}

func (m *mockVoucherRepo) Create(ctx context.Context, v *Voucher) error {
	m.created = v
	return nil
}

func (m *mockVoucherRepo) CreateItems(ctx context.Context, items []Item) error {
	m.items = items
	return nil
}

func (m *mockVoucherRepo) CreateEntries(ctx context.Context, entries []JournalEntry) error {
	m.entries = entries
	return nil
}

func (m *mockVoucherRepo) GetByID(ctx context.Context, companyID, voucherID id.ID) (*Voucher, error) {
	if m.created != nil && m.created.ID == voucherID {
		return m.created, nil
	}
	return nil, nil
}

func (m *mockVoucherRepo) GetItems(ctx context.Context, voucherID id.ID) ([]Item, error) {
	return m.items, nil
}

func (m *mockVoucherRepo) GetEntries(ctx context.Context, voucherID id.ID) ([]JournalEntry, error) {
	return m.entries, nil
}

func (m *mockVoucherRepo) List(ctx context.Context, companyID id.ID, filter ListFilter) (ListResult, error) {
	var out []*Voucher
	if m.created != nil {
		out = append(out, m.created)
	}
	return ListResult{Vouchers: out, Total: int64(len(out))}, nil
}

type mockLedgerRepo struct {
	byID        map[id.ID]*ledger.Ledger
	byName      map[string]*ledger.Ledger
	byGroupName map[string]*ledger.Ledger
}

func newMockLedgerRepo() *mockLedgerRepo {
	return &mockLedgerRepo{
		byID:        make(map[id.ID]*ledger.Ledger),
		byName:      make(map[string]*ledger.Ledger),
		byGroupName: make(map[string]*ledger.Ledger),
	}
}

func (m *mockLedgerRepo) add(l *ledger.Ledger, name, groupName string) *ledger.Ledger {
	m.byID[l.ID] = l
	if name != "" {
		m.byName[name] = l
	}
	if groupName != "" {
		m.byGroupName[groupName] = l
	}
	return l
}

func (m *mockLedgerRepo) Create(ctx context.Context, l *ledger.Ledger) error { return nil }
func (m *mockLedgerRepo) Update(ctx context.Context, l *ledger.Ledger) error { return nil }
func (m *mockLedgerRepo) Delete(ctx context.Context, companyID, ledgerID id.ID) error {
	return nil
}

func (m *mockLedgerRepo) GetByID(ctx context.Context, companyID, ledgerID id.ID) (*ledger.Ledger, error) {
	return m.byID[ledgerID], nil
}

func (m *mockLedgerRepo) GetByName(ctx context.Context, companyID id.ID, name string) (*ledger.Ledger, error) {
	return m.byName[name], nil
}

func (m *mockLedgerRepo) GetByGroupName(ctx context.Context, companyID id.ID, groupName string) (*ledger.Ledger, error) {
	return m.byGroupName[groupName], nil
}

func (m *mockLedgerRepo) List(ctx context.Context, companyID id.ID, filter ledger.Filter) ([]*ledger.Ledger, error) {
	return nil, nil
}

func (m *mockLedgerRepo) IsReferenced(ctx context.Context, companyID, ledgerID id.ID) (bool, error) {
	return false, nil
}

type mockItemRepo struct {
	items map[id.ID]*stockitem.StockItem
}

func newMockItemRepo() *mockItemRepo {
	return &mockItemRepo{items: make(map[id.ID]*stockitem.StockItem)}
}

func (m *mockItemRepo) Create(ctx context.Context, item *stockitem.StockItem) error { return nil }
func (m *mockItemRepo) Update(ctx context.Context, item *stockitem.StockItem) error { return nil }
func (m *mockItemRepo) Delete(ctx context.Context, companyID, itemID id.ID) error   { return nil }

func (m *mockItemRepo) GetByID(ctx context.Context, companyID, itemID id.ID) (*stockitem.StockItem, error) {
	return m.items[itemID], nil
}

func (m *mockItemRepo) GetByIDs(ctx context.Context, companyID id.ID, ids []id.ID) (map[id.ID]*stockitem.StockItem, error) {
	out := make(map[id.ID]*stockitem.StockItem)
	for _, itemID := range ids {
		if item, ok := m.items[itemID]; ok {
			out[itemID] = item
		}
	}
	return out, nil
}

func (m *mockItemRepo) List(ctx context.Context, companyID id.ID, filter stockitem.Filter) ([]*stockitem.StockItem, error) {
	return nil, nil
}

func (m *mockItemRepo) IsReferenced(ctx context.Context, companyID, itemID id.ID) (bool, error) {
	return false, nil
}

type mockStockRepo struct {
	movements  []stock.Movement
	quantities map[id.ID]types.Quantity
}

func newMockStockRepo() *mockStockRepo {
	return &mockStockRepo{quantities: make(map[id.ID]types.Quantity)}
}

func (m *mockStockRepo) CreateMovements(ctx context.Context, movements []stock.Movement) error {
	m.movements = append(m.movements, movements...)
	return nil
}

func (m *mockStockRepo) GetMovementsByVoucher(ctx context.Context, companyID, voucherID id.ID) ([]stock.Movement, error) {
	return m.movements, nil
}

func (m *mockStockRepo) CurrentQuantity(ctx context.Context, companyID, stockItemID id.ID, filter stock.Filter) (types.Quantity, error) {
	return m.quantities[stockItemID], nil
}

func (m *mockStockRepo) MovementHistory(ctx context.Context, companyID, stockItemID id.ID, filter stock.HistoryFilter) ([]stock.Movement, error) {
	return m.movements, nil
}

// --- Fixture ---

type fixture struct {
	svc       *Service
	repo      *mockVoucherRepo
	ledgers   *mockLedgerRepo
	items     *mockItemRepo
	stockRepo *mockStockRepo
	sequencer *mockSequencer

	companyID id.ID
	party     *ledger.Ledger
	bank      *ledger.Ledger
	item      *stockitem.StockItem
}

func newFixture(t *testing.T, mode stock.PolicyMode) *fixture {
	t.Helper()

	companyID := id.New()
	ledgers := newMockLedgerRepo()
	party := ledgers.add(ledger.New(companyID, id.New(), "Surat Textiles"), "Surat Textiles", "")
	bank := ledgers.add(ledger.New(companyID, id.New(), "Bank"), "Bank", "")
	ledgers.add(ledger.New(companyID, id.New(), "Purchase"), "Purchase", groupPurchaseAccount)
	ledgers.add(ledger.New(companyID, id.New(), "Sales"), "Sales", groupSalesAccount)
	ledgers.add(ledger.New(companyID, id.New(), "GST"), "GST", groupDutiesAndTaxes)
	ledgers.add(ledger.New(companyID, id.New(), ledgerFreightCharges), ledgerFreightCharges, "")
	ledgers.add(ledger.New(companyID, id.New(), ledgerDiscount), ledgerDiscount, "")

	items := newMockItemRepo()
	item := stockitem.New(companyID, "Cotton 40s", "MTR", decimal.NewFromInt(5))
	items.items[item.ID] = item

	policy, err := stock.NewOversellPolicy(mode, "")
	require.NoError(t, err)

	repo := &mockVoucherRepo{}
	stockRepo := newMockStockRepo()
	sequencer := &mockSequencer{}

	svc := NewService(
		repo,
		ledgers,
		items,
		stock.NewService(stockRepo),
		policy,
		sequencer,
		&mockTxManager{},
		audit.Nop{},
	)

	return &fixture{
		svc:       svc,
		repo:      repo,
		ledgers:   ledgers,
		items:     items,
		stockRepo: stockRepo,
		sequencer: sequencer,
		companyID: companyID,
		party:     party,
		bank:      bank,
		item:      item,
	}
}

func purchaseInput(f *fixture) PostInput {
	return PostInput{
		Type:          TypePurchase,
		Date:          time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
		PartyLedgerID: f.party.ID,
		Lines: []LineInput{{
			StockItemID: f.item.ID,
			Quantity:    types.NewQuantityFromFloat64(100),
			Rate:        types.MustMoney("50"),
		}},
	}
}

// --- Tests ---

func TestPost_Purchase(t *testing.T) {
	f := newFixture(t, stock.ModeWarn)

	v, err := f.svc.Post(context.Background(), f.companyID, purchaseInput(f))
	require.NoError(t, err)

	assert.Equal(t, int64(1), v.Number)
	assert.Equal(t, types.MustMoney("5000"), v.SubTotal)
	assert.Equal(t, types.MustMoney("250"), v.GSTTotal)
	assert.Equal(t, types.MustMoney("5250"), v.GrandTotal)

	require.NotNil(t, f.repo.created)
	require.Len(t, f.repo.items, 1)
	assert.Equal(t, types.MustMoney("5000"), f.repo.items[0].Amount)

	var debits, credits types.Money
	for _, e := range f.repo.entries {
		debits += e.Debit
		credits += e.Credit
	}
	assert.Equal(t, debits, credits)

	require.Len(t, f.stockRepo.movements, 1)
	assert.Equal(t, stock.MovementIn, f.stockRepo.movements[0].Type)
	assert.Equal(t, f.repo.created.ID, f.stockRepo.movements[0].VoucherID)
}

func TestPost_SequentialNumbers(t *testing.T) {
	f := newFixture(t, stock.ModeWarn)
	ctx := context.Background()

	first, err := f.svc.Post(ctx, f.companyID, purchaseInput(f))
	require.NoError(t, err)
	second, err := f.svc.Post(ctx, f.companyID, purchaseInput(f))
	require.NoError(t, err)

	assert.Equal(t, int64(1), first.Number)
	assert.Equal(t, int64(2), second.Number)
}

func TestPost_Receipt(t *testing.T) {
	f := newFixture(t, stock.ModeWarn)

	v, err := f.svc.Post(context.Background(), f.companyID, PostInput{
		Type:            TypeReceipt,
		Date:            time.Date(2026, 4, 2, 0, 0, 0, 0, time.UTC),
		PartyLedgerID:   f.party.ID,
		AccountLedgerID: &f.bank.ID,
		Amount:          types.MustMoney("2000"),
	})
	require.NoError(t, err)

	assert.Equal(t, types.MustMoney("2000"), v.GrandTotal)
	assert.Empty(t, f.stockRepo.movements)

	require.Len(t, f.repo.entries, 2)
	byLedger := map[id.ID]JournalEntry{}
	for _, e := range f.repo.entries {
		byLedger[e.LedgerID] = e
	}
	assert.Equal(t, types.MustMoney("2000"), byLedger[f.bank.ID].Debit)
	assert.Equal(t, types.MustMoney("2000"), byLedger[f.party.ID].Credit)
}

func TestPost_EmptyInventoryVoucherRejectedBeforeNumbering(t *testing.T) {
	f := newFixture(t, stock.ModeWarn)

	in := purchaseInput(f)
	in.Lines = nil

	_, err := f.svc.Post(context.Background(), f.companyID, in)
	require.Error(t, err)
	assert.True(t, apperror.IsValidation(err))

	// Validation happens before the transaction: no number consumed,
	// nothing written.
	assert.Equal(t, 0, f.sequencer.calls)
	assert.Nil(t, f.repo.created)
	assert.Empty(t, f.stockRepo.movements)
}

func TestPost_UnknownPartyIsReferentialError(t *testing.T) {
	f := newFixture(t, stock.ModeWarn)

	in := purchaseInput(f)
	in.PartyLedgerID = id.New()

	_, err := f.svc.Post(context.Background(), f.companyID, in)
	require.Error(t, err)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeReferential, appErr.Code)
}

func TestPost_UnknownItemIsReferentialError(t *testing.T) {
	f := newFixture(t, stock.ModeWarn)

	in := purchaseInput(f)
	in.Lines[0].StockItemID = id.New()

	_, err := f.svc.Post(context.Background(), f.companyID, in)
	require.Error(t, err)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeReferential, appErr.Code)
}

func TestPost_MissingSalesAccountIsConfigurationError(t *testing.T) {
	f := newFixture(t, stock.ModeWarn)
	delete(f.ledgers.byGroupName, groupSalesAccount)

	in := purchaseInput(f)
	in.Type = TypeSales

	_, err := f.svc.Post(context.Background(), f.companyID, in)
	require.Error(t, err)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeConfiguration, appErr.Code)
}

func TestPost_SalesBlockedByOversellPolicy(t *testing.T) {
	f := newFixture(t, stock.ModeBlock)
	f.stockRepo.quantities[f.item.ID] = types.NewQuantityFromFloat64(10)

	in := purchaseInput(f)
	in.Type = TypeSales

	_, err := f.svc.Post(context.Background(), f.companyID, in)
	require.Error(t, err)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeInsufficientStock, appErr.Code)
	assert.Nil(t, f.repo.created)
}

func TestPost_SalesAllowedWithinStock(t *testing.T) {
	f := newFixture(t, stock.ModeBlock)
	f.stockRepo.quantities[f.item.ID] = types.NewQuantityFromFloat64(100)

	in := purchaseInput(f)
	in.Type = TypeSales

	v, err := f.svc.Post(context.Background(), f.companyID, in)
	require.NoError(t, err)

	require.Len(t, f.stockRepo.movements, 1)
	assert.Equal(t, stock.MovementOut, f.stockRepo.movements[0].Type)
	assert.Equal(t, types.MustMoney("5250"), v.GrandTotal)
}

func TestPost_LineOverrideGSTRate(t *testing.T) {
	f := newFixture(t, stock.ModeWarn)

	override := decimal.NewFromInt(12)
	in := purchaseInput(f)
	in.Lines[0].GSTRate = &override

	v, err := f.svc.Post(context.Background(), f.companyID, in)
	require.NoError(t, err)

	// 5000 * 12% instead of the item default 5%
	assert.Equal(t, types.MustMoney("600"), v.GSTTotal)
}

func TestNextNumberPreview(t *testing.T) {
	f := newFixture(t, stock.ModeWarn)
	ctx := context.Background()

	num, err := f.svc.NextNumberPreview(ctx, f.companyID, TypeSales)
	require.NoError(t, err)
	assert.Equal(t, int64(1), num)

	_, err = f.svc.Post(ctx, f.companyID, purchaseInput(f))
	require.NoError(t, err)

	num, err = f.svc.NextNumberPreview(ctx, f.companyID, TypePurchase)
	require.NoError(t, err)
	assert.Equal(t, int64(2), num)

	_, err = f.svc.NextNumberPreview(ctx, f.companyID, Type("JOURNAL"))
	assert.Error(t, err)
}

func TestGetByID_NotFound(t *testing.T) {
	f := newFixture(t, stock.ModeWarn)

	_, err := f.svc.GetByID(context.Background(), f.companyID, id.New())
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
}
