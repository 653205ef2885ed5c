package posting

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bahikhata/internal/core/apperror"
	"bahikhata/internal/core/id"
	"bahikhata/internal/core/types"
)

func testAccounts() Accounts {
	freight := id.New()
	discount := id.New()
	return Accounts{
		Party:          id.New(),
		TradeAccount:   id.New(),
		DutiesAndTaxes: id.New(),
		Freight:        &freight,
		Discount:       &discount,
		CashOrBank:     id.New(),
	}
}

func qty(s string) types.Quantity {
	var q types.Quantity
	if err := q.UnmarshalJSON([]byte(s)); err != nil {
		panic(err)
	}
	return q
}

func journalFor(t *testing.T, res *Result, ledgerID id.ID) JournalLine {
	t.Helper()
	for _, jl := range res.Journal {
		if jl.LedgerID == ledgerID {
			return jl
		}
	}
	t.Fatalf("no journal line for ledger %s", ledgerID)
	return JournalLine{}
}

// Purchase of 100 units at rate 50 with 5% GST: sub_total 5000,
// gst_total 250, grand_total 5250, Dr trade 5000 / Dr gst 250 /
// Cr party 5250, one IN movement.
func TestBuild_Purchase(t *testing.T) {
	acc := testAccounts()
	itemID := id.New()

	res, err := Build(InventoryInput{
		Type: TypePurchase,
		Lines: []Line{{
			StockItemID: itemID,
			Quantity:    qty("100"),
			Rate:        types.MustMoney("50"),
			GSTRate:     decimal.NewFromInt(5),
		}},
	}, acc)
	require.NoError(t, err)

	assert.Equal(t, types.MustMoney("5000"), res.Totals.SubTotal)
	assert.Equal(t, types.MustMoney("250"), res.Totals.GSTTotal)
	assert.Equal(t, types.MustMoney("5250"), res.Totals.GrandTotal)

	require.Len(t, res.Journal, 3)
	assert.Equal(t, types.MustMoney("5000"), journalFor(t, res, acc.TradeAccount).Debit)
	assert.Equal(t, types.MustMoney("250"), journalFor(t, res, acc.DutiesAndTaxes).Debit)
	assert.Equal(t, types.MustMoney("5250"), journalFor(t, res, acc.Party).Credit)

	require.Len(t, res.Movements, 1)
	assert.Equal(t, DirectionIn, res.Movements[0].Direction)
	assert.Equal(t, itemID, res.Movements[0].StockItemID)
	assert.Equal(t, qty("100"), res.Movements[0].Quantity)
}

// Sale of 60 units at rate 70 with 5% GST: grand_total 4410,
// Dr party / Cr trade / Cr gst, one OUT movement.
func TestBuild_Sales(t *testing.T) {
	acc := testAccounts()

	res, err := Build(InventoryInput{
		Type: TypeSales,
		Lines: []Line{{
			StockItemID: id.New(),
			Quantity:    qty("60"),
			Rate:        types.MustMoney("70"),
			GSTRate:     decimal.NewFromInt(5),
		}},
	}, acc)
	require.NoError(t, err)

	assert.Equal(t, types.MustMoney("4200"), res.Totals.SubTotal)
	assert.Equal(t, types.MustMoney("210"), res.Totals.GSTTotal)
	assert.Equal(t, types.MustMoney("4410"), res.Totals.GrandTotal)

	assert.Equal(t, types.MustMoney("4410"), journalFor(t, res, acc.Party).Debit)
	assert.Equal(t, types.MustMoney("4200"), journalFor(t, res, acc.TradeAccount).Credit)
	assert.Equal(t, types.MustMoney("210"), journalFor(t, res, acc.DutiesAndTaxes).Credit)

	require.Len(t, res.Movements, 1)
	assert.Equal(t, DirectionOut, res.Movements[0].Direction)
}

// Receipt of 2000: Dr cash/bank 2000, Cr party 2000, no movements.
func TestBuild_Receipt(t *testing.T) {
	acc := testAccounts()

	res, err := Build(AccountingInput{
		Type:   TypeReceipt,
		Amount: types.MustMoney("2000"),
	}, acc)
	require.NoError(t, err)

	assert.Equal(t, types.MustMoney("2000"), res.Totals.GrandTotal)
	assert.True(t, res.Totals.SubTotal.IsZero())
	assert.True(t, res.Totals.GSTTotal.IsZero())

	require.Len(t, res.Journal, 2)
	assert.Equal(t, types.MustMoney("2000"), journalFor(t, res, acc.CashOrBank).Debit)
	assert.Equal(t, types.MustMoney("2000"), journalFor(t, res, acc.Party).Credit)
	assert.Empty(t, res.Movements)
}

func TestBuild_Payment(t *testing.T) {
	acc := testAccounts()

	res, err := Build(AccountingInput{
		Type:   TypePayment,
		Amount: types.MustMoney("1500.75"),
	}, acc)
	require.NoError(t, err)

	assert.Equal(t, types.MustMoney("1500.75"), journalFor(t, res, acc.Party).Debit)
	assert.Equal(t, types.MustMoney("1500.75"), journalFor(t, res, acc.CashOrBank).Credit)
}

// A purchase with zero lines is rejected before anything is generated.
func TestBuild_RejectsEmptyInventoryVoucher(t *testing.T) {
	_, err := Build(InventoryInput{Type: TypePurchase}, testAccounts())
	require.Error(t, err)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeValidation, appErr.Code)
}

func TestBuild_RejectsZeroQuantityLine(t *testing.T) {
	_, err := Build(InventoryInput{
		Type: TypeSales,
		Lines: []Line{{
			StockItemID: id.New(),
			Quantity:    0,
			Rate:        types.MustMoney("10"),
		}},
	}, testAccounts())
	require.Error(t, err)
	assert.True(t, apperror.IsValidation(err))
}

func TestBuild_RejectsNonPositiveAmount(t *testing.T) {
	for _, amount := range []string{"0", "-5"} {
		_, err := Build(AccountingInput{
			Type:   TypeReceipt,
			Amount: types.MustMoney(amount),
		}, testAccounts())
		require.Error(t, err, "amount %s", amount)
		assert.True(t, apperror.IsValidation(err))
	}
}

func TestBuild_MissingTradeAccountIsConfigurationError(t *testing.T) {
	acc := testAccounts()
	acc.TradeAccount = id.Nil()

	_, err := Build(InventoryInput{
		Type: TypePurchase,
		Lines: []Line{{
			StockItemID: id.New(),
			Quantity:    qty("1"),
			Rate:        types.MustMoney("10"),
		}},
	}, acc)
	require.Error(t, err)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeConfiguration, appErr.Code)
}

func TestBuild_MissingFreightLedgerOnlyMattersWhenUsed(t *testing.T) {
	acc := testAccounts()
	acc.Freight = nil
	acc.Discount = nil

	lines := []Line{{
		StockItemID: id.New(),
		Quantity:    qty("10"),
		Rate:        types.MustMoney("100"),
	}}

	// Zero freight and discount: no adjustment ledgers needed
	_, err := Build(InventoryInput{Type: TypePurchase, Lines: lines}, acc)
	require.NoError(t, err)

	// Non-zero freight without a configured ledger is a setup problem
	_, err = Build(InventoryInput{
		Type:    TypePurchase,
		Lines:   lines,
		Freight: types.MustMoney("50"),
	}, acc)
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeConfiguration, appErr.Code)
}

// Discount and freight adjust the grand total and the entries stay
// balanced on both voucher directions.
func TestBuild_DiscountAndFreight(t *testing.T) {
	acc := testAccounts()
	lines := []Line{{
		StockItemID: id.New(),
		Quantity:    qty("10"),
		Rate:        types.MustMoney("100"),
		GSTRate:     decimal.NewFromInt(5),
	}}

	tests := []struct {
		name string
		in   InventoryInput
	}{
		{
			name: "purchase with discount and freight",
			in: InventoryInput{
				Type:     TypePurchase,
				Lines:    lines,
				Discount: types.MustMoney("30"),
				Freight:  types.MustMoney("20"),
			},
		},
		{
			name: "sales with discount and freight",
			in: InventoryInput{
				Type:     TypeSales,
				Lines:    lines,
				Discount: types.MustMoney("30"),
				Freight:  types.MustMoney("20"),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Build(tt.in, acc)
			require.NoError(t, err)

			// 1000 + 50 - 30 + 20
			assert.Equal(t, types.MustMoney("1040"), res.Totals.GrandTotal)
			assertJournalBalanced(t, res.Journal)
		})
	}
}

// Many lines with awkward rates must still balance exactly; per-line
// rounding goes into sub_total before the party entry is derived.
func TestBuild_BalanceHoldsAcrossRoundingLines(t *testing.T) {
	acc := testAccounts()

	var lines []Line
	rates := []string{"33.33", "0.01", "99.99", "7.77", "123.45"}
	gstRates := []string{"5", "12", "18", "2.5", "0"}
	for i := range rates {
		lines = append(lines, Line{
			StockItemID: id.New(),
			Quantity:    qty("3.3333"),
			Rate:        types.MustMoney(rates[i]),
			GSTRate:     decimal.RequireFromString(gstRates[i]),
		})
	}

	for _, vt := range []VoucherType{TypePurchase, TypeSales} {
		res, err := Build(InventoryInput{
			Type:     vt,
			Lines:    lines,
			Discount: types.MustMoney("1.11"),
			Freight:  types.MustMoney("2.22"),
		}, acc)
		require.NoError(t, err)
		assertJournalBalanced(t, res.Journal)

		var sub, gst types.Money
		for _, ln := range res.Lines {
			sub += ln.Amount
			gst += ln.GSTAmount
		}
		assert.Equal(t, sub, res.Totals.SubTotal)
		assert.Equal(t, gst, res.Totals.GSTTotal)
	}
}

// Zero-rate lines (free samples) move stock but post nothing. Journal
// rows carry exactly one non-zero side, so a 0/0 entry must never be
// generated.
func TestBuild_ZeroRateLinesProduceNoZeroEntries(t *testing.T) {
	acc := testAccounts()

	for _, vt := range []VoucherType{TypePurchase, TypeSales} {
		res, err := Build(InventoryInput{
			Type: vt,
			Lines: []Line{{
				StockItemID: id.New(),
				Quantity:    qty("5"),
				Rate:        types.MustMoney("0"),
			}},
		}, acc)
		require.NoError(t, err, "type %s", vt)

		assert.True(t, res.Totals.GrandTotal.IsZero())
		assert.Empty(t, res.Journal, "type %s", vt)

		require.Len(t, res.Movements, 1)
		assert.Equal(t, qty("5"), res.Movements[0].Quantity)
	}
}

// A priced line next to a free sample: the journal covers the priced
// line only, every entry has a non-zero side and the set balances.
func TestBuild_MixedZeroRateLines(t *testing.T) {
	acc := testAccounts()

	res, err := Build(InventoryInput{
		Type: TypeSales,
		Lines: []Line{
			{StockItemID: id.New(), Quantity: qty("10"), Rate: types.MustMoney("100")},
			{StockItemID: id.New(), Quantity: qty("2"), Rate: types.MustMoney("0")},
		},
	}, acc)
	require.NoError(t, err)

	assert.Equal(t, types.MustMoney("1000"), res.Totals.GrandTotal)
	require.Len(t, res.Movements, 2)

	for _, jl := range res.Journal {
		assert.False(t, jl.Debit.IsZero() && jl.Credit.IsZero(), "zero-amount entry: %+v", jl)
	}
	assertJournalBalanced(t, res.Journal)
}

func TestBuild_LinesOnAccountingTypeRejected(t *testing.T) {
	_, err := Build(InventoryInput{
		Type: TypeReceipt,
		Lines: []Line{{
			StockItemID: id.New(),
			Quantity:    qty("1"),
			Rate:        types.MustMoney("10"),
		}},
	}, testAccounts())
	require.Error(t, err)
	assert.True(t, apperror.IsValidation(err))
}

func TestBuild_MissingPartyRejected(t *testing.T) {
	acc := testAccounts()
	acc.Party = id.Nil()

	_, err := Build(AccountingInput{Type: TypeReceipt, Amount: types.MustMoney("100")}, acc)
	require.Error(t, err)
	assert.True(t, apperror.IsValidation(err))
}

func assertJournalBalanced(t *testing.T, journal []JournalLine) {
	t.Helper()
	var debits, credits types.Money
	for _, jl := range journal {
		if !jl.Debit.IsZero() && !jl.Credit.IsZero() {
			t.Fatalf("journal line has both sides set: %+v", jl)
		}
		debits += jl.Debit
		credits += jl.Credit
	}
	if debits != credits {
		t.Fatalf("journal not balanced: debits %s credits %s", debits, credits)
	}
}
