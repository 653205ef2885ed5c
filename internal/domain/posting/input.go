// Package posting is the accounting heart of the system: a pure rules
// engine that turns a voucher input into balanced journal entries and
// stock movements. It performs no I/O; callers resolve ledger
// references and persist the result.
package posting

import (
	"github.com/shopspring/decimal"

	"bahikhata/internal/core/id"
	"bahikhata/internal/core/types"
)

// VoucherType enumerates the supported voucher kinds.
type VoucherType string

const (
	TypePurchase VoucherType = "PURCHASE"
	TypeSales    VoucherType = "SALES"
	TypeReceipt  VoucherType = "RECEIPT"
	TypePayment  VoucherType = "PAYMENT"
)

// IsValid reports whether t is a known voucher type.
func (t VoucherType) IsValid() bool {
	switch t {
	case TypePurchase, TypeSales, TypeReceipt, TypePayment:
		return true
	}
	return false
}

// IsInventory reports whether vouchers of this type carry line items
// and produce stock movements.
func (t VoucherType) IsInventory() bool {
	return t == TypePurchase || t == TypeSales
}

// Direction of a stock movement.
type Direction string

const (
	DirectionIn  Direction = "IN"
	DirectionOut Direction = "OUT"
)

// Line is one inventory voucher line. GSTRate is the percentage to
// apply; the caller fills it from the item master unless the line
// carries an override.
type Line struct {
	StockItemID id.ID
	Shade       string
	Lot         string
	Quantity    types.Quantity
	Rate        types.Money
	GSTRate     decimal.Decimal
	GodownID    *id.ID
}

// Input is the tagged variant consumed by Build: either an
// InventoryInput (PURCHASE/SALES) or an AccountingInput
// (RECEIPT/PAYMENT).
type Input interface {
	voucherType() VoucherType
}

// InventoryInput describes a PURCHASE or SALES voucher.
type InventoryInput struct {
	Type     VoucherType
	Lines    []Line
	Discount types.Money
	Freight  types.Money
}

func (in InventoryInput) voucherType() VoucherType { return in.Type }

// AccountingInput describes a RECEIPT or PAYMENT voucher: a flat amount
// moving between the party and a cash/bank account.
type AccountingInput struct {
	Type   VoucherType
	Amount types.Money
}

func (in AccountingInput) voucherType() VoucherType { return in.Type }

// Accounts carries the resolved ledger references the rule table needs.
// Party is always required. TradeAccount is the Purchase/Sales Account
// ledger for inventory vouchers, CashOrBank for accounting vouchers.
// Freight and Discount are only consulted when the matching amount is
// non-zero.
type Accounts struct {
	Party          id.ID
	TradeAccount   id.ID
	DutiesAndTaxes id.ID
	Freight        *id.ID
	Discount       *id.ID
	CashOrBank     id.ID
}

// Totals of a built voucher.
type Totals struct {
	SubTotal   types.Money
	GSTTotal   types.Money
	Discount   types.Money
	Freight    types.Money
	GrandTotal types.Money
}

// ComputedLine is a voucher line with derived amounts filled in.
type ComputedLine struct {
	Line
	Amount    types.Money
	GSTAmount types.Money
}

// JournalLine is one side of a double entry. Exactly one of
// Debit/Credit is non-zero.
type JournalLine struct {
	LedgerID id.ID
	Debit    types.Money
	Credit   types.Money
}

// MovementLine is one stock movement to record.
type MovementLine struct {
	StockItemID id.ID
	GodownID    *id.ID
	Shade       string
	Lot         string
	Quantity    types.Quantity
	Direction   Direction
}

// Result is everything Build derives from an input.
type Result struct {
	Type      VoucherType
	Totals    Totals
	Lines     []ComputedLine
	Journal   []JournalLine
	Movements []MovementLine
}
