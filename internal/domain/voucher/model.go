// Package voucher provides the voucher posting flow: validation,
// ledger resolution, the posting rules engine invocation and the one
// atomic commit that persists the voucher with its items, journal
// entries, stock movements and audit row.
package voucher

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"bahikhata/internal/core/apperror"
	"bahikhata/internal/core/id"
	"bahikhata/internal/core/types"
	"bahikhata/internal/domain/posting"
)

// Type re-exports the voucher type enum owned by the posting engine.
type Type = posting.VoucherType

const (
	TypePurchase = posting.TypePurchase
	TypeSales    = posting.TypeSales
	TypeReceipt  = posting.TypeReceipt
	TypePayment  = posting.TypePayment
)

// Voucher is the posted transaction header. Immutable after posting;
// corrections are new offsetting vouchers.
type Voucher struct {
	ID              id.ID       `db:"id" json:"id"`
	CompanyID       id.ID       `db:"company_id" json:"companyId"`
	Type            Type        `db:"type" json:"type"`
	Number          int64       `db:"number" json:"number"`
	Date            time.Time   `db:"date" json:"date"`
	PartyLedgerID   id.ID       `db:"party_ledger_id" json:"partyLedgerId"`
	AccountLedgerID *id.ID      `db:"account_ledger_id" json:"accountLedgerId,omitempty"`
	SubTotal        types.Money `db:"sub_total" json:"subTotal"`
	GSTTotal        types.Money `db:"gst_total" json:"gstTotal"`
	Discount        types.Money `db:"discount" json:"discount"`
	Freight         types.Money `db:"freight" json:"freight"`
	GrandTotal      types.Money `db:"grand_total" json:"grandTotal"`
	Narration       string      `db:"narration" json:"narration"`
	CreatedBy       *id.ID      `db:"created_by" json:"createdBy,omitempty"`
	CreatedAt       time.Time   `db:"created_at" json:"createdAt"`

	Items   []Item         `db:"-" json:"items,omitempty"`
	Entries []JournalEntry `db:"-" json:"entries,omitempty"`
}

// Item is one posted inventory line. CompanyID is denormalized so
// reference probes and reports never join through the header.
type Item struct {
	ID          id.ID          `db:"id" json:"id"`
	CompanyID   id.ID          `db:"company_id" json:"companyId"`
	VoucherID   id.ID          `db:"voucher_id" json:"voucherId"`
	StockItemID id.ID          `db:"stock_item_id" json:"stockItemId"`
	GodownID    *id.ID         `db:"godown_id" json:"godownId,omitempty"`
	Shade       string         `db:"shade" json:"shade"`
	Lot         string         `db:"lot" json:"lot"`
	Quantity    types.Quantity `db:"quantity" json:"quantity"`
	Rate        types.Money    `db:"rate" json:"rate"`
	Amount      types.Money    `db:"amount" json:"amount"`
	GSTAmount   types.Money    `db:"gst_amount" json:"gstAmount"`
}

// JournalEntry is one posted debit or credit line.
type JournalEntry struct {
	ID        id.ID       `db:"id" json:"id"`
	CompanyID id.ID       `db:"company_id" json:"companyId"`
	VoucherID id.ID       `db:"voucher_id" json:"voucherId"`
	LedgerID  id.ID       `db:"ledger_id" json:"ledgerId"`
	Debit     types.Money `db:"debit" json:"debit"`
	Credit    types.Money `db:"credit" json:"credit"`
}

// LineInput is one requested inventory line. GSTRate overrides the
// item's default rate when set.
type LineInput struct {
	StockItemID id.ID            `json:"stockItemId"`
	GodownID    *id.ID           `json:"godownId,omitempty"`
	Shade       string           `json:"shade"`
	Lot         string           `json:"lot"`
	Quantity    types.Quantity   `json:"quantity"`
	Rate        types.Money      `json:"rate"`
	GSTRate     *decimal.Decimal `json:"gstRate,omitempty"`
}

// PostInput is the posting request. Inventory vouchers carry Lines;
// accounting vouchers carry Amount and AccountLedgerID.
type PostInput struct {
	Type            Type        `json:"type"`
	Date            time.Time   `json:"date"`
	PartyLedgerID   id.ID       `json:"partyLedgerId"`
	AccountLedgerID *id.ID      `json:"accountLedgerId,omitempty"`
	Lines           []LineInput `json:"lines,omitempty"`
	Amount          types.Money `json:"amount,omitempty"`
	Discount        types.Money `json:"discount,omitempty"`
	Freight         types.Money `json:"freight,omitempty"`
	Narration       string      `json:"narration,omitempty"`
}

// Validate checks the request shape before any storage is touched.
func (in *PostInput) Validate(ctx context.Context) error {
	if !in.Type.IsValid() {
		return apperror.NewValidation("invalid voucher type").
			WithDetail("field", "type").
			WithDetail("value", string(in.Type))
	}
	if id.IsNil(in.PartyLedgerID) {
		return apperror.NewValidation("party ledger is required").
			WithDetail("field", "partyLedgerId")
	}
	if in.Date.IsZero() {
		return apperror.NewValidation("voucher date is required").
			WithDetail("field", "date")
	}

	if in.Type.IsInventory() {
		if len(in.Lines) == 0 {
			return apperror.NewValidation("inventory voucher needs at least one line")
		}
		if !in.Amount.IsZero() {
			return apperror.NewValidation("amount is not allowed on inventory vouchers").
				WithDetail("field", "amount")
		}
		if in.Discount.IsNegative() {
			return apperror.NewValidation("discount cannot be negative").
				WithDetail("field", "discount")
		}
		if in.Freight.IsNegative() {
			return apperror.NewValidation("freight cannot be negative").
				WithDetail("field", "freight")
		}
		for i, ln := range in.Lines {
			if id.IsNil(ln.StockItemID) {
				return apperror.NewValidation("line stock item is required").
					WithDetail("line", i)
			}
			if !ln.Quantity.IsPositive() {
				return apperror.NewValidation("line quantity must be positive").
					WithDetail("line", i).
					WithDetail("quantity", ln.Quantity.String())
			}
			if ln.Rate.IsNegative() {
				return apperror.NewValidation("line rate cannot be negative").
					WithDetail("line", i)
			}
		}
		return nil
	}

	// RECEIPT / PAYMENT
	if len(in.Lines) > 0 {
		return apperror.NewValidation("lines are not allowed on accounting vouchers").
			WithDetail("field", "lines")
	}
	if !in.Amount.IsPositive() {
		return apperror.NewValidation("amount must be positive").
			WithDetail("field", "amount")
	}
	if in.AccountLedgerID == nil || id.IsNil(*in.AccountLedgerID) {
		return apperror.NewValidation("cash/bank account ledger is required").
			WithDetail("field", "accountLedgerId")
	}
	if !in.Discount.IsZero() || !in.Freight.IsZero() {
		return apperror.NewValidation("discount and freight are not allowed on accounting vouchers")
	}
	return nil
}
