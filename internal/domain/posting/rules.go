package posting

import (
	"bahikhata/internal/core/apperror"
	"bahikhata/internal/core/id"
	"bahikhata/internal/core/types"
)

// Build applies the posting rule table to an input and returns the
// derived totals, lines, journal entries and stock movements.
//
//	PURCHASE  Dr Purchase Account (sub_total), Dr Duties & Taxes
//	          (gst_total), Cr party (grand_total); IN movement per line.
//	SALES     Dr party (grand_total), Cr Sales Account (sub_total),
//	          Cr Duties & Taxes (gst_total); OUT movement per line.
//	RECEIPT   Dr cash/bank (amount), Cr party (amount).
//	PAYMENT   Dr party (amount), Cr cash/bank (amount).
//
// Non-zero freight posts against the Freight Charges ledger and
// non-zero discount against the Discount ledger (debit side follows
// the voucher direction) so that the entry set stays balanced.
// All arithmetic is integer paise; Build guarantees Σ debit = Σ credit
// on every result it returns.
func Build(in Input, acc Accounts) (*Result, error) {
	if in == nil {
		return nil, apperror.NewValidation("voucher input is required")
	}
	if !in.voucherType().IsValid() {
		return nil, apperror.NewValidation("invalid voucher type").
			WithDetail("type", string(in.voucherType()))
	}
	if id.IsNil(acc.Party) {
		return nil, apperror.NewValidation("party ledger is required").
			WithDetail("field", "partyLedgerId")
	}

	var (
		result *Result
		err    error
	)

	switch v := in.(type) {
	case InventoryInput:
		result, err = buildInventory(v, acc)
	case AccountingInput:
		result, err = buildAccounting(v, acc)
	default:
		return nil, apperror.NewValidation("unsupported voucher input shape")
	}
	if err != nil {
		return nil, err
	}

	if err := assertBalanced(result.Journal); err != nil {
		return nil, err
	}
	return result, nil
}

func buildInventory(in InventoryInput, acc Accounts) (*Result, error) {
	if !in.Type.IsInventory() {
		return nil, apperror.NewValidation("lines are only allowed on PURCHASE and SALES vouchers").
			WithDetail("type", string(in.Type))
	}
	if len(in.Lines) == 0 {
		return nil, apperror.NewValidation("inventory voucher needs at least one line")
	}
	if in.Discount.IsNegative() {
		return nil, apperror.NewValidation("discount cannot be negative").
			WithDetail("field", "discount")
	}
	if in.Freight.IsNegative() {
		return nil, apperror.NewValidation("freight cannot be negative").
			WithDetail("field", "freight")
	}
	if id.IsNil(acc.TradeAccount) {
		return nil, apperror.NewConfiguration("trade account ledger is not configured")
	}
	if id.IsNil(acc.DutiesAndTaxes) {
		return nil, apperror.NewConfiguration("duties & taxes ledger is not configured")
	}

	var (
		subTotal types.Money
		gstTotal types.Money
		lines    = make([]ComputedLine, 0, len(in.Lines))
	)

	for i, ln := range in.Lines {
		if id.IsNil(ln.StockItemID) {
			return nil, apperror.NewValidation("line stock item is required").
				WithDetail("line", i)
		}
		if !ln.Quantity.IsPositive() {
			return nil, apperror.NewValidation("line quantity must be positive").
				WithDetail("line", i).
				WithDetail("quantity", ln.Quantity.String())
		}
		if ln.Rate.IsNegative() {
			return nil, apperror.NewValidation("line rate cannot be negative").
				WithDetail("line", i)
		}
		if ln.GSTRate.IsNegative() {
			return nil, apperror.NewValidation("line gst rate cannot be negative").
				WithDetail("line", i)
		}

		amount := types.LineAmount(ln.Quantity, ln.Rate)
		gst := types.Percent(amount, ln.GSTRate)

		subTotal += amount
		gstTotal += gst
		lines = append(lines, ComputedLine{Line: ln, Amount: amount, GSTAmount: gst})
	}

	totals := Totals{
		SubTotal:   subTotal,
		GSTTotal:   gstTotal,
		Discount:   in.Discount,
		Freight:    in.Freight,
		GrandTotal: subTotal + gstTotal - in.Discount + in.Freight,
	}
	if totals.GrandTotal.IsNegative() {
		return nil, apperror.NewValidation("grand total cannot be negative").
			WithDetail("grandTotal", totals.GrandTotal.String())
	}

	journal, err := inventoryJournal(in.Type, totals, acc)
	if err != nil {
		return nil, err
	}

	direction := DirectionIn
	if in.Type == TypeSales {
		direction = DirectionOut
	}
	movements := make([]MovementLine, 0, len(lines))
	for _, ln := range lines {
		movements = append(movements, MovementLine{
			StockItemID: ln.StockItemID,
			GodownID:    ln.GodownID,
			Shade:       ln.Shade,
			Lot:         ln.Lot,
			Quantity:    ln.Quantity,
			Direction:   direction,
		})
	}

	return &Result{
		Type:      in.Type,
		Totals:    totals,
		Lines:     lines,
		Journal:   journal,
		Movements: movements,
	}, nil
}

func inventoryJournal(vt VoucherType, t Totals, acc Accounts) ([]JournalLine, error) {
	freightLedger, discountLedger, err := adjustmentLedgers(t, acc)
	if err != nil {
		return nil, err
	}

	// A zero amount never produces an entry: zero-rate lines are legal
	// (free samples still move stock) and journal rows must carry
	// exactly one non-zero side.
	var journal []JournalLine
	switch vt {
	case TypePurchase:
		if !t.SubTotal.IsZero() {
			journal = append(journal, JournalLine{LedgerID: acc.TradeAccount, Debit: t.SubTotal})
		}
		if !t.GSTTotal.IsZero() {
			journal = append(journal, JournalLine{LedgerID: acc.DutiesAndTaxes, Debit: t.GSTTotal})
		}
		if !t.Freight.IsZero() {
			journal = append(journal, JournalLine{LedgerID: *freightLedger, Debit: t.Freight})
		}
		if !t.Discount.IsZero() {
			journal = append(journal, JournalLine{LedgerID: *discountLedger, Credit: t.Discount})
		}
		if !t.GrandTotal.IsZero() {
			journal = append(journal, JournalLine{LedgerID: acc.Party, Credit: t.GrandTotal})
		}
	case TypeSales:
		if !t.GrandTotal.IsZero() {
			journal = append(journal, JournalLine{LedgerID: acc.Party, Debit: t.GrandTotal})
		}
		if !t.Discount.IsZero() {
			journal = append(journal, JournalLine{LedgerID: *discountLedger, Debit: t.Discount})
		}
		if !t.SubTotal.IsZero() {
			journal = append(journal, JournalLine{LedgerID: acc.TradeAccount, Credit: t.SubTotal})
		}
		if !t.GSTTotal.IsZero() {
			journal = append(journal, JournalLine{LedgerID: acc.DutiesAndTaxes, Credit: t.GSTTotal})
		}
		if !t.Freight.IsZero() {
			journal = append(journal, JournalLine{LedgerID: *freightLedger, Credit: t.Freight})
		}
	}
	return journal, nil
}

func adjustmentLedgers(t Totals, acc Accounts) (freight, discount *id.ID, err error) {
	if !t.Freight.IsZero() {
		if acc.Freight == nil || id.IsNil(*acc.Freight) {
			return nil, nil, apperror.NewConfiguration("freight ledger is not configured")
		}
		freight = acc.Freight
	}
	if !t.Discount.IsZero() {
		if acc.Discount == nil || id.IsNil(*acc.Discount) {
			return nil, nil, apperror.NewConfiguration("discount ledger is not configured")
		}
		discount = acc.Discount
	}
	return freight, discount, nil
}

func buildAccounting(in AccountingInput, acc Accounts) (*Result, error) {
	if in.Type.IsInventory() {
		return nil, apperror.NewValidation("amount-only input is not allowed on inventory vouchers").
			WithDetail("type", string(in.Type))
	}
	if !in.Amount.IsPositive() {
		return nil, apperror.NewValidation("amount must be positive").
			WithDetail("field", "amount")
	}
	if id.IsNil(acc.CashOrBank) {
		return nil, apperror.NewValidation("cash/bank account ledger is required").
			WithDetail("field", "accountLedgerId")
	}

	totals := Totals{GrandTotal: in.Amount}

	var journal []JournalLine
	switch in.Type {
	case TypeReceipt:
		journal = []JournalLine{
			{LedgerID: acc.CashOrBank, Debit: in.Amount},
			{LedgerID: acc.Party, Credit: in.Amount},
		}
	case TypePayment:
		journal = []JournalLine{
			{LedgerID: acc.Party, Debit: in.Amount},
			{LedgerID: acc.CashOrBank, Credit: in.Amount},
		}
	}

	return &Result{
		Type:    in.Type,
		Totals:  totals,
		Journal: journal,
	}, nil
}

// assertBalanced is the engine's exit check: every produced entry set
// must satisfy Σ debit = Σ credit exactly.
func assertBalanced(journal []JournalLine) error {
	var debits, credits types.Money
	for _, jl := range journal {
		if !jl.Debit.IsZero() && !jl.Credit.IsZero() {
			return apperror.NewInternal(nil).
				WithDetail("reason", "journal line has both debit and credit")
		}
		if jl.Debit.IsNegative() || jl.Credit.IsNegative() {
			return apperror.NewInternal(nil).
				WithDetail("reason", "negative journal amount")
		}
		debits += jl.Debit
		credits += jl.Credit
	}
	if debits != credits {
		return apperror.NewInternal(nil).
			WithDetail("reason", "journal entries do not balance").
			WithDetail("debits", debits.String()).
			WithDetail("credits", credits.String())
	}
	return nil
}
