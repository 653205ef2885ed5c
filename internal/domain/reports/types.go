// Package reports provides the read models: recomputable projections
// over journal entries and stock movements. None of them is a source
// of truth; each must always agree with a direct recomputation from
// the posted rows.
package reports

import (
	"time"

	"bahikhata/internal/core/id"
	"bahikhata/internal/core/types"
	"bahikhata/internal/domain/masters/ledgergroup"
	"bahikhata/internal/domain/voucher"
)

// LedgerRaw is the unsigned aggregate the repository returns for one
// ledger: opening balance plus plain debit/credit sums. The service
// turns it into a display balance using the group's nature.
type LedgerRaw struct {
	LedgerID       id.ID              `db:"ledger_id" json:"ledgerId"`
	LedgerName     string             `db:"ledger_name" json:"ledgerName"`
	GroupName      string             `db:"group_name" json:"groupName"`
	Nature         ledgergroup.Nature `db:"nature" json:"nature"`
	OpeningBalance types.Money        `db:"opening_balance" json:"openingBalance"`
	DebitTotal     types.Money        `db:"debit_total" json:"debitTotal"`
	CreditTotal    types.Money        `db:"credit_total" json:"creditTotal"`
}

// LedgerBalance is one ledger's signed balance. Positive means the
// balance sits on the ledger's natural side (debit for Asset/Expense,
// credit for Liability/Income).
type LedgerBalance struct {
	LedgerID   id.ID              `json:"ledgerId"`
	LedgerName string             `json:"ledgerName"`
	GroupName  string             `json:"groupName"`
	Nature     ledgergroup.Nature `json:"nature"`
	Balance    types.Money        `json:"balance"`
}

// TrialBalanceRow classifies one ledger's balance into the debit or
// credit column.
type TrialBalanceRow struct {
	LedgerID   id.ID       `json:"ledgerId"`
	LedgerName string      `json:"ledgerName"`
	GroupName  string      `json:"groupName"`
	Debit      types.Money `json:"debit"`
	Credit     types.Money `json:"credit"`
}

// TrialBalance is the full report. TotalDebit must equal TotalCredit;
// that equality is the global double-entry invariant.
type TrialBalance struct {
	Rows        []TrialBalanceRow `json:"rows"`
	TotalDebit  types.Money       `json:"totalDebit"`
	TotalCredit types.Money       `json:"totalCredit"`
}

// StockSummaryRow joins an item's master fields with its derived
// quantity.
type StockSummaryRow struct {
	StockItemID id.ID          `db:"stock_item_id" json:"stockItemId"`
	ItemName    string         `db:"item_name" json:"itemName"`
	ArticleNo   string         `db:"article_no" json:"articleNo"`
	Category    string         `db:"category" json:"category"`
	Unit        string         `db:"unit" json:"unit"`
	CurrentQty  types.Quantity `db:"current_qty" json:"currentQty"`
}

// StatementLine is one journal entry of a ledger joined with its
// voucher header, plus the running balance after the entry.
type StatementLine struct {
	VoucherID      id.ID        `db:"voucher_id" json:"voucherId"`
	VoucherType    voucher.Type `db:"voucher_type" json:"voucherType"`
	VoucherNumber  int64        `db:"voucher_number" json:"voucherNumber"`
	Date           time.Time    `db:"date" json:"date"`
	Narration      string       `db:"narration" json:"narration"`
	Debit          types.Money  `db:"debit" json:"debit"`
	Credit         types.Money  `db:"credit" json:"credit"`
	RunningBalance types.Money  `db:"-" json:"runningBalance"`
}

// LedgerStatement is the chronological account statement of one ledger.
type LedgerStatement struct {
	LedgerID       id.ID              `json:"ledgerId"`
	LedgerName     string             `json:"ledgerName"`
	Nature         ledgergroup.Nature `json:"nature"`
	OpeningBalance types.Money        `json:"openingBalance"`
	Lines          []StatementLine    `json:"lines"`
	ClosingBalance types.Money        `json:"closingBalance"`
}

// StatementFilter bounds a ledger statement.
type StatementFilter struct {
	FromDate *time.Time
	ToDate   *time.Time
}
