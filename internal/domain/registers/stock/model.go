// Package stock provides the stock movement register: the immutable
// IN/OUT log every inventory voucher appends to, and the derived
// quantity views computed from it. No stored running balance is
// authoritative; quantity is always Σ IN − Σ OUT over movements.
package stock

import (
	"time"

	"bahikhata/internal/core/id"
	"bahikhata/internal/core/types"
)

// MovementType is the direction of a movement.
type MovementType string

const (
	MovementIn  MovementType = "IN"
	MovementOut MovementType = "OUT"
)

// Movement is one quantity change caused by a voucher line.
// Quantity is always positive; direction lives in Type.
type Movement struct {
	ID          id.ID          `db:"id" json:"id"`
	CompanyID   id.ID          `db:"company_id" json:"companyId"`
	VoucherID   id.ID          `db:"voucher_id" json:"voucherId"`
	StockItemID id.ID          `db:"stock_item_id" json:"stockItemId"`
	GodownID    *id.ID         `db:"godown_id" json:"godownId,omitempty"`
	Shade       string         `db:"shade" json:"shade"`
	Lot         string         `db:"lot" json:"lot"`
	Quantity    types.Quantity `db:"quantity" json:"quantity"`
	Type        MovementType   `db:"movement_type" json:"movementType"`
	CreatedAt   time.Time      `db:"created_at" json:"createdAt"`
}

// Filter narrows quantity and history queries to a slice of the
// register. Nil/empty fields mean "all".
type Filter struct {
	GodownID *id.ID
	Shade    string
	Lot      string
}

// HistoryFilter for movement history listings.
type HistoryFilter struct {
	Filter
	FromDate *time.Time
	ToDate   *time.Time
	Limit    int
	Offset   int
}
