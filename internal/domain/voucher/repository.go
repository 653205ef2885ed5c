package voucher

import (
	"context"
	"time"

	"bahikhata/internal/core/id"
)

// ListFilter narrows voucher listings.
type ListFilter struct {
	Type          *Type
	PartyLedgerID *id.ID
	FromDate      *time.Time
	ToDate        *time.Time
	Limit         int
	Offset        int
}

// ListResult is one page of vouchers plus the unpaged total.
type ListResult struct {
	Vouchers []*Voucher `json:"vouchers"`
	Total    int64      `json:"total"`
}

// Repository defines the interface for voucher persistence. The write
// methods are only ever called inside the posting transaction.
type Repository interface {
	Create(ctx context.Context, v *Voucher) error

	// CreateItems bulk inserts voucher lines (COPY).
	CreateItems(ctx context.Context, items []Item) error

	// CreateEntries bulk inserts journal entries (COPY).
	CreateEntries(ctx context.Context, entries []JournalEntry) error

	GetByID(ctx context.Context, companyID, voucherID id.ID) (*Voucher, error)
	GetItems(ctx context.Context, voucherID id.ID) ([]Item, error)
	GetEntries(ctx context.Context, voucherID id.ID) ([]JournalEntry, error)
	List(ctx context.Context, companyID id.ID, filter ListFilter) (ListResult, error)
}
