package stockitem

import (
	"context"

	"bahikhata/internal/core/id"
)

// Filter narrows stock item listings.
type Filter struct {
	Category string
	Search   string
	Limit    int
	Offset   int
}

// Repository defines the interface for StockItem persistence.
type Repository interface {
	Create(ctx context.Context, item *StockItem) error
	Update(ctx context.Context, item *StockItem) error
	Delete(ctx context.Context, companyID, itemID id.ID) error

	GetByID(ctx context.Context, companyID, itemID id.ID) (*StockItem, error)
	GetByIDs(ctx context.Context, companyID id.ID, ids []id.ID) (map[id.ID]*StockItem, error)
	List(ctx context.Context, companyID id.ID, filter Filter) ([]*StockItem, error)

	// IsReferenced reports whether any voucher item or stock movement
	// points at the item.
	IsReferenced(ctx context.Context, companyID, itemID id.ID) (bool, error)
}
