package stock

import (
	"context"

	"bahikhata/internal/core/id"
	"bahikhata/internal/core/types"
)

// Repository defines operations for the stock movement register.
type Repository interface {
	// CreateMovements batch inserts movements. Called during voucher
	// posting inside the posting transaction.
	CreateMovements(ctx context.Context, movements []Movement) error

	// GetMovementsByVoucher retrieves all movements of one voucher.
	GetMovementsByVoucher(ctx context.Context, companyID, voucherID id.ID) ([]Movement, error)

	// CurrentQuantity computes Σ IN − Σ OUT for an item, optionally
	// narrowed by godown/shade/lot.
	CurrentQuantity(ctx context.Context, companyID, stockItemID id.ID, filter Filter) (types.Quantity, error)

	// MovementHistory lists movements of an item, newest first.
	MovementHistory(ctx context.Context, companyID, stockItemID id.ID, filter HistoryFilter) ([]Movement, error)
}
