package stock

import (
	"context"
	"fmt"

	"bahikhata/internal/core/apperror"
	"bahikhata/internal/core/id"
	"bahikhata/internal/core/types"
	"bahikhata/pkg/logger"
)

// Service provides business operations for the stock register.
// Transactions are managed by the caller (the posting flow).
type Service struct {
	repo Repository
}

// NewService creates a new stock register service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// RecordMovements appends movements during voucher posting.
// Must run inside the posting transaction.
func (s *Service) RecordMovements(ctx context.Context, movements []Movement) error {
	if len(movements) == 0 {
		return nil
	}

	for i, m := range movements {
		if !m.Quantity.IsPositive() {
			return apperror.NewValidation(fmt.Sprintf("movement %d: quantity must be positive", i))
		}
		if id.IsNil(m.VoucherID) {
			return apperror.NewValidation(fmt.Sprintf("movement %d: voucher_id is required", i))
		}
		if id.IsNil(m.StockItemID) {
			return apperror.NewValidation(fmt.Sprintf("movement %d: stock_item_id is required", i))
		}
		if m.Type != MovementIn && m.Type != MovementOut {
			return apperror.NewValidation(fmt.Sprintf("movement %d: invalid movement type %q", i, m.Type))
		}
	}

	if err := s.repo.CreateMovements(ctx, movements); err != nil {
		return fmt.Errorf("create movements: %w", err)
	}

	logger.Debug(ctx, "recorded stock movements",
		"count", len(movements),
		"voucher_id", movements[0].VoucherID,
	)

	return nil
}

// CurrentQuantity returns the derived quantity of an item.
func (s *Service) CurrentQuantity(ctx context.Context, companyID, stockItemID id.ID, filter Filter) (types.Quantity, error) {
	qty, err := s.repo.CurrentQuantity(ctx, companyID, stockItemID, filter)
	if err != nil {
		return 0, fmt.Errorf("current quantity: %w", err)
	}
	return qty, nil
}

// MovementHistory lists movements of an item, newest first.
func (s *Service) MovementHistory(ctx context.Context, companyID, stockItemID id.ID, filter HistoryFilter) ([]Movement, error) {
	return s.repo.MovementHistory(ctx, companyID, stockItemID, filter)
}
