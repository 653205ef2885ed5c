package stockitem

import (
	"context"

	"bahikhata/internal/core/apperror"
	"bahikhata/internal/core/id"
	"bahikhata/internal/core/tx"
	"bahikhata/internal/domain/audit"
)

const tableName = "stock_items"

// Service provides business logic for the StockItem master.
type Service struct {
	repo      Repository
	txManager tx.Manager
	audit     audit.Recorder
}

// NewService creates a StockItem service.
func NewService(repo Repository, txManager tx.Manager, auditRec audit.Recorder) *Service {
	return &Service{
		repo:      repo,
		txManager: txManager,
		audit:     auditRec,
	}
}

// Create validates and persists a new item.
func (s *Service) Create(ctx context.Context, item *StockItem) error {
	if err := item.Validate(ctx); err != nil {
		return err
	}

	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Create(ctx, item); err != nil {
			return err
		}
		return s.audit.LogInsert(ctx, tableName, item.ID, item)
	})
}

// Update applies changes to an item. Changing the default GST rate only
// affects future postings; posted lines keep the rate they were
// computed with.
func (s *Service) Update(ctx context.Context, item *StockItem) (*StockItem, error) {
	if err := item.Validate(ctx); err != nil {
		return nil, err
	}

	var updated *StockItem

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		existing, err := s.repo.GetByID(ctx, item.CompanyID, item.ID)
		if err != nil {
			return err
		}
		if existing == nil {
			return apperror.NewReferential("stock item", item.ID.String())
		}

		old := *existing
		existing.Name = item.Name
		existing.ArticleNo = item.ArticleNo
		existing.Category = item.Category
		existing.Unit = item.Unit
		existing.GSTRate = item.GSTRate

		if err := s.repo.Update(ctx, existing); err != nil {
			return err
		}
		if err := s.audit.LogUpdate(ctx, tableName, existing.ID, old, existing); err != nil {
			return err
		}

		updated = existing
		return nil
	})

	return updated, err
}

// Delete removes an item that no voucher has used yet.
func (s *Service) Delete(ctx context.Context, companyID, itemID id.ID) error {
	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		existing, err := s.repo.GetByID(ctx, companyID, itemID)
		if err != nil {
			return err
		}
		if existing == nil {
			return apperror.NewReferential("stock item", itemID.String())
		}

		referenced, err := s.repo.IsReferenced(ctx, companyID, itemID)
		if err != nil {
			return err
		}
		if referenced {
			return apperror.NewConflict("item is used by posted vouchers and cannot be deleted").
				WithDetail("item", existing.Name)
		}

		if err := s.repo.Delete(ctx, companyID, itemID); err != nil {
			return err
		}
		return s.audit.LogDelete(ctx, tableName, itemID, existing)
	})
}

// GetByID returns one item.
func (s *Service) GetByID(ctx context.Context, companyID, itemID id.ID) (*StockItem, error) {
	item, err := s.repo.GetByID(ctx, companyID, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, apperror.NewReferential("stock item", itemID.String())
	}
	return item, nil
}

// List returns items of a company, optionally filtered.
func (s *Service) List(ctx context.Context, companyID id.ID, filter Filter) ([]*StockItem, error) {
	return s.repo.List(ctx, companyID, filter)
}
