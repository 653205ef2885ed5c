package ledgergroup

import (
	"context"

	"bahikhata/internal/core/apperror"
	"bahikhata/internal/core/id"
	"bahikhata/internal/core/tx"
	"bahikhata/internal/domain/audit"
)

const tableName = "ledger_groups"

// Service provides business logic for the LedgerGroup master.
type Service struct {
	repo      Repository
	txManager tx.Manager
	audit     audit.Recorder
}

// NewService creates a LedgerGroup service.
func NewService(repo Repository, txManager tx.Manager, auditRec audit.Recorder) *Service {
	return &Service{
		repo:      repo,
		txManager: txManager,
		audit:     auditRec,
	}
}

// Create validates and persists a new group.
func (s *Service) Create(ctx context.Context, group *LedgerGroup) error {
	if err := group.Validate(ctx); err != nil {
		return err
	}

	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if group.ParentID != nil {
			parent, err := s.repo.GetByID(ctx, group.CompanyID, *group.ParentID)
			if err != nil {
				return err
			}
			if parent == nil {
				return apperror.NewReferential("ledger group", group.ParentID.String())
			}
		}

		if err := s.repo.Create(ctx, group); err != nil {
			return err
		}
		return s.audit.LogInsert(ctx, tableName, group.ID, group)
	})
}

// Update changes name and parent. Nature and the system flag are fixed
// at creation: reclassifying a group would silently flip the sign of
// every balance under it.
func (s *Service) Update(ctx context.Context, companyID, groupID id.ID, name string, parentID *id.ID) (*LedgerGroup, error) {
	var updated *LedgerGroup

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		existing, err := s.repo.GetByID(ctx, companyID, groupID)
		if err != nil {
			return err
		}
		if existing == nil {
			return apperror.NewReferential("ledger group", groupID.String())
		}

		old := *existing
		existing.Name = name
		if parentID != nil {
			if *parentID == groupID {
				return apperror.NewValidation("group cannot be its own parent").
					WithDetail("field", "parentId")
			}
			parent, err := s.repo.GetByID(ctx, companyID, *parentID)
			if err != nil {
				return err
			}
			if parent == nil {
				return apperror.NewReferential("ledger group", parentID.String())
			}
			existing.ParentID = parentID
		}

		if err := existing.Validate(ctx); err != nil {
			return err
		}
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

// Delete removes a group. System groups and groups that still hold
// ledgers or child groups are protected.
func (s *Service) Delete(ctx context.Context, companyID, groupID id.ID) error {
	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		existing, err := s.repo.GetByID(ctx, companyID, groupID)
		if err != nil {
			return err
		}
		if existing == nil {
			return apperror.NewReferential("ledger group", groupID.String())
		}
		if existing.IsSystem {
			return apperror.NewValidation("system groups cannot be deleted").
				WithDetail("group", existing.Name)
		}

		hasLedgers, err := s.repo.HasLedgers(ctx, companyID, groupID)
		if err != nil {
			return err
		}
		if hasLedgers {
			return apperror.NewConflict("group still has ledgers").
				WithDetail("group", existing.Name)
		}

		hasChildren, err := s.repo.HasChildren(ctx, companyID, groupID)
		if err != nil {
			return err
		}
		if hasChildren {
			return apperror.NewConflict("group still has child groups").
				WithDetail("group", existing.Name)
		}

		if err := s.repo.Delete(ctx, companyID, groupID); err != nil {
			return err
		}
		return s.audit.LogDelete(ctx, tableName, groupID, existing)
	})
}

// GetByID returns one group.
func (s *Service) GetByID(ctx context.Context, companyID, groupID id.ID) (*LedgerGroup, error) {
	group, err := s.repo.GetByID(ctx, companyID, groupID)
	if err != nil {
		return nil, err
	}
	if group == nil {
		return nil, apperror.NewReferential("ledger group", groupID.String())
	}
	return group, nil
}

// List returns all groups of a company.
func (s *Service) List(ctx context.Context, companyID id.ID) ([]*LedgerGroup, error) {
	return s.repo.List(ctx, companyID)
}
