package ledger

import (
	"context"

	"bahikhata/internal/core/apperror"
	"bahikhata/internal/core/id"
	"bahikhata/internal/core/tx"
	"bahikhata/internal/core/types"
	"bahikhata/internal/domain/audit"
	"bahikhata/internal/domain/masters/ledgergroup"
)

const tableName = "ledgers"

// Service provides business logic for the Ledger master.
type Service struct {
	repo      Repository
	groups    ledgergroup.Repository
	txManager tx.Manager
	audit     audit.Recorder
}

// NewService creates a Ledger service.
func NewService(repo Repository, groups ledgergroup.Repository, txManager tx.Manager, auditRec audit.Recorder) *Service {
	return &Service{
		repo:      repo,
		groups:    groups,
		txManager: txManager,
		audit:     auditRec,
	}
}

// Create validates and persists a new ledger.
func (s *Service) Create(ctx context.Context, l *Ledger) error {
	if err := l.Validate(ctx); err != nil {
		return err
	}

	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		group, err := s.groups.GetByID(ctx, l.CompanyID, l.GroupID)
		if err != nil {
			return err
		}
		if group == nil {
			return apperror.NewReferential("ledger group", l.GroupID.String())
		}

		if err := s.repo.Create(ctx, l); err != nil {
			return err
		}
		return s.audit.LogInsert(ctx, tableName, l.ID, l)
	})
}

// UpdateInput carries the editable ledger fields. Nil pointers mean
// "leave unchanged".
type UpdateInput struct {
	Name           *string
	GSTIN          *string
	GroupID        *id.ID
	OpeningBalance *types.Money
}

// Update applies changes. Once a ledger is referenced by a posted
// journal entry its financial fields (group, opening balance) are
// frozen; name and GSTIN stay editable.
func (s *Service) Update(ctx context.Context, companyID, ledgerID id.ID, in UpdateInput) (*Ledger, error) {
	var updated *Ledger

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		existing, err := s.repo.GetByID(ctx, companyID, ledgerID)
		if err != nil {
			return err
		}
		if existing == nil {
			return apperror.NewReferential("ledger", ledgerID.String())
		}

		old := *existing

		if in.GroupID != nil || in.OpeningBalance != nil {
			referenced, err := s.repo.IsReferenced(ctx, companyID, ledgerID)
			if err != nil {
				return err
			}
			if referenced {
				return apperror.NewConflict("ledger has posted entries, financial fields are frozen").
					WithDetail("ledger", existing.Name)
			}
		}

		if in.Name != nil {
			existing.Name = *in.Name
		}
		if in.GSTIN != nil {
			existing.GSTIN = in.GSTIN
		}
		if in.GroupID != nil {
			group, err := s.groups.GetByID(ctx, companyID, *in.GroupID)
			if err != nil {
				return err
			}
			if group == nil {
				return apperror.NewReferential("ledger group", in.GroupID.String())
			}
			existing.GroupID = *in.GroupID
		}
		if in.OpeningBalance != nil {
			existing.OpeningBalance = *in.OpeningBalance
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

// Delete removes a ledger that has no posted entries.
func (s *Service) Delete(ctx context.Context, companyID, ledgerID id.ID) error {
	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		existing, err := s.repo.GetByID(ctx, companyID, ledgerID)
		if err != nil {
			return err
		}
		if existing == nil {
			return apperror.NewReferential("ledger", ledgerID.String())
		}

		referenced, err := s.repo.IsReferenced(ctx, companyID, ledgerID)
		if err != nil {
			return err
		}
		if referenced {
			return apperror.NewConflict("ledger has posted entries and cannot be deleted").
				WithDetail("ledger", existing.Name)
		}

		if err := s.repo.Delete(ctx, companyID, ledgerID); err != nil {
			return err
		}
		return s.audit.LogDelete(ctx, tableName, ledgerID, existing)
	})
}

// GetByID returns one ledger.
func (s *Service) GetByID(ctx context.Context, companyID, ledgerID id.ID) (*Ledger, error) {
	l, err := s.repo.GetByID(ctx, companyID, ledgerID)
	if err != nil {
		return nil, err
	}
	if l == nil {
		return nil, apperror.NewReferential("ledger", ledgerID.String())
	}
	return l, nil
}

// List returns ledgers of a company, optionally filtered.
func (s *Service) List(ctx context.Context, companyID id.ID, filter Filter) ([]*Ledger, error) {
	return s.repo.List(ctx, companyID, filter)
}
