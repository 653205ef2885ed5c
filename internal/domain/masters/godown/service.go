package godown

import (
	"context"

	"bahikhata/internal/core/apperror"
	"bahikhata/internal/core/id"
	"bahikhata/internal/core/tx"
	"bahikhata/internal/domain/audit"
)

const tableName = "godowns"

// Service provides business logic for the Godown master.
type Service struct {
	repo      Repository
	txManager tx.Manager
	audit     audit.Recorder
}

// NewService creates a Godown service.
func NewService(repo Repository, txManager tx.Manager, auditRec audit.Recorder) *Service {
	return &Service{
		repo:      repo,
		txManager: txManager,
		audit:     auditRec,
	}
}

// Create validates and persists a new godown.
func (s *Service) Create(ctx context.Context, g *Godown) error {
	if err := g.Validate(ctx); err != nil {
		return err
	}

	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Create(ctx, g); err != nil {
			return err
		}
		return s.audit.LogInsert(ctx, tableName, g.ID, g)
	})
}

// Update renames a godown.
func (s *Service) Update(ctx context.Context, companyID, godownID id.ID, name string) (*Godown, error) {
	var updated *Godown

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		existing, err := s.repo.GetByID(ctx, companyID, godownID)
		if err != nil {
			return err
		}
		if existing == nil {
			return apperror.NewReferential("godown", godownID.String())
		}

		old := *existing
		existing.Name = name
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

// Delete removes a godown no movement references.
func (s *Service) Delete(ctx context.Context, companyID, godownID id.ID) error {
	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		existing, err := s.repo.GetByID(ctx, companyID, godownID)
		if err != nil {
			return err
		}
		if existing == nil {
			return apperror.NewReferential("godown", godownID.String())
		}

		referenced, err := s.repo.IsReferenced(ctx, companyID, godownID)
		if err != nil {
			return err
		}
		if referenced {
			return apperror.NewConflict("godown has stock movements and cannot be deleted").
				WithDetail("godown", existing.Name)
		}

		if err := s.repo.Delete(ctx, companyID, godownID); err != nil {
			return err
		}
		return s.audit.LogDelete(ctx, tableName, godownID, existing)
	})
}

// GetByID returns one godown.
func (s *Service) GetByID(ctx context.Context, companyID, godownID id.ID) (*Godown, error) {
	g, err := s.repo.GetByID(ctx, companyID, godownID)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, apperror.NewReferential("godown", godownID.String())
	}
	return g, nil
}

// List returns all godowns of a company.
func (s *Service) List(ctx context.Context, companyID id.ID) ([]*Godown, error) {
	return s.repo.List(ctx, companyID)
}
