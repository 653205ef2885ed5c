package godown

import (
	"context"

	"bahikhata/internal/core/id"
)

// Repository defines the interface for Godown persistence.
type Repository interface {
	Create(ctx context.Context, g *Godown) error
	Update(ctx context.Context, g *Godown) error
	Delete(ctx context.Context, companyID, godownID id.ID) error

	GetByID(ctx context.Context, companyID, godownID id.ID) (*Godown, error)
	List(ctx context.Context, companyID id.ID) ([]*Godown, error)

	// IsReferenced reports whether any stock movement points at the godown.
	IsReferenced(ctx context.Context, companyID, godownID id.ID) (bool, error)
}
