package ledger

import (
	"context"

	"bahikhata/internal/core/id"
)

// Filter narrows ledger listings.
type Filter struct {
	GroupID *id.ID
	Search  string
	Limit   int
	Offset  int
}

// Repository defines the interface for Ledger persistence.
type Repository interface {
	Create(ctx context.Context, l *Ledger) error
	Update(ctx context.Context, l *Ledger) error
	Delete(ctx context.Context, companyID, ledgerID id.ID) error

	GetByID(ctx context.Context, companyID, ledgerID id.ID) (*Ledger, error)
	GetByName(ctx context.Context, companyID id.ID, name string) (*Ledger, error)

	// GetByGroupName finds the first ledger whose group has the given
	// name. Posting uses it to resolve the system trade accounts.
	GetByGroupName(ctx context.Context, companyID id.ID, groupName string) (*Ledger, error)

	List(ctx context.Context, companyID id.ID, filter Filter) ([]*Ledger, error)

	// IsReferenced reports whether any journal entry points at the
	// ledger. Referenced ledgers have their financial fields frozen.
	IsReferenced(ctx context.Context, companyID, ledgerID id.ID) (bool, error)
}
