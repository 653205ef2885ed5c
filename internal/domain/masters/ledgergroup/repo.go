package ledgergroup

import (
	"context"

	"bahikhata/internal/core/id"
)

// Repository defines the interface for LedgerGroup persistence.
// All lookups are scoped to a company.
type Repository interface {
	Create(ctx context.Context, group *LedgerGroup) error
	Update(ctx context.Context, group *LedgerGroup) error
	Delete(ctx context.Context, companyID, groupID id.ID) error

	GetByID(ctx context.Context, companyID, groupID id.ID) (*LedgerGroup, error)
	GetByName(ctx context.Context, companyID id.ID, name string) (*LedgerGroup, error)
	List(ctx context.Context, companyID id.ID) ([]*LedgerGroup, error)

	// HasLedgers reports whether any ledger belongs to the group.
	HasLedgers(ctx context.Context, companyID, groupID id.ID) (bool, error)

	// HasChildren reports whether the group has child groups.
	HasChildren(ctx context.Context, companyID, groupID id.ID) (bool, error)
}
