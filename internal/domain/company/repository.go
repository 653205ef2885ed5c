package company

import (
	"context"

	"bahikhata/internal/core/id"
)

// Repository defines company persistence.
type Repository interface {
	Create(ctx context.Context, c *Company) error
	GetByID(ctx context.Context, companyID id.ID) (*Company, error)
}
