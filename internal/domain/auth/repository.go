package auth

import (
	"context"

	"bahikhata/internal/core/id"
)

// UserRepository defines user storage operations. Emails are unique
// across the whole installation so a login does not need a company id.
type UserRepository interface {
	Create(ctx context.Context, user *User) error

	GetByID(ctx context.Context, userID id.ID) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)

	// Exists checks if the email is already registered.
	Exists(ctx context.Context, email string) (bool, error)
}
