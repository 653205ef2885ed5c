// Package context provides request-scoped values extraction.
package context

import (
	"context"

	"bahikhata/internal/core/id"
)

// UserContext contains authenticated user information.
// CompanyID is the tenant boundary; every repository query filters by it.
type UserContext struct {
	UserID    id.ID
	CompanyID id.ID
	Email     string
	Role      string
}

type userContextKey struct{}

// WithUser adds UserContext to context.
func WithUser(ctx context.Context, user *UserContext) context.Context {
	return context.WithValue(ctx, userContextKey{}, user)
}

// GetUser returns UserContext from context.
func GetUser(ctx context.Context) *UserContext {
	if v, ok := ctx.Value(userContextKey{}).(*UserContext); ok {
		return v
	}
	return nil
}

// GetUserID returns user ID from context or nil ID.
func GetUserID(ctx context.Context) id.ID {
	if u := GetUser(ctx); u != nil {
		return u.UserID
	}
	return id.Nil()
}

// GetCompanyID returns company ID from context or nil ID.
func GetCompanyID(ctx context.Context) id.ID {
	if u := GetUser(ctx); u != nil {
		return u.CompanyID
	}
	return id.Nil()
}

// HasRole checks if user has specific role.
func HasRole(ctx context.Context, role string) bool {
	u := GetUser(ctx)
	return u != nil && u.Role == role
}
