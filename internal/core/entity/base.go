// Package entity provides shared building blocks for persisted records.
package entity

import (
	"context"
	"time"

	"bahikhata/internal/core/id"
)

// Base contains fields common to all persisted entities.
type Base struct {
	ID        id.ID     `db:"id" json:"id"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// NewBase creates a Base with a fresh UUIDv7 and current timestamp.
func NewBase() Base {
	return Base{
		ID:        id.New(),
		CreatedAt: time.Now().UTC(),
	}
}

// Validatable is implemented by entities that validate themselves.
type Validatable interface {
	Validate(ctx context.Context) error
}
