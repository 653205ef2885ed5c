// Package audit defines the domain-side contract for the audit trail.
// Services record changes through Recorder; the postgres implementation
// writes the rows inside the caller's transaction.
package audit

import (
	"context"

	"bahikhata/internal/core/id"
)

// Recorder records append-only change history for audited tables.
type Recorder interface {
	LogInsert(ctx context.Context, tableName string, recordID id.ID, newState any) error
	LogUpdate(ctx context.Context, tableName string, recordID id.ID, oldState, newState any) error
	LogDelete(ctx context.Context, tableName string, recordID id.ID, oldState any) error
}

// Nop is a Recorder that discards everything. Used in tests.
type Nop struct{}

func (Nop) LogInsert(context.Context, string, id.ID, any) error      { return nil }
func (Nop) LogUpdate(context.Context, string, id.ID, any, any) error { return nil }
func (Nop) LogDelete(context.Context, string, id.ID, any) error      { return nil }
