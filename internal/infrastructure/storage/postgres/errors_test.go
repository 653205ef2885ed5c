package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func pgError(code string) error {
	return &pgconn.PgError{Code: code}
}

func TestErrorClassification(t *testing.T) {
	tests := []struct {
		name          string
		err           error
		unique        bool
		foreignKey    bool
		serialization bool
	}{
		{name: "unique violation", err: pgError("23505"), unique: true},
		{name: "foreign key violation", err: pgError("23503"), foreignKey: true},
		{name: "serialization failure", err: pgError("40001"), serialization: true},
		{name: "deadlock", err: pgError("40P01"), serialization: true},
		{name: "wrapped serialization failure", err: fmt.Errorf("create voucher: %w", pgError("40001")), serialization: true},
		{name: "other pg error", err: pgError("42703")},
		{name: "plain error", err: errors.New("boom")},
		{name: "nil", err: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.unique, IsUniqueViolation(tt.err))
			assert.Equal(t, tt.foreignKey, IsForeignKeyViolation(tt.err))
			assert.Equal(t, tt.serialization, IsSerializationFailure(tt.err))
		})
	}
}
