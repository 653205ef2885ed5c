package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// A serialization abort rolls everything back, so rerunning the whole
// function is safe; the second attempt here succeeds.
func TestWithTxRetry_RetriesSerializationFailure(t *testing.T) {
	attempts := 0
	err := withTxRetry(context.Background(), func() error {
		attempts++
		if attempts == 1 {
			return &pgconn.PgError{Code: "40001"}
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 2, attempts)
}

func TestWithTxRetry_GivesUpAfterMaxAttempts(t *testing.T) {
	attempts := 0
	err := withTxRetry(context.Background(), func() error {
		attempts++
		return &pgconn.PgError{Code: "40P01"}
	})

	require.Error(t, err)
	assert.True(t, IsSerializationFailure(err))
	assert.Equal(t, maxTxAttempts, attempts)
}

// Ordinary failures are the caller's problem and must not be rerun:
// a validation error would just fail three times.
func TestWithTxRetry_DoesNotRetryOtherErrors(t *testing.T) {
	attempts := 0
	boom := errors.New("boom")
	err := withTxRetry(context.Background(), func() error {
		attempts++
		return boom
	})

	require.ErrorIs(t, err, boom)
	assert.Equal(t, 1, attempts)
}
