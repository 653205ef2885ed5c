package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// PostgreSQL error codes relevant to posting.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgSerializationFail   = "40001"
	pgDeadlockDetected    = "40P01"
)

// IsUniqueViolation reports whether err is a unique constraint violation.
// Voucher number collisions surface this way under concurrent posting.
func IsUniqueViolation(err error) bool {
	return pgErrCode(err) == pgUniqueViolation
}

// IsForeignKeyViolation reports whether err is a foreign key violation.
func IsForeignKeyViolation(err error) bool {
	return pgErrCode(err) == pgForeignKeyViolation
}

// IsSerializationFailure reports whether err is a serialization or
// deadlock failure. The whole posting attempt is safe to retry.
func IsSerializationFailure(err error) bool {
	code := pgErrCode(err)
	return code == pgSerializationFail || code == pgDeadlockDetected
}

func pgErrCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}
