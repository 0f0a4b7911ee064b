package postgres

import (
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

const (
	sqlStateUniqueViolation  = "23505"
	sqlStateNotNullViolation = "23502"
	sqlStateCheckViolation   = "23514"

	emailUniqueConstraint = "users_email_key"
)

func asPgError(err error) (*pgconn.PgError, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr, true
	}

	return nil, false
}

// isEmailUniqueViolation reports whether err is the unique violation raised by
// users_email_key. Unique violations on any other constraint are not email conflicts.
func isEmailUniqueViolation(err error) bool {
	if pgErr, ok := asPgError(err); ok {
		return pgErr.Code == sqlStateUniqueViolation && pgErr.ConstraintName == emailUniqueConstraint
	}

	// Translated errors lose the constraint name; users has no other unique key.
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

func isNotNullConstraintViolation(err error) bool {
	pgErr, ok := asPgError(err)

	return ok && pgErr.Code == sqlStateNotNullViolation
}

func isCheckConstraintViolation(err error) bool {
	if errors.Is(err, gorm.ErrCheckConstraintViolated) {
		return true
	}

	pgErr, ok := asPgError(err)

	return ok && pgErr.Code == sqlStateCheckViolation
}
