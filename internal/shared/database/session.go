package database

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Session returns a gorm handle bound to ctx that runs on tx when one is
// given, so repositories share the service's *sql.Tx.
func Session(ctx context.Context, db *gorm.DB, tx *sql.Tx) *gorm.DB {
	s := db.WithContext(ctx)
	if tx != nil {
		s.Statement.ConnPool = tx
	}
	return s
}

// IsUniqueViolation reports a unique-key failure on one of the named
// constraints, or on any constraint when none are given. Only Postgres
// errors carry the constraint name; gorm.ErrDuplicatedKey and driver
// messages from other databases match regardless of it.
func IsUniqueViolation(err error, constraints ...string) bool {
	if err == nil {
		return false
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code != "23505" {
			return false
		}
		if len(constraints) == 0 {
			return true
		}
		for _, c := range constraints {
			if pgErr.ConstraintName == c {
				return true
			}
		}
		return false
	}

	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key value") ||
		strings.Contains(msg, "unique constraint failed")
}

// IsForeignKeyViolation reports a referential-integrity failure.
func IsForeignKeyViolation(err error) bool {
	if err == nil {
		return false
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23503"
	}
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "foreign key constraint")
}
