package repository

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"
)

var (
	ErrRecordNotFound      = errors.New("record not found")
	ErrUniqueViolation     = errors.New("unique constraint violation")
	ErrForeignKeyViolation = errors.New("foreign key constraint violation")
)

// singleMainIndex is the partial unique index guarding the main user
const singleMainIndex = "idx_users_single_main"

// classifyError maps driver-specific errors onto the package sentinels.
// The driver error stays in the chain.
func classifyError(err error) error {
	if err == nil {
		return nil
	}
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.ExtendedCode {
		case sqlite3.ErrConstraintUnique, sqlite3.ErrConstraintPrimaryKey:
			return fmt.Errorf("%w: %w", ErrUniqueViolation, err)
		case sqlite3.ErrConstraintForeignKey:
			return fmt.Errorf("%w: %w", ErrForeignKeyViolation, err)
		}
		return err
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code.Name() {
		case "unique_violation":
			return fmt.Errorf("%w: %w", ErrUniqueViolation, err)
		case "foreign_key_violation":
			return fmt.Errorf("%w: %w", ErrForeignKeyViolation, err)
		}
	}

	return err
}

// IsMainUserViolation reports whether err was raised by the store-level
// guard allowing a single main user.
func IsMainUserViolation(err error) bool {
	if !errors.Is(err, ErrUniqueViolation) {
		return false
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Constraint == singleMainIndex
	}

	// SQLite names the indexed column rather than the index
	msg := err.Error()
	return strings.Contains(msg, "users.is_main") || strings.Contains(msg, singleMainIndex)
}
