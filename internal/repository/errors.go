package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/noah-isme/agentes-admin/pkg/database"
)

var (
	// ErrDuplicate reports a primary key or unique constraint violation.
	ErrDuplicate = errors.New("duplicate record")
	// ErrReference reports a write pointing at a row that does not exist.
	ErrReference = errors.New("referenced record does not exist")
)

// classify maps driver constraint failures onto the package sentinels while
// keeping the original error in the chain.
func classify(op string, err error) error {
	switch {
	case database.IsUniqueViolation(err):
		return fmt.Errorf("%s: %w: %w", op, ErrDuplicate, err)
	case database.IsForeignKeyViolation(err):
		return fmt.Errorf("%s: %w: %w", op, ErrReference, err)
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}

func requireAffected(res sql.Result, op string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s rows affected: %w", op, err)
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
