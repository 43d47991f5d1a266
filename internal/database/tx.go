package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pkg/errors"
)

// WithTx runs fn inside one transaction.  The transaction is rolled back
// when fn returns an error or panics and committed otherwise; fn's error
// is returned unchanged so callers can match sentinels with errors.Is.
func WithTx(ctx context.Context, db *sql.DB, fn func(tx *sql.Tx) error) (err error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "begin transaction")
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
			return
		}
		if cerr := tx.Commit(); cerr != nil {
			err = errors.Wrap(cerr, "commit transaction")
		}
	}()
	return fn(tx)
}

// Exists reports whether a row with id exists in table.  table must be a
// trusted identifier, never user input.
func Exists(ctx context.Context, q interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}, table string, id uint64) (bool, error) {
	var one int
	err := q.QueryRowContext(ctx, fmt.Sprintf("SELECT 1 FROM %s WHERE id = ? FOR UPDATE", table), id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
