package database

import (
	"context"
	"database/sql"
	"fmt"
)

// WithinTx runs fn inside a database transaction. The transaction is
// committed when fn returns nil and rolled back when fn returns an
// error or panics. Handlers use it to keep multi-statement work, such
// as a seat decrement plus a booking insert, atomic without repeating
// the begin/rollback/commit choreography.
func WithinTx(ctx context.Context, db *sql.DB, fn func(tx *sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}
