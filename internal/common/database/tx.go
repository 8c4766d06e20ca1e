// internal/common/database/tx.go
package database

import (
	"context"
	"database/sql"
	"fmt"
)

// DBTX is satisfied by both *sql.DB and *sql.Tx. Repositories take it as an
// explicit argument so the caller decides the transaction boundary.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// Transactor runs fn inside one transaction.
type Transactor interface {
	WithTx(ctx context.Context, fn func(q DBTX) error) error
}

// SQLTransactor implements Transactor on a *sql.DB.
type SQLTransactor struct {
	DB *sql.DB
}

func NewTransactor(db *sql.DB) *SQLTransactor {
	return &SQLTransactor{DB: db}
}

// WithTx commits when fn returns nil and rolls back otherwise, including on panic.
func (t *SQLTransactor) WithTx(ctx context.Context, fn func(q DBTX) error) (err error) {
	tx, err := t.DB.BeginTx(ctx, nil)
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
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("%w (rollback: %v)", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}
