// Package store holds the Postgres repositories. Every method takes the
// database.DBTX to run on, so the caller owns the transaction boundary.
package store

import (
	"database/sql"
	"errors"

	commonerrors "accelerator-workers/internal/common/errors"
)

// ErrNotFound is returned by single-row lookups that match nothing.
var ErrNotFound = errors.New("record not found")

func queryFailed(op string, err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return commonerrors.NewQueryExecutionFailedError(op, err)
}

type scanner interface {
	Scan(dest ...interface{}) error
}
