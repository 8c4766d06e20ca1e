// internal/common/database/tx_test.go
package database

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLTransactor_WithTx(t *testing.T) {
	t.Run("commits on success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectExec("UPDATE rns").WillReturnResult(sqlmock.NewResult(0, 2))
		mock.ExpectCommit()

		err = NewTransactor(db).WithTx(context.Background(), func(q DBTX) error {
			_, err := q.ExecContext(context.Background(), "UPDATE rns SET priority_number = priority_number + 1")
			return err
		})

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rolls back on error", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		boom := errors.New("insert failed")
		mock.ExpectBegin()
		mock.ExpectRollback()

		err = NewTransactor(db).WithTx(context.Background(), func(q DBTX) error {
			return boom
		})

		assert.ErrorIs(t, err, boom)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rolls back and repanics", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectRollback()

		assert.Panics(t, func() {
			_ = NewTransactor(db).WithTx(context.Background(), func(q DBTX) error {
				panic("bad state")
			})
		})
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("begin failure", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin().WillReturnError(errors.New("no connection"))

		err = NewTransactor(db).WithTx(context.Background(), func(q DBTX) error { return nil })
		assert.ErrorContains(t, err, "begin tx")
	})
}
