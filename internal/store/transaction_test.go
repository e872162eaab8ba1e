package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunInTransaction(t *testing.T) {
	t.Parallel()

	fnErr := errors.New("function failed")
	dbErr := errors.New("connection reset")

	tests := []struct {
		name      string
		expect    func(mock sqlmock.Sqlmock)
		fnErr     error
		wantIs    []error
		wantInMsg string
	}{
		{
			name: "commit on success",
			expect: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectCommit()
			},
		},
		{
			name: "rollback on error",
			expect: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectRollback()
			},
			fnErr:  fnErr,
			wantIs: []error{fnErr},
		},
		{
			name: "begin fails",
			expect: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin().WillReturnError(dbErr)
			},
			wantIs: []error{ErrTransactionFailed, dbErr},
		},
		{
			name: "commit fails",
			expect: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectCommit().WillReturnError(dbErr)
			},
			wantIs: []error{ErrTransactionFailed, dbErr},
		},
		{
			name: "rollback fails",
			expect: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectRollback().WillReturnError(dbErr)
			},
			fnErr:     fnErr,
			wantIs:    []error{fnErr},
			wantInMsg: "rollback failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer func() { _ = db.Close() }()
			tt.expect(mock)

			err = RunInTransaction(context.Background(), db, func(ctx context.Context, tx *sql.Tx) error {
				assert.NotNil(t, tx)
				return tt.fnErr
			})

			if len(tt.wantIs) == 0 {
				assert.NoError(t, err)
			}
			for _, want := range tt.wantIs {
				assert.ErrorIs(t, err, want)
			}
			if tt.wantInMsg != "" {
				assert.Contains(t, err.Error(), tt.wantInMsg)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRunInTransactionPanicRollsBack(t *testing.T) {
	t.Parallel()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	mock.ExpectBegin()
	mock.ExpectRollback()

	assert.PanicsWithValue(t, "boom", func() {
		_ = RunInTransaction(context.Background(), db, func(context.Context, *sql.Tx) error {
			panic("boom")
		})
	})
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunInTransactionWithoutDatabase(t *testing.T) {
	t.Parallel()

	called := false
	err := RunInTransaction(context.Background(), nil, func(_ context.Context, tx *sql.Tx) error {
		called = true
		assert.Nil(t, tx)
		return nil
	})
	require.NoError(t, err)
	assert.True(t, called)
}
