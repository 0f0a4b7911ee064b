package postgres

import (
	"context"
	"testing"

	"usersvc/internal/domain/repository"
	"usersvc/internal/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTxManagerWithMock(t *testing.T) (repository.TransactionManager, sqlmock.Sqlmock) {
	t.Helper()

	db, mock := newMockDB(t)

	return NewTransactionManager(db, &stubCodec{}, newTestValidator(t)), mock
}

func TestTransactionManager_Commit(t *testing.T) {
	tm, mock := newTxManagerWithMock(t)

	mock.ExpectBegin()
	mock.ExpectExec(deleteUserSQL).WithArgs(int64(1)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := tm.Execute(context.Background(), func(f repository.RepositoryFactory) error {
		return f.UserRepo().Delete(context.Background(), 1)
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionManager_RollbackOnError(t *testing.T) {
	tm, mock := newTxManagerWithMock(t)
	boom := errors.New("boom")

	mock.ExpectBegin()
	mock.ExpectRollback()

	err := tm.Execute(context.Background(), func(repository.RepositoryFactory) error {
		return boom
	})
	assert.True(t, errors.Is(err, boom))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionManager_RollbackOnPanic(t *testing.T) {
	tm, mock := newTxManagerWithMock(t)

	mock.ExpectBegin()
	mock.ExpectRollback()

	assert.Panics(t, func() {
		_ = tm.Execute(context.Background(), func(repository.RepositoryFactory) error {
			panic("kaboom")
		})
	})
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionManager_BeginFailure(t *testing.T) {
	tm, mock := newTxManagerWithMock(t)

	mock.ExpectBegin().WillReturnError(errors.New("pool exhausted"))

	called := false
	err := tm.Execute(context.Background(), func(repository.RepositoryFactory) error {
		called = true

		return nil
	})
	assert.Error(t, err)
	assert.False(t, called)
}
