package postgres

import (
	"testing"
	"time"

	"usersvc/config"
	"usersvc/internal/domain/service"
	"usersvc/internal/infra/validation"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var userColumns = []string{"id", "first_name", "last_name", "email", "password_hash", "salt", "created_at", "updated_at"}

// stubCodec derives a predictable credential so SQL arguments can be asserted.
type stubCodec struct {
	err   error
	calls int
}

func (c *stubCodec) Derive(password string) (service.Credential, error) {
	c.calls++
	if c.err != nil {
		return service.Credential{}, c.err
	}

	return service.Credential{Hash: "hash:" + password, Salt: "salt"}, nil
}

func (c *stubCodec) Verify(password string, cred service.Credential) bool {
	return cred.Hash == "hash:"+password
}

func newTestValidator(t *testing.T) service.InputValidator {
	t.Helper()

	cfg := &config.Config{}
	cfg.ApplyDefaults()

	v, err := validation.New(cfg)
	require.NoError(t, err)

	return v
}

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Discard,
	})
	require.NoError(t, err)

	return db, mock
}

func newRepoWithMock(t *testing.T) (*userRepository, sqlmock.Sqlmock, *stubCodec) {
	t.Helper()

	db, mock := newMockDB(t)
	codec := &stubCodec{}
	repo := NewUserRepository(db, codec, newTestValidator(t)).(*userRepository)
	repo.now = func() time.Time { return fixedNow }

	return repo, mock, codec
}

var fixedNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func strPtr(s string) *string { return &s }
