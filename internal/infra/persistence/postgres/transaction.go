package postgres

import (
	"context"

	"usersvc/internal/domain/repository"
	"usersvc/internal/domain/service"
	"usersvc/internal/errors"

	"gorm.io/gorm"
)

// gormTransactionManager implements the domain's TransactionManager interface using GORM.
type gormTransactionManager struct {
	db        *gorm.DB
	codec     service.CredentialCodec
	validator service.InputValidator
}

// gormRepositoryFactory hands out repositories bound to a single transaction.
type gormRepositoryFactory struct {
	tx        *gorm.DB // In GORM, a transaction is also a *gorm.DB
	codec     service.CredentialCodec
	validator service.InputValidator
}

// UserRepo returns a user repository bound to the transaction.
func (f *gormRepositoryFactory) UserRepo() repository.UserRepository {
	return NewUserRepository(f.tx, f.codec, f.validator)
}

// NewTransactionManager is the constructor for gormTransactionManager.
func NewTransactionManager(db *gorm.DB, codec service.CredentialCodec, validator service.InputValidator) repository.TransactionManager {
	return &gormTransactionManager{db: db, codec: codec, validator: validator}
}

// Execute runs fn within a single database transaction. The transaction is
// bound to ctx, so cancelling the request rolls it back.
func (tm *gormTransactionManager) Execute(ctx context.Context, fn func(repoFactory repository.RepositoryFactory) error) error {
	tx := tm.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return errors.Wrap(tx.Error, "failed to begin transaction")
	}

	// Roll back on panic, then re-panic so echo's Recover middleware reports it.
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	factory := &gormRepositoryFactory{tx: tx, codec: tm.codec, validator: tm.validator}

	if err := fn(factory); err != nil {
		if rbErr := tx.Rollback().Error; rbErr != nil {
			// Keep the business error as the cause.
			return errors.Wrapf(err, "transaction rollback failed: %v", rbErr)
		}

		return err
	}

	if err := tx.Commit().Error; err != nil {
		return errors.Wrap(err, "failed to commit transaction")
	}

	return nil
}
