// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"

	"usersvc/internal/domain/entity"
)

// UserRepository owns every read and write of user records.
//
// Implementations validate inputs, derive credentials for writes and report
// failures as domain errors: ErrUserNotFound, ErrEmailAlreadyRegistered and
// ErrInvalidData from usersvc/internal/domain/errors, or a DatabaseExecuteError
// for anything the store raises that is none of those.
type UserRepository interface {
	// Create validates input, derives credentials and persists a new user.
	Create(ctx context.Context, input *entity.UserInput) (*entity.User, error)

	// FindByID retrieves a single user by id.
	FindByID(ctx context.Context, id int64) (*entity.User, error)

	// List returns every user ordered by id. An empty slice is not an error.
	List(ctx context.Context) ([]*entity.User, error)

	// Update applies the non-nil fields of patch and refreshes updated_at.
	Update(ctx context.Context, id int64, patch *entity.UserPatch) (*entity.User, error)

	// Delete removes the user permanently.
	Delete(ctx context.Context, id int64) error
}
