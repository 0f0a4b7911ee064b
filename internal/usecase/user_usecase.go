// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"
	"time"

	"usersvc/internal/domain/entity"
)

// TimestampLayout renders timestamps as RFC 3339 in UTC with microseconds.
const TimestampLayout = "2006-01-02T15:04:05.000000Z07:00"

// --- Input DTOs ---

// CreateUserInput defines the data required to register a new user.
type CreateUserInput struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

// UpdateUserInput names the fields to change. Absent fields stay untouched.
type UpdateUserInput struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Email     *string `json:"email"`
	Password  *string `json:"password"`
}

// --- Output DTOs ---

// UserOutput is the public view of a user. It never carries credentials.
type UserOutput struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// NewUserOutput shapes a domain user for the boundary.
func NewUserOutput(user *entity.User) *UserOutput {
	return &UserOutput{
		ID:        user.ID,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Email:     user.Email,
		CreatedAt: formatTimestamp(user.CreatedAt),
		UpdatedAt: formatTimestamp(user.UpdatedAt),
	}
}

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// UserUsecase defines the interface for user-related business operations.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type UserUsecase interface {
	CreateUser(ctx context.Context, input *CreateUserInput) (*UserOutput, error)
	GetUser(ctx context.Context, id int64) (*UserOutput, error)
	ListUsers(ctx context.Context) ([]*UserOutput, error)
	UpdateUser(ctx context.Context, id int64, input *UpdateUserInput) (*UserOutput, error)
	DeleteUser(ctx context.Context, id int64) error
}
