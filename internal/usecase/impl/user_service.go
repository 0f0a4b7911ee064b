// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"

	deliverycontext "usersvc/internal/delivery/context"
	"usersvc/internal/domain/entity"
	domainerrors "usersvc/internal/domain/errors"
	"usersvc/internal/domain/repository"
	"usersvc/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// userService implements the UserUsecase interface.
type userService struct {
	txManager repository.TransactionManager
	userRepo  repository.UserRepository
	logger    *slog.Logger
}

// UserServiceParams holds dependencies for UserService, injected by Fx.
type UserServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	UserRepo  repository.UserRepository
	Logger    *slog.Logger
}

// NewUserService is the constructor for userService. It receives all dependencies as interfaces.
func NewUserService(params UserServiceParams) usecase.UserUsecase {
	return &userService{
		txManager: params.TxManager,
		userRepo:  params.UserRepo,
		logger:    params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *userService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// CreateUser registers a new user. The email pre-check and the insert share
// one transaction.
func (srv *userService) CreateUser(ctx context.Context, input *usecase.CreateUserInput) (*usecase.UserOutput, error) {
	if input == nil {
		return nil, domainerrors.ErrInvalidData.WithDetails("payload is required")
	}

	var created *entity.User
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		user, err := repoFactory.UserRepo().Create(ctx, &entity.UserInput{
			FirstName: input.FirstName,
			LastName:  input.LastName,
			Email:     input.Email,
			Password:  input.Password,
		})
		if err != nil {
			return err
		}
		created = user

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Create user rejected", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to create user")
	}

	srv.log(ctx).Info("User created", slog.Int64("user_id", created.ID))

	return usecase.NewUserOutput(created), nil
}

// GetUser returns a single user.
func (srv *userService) GetUser(ctx context.Context, id int64) (*usecase.UserOutput, error) {
	user, err := srv.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get user")
	}

	return usecase.NewUserOutput(user), nil
}

// ListUsers returns every user ordered by id. An empty collection is not an error.
func (srv *userService) ListUsers(ctx context.Context) ([]*usecase.UserOutput, error) {
	users, err := srv.userRepo.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list users")
	}

	outputs := make([]*usecase.UserOutput, 0, len(users))
	for _, user := range users {
		outputs = append(outputs, usecase.NewUserOutput(user))
	}

	return outputs, nil
}

// UpdateUser applies a partial update. A payload naming no field is rejected.
func (srv *userService) UpdateUser(ctx context.Context, id int64, input *usecase.UpdateUserInput) (*usecase.UserOutput, error) {
	if input == nil {
		return nil, domainerrors.ErrInvalidData.WithDetails("payload is required")
	}

	patch := &entity.UserPatch{
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Email:     input.Email,
		Password:  input.Password,
	}
	if patch.IsEmpty() {
		return nil, domainerrors.ErrInvalidData.WithDetails("no updatable field supplied")
	}

	var updated *entity.User
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		user, err := repoFactory.UserRepo().Update(ctx, id, patch)
		if err != nil {
			return err
		}
		updated = user

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to update user")
	}

	srv.log(ctx).Info("User updated", slog.Int64("user_id", id))

	return usecase.NewUserOutput(updated), nil
}

// DeleteUser removes a user permanently.
func (srv *userService) DeleteUser(ctx context.Context, id int64) error {
	if err := srv.userRepo.Delete(ctx, id); err != nil {
		return errors.Wrap(err, "failed to delete user")
	}

	srv.log(ctx).Info("User deleted", slog.Int64("user_id", id))

	return nil
}
