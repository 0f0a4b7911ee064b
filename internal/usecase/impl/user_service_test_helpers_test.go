package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"usersvc/internal/domain/entity"
	"usersvc/internal/domain/repository"
	mockRepo "usersvc/internal/mocks/repository"
	"usersvc/internal/usecase"

	"github.com/stretchr/testify/mock"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// userServiceFixtures holds all test dependencies for user service tests.
type userServiceFixtures struct {
	service   usecase.UserUsecase
	txManager *mockRepo.MockTransactionManager
	userRepo  *mockRepo.MockUserRepository
}

func createTestUserService(t *testing.T) userServiceFixtures {
	txManager := mockRepo.NewMockTransactionManager(t)
	userRepo := mockRepo.NewMockUserRepository(t)

	service := NewUserService(UserServiceParams{
		TxManager: txManager,
		UserRepo:  userRepo,
		Logger:    newDiscardLogger(),
	})

	return userServiceFixtures{
		service:   service,
		txManager: txManager,
		userRepo:  userRepo,
	}
}

// expectTransaction runs the service's callback against a factory handing out txRepo.
func (fx userServiceFixtures) expectTransaction(t *testing.T, txRepo *mockRepo.MockUserRepository) {
	fx.txManager.EXPECT().
		Execute(mock.Anything, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(_ context.Context, fn func(repository.RepositoryFactory) error) error {
			factory := mockRepo.NewMockRepositoryFactory(t)
			factory.EXPECT().UserRepo().Return(txRepo)

			return fn(factory)
		})
}

var testTime = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func testUser(id int64) *entity.User {
	return &entity.User{
		ID:        id,
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
		CreatedAt: testTime,
		UpdatedAt: testTime,
	}
}

func strPtr(s string) *string { return &s }
