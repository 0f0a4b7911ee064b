// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"
	"time"

	"usersvc/internal/domain/entity"
	domainerrors "usersvc/internal/domain/errors"
	"usersvc/internal/domain/repository"
	"usersvc/internal/domain/service"
	"usersvc/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/plugin/dbresolver"
)

// userRepository implements repository.UserRepository using GORM.
type userRepository struct {
	db        *gorm.DB
	codec     service.CredentialCodec
	validator service.InputValidator
	now       func() time.Time
}

// NewUserRepository returns a repository over db, which may be the pool or a
// transaction handed out by the TransactionManager.
func NewUserRepository(db *gorm.DB, codec service.CredentialCodec, validator service.InputValidator) repository.UserRepository {
	return &userRepository{
		db:        db,
		codec:     codec,
		validator: validator,
		now:       storeNow,
	}
}

// storeNow matches the microsecond precision of TIMESTAMPTZ so the values
// returned to callers equal what a later read yields.
func storeNow() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

// Create validates the input, checks the email on the primary, derives the
// credentials and inserts the row. users_email_key decides any race the
// pre-check misses.
func (repo *userRepository) Create(ctx context.Context, input *entity.UserInput) (*entity.User, error) {
	if input == nil {
		return nil, domainerrors.ErrInvalidData.WithDetails("payload is required")
	}

	normalized := *input
	normalized.Normalize()
	if err := repo.validator.Validate(&normalized); err != nil {
		return nil, err
	}

	db := repo.db.WithContext(ctx)

	taken, err := emailTaken(db, normalized.Email, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, domainerrors.ErrEmailAlreadyRegistered.WrapMessage("email already exists")
	}

	cred, err := repo.codec.Derive(normalized.Password)
	if err != nil {
		return nil, errors.Wrap(err, "derive credentials")
	}

	now := repo.now()
	userM := &model.UserModel{
		FirstName:    normalized.FirstName,
		LastName:     normalized.LastName,
		Email:        normalized.Email,
		PasswordHash: cred.Hash,
		Salt:         cred.Salt,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := db.Create(userM).Error; err != nil {
		return nil, translateWriteError(err, "failed to create user")
	}

	return toUserDomain(userM), nil
}

// FindByID retrieves a single user by id.
func (repo *userRepository) FindByID(ctx context.Context, id int64) (*entity.User, error) {
	var userM model.UserModel
	if err := repo.db.WithContext(ctx).First(&userM, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrUserNotFound
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to find user by id")
	}

	return toUserDomain(&userM), nil
}

// List returns every user ordered by id. An empty store yields an empty slice.
func (repo *userRepository) List(ctx context.Context) ([]*entity.User, error) {
	var userMs []*model.UserModel
	if err := repo.db.WithContext(ctx).Order("id ASC").Find(&userMs).Error; err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to list users")
	}

	users := make([]*entity.User, 0, len(userMs))
	for _, userM := range userMs {
		users = append(users, toUserDomain(userM))
	}

	return users, nil
}

// Update locks the row, applies only the supplied fields and always advances
// updated_at. A supplied password gets a fresh salt and hash.
func (repo *userRepository) Update(ctx context.Context, id int64, patch *entity.UserPatch) (*entity.User, error) {
	if patch.IsEmpty() {
		return nil, domainerrors.ErrInvalidData.WithDetails("no updatable field supplied")
	}

	normalized := *patch
	normalized.Normalize()
	if err := repo.validator.Validate(&normalized); err != nil {
		return nil, err
	}

	db := repo.db.WithContext(ctx)

	var userM model.UserModel
	if err := db.Clauses(clause.Locking{Strength: "UPDATE"}).First(&userM, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrUserNotFound
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to lock user")
	}

	changes := make(map[string]any, 6)
	if normalized.FirstName != nil {
		changes["first_name"] = *normalized.FirstName
		userM.FirstName = *normalized.FirstName
	}
	if normalized.LastName != nil {
		changes["last_name"] = *normalized.LastName
		userM.LastName = *normalized.LastName
	}
	if normalized.Email != nil && *normalized.Email != userM.Email {
		taken, err := emailTaken(db, *normalized.Email, id)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, domainerrors.ErrEmailAlreadyRegistered.WrapMessage("email already exists")
		}
		changes["email"] = *normalized.Email
		userM.Email = *normalized.Email
	}
	if normalized.Password != nil {
		cred, err := repo.codec.Derive(*normalized.Password)
		if err != nil {
			return nil, errors.Wrap(err, "derive credentials")
		}
		changes["password_hash"] = cred.Hash
		changes["salt"] = cred.Salt
	}

	userM.UpdatedAt = nextUpdatedAt(userM.UpdatedAt, repo.now())
	changes["updated_at"] = userM.UpdatedAt

	result := db.Model(&model.UserModel{}).Where("id = ?", id).Updates(changes)
	if result.Error != nil {
		return nil, translateWriteError(result.Error, "failed to update user")
	}
	if result.RowsAffected == 0 {
		return nil, domainerrors.ErrUserNotFound
	}

	return toUserDomain(&userM), nil
}

// Delete removes the row permanently.
func (repo *userRepository) Delete(ctx context.Context, id int64) error {
	result := repo.db.WithContext(ctx).Where("id = ?", id).Delete(&model.UserModel{})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete user")
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrUserNotFound
	}

	return nil
}

// emailTaken checks for another user holding email, on the primary so a
// lagging replica cannot hide a fresh registration. excludeID 0 excludes nobody.
func emailTaken(db *gorm.DB, email string, excludeID int64) (bool, error) {
	query := db.Clauses(dbresolver.Write).Model(&model.UserModel{}).Where("email = ?", email)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, domainerrors.NewDatabaseExecuteError(err, "failed to check email")
	}

	return count > 0, nil
}

// nextUpdatedAt never lets updated_at stand still or move backwards, even when
// two mutations land within one clock tick.
func nextUpdatedAt(prev, now time.Time) time.Time {
	if now.After(prev) {
		return now
	}

	return prev.Add(time.Microsecond)
}

// translateWriteError maps constraint violations to domain errors. Anything
// not attributable to the caller's data stays a generic database error.
func translateWriteError(err error, details string) error {
	switch {
	case isEmailUniqueViolation(err):
		return domainerrors.ErrEmailAlreadyRegistered.WrapMessage("email already exists")
	case isNotNullConstraintViolation(err), isCheckConstraintViolation(err):
		return domainerrors.ErrInvalidData.WrapMessage(details)
	default:
		return domainerrors.NewDatabaseExecuteError(err, details)
	}
}

func toUserDomain(userM *model.UserModel) *entity.User {
	return &entity.User{
		ID:        userM.ID,
		FirstName: userM.FirstName,
		LastName:  userM.LastName,
		Email:     userM.Email,
		CreatedAt: userM.CreatedAt.UTC(),
		UpdatedAt: userM.UpdatedAt.UTC(),
	}
}
