package postgres

import (
	"context"
	"database/sql"
	"log/slog"

	"usersvc/config"
	"usersvc/internal/domain/lifecycle"
	"usersvc/internal/errors"
	"usersvc/internal/infra/persistence/postgres/migrations"

	"github.com/pressly/goose/v3"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// RunMigrations applies the embedded migrations to db.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		return errors.Wrap(err, "set goose dialect")
	}

	if err := gooseUpContext(ctx, db, "."); err != nil {
		return errors.Wrap(err, "apply migrations")
	}

	return nil
}

// MigrateParams defines the parameters for the startup migration hook.
type MigrateParams struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	DB     *gorm.DB
	Logger *slog.Logger
}

// RegisterMigrations runs the migrations on start when migration.enabled is set.
// It is appended after the pool's own OnStart, so the database is already reachable.
func RegisterMigrations(params MigrateParams) {
	if params.Config.Migration == nil || !params.Config.Migration.Enabled {
		params.Logger.Info("Schema migrations disabled")

		return
	}

	params.Append(fx.Hook{
		OnStart: func(startCtx context.Context) error {
			ctx, cancel := context.WithTimeout(startCtx, lifecycle.DefaultTimeout)
			defer cancel()

			sqlDB, err := params.DB.DB()
			if err != nil {
				return errors.Wrap(err, "failed to get PostgreSQL sql.DB")
			}

			if err := RunMigrations(ctx, sqlDB); err != nil {
				return err
			}
			params.Logger.Info("Schema migrations applied")

			return nil
		},
	})
}
