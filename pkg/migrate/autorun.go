package migrate

import (
	"context"
	"fmt"

	"github.com/pharmaware/pharmacare/pkg/config"
	"github.com/pharmaware/pharmacare/pkg/db"
	"github.com/pharmaware/pharmacare/pkg/logger"
)

// MaybeAutoRun applies pending migrations when the feature flag is enabled.
// Desktop installs rely on this so the database file is brought up to date
// on every launch.
func MaybeAutoRun(ctx context.Context, cfg *config.Config, logg *logger.Logger, client *db.Client) error {
	if !cfg.FeatureFlags.AutoMigrate {
		return nil
	}

	sqlDB, err := client.DB().DB()
	if err != nil {
		return fmt.Errorf("extracting sql.DB: %w", err)
	}

	ctx = logg.WithField(ctx, "db_path", cfg.DB.Path)
	logg.Info(ctx, "applying pending migrations")

	if err := Up(ctx, sqlDB); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}

	logg.Info(ctx, "migrations up to date")
	return nil
}
