// Package migrate exposes the legacy registry blob migration as a
// standalone command for operators who want to run it ahead of a deploy
// instead of at server startup.
package migrate

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"subplane/internal/infrastructure/config"
	"subplane/internal/infrastructure/kv"
	"subplane/internal/shared/logger"
)

func NewCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Migrate the legacy registry blob to the per-key layout",
		RunE:  run,
	}
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(&cfg.Logger, true); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.GetAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	store := kv.NewStore(redisClient, logger.NewLogger())

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	migrated, err := store.MigrateFromBlob(ctx)
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	if migrated {
		logger.Info("legacy registry blob migrated to per-key layout")
	} else {
		logger.Info("no legacy registry blob present, nothing to migrate")
	}

	return nil
}
