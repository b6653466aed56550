package server

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"subplane/internal/infrastructure/auth"
	"subplane/internal/infrastructure/config"
	"subplane/internal/infrastructure/kv"
	httpRouter "subplane/internal/interfaces/http"
	"subplane/internal/shared/logger"
)

var (
	env           string
	skipMigration bool
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "server",
		Short: "Start the HTTP server",
		Long:  `Start the subplane registry HTTP server with the specified configuration.`,
		RunE:  run,
	}

	cmd.Flags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")
	cmd.Flags().BoolVar(&skipMigration, "skip-migration", false, "Skip the legacy registry blob migration check on startup")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	if envVar := os.Getenv("ENV"); envVar != "" {
		env = envVar
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	debugMode := env != "production" && env != "prod"
	if err := logger.Init(&cfg.Logger, debugMode); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	logger.Info("starting server", "environment", env)

	gin.SetMode(mapEnvToGinMode(env))
	gin.DefaultWriter = io.Discard

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.GetAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	log := logger.NewLogger()
	store := kv.NewStore(redisClient, log)

	startupCtx, cancelStartup := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelStartup()

	if err := store.Ping(startupCtx); err != nil {
		return fmt.Errorf("failed to reach redis: %w", err)
	}

	if !skipMigration {
		migrated, err := store.MigrateFromBlob(startupCtx)
		if err != nil {
			return fmt.Errorf("legacy registry migration failed: %w", err)
		}
		if migrated {
			logger.Info("legacy registry blob migrated to per-key layout")
		}
	}

	tokenVerifier, err := auth.NewTokenVerifier(cfg.Auth.PublicKeyPEM, cfg.Auth.PermittedOrigins)
	if err != nil {
		return fmt.Errorf("failed to initialize token verifier: %w", err)
	}

	var webhookVerifier *auth.WebhookVerifier
	if cfg.Webhook.SigningSecret != "" {
		webhookVerifier, err = auth.NewWebhookVerifier(
			cfg.Webhook.SigningSecret,
			time.Duration(cfg.Webhook.ToleranceMinutes)*time.Minute,
		)
		if err != nil {
			return fmt.Errorf("failed to initialize webhook verifier: %w", err)
		}
	} else {
		logger.Warn("webhook signing secret not configured, webhook endpoint disabled")
	}

	router := httpRouter.NewRouter(cfg, store, redisClient, tokenVerifier, webhookVerifier, log)

	srv := &http.Server{
		Addr:         cfg.Server.GetAddr(),
		Handler:      router.Engine(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server starting", "address", cfg.Server.GetAddr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalw("failed to start server", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		return err
	}

	logger.Info("server exited gracefully")
	return nil
}

func mapEnvToGinMode(environment string) string {
	switch environment {
	case "production", "prod", "release":
		return "release"
	case "test", "testing":
		return "test"
	default:
		return "debug"
	}
}
