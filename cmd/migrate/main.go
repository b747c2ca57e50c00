package main

import (
	"context"
	"os"
	"time"

	"atscheck-backend/internal/shared/config"
	"atscheck-backend/internal/shared/storage/db"
	"atscheck-backend/internal/shared/telemetry"
)

func main() {
	cfg := config.Load()
	if cfg.DatabaseURL == "" {
		telemetry.Error("migrate.failed", map[string]any{"error": "DATABASE_URL is required"})
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	database, err := db.Connect(ctx, cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultMigrateOptions()))
	if err != nil {
		telemetry.Error("migrate.failed", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
	defer database.Close()

	if err := db.RunMigrations(ctx, database); err != nil {
		telemetry.Error("migrate.failed", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
	telemetry.Info("migrate.complete", nil)
}
