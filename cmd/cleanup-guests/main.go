// Command cleanup-guests deletes guest accounts older than GUEST_MAX_AGE.
// Run it from cron or a scheduled job.
package main

import (
	"fmt"
	"os"

	"fundit/internal/config"
	"fundit/internal/database"
	"fundit/internal/logger"
	"fundit/internal/services"
)

func main() {
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Guest cleanup failed: %v", err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	dbManager, err := database.NewManager(cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}
	defer dbManager.Close()

	deleted, err := services.NewGuestService(dbManager.DB()).DeleteStaleGuests(cfg.GuestMaxAge)
	if err != nil {
		return err
	}

	logger.Get().Infow("stale guests removed", "deleted", deleted, "max_age", cfg.GuestMaxAge.String())
	return nil
}
