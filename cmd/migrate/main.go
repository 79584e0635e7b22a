package main

import (
	"context"

	"expensepro/internal/config"
	"expensepro/internal/db"
	"expensepro/internal/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fallback := logging.New("info")
		fallback.Fatal().Err(err).Msg("failed to load config")
	}
	log := logging.New(cfg.LogLevel)

	database, err := db.Connect(cfg.DatabasePath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open database")
	}
	defer database.Close()

	if err := db.Migrate(database); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}
	if err := db.SeedDefaultUsers(context.Background(), database); err != nil {
		log.Fatal().Err(err).Msg("failed to seed default users")
	}
	log.Info().Str("database", cfg.DatabasePath).Msg("migrations applied")
}
