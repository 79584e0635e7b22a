package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"expensepro/internal/config"
	"expensepro/internal/db"
	"expensepro/internal/handlers"
	"expensepro/internal/logging"
	"expensepro/internal/services"
	"expensepro/internal/store"
	"expensepro/internal/websocket"

	"golang.org/x/sync/errgroup"
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

	users := store.NewUserStore(database)
	transactions := store.NewTransactionStore(database)
	settings := store.NewSettingStore(database)
	categories := store.NewCategoryStore(database)
	logs := store.NewLogStore(database)
	files := store.NewFileStore(database)
	txRunner := db.NewTxRunner(database)
	hub := websocket.NewHub()

	authService := services.NewAuthService(txRunner, users, logs, cfg.JWTSecret, cfg.TokenTTL())
	transactionService := services.NewTransactionService(txRunner, users, transactions, logs, hub)
	userService := services.NewUserService(txRunner, users, transactions, logs)
	settingsService := services.NewSettingsService(txRunner, settings, logs)
	categoryService := services.NewCategoryService(txRunner, categories, logs)
	statsService := services.NewStatsService(users, transactions)
	backupService := services.NewBackupService(txRunner, users, transactions, settings, categories, logs, files)
	exportService := services.NewExportService(txRunner, users, transactions, logs)
	fileService := services.NewFileService(txRunner, files, users)

	handler := handlers.New(cfg, log, txRunner, users,
		authService, transactionService, userService, settingsService,
		categoryService, statsService, backupService, exportService,
		fileService, logs, hub)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler.Routes(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	group, ctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		log.Info().Str("addr", server.Addr).Msg("expensepro API listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	group.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := group.Wait(); err != nil {
		log.Error().Err(err).Msg("server error")
		os.Exit(1)
	}
	log.Info().Msg("server stopped")
}
