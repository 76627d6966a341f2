// Package main is the entry point for the divvy expense-splitting API server.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gitlab.com/aungkhant/divvy/internal/auth"
	"gitlab.com/aungkhant/divvy/internal/config"
	"gitlab.com/aungkhant/divvy/internal/database"
	"gitlab.com/aungkhant/divvy/internal/logger"
	"gitlab.com/aungkhant/divvy/internal/notify"
	"gitlab.com/aungkhant/divvy/internal/repository"
	"gitlab.com/aungkhant/divvy/internal/server"
	"gitlab.com/aungkhant/divvy/internal/service"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if len(os.Args) > 1 && os.Args[1] == "version" {
		fmt.Printf("divvy %s (commit: %s, built: %s)\n", version, commit, date)
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to load config")
	}

	logger.SetLevel(cfg.LogLevel)
	logger.InitHashSalt()

	pool, err := database.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer pool.Close()

	if err := database.RunMigrations(ctx, pool); err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to run migrations")
	}

	logger.Log.Info().Msg("Database initialized successfully")

	users := repository.NewUserRepository(pool)
	profiles := repository.NewProfileRepository(pool)
	groups := repository.NewGroupRepository(pool)
	expenses := repository.NewExpenseRepository(pool)
	friends := repository.NewFriendRepository(pool)

	var notifier service.Notifier
	if cfg.TelegramEnabled() {
		tg, err := notify.NewTelegramNotifier(cfg.TelegramBotToken, profiles)
		if err != nil {
			logger.Log.Fatal().Err(err).Msg("Failed to create telegram notifier")
		}
		notifier = tg
		logger.Log.Info().Msg("Telegram notifications enabled")
	}

	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.TokenDuration)
	authSvc := service.NewAuthService(users, profiles, tokens)
	ledger := service.NewLedgerService(groups, expenses, users, notifier)
	friendSvc := service.NewFriendService(friends, users, notifier)

	srv := &http.Server{
		Addr:         cfg.ListenAddr,
		Handler:      server.New(authSvc, ledger, friendSvc, tokens).Handler(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan
		logger.Log.Info().Msg("Shutting down...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Log.Error().Err(err).Msg("Server shutdown failed")
		}
		cancel()
	}()

	logger.Log.Info().Str("addr", cfg.ListenAddr).Msg("Server listening")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Log.Fatal().Err(err).Msg("Server failed")
	}
}
