package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/songminho/ragconsole/internal/api"
	"github.com/songminho/ragconsole/internal/backend"
	"github.com/songminho/ragconsole/internal/config"
	"github.com/songminho/ragconsole/internal/console"
	"github.com/songminho/ragconsole/internal/repository"
)

var (
	configPath = flag.String("config", "", "Path to config file")
)

func main() {
	flag.Parse()

	// Optional .env for local development
	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	// Transcript history store
	db, err := repository.NewDB(cfg.Database.Path)
	if err != nil {
		logger.Fatal("Failed to initialize database", zap.Error(err))
	}
	defer db.Close()

	historyRepo := repository.NewHistoryRepository(db)
	session, err := historyRepo.OpenSession(cfg.Console.SessionName)
	if err != nil {
		logger.Fatal("Failed to open console session", zap.Error(err))
	}

	// Backend API client
	client := backend.New(cfg.Backend.BaseURL, cfg.BackendTimeout(), logger)

	// Console controllers
	adminConsole := console.NewAdminConsole(client, logger)
	appConsole := console.NewAppConsole(client, historyRepo, session.ID, cfg.Console.DefaultProvider, logger)

	if history, err := historyRepo.Messages(session.ID); err != nil {
		logger.Warn("Failed to restore transcript history", zap.Error(err))
	} else {
		appConsole.SeedTranscript(history)
	}

	router := api.SetupRouter(adminConsole, appConsole, logger, api.RouterConfig{
		AllowOrigins: []string{"*"},
	})

	srv := &http.Server{
		Addr:         cfg.Address(),
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logger.Info("Starting ragconsole gateway",
			zap.String("address", cfg.Address()),
			zap.String("backend", cfg.Backend.BaseURL),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}
