package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/binhbb2204/Top-Movies/internal/movie"
	"github.com/binhbb2204/Top-Movies/internal/server"
	"github.com/binhbb2204/Top-Movies/internal/tmdb"
	"github.com/binhbb2204/Top-Movies/pkg/config"
	"github.com/binhbb2204/Top-Movies/pkg/database"
	"github.com/binhbb2204/Top-Movies/pkg/logger"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.GetLogger().Error("config_load_failed", "error", err.Error())
		os.Exit(1)
	}

	logger.Init(logger.ParseLevel(cfg.Logging.Level), cfg.JSONLogs(), os.Stdout)
	log := logger.GetLogger().WithContext("component", "web_server")
	defer log.Sync()
	log.Info("starting_web_server", "version", "1.0.0")

	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		log.Error("failed_to_initialize_database", "error", err.Error(), "path", cfg.Database.Path)
		os.Exit(1)
	}
	defer db.Close()

	source, err := tmdb.NewClient(cfg.TMDB)
	if err != nil {
		log.Error("failed_to_initialize_tmdb_client", "error", err.Error())
		os.Exit(1)
	}

	gin.SetMode(cfg.Server.GinMode)
	movieHandler := movie.NewHandler(movie.NewSQLStore(db), source, logger.GetLogger())
	router, err := server.NewRouter(server.Options{
		DB:           db,
		Movies:       movieHandler,
		Logger:       logger.GetLogger().WithContext("component", "http"),
		AllowOrigins: []string{cfg.Server.FrontendURL},
	})
	if err != nil {
		log.Error("failed_to_build_router", "error", err.Error())
		os.Exit(1)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		log.Info("http_server_listening", "port", cfg.Server.Port, "db_path", cfg.Database.Path)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	stopChan := make(chan os.Signal, 1)
	signal.Notify(stopChan, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errChan:
		log.Error("http_server_start_failed", "error", err.Error())
		os.Exit(1)
	case sig := <-stopChan:
		log.Info("shutdown_signal_received", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Warn("shutdown_timeout_forcing_stop", "error", err.Error())
		return
	}
	log.Info("graceful_shutdown_complete")
}
