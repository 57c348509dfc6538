package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"dopc-calculator/internal/config"
	"dopc-calculator/internal/handler"
	"dopc-calculator/internal/homeapi"
	"dopc-calculator/internal/obs"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	configPath := flag.String("config", "config.yaml", "path to YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	level, _ := config.ParseLevel(cfg.Log.Level)
	logger := obs.NewLogger(os.Stdout, "dopc", level)
	slog.SetDefault(logger)

	httpClient := &http.Client{Timeout: cfg.HomeAPI.Timeout}
	api := homeapi.New(homeapi.Config{
		BaseURL:     cfg.HomeAPI.BaseURL,
		MaxAttempts: cfg.HomeAPI.MaxAttempts,
		Backoff:     cfg.HomeAPI.Backoff,
	}, httpClient, logger)

	router := handler.NewRouter(api, handler.Options{
		RequestTimeout: cfg.Server.RequestTimeout,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		Logger:         logger,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		WriteTimeout:      cfg.Server.RequestTimeout + 5*time.Second,
		IdleTimeout:       time.Minute,
		ErrorLog:          slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("DOPC listening", "addr", srv.Addr, "home_api", cfg.HomeAPI.BaseURL)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "err", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", "err", err)
	}
}
