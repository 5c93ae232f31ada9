package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mood-journal/internal/adapters/auth/gotrue"
	"mood-journal/internal/adapters/oracle/factory"
	pg "mood-journal/internal/adapters/storage/postgres"
	"mood-journal/internal/config"
	"mood-journal/internal/platform/logger"
	"mood-journal/internal/platform/metrics"
	"mood-journal/internal/router"
)

// @title Mood Journal API
// @version 1.0
// @description Registro de ánimo y diario con comentarios de apoyo generados por IA.
// @BasePath /
func main() {
	cfg := config.Load()

	log := logger.New(logger.Options{
		Level:    logger.ParseLevel(cfg.App.LogLevel),
		Format:   logger.ParseFormat(cfg.App.LogFormat),
		App:      cfg.App.Name,
		FilePath: cfg.App.LogFilePath,
	})
	defer func() { _ = log.Sync() }()

	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", map[string]any{"error": err})
		_ = log.Sync()
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("server stopped with error", map[string]any{"error": err})
		_ = log.Sync()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, log logger.Logger) error {
	m := metrics.New()

	annotator, err := factory.New(ctx, cfg.Oracle)
	if err != nil {
		return err
	}
	if annotator == nil {
		log.Warn("oracle disabled, entries will be saved without annotation", nil)
	}

	opts := router.Options{
		Annotator:   annotator,
		Logger:      log,
		Metrics:     m,
		Journal:     cfg.Journal,
		RateLimit:   cfg.RateLimit,
		RedirectURL: cfg.Auth.RedirectURL,
	}

	client, err := gotrue.NewClient(gotrue.Config{
		BaseURL: cfg.Auth.ProviderURL,
		APIKey:  cfg.Auth.APIKey,
	})
	if err != nil {
		return err
	}
	if client.IsConfigured() {
		opts.AuthProvider = client
	} else {
		log.Warn("auth provider not configured, magic links disabled", nil)
	}

	if cfg.Auth.DevMode {
		// sin verifier: el usuario llega por X-Debug-User-ID
		log.Warn("auth dev mode enabled", map[string]any{"header": "X-Debug-User-ID"})
	} else {
		v := gotrue.NewVerifier(client, gotrue.VerifierOptions{
			JWTSecret:    cfg.Auth.JWTSecret,
			UserCacheTTL: cfg.Auth.UserCacheTTL,
		})
		opts.AuthVerifier = v
		opts.Revoker = v
	}

	var db *sql.DB
	if cfg.Database.DSN != "" {
		db, err = pg.Open(cfg.Database.DSN)
		if err != nil {
			return err
		}
		defer func() { _ = db.Close() }()

		if cfg.Database.AutoMigrate {
			if err := pg.Migrate(ctx, db); err != nil {
				return err
			}
			log.Info("database schema up to date", nil)
		}
		opts.DB = db
	} else {
		log.Info("DB_DSN empty, using in-memory storage", nil)
	}

	rt := router.NewRouter(opts)

	srv := &http.Server{
		Addr:              ":" + cfg.App.Port,
		Handler:           rt,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		// Con ?wait=true el handler espera al oráculo.
		WriteTimeout: 2 * time.Minute,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", map[string]any{"addr": srv.Addr, "env": cfg.App.Environment})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down", nil)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Warn("http shutdown incomplete", map[string]any{"error": err})
	}
	// anotaciones en curso escriben en la DB; esperar antes de cerrarla
	if err := rt.Drain(shutdownCtx); err != nil {
		log.Warn("pending annotations abandoned", map[string]any{"error": err})
	}
	return nil
}
