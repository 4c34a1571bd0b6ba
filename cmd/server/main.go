package main

import (
	"context"
	"errors"
	"flag"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/triviaquiz/trivia-api/app/server"
	"github.com/triviaquiz/trivia-api/config"
	"github.com/triviaquiz/trivia-api/database"
	"github.com/triviaquiz/trivia-api/models"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		bootLogger := zerolog.New(os.Stderr)
		bootLogger.Fatal().Err(err).Msg("load config")
	}

	addr := flag.String("addr", cfg.ServerAddr, "HTTP listen address")
	flag.Parse()

	logger := newLogger(cfg, os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err = run(ctx, cfg, *addr, logger)
	stop()
	if err != nil {
		logger.Fatal().Err(err).Msg("server stopped")
	}
}

func newLogger(cfg *config.Config, out io.Writer) zerolog.Logger {
	zerolog.SetGlobalLevel(cfg.LogLevel)
	if cfg.LogFormat == "console" {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}
	return zerolog.New(out).With().Timestamp().Str("service", "trivia-api").Logger()
}

// run serves until ctx is cancelled, then shuts the server down.
func run(ctx context.Context, cfg *config.Config, addr string, logger zerolog.Logger) error {
	db, err := database.Open(cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := database.Close(db); err != nil {
			logger.Error().Err(err).Msg("close database")
		}
	}()

	if cfg.AutoMigrate {
		if err := database.AutoMigrate(db); err != nil {
			return err
		}
	}
	if cfg.Seed {
		seeded, err := database.Seed(ctx, db)
		if err != nil {
			return err
		}
		logger.Info().Bool("seeded", seeded).Msg("seed checked")
	}

	deps := server.NewDeps(models.NewCategoriesRepository(db), models.NewQuestionsRepository(db), logger)
	srv := &http.Server{
		Addr:              addr,
		Handler:           server.NewRouter(deps),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", addr).Msg("trivia-api listening")
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

	logger.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
