package main

import (
	"context"
	"database/sql"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/iliyamo/venue-directory/internal/config"
	"github.com/iliyamo/venue-directory/internal/database"
	"github.com/iliyamo/venue-directory/internal/handler"
	"github.com/iliyamo/venue-directory/internal/logging"
	"github.com/iliyamo/venue-directory/internal/middleware"
	"github.com/iliyamo/venue-directory/internal/queue"
	"github.com/iliyamo/venue-directory/internal/repository"
	"github.com/iliyamo/venue-directory/internal/router"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "venue-directory [command]",
		Short: "Venue, artist and show booking directory",
		Long: `venue-directory serves the booking directory over HTTP.

Examples:
  # Create missing tables
  venue-directory migrate

  # Start the HTTP server
  venue-directory serve

  # Record listing events in the activity log
  venue-directory consume`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			config.LoadDotEnv()
			logging.Init(config.LoadLogConfig())
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	root.AddCommand(newServeCmd(), newMigrateCmd(), newConsumeCmd())
	return root
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx, config.Load())
		},
	}
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the venues, artists and shows tables if they do not exist",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			db, err := openDB(cfg)
			if err != nil {
				return err
			}
			defer db.Close()
			if err := database.CreateSchema(cmd.Context(), db); err != nil {
				return err
			}
			log.Info().Str("database", cfg.DBName).Msg("schema ready")
			return nil
		},
	}
}

func newConsumeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "consume",
		Short: "Append listing events from the broker to the activity log",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			ev := config.LoadEventsConfig()
			err := queue.StartActivityConsumer(ctx, ev.URL, ev.Queue, ev.ActivityLog)
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}
}

func openDB(cfg config.Config) (*sql.DB, error) {
	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		return nil, errors.Wrap(err, "open database")
	}
	return db, nil
}

// serve wires the repositories, the event publisher and the rate limiter
// into the echo server and runs it until ctx is cancelled.
func serve(ctx context.Context, cfg config.Config) error {
	db, err := openDB(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	if cfg.AutoMigrate {
		if err := database.CreateSchema(ctx, db); err != nil {
			return err
		}
	}

	var events queue.Publisher = queue.NopPublisher{}
	if cfg.Events.Enabled {
		pub := queue.NewAMQPPublisher(cfg.Events.URL, cfg.Events.Queue)
		defer pub.Close()
		events = pub
	}

	h := handler.NewDirectoryHandler(
		repository.NewVenueRepo(db),
		repository.NewArtistRepo(db),
		repository.NewShowRepo(db),
		events,
	)

	var mws []echo.MiddlewareFunc
	if rl := config.LoadRateLimitConfig(); rl.Enabled {
		rdb := config.NewRedisClient()
		if rdb != nil {
			defer rdb.Close()
		}
		mws = append(mws, middleware.NewTokenBucket(rl, rdb))
	}
	e := router.New(h, mws...)

	addr := ":" + cfg.Port
	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", addr).Str("env", cfg.Env).Msg("listening")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Shutdown)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
