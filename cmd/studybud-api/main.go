package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/extra/bundebug"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zapio"

	"github.com/studybud-project/backend/internal/database"
	"github.com/studybud-project/backend/internal/media"
	"github.com/studybud-project/backend/internal/server"
	"github.com/studybud-project/backend/internal/session"
	"github.com/studybud-project/backend/internal/views"
)

func main() {
	_ = godotenv.Load()

	ctx := context.Background()
	ctx, _ = signal.NotifyContext(ctx, os.Interrupt)

	app := &cli.App{
		Name:  "studybud-api",
		Usage: "discussion rooms for study groups",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "debug",
				Value: false,
				EnvVars: []string{
					"STUDYBUD_API_DEBUG",
				},
			},
			&cli.StringFlag{
				Name:  "database-uri",
				Usage: "postgres://... or sqlite:path",
				EnvVars: []string{
					"STUDYBUD_API_DATABASE_URI",
				},
			},
			&cli.StringFlag{
				Name:  "http-listen-address",
				Value: "127.0.0.1:8000",
				EnvVars: []string{
					"STUDYBUD_API_HTTP_LISTEN_ADDRESS",
				},
			},
			&cli.StringFlag{
				Name:  "session-secret",
				Usage: "base64 encoded PASETO v4 secret key",
				EnvVars: []string{
					"STUDYBUD_API_SESSION_SECRET",
				},
			},
			&cli.BoolFlag{
				Name:  "secure-cookies",
				Value: false,
				EnvVars: []string{
					"STUDYBUD_API_SECURE_COOKIES",
				},
			},
			&cli.StringFlag{
				Name:  "media-root",
				Value: "./media",
				EnvVars: []string{
					"STUDYBUD_API_MEDIA_ROOT",
				},
			},
			&cli.BoolFlag{
				Name:  "auto-migrate",
				Value: false,
				EnvVars: []string{
					"STUDYBUD_API_AUTO_MIGRATE",
				},
			},
		},
		Before: func(cctx *cli.Context) (err error) {
			err = setupLogging(cctx.Bool("debug"))
			return
		},
		Action: entrypoint,
		Commands: []*cli.Command{
			migrateCommand,
			{
				Name:  "generate-session-secret",
				Usage: "print a new base64 encoded session signing key",
				Action: func(cctx *cli.Context) error {
					_, err := fmt.Fprintln(cctx.App.Writer, session.GenerateSecretKey())
					return err
				},
			},
		},
	}

	if err := app.RunContext(ctx, os.Args); err != nil {
		zap.L().Fatal("unhandled error", zap.Error(err))
	}
}

var migrateCommand = &cli.Command{
	Name:      "migrate",
	Usage:     "run database migrations (up, down, redo, status, version)",
	ArgsUsage: "[command] [args...]",
	Action: func(cctx *cli.Context) (err error) {
		defer func() { _ = zap.L().Sync() }()

		command := "up"
		if cctx.Args().Present() {
			command = cctx.Args().First()
		}

		var db *bun.DB
		if db, err = openDatabase(cctx); err != nil {
			return
		}
		defer func() { _ = db.Close() }()

		return database.Migrate(cctx.Context, db, command, cctx.Args().Tail()...)
	},
}

func setupLogging(debugMode bool) error {
	var cfg zap.Config

	if debugMode {
		cfg = zap.NewDevelopmentConfig()
		cfg.Level.SetLevel(zapcore.DebugLevel)
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		cfg.Development = false
	} else {
		cfg = zap.NewProductionConfig()
		cfg.Level.SetLevel(zapcore.InfoLevel)
	}

	cfg.OutputPaths = []string{
		"stdout",
	}

	logger, err := cfg.Build()
	if err != nil {
		return err
	}

	zap.ReplaceGlobals(logger)

	return nil
}

func openDatabase(cctx *cli.Context) (db *bun.DB, err error) {
	if cctx.String("database-uri") == "" {
		err = errors.New("--database-uri is required")
		return
	}

	if db, err = database.Open(cctx.String("database-uri")); err != nil {
		return
	}

	if cctx.Bool("debug") {
		var dbLogger io.Writer = &zapio.Writer{Log: zap.L().With(zap.String("section", "bun")), Level: zapcore.DebugLevel}

		db.AddQueryHook(bundebug.NewQueryHook(
			bundebug.WithVerbose(true),
			bundebug.WithWriter(dbLogger),
		))
	}

	if _, err = db.ExecContext(cctx.Context, "SELECT 1"); err != nil {
		_ = db.Close()
		err = fmt.Errorf("failed to test database connection: %w", err)
	}
	return
}

func entrypoint(cctx *cli.Context) (err error) {
	ctx := cctx.Context
	defer func() { _ = zap.L().Sync() }()

	var db *bun.DB
	if db, err = openDatabase(cctx); err != nil {
		return
	}
	defer func() { _ = db.Close() }()

	if cctx.Bool("auto-migrate") {
		if err = database.Migrate(ctx, db, "up"); err != nil {
			return
		}
	}

	var sessions *session.Manager
	if sessions, err = session.NewManager(cctx.String("session-secret")); err != nil {
		err = fmt.Errorf("failed to decode session secret: %w", err)
		return
	}
	sessions.Secure = cctx.Bool("secure-cookies")

	var renderer *views.Renderer
	if renderer, err = views.NewRenderer(); err != nil {
		return
	}

	accessLog := &zapio.Writer{Log: zap.L().With(zap.String("section", "http")), Level: zapcore.InfoLevel}
	defer func() { _ = accessLog.Close() }()

	router := server.NewRouter(server.Options{
		DB:       db,
		Sessions: sessions,
		Views:    renderer,
		Media:    media.NewStore(cctx.String("media-root")),
		Debug:    cctx.Bool("debug"),
	})

	srv := &http.Server{
		Addr:         cctx.String("http-listen-address"),
		Handler:      server.Wrap(router, accessLog),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	serverDone := make(chan interface{})
	go func() {
		zap.L().Info("serving requests", zap.String("addr", "http://"+srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zap.L().Error("failed to listen for http requests", zap.Error(err))
		}
		close(serverDone)
	}()

	select {
	case <-serverDone:
		return
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	zap.L().Info("shutting down")
	if err = srv.Shutdown(shutdownCtx); err != nil {
		err = fmt.Errorf("failed to shut down http server: %w", err)
	}
	<-serverDone

	return
}
