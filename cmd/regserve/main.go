package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"

	"github.com/wandb/regviz/internal/config"
	"github.com/wandb/regviz/internal/observability"
	"github.com/wandb/regviz/internal/regsvc"
	"github.com/wandb/regviz/internal/sentry_ext"
)

const version = "0.1.0"

// shutdownTimeout bounds how long in-flight requests may take to finish.
const shutdownTimeout = 5 * time.Second

func main() {
	exitCode := mainWithExitCode()
	os.Exit(exitCode)
}

func mainWithExitCode() int {
	configPath := flag.String("config", "", "path to the config file")
	addr := flag.String("addr", "", "address to listen on")
	modelPath := flag.String("model", "", "file where the trained model is saved")
	flag.Parse()

	cfg, err := config.Loader{Fs: afero.NewOsFs()}.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if *addr != "" {
		cfg.Service.Addr = *addr
	}
	if *modelPath != "" {
		cfg.Service.ModelPath = *modelPath
	}

	sentryClient := sentry_ext.New(sentry_ext.Params{
		DSN:              cfg.SentryDSN,
		Disabled:         cfg.SentryDSN == "",
		AttachStacktrace: true,
		Release:          version,
	})
	defer sentryClient.Flush(2 * time.Second)

	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	logger := observability.NewCoreLogger(
		slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
			Level: level,
		})),
		&observability.CoreLoggerParams{
			Tags:   observability.Tags{"app": "regserve"},
			Sentry: sentryClient,
		},
	)

	server := regsvc.NewServer(regsvc.ServerParams{
		Store:  &regsvc.FileStore{Fs: afero.NewOsFs(), Path: cfg.Service.ModelPath},
		Logger: logger,
	})

	ctx, stop := signal.NotifyContext(
		context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	listener, err := net.Listen("tcp", cfg.Service.Addr)
	if err != nil {
		logger.CaptureError(fmt.Errorf("regserve: failed to listen: %v", err))
		return 1
	}

	httpServer := &http.Server{
		Handler:           server.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info(
			"regserve: listening",
			"addr", listener.Addr().String(),
			"model", cfg.Service.ModelPath,
		)
		err := httpServer.Serve(listener)
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	})
	g.Go(func() error {
		<-ctx.Done()
		logger.Info("regserve: shutting down")

		shutdownCtx, cancel := context.WithTimeout(
			context.Background(), shutdownTimeout)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.CaptureError(fmt.Errorf("regserve: %v", err))
		return 1
	}

	return 0
}
