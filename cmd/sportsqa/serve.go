package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	chiTransport "github.com/capstone-design/sportsqa/internal/transport/chi"
	"github.com/capstone-design/sportsqa/internal/version"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), opts, port)
		},
	}
	cmd.Flags().IntVar(&port, "port", 0, "listen port; overrides http.port")
	return cmd
}

func runServe(ctx context.Context, opts *rootOptions, port int) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := buildApp(ctx, opts)
	if err != nil {
		return err
	}
	defer a.Close()

	cfg := a.cfg
	if port > 0 {
		cfg.HTTP.Port = port
	}
	logger := a.logger

	logger.Info("Starting sportsqa API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", a.env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("generation_provider", cfg.Generation.Provider),
		zap.Bool("generation_enabled", a.bridge.Enabled()),
		zap.Bool("cache_enabled", cfg.Cache.Enabled),
	)

	server := chiTransport.NewServer(a.answers, a.health, cfg.HTTP.StaticDir, logger)
	handler := chiTransport.NewRouter(server, chiTransport.RouterOptions{
		CORSEnabled: cfg.HTTP.CORSEnabled,
		Logger:      logger,
	})

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
		logger.Info("Received shutdown signal")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
	return nil
}
