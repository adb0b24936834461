package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"wgdash/internal/app/copybox"
	"wgdash/internal/app/dashboard"
	"wgdash/internal/app/login"
	"wgdash/internal/app/relay"
	"wgdash/internal/app/status"
	"wgdash/internal/handler"
	"wgdash/internal/pkg/logx"
)

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the web dashboard",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup(cmd, true)
			if err != nil {
				return err
			}
			defer e.store.Close()

			return serve(e)
		},
	}

	cmd.Flags().Int("port", 3000, "dashboard port (env PORT)")

	return cmd
}

func serve(e *env) error {
	cfg := e.cfg

	logx.Logger().Info().
		Str("environment", cfg.Environment).
		Int("port", cfg.Port).
		Str("api_end_point", cfg.APIEndpoint).
		Strs("allowed_origins", cfg.AllowedOrigins).
		Str("storage_path", cfg.StoragePath).
		Msg("Configuration loaded successfully")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	wsURL, err := status.URL(cfg.APIEndpoint, cfg.Origin())
	if err != nil {
		return err
	}

	channel := status.NewChannel(wsURL, e.sessions.AccessToken)
	hub := relay.NewHub()
	channel.OnSnapshot(hub.Publish)

	hubDone := make(chan struct{})
	go func() {
		defer close(hubDone)
		hub.Run(ctx)
	}()

	deps := &handler.AppDeps{
		Config:    cfg,
		Session:   e.sessions,
		API:       e.client,
		Login:     login.NewFlow(e.client, e.sessions),
		Dashboard: dashboard.NewService(ctx, e.sessions, e.client, channel, cfg.WireGuardLink),
		Status:    channel,
		Hub:       hub,
		Clipboard: copybox.SystemClipboard{},
	}

	server := &http.Server{
		Addr:         fmt.Sprintf("127.0.0.1:%d", cfg.Port),
		Handler:      handler.Router(ctx, deps),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 20 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logx.Info(fmt.Sprintf("Dashboard starting on %s", cfg.Origin()))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		stop()
		channel.Stop()
		<-hubDone
		return fmt.Errorf("dashboard server failed: %w", err)
	case <-ctx.Done():
	}

	logx.Info("Received shutdown signal. Starting graceful shutdown...")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logx.Error(err, "Server forced to shutdown")
	}

	channel.Stop()
	<-hubDone

	logx.Info("Dashboard gracefully stopped.")
	return nil
}
