package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/interview-prep/internal/server"
)

func (a *app) serveCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the REST API server",
		Long:  "Start an HTTP server exposing the interview endpoints under /api/interview.",
		Args:  cobra.NoArgs,
		RunE:  a.runServe,
	}
	cmd.Flags().Int("port", 8080, "Port to listen on")
	_ = a.v.BindPFlag("server.port", cmd.Flags().Lookup("port"))
	return cmd
}

func (a *app) runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	svc := a.service()
	defer func() { _ = svc.Close() }()

	if !svc.HasAPIKey() {
		a.logger.Warn("model API key is not configured; generation requests will fail",
			zap.String("env", svc.Provider().APIKeyEnv()))
	}

	srv := server.New(server.Config{
		Addr:         a.cfg.Addr(),
		ReadTimeout:  a.cfg.Server.ReadTimeout,
		WriteTimeout: a.cfg.Server.WriteTimeout,
		RateLimit:    a.cfg.RateLimitSettings(),
	}, svc, a.logger)

	return srv.Start(ctx)
}
