package main

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"essay-feedback/api/internal/app"
	"essay-feedback/api/internal/handle"
	"essay-feedback/api/internal/httpserver"
)

func serveCmd(envFile *string) *cobra.Command {
	var (
		host string
		port string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP trigger server",
		Long: `Start the HTTP trigger server.

Configuration is loaded in the following order (later sources override earlier):
  1. Default values
  2. .env file (if --env-file specified or .env exists in current directory)
  3. Environment variables
  4. Command line flags

Environment variables:
  HOST, PORT                   Listen address (default: 0.0.0.0:5000)
  LOG_LEVEL, LOG_FORMAT        DEBUG|INFO|WARN|ERROR and pretty|json
  NOTION_API_KEY               Notion integration secret
  NOTION_DATABASE_ID           Essay database id (informational)
  NOTION_FIELD_*               Row property names for the three sections
  LLM_ENGINE                   groq, openai, deepseek, gemini or vertex (default: groq)
  GROQ_* OPENAI_* DEEPSEEK_*   API_KEY, MODEL, BASE_URL, TIMEOUT
  GEMINI_*                     API_KEY, MODEL
  VERTEX_*                     PROJECT_ID, REGION, MODEL
  SPLIT_MODE                   positional or keyed (default: positional)
  TRIGGER_TIMEOUT              Per-request budget (default: 180s)
  DATABASE_URL                 Postgres run log (optional)
  TELEGRAM_BOT_TOKEN           Run notifications (optional)
  TELEGRAM_CHAT_ID`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(*envFile, host, port)
		},
	}

	cmd.Flags().StringVar(&host, "host", "", "Server host to bind to (default: 0.0.0.0)")
	cmd.Flags().StringVar(&port, "port", "", "Server port to listen on (default: 5000)")

	return cmd
}

func runServe(envFile, host, port string) error {
	cfg, logger, err := loadConfig(envFile)
	if err != nil {
		return err
	}
	if host != "" {
		cfg.Host = host
	}
	if port != "" {
		cfg.Port = port
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := app.Build(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("build app: %w", err)
	}
	defer func() {
		if err := a.Close(); err != nil {
			logger.Error("failed to close app", slog.Any("error", err))
		}
	}()

	server := httpserver.New(cfg.Addr(), cfg.TriggerTimeout+30*time.Second, logger)
	handle.New(a.Service, cfg.TriggerTimeout, logger).Mount(server.Router())

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown error", slog.Any("error", err))
		}
	}()

	logger.Info("starting essay-feedback", slog.String("version", version), slog.String("addr", cfg.Addr()))
	if err := server.Start(); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	logger.Info("server stopped")
	return nil
}
