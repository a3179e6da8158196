// Package app wires configuration into a ready feedback service. The HTTP
// server, the one-shot CLI and the Cloud Function all build through here.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"essay-feedback/api/internal/config"
	"essay-feedback/api/internal/feedback"
	"essay-feedback/api/internal/llm"
	"essay-feedback/api/internal/llm/gemini"
	"essay-feedback/api/internal/llm/openai"
	"essay-feedback/api/internal/llm/vertex"
	"essay-feedback/api/internal/notion"
	"essay-feedback/api/internal/store"
	"essay-feedback/api/internal/telegram"
)

// App holds the built service and releases its resources on Close.
type App struct {
	Service *feedback.Service
	Engines *llm.Engines
	Notion  *notion.Client

	closers []func() error
}

// Engines builds every configured engine. Vertex needs a project id and is
// skipped without one.
func Engines(cfg *config.Config) *llm.Engines {
	var vx llm.Engine
	if cfg.Vertex.ProjectID != "" {
		vx = vertex.New(cfg.Vertex.ProjectID, cfg.Vertex.Region, cfg.Vertex.Model)
	}
	return llm.NewEngines(cfg.LLMEngine,
		openai.New("groq", cfg.Groq.APIKey, cfg.Groq.Model, cfg.Groq.BaseURL, cfg.Groq.Timeout),
		openai.New("openai", cfg.OpenAI.APIKey, cfg.OpenAI.Model, cfg.OpenAI.BaseURL, cfg.OpenAI.Timeout),
		openai.New("deepseek", cfg.DeepSeek.APIKey, cfg.DeepSeek.Model, cfg.DeepSeek.BaseURL, cfg.DeepSeek.Timeout),
		gemini.New(cfg.Gemini.APIKey, cfg.Gemini.Model),
		vx,
	)
}

// Build connects the optional run log and notifier. Failing to reach either
// is logged and the service runs without it.
func Build(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	if cfg == nil {
		return nil, errors.New("nil config")
	}
	if logger == nil {
		logger = slog.Default()
	}

	engines := Engines(cfg)
	if _, err := engines.GetEngine(""); err != nil {
		return nil, fmt.Errorf("LLM_ENGINE: %w", err)
	}

	a := &App{
		Engines: engines,
		Notion:  notion.New(cfg.Notion.APIKey, cfg.Notion.BaseURL, cfg.Notion.Version, logger),
	}

	opts := []feedback.Option{
		feedback.WithLogger(logger),
		feedback.WithKeyedSplit(cfg.KeyedSplit()),
	}

	if cfg.DatabaseURL != "" {
		db, err := store.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Error("run log disabled", "error", err)
		} else {
			repo := store.NewRunRepo(db)
			if err := repo.EnsureSchema(ctx); err != nil {
				logger.Error("run log disabled", "error", err)
				_ = db.Close()
			} else {
				opts = append(opts, feedback.WithRunLog(repo))
				a.closers = append(a.closers, db.Close)
				logger.Info("run log enabled")
			}
		}
	}

	if cfg.TelegramBotToken != "" && cfg.TelegramChatID != 0 {
		n, err := telegram.New(cfg.TelegramBotToken, cfg.TelegramChatID, "", logger)
		if err != nil {
			logger.Error("telegram notifier disabled", "error", err)
		} else {
			opts = append(opts, feedback.WithNotifier(n))
			logger.Info("telegram notifier enabled", "bot", n.Bot.Self.UserName)
		}
	}

	a.Service = feedback.NewService(a.Notion, engines, feedback.Fields{
		Corrected:   cfg.Notion.FieldCorrected,
		Analysis:    cfg.Notion.FieldAnalysis,
		Suggestions: cfg.Notion.FieldSuggestions,
	}, opts...)

	logger.Info("feedback service ready",
		"default_engine", cfg.LLMEngine,
		"engines", engines.Names(),
		"split_mode", cfg.SplitMode,
	)
	return a, nil
}

func (a *App) Close() error {
	var errs []error
	for _, c := range a.closers {
		errs = append(errs, c())
	}
	return errors.Join(errs...)
}
