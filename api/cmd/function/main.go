// Package main exposes the trigger as a Google Cloud Function.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"sync"

	"github.com/GoogleCloudPlatform/functions-framework-go/functions"

	"essay-feedback/api/internal/app"
	"essay-feedback/api/internal/config"
	"essay-feedback/api/internal/handle"
	"essay-feedback/api/internal/logging"
)

var (
	handler http.HandlerFunc
	once    sync.Once
	initErr error
)

func init() {
	// "TriggerFeedback" is the entry point name configured in GCP.
	functions.HTTP("TriggerFeedback", triggerFeedback)
}

// main is required by the Go Functions Framework.
func main() {}

func setup() (http.HandlerFunc, error) {
	cfg, err := config.LoadFromEnv()
	if err != nil {
		return nil, err
	}
	logger := logging.New(cfg.LogLevel, logging.FormatJSON)
	a, err := app.Build(context.Background(), cfg, logger)
	if err != nil {
		return nil, err
	}
	return handle.New(a.Service, cfg.TriggerTimeout, logger).Trigger, nil
}

func triggerFeedback(w http.ResponseWriter, r *http.Request) {
	once.Do(func() {
		handler, initErr = setup()
	})
	if initErr != nil {
		slog.Error("function initialization failed", "error", initErr)
		http.Error(w, "Internal Server Error: failed to initialize service", http.StatusInternalServerError)
		return
	}
	handler(w, r)
}
