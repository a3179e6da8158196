package handle

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"essay-feedback/api/internal/feedback"
)

// Processor runs one feedback request.
type Processor interface {
	Process(ctx context.Context, req feedback.Request) (feedback.Run, error)
}

type Handle struct {
	svc     Processor
	timeout time.Duration
	log     *slog.Logger
}

func New(svc Processor, timeout time.Duration, logger *slog.Logger) *Handle {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handle{
		svc:     svc,
		timeout: timeout,
		log:     logger,
	}
}

func writeHTML(w http.ResponseWriter, code int, body string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(code)
	_, _ = w.Write([]byte(body))
}

// Healthz answers liveness probes.
func (h *Handle) Healthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
