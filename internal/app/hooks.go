package app

import (
	"context"
	"log/slog"
	"time"

	genai "google.golang.org/genai"

	"neuropath/internal/observability"
)

// slowCallHook warns about provider calls that take longer than threshold.
type slowCallHook struct {
	threshold time.Duration
	log       *slog.Logger
}

func (h slowCallHook) Before(context.Context, string, string, []*genai.Content) {}

func (h slowCallHook) After(ctx context.Context, op, model string, elapsed time.Duration, err error) {
	if h.threshold <= 0 || elapsed < h.threshold {
		return
	}
	observability.LoggerFromContext(ctx, h.log).Warn("slow provider call",
		"op", op, "model", model, "elapsed", elapsed, "failed", err != nil)
}
