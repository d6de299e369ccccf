package llm

import (
	"context"
	"log/slog"
	"time"

	genai "google.golang.org/genai"

	"neuropath/internal/observability"
)

// WithLogging logs request size, latency and errors. Provide a custom logger
// or nil to use slog.Default().
func WithLogging(logger *slog.Logger) Middleware {
	if logger == nil {
		logger = slog.Default()
	}
	return func(next Client) Client {
		return &logging{next: next, log: logger}
	}
}

type logging struct {
	next Client
	log  *slog.Logger
}

func (l *logging) Name() string { return l.next.Name() }
func (l *logging) Close() error { return l.next.Close() }

func (l *logging) GenerateContent(ctx context.Context, model string, contents []*genai.Content, cfg *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	op := OpFrom(ctx)
	log := observability.LoggerFromContext(ctx, l.log)
	log.Debug("provider request", "op", op, "model", model, "bytes", RequestBytes(contents))
	start := time.Now()
	resp, err := l.next.GenerateContent(ctx, model, contents, cfg)
	if err != nil {
		log.Error("provider error", "op", op, "model", model, "elapsed", time.Since(start), "error", err)
		return resp, err
	}
	log.Info("provider response", "op", op, "model", model, "elapsed", time.Since(start))
	return resp, nil
}

// RequestBytes totals text and inline payload sizes.
func RequestBytes(contents []*genai.Content) int {
	n := 0
	for _, c := range contents {
		if c == nil {
			continue
		}
		for _, p := range c.Parts {
			if p == nil {
				continue
			}
			n += len(p.Text)
			if p.InlineData != nil {
				n += len(p.InlineData.Data)
			}
		}
	}
	return n
}
