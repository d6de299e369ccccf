package llm

import (
	"context"
	"time"

	genai "google.golang.org/genai"
)

// Hook observes every provider call passing through the chain.
type Hook interface {
	Before(ctx context.Context, op, model string, contents []*genai.Content)
	After(ctx context.Context, op, model string, elapsed time.Duration, err error)
}

type ctxKeyOp struct{}

// WithOp tags ctx with the logical operation ("adapt", "speech", "chat").
func WithOp(ctx context.Context, op string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxKeyOp{}, op)
}

// OpFrom returns the operation stored in the context.
func OpFrom(ctx context.Context) string {
	if ctx != nil {
		if v, ok := ctx.Value(ctxKeyOp{}).(string); ok && v != "" {
			return v
		}
	}
	return "unknown"
}

// WithHook calls hook around every GenerateContent.
func WithHook(hook Hook) Middleware {
	return func(next Client) Client {
		if hook == nil {
			return next
		}
		return &hooked{next: next, hook: hook}
	}
}

type hooked struct {
	next Client
	hook Hook
}

func (h *hooked) Name() string { return h.next.Name() }
func (h *hooked) Close() error { return h.next.Close() }

func (h *hooked) GenerateContent(ctx context.Context, model string, contents []*genai.Content, cfg *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	op := OpFrom(ctx)
	h.hook.Before(ctx, op, model, contents)
	start := time.Now()
	resp, err := h.next.GenerateContent(ctx, model, contents, cfg)
	h.hook.After(ctx, op, model, time.Since(start), err)
	return resp, err
}
