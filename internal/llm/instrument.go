package llm

import (
	"context"
	"time"

	genai "google.golang.org/genai"
)

// Recorder receives one observation per provider call.
type Recorder interface {
	ObserveProviderCall(op, outcome string, elapsed time.Duration)
}

const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
)

// Instrument reports call outcomes and latency to rec.
func Instrument(rec Recorder) Middleware {
	return func(next Client) Client {
		if rec == nil {
			return next
		}
		return &instrumented{next: next, rec: rec}
	}
}

type instrumented struct {
	next Client
	rec  Recorder
}

func (i *instrumented) Name() string { return i.next.Name() }
func (i *instrumented) Close() error { return i.next.Close() }

func (i *instrumented) GenerateContent(ctx context.Context, model string, contents []*genai.Content, cfg *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	start := time.Now()
	resp, err := i.next.GenerateContent(ctx, model, contents, cfg)
	outcome := OutcomeOK
	if err != nil {
		outcome = OutcomeError
	}
	i.rec.ObserveProviderCall(OpFrom(ctx), outcome, time.Since(start))
	return resp, err
}
