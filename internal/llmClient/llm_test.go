package llmclient

import (
	"context"
	"errors"
	"testing"

	"neuropath/internal/tester"
)

func TestNewProviderError(t *testing.T) {
	tester.True(t, NewProviderError("adapt", "m", nil) == nil, "nil stays nil")

	base := errors.New("quota exceeded")
	err := NewProviderError("adapt", "gemini-x", base)
	tester.True(t, errors.Is(err, base), "must unwrap to cause")
	tester.Eq(t, err.Error(), "adapt (gemini-x): quota exceeded")

	again := NewProviderError("chat", "other", err)
	var pErr *ProviderError
	tester.True(t, errors.As(again, &pErr), "ProviderError expected")
	tester.Eq(t, pErr.Op, "adapt")

	tester.Eq(t, (&ProviderError{Op: "speech", Err: base}).Error(), "speech: quota exceeded")
}

func TestModelsWithDefaults(t *testing.T) {
	m := Models{Chat: "custom"}.WithDefaults()
	tester.Eq(t, m, Models{Adapt: DefaultAdaptModel, Speech: DefaultSpeechModel, Chat: "custom"})
}

func TestNewGeminiClientVertexNeedsProject(t *testing.T) {
	_, err := NewGeminiClient(context.Background(), GeminiOptions{Backend: BackendVertexAI})
	tester.True(t, err != nil, "vertex without project must fail")
}
