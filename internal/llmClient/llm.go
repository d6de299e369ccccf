package llmclient

import (
	"context"
	"errors"
	"fmt"

	genai "google.golang.org/genai"
)

// ErrNilResponse is reported when the provider returns neither a response nor an error.
var ErrNilResponse = errors.New("provider returned no response")

// ContentGenerator is the provider surface shared by the adaptation, speech
// and assistant clients. Implementations only perform the API call; logging,
// rate limiting and metrics are applied via middleware in internal/llm.
type ContentGenerator interface {
	Name() string
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, cfg *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
	Close() error
}

// ProviderError reports a failed or unusable provider call.
type ProviderError struct {
	Op    string
	Model string
	Err   error
}

func (e *ProviderError) Error() string {
	if e.Model == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s (%s): %v", e.Op, e.Model, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }

// NewProviderError wraps err unless it already is a ProviderError.
func NewProviderError(op, model string, err error) error {
	if err == nil {
		return nil
	}
	var pErr *ProviderError
	if errors.As(err, &pErr) {
		return err
	}
	return &ProviderError{Op: op, Model: model, Err: err}
}
