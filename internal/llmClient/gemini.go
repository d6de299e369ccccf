package llmclient

import (
	"context"
	"fmt"
	"strings"

	genai "google.golang.org/genai"
)

type Backend string

const (
	BackendGeminiAPI Backend = "gemini"
	BackendVertexAI  Backend = "vertex"
)

// GeminiOptions selects the backend and credentials for NewGeminiClient.
type GeminiOptions struct {
	Backend  Backend
	APIKey   string
	Project  string
	Location string
}

// GeminiClient is a thin wrapper around the official genai client.
// It only focuses on the API call itself. Cross-cutting concerns
// (rate limiting, logging, metrics) are applied via Middleware.
type GeminiClient struct {
	cli     *genai.Client
	backend Backend
}

func NewGeminiClient(ctx context.Context, opts GeminiOptions) (*GeminiClient, error) {
	cc := &genai.ClientConfig{Backend: genai.BackendGeminiAPI, APIKey: strings.TrimSpace(opts.APIKey)}
	backend := opts.Backend
	if backend == "" {
		backend = BackendGeminiAPI
	}
	if backend == BackendVertexAI {
		if opts.Project == "" || opts.Location == "" {
			return nil, fmt.Errorf("vertex backend requires project and location")
		}
		cc = &genai.ClientConfig{
			Backend:  genai.BackendVertexAI,
			Project:  opts.Project,
			Location: opts.Location,
		}
	}
	cli, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("creating genai client: %w", err)
	}
	return &GeminiClient{cli: cli, backend: backend}, nil
}

func (g *GeminiClient) Name() string { return "Gemini:" + string(g.backend) }
func (g *GeminiClient) Close() error { return nil }

func (g *GeminiClient) GenerateContent(ctx context.Context, model string, contents []*genai.Content, cfg *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	resp, err := g.cli.Models.GenerateContent(ctx, model, contents, cfg)
	if err != nil {
		return nil, err
	}
	if resp == nil {
		return nil, ErrNilResponse
	}
	return resp, nil
}
