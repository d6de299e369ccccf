package adapt

import (
	"context"
	"strings"

	genai "google.golang.org/genai"

	"neuropath/internal/llm"
	llmclient "neuropath/internal/llmClient"
	"neuropath/internal/types"
)

const (
	Op = "adapt"

	DefaultTemperature = 0.7
	DefaultTopP        = 0.95
)

// Request is one adaptation: the active source, an optional attachment and
// the profile to rewrite for.
type Request struct {
	Source     types.Source
	Attachment *types.Attachment
	Profile    types.Profile
}

func (r Request) empty() bool {
	return r.Source.Empty() && r.Attachment.Empty()
}

// Options tunes the generation config. Zero values take the defaults.
type Options struct {
	Model       string
	Temperature float32
	TopP        float32
}

// Client rewrites content for a learning profile through the provider.
// It performs no caching and no retries.
type Client struct {
	gen  llmclient.ContentGenerator
	opts Options
}

func New(gen llmclient.ContentGenerator, opts Options) *Client {
	if strings.TrimSpace(opts.Model) == "" {
		opts.Model = llmclient.DefaultAdaptModel
	}
	if opts.Temperature <= 0 {
		opts.Temperature = DefaultTemperature
	}
	if opts.TopP <= 0 {
		opts.TopP = DefaultTopP
	}
	return &Client{gen: gen, opts: opts}
}

func (c *Client) Model() string { return c.opts.Model }

// BuildRequest returns the contents and config sent for req.
func (c *Client) BuildRequest(req Request) ([]*genai.Content, *genai.GenerateContentConfig, error) {
	prompt, err := BuildPrompt(req.Source, req.Profile)
	if err != nil {
		return nil, nil, err
	}
	parts := []*genai.Part{genai.NewPartFromText(prompt.Text())}
	if !req.Attachment.Empty() {
		parts = append(parts, &genai.Part{InlineData: &genai.Blob{
			Data:     req.Attachment.Data,
			MIMEType: req.Attachment.MIMEType,
		}})
	}
	cfg := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(c.opts.Temperature),
		TopP:        genai.Ptr(c.opts.TopP),
	}
	if prompt.Search {
		cfg.Tools = []*genai.Tool{{GoogleSearch: &genai.GoogleSearch{}}}
	}
	return []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}, cfg, nil
}

// Adapt sends req and parses the reply. A reply without text degrades to
// FallbackText rather than failing.
func (c *Client) Adapt(ctx context.Context, req Request) (types.AdaptationResult, error) {
	if req.empty() {
		return types.AdaptationResult{}, types.ErrNoContent
	}
	contents, cfg, err := c.BuildRequest(req)
	if err != nil {
		return types.AdaptationResult{}, err
	}
	resp, err := c.gen.GenerateContent(llm.WithOp(ctx, Op), c.opts.Model, contents, cfg)
	if err != nil {
		return types.AdaptationResult{}, llmclient.NewProviderError(Op, c.opts.Model, err)
	}
	return ParseResponse(resp), nil
}
