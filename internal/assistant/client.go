package assistant

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	genai "google.golang.org/genai"

	"neuropath/internal/llm"
	llmclient "neuropath/internal/llmClient"
	"neuropath/internal/types"
)

const (
	Op = "chat"

	DefaultTemperature = 0.7
)

// ErrEmptyMessage is returned for a blank user message; nothing is appended.
var ErrEmptyMessage = errors.New("message is empty")

type Options struct {
	Model       string
	Temperature float32
	Logger      *slog.Logger
}

// Client answers follow-up questions grounded in the current content.
// History is not resent: each call carries the context and the question only.
type Client struct {
	gen  llmclient.ContentGenerator
	opts Options
}

func New(gen llmclient.ContentGenerator, opts Options) *Client {
	if strings.TrimSpace(opts.Model) == "" {
		opts.Model = llmclient.DefaultChatModel
	}
	if opts.Temperature <= 0 {
		opts.Temperature = DefaultTemperature
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Client{gen: gen, opts: opts}
}

// BuildRequest returns the single user-role content and the persona config.
func (c *Client) BuildRequest(contextText, userMessage string) ([]*genai.Content, *genai.GenerateContentConfig) {
	contents := []*genai.Content{genai.NewContentFromText(BuildPrompt(contextText, userMessage), genai.RoleUser)}
	cfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(SystemInstruction, genai.RoleUser),
		Temperature:       genai.Ptr(c.opts.Temperature),
	}
	return contents, cfg
}

// Ask returns the assistant's reply. An empty reply degrades to EmptyReply.
func (c *Client) Ask(ctx context.Context, contextText, userMessage string) (string, error) {
	contents, cfg := c.BuildRequest(contextText, userMessage)
	resp, err := c.gen.GenerateContent(llm.WithOp(ctx, Op), c.opts.Model, contents, cfg)
	if err != nil {
		return "", llmclient.NewProviderError(Op, c.opts.Model, err)
	}
	text := replyText(resp)
	if strings.TrimSpace(text) == "" {
		return EmptyReply, nil
	}
	return text, nil
}

// Send appends the user message, asks, and appends exactly one assistant
// message: the reply, or Apology when the call fails. The returned message is
// the one appended for the assistant.
func (c *Client) Send(ctx context.Context, t *Transcript, contextText, userMessage string) (types.ChatMessage, error) {
	if strings.TrimSpace(userMessage) == "" {
		return types.ChatMessage{}, ErrEmptyMessage
	}
	t.Append(types.ChatMessage{Role: types.RoleUser, Text: userMessage})

	reply, err := c.Ask(ctx, contextText, userMessage)
	if err != nil {
		c.opts.Logger.Warn("assistant reply failed", "error", err)
		reply = Apology
	}
	msg := types.ChatMessage{Role: types.RoleAssistant, Text: reply}
	t.Append(msg)
	return msg, nil
}

func replyText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0] == nil || resp.Candidates[0].Content == nil {
		return ""
	}
	var sb strings.Builder
	for _, p := range resp.Candidates[0].Content.Parts {
		if p == nil || p.Thought {
			continue
		}
		sb.WriteString(p.Text)
	}
	return sb.String()
}
