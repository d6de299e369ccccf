package speech

import (
	"context"
	"encoding/base64"
	"strings"

	genai "google.golang.org/genai"

	"neuropath/internal/llm"
	llmclient "neuropath/internal/llmClient"
)

const (
	Op = "speech"

	// InstructionPrefix is prepended to the text to be read aloud.
	InstructionPrefix = "Read this content clearly and at a moderate pace: "
)

type Options struct {
	Model string
	Voice string
}

// Client synthesizes speech with a single prebuilt voice.
type Client struct {
	gen  llmclient.ContentGenerator
	opts Options
}

func New(gen llmclient.ContentGenerator, opts Options) *Client {
	if strings.TrimSpace(opts.Model) == "" {
		opts.Model = llmclient.DefaultSpeechModel
	}
	if strings.TrimSpace(opts.Voice) == "" {
		opts.Voice = llmclient.DefaultVoice
	}
	return &Client{gen: gen, opts: opts}
}

func (c *Client) Voice() string { return c.opts.Voice }

// BuildRequest returns the contents and audio-only config for text.
func (c *Client) BuildRequest(text string) ([]*genai.Content, *genai.GenerateContentConfig) {
	contents := []*genai.Content{genai.NewContentFromText(InstructionPrefix+text, genai.RoleUser)}
	cfg := &genai.GenerateContentConfig{
		ResponseModalities: []string{string(genai.ModalityAudio)},
		SpeechConfig: &genai.SpeechConfig{
			VoiceConfig: &genai.VoiceConfig{
				PrebuiltVoiceConfig: &genai.PrebuiltVoiceConfig{VoiceName: c.opts.Voice},
			},
		},
	}
	return contents, cfg
}

// Synthesize returns the base64 PCM16 payload for text. ok is false when the
// response carries no audio; that is "nothing to play", not an error.
func (c *Client) Synthesize(ctx context.Context, text string) (payload string, ok bool, err error) {
	contents, cfg := c.BuildRequest(text)
	resp, err := c.gen.GenerateContent(llm.WithOp(ctx, Op), c.opts.Model, contents, cfg)
	if err != nil {
		return "", false, llmclient.NewProviderError(Op, c.opts.Model, err)
	}
	data := InlineAudio(resp)
	if len(data) == 0 {
		return "", false, nil
	}
	return base64.StdEncoding.EncodeToString(data), true, nil
}

// InlineAudio returns the first candidate's first part's inline bytes.
func InlineAudio(resp *genai.GenerateContentResponse) []byte {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0] == nil {
		return nil
	}
	content := resp.Candidates[0].Content
	if content == nil || len(content.Parts) == 0 || content.Parts[0] == nil {
		return nil
	}
	if blob := content.Parts[0].InlineData; blob != nil {
		return blob.Data
	}
	return nil
}
