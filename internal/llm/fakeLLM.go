package llm

import (
	"context"
	"sync"

	genai "google.golang.org/genai"
)

// Call records one request received by FakeClient.
type Call struct {
	Op       string
	Model    string
	Contents []*genai.Content
	Config   *genai.GenerateContentConfig
}

// FakeClient returns scripted responses for offline runs and tests.
// Responses are consumed in order; once exhausted, Fallback is used.
type FakeClient struct {
	mu        sync.Mutex
	responses []FakeResponse
	calls     []Call

	// Fallback builds the response when no scripted one remains. Nil means
	// echo the first text part back as the model reply.
	Fallback func(call Call) (*genai.GenerateContentResponse, error)
}

// FakeResponse is one scripted reply.
type FakeResponse struct {
	Resp *genai.GenerateContentResponse
	Err  error
}

func NewFakeClient(responses ...FakeResponse) *FakeClient {
	return &FakeClient{responses: responses}
}

func (f *FakeClient) Name() string { return "FakeLLM" }
func (f *FakeClient) Close() error { return nil }

// Push appends scripted responses.
func (f *FakeClient) Push(responses ...FakeResponse) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.responses = append(f.responses, responses...)
}

// Calls returns a copy of the recorded calls.
func (f *FakeClient) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Call, len(f.calls))
	copy(out, f.calls)
	return out
}

func (f *FakeClient) GenerateContent(ctx context.Context, model string, contents []*genai.Content, cfg *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	call := Call{Op: OpFrom(ctx), Model: model, Contents: contents, Config: cfg}
	f.mu.Lock()
	f.calls = append(f.calls, call)
	var next *FakeResponse
	if len(f.responses) > 0 {
		r := f.responses[0]
		f.responses = f.responses[1:]
		next = &r
	}
	fallback := f.Fallback
	f.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if next != nil {
		return next.Resp, next.Err
	}
	if fallback != nil {
		return fallback(call)
	}
	return TextResponse(firstText(contents)), nil
}

// TextResponse builds a single-candidate response carrying text.
func TextResponse(text string) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: genai.NewContentFromText(text, genai.RoleModel),
		}},
	}
}

// AudioResponse builds a single-candidate response carrying inline audio bytes.
func AudioResponse(pcm []byte, mimeType string) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{
				Role:  genai.RoleModel,
				Parts: []*genai.Part{{InlineData: &genai.Blob{Data: pcm, MIMEType: mimeType}}},
			},
		}},
	}
}

func firstText(contents []*genai.Content) string {
	for _, c := range contents {
		if c == nil {
			continue
		}
		for _, p := range c.Parts {
			if p != nil && p.Text != "" {
				return p.Text
			}
		}
	}
	return ""
}
