package llm

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	genai "google.golang.org/genai"

	"neuropath/internal/observability"
	"neuropath/internal/tester"
)

func textContents(s string) []*genai.Content {
	return []*genai.Content{genai.NewContentFromText(s, genai.RoleUser)}
}

type orderHook struct {
	name string
	mu   *sync.Mutex
	log  *[]string
}

func (h orderHook) Before(context.Context, string, string, []*genai.Content) {
	h.mu.Lock()
	*h.log = append(*h.log, h.name+":before")
	h.mu.Unlock()
}

func (h orderHook) After(context.Context, string, string, time.Duration, error) {
	h.mu.Lock()
	*h.log = append(*h.log, h.name+":after")
	h.mu.Unlock()
}

func TestWrapAppliesLeftToRight(t *testing.T) {
	var mu sync.Mutex
	var order []string
	c := Wrap(NewFakeClient(),
		WithHook(orderHook{name: "a", mu: &mu, log: &order}),
		nil,
		WithHook(orderHook{name: "b", mu: &mu, log: &order}),
	)
	_, err := c.GenerateContent(context.Background(), "m", textContents("hi"), nil)
	tester.NoErr(t, err)
	tester.Eq(t, order, []string{"a:before", "b:before", "b:after", "a:after"})
}

func TestFakeClientScriptThenFallback(t *testing.T) {
	fake := NewFakeClient(FakeResponse{Err: errors.New("boom")})
	ctx := WithOp(context.Background(), "adapt")

	_, err := fake.GenerateContent(ctx, "m", textContents("one"), nil)
	tester.True(t, err != nil, "scripted error expected")

	resp, err := fake.GenerateContent(ctx, "m", textContents("echo me"), nil)
	tester.NoErr(t, err)
	tester.Eq(t, resp.Candidates[0].Content.Parts[0].Text, "echo me")

	calls := fake.Calls()
	tester.Len(t, calls, 2)
	tester.Eq(t, calls[0].Op, "adapt")
}

func TestOpFromDefaults(t *testing.T) {
	tester.Eq(t, OpFrom(context.Background()), "unknown")
	tester.Eq(t, OpFrom(WithOp(context.Background(), "chat")), "chat")
}

type recorded struct {
	op, outcome string
}

type fakeRecorder struct {
	mu  sync.Mutex
	obs []recorded
}

func (r *fakeRecorder) ObserveProviderCall(op, outcome string, _ time.Duration) {
	r.mu.Lock()
	r.obs = append(r.obs, recorded{op, outcome})
	r.mu.Unlock()
}

func TestInstrumentRecordsOutcome(t *testing.T) {
	rec := &fakeRecorder{}
	fake := NewFakeClient(FakeResponse{Err: errors.New("boom")})
	c := Wrap(fake, Instrument(rec))
	ctx := WithOp(context.Background(), "speech")

	_, _ = c.GenerateContent(ctx, "m", textContents("x"), nil)
	_, _ = c.GenerateContent(ctx, "m", textContents("x"), nil)
	tester.Eq(t, rec.obs, []recorded{{"speech", OutcomeError}, {"speech", OutcomeOK}})
}

func TestWithLoggingIncludesOpAndTurn(t *testing.T) {
	var buf bytes.Buffer
	logger := observability.New(&buf, "text", nil)
	c := Wrap(NewFakeClient(FakeResponse{Err: errors.New("quota")}), WithLogging(logger))

	ctx := observability.WithTurn(WithOp(context.Background(), "adapt"), "adapt-2")
	_, err := c.GenerateContent(ctx, "gemini", textContents("hello"), nil)
	tester.True(t, err != nil, "error expected")

	out := buf.String()
	tester.Contains(t, out, "provider error")
	tester.Contains(t, out, "op=adapt")
	tester.Contains(t, out, "turn=adapt-2")
	tester.Contains(t, out, "quota")
}

func TestRequestBytes(t *testing.T) {
	contents := []*genai.Content{{Parts: []*genai.Part{
		{Text: "abc"},
		{InlineData: &genai.Blob{Data: []byte{1, 2}, MIMEType: "image/png"}},
		nil,
	}}, nil}
	tester.Eq(t, RequestBytes(contents), 5)
}

func TestRateLimitBlocksBeyondBurst(t *testing.T) {
	c := Wrap(NewFakeClient(), RateLimit(0.001, 1))
	defer c.Close()

	_, err := c.GenerateContent(context.Background(), "m", textContents("first"), nil)
	tester.NoErr(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = c.GenerateContent(ctx, "m", textContents("second"), nil)
	tester.True(t, errors.Is(err, context.DeadlineExceeded), "second call should wait for a token")
}

func TestRateLimitDisabled(t *testing.T) {
	c := Wrap(NewFakeClient(), RateLimit(0, 0))
	for i := 0; i < 5; i++ {
		_, err := c.GenerateContent(context.Background(), "m", textContents(strings.Repeat("x", i+1)), nil)
		tester.NoErr(t, err)
	}
	tester.NoErr(t, c.Close())
}

func TestRateLimitCloseUnblocks(t *testing.T) {
	c := Wrap(NewFakeClient(), RateLimit(0.001, 1))
	_, _ = c.GenerateContent(context.Background(), "m", textContents("first"), nil)
	tester.NoErr(t, c.Close())

	_, err := c.GenerateContent(context.Background(), "m", textContents("after close"), nil)
	tester.True(t, errors.Is(err, context.Canceled), "closed limiter should reject")
}
