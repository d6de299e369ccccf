package speech

import (
	"context"
	"encoding/base64"
	"errors"
	"testing"

	genai "google.golang.org/genai"

	"neuropath/internal/llm"
	llmclient "neuropath/internal/llmClient"
	"neuropath/internal/tester"
)

func TestBuildRequestAudioOnlyFixedVoice(t *testing.T) {
	c := New(llm.NewFakeClient(), Options{})
	contents, cfg := c.BuildRequest("Hello there")

	tester.Eq(t, contents[0].Parts[0].Text, "Read this content clearly and at a moderate pace: Hello there")
	tester.Eq(t, cfg.ResponseModalities, []string{"AUDIO"})
	tester.Eq(t, cfg.SpeechConfig.VoiceConfig.PrebuiltVoiceConfig.VoiceName, "Kore")
}

func TestSynthesizeReturnsBase64Payload(t *testing.T) {
	pcm := []byte{0x01, 0x00, 0xff, 0x7f}
	fake := llm.NewFakeClient(llm.FakeResponse{Resp: llm.AudioResponse(pcm, "audio/L16;codec=pcm;rate=24000")})
	c := New(fake, Options{Voice: "Puck"})

	payload, ok, err := c.Synthesize(context.Background(), "Hello there")
	tester.NoErr(t, err)
	tester.True(t, ok, "audio expected")
	tester.Eq(t, payload, base64.StdEncoding.EncodeToString(pcm))

	calls := fake.Calls()
	tester.Len(t, calls, 1)
	tester.Eq(t, calls[0].Op, Op)
	tester.Eq(t, calls[0].Model, llmclient.DefaultSpeechModel)
	tester.Eq(t, calls[0].Config.SpeechConfig.VoiceConfig.PrebuiltVoiceConfig.VoiceName, "Puck")
}

func TestSynthesizeAbsentAudio(t *testing.T) {
	for name, resp := range map[string]*genai.GenerateContentResponse{
		"text only":     llm.TextResponse("I can't speak"),
		"no candidates": {},
		"nil":           nil,
	} {
		t.Run(name, func(t *testing.T) {
			fake := llm.NewFakeClient(llm.FakeResponse{Resp: resp})
			payload, ok, err := New(fake, Options{}).Synthesize(context.Background(), "Hello there")
			tester.NoErr(t, err)
			tester.False(t, ok, "no audio expected")
			tester.Eq(t, payload, "")
		})
	}
}

func TestSynthesizeProviderError(t *testing.T) {
	fake := llm.NewFakeClient(llm.FakeResponse{Err: errors.New("quota")})
	_, ok, err := New(fake, Options{}).Synthesize(context.Background(), "Hello there")
	tester.False(t, ok)
	var pErr *llmclient.ProviderError
	tester.True(t, errors.As(err, &pErr), "provider error expected")
}
