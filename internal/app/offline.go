package app

import (
	"strings"

	genai "google.golang.org/genai"

	"neuropath/internal/adapt"
	"neuropath/internal/assistant"
	"neuropath/internal/llm"
	"neuropath/internal/speech"
)

const offlineNotice = "_Offline mode: this is a canned reply, no provider was called._\n\n"

// newOfflineProvider answers every request locally so the interface can be
// tried without credentials. Speech returns no audio.
func newOfflineProvider() *llm.FakeClient {
	fake := llm.NewFakeClient()
	fake.Fallback = func(call llm.Call) (*genai.GenerateContentResponse, error) {
		switch call.Op {
		case speech.Op:
			return &genai.GenerateContentResponse{}, nil
		case assistant.Op:
			return llm.TextResponse("I'm offline right now, but I'm still here with you. Take it one step at a time."), nil
		case adapt.Op:
			return llm.TextResponse(offlineNotice + offlineAdaptation(call)), nil
		}
		return llm.TextResponse(""), nil
	}
	return fake
}

// offlineAdaptation echoes the submitted content as short bullet points.
func offlineAdaptation(call llm.Call) string {
	if len(call.Contents) == 0 || len(call.Contents[0].Parts) == 0 {
		return ""
	}
	text := call.Contents[0].Parts[0].Text
	if i := strings.Index(text, "Content:\n"); i >= 0 {
		text = text[i+len("Content:\n"):]
	}
	var sb strings.Builder
	for _, sentence := range strings.FieldsFunc(text, func(r rune) bool { return r == '.' || r == '\n' }) {
		if s := strings.TrimSpace(sentence); s != "" {
			sb.WriteString("- " + s + "\n")
		}
	}
	return sb.String()
}
