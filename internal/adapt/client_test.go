package adapt

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	genai "google.golang.org/genai"

	"neuropath/internal/llm"
	llmclient "neuropath/internal/llmClient"
	"neuropath/internal/types"
)

func TestDirectiveIsFixedPerProfile(t *testing.T) {
	want := map[types.Profile]string{
		types.ProfileADHD:          DirectiveADHD,
		types.ProfileDyslexia:      DirectiveDyslexia,
		types.ProfileAutisticLogic: DirectiveAutisticLogic,
	}
	for _, p := range types.Profiles {
		got, err := Directive(p)
		require.NoError(t, err)
		assert.Equal(t, want[p], got, string(p))
	}
	_, err := Directive(types.Profile("VISUAL"))
	assert.Error(t, err)
}

func TestBuildRequestPerSourceVariant(t *testing.T) {
	attachment := &types.Attachment{Name: "notes.pdf", MIMEType: "application/pdf", Data: []byte("%PDF-1.4")}
	tests := []struct {
		name       string
		req        Request
		wantText   string
		wantSearch bool
		wantParts  int
	}{
		{
			name:      "free text",
			req:       Request{Source: types.FreeText("Photosynthesis converts light into energy."), Profile: types.ProfileDyslexia},
			wantText:  DirectiveDyslexia + "\n\nContent:\nPhotosynthesis converts light into energy.",
			wantParts: 1,
		},
		{
			name:      "url with note",
			req:       Request{Source: types.URLRef("https://example.com/a", "focus on the intro"), Profile: types.ProfileAutisticLogic},
			wantText:  DirectiveAutisticLogic + "\n\nContent:\nProcess content from this URL: https://example.com/a. focus on the intro",
			wantParts: 1,
		},
		{
			name:      "url without note",
			req:       Request{Source: types.URLRef("https://example.com/a", ""), Profile: types.ProfileADHD},
			wantText:  DirectiveADHD + "\n\nContent:\nProcess content from this URL: https://example.com/a.",
			wantParts: 1,
		},
		{
			name:       "search topic",
			req:        Request{Source: types.SearchTopic("black holes"), Profile: types.ProfileADHD},
			wantText:   `Search for information about "black holes" and then: ` + DirectiveADHD,
			wantSearch: true,
			wantParts:  1,
		},
		{
			name:      "attachment only",
			req:       Request{Attachment: attachment, Profile: types.ProfileDyslexia},
			wantText:  DirectiveDyslexia + "\n\nContent:\n",
			wantParts: 2,
		},
		{
			name:       "search with attachment",
			req:        Request{Source: types.SearchTopic("black holes"), Attachment: attachment, Profile: types.ProfileADHD},
			wantText:   `Search for information about "black holes" and then: ` + DirectiveADHD,
			wantSearch: true,
			wantParts:  2,
		},
	}

	c := New(llm.NewFakeClient(), Options{})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			contents, cfg, err := c.BuildRequest(tt.req)
			require.NoError(t, err)
			require.Len(t, contents, 1)
			parts := contents[0].Parts
			require.Len(t, parts, tt.wantParts)
			assert.Equal(t, tt.wantText, parts[0].Text)
			if tt.wantParts == 2 {
				require.NotNil(t, parts[1].InlineData)
				assert.Equal(t, "application/pdf", parts[1].InlineData.MIMEType)
				assert.Equal(t, attachment.Data, parts[1].InlineData.Data)
			}
			if tt.wantSearch {
				require.Len(t, cfg.Tools, 1)
				assert.NotNil(t, cfg.Tools[0].GoogleSearch)
			} else {
				assert.Empty(t, cfg.Tools)
			}
			assert.Equal(t, float32(0.7), *cfg.Temperature)
			assert.Equal(t, float32(0.95), *cfg.TopP)
		})
	}
}

func TestAdaptFreeTextDyslexiaScenario(t *testing.T) {
	fake := llm.NewFakeClient(llm.FakeResponse{Resp: llm.TextResponse("Plants use light.\n\nThey make energy.")})
	c := New(fake, Options{})

	res, err := c.Adapt(context.Background(), Request{
		Source:  types.FreeText("Photosynthesis converts light into energy."),
		Profile: types.ProfileDyslexia,
	})
	require.NoError(t, err)
	assert.Equal(t, "Plants use light.\n\nThey make energy.", res.Text)
	assert.Empty(t, res.Sources)

	calls := fake.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, Op, calls[0].Op)
	assert.Equal(t, llmclient.DefaultAdaptModel, calls[0].Model)
	prompt := calls[0].Contents[0].Parts[0].Text
	assert.True(t, strings.HasPrefix(prompt, DirectiveDyslexia))
	assert.True(t, strings.HasSuffix(prompt, "Content:\nPhotosynthesis converts light into energy."))
	assert.Empty(t, calls[0].Config.Tools)
}

func TestAdaptEmptyRequestMakesNoCall(t *testing.T) {
	fake := llm.NewFakeClient()
	_, err := New(fake, Options{}).Adapt(context.Background(), Request{Profile: types.ProfileADHD})
	assert.ErrorIs(t, err, types.ErrNoContent)
	assert.Empty(t, fake.Calls())
}

func TestAdaptWrapsProviderError(t *testing.T) {
	boom := errors.New("503 unavailable")
	fake := llm.NewFakeClient(llm.FakeResponse{Err: boom})
	_, err := New(fake, Options{Model: "gemini-test"}).Adapt(context.Background(), Request{
		Source:  types.FreeText("x"),
		Profile: types.ProfileADHD,
	})
	var pErr *llmclient.ProviderError
	require.ErrorAs(t, err, &pErr)
	assert.Equal(t, Op, pErr.Op)
	assert.Equal(t, "gemini-test", pErr.Model)
	assert.ErrorIs(t, err, boom)
}

func TestParseResponseFallbackText(t *testing.T) {
	for name, resp := range map[string]*genai.GenerateContentResponse{
		"nil response":  nil,
		"no candidates": {},
		"no content":    {Candidates: []*genai.Candidate{{}}},
		"empty text":    llm.TextResponse(""),
	} {
		t.Run(name, func(t *testing.T) {
			res := ParseResponse(resp)
			assert.Equal(t, FallbackText, res.Text)
			assert.NotNil(t, res.Sources)
			assert.Empty(t, res.Sources)
		})
	}
}

func TestParseResponseGrounding(t *testing.T) {
	resp := llm.TextResponse("Black holes are regions of space.")
	resp.Candidates[0].GroundingMetadata = &genai.GroundingMetadata{
		GroundingChunks: []*genai.GroundingChunk{
			{Web: &genai.GroundingChunkWeb{Title: "NASA", URI: "https://nasa.gov/bh"}},
			{Web: &genai.GroundingChunkWeb{Title: "", URI: "https://no-title.example"}},
			{Web: &genai.GroundingChunkWeb{Title: "No URI"}},
			{RetrievedContext: &genai.GroundingChunkRetrievedContext{}},
			nil,
			{Web: &genai.GroundingChunkWeb{Title: "NASA", URI: "https://nasa.gov/bh"}},
		},
	}

	res := ParseResponse(resp)
	assert.Equal(t, "Black holes are regions of space.", res.Text)
	assert.Equal(t, []types.GroundingSource{
		{Title: "NASA", URI: "https://nasa.gov/bh"},
		{Title: "NASA", URI: "https://nasa.gov/bh"},
	}, res.Sources)
}

func TestParseResponseSkipsThoughtParts(t *testing.T) {
	resp := &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{
		Content: &genai.Content{Parts: []*genai.Part{
			{Text: "thinking...", Thought: true},
			{Text: "Step 1. "},
			{Text: "Step 2."},
		}},
	}}}
	assert.Equal(t, "Step 1. Step 2.", ParseResponse(resp).Text)
}
