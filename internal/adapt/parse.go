package adapt

import (
	genai "google.golang.org/genai"

	"neuropath/internal/types"
)

// ParseResponse extracts the adapted text and grounding citations. Missing
// fields are tolerated: no text yields FallbackText, and grounding chunks
// without both a title and a URI are dropped. Order and duplicates are kept.
func ParseResponse(resp *genai.GenerateContentResponse) types.AdaptationResult {
	out := types.AdaptationResult{Text: FallbackText, Sources: []types.GroundingSource{}}
	if resp == nil {
		return out
	}
	if text := responseText(resp); text != "" {
		out.Text = text
	}
	out.Sources = groundingSources(resp)
	return out
}

func responseText(resp *genai.GenerateContentResponse) string {
	if len(resp.Candidates) == 0 || resp.Candidates[0] == nil || resp.Candidates[0].Content == nil {
		return ""
	}
	var text string
	for _, p := range resp.Candidates[0].Content.Parts {
		if p == nil || p.Thought {
			continue
		}
		text += p.Text
	}
	return text
}

func groundingSources(resp *genai.GenerateContentResponse) []types.GroundingSource {
	sources := []types.GroundingSource{}
	if len(resp.Candidates) == 0 || resp.Candidates[0] == nil {
		return sources
	}
	meta := resp.Candidates[0].GroundingMetadata
	if meta == nil {
		return sources
	}
	for _, chunk := range meta.GroundingChunks {
		if chunk == nil || chunk.Web == nil {
			continue
		}
		if chunk.Web.Title == "" || chunk.Web.URI == "" {
			continue
		}
		sources = append(sources, types.GroundingSource{Title: chunk.Web.Title, URI: chunk.Web.URI})
	}
	return sources
}
