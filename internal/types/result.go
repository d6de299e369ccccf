package types

// GroundingSource is a web citation attached to a search-grounded answer.
type GroundingSource struct {
	Title string `json:"title"`
	URI   string `json:"uri"`
}

// AdaptationResult is the rewritten content plus any grounding citations.
type AdaptationResult struct {
	Text    string            `json:"text"`
	Sources []GroundingSource `json:"sources"`
}
