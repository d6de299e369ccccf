package adapt

import (
	"fmt"
	"strings"

	"neuropath/internal/types"
)

// Profile directives. The wording is part of the product, keep it verbatim.
const (
	DirectiveADHD          = "Rewrite this content for someone with ADHD. Focus on extreme brevity, use bullet points, bold the most important words, and provide an 'Executive Summary' at the top. Minimize fluff."
	DirectiveDyslexia      = "Rewrite this content for someone with Dyslexia. Use short, clear sentences. Avoid complex jargon or double negatives. Break long paragraphs into very short ones (2-3 sentences max). Use a friendly, clear tone. Focus on high readability."
	DirectiveAutisticLogic = "Rewrite this content for an autistic learner who prefers logical, step-by-step explanations. Remove metaphors, use direct language, and structure the information into a numbered sequence of logical steps. Maintain objectivity."
)

// FallbackText replaces a response that carries no text.
const FallbackText = "Failed to generate content."

// Directive returns the rewriting instruction for p.
func Directive(p types.Profile) (string, error) {
	switch p {
	case types.ProfileADHD:
		return DirectiveADHD, nil
	case types.ProfileDyslexia:
		return DirectiveDyslexia, nil
	case types.ProfileAutisticLogic:
		return DirectiveAutisticLogic, nil
	default:
		return "", fmt.Errorf("unknown learning profile %q", string(p))
	}
}

// Prompt is the composed instruction for one adaptation request.
type Prompt struct {
	Directive string
	// Content is the material after the "Content:" marker; empty for search.
	Content string
	// Search directs the provider to ground the answer with web search.
	Search bool
	Topic  string
}

// Text renders the single text part sent to the provider.
//
//	search topic: Search for information about "<topic>" and then: <directive>
//	URL:          <directive>\n\nContent:\nProcess content from this URL: <url>. <note>
//	free text:    <directive>\n\nContent:\n<text>
func (p Prompt) Text() string {
	if p.Search {
		return `Search for information about "` + p.Topic + `" and then: ` + p.Directive
	}
	return p.Directive + "\n\nContent:\n" + p.Content
}

// BuildPrompt composes the prompt for src under profile p. An empty src
// yields the free-text form with no content; an attachment then carries the
// material.
func BuildPrompt(src types.Source, p types.Profile) (Prompt, error) {
	directive, err := Directive(p)
	if err != nil {
		return Prompt{}, err
	}
	switch src.Kind() {
	case types.SourceSearch:
		return Prompt{Directive: directive, Search: true, Topic: src.Topic()}, nil
	case types.SourceURL:
		content := strings.TrimRight("Process content from this URL: "+src.URL()+". "+src.Note(), " ")
		return Prompt{Directive: directive, Content: content}, nil
	default:
		return Prompt{Directive: directive, Content: src.Text()}, nil
	}
}
