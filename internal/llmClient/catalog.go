package llmclient

import "strings"

const (
	DefaultAdaptModel  = "gemini-3-pro-preview"
	DefaultSpeechModel = "gemini-2.5-flash-preview-tts"
	DefaultChatModel   = "gemini-3-flash-preview"
	DefaultVoice       = "Kore"
)

// Models names the model used for each kind of request.
type Models struct {
	Adapt  string `yaml:"adapt"`
	Speech string `yaml:"speech"`
	Chat   string `yaml:"chat"`
}

// WithDefaults fills blank entries with the default catalog.
func (m Models) WithDefaults() Models {
	if strings.TrimSpace(m.Adapt) == "" {
		m.Adapt = DefaultAdaptModel
	}
	if strings.TrimSpace(m.Speech) == "" {
		m.Speech = DefaultSpeechModel
	}
	if strings.TrimSpace(m.Chat) == "" {
		m.Chat = DefaultChatModel
	}
	return m
}
