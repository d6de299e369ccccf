package assistant

import (
	"sync"

	"neuropath/internal/types"
)

// Transcript is the append-only chat history. Entries are never edited.
type Transcript struct {
	mu   sync.RWMutex
	msgs []types.ChatMessage
}

// NewTranscript starts a transcript with the given opening messages.
func NewTranscript(opening ...types.ChatMessage) *Transcript {
	msgs := make([]types.ChatMessage, len(opening))
	copy(msgs, opening)
	return &Transcript{msgs: msgs}
}

// NewGreetingTranscript starts with the assistant's greeting.
func NewGreetingTranscript() *Transcript {
	return NewTranscript(types.ChatMessage{Role: types.RoleAssistant, Text: Greeting})
}

func (t *Transcript) Append(msg types.ChatMessage) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.msgs = append(t.msgs, msg)
}

func (t *Transcript) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.msgs)
}

// Messages returns a copy of the history.
func (t *Transcript) Messages() []types.ChatMessage {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]types.ChatMessage, len(t.msgs))
	copy(out, t.msgs)
	return out
}
