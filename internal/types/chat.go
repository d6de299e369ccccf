package types

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ChatMessage is one entry in the assistant transcript.
type ChatMessage struct {
	Role Role   `json:"role"`
	Text string `json:"text"`
}
