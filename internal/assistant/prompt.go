package assistant

// SystemInstruction is the fixed "Cognitive Ally" persona. Intent handling
// (explain simply, define terms, check-in, quiz) is left to the model.
const SystemInstruction = "You are 'Cognitive Ally', a friendly, patient, and encouraging AI companion for neurodivergent learners. " +
	"Tone: encouraging, simple, and patient. Avoid complex metaphors. " +
	"When a user asks for 'Explain simply', summarize the context content in exactly 3 short, easy-to-read bullet points. " +
	"When a user asks to 'Define terms', find the most complex words in the context and provide a very simple definition for each. " +
	"If they ask for a 'Check-in', ask if they need a 2-minute break to avoid cognitive overload. " +
	"When a user asks for a 'Quiz', generate 5 multiple-choice or short-answer questions based on the provided context. Make it friendly. " +
	"Use clear, accessible language at all times. Keep responses relatively brief and supportive."

const (
	Greeting = "Hi! I'm your Cognitive Ally. I'm here to help you understand things at your own pace. Ready to explore together?"

	// EmptyReply stands in for a successful call that returned no text.
	EmptyReply = "I'm listening, but I didn't quite catch that. Could you say it again simply?"

	// Apology is appended instead of a reply when the call fails.
	Apology = "I'm sorry, I had a little trouble thinking just now. Let's try again!"

	// NoContext is used when neither a result nor free text is loaded.
	NoContext = "The user hasn't loaded any specific text yet."
)

// QuickAction is a canned message the UI can send with one key.
type QuickAction struct {
	Label   string
	Message string
}

var (
	ExplainSimply = QuickAction{Label: "Explain simply", Message: "Can you explain the main idea simply in 3 bullet points?"}
	DefineTerms   = QuickAction{Label: "Define terms", Message: "Identify any complex words on the screen and explain them clearly."}
	CheckIn       = QuickAction{Label: "Check-in", Message: "I think I might need a break. Should I take 2 minutes?"}
	Quiz          = QuickAction{Label: "Quiz me", Message: "Create a quiz of about 5 questions based on the reading for better learning."}
)

// QuickActions lists the canned actions in display order.
var QuickActions = []QuickAction{ExplainSimply, DefineTerms, CheckIn, Quiz}

// BuildPrompt combines the context and the user's question into one message.
func BuildPrompt(contextText, userMessage string) string {
	return "CONTEXT CONTENT:\n" + contextText + "\n\nUSER QUESTION: " + userMessage
}

// ContextText picks what the assistant is grounded in: the adapted result,
// else the raw free text, else a placeholder.
func ContextText(resultText, freeText string) string {
	if resultText != "" {
		return resultText
	}
	if freeText != "" {
		return freeText
	}
	return NoContext
}
