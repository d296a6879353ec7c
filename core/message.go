package core

// Conversation roles accepted from the upstream chat UI.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

// Message is a single conversation turn. Insertion order inside a
// Conversation is meaningful; the most recent user message drives the turn.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Conversation is an ordered sequence of messages as supplied by the client.
type Conversation []Message

// LastUserMessage returns the content of the most recent user message and
// true, or "" and false when the conversation contains no user turn.
func (c Conversation) LastUserMessage() (string, bool) {
	for i := len(c) - 1; i >= 0; i-- {
		if c[i].Role == RoleUser {
			return c[i].Content, true
		}
	}
	return "", false
}
