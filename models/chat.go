package models

// ChatMessage is a single role-tagged message in a conversation.
type ChatMessage struct {
	Role    string `json:"role"` // "user" or "assistant"
	Content string `json:"content"`
}

// Conversation is the per-user append-only message history. It is owned by
// the calling layer and passed by pointer into every action handler so
// generated text can reference prior context.
type Conversation struct {
	Messages []ChatMessage `json:"messages"`
}

// Append adds a message to the end of the history.
func (c *Conversation) Append(role, content string) {
	c.Messages = append(c.Messages, ChatMessage{Role: role, Content: content})
}
