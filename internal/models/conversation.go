package models

// MessageRole identifies who authored a message within a conversation.
type MessageRole string

const (
	MessageRoleUser      MessageRole = "user"
	MessageRoleAssistant MessageRole = "assistant"
)

// Conversation is an ordered exchange between a user and the assistant.
// Messages are append-only; only the title and timestamps may change.
type Conversation struct {
	Base
	UserID string `gorm:"type:uuid;not null;index" json:"user_id"`
	Title  string `json:"title"`

	Messages []Message `gorm:"foreignKey:ConversationID" json:"messages,omitempty"`
}

// Message is a single role-tagged entry in a conversation.
type Message struct {
	Base
	ConversationID string      `gorm:"type:uuid;not null;index" json:"conversation_id"`
	Role           MessageRole `gorm:"not null" json:"role"`
	Content        string      `gorm:"not null" json:"content"`
}
