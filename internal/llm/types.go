package llm

import "time"

// Message roles
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatMessage represents a single message in a chat conversation
type ChatMessage struct {
	Role      string    `json:"role"` // "user" or "assistant"
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// SourceType distinguishes the grounding variant a citation came from.
type SourceType string

const (
	SourceWeb  SourceType = "web"
	SourceMaps SourceType = "maps"
)

// SourceChunk is one citation attached to a grounded response. URI is always
// present; Title may be empty.
type SourceChunk struct {
	Type  SourceType `json:"type"`
	URI   string     `json:"uri"`
	Title string     `json:"title,omitempty"`
}

// GroundedResponse pairs generated text with the citations the model
// grounded it on. Sources may be empty when the model answered without
// consulting search or maps.
type GroundedResponse struct {
	Text    string        `json:"text"`
	Sources []SourceChunk `json:"sources"`
}
