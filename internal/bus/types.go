package bus

import (
	"time"

	"github.com/google/uuid"
)

// InboundMessage represents a message received from a channel (Telegram, Discord, etc.)
type InboundMessage struct {
	ID         string            `json:"id,omitempty"`          // assigned by EnsureID when the channel has none
	Channel    string            `json:"channel"`               // channel ID, also the config key under channels.<id>
	SenderID   string            `json:"sender_id"`             // may be compound "123456|username"
	SenderName string            `json:"sender_name,omitempty"` // display name as reported by the platform
	Username   string            `json:"username,omitempty"`
	ChatID     string            `json:"chat_id"`
	ChatTitle  string            `json:"chat_title,omitempty"` // group/channel title (empty for DMs)
	Content    string            `json:"content"`
	PeerKind   string            `json:"peer_kind,omitempty"` // "direct", "group" or "channel"
	Timestamp  time.Time         `json:"timestamp,omitempty"`
	Metadata   map[string]string `json:"metadata,omitempty"`
}

// EnsureID assigns a random ID if the message has none and returns it.
func (m *InboundMessage) EnsureID() string {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return m.ID
}
