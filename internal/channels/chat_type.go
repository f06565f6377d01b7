// Package channels holds the channel-facing helpers shared by every adapter:
// chat-type normalization and sender display labels.
package channels

import "strings"

// ChatType is the canonical conversation kind across platforms.
type ChatType string

const (
	ChatDirect  ChatType = "direct"
	ChatGroup   ChatType = "group"
	ChatChannel ChatType = "channel"
)

// NormalizeChatType maps platform-specific chat tags to a canonical ChatType.
// Unknown or blank input returns "".
func NormalizeChatType(raw string) ChatType {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "direct", "dm":
		return ChatDirect
	case "group":
		return ChatGroup
	case "channel":
		return ChatChannel
	default:
		return ""
	}
}

// IsDirect reports whether raw describes a direct conversation.
// An unrecognized tag is treated as direct.
func IsDirect(raw string) bool {
	ct := NormalizeChatType(raw)
	return ct == "" || ct == ChatDirect
}
