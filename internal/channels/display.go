package channels

import "strings"

// displayNames maps channel IDs to the label shown in envelopes.
var displayNames = map[string]string{
	"telegram": "Telegram",
	"discord":  "Discord",
	"slack":    "Slack",
	"whatsapp": "WhatsApp",
	"zalo":     "Zalo",
	"feishu":   "Feishu",
	"imessage": "iMessage",
	"signal":   "Signal",
	"sms":      "SMS",
	"web":      "Web",
	"cli":      "CLI",
}

// DisplayName returns the envelope label for a channel ID. Unknown IDs are
// returned trimmed and unchanged.
func DisplayName(id string) string {
	id = strings.TrimSpace(id)
	if name, ok := displayNames[strings.ToLower(id)]; ok {
		return name
	}
	return id
}

// SplitSenderID splits a compound sender ID "123456|username" into its parts.
func SplitSenderID(senderID string) (id, username string) {
	if idx := strings.Index(senderID, "|"); idx > 0 {
		return senderID[:idx], senderID[idx+1:]
	}
	return senderID, ""
}
