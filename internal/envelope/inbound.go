package envelope

import (
	"strings"
	"time"

	"github.com/nextlevelbuilder/goclaw-envelope/internal/channels"
)

const defaultGroupLabel = "Group"

// InboundParams is the input to FormatInbound.
type InboundParams struct {
	Channel           string
	From              string
	Body              string
	Timestamp         time.Time
	ChatType          string // raw platform tag, normalized via channels.NormalizeChatType
	SenderLabel       string // explicit label, wins over Sender
	Sender            channels.SenderLabelParams
	PreviousTimestamp time.Time
	Envelope          *Options
}

// FormatInbound formats a message received from a channel. In group and
// channel conversations the body is prefixed with "<sender>: " since the
// envelope's from field names the conversation, not the speaker.
func FormatInbound(p InboundParams) string {
	body := p.Body
	if !channels.IsDirect(p.ChatType) {
		if sender := resolveSender(p); sender != "" {
			body = sender + ": " + p.Body
		}
	}
	return Format(Params{
		Channel:           p.Channel,
		From:              p.From,
		Timestamp:         p.Timestamp,
		PreviousTimestamp: p.PreviousTimestamp,
		Envelope:          p.Envelope,
		Body:              body,
	})
}

func resolveSender(p InboundParams) string {
	raw := strings.TrimSpace(p.SenderLabel)
	if raw == "" {
		raw = channels.ResolveSenderLabel(p.Sender)
	}
	if raw == "" {
		return ""
	}
	return SanitizeHeaderPart(raw)
}

// FromLabelParams is the input to FormatFromLabel.
type FromLabelParams struct {
	IsGroup       bool
	GroupLabel    string
	GroupID       string
	DirectLabel   string
	DirectID      string
	GroupFallback string
}

// FormatFromLabel builds the envelope from field. Group labels always carry
// their id; direct labels only add the id when it differs from the label.
func FormatFromLabel(p FromLabelParams) string {
	if p.IsGroup {
		label := strings.TrimSpace(p.GroupLabel)
		if label == "" {
			label = p.GroupFallback
		}
		if label == "" {
			label = defaultGroupLabel
		}
		if id := strings.TrimSpace(p.GroupID); id != "" {
			return label + " id:" + id
		}
		return label
	}

	label := strings.TrimSpace(p.DirectLabel)
	id := strings.TrimSpace(p.DirectID)
	if id == "" || id == label {
		return label
	}
	return label + " id:" + id
}

// ThreadStarterParams is the input to FormatThreadStarter.
type ThreadStarterParams struct {
	Channel   string
	Author    string
	Timestamp time.Time
	Body      string
	Envelope  *Options
}

// FormatThreadStarter formats the root message of a thread. There is no
// previous message, so no elapsed time is rendered.
func FormatThreadStarter(p ThreadStarterParams) string {
	return Format(Params{
		Channel:   p.Channel,
		From:      p.Author,
		Timestamp: p.Timestamp,
		Envelope:  p.Envelope,
		Body:      p.Body,
	})
}
