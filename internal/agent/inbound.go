// Package agent turns channel messages into the text the model sees.
package agent

import (
	"log/slog"
	"time"

	"github.com/nextlevelbuilder/goclaw-envelope/internal/bus"
	"github.com/nextlevelbuilder/goclaw-envelope/internal/channels"
	"github.com/nextlevelbuilder/goclaw-envelope/internal/config"
	"github.com/nextlevelbuilder/goclaw-envelope/internal/envelope"
)

// BuildUserContent wraps an inbound message in its envelope using the
// channel's effective options from cfg. previous is the timestamp of the
// prior message in the same session (zero if unknown). msg gets an ID
// assigned if it has none, so callers can correlate it with the debug log.
//
// includeConversationInfo=false drops group IDs from the from-label;
// includeSenderInfo=false drops the sender from both the from-label (DMs) and
// the body prefix (groups).
func BuildUserContent(cfg *config.Config, msg *bus.InboundMessage, previous time.Time) string {
	msgID := msg.EnsureID()
	ctxOpts := envelope.ResolveInboundContextOptions(cfg, msg.Channel)
	fmtOpts := envelope.FormatOptionsFor(cfg, ctxOpts)

	senderID, compoundUser := channels.SplitSenderID(msg.SenderID)
	username := msg.Username
	if username == "" {
		username = compoundUser
	}
	sender := channels.SenderLabelParams{
		Name:     msg.SenderName,
		Username: username,
		ID:       senderID,
	}

	isDirect := channels.IsDirect(msg.PeerKind)
	var from string
	switch {
	case !isDirect:
		label := envelope.FromLabelParams{
			IsGroup:       true,
			GroupLabel:    msg.ChatTitle,
			GroupFallback: channels.DisplayName(msg.Channel) + " group",
		}
		if ctxOpts.IncludeConversationInfo {
			label.GroupID = msg.ChatID
		}
		from = envelope.FormatFromLabel(label)
	case ctxOpts.IncludeSenderInfo:
		directLabel := msg.SenderName
		if directLabel == "" {
			directLabel = username
		}
		if directLabel == "" {
			directLabel = senderID
		}
		from = envelope.FormatFromLabel(envelope.FromLabelParams{
			DirectLabel: directLabel,
			DirectID:    senderID,
		})
	}

	params := envelope.InboundParams{
		Channel:           channels.DisplayName(msg.Channel),
		From:              from,
		Body:              msg.Content,
		Timestamp:         msg.Timestamp,
		ChatType:          msg.PeerKind,
		PreviousTimestamp: previous,
		Envelope:          &fmtOpts,
	}
	if ctxOpts.IncludeSenderInfo {
		params.Sender = sender
	}

	slog.Debug("inbound envelope",
		"message_id", msgID,
		"channel", msg.Channel,
		"direct", isDirect,
		"system_envelope", ctxOpts.IncludeSystemEnvelope,
		"conversation_info", ctxOpts.IncludeConversationInfo,
		"sender_info", ctxOpts.IncludeSenderInfo,
	)

	return envelope.FormatInbound(params)
}
