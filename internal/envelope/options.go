package envelope

import (
	"github.com/nextlevelbuilder/goclaw-envelope/internal/config"
)

// envelopeSwitchOff is the agent-default value that disables a header field.
const envelopeSwitchOff = "off"

// InboundContextOptions are the effective per-channel inclusion flags.
type InboundContextOptions struct {
	IncludeSystemEnvelope   bool `json:"includeSystemEnvelope"`
	IncludeConversationInfo bool `json:"includeConversationInfo"`
	IncludeSenderInfo       bool `json:"includeSenderInfo"`
}

// ResolveInboundContextOptions resolves inbound context options for a channel.
// Precedence per field: channel override > channel defaults > agent defaults > true.
// An empty channelID skips the override layer. A nil cfg resolves to all true.
func ResolveInboundContextOptions(cfg *config.Config, channelID string) InboundContextOptions {
	override, channelDefaults, agentDefaults := cfg.InboundLayers(channelID)
	layers := []*config.InboundContextConfig{override, channelDefaults, agentDefaults}

	return InboundContextOptions{
		IncludeSystemEnvelope: firstSet(layers, func(l *config.InboundContextConfig) *bool {
			return l.IncludeSystemEnvelope
		}),
		IncludeConversationInfo: firstSet(layers, func(l *config.InboundContextConfig) *bool {
			return l.IncludeConversationInfo
		}),
		IncludeSenderInfo: firstSet(layers, func(l *config.InboundContextConfig) *bool {
			return l.IncludeSenderInfo
		}),
	}
}

// firstSet walks layers in order and returns the first explicitly set value.
func firstSet(layers []*config.InboundContextConfig, field func(*config.InboundContextConfig) *bool) bool {
	for _, l := range layers {
		if l == nil {
			continue
		}
		if v := field(l); v != nil {
			return *v
		}
	}
	return true
}

// ResolveFormatOptions builds envelope format options for a channel from the
// agent defaults and the channel's resolved includeSystemEnvelope flag.
func ResolveFormatOptions(cfg *config.Config, channelID string) Options {
	return FormatOptionsFor(cfg, ResolveInboundContextOptions(cfg, channelID))
}

// FormatOptionsFor builds format options from the agent defaults and
// already-resolved inbound context options.
func FormatOptionsFor(cfg *config.Config, inbound InboundContextOptions) Options {
	defaults := cfg.EnvelopeDefaults()
	return Options{
		Timezone:              defaults.EnvelopeTimezone,
		IncludeTimestamp:      config.BoolPtr(defaults.EnvelopeTimestamp != envelopeSwitchOff),
		IncludeElapsed:        config.BoolPtr(defaults.EnvelopeElapsed != envelopeSwitchOff),
		UserTimezone:          defaults.UserTimezone,
		IncludeSystemEnvelope: config.BoolPtr(inbound.IncludeSystemEnvelope),
	}
}
