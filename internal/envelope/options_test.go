package envelope

import (
	"fmt"
	"testing"

	"github.com/nextlevelbuilder/goclaw-envelope/internal/config"
)

func allInbound(v bool) *config.InboundContextConfig {
	return &config.InboundContextConfig{
		IncludeSystemEnvelope:   config.BoolPtr(v),
		IncludeConversationInfo: config.BoolPtr(v),
		IncludeSenderInfo:       config.BoolPtr(v),
	}
}

func withChannel(cfg *config.Config, id string, ic *config.InboundContextConfig) {
	cfg.Channels.Entries[id] = config.ChannelConfig{Enabled: true, InboundContext: ic}
}

func TestResolveInboundContextOptions_NoConfig(t *testing.T) {
	want := InboundContextOptions{true, true, true}
	if got := ResolveInboundContextOptions(nil, ""); got != want {
		t.Errorf("nil config = %+v", got)
	}
	if got := ResolveInboundContextOptions(nil, "telegram"); got != want {
		t.Errorf("nil config with channel = %+v", got)
	}
	if got := ResolveInboundContextOptions(&config.Config{}, "telegram"); got != want {
		t.Errorf("empty config = %+v", got)
	}
}

func TestResolveInboundContextOptions_AgentDefaults(t *testing.T) {
	cfg := config.Default()
	cfg.Agents.Defaults.InboundContext = allInbound(false)

	got := ResolveInboundContextOptions(cfg, "")
	if got != (InboundContextOptions{}) {
		t.Errorf("got %+v, want all false", got)
	}
}

func TestResolveInboundContextOptions_ChannelDefaultsOverAgent(t *testing.T) {
	cfg := config.Default()
	cfg.Agents.Defaults.InboundContext = allInbound(false)
	cfg.Channels.Defaults.InboundContext = allInbound(true)

	got := ResolveInboundContextOptions(cfg, "")
	if got != (InboundContextOptions{true, true, true}) {
		t.Errorf("got %+v, want all true", got)
	}
}

func TestResolveInboundContextOptions_ChannelOverride(t *testing.T) {
	cfg := config.Default()
	cfg.Agents.Defaults.InboundContext = allInbound(true)
	cfg.Channels.Defaults.InboundContext = allInbound(true)
	withChannel(cfg, "telegram", allInbound(false))

	if got := ResolveInboundContextOptions(cfg, "telegram"); got != (InboundContextOptions{}) {
		t.Errorf("telegram = %+v, want all false", got)
	}
	if got := ResolveInboundContextOptions(cfg, ""); got != (InboundContextOptions{true, true, true}) {
		t.Errorf("no channel ID must skip overrides, got %+v", got)
	}
	if got := ResolveInboundContextOptions(cfg, "discord"); got != (InboundContextOptions{true, true, true}) {
		t.Errorf("other channel must not see telegram overrides, got %+v", got)
	}
}

func TestResolveInboundContextOptions_PartialOverride(t *testing.T) {
	cfg := config.Default()
	cfg.Agents.Defaults.InboundContext = allInbound(true)
	withChannel(cfg, "discord", &config.InboundContextConfig{IncludeConversationInfo: config.BoolPtr(false)})

	got := ResolveInboundContextOptions(cfg, "discord")
	want := InboundContextOptions{IncludeSystemEnvelope: true, IncludeConversationInfo: false, IncludeSenderInfo: true}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestResolveInboundContextOptions_ChannelWithoutInboundContext(t *testing.T) {
	cfg := config.Default()
	cfg.Agents.Defaults.InboundContext = &config.InboundContextConfig{
		IncludeSystemEnvelope:   config.BoolPtr(false),
		IncludeConversationInfo: config.BoolPtr(true),
		IncludeSenderInfo:       config.BoolPtr(false),
	}
	withChannel(cfg, "telegram", nil)

	got := ResolveInboundContextOptions(cfg, "telegram")
	want := InboundContextOptions{IncludeSystemEnvelope: false, IncludeConversationInfo: true, IncludeSenderInfo: false}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestResolveInboundContextOptions_MixedPrecedence(t *testing.T) {
	cfg := config.Default()
	cfg.Agents.Defaults.InboundContext = allInbound(false)
	cfg.Channels.Defaults.InboundContext = &config.InboundContextConfig{IncludeSystemEnvelope: config.BoolPtr(true)}
	withChannel(cfg, "whatsapp", &config.InboundContextConfig{IncludeSenderInfo: config.BoolPtr(true)})

	got := ResolveInboundContextOptions(cfg, "whatsapp")
	want := InboundContextOptions{
		IncludeSystemEnvelope:   true,  // channel defaults
		IncludeConversationInfo: false, // agent defaults
		IncludeSenderInfo:       true,  // channel override
	}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestResolveInboundContextOptions_OnlySenderOverride(t *testing.T) {
	cfg := config.Default()
	withChannel(cfg, "x", &config.InboundContextConfig{IncludeSenderInfo: config.BoolPtr(false)})

	got := ResolveInboundContextOptions(cfg, "x")
	want := InboundContextOptions{IncludeSystemEnvelope: true, IncludeConversationInfo: true, IncludeSenderInfo: false}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

// Every combination of unset/true/false across the three layers resolves to
// the highest set layer, or true when none is set.
func TestResolveInboundContextOptions_PrecedenceExhaustive(t *testing.T) {
	values := []*bool{nil, config.BoolPtr(true), config.BoolPtr(false)}
	name := func(b *bool) string {
		if b == nil {
			return "unset"
		}
		return fmt.Sprint(*b)
	}

	for _, override := range values {
		for _, chDefault := range values {
			for _, agentDefault := range values {
				want := true
				for _, v := range []*bool{override, chDefault, agentDefault} {
					if v != nil {
						want = *v
						break
					}
				}

				cfg := config.Default()
				cfg.Agents.Defaults.InboundContext = &config.InboundContextConfig{IncludeSenderInfo: agentDefault}
				cfg.Channels.Defaults.InboundContext = &config.InboundContextConfig{IncludeSenderInfo: chDefault}
				withChannel(cfg, "x", &config.InboundContextConfig{IncludeSenderInfo: override})

				t.Run(name(override)+"/"+name(chDefault)+"/"+name(agentDefault), func(t *testing.T) {
					got := ResolveInboundContextOptions(cfg, "x")
					if got.IncludeSenderInfo != want {
						t.Errorf("IncludeSenderInfo = %v, want %v", got.IncludeSenderInfo, want)
					}
					if !got.IncludeSystemEnvelope || !got.IncludeConversationInfo {
						t.Errorf("unrelated fields must stay true: %+v", got)
					}
				})
			}
		}
	}
}

func TestResolveFormatOptions(t *testing.T) {
	cfg := config.Default()
	cfg.Agents.Defaults.EnvelopeTimezone = "user"
	cfg.Agents.Defaults.UserTimezone = "Asia/Tokyo"
	cfg.Agents.Defaults.EnvelopeTimestamp = "off"
	cfg.Agents.Defaults.EnvelopeElapsed = "on"
	withChannel(cfg, "imessage", &config.InboundContextConfig{IncludeSystemEnvelope: config.BoolPtr(false)})

	got := ResolveFormatOptions(cfg, "imessage")
	if got.Timezone != "user" || got.UserTimezone != "Asia/Tokyo" {
		t.Errorf("zone fields = %q/%q", got.Timezone, got.UserTimezone)
	}
	if *got.IncludeTimestamp {
		t.Error("envelopeTimestamp=off must disable timestamps")
	}
	if !*got.IncludeElapsed {
		t.Error("envelopeElapsed=on must keep elapsed")
	}
	if *got.IncludeSystemEnvelope {
		t.Error("channel override must disable the system envelope")
	}

	if other := ResolveFormatOptions(cfg, "telegram"); !*other.IncludeSystemEnvelope {
		t.Error("other channels keep the system envelope")
	}
}

func TestResolveFormatOptions_NilConfig(t *testing.T) {
	got := ResolveFormatOptions(nil, "")
	if got.Timezone != "" || !*got.IncludeTimestamp || !*got.IncludeElapsed || !*got.IncludeSystemEnvelope {
		t.Errorf("got %+v", got)
	}
	// Any value other than the literal "off" keeps the field on.
	cfg := config.Default()
	cfg.Agents.Defaults.EnvelopeTimestamp = "OFF"
	if !*ResolveFormatOptions(cfg, "").IncludeTimestamp {
		t.Error(`only exact "off" disables timestamps`)
	}
}

func TestFormatOptionsFor_UsesGivenInboundFlags(t *testing.T) {
	cfg := config.Default()
	cfg.Agents.Defaults.EnvelopeTimezone = "utc"
	// The config would resolve to true; the passed flags must win.
	got := FormatOptionsFor(cfg, InboundContextOptions{IncludeSystemEnvelope: false})
	if *got.IncludeSystemEnvelope {
		t.Error("includeSystemEnvelope should come from the resolved inbound options")
	}
	if got.Timezone != "utc" {
		t.Errorf("timezone = %q", got.Timezone)
	}
}
