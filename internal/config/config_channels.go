package config

import (
	"encoding/json"
	"fmt"

	"github.com/titanous/json5"
)

// defaultsKey is the reserved channels key holding settings shared by every channel.
const defaultsKey = "defaults"

// ChannelsConfig contains channel defaults plus per-channel configuration
// keyed by channel ID ("telegram", "discord", "imessage", ...).
//
// On disk it is a flat object with a reserved "defaults" key:
//
//	"channels": {
//	  "defaults": {"inboundContext": {"includeSenderInfo": false}},
//	  "telegram": {"enabled": true, "inboundContext": {"includeSystemEnvelope": false}}
//	}
type ChannelsConfig struct {
	Defaults ChannelDefaults
	Entries  map[string]ChannelConfig
}

// ChannelDefaults apply to every channel without its own override.
type ChannelDefaults struct {
	InboundContext *InboundContextConfig `json:"inboundContext,omitempty"`
}

// ChannelConfig holds the per-channel settings. Adapter-specific keys
// (allow_from, dm_policy, ...) are ignored here.
type ChannelConfig struct {
	Enabled        bool                  `json:"enabled"`
	InboundContext *InboundContextConfig `json:"inboundContext,omitempty"`
}

// Channel returns the config for a channel ID.
func (c ChannelsConfig) Channel(id string) (ChannelConfig, bool) {
	ch, ok := c.Entries[id]
	return ch, ok
}

func (c *ChannelsConfig) UnmarshalJSON(data []byte) error {
	var raw map[string]interface{}
	if err := json5.Unmarshal(data, &raw); err != nil {
		return err
	}

	out := ChannelsConfig{Entries: make(map[string]ChannelConfig, len(raw))}
	for key, val := range raw {
		// Re-encode as strict JSON so the typed decode below never sees JSON5 syntax.
		b, err := json.Marshal(val)
		if err != nil {
			return fmt.Errorf("channel %q: %w", key, err)
		}
		if key == defaultsKey {
			if err := json.Unmarshal(b, &out.Defaults); err != nil {
				return fmt.Errorf("channel defaults: %w", err)
			}
			continue
		}
		var ch ChannelConfig
		if err := json.Unmarshal(b, &ch); err != nil {
			return fmt.Errorf("channel %q: %w", key, err)
		}
		out.Entries[key] = ch
	}
	*c = out
	return nil
}

func (c ChannelsConfig) MarshalJSON() ([]byte, error) {
	m := make(map[string]interface{}, len(c.Entries)+1)
	if c.Defaults.InboundContext != nil {
		m[defaultsKey] = c.Defaults
	}
	for id, ch := range c.Entries {
		if id == defaultsKey {
			continue
		}
		m[id] = ch
	}
	return json.Marshal(m)
}
