package config

import (
	"encoding/json"
	"sync"
)

// Config is the configuration snapshot read by the envelope resolvers.
type Config struct {
	Agents   AgentsConfig   `json:"agents"`
	Channels ChannelsConfig `json:"channels"`
	mu       sync.RWMutex
}

// AgentsConfig contains agent defaults.
type AgentsConfig struct {
	Defaults AgentDefaults `json:"defaults"`
}

// AgentDefaults are default settings for all agents.
type AgentDefaults struct {
	EnvelopeTimezone  string                `json:"envelopeTimezone,omitempty"`  // "local" (default), "utc", "user", or IANA zone
	EnvelopeTimestamp string                `json:"envelopeTimestamp,omitempty"` // "on" (default), "off"
	EnvelopeElapsed   string                `json:"envelopeElapsed,omitempty"`   // "on" (default), "off"
	UserTimezone      string                `json:"userTimezone,omitempty"`      // IANA zone used when envelopeTimezone="user"
	InboundContext    *InboundContextConfig `json:"inboundContext,omitempty"`
}

// InboundContextConfig toggles the metadata attached to inbound messages.
// nil fields defer to the next precedence layer.
type InboundContextConfig struct {
	IncludeSystemEnvelope   *bool `json:"includeSystemEnvelope,omitempty"`
	IncludeConversationInfo *bool `json:"includeConversationInfo,omitempty"`
	IncludeSenderInfo       *bool `json:"includeSenderInfo,omitempty"`
}

// InboundLayers returns the inbound-context layers for a channel, highest
// precedence first: channel override, channel defaults, agent defaults.
// Missing layers are nil. Safe on a nil Config.
func (c *Config) InboundLayers(channelID string) (override, channelDefaults, agentDefaults *InboundContextConfig) {
	if c == nil {
		return nil, nil, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	if channelID != "" {
		if ch, ok := c.Channels.Entries[channelID]; ok {
			override = ch.InboundContext
		}
	}
	return override, c.Channels.Defaults.InboundContext, c.Agents.Defaults.InboundContext
}

// EnvelopeDefaults returns a copy of the agent defaults. Safe on a nil Config.
func (c *Config) EnvelopeDefaults() AgentDefaults {
	if c == nil {
		return AgentDefaults{}
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.Agents.Defaults
}

// ReplaceFrom copies all data fields from src into c, preserving c's mutex.
func (c *Config) ReplaceFrom(src *Config) {
	src.mu.RLock()
	agents, channels := src.Agents, src.Channels
	src.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	c.Agents = agents
	c.Channels = channels
}

// MarshalJSON encodes the data fields under the read lock.
func (c *Config) MarshalJSON() ([]byte, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return json.Marshal(struct {
		Agents   AgentsConfig   `json:"agents"`
		Channels ChannelsConfig `json:"channels"`
	}{c.Agents, c.Channels})
}

// BoolPtr returns a pointer to b, for building optional config fields.
func BoolPtr(b bool) *bool { return &b }
