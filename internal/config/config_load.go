package config

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/titanous/json5"
)

// Default returns a Config with sensible defaults.
func Default() *Config {
	return &Config{
		Agents: AgentsConfig{
			Defaults: AgentDefaults{
				EnvelopeTimezone:  "local",
				EnvelopeTimestamp: "on",
				EnvelopeElapsed:   "on",
			},
		},
		Channels: ChannelsConfig{
			Entries: map[string]ChannelConfig{},
		},
	}
}

// Load reads config from a JSON5 file, then overlays env vars.
// A missing file is not an error: defaults (plus env) are returned.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := json5.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if cfg.Channels.Entries == nil {
		cfg.Channels.Entries = map[string]ChannelConfig{}
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// applyEnvOverrides overlays env vars onto the config.
// Env vars take precedence over file values.
func (c *Config) applyEnvOverrides() {
	envStr := func(key string, dst *string) {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			*dst = v
		}
	}
	envStr("GOCLAW_ENVELOPE_TIMEZONE", &c.Agents.Defaults.EnvelopeTimezone)
	envStr("GOCLAW_ENVELOPE_TIMESTAMP", &c.Agents.Defaults.EnvelopeTimestamp)
	envStr("GOCLAW_ENVELOPE_ELAPSED", &c.Agents.Defaults.EnvelopeElapsed)
	envStr("GOCLAW_USER_TIMEZONE", &c.Agents.Defaults.UserTimezone)

	if v := os.Getenv("GOCLAW_INCLUDE_SYSTEM_ENVELOPE"); v != "" {
		if c.Agents.Defaults.InboundContext == nil {
			c.Agents.Defaults.InboundContext = &InboundContextConfig{}
		}
		c.Agents.Defaults.InboundContext.IncludeSystemEnvelope = BoolPtr(v == "true" || v == "1")
	}
}

// Save writes the config to a JSON file.
func Save(path string, cfg *Config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	return os.WriteFile(path, data, 0600)
}

// Hash returns a SHA-256 hash of the config, used to skip no-op reloads.
func (c *Config) Hash() string {
	data, _ := json.Marshal(c)
	h := sha256.Sum256(data)
	return fmt.Sprintf("%x", h[:8])
}
