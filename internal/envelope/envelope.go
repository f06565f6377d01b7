// Package envelope formats chat messages into the single-line envelope the
// agent sees, e.g.
//
//	[Telegram Alice id:42 +5m Mon 2025-01-06 16:04 CET] see you at 5
//
// The header carries channel, sender, elapsed time since the previous
// message, host, ip and a weekday-prefixed timestamp. Every function here is
// pure: malformed metadata drops header parts instead of failing.
package envelope

import (
	"strings"
	"time"

	"github.com/nextlevelbuilder/goclaw-envelope/internal/timefmt"
)

const (
	defaultChannelLabel = "Channel"
	defaultTimezoneMode = "local"

	// Largest representable epoch offset in milliseconds (±100,000,000 days).
	maxEpochMillis = 8.64e15
)

// Options controls which envelope parts are rendered. nil booleans mean true.
type Options struct {
	// Timezone is "local" (default), "utc", "user", or an explicit IANA zone.
	Timezone string `json:"timezone,omitempty"`
	// IncludeTimestamp renders the absolute timestamp (default true).
	IncludeTimestamp *bool `json:"includeTimestamp,omitempty"`
	// IncludeElapsed renders "+5m" when PreviousTimestamp is set (default true).
	IncludeElapsed *bool `json:"includeElapsed,omitempty"`
	// UserTimezone is used when Timezone is "user".
	UserTimezone string `json:"userTimezone,omitempty"`
	// IncludeSystemEnvelope renders the bracketed header at all (default true).
	// When false only the body is returned.
	IncludeSystemEnvelope *bool `json:"includeSystemEnvelope,omitempty"`
}

type normalizedOptions struct {
	timezone         string
	includeTimestamp bool
	includeElapsed   bool
	userTimezone     string
}

func normalizeOptions(o *Options) normalizedOptions {
	if o == nil {
		return normalizedOptions{timezone: defaultTimezoneMode, includeTimestamp: true, includeElapsed: true}
	}
	tz := strings.TrimSpace(o.Timezone)
	if tz == "" {
		tz = defaultTimezoneMode
	}
	return normalizedOptions{
		timezone:         tz,
		includeTimestamp: !isFalse(o.IncludeTimestamp),
		includeElapsed:   !isFalse(o.IncludeElapsed),
		userTimezone:     o.UserTimezone,
	}
}

func isFalse(b *bool) bool { return b != nil && !*b }

// Params is the input to Format. Zero timestamps are treated as absent.
type Params struct {
	Channel           string
	From              string
	Timestamp         time.Time
	Host              string
	IP                string
	Body              string
	PreviousTimestamp time.Time
	Envelope          *Options
}

// UnixMillis converts epoch milliseconds to a time. 0 and values outside the
// representable date range yield the zero time, which Format treats as absent.
func UnixMillis(ms int64) time.Time {
	if ms == 0 || ms > maxEpochMillis || ms < -maxEpochMillis {
		return time.Time{}
	}
	return time.UnixMilli(ms)
}

// Format renders "[<header parts>] <body>".
func Format(p Params) string {
	channel := strings.TrimSpace(p.Channel)
	if channel == "" {
		channel = defaultChannelLabel
	}
	parts := []string{SanitizeHeaderPart(channel)}
	opts := normalizeOptions(p.Envelope)

	elapsed := formatElapsed(p.Timestamp, p.PreviousTimestamp, opts)
	if from := strings.TrimSpace(p.From); from != "" {
		from = SanitizeHeaderPart(from)
		if elapsed != "" {
			from += " +" + elapsed
		}
		parts = append(parts, from)
	} else if elapsed != "" {
		parts = append(parts, "+"+elapsed)
	}

	if host := strings.TrimSpace(p.Host); host != "" {
		parts = append(parts, SanitizeHeaderPart(host))
	}
	if ip := strings.TrimSpace(p.IP); ip != "" {
		parts = append(parts, SanitizeHeaderPart(ip))
	}
	if ts := formatTimestamp(p.Timestamp, opts); ts != "" {
		parts = append(parts, ts)
	}

	if p.Envelope != nil && isFalse(p.Envelope.IncludeSystemEnvelope) {
		return p.Body
	}
	return "[" + strings.Join(parts, " ") + "] " + p.Body
}

// formatElapsed humanizes current-previous. Missing timestamps and negative
// deltas yield "".
func formatElapsed(current, previous time.Time, opts normalizedOptions) string {
	if !opts.includeElapsed || current.IsZero() || previous.IsZero() {
		return ""
	}
	delta := current.Sub(previous)
	if delta < 0 {
		return ""
	}
	return timefmt.FormatTimeAgo(delta, timefmt.TimeAgoOptions{Suffix: false})
}
