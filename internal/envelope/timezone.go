package envelope

import (
	"log/slog"
	"strings"
	"time"

	"github.com/nextlevelbuilder/goclaw-envelope/internal/timefmt"
)

type zoneMode int

const (
	zoneUTC zoneMode = iota
	zoneLocal
	zoneIANA
)

// resolvedZone is the timezone a timestamp renders in. name is set only for zoneIANA.
type resolvedZone struct {
	mode zoneMode
	name string
}

// resolveZone maps the timezone option to a render mode:
//
//	"utc", "gmt"          → UTC
//	"local", "host", ""   → host zone
//	"user"                → user zone, else the host zone
//	anything else         → that IANA zone, or UTC when it does not resolve
func resolveZone(opts normalizedOptions) resolvedZone {
	trimmed := strings.TrimSpace(opts.timezone)
	switch strings.ToLower(trimmed) {
	case "":
		return resolvedZone{mode: zoneLocal}
	case "utc", "gmt":
		return resolvedZone{mode: zoneUTC}
	case "local", "host":
		return resolvedZone{mode: zoneLocal}
	case "user":
		if name := timefmt.ResolveUserTimezone(opts.userTimezone); name != "" {
			return resolvedZone{mode: zoneIANA, name: name}
		}
		return resolvedZone{mode: zoneLocal}
	}
	if name, ok := timefmt.ResolveTimezone(trimmed); ok {
		return resolvedZone{mode: zoneIANA, name: name}
	}
	slog.Debug("envelope timezone not recognized, using UTC", "timezone", trimmed)
	return resolvedZone{mode: zoneUTC}
}

// location returns the *time.Location for the zone, or false if it cannot be loaded.
func (z resolvedZone) location() (*time.Location, bool) {
	switch z.mode {
	case zoneUTC:
		return time.UTC, true
	case zoneLocal:
		return time.Local, true
	case zoneIANA:
		return timefmt.LoadLocation(z.name)
	}
	return nil, false
}

// formatTimestamp renders "<weekday> <timestamp>" in the resolved zone.
// Absent timestamps and disabled options yield "". The weekday is dropped if
// the zone cannot be loaded.
func formatTimestamp(ts time.Time, opts normalizedOptions) string {
	if ts.IsZero() || !opts.includeTimestamp {
		return ""
	}
	zone := resolveZone(opts)

	// Weekday prefix so models do not have to derive the day of week from the date.
	var weekday string
	if loc, ok := zone.location(); ok {
		weekday = ts.In(loc).Format("Mon")
	}

	var formatted string
	switch zone.mode {
	case zoneUTC:
		formatted = timefmt.FormatUTC(ts)
	case zoneLocal:
		formatted = timefmt.FormatZoned(ts, "")
	case zoneIANA:
		formatted = timefmt.FormatZoned(ts, zone.name)
	}
	if formatted == "" {
		return ""
	}
	if weekday == "" {
		return formatted
	}
	return weekday + " " + formatted
}
