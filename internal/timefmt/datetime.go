// Package timefmt renders timestamps and durations for model-facing text.
//
// Formats are fixed and locale-independent so transcripts stay stable across
// hosts:
//
//	UTC:    2025-01-02T03:04Z
//	Zoned:  2025-01-02 04:04 CET
//	Ago:    5m, 2h, 3d (or "5m ago" with suffix)
package timefmt

import (
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	utcLayout   = "2006-01-02T15:04Z"
	zonedLayout = "2006-01-02 15:04 MST"
)

// localtimePath is the symlink most Unix hosts point at their zoneinfo file.
const localtimePath = "/etc/localtime"

// ResolveTimezone validates an IANA zone name and returns its canonical form.
// Blank input and the pseudo-zone "Local" are rejected. Names are matched
// case-insensitively for the common Area/Location_Name shape, so
// "america/new_york" resolves to "America/New_York".
func ResolveTimezone(name string) (string, bool) {
	name = strings.TrimSpace(name)
	if name == "" || strings.EqualFold(name, "local") {
		return "", false
	}
	for _, candidate := range []string{name, titleZone(name), strings.ToUpper(name)} {
		if loc, err := time.LoadLocation(candidate); err == nil {
			return loc.String(), true
		}
	}
	return "", false
}

// titleZone upper-cases the first letter of every segment delimited by
// "/", "_" or "-" and lower-cases the rest.
func titleZone(name string) string {
	b := []byte(strings.ToLower(name))
	upper := true
	for i, c := range b {
		if upper && c >= 'a' && c <= 'z' {
			b[i] = c - 'a' + 'A'
		}
		upper = c == '/' || c == '_' || c == '-'
	}
	return string(b)
}

// ResolveUserTimezone returns preferred when it is a valid zone, otherwise the
// host zone name. It returns "" when the host zone has no IANA name; callers
// pass that to FormatZoned or LoadLocation, which map it to time.Local.
func ResolveUserTimezone(preferred string) string {
	if tz, ok := ResolveTimezone(preferred); ok {
		return tz
	}
	return HostTimezone()
}

// HostTimezone names the host's zone, or returns "" when no IANA name can be
// found. Sources in order: $TZ (plain name or zoneinfo path), the name Go
// assigned time.Local, then the /etc/localtime symlink target.
func HostTimezone() string {
	return hostTimezone(os.Getenv("TZ"), time.Local, localtimePath)
}

func hostTimezone(tzEnv string, local *time.Location, linkPath string) string {
	if tz := strings.TrimPrefix(strings.TrimSpace(tzEnv), ":"); tz != "" {
		if name, ok := ResolveTimezone(zoneNameFromPath(tz)); ok {
			return name
		}
	}
	if local != nil {
		if name, ok := ResolveTimezone(zoneNameFromPath(local.String())); ok {
			return name
		}
	}
	if linkPath != "" {
		if target, err := filepath.EvalSymlinks(linkPath); err == nil {
			if name, ok := ResolveTimezone(zoneNameFromPath(target)); ok {
				return name
			}
		}
	}
	return ""
}

// zoneNameFromPath strips everything up to "zoneinfo/" so
// "/usr/share/zoneinfo/Asia/Tokyo" becomes "Asia/Tokyo". Other values are
// returned unchanged.
func zoneNameFromPath(p string) string {
	const marker = "zoneinfo/"
	if i := strings.LastIndex(p, marker); i >= 0 {
		return p[i+len(marker):]
	}
	return p
}

// FormatUTC renders t in UTC with minute precision.
func FormatUTC(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(utcLayout)
}

// FormatZoned renders t in zone with the zone abbreviation appended.
// An empty zone means the host zone. Returns "" when the zone cannot be loaded.
func FormatZoned(t time.Time, zone string) string {
	if t.IsZero() {
		return ""
	}
	loc, ok := LoadLocation(zone)
	if !ok {
		return ""
	}
	return t.In(loc).Format(zonedLayout)
}

// LoadLocation loads zone, mapping "" to the host location.
func LoadLocation(zone string) (*time.Location, bool) {
	if strings.TrimSpace(zone) == "" {
		return time.Local, true
	}
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return nil, false
	}
	return loc, true
}
