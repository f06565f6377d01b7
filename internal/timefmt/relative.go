package timefmt

import (
	"fmt"
	"math"
	"time"
)

const defaultAgoFallback = "unknown"

// TimeAgoOptions controls FormatTimeAgo output.
type TimeAgoOptions struct {
	Suffix   bool   // append " ago" (and render sub-minute as "just now")
	Fallback string // returned for negative durations (default "unknown")
}

// FormatTimeAgo humanizes d into a compact unit string: "42s", "5m", "3h", "2d".
// Hours are used up to 48h before switching to days.
func FormatTimeAgo(d time.Duration, opts TimeAgoOptions) string {
	if d < 0 {
		if opts.Fallback != "" {
			return opts.Fallback
		}
		return defaultAgoFallback
	}

	seconds := int64(math.Round(d.Seconds()))
	minutes := int64(math.Round(float64(seconds) / 60))
	if minutes < 1 {
		if opts.Suffix {
			return "just now"
		}
		return fmt.Sprintf("%ds", seconds)
	}

	var compact string
	switch hours := int64(math.Round(float64(minutes) / 60)); {
	case minutes < 60:
		compact = fmt.Sprintf("%dm", minutes)
	case hours < 48:
		compact = fmt.Sprintf("%dh", hours)
	default:
		compact = fmt.Sprintf("%dd", int64(math.Round(float64(hours)/24)))
	}
	if opts.Suffix {
		return compact + " ago"
	}
	return compact
}
