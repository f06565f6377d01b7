package cmd

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/nextlevelbuilder/goclaw-envelope/internal/config"
	"github.com/nextlevelbuilder/goclaw-envelope/internal/envelope"
	"github.com/nextlevelbuilder/goclaw-envelope/internal/timefmt"
)

func doctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check configuration and timezone health",
		Run: func(cmd *cobra.Command, args []string) {
			runDoctor(cmd.OutOrStdout(), resolveConfigPath())
		},
	}
}

func runDoctor(w io.Writer, cfgPath string) {
	fmt.Fprintln(w, "goclaw-envelope doctor")
	fmt.Fprintf(w, "  Version:  %s\n", Version)
	fmt.Fprintf(w, "  OS:       %s/%s\n", runtime.GOOS, runtime.GOARCH)
	fmt.Fprintf(w, "  Go:       %s\n", runtime.Version())
	fmt.Fprintln(w)

	fmt.Fprintf(w, "  Config:   %s", cfgPath)
	if _, err := os.Stat(cfgPath); err != nil {
		fmt.Fprintln(w, " (NOT FOUND, using defaults)")
	} else {
		fmt.Fprintln(w, " (OK)")
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		fmt.Fprintf(w, "  Config load error: %s\n", err)
		return
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Timezones:")
	fmt.Fprintf(w, "    %-18s %s\n", "Host:", hostZoneLabel())

	d := cfg.EnvelopeDefaults()
	fmt.Fprintf(w, "    %-18s %s\n", "Envelope:", checkEnvelopeTimezone(d.EnvelopeTimezone))
	if d.UserTimezone != "" {
		status := "OK"
		if _, ok := timefmt.ResolveTimezone(d.UserTimezone); !ok {
			status = "INVALID, falls back to " + hostZoneLabel()
		}
		fmt.Fprintf(w, "    %-18s %s (%s)\n", "User:", d.UserTimezone, status)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Sample:")
	fmt.Fprintf(w, "    %s\n", envelope.Format(envelope.Params{
		Channel:   "Doctor",
		From:      "self",
		Timestamp: time.Now(),
		Body:      "ping",
		Envelope:  ptr(envelope.ResolveFormatOptions(cfg, "")),
	}))

	ids := make([]string, 0, len(cfg.Channels.Entries))
	for id := range cfg.Channels.Entries {
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return
	}
	sort.Strings(ids)

	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Channels:")
	for _, id := range ids {
		if ch, _ := cfg.Channels.Channel(id); !ch.Enabled {
			fmt.Fprintf(w, "    %-18s disabled\n", id+":")
			continue
		}
		o := envelope.ResolveInboundContextOptions(cfg, id)
		var off []string
		if !o.IncludeSystemEnvelope {
			off = append(off, "envelope")
		}
		if !o.IncludeConversationInfo {
			off = append(off, "conversation")
		}
		if !o.IncludeSenderInfo {
			off = append(off, "sender")
		}
		status := "all metadata"
		if len(off) > 0 {
			status = "without " + strings.Join(off, ", ")
		}
		fmt.Fprintf(w, "    %-18s %s\n", id+":", status)
	}
}

func checkEnvelopeTimezone(tz string) string {
	trimmed := strings.TrimSpace(tz)
	switch strings.ToLower(trimmed) {
	case "", "local", "host":
		return "local (" + hostZoneLabel() + ")"
	case "utc", "gmt":
		return "UTC"
	case "user":
		return "user"
	}
	if name, ok := timefmt.ResolveTimezone(trimmed); ok {
		return name + " (OK)"
	}
	return trimmed + " (UNKNOWN, envelopes render in UTC)"
}

// hostZoneLabel names the host zone, or "Local" when it has no IANA name.
func hostZoneLabel() string {
	if tz := timefmt.HostTimezone(); tz != "" {
		return tz
	}
	return "Local"
}

func ptr[T any](v T) *T { return &v }
