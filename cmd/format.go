package cmd

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/nextlevelbuilder/goclaw-envelope/internal/channels"
	"github.com/nextlevelbuilder/goclaw-envelope/internal/config"
	"github.com/nextlevelbuilder/goclaw-envelope/internal/envelope"
)

// envelopeFlags are the option overrides shared by format and inbound.
type envelopeFlags struct {
	channelID    string
	timestamp    string
	previous     string
	timezone     string
	userTimezone string
	noTimestamp  bool
	noElapsed    bool
	noEnvelope   bool
}

func (f *envelopeFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.channelID, "channel", "", "channel ID (config key and envelope label)")
	cmd.Flags().StringVar(&f.timestamp, "timestamp", "", `message time: RFC3339, epoch millis, or "now"`)
	cmd.Flags().StringVar(&f.previous, "previous", "", "previous message time (enables elapsed)")
	cmd.Flags().StringVar(&f.timezone, "timezone", "", `"local", "utc", "user", or IANA zone (default from config)`)
	cmd.Flags().StringVar(&f.userTimezone, "user-timezone", "", "zone used when --timezone=user")
	cmd.Flags().BoolVar(&f.noTimestamp, "no-timestamp", false, "omit the timestamp")
	cmd.Flags().BoolVar(&f.noElapsed, "no-elapsed", false, "omit elapsed time")
	cmd.Flags().BoolVar(&f.noEnvelope, "no-envelope", false, "print only the body")
}

// options resolves the channel's options from cfg, then applies flag overrides.
func (f *envelopeFlags) options(cmd *cobra.Command, cfg *config.Config) envelope.Options {
	opts := envelope.ResolveFormatOptions(cfg, f.channelID)
	if cmd.Flags().Changed("timezone") {
		opts.Timezone = f.timezone
	}
	if cmd.Flags().Changed("user-timezone") {
		opts.UserTimezone = f.userTimezone
	}
	if f.noTimestamp {
		opts.IncludeTimestamp = config.BoolPtr(false)
	}
	if f.noElapsed {
		opts.IncludeElapsed = config.BoolPtr(false)
	}
	if f.noEnvelope {
		opts.IncludeSystemEnvelope = config.BoolPtr(false)
	}
	return opts
}

func (f *envelopeFlags) times() (current, previous time.Time, err error) {
	if current, err = parseTime(f.timestamp); err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("--timestamp: %w", err)
	}
	if previous, err = parseTime(f.previous); err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("--previous: %w", err)
	}
	return current, previous, nil
}

// parseTime accepts "", "now", epoch milliseconds or RFC3339.
func parseTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	switch {
	case s == "":
		return time.Time{}, nil
	case strings.EqualFold(s, "now"):
		return time.Now(), nil
	}
	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		return envelope.UnixMillis(ms), nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q (want RFC3339 or epoch millis)", s)
	}
	return t, nil
}

func formatCmd() *cobra.Command {
	var (
		ef     envelopeFlags
		from   string
		host   string
		ip     string
		thread bool
	)
	cmd := &cobra.Command{
		Use:   "format [body...]",
		Short: "Format a message envelope",
		Example: `  goclaw-envelope format --channel sms --from +1555 --timestamp now hi there
  goclaw-envelope format --channel web --host box1 --ip 10.0.0.1 --timezone utc ping`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			current, previous, err := ef.times()
			if err != nil {
				return err
			}
			opts := ef.options(cmd, cfg)
			body := strings.Join(args, " ")
			label := channels.DisplayName(ef.channelID)

			var out string
			if thread {
				out = envelope.FormatThreadStarter(envelope.ThreadStarterParams{
					Channel:   label,
					Author:    from,
					Timestamp: current,
					Body:      body,
					Envelope:  &opts,
				})
			} else {
				out = envelope.Format(envelope.Params{
					Channel:           label,
					From:              from,
					Timestamp:         current,
					Host:              host,
					IP:                ip,
					Body:              body,
					PreviousTimestamp: previous,
					Envelope:          &opts,
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}
	ef.register(cmd)
	cmd.Flags().StringVar(&from, "from", "", "sender or conversation label")
	cmd.Flags().StringVar(&host, "host", "", "host name")
	cmd.Flags().StringVar(&ip, "ip", "", "ip address")
	cmd.Flags().BoolVar(&thread, "thread-starter", false, "format as a thread root (--from is the author, no elapsed)")
	return cmd
}

func inboundCmd() *cobra.Command {
	var (
		ef          envelopeFlags
		from        string
		chatType    string
		senderLabel string
		sender      channels.SenderLabelParams
	)
	cmd := &cobra.Command{
		Use:   "inbound [body...]",
		Short: "Format an inbound channel message",
		Example: `  goclaw-envelope inbound --channel telegram --chat-type group --from "Family id:-100" --sender-name Alice --sender-id 42 dinner?`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			current, previous, err := ef.times()
			if err != nil {
				return err
			}
			opts := ef.options(cmd, cfg)
			out := envelope.FormatInbound(envelope.InboundParams{
				Channel:           channels.DisplayName(ef.channelID),
				From:              from,
				Body:              strings.Join(args, " "),
				Timestamp:         current,
				ChatType:          chatType,
				SenderLabel:       senderLabel,
				Sender:            sender,
				PreviousTimestamp: previous,
				Envelope:          &opts,
			})
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}
	ef.register(cmd)
	cmd.Flags().StringVar(&from, "from", "", `conversation label, e.g. "Family id:-100"`)
	cmd.Flags().StringVar(&chatType, "chat-type", "", `"direct", "dm", "group" or "channel"`)
	cmd.Flags().StringVar(&senderLabel, "sender-label", "", "explicit sender label (wins over --sender-*)")
	cmd.Flags().StringVar(&sender.Name, "sender-name", "", "sender display name")
	cmd.Flags().StringVar(&sender.Username, "sender-username", "", "sender username")
	cmd.Flags().StringVar(&sender.E164, "sender-e164", "", "sender phone number")
	cmd.Flags().StringVar(&sender.ID, "sender-id", "", "sender platform ID")
	return cmd
}
