package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"github.com/nextlevelbuilder/goclaw-envelope/internal/config"
	"github.com/nextlevelbuilder/goclaw-envelope/internal/envelope"
)

type resolvedView struct {
	Channel string                         `json:"channel,omitempty"`
	Inbound envelope.InboundContextOptions `json:"inboundContext"`
	Format  envelope.Options               `json:"envelope"`
}

func resolveView(cfg *config.Config, channelID string) resolvedView {
	return resolvedView{
		Channel: channelID,
		Inbound: envelope.ResolveInboundContextOptions(cfg, channelID),
		Format:  envelope.ResolveFormatOptions(cfg, channelID),
	}
}

func resolveCmd() *cobra.Command {
	var (
		channelID string
		asJSON    bool
	)
	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Show the effective envelope options for a channel",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			return printView(cmd.OutOrStdout(), resolveView(cfg, channelID), asJSON)
		},
	}
	cmd.Flags().StringVar(&channelID, "channel", "", "channel ID (empty = defaults only)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

func printView(w io.Writer, v resolvedView, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}

	channel := v.Channel
	if channel == "" {
		channel = "(defaults)"
	}
	timezone := v.Format.Timezone
	if timezone == "" {
		timezone = "local"
	}
	rows := [][2]string{
		{"channel", channel},
		{"includeSystemEnvelope", strconv.FormatBool(v.Inbound.IncludeSystemEnvelope)},
		{"includeConversationInfo", strconv.FormatBool(v.Inbound.IncludeConversationInfo)},
		{"includeSenderInfo", strconv.FormatBool(v.Inbound.IncludeSenderInfo)},
		{"timezone", timezone},
		{"userTimezone", v.Format.UserTimezone},
		{"includeTimestamp", boolOrDefault(v.Format.IncludeTimestamp)},
		{"includeElapsed", boolOrDefault(v.Format.IncludeElapsed)},
	}
	printTable(w, rows)
	return nil
}

func boolOrDefault(b *bool) string {
	if b == nil {
		return "true"
	}
	return strconv.FormatBool(*b)
}

// printTable writes two aligned columns; widths are display widths so
// CJK or emoji channel names line up.
func printTable(w io.Writer, rows [][2]string) {
	width := 0
	for _, r := range rows {
		if n := runewidth.StringWidth(r[0]); n > width {
			width = n
		}
	}
	for _, r := range rows {
		fmt.Fprintf(w, "  %s  %s\n", runewidth.FillRight(r[0], width), r[1])
	}
}
