package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nextlevelbuilder/goclaw-envelope/internal/config"
)

func watchCmd() *cobra.Command {
	var (
		channelID string
		asJSON    bool
	)
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Print effective envelope options and re-print them whenever the config file changes",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if err := printView(out, resolveView(cfg, channelID), asJSON); err != nil {
				return err
			}

			w, err := config.NewWatcher(resolveConfigPath(), func(next *config.Config) {
				cfg.ReplaceFrom(next)
				fmt.Fprintln(out, "---")
				if err := printView(out, resolveView(cfg, channelID), asJSON); err != nil {
					fmt.Fprintf(out, "print: %v\n", err)
				}
			})
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return w.Run(ctx)
		},
	}
	cmd.Flags().StringVar(&channelID, "channel", "", "channel ID (empty = defaults only)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}
