package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"cronwatch/internal/cms"
	"cronwatch/internal/logging"
	"cronwatch/internal/staleness"
	"cronwatch/internal/state"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the current staleness verdict without dispatching",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			logger, err := logging.NewFromConfig(cfg)
			if err != nil {
				return fmt.Errorf("build logger: %w", err)
			}

			source := cms.NewCLI(
				cms.WithBinary(cfg.Source.Binary),
				cms.WithSiteURL(cfg.Site.URL),
				cms.WithTimeout(time.Duration(cfg.Source.Timeout)*time.Second),
				cms.WithLogger(logger),
			)
			store, err := state.NewStore(cfg.Monitor.StateFile, logger)
			if err != nil {
				return err
			}

			now := time.Now().Unix()
			lastRun := source.LastRun(cmd.Context())
			eval := staleness.Evaluate(now, lastRun, cfg.Monitor.ThresholdSeconds)
			lastSent := store.Read()
			suppressed := eval.Stale && lastSent >= eval.LastRun

			site := cfg.Site.DisplayName
			if site == "" {
				site = cfg.Site.URL
			}
			if site == "" {
				site = "(default)"
			}

			fmt.Fprintln(cmd.OutOrStdout(), renderFields([][2]string{
				{"Site", site},
				{"Last cron run", formatEpoch(eval.LastRun)},
				{"Age", formatSeconds(eval.Age)},
				{"Threshold", formatSeconds(eval.Threshold)},
				{"Stale", yesNo(eval.Stale)},
				{"Last notified", formatEpoch(lastSent)},
				{"Suppressed", yesNo(suppressed)},
				{"State file", store.Path()},
			}))
			return nil
		},
	}
}
