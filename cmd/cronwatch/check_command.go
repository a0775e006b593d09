package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"cronwatch/internal/cms"
	"cronwatch/internal/history"
	"cronwatch/internal/logging"
	"cronwatch/internal/monitor"
	"cronwatch/internal/state"
	"cronwatch/internal/ticket"
)

func newCheckCommand(ctx *commandContext) *cobra.Command {
	var dryRun bool
	var siteOverride string

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Run one staleness check and dispatch a ticket if one is owed",
		Long: `Check reads the CMS's last-cron-run timestamp, judges staleness against
the configured threshold, and opens a tracking ticket unless one already
covers the current staleness window. Exit code 0 means fresh, suppressed,
or successfully dispatched; non-zero means the ticket could not be sent.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			logger, err := logging.NewFromConfig(cfg)
			if err != nil {
				return fmt.Errorf("build logger: %w", err)
			}

			siteURL := cfg.Site.URL
			statePath := cfg.Monitor.StateFile
			if s := strings.TrimSpace(siteOverride); s != "" {
				siteURL = s
				statePath = cfg.StateFileFor(s)
			}

			if cfg.Monitor.LockState {
				lock, err := state.NewLock(statePath)
				if err != nil {
					return err
				}
				if err := lock.Acquire(); err != nil {
					return err
				}
				defer lock.Release()
			}

			store, err := state.NewStore(statePath, logger)
			if err != nil {
				return err
			}

			source := cms.NewCLI(
				cms.WithBinary(cfg.Source.Binary),
				cms.WithSiteURL(siteURL),
				cms.WithTimeout(time.Duration(cfg.Source.Timeout)*time.Second),
				cms.WithLogger(logger),
			)

			var dispatcher ticket.Dispatcher
			if cfg.TicketsConfigured() {
				client, err := ticket.NewClient(ticket.Options{
					BaseURL:     cfg.Tickets.BaseURL,
					Project:     cfg.Tickets.Project,
					Credentials: ticket.Credentials{Username: cfg.Tickets.Username, APIKey: cfg.Tickets.APIKey},
					Priority:    cfg.Tickets.Priority,
					Status:      cfg.Tickets.Status,
					Type:        cfg.Tickets.TicketType,
					Timeout:     time.Duration(cfg.Tickets.RequestTimeout) * time.Second,
					Logger:      logger,
				})
				if err != nil {
					return err
				}
				dispatcher = client
			}

			opts := monitor.Options{
				SiteName:         cfg.Site.DisplayName,
				SiteURL:          siteURL,
				ThresholdSeconds: cfg.Monitor.ThresholdSeconds,
				DryRun:           dryRun,
				Source:           source,
				Store:            store,
				Dispatcher:       dispatcher,
				Logger:           logger,
			}

			if cfg.History.Enabled {
				histStore, err := history.Open(cfg.HistoryPath())
				if err != nil {
					logger.Warn("run history unavailable", "error", err)
				} else {
					defer histStore.Close()
					opts.History = histStore
				}
			}

			m, err := monitor.New(opts)
			if err != nil {
				return err
			}

			result, err := m.Run(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			switch result.Outcome {
			case monitor.OutcomeFresh:
				fmt.Fprintf(out, "Cron is fresh: last ran %s (age %s, threshold %s)\n",
					formatEpoch(result.Evaluation.LastRun),
					formatSeconds(result.Evaluation.Age),
					formatSeconds(result.Evaluation.Threshold))
			case monitor.OutcomeSuppressed:
				fmt.Fprintf(out, "Cron is stale but already ticketed (last notified %s)\n",
					formatEpoch(result.LastSent))
			case monitor.OutcomeDryRun:
				fmt.Fprintf(out, "Dry run; ticket that would be dispatched:\n\nSummary: %s\n\n%s\n",
					result.Summary, result.Description)
			case monitor.OutcomeDispatched:
				fmt.Fprintf(out, "Ticket dispatched: %s\n", result.Summary)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Report the would-be ticket without dispatching or recording state")
	cmd.Flags().StringVar(&siteOverride, "site", "", "Override the configured site URL (uses that site's own state file)")
	return cmd
}
