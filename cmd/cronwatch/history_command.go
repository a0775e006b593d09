package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"cronwatch/internal/history"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent check runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			store, err := history.Open(cfg.HistoryPath())
			if err != nil {
				return fmt.Errorf("open run history: %w", err)
			}
			defer store.Close()

			entries, err := store.Recent(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No check runs recorded yet")
				return nil
			}

			rows := make([]runRow, 0, len(entries))
			for _, entry := range entries {
				detail := entry.Detail
				if len(detail) > 60 {
					detail = detail[:60] + "..."
				}
				rows = append(rows, runRow{
					When:    entry.CreatedAt.UTC().Format(time.RFC3339),
					Outcome: entry.Outcome,
					LastRun: formatEpoch(entry.LastRun),
					Age:     formatSeconds(entry.Age),
					RunID:   shortID(entry.RunID),
					Detail:  detail,
				})
			}

			fmt.Fprintln(cmd.OutOrStdout(), renderRuns(rows))
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of runs to list")
	return cmd
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
