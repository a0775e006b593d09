package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"cronwatch/internal/logging"
	"cronwatch/internal/ticket"
)

func newTestTicketCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "test-ticket",
		Short: "Dispatch a low-priority test ticket to verify credentials",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if !cfg.TicketsConfigured() {
				return errors.New("tickets are not configured; set tickets.base_url, tickets.project, tickets.username, and tickets.api_key")
			}

			logger, err := logging.NewFromConfig(cfg)
			if err != nil {
				return fmt.Errorf("build logger: %w", err)
			}

			client, err := ticket.NewClient(ticket.Options{
				BaseURL:     cfg.Tickets.BaseURL,
				Project:     cfg.Tickets.Project,
				Credentials: ticket.Credentials{Username: cfg.Tickets.Username, APIKey: cfg.Tickets.APIKey},
				Priority:    "low",
				Status:      cfg.Tickets.Status,
				Type:        cfg.Tickets.TicketType,
				Timeout:     time.Duration(cfg.Tickets.RequestTimeout) * time.Second,
				Logger:      logger,
			})
			if err != nil {
				return err
			}

			summary := "cronwatch test ticket"
			description := fmt.Sprintf("Connectivity test from cronwatch at %s. Safe to close.",
				time.Now().UTC().Format(time.RFC1123))
			if err := client.Create(cmd.Context(), summary, description); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Test ticket dispatched")
			return nil
		},
	}
}
