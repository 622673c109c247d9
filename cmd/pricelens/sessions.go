package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/rowanfields/pricelens/internal/cli"
	"github.com/rowanfields/pricelens/internal/engine"
)

func sessionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sessions",
		Short: "Manage review sessions",
	}

	cmd.AddCommand(sessionsCreateCmd())
	cmd.AddCommand(sessionsListCmd())
	cmd.AddCommand(sessionsThresholdCmd())
	return cmd
}

func sessionsCreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create NAME",
		Short: "Create a named review session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			threshold, _ := cmd.Flags().GetFloat64("threshold")

			store, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			record, err := store.CreateSession(ctx, args[0], engine.ClampThreshold(threshold))
			if err != nil {
				return err
			}
			slog.Info("Session created", "name", record.Name, "id", record.ID, "threshold", record.Threshold)
			return nil
		},
	}

	cmd.Flags().Float64("threshold", 0.95, "confidence threshold (0.80-1.00)")
	return cmd
}

func sessionsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List review sessions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			records, err := store.ListSessions(ctx)
			if err != nil {
				return err
			}
			if len(records) == 0 {
				fmt.Println(cli.SubtleStyle.Render("no sessions"))
				return nil
			}
			for _, record := range records {
				fmt.Printf("%s  threshold=%.2f  updated=%s\n",
					cli.BoldStyle.Render(record.Name),
					record.Threshold,
					record.UpdatedAt.Format("2006-01-02 15:04"))
			}
			return nil
		},
	}
}

func sessionsThresholdCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set-threshold NAME VALUE",
		Short: "Change a session's confidence threshold",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			var threshold float64
			if _, err := fmt.Sscanf(args[1], "%f", &threshold); err != nil {
				return fmt.Errorf("invalid threshold %q: %w", args[1], err)
			}

			store, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			record, err := store.GetSession(ctx, args[0])
			if err != nil {
				return err
			}
			clamped := engine.ClampThreshold(threshold)
			if err := store.UpdateThreshold(ctx, record.ID, clamped); err != nil {
				return err
			}
			slog.Info("Threshold updated", "session", record.Name, "threshold", clamped)
			return nil
		},
	}
	return cmd
}
