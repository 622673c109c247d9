package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/rowanfields/pricelens/internal/cli"
)

func acceptCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "accept",
		Short: "Manage bulk-accepted item codes",
		Long: `Bulk-accepting an item code forces every one of its rows into the
passed category for classification and display. The underlying data is
untouched: confidence and computed cost keep their derived values.`,
	}

	cmd.AddCommand(acceptAddCmd())
	cmd.AddCommand(acceptRemoveCmd())
	cmd.AddCommand(acceptListCmd())
	return cmd
}

func acceptAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add CODE...",
		Short: "Accept all rows of the given item codes",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			sessionName, _ := cmd.Flags().GetString("session")

			store, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			record, err := store.GetSession(ctx, sessionName)
			if err != nil {
				return err
			}
			for _, code := range args {
				if err := store.AddAcceptedItem(ctx, record.ID, code); err != nil {
					return err
				}
			}
			slog.Info("Items accepted", "session", sessionName, "count", len(args))
			return nil
		},
	}

	cmd.Flags().String("session", "", "review session name (required)")
	_ = cmd.MarkFlagRequired("session")
	return cmd
}

func acceptRemoveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remove CODE...",
		Short: "Revoke acceptance of the given item codes",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			sessionName, _ := cmd.Flags().GetString("session")

			store, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			record, err := store.GetSession(ctx, sessionName)
			if err != nil {
				return err
			}
			for _, code := range args {
				if err := store.RemoveAcceptedItem(ctx, record.ID, code); err != nil {
					return err
				}
			}
			slog.Info("Items unaccepted", "session", sessionName, "count", len(args))
			return nil
		},
	}

	cmd.Flags().String("session", "", "review session name (required)")
	_ = cmd.MarkFlagRequired("session")
	return cmd
}

func acceptListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List a session's accepted item codes",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			sessionName, _ := cmd.Flags().GetString("session")

			store, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			record, err := store.GetSession(ctx, sessionName)
			if err != nil {
				return err
			}
			codes, err := store.GetAcceptedItems(ctx, record.ID)
			if err != nil {
				return err
			}
			if len(codes) == 0 {
				fmt.Println(cli.SubtleStyle.Render("no accepted items"))
				return nil
			}
			for _, code := range codes {
				fmt.Println(code)
			}
			return nil
		},
	}

	cmd.Flags().String("session", "", "review session name (required)")
	_ = cmd.MarkFlagRequired("session")
	return cmd
}
