package main

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/rowanfields/pricelens/internal/cli"
	"github.com/rowanfields/pricelens/internal/engine"
	"github.com/rowanfields/pricelens/internal/model"
)

func overridesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "overrides",
		Short: "Manage reviewer corrections for individual invoice rows",
	}

	cmd.AddCommand(overridesSetCmd())
	cmd.AddCommand(overridesClearCmd())
	cmd.AddCommand(overridesListCmd())
	return cmd
}

func overridesSetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Set a correction on one row",
		Long: `Set validates the correction against the invoice and catalog before
saving it: a split with a negative leg, or whose quantities exceed the
purchased quantity, is rejected outright, never clamped.`,
		RunE: runOverridesSet,
	}

	cmd.Flags().String("session", "", "review session name (required)")
	cmd.Flags().String("invoices", "", "invoice dataset CSV (required)")
	cmd.Flags().String("catalog", "", "price catalog CSV (required)")
	cmd.Flags().Int("row", -1, "row index to correct (required)")
	cmd.Flags().Int("std-qty", -1, "standard-priced quantity")
	cmd.Flags().Int("promo-qty", -1, "promo-priced quantity")
	cmd.Flags().String("std-price", "", "explicit standard unit price")
	cmd.Flags().String("promo-price", "", "explicit promo unit price")
	cmd.Flags().String("invoice-date", "", "reference date for rows without one (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("session")
	_ = cmd.MarkFlagRequired("invoices")
	_ = cmd.MarkFlagRequired("catalog")
	_ = cmd.MarkFlagRequired("row")

	return cmd
}

func runOverridesSet(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	sessionName, _ := cmd.Flags().GetString("session")
	invoicePath, _ := cmd.Flags().GetString("invoices")
	catalogPath, _ := cmd.Flags().GetString("catalog")
	rowIndex, _ := cmd.Flags().GetInt("row")
	refDateFlag, _ := cmd.Flags().GetString("invoice-date")

	override := model.RowOverride{}
	if cmd.Flags().Changed("std-qty") {
		v, _ := cmd.Flags().GetInt("std-qty")
		override.StandardQty = &v
	}
	if cmd.Flags().Changed("promo-qty") {
		v, _ := cmd.Flags().GetInt("promo-qty")
		override.PromoQty = &v
	}
	override.StandardPrice, _ = cmd.Flags().GetString("std-price")
	override.PromoPrice, _ = cmd.Flags().GetString("promo-price")

	refDate, err := parseReferenceDate(refDateFlag)
	if err != nil {
		return err
	}

	rows, entries, err := loadInputs(invoicePath, catalogPath)
	if err != nil {
		return err
	}

	store, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	record, session, err := loadSession(ctx, store, sessionName)
	if err != nil {
		return err
	}

	eng := engine.New(rows, entries, engine.WithReferenceDate(refDate))
	if err := eng.ApplyOverride(&session, rowIndex, override); err != nil {
		var conflict *engine.QuantityConflictError
		if errors.As(err, &conflict) {
			fmt.Println(cli.ErrorStyle.Render("override rejected: " + conflict.Error()))
		}
		return err
	}

	if override.Empty() {
		if err := store.DeleteOverride(ctx, record.ID, rowIndex); err != nil {
			return err
		}
	} else if err := store.SaveOverride(ctx, record.ID, rowIndex, override); err != nil {
		return err
	}

	slog.Info("Override saved", "session", sessionName, "row", rowIndex)
	return nil
}

func overridesClearCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove the correction from one row",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			sessionName, _ := cmd.Flags().GetString("session")
			rowIndex, _ := cmd.Flags().GetInt("row")

			store, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			record, err := store.GetSession(ctx, sessionName)
			if err != nil {
				return err
			}
			if err := store.DeleteOverride(ctx, record.ID, rowIndex); err != nil {
				return err
			}
			slog.Info("Override cleared", "session", sessionName, "row", rowIndex)
			return nil
		},
	}

	cmd.Flags().String("session", "", "review session name (required)")
	cmd.Flags().Int("row", -1, "row index (required)")
	_ = cmd.MarkFlagRequired("session")
	_ = cmd.MarkFlagRequired("row")
	return cmd
}

func overridesListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the stored corrections for a session",
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
			overrides, err := store.GetOverrides(ctx, record.ID)
			if err != nil {
				return err
			}
			if len(overrides) == 0 {
				fmt.Println(cli.SubtleStyle.Render("no overrides stored"))
				return nil
			}
			for rowIndex, ov := range overrides {
				fmt.Printf("row %d: %s\n", rowIndex, describeOverride(ov))
			}
			return nil
		},
	}

	cmd.Flags().String("session", "", "review session name (required)")
	_ = cmd.MarkFlagRequired("session")
	return cmd
}

func describeOverride(ov model.RowOverride) string {
	desc := ""
	if ov.StandardQty != nil {
		desc += fmt.Sprintf("std-qty=%d ", *ov.StandardQty)
	}
	if ov.PromoQty != nil {
		desc += fmt.Sprintf("promo-qty=%d ", *ov.PromoQty)
	}
	if ov.StandardPrice != "" {
		desc += "std-price=" + ov.StandardPrice + " "
	}
	if ov.PromoPrice != "" {
		desc += "promo-price=" + ov.PromoPrice + " "
	}
	if desc == "" {
		return "(empty)"
	}
	return desc[:len(desc)-1]
}
