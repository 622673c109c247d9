package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/rowanfields/pricelens/internal/cli"
	"github.com/rowanfields/pricelens/internal/engine"
	"github.com/rowanfields/pricelens/internal/model"
)

func reconcileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reconcile",
		Short: "Reconcile an invoice dataset against a price catalog",
		Long: `Reconcile enriches every invoice row with its matched price period,
quantity split, confidence score and match category, then prints the
classification summary. With --session, stored overrides and
bulk-accepts are applied first.`,
		RunE: runReconcile,
	}

	cmd.Flags().String("invoices", "", "invoice dataset CSV (required)")
	cmd.Flags().String("catalog", "", "price catalog CSV (required)")
	cmd.Flags().String("session", "", "named review session to apply")
	cmd.Flags().Float64("threshold", 0.95, "confidence threshold (0.80-1.00)")
	cmd.Flags().String("invoice-date", "", "reference date for rows without one (YYYY-MM-DD)")
	cmd.Flags().Bool("json", false, "emit the enriched rows as JSON instead of the summary")
	_ = cmd.MarkFlagRequired("invoices")
	_ = cmd.MarkFlagRequired("catalog")

	return cmd
}

func runReconcile(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	invoicePath, _ := cmd.Flags().GetString("invoices")
	catalogPath, _ := cmd.Flags().GetString("catalog")
	sessionName, _ := cmd.Flags().GetString("session")
	threshold, _ := cmd.Flags().GetFloat64("threshold")
	refDateFlag, _ := cmd.Flags().GetString("invoice-date")
	asJSON, _ := cmd.Flags().GetBool("json")

	refDate, err := parseReferenceDate(refDateFlag)
	if err != nil {
		return err
	}

	rows, entries, err := loadInputs(invoicePath, catalogPath)
	if err != nil {
		return err
	}
	slog.Info("Loaded inputs", "invoice_rows", len(rows), "catalog_entries", len(entries))

	session := engine.NewSession(threshold)
	if sessionName != "" {
		store, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer func() { _ = store.Close() }()

		_, session, err = loadSession(ctx, store, sessionName)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("threshold") {
			session.Threshold = threshold
		}
	}

	opts := []engine.Option{engine.WithReferenceDate(refDate)}
	if !asJSON && len(rows) > 500 {
		bar := progressbar.NewOptions(len(rows),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionShowCount(),
			progressbar.OptionSetWidth(40),
			progressbar.OptionSetDescription("Reconciling rows..."),
		)
		opts = append(opts, engine.WithProgress(func(done, _ int) {
			_ = bar.Set(done)
		}))
	}

	view := engine.New(rows, entries, opts...).Recompute(session)

	if asJSON {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(view)
	}

	printSummary(view)
	return nil
}

func printSummary(view engine.View) {
	fmt.Println(cli.TitleStyle.Render("Reconciliation summary"))

	counts := view.Summary.Counts
	fmt.Printf("  %s %d\n", cli.SuccessStyle.Render("passed:   "), counts[model.CategoryPassed])
	fmt.Printf("  %s %d\n", cli.WarningStyle.Render("low-match:"), counts[model.CategoryLowMatch])
	fmt.Printf("  %s %d\n", cli.ErrorStyle.Render("not-found:"), counts[model.CategoryNotFound])
	fmt.Printf("  %s %d\n", cli.ErrorStyle.Render("no-period:"), counts[model.CategoryNoPeriod])

	for _, category := range []model.MatchCategory{model.CategoryLowMatch, model.CategoryNotFound, model.CategoryNoPeriod} {
		groups := view.Summary.Groups[category]
		if len(groups) == 0 {
			continue
		}
		fmt.Println(cli.BoldStyle.Render("\n" + string(category) + " by item:"))
		for _, group := range groups {
			fmt.Printf("  %s  rows %v\n", group.ItemCode, group.RowIndices)
		}
	}

	if len(view.Summary.Accepted) > 0 {
		fmt.Println(cli.SubtleStyle.Render(fmt.Sprintf("\nbulk-accepted items: %v", view.Summary.Accepted)))
	}

	fmt.Printf("\n  recorded total: %s  computed total: %s  difference: %s\n",
		view.Totals.RecordedCost.StringFixed(2),
		view.Totals.ComputedCost.StringFixed(2),
		view.Totals.CostDifference.StringFixed(2))
	fmt.Printf("  standard units: %d  promo units: %d\n",
		view.Totals.StdUnits, view.Totals.PromoUnits)

	for _, conflict := range view.Conflicts {
		fmt.Println(cli.ErrorStyle.Render(fmt.Sprintf(
			"  stale override bypassed on row %d: invalid split std=%d promo=%d (max %d)",
			conflict.RowIndex, conflict.StdQty, conflict.PromoQty, conflict.Max)))
	}
}
