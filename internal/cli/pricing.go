package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/me/insadmin/internal/pricing"
	"github.com/me/insadmin/pkg/model"
)

func newPricingCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pricing",
		Short: "Inspect and reprice the tariff tables",
	}
	cmd.AddCommand(newPricingPreviewCmd())
	return cmd
}

func newPricingPreviewCmd() *cobra.Command {
	var (
		percent float64
		scope   string
		filter  pricing.Filter
		apply   bool
	)

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Show the effect of a percent change on the matching rows",
		Long:  "Prices are multiplied by (1 + percent/100), rounded half up and floored at 0. Nothing is saved unless --apply is given.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("percent") {
				return fmt.Errorf("--percent is required")
			}
			token, err := requireToken()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			out := cmd.OutOrStdout()
			sc := model.ParsePricingScope(scope)
			defaults := pricing.BuiltinDefaults()

			cfg, err := client.GetPricing(ctx, token)
			if err != nil {
				return fmt.Errorf("load pricing: %w", err)
			}
			saved := pricing.Normalize(cfg, defaults)
			rows := pricing.Rows(saved, sc, defaults, filter)
			draft, err := pricing.ApplyPercent(saved, sc, rows, percent)
			if err != nil {
				return err
			}

			next := draft.Prices(sc)
			fmt.Fprintf(out, "%-32s %-14s %-10s %14s %14s\n", "KEY", "GROUP", "DURATION", "CURRENT", "NEW")
			for _, r := range rows {
				fmt.Fprintf(out, "%-32s %-14s %-10s %14s %14s\n", truncate(r.Key, 32), r.Group, r.Duration, money(r.Value), money(next[r.Key]))
			}
			changed := len(pricing.DirtyKeys(saved, draft, sc, defaults))
			fmt.Fprintf(out, "\n%d rows matched, %d changed (%+g%%, %s)\n", len(rows), changed, percent, sc)

			if !apply {
				fmt.Fprintln(out, "Preview only; rerun with --apply to save.")
				return nil
			}
			if changed == 0 {
				fmt.Fprintln(out, "Nothing to save.")
				return nil
			}
			if err := client.PutPricing(ctx, token, draft); err != nil {
				return fmt.Errorf("save pricing: %w", err)
			}
			logger.Info("pricing percent applied", "scope", string(sc), "percent", percent, "rows", len(rows))
			fmt.Fprintf(out, "Saved %d prices.\n", changed)
			return nil
		},
	}

	cmd.Flags().Float64Var(&percent, "percent", 0, "Percent change, e.g. 10 or -5")
	cmd.Flags().StringVar(&scope, "scope", string(model.ScopeInternal), "Tariff table (internal, border)")
	cmd.Flags().StringVar(&filter.Q, "q", "", "Search key, label, group or duration")
	cmd.Flags().StringVar(&filter.Group, "group", "", "Group filter")
	cmd.Flags().StringVar(&filter.Duration, "duration", "", "Duration filter")
	cmd.Flags().BoolVar(&apply, "apply", false, "Save the new prices")
	return cmd
}
