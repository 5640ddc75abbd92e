package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ManuelReschke/ShellEconomy/internal/pkg/economy"
)

func init() {
	rootCmd.AddCommand(recalcCmd)
	rootCmd.AddCommand(ratesCmd)

	recalcCmd.Flags().Float64("dollars-per-hour", 0, "Store a new global rate before recalculating")
}

var recalcCmd = &cobra.Command{
	Use:   "recalc",
	Short: "Recalculate the base price of every fixed item",
	Long: `Recalculate the base price of every fixed shop item with the stored
global rate. Items that failed to persist in an earlier run converge on rerun.
With --dollars-per-hour the new rate is saved first.`,
	Args: cobra.NoArgs,
	RunE: runRecalc,
}

func runRecalc(cmd *cobra.Command, args []string) error {
	dph, _ := cmd.Flags().GetFloat64("dollars-per-hour")

	var (
		report *economy.RecalcReport
		err    error
	)
	if cmd.Flags().Changed("dollars-per-hour") {
		report, err = svc.UpdateDollarsPerHour(cmd.Context(), dph)
	} else {
		report, err = svc.RecalculateFixedPrices(cmd.Context())
	}
	if err != nil {
		return fmt.Errorf("recalculate: %w", err)
	}
	if report == nil {
		fmt.Fprintln(os.Stdout, "Rate unchanged, nothing to recalculate.")
		return nil
	}

	if outputJSON {
		return printJSON(os.Stdout, report)
	}
	printReport(os.Stdout, report)
	if report.Failed > 0 {
		return fmt.Errorf("%d item(s) failed, rerun to converge", report.Failed)
	}
	return nil
}

var ratesCmd = &cobra.Command{
	Use:   "rates",
	Short: "Show the global rate config",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := svc.RateConfig(cmd.Context())
		if err != nil {
			return err
		}
		if outputJSON {
			return printJSON(os.Stdout, cfg)
		}
		fmt.Fprintf(os.Stdout, "dollars per hour:     %v\n", cfg.DollarsPerHour)
		fmt.Fprintf(os.Stdout, "random band (percent): %v - %v\n", cfg.PriceRandomMinPercent, cfg.PriceRandomMaxPercent)
		return nil
	},
}
