package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(hoursCmd)
}

var hoursCmd = &cobra.Command{
	Use:   "hours USER_ID...",
	Short: "Show approved hours for one or more users",
	Long: `Compute approved hours for the given users, bypassing the dashboard
cache. Users whose lookup fails are reported as degraded with 0 hours.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runHours,
}

func runHours(cmd *cobra.Command, args []string) error {
	ids, err := parseIDs(args)
	if err != nil {
		return err
	}

	results, err := svc.ApprovedHoursBatch(cmd.Context(), ids)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	}
	if outputJSON {
		return printJSON(os.Stdout, results)
	}
	printApprovedHours(os.Stdout, results)
	return nil
}

func parseIDs(args []string) ([]uint, error) {
	ids := make([]uint, 0, len(args))
	for _, a := range args {
		v, err := strconv.ParseUint(a, 10, 64)
		if err != nil || v == 0 {
			return nil, fmt.Errorf("invalid id %q", a)
		}
		ids = append(ids, uint(v))
	}
	return ids, nil
}
