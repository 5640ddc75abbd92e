package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/ManuelReschke/ShellEconomy/internal/pkg/economy"
)

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printReport(w io.Writer, r *economy.RecalcReport) {
	fmt.Fprintf(w, "run %s at %v $/h: %d updated, %d unchanged, %d failed\n",
		r.RunID, r.DollarsPerHour, r.Updated, r.Unchanged, r.Failed)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ITEM\tOLD\tNEW\tSTATUS\tERROR")
	for _, it := range r.Items {
		fmt.Fprintf(tw, "%d\t%d\t%d\t%s\t%s\n", it.ItemID, it.OldPrice, it.BasePrice, it.Status, it.Error)
	}
	_ = tw.Flush()
}

func printApprovedHours(w io.Writer, results []economy.ApprovedHours) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "USER\tAPPROVED\tPROJECTS\tDEGRADED")
	for _, r := range results {
		fmt.Fprintf(tw, "%d\t%g\t%d\t%t\n", r.UserID, r.Result.Total, len(r.Result.Contributions), r.Degraded)
	}
	_ = tw.Flush()
}
