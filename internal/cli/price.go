package cli

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(priceCmd)

	priceCmd.Flags().UintP("user", "u", 0, "User the price is shown to")
	_ = priceCmd.MarkFlagRequired("user")
}

var priceCmd = &cobra.Command{
	Use:   "price ITEM_ID",
	Short: "Show the price a user currently sees for an item",
	Args:  cobra.ExactArgs(1),
	RunE:  runPrice,
}

func runPrice(cmd *cobra.Command, args []string) error {
	itemID, err := strconv.ParseUint(args[0], 10, 64)
	if err != nil || itemID == 0 {
		return fmt.Errorf("invalid item id %q", args[0])
	}
	userID, _ := cmd.Flags().GetUint("user")

	quote, err := svc.Quote(cmd.Context(), uint(itemID), userID)
	if err != nil {
		return fmt.Errorf("price item %d: %w", itemID, err)
	}
	if outputJSON {
		return printJSON(os.Stdout, quote)
	}

	fmt.Fprintf(os.Stdout, "item %d for user %d: %d shells (base %d)\n", quote.ItemID, quote.UserID, quote.Price, quote.BasePrice)
	if quote.Randomized {
		fmt.Fprintf(os.Stdout, "randomized, valid until %s\n", quote.ValidUntil.Format(time.RFC3339))
	}
	return nil
}
