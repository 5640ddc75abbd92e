// Package cli implements economyctl, the operator command line for the shell
// economy.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ManuelReschke/ShellEconomy/app/repository"
	"github.com/ManuelReschke/ShellEconomy/internal/pkg/database"
	"github.com/ManuelReschke/ShellEconomy/internal/pkg/economy"
	"github.com/ManuelReschke/ShellEconomy/internal/pkg/env"
	"github.com/ManuelReschke/ShellEconomy/internal/pkg/hours"
)

var (
	outputJSON bool
	svc        *economy.Service
)

var rootCmd = &cobra.Command{
	Use:   "economyctl",
	Short: "Operate the shell economy",
	Long: `economyctl talks directly to the economy database. It reruns price
recalculation, inspects approved hours and shows the prices users see.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if svc != nil {
			return nil
		}
		env.SetupEnvFile()
		database.SetupDatabase()
		repository.InitializeFactory(database.GetDB())
		svc = economy.NewService(repository.GetGlobalRepositories(),
			economy.WithWorkers(
				env.GetEnvInt("AGGREGATE_WORKERS", hours.DefaultWorkers),
				env.GetEnvInt("RECALC_WORKERS", 4),
			),
		)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&outputJSON, "json", false, "Print results as JSON")
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
