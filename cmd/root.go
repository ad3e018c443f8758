package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "havbench",
	Short: "Haversine corpus generator and profiling loader",
	Long: `havbench generates Haversine coordinate-pair corpora and profiles
the hand-written JSON loader that recomputes their distances.

Run "havbench completion --help" for shell tab-completion setup;
cobra generates that subcommand automatically.`,
}

// Execute runs the root command, exiting non-zero on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
