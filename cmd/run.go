package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/mabhi256/havbench/internal/loader"
	"github.com/mabhi256/havbench/internal/profiler"
	"github.com/mabhi256/havbench/internal/profiler/clock"
	"github.com/mabhi256/havbench/internal/report"
	"github.com/mabhi256/havbench/utils"
	"github.com/spf13/cobra"
)

var runFlags struct {
	profile    bool
	verbose    bool
	jsonReport bool
	radiusKm   float64
}

var runCmd = &cobra.Command{
	Use:   "run <file.json> [file.havans]",
	Short: "Parse a corpus, recompute distances, and report where the cycles went",
	Long: `run tokenizes and parses file.json with the hand-written core
parser, recomputes every pair's Haversine distance, and if a havans
answer file is given, checks the recomputed average against it. With
--profile (the default) each of the read, parse, and sum passes is
wrapped in a profiler section and the resulting call tree is printed.`,
	Args:              cobra.RangeArgs(1, 2),
	ValidArgsFunction: utils.CompleteFilesByExtension([]string{".json", ".havans"}, false),
	RunE:              runRun,
}

func init() {
	runCmd.Flags().BoolVar(&runFlags.profile, "profile", true, "wrap read/parse/sum in profiler sections and report the call tree")
	runCmd.Flags().BoolVar(&runFlags.verbose, "verbose", false, "print per-pair mismatches against the answer file")
	runCmd.Flags().BoolVar(&runFlags.jsonReport, "json-report", false, "emit the profile tree as JSON instead of a text table")
	runCmd.Flags().Float64Var(&runFlags.radiusKm, "radius", 0, "sphere radius in km (defaults to the reference 6372.8)")

	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg := loader.RunConfig{
		InputPath: args[0],
		RadiusKm:  runFlags.radiusKm,
		Verbose:   runFlags.verbose,
	}
	if len(args) == 2 {
		cfg.AnswerPath = args[1]
	}

	var prof *profiler.Profiler
	if runFlags.profile {
		prof = profiler.New(0)
		prof.Start()
		cfg.Profile = prof
	}

	result, err := loader.Run(cfg)

	var tree *profiler.Tree
	if prof != nil {
		var collectErr error
		tree, collectErr, _ = prof.StopAndCollect(estimateCPUFreq(), "")
		if collectErr != nil && err == nil {
			err = fmt.Errorf("run: reconstructing profile: %w", collectErr)
		}
	}

	if err != nil {
		return err
	}

	if tree != nil {
		if runFlags.jsonReport {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			if err := enc.Encode(tree); err != nil {
				return fmt.Errorf("run: encoding json report: %w", err)
			}
		} else {
			report.PrintTree(os.Stdout, tree)
		}
	}

	report.PrintSummary(os.Stdout, result)
	return nil
}

func estimateCPUFreq() uint64 {
	return clock.EstimateFrequency(0)
}
