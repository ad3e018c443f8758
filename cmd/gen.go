package cmd

import (
	"fmt"
	"os"

	"github.com/mabhi256/havbench/internal/haversine"
	"github.com/mabhi256/havbench/utils"
	"github.com/spf13/cobra"
)

var genFlags struct {
	count        int
	seed         int64
	cluster      float64
	clusterCount int
	radiusKm     float64
	live         bool
}

var genCmd = &cobra.Command{
	Use:   "gen <file.json> <file.havans>",
	Short: "Generate a Haversine coordinate-pair corpus and its answer file",
	Long: `gen writes a JSON corpus of coordinate pairs in the
{"pairs":[{"x0":...,"y0":...,"x1":...,"y1":...},...],"avg":...,"count":...}
shape the loader's hand-written parser consumes, plus a little-endian
binary answer file the loader can verify recomputed distances against.`,
	Args:              cobra.ExactArgs(2),
	ValidArgsFunction: utils.CompleteFilesByExtension([]string{".json", ".havans"}, false),
	RunE:              runGen,
}

func init() {
	genCmd.Flags().IntVar(&genFlags.count, "count", 10000, "number of coordinate pairs to generate")
	genCmd.Flags().Int64Var(&genFlags.seed, "seed", 0, "PCG seed; identical seed and flags reproduce the same corpus")
	genCmd.Flags().Float64Var(&genFlags.cluster, "cluster", 0, "jitter radius in degrees; 0 generates uniformly, >0 clusters pairs around random centers")
	genCmd.Flags().IntVar(&genFlags.clusterCount, "cluster-count", 6, "number of cluster centers (with --cluster > 0)")
	genCmd.Flags().Float64Var(&genFlags.radiusKm, "radius", haversine.EarthRadiusKm, "sphere radius in km used for the reference distances")
	genCmd.Flags().BoolVar(&genFlags.live, "live", false, "show a live progress bar while generating")

	rootCmd.AddCommand(genCmd)
}

func runGen(cmd *cobra.Command, args []string) error {
	jsonPath, answerPath := args[0], args[1]

	mode := haversine.Uniform
	if genFlags.cluster > 0 {
		mode = haversine.Clustered
	}

	cfg := haversine.GenConfig{
		Count:         genFlags.count,
		Seed:          uint64(genFlags.seed),
		Mode:          mode,
		ClusterCount:  genFlags.clusterCount,
		JitterDegrees: genFlags.cluster,
		RadiusKm:      genFlags.radiusKm,
	}

	var corpus haversine.Corpus
	var err error
	if genFlags.live {
		corpus, err = runGenWithLiveProgress(cfg)
	} else {
		corpus, err = haversine.GenerateCorpus(cfg)
	}
	if err != nil {
		return fmt.Errorf("gen: %w", err)
	}

	jf, err := os.Create(jsonPath)
	if err != nil {
		return fmt.Errorf("gen: creating %s: %w", jsonPath, err)
	}
	defer jf.Close()
	if err := haversine.WriteJSON(jf, corpus); err != nil {
		return fmt.Errorf("gen: writing json: %w", err)
	}

	af, err := os.Create(answerPath)
	if err != nil {
		return fmt.Errorf("gen: creating %s: %w", answerPath, err)
	}
	defer af.Close()
	if err := haversine.WriteAnswer(af, corpus); err != nil {
		return fmt.Errorf("gen: writing answer: %w", err)
	}

	jsonSize := fileSize(jsonPath)
	answerSize := fileSize(answerPath)
	fmt.Printf("%s %d pairs -> %s (%s), answer: %s (%s)\n",
		utils.GoodStyle.Render("✓"), genFlags.count, jsonPath, jsonSize, answerPath, answerSize)
	return nil
}

// fileSize stats path and renders its size the way the teacher reports
// heap dump sizes; a stat failure just prints as 0B rather than
// failing a generation that already succeeded.
func fileSize(path string) utils.MemorySize {
	info, err := os.Stat(path)
	if err != nil {
		return 0
	}
	return utils.MemorySize(info.Size())
}
