// Package loader orchestrates the generator's JSON output through the
// tokenizer/parser core, timing each pass with the profiler facade and
// optionally checking the recomputed distances against an answer file.
package loader

import (
	"fmt"
	"os"

	"github.com/mabhi256/havbench/internal/haversine"
	"github.com/mabhi256/havbench/internal/json"
	"github.com/mabhi256/havbench/internal/profiler"
)

// RunConfig controls a single Run.
type RunConfig struct {
	InputPath  string
	AnswerPath string
	RadiusKm   float64
	Verbose    bool
	Profile    *profiler.Profiler
}

// Mismatch records one recomputed distance that disagreed with the
// answer file by more than the tolerance.
type Mismatch struct {
	Index     int
	Got, Want float64
}

// Report is everything Run produces: the recomputed average, the
// parsed pair count, and any answer-file mismatches found.
type Report struct {
	PairCount    int
	Avg          float64
	Distances    []float64
	Mismatches   []Mismatch
	AnswerTested bool
	AvgMismatch  bool
	AnswerAvg    float64
}

// toleranceDistance is the per-pair comparison tolerance spec scenario
// 4 specifies.
const toleranceDistance = 1e-4

func (c RunConfig) debugf(format string, args ...any) {
	if c.Verbose {
		fmt.Fprintf(os.Stderr, "[loader] "+format+"\n", args...)
	}
}

// Run reads InputPath, parses it, recomputes every pair's distance,
// and (if AnswerPath is set) checks the result against the answer
// file. Each of the three passes is wrapped in a profiler section
// named "read", "parse", and "sum" when cfg.Profile is non-nil.
func Run(cfg RunConfig) (*Report, error) {
	radius := cfg.RadiusKm
	if radius == 0 {
		radius = haversine.EarthRadiusKm
	}

	raw, err := readFile(cfg)
	if err != nil {
		return nil, err
	}

	root, err := parseCorpus(cfg, raw)
	if err != nil {
		return nil, err
	}

	report, err := sumDistances(cfg, root, radius)
	if err != nil {
		return nil, err
	}

	if cfg.AnswerPath != "" {
		if err := verifyAnswer(cfg, report); err != nil {
			return nil, err
		}
	}

	return report, nil
}

func readFile(cfg RunConfig) ([]byte, error) {
	var guard *profiler.Guard
	if cfg.Profile != nil {
		guard = cfg.Profile.Section("read")
		defer guard.End()
	}

	raw, err := os.ReadFile(cfg.InputPath)
	if err != nil {
		return nil, fmt.Errorf("loader: reading %s: %w", cfg.InputPath, err)
	}
	return raw, nil
}

func parseCorpus(cfg RunConfig, raw []byte) (*json.Element, error) {
	var guard *profiler.Guard
	if cfg.Profile != nil {
		guard = cfg.Profile.Section("parse")
		defer guard.End()
	}

	result := json.Parse(json.NewByteView(raw))
	root, parseErr := result.Unwrap()
	if parseErr != nil {
		return nil, fmt.Errorf("loader: %s", parseErr.Error())
	}
	return root, nil
}

func sumDistances(cfg RunConfig, root *json.Element, radius float64) (*Report, error) {
	var guard *profiler.Guard
	if cfg.Profile != nil {
		guard = cfg.Profile.Section("sum")
		defer guard.End()
	}

	pairs := root.FindByLabel("pairs")
	if pairs == nil {
		return nil, fmt.Errorf("loader: root object has no \"pairs\" field")
	}

	var sum float64
	var distances []float64
	for pair := range pairs.All() {
		x0, err := component(pair, "x0")
		if err != nil {
			return nil, err
		}
		y0, err := component(pair, "y0")
		if err != nil {
			return nil, err
		}
		x1, err := component(pair, "x1")
		if err != nil {
			return nil, err
		}
		y1, err := component(pair, "y1")
		if err != nil {
			return nil, err
		}

		d := haversine.Distance(x0, y0, x1, y1, radius)
		distances = append(distances, d)
		sum += d
	}

	if len(distances) == 0 {
		return nil, fmt.Errorf("loader: \"pairs\" array is empty")
	}

	return &Report{PairCount: len(distances), Avg: sum / float64(len(distances)), Distances: distances}, nil
}

func component(pair *json.Element, label string) (float64, error) {
	el := pair.FindByLabel(label)
	if el == nil {
		return 0, fmt.Errorf("loader: pair at %s missing field %q", pair.Location, label)
	}
	if el.Kind != json.Number {
		return 0, fmt.Errorf("loader: field %q at %s is not a number", label, el.Location)
	}
	return el.NumberValue, nil
}

func verifyAnswer(cfg RunConfig, report *Report) error {
	f, err := os.Open(cfg.AnswerPath)
	if err != nil {
		return fmt.Errorf("loader: opening answer file %s: %w", cfg.AnswerPath, err)
	}
	defer f.Close()

	answer, err := haversine.ReadAnswer(f)
	if err != nil {
		return fmt.Errorf("loader: decoding answer file: %w", err)
	}

	report.AnswerTested = true
	report.AnswerAvg = answer.Avg

	if len(answer.Distances) != report.PairCount {
		cfg.debugf("answer file has %d distances, corpus has %d pairs", len(answer.Distances), report.PairCount)
	}

	n := min(len(answer.Distances), len(report.Distances))
	for i := 0; i < n; i++ {
		diff := report.Distances[i] - answer.Distances[i]
		if diff > toleranceDistance || diff < -toleranceDistance {
			report.Mismatches = append(report.Mismatches, Mismatch{Index: i, Got: report.Distances[i], Want: answer.Distances[i]})
			cfg.debugf("pair %d mismatch: got %.10f, want %.10f", i, report.Distances[i], answer.Distances[i])
		}
	}

	if diff := report.Avg - answer.Avg; diff > toleranceDistance || diff < -toleranceDistance {
		report.AvgMismatch = true
		cfg.debugf("average mismatch: got %.10f, want %.10f", report.Avg, answer.Avg)
	}

	return nil
}
