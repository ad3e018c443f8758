// Package report renders a reconstructed profiler tree and a loader
// run as styled terminal output, in the teacher's lipgloss severity
// convention (internal/tui/metrics.go, internal/tui/trends.go).
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/mabhi256/havbench/internal/loader"
	"github.com/mabhi256/havbench/internal/profiler"
	"github.com/mabhi256/havbench/utils"
)

// hotThreshold/warmThreshold bucket a node's share of the root's
// cycles into the same three-tier severity the teacher's GC trend
// views use for pause-time classification.
const (
	hotThreshold  = 40.0
	warmThreshold = 15.0
)

func percentageStyle(pct float64) func(...string) string {
	switch {
	case pct >= hotThreshold:
		return utils.CriticalStyle.Render
	case pct >= warmThreshold:
		return utils.WarningStyle.Render
	default:
		return utils.GoodStyle.Render
	}
}

// PrintTree renders the profiler tree with indentation and a
// color-coded percentage column.
func PrintTree(w io.Writer, tree *profiler.Tree) {
	var walk func(n *profiler.Node, depth int)
	walk = func(n *profiler.Node, depth int) {
		fmt.Fprintln(w, treeLine(n, tree.CPUFreq, depth))
		for _, c := range n.Children {
			walk(c, depth+1)
		}
	}
	walk(tree.Root, 0)
}

func treeLine(n *profiler.Node, cpuFreq uint64, depth int) string {
	pct := fmt.Sprintf("%6.2f%%", n.Percentage)
	pct = percentageStyle(n.Percentage)(pct)

	return fmt.Sprintf("%s%-30s calls=%-6d %10s %s",
		strings.Repeat("  ", depth), n.ID, n.CallCount, utils.FormatDuration(n.Time(cpuFreq)), pct)
}

// PrintSummary renders a boxed summary of a loader.Report: pair count,
// recomputed average, the distance distribution's mean/variance, and
// the answer-file verdict if one was checked.
func PrintSummary(w io.Writer, report *loader.Report) {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %d\n", utils.InfoStyle.Render("pairs:"), report.PairCount)
	fmt.Fprintf(&b, "%s %.16f\n", utils.InfoStyle.Render("avg:"), report.Avg)

	if len(report.Distances) > 1 {
		variance, mean := utils.CalculateVarianceWithMean(report.Distances)
		fmt.Fprintf(&b, "%s mean=%.4f variance=%.4f\n", utils.MutedStyle.Render("distribution:"), mean, variance)
	}

	if report.AnswerTested {
		fmt.Fprintf(&b, "%s %.16f\n", utils.MutedStyle.Render("answer avg:"), report.AnswerAvg)
		if len(report.Mismatches) > 0 {
			fmt.Fprintln(&b, utils.CriticalStyle.Render(fmt.Sprintf("✗ %d pair(s) mismatch tolerance", len(report.Mismatches))))
		}
		if report.AvgMismatch {
			fmt.Fprintln(&b, utils.CriticalStyle.Render("✗ average mismatch exceeds tolerance"))
		} else if len(report.Mismatches) == 0 {
			fmt.Fprintln(&b, utils.GoodStyle.Render("✓ matches answer file"))
		}
	}

	fmt.Fprintln(w, utils.BoxStyle.Render(strings.TrimRight(b.String(), "\n")))
}
