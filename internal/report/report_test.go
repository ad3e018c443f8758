package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/mabhi256/havbench/internal/loader"
	"github.com/mabhi256/havbench/internal/profiler"
)

func buildSampleTree(t *testing.T) *profiler.Tree {
	t.Helper()
	p := profiler.New(16)
	p.Start()
	p.Section("work").End()
	tree, err, ok := p.StopAndCollect(1_000_000, "")
	if err != nil || !ok {
		t.Fatalf("unexpected collection failure: err=%v ok=%v", err, ok)
	}
	return tree
}

func TestPrintTreeRendersEveryNode(t *testing.T) {
	tree := buildSampleTree(t)

	var buf bytes.Buffer
	PrintTree(&buf, tree)

	out := buf.String()
	if !strings.Contains(out, "ROOT") {
		t.Errorf("expected ROOT in output: %q", out)
	}
	if !strings.Contains(out, "work") {
		t.Errorf("expected the \"work\" section in output: %q", out)
	}
}

func TestPrintSummaryRendersCounts(t *testing.T) {
	report := &loader.Report{PairCount: 42, Avg: 123.456}

	var buf bytes.Buffer
	PrintSummary(&buf, report)

	out := buf.String()
	if !strings.Contains(out, "42") {
		t.Errorf("expected pair count in output: %q", out)
	}
}

func TestPrintSummaryShowsMismatch(t *testing.T) {
	report := &loader.Report{
		PairCount:    10,
		Avg:          100,
		AnswerTested: true,
		AnswerAvg:    200,
		AvgMismatch:  true,
	}

	var buf bytes.Buffer
	PrintSummary(&buf, report)

	if !strings.Contains(buf.String(), "mismatch") {
		t.Errorf("expected a mismatch notice in output: %q", buf.String())
	}
}

func TestPrintSummaryShowsMatchWhenNoMismatch(t *testing.T) {
	report := &loader.Report{
		PairCount:    10,
		Avg:          100,
		AnswerTested: true,
		AnswerAvg:    100,
		AvgMismatch:  false,
	}

	var buf bytes.Buffer
	PrintSummary(&buf, report)

	if strings.Contains(buf.String(), "mismatch") {
		t.Errorf("did not expect a mismatch notice: %q", buf.String())
	}
}
