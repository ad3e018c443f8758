package loader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mabhi256/havbench/internal/haversine"
)

func writeCorpusFiles(t *testing.T, dir string, corpus haversine.Corpus) (jsonPath, answerPath string) {
	t.Helper()

	jsonPath = filepath.Join(dir, "corpus.json")
	jf, err := os.Create(jsonPath)
	if err != nil {
		t.Fatalf("create json: %v", err)
	}
	defer jf.Close()
	if err := haversine.WriteJSON(jf, corpus); err != nil {
		t.Fatalf("write json: %v", err)
	}

	answerPath = filepath.Join(dir, "corpus.answer")
	af, err := os.Create(answerPath)
	if err != nil {
		t.Fatalf("create answer: %v", err)
	}
	defer af.Close()
	if err := haversine.WriteAnswer(af, corpus); err != nil {
		t.Fatalf("write answer: %v", err)
	}

	return jsonPath, answerPath
}

func TestRunRecomputesAverage(t *testing.T) {
	corpus, err := haversine.GenerateCorpus(haversine.GenConfig{Count: 25, Seed: 11, Mode: haversine.Uniform})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	jsonPath, _ := writeCorpusFiles(t, t.TempDir(), corpus)

	report, err := Run(RunConfig{InputPath: jsonPath})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if report.PairCount != 25 {
		t.Errorf("got %d pairs, want 25", report.PairCount)
	}
	if diff := report.Avg - corpus.Avg; diff > 1e-6 || diff < -1e-6 {
		t.Errorf("avg: got %v, want %v", report.Avg, corpus.Avg)
	}
}

func TestRunVerifiesAgainstAnswerFile(t *testing.T) {
	corpus, err := haversine.GenerateCorpus(haversine.GenConfig{Count: 10, Seed: 5, Mode: haversine.Uniform})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	jsonPath, answerPath := writeCorpusFiles(t, t.TempDir(), corpus)

	report, err := Run(RunConfig{InputPath: jsonPath, AnswerPath: answerPath})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !report.AnswerTested {
		t.Fatal("expected AnswerTested to be true")
	}
	if report.AvgMismatch {
		t.Error("expected no average mismatch against a matching answer file")
	}
}

func TestRunErrorsOnMissingFile(t *testing.T) {
	if _, err := Run(RunConfig{InputPath: "/nonexistent/corpus.json"}); err == nil {
		t.Fatal("expected an error for a missing input file")
	}
}

func TestRunErrorsOnMalformedJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(path, []byte(`{"pairs": [`), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	if _, err := Run(RunConfig{InputPath: path}); err == nil {
		t.Fatal("expected a parse error for malformed JSON")
	}
}

func TestRunErrorsWhenPairsFieldMissing(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "no-pairs.json")
	if err := os.WriteFile(path, []byte(`{"count":0}`), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	if _, err := Run(RunConfig{InputPath: path}); err == nil {
		t.Fatal("expected an error when the \"pairs\" field is absent")
	}
}
