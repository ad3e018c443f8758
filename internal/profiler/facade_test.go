package profiler

import (
	"strings"
	"testing"
)

func TestInactiveProfilerBeginEndAreNoOps(t *testing.T) {
	p := New(16)

	h := p.Begin("section")
	if !h.inactive {
		t.Error("Begin on an inactive profiler should return an inactive Handle")
	}
	p.End(h)
	if p.ring.Len() != 0 {
		t.Errorf("expected no records pushed while inactive, got %d", p.ring.Len())
	}

	g := p.Section("section")
	g.End()
	if p.ring.Len() != 0 {
		t.Errorf("expected no records pushed by an inactive Section/Guard, got %d", p.ring.Len())
	}
}

func TestStartPushesExactlyOneProfilerStart(t *testing.T) {
	p := New(16)
	p.Start()
	p.Start()
	p.Start()

	if got := p.ring.Len(); got != 1 {
		t.Fatalf("got %d records after repeated Start, want 1", got)
	}
	if p.ring.records[0].Type != ProfilerStart {
		t.Errorf("got record type %v, want ProfilerStart", p.ring.records[0].Type)
	}
}

func TestStopAndCollectIsFalseWhenAlreadyInactive(t *testing.T) {
	p := New(16)
	if _, _, ok := p.StopAndCollect(1_000_000, ""); ok {
		t.Error("expected StopAndCollect on a never-started profiler to report ok=false")
	}
}

func TestSectionGuardEndIsIdempotent(t *testing.T) {
	p := New(16)
	p.Start()

	g := p.Section("work")
	g.End()
	g.End()

	var sectionEnds int
	for _, rec := range p.ring.Slice() {
		if rec.Type == SectionEnd {
			sectionEnds++
		}
	}
	if sectionEnds != 1 {
		t.Errorf("got %d SectionEnd records after double End, want 1", sectionEnds)
	}
}

func TestSectionGuardEndsOnPanic(t *testing.T) {
	p := New(16)
	p.Start()

	func() {
		defer func() { recover() }()
		defer p.Section("risky").End()
		panic("boom")
	}()

	var begins, ends int
	for _, rec := range p.ring.Slice() {
		switch rec.Type {
		case SectionBegin:
			begins++
		case SectionEnd:
			ends++
		}
	}
	if begins != 1 || ends != 1 {
		t.Errorf("got begins=%d ends=%d, want 1 and 1", begins, ends)
	}
}

func TestBeginAndSectionCaptureTheCallerSite(t *testing.T) {
	p := New(16)
	p.Start()

	h := p.Begin("named")
	p.End(h)

	g := p.Section("named")
	g.End()

	records := p.ring.Slice()
	var sites []CallSite
	for _, rec := range records {
		if rec.Type == SectionBegin || rec.Type == SectionEnd {
			sites = append(sites, p.ring.siteFor(rec))
		}
	}
	if len(sites) != 4 {
		t.Fatalf("got %d section records, want 4", len(sites))
	}
	for _, s := range sites {
		if !strings.HasSuffix(s.FuncName, "TestBeginAndSectionCaptureTheCallerSite") {
			t.Errorf("captured site %+v does not point at the test function", s)
		}
	}
	if sites[0].ID() != sites[1].ID() {
		t.Errorf("Begin/End site mismatch: %q vs %q", sites[0].ID(), sites[1].ID())
	}
	if sites[2].ID() != sites[3].ID() {
		t.Errorf("Section begin/end site mismatch: %q vs %q", sites[2].ID(), sites[3].ID())
	}
}
