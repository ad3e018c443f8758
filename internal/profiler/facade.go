// Package profiler implements the nested-section profiler of spec
// §4.F-H: a preallocated record ring, a Begin/End/Section facade, and a
// tree-reconstruction pass.
package profiler

import "sync/atomic"

// Handle identifies an in-flight section started by Begin. It carries
// the call site captured at Begin time so End pushes the matching
// identity — spec §4.G's begin/end both take "callerSite", which in
// an idiomatic Go port means capturing it once and threading it
// through, rather than asking callers to reproduce an identical
// (file, line) pair across two independent calls.
type Handle struct {
	site     CallSite
	inactive bool
}

// Guard is the scoped section helper returned by Section. Its End
// method is safe to call more than once and safe to defer.
type Guard struct {
	p    *Profiler
	h    Handle
	done bool
}

// End releases the section, pushing a SectionEnd with the same
// location Section captured. Guaranteed safe on every exit path,
// including panics unwound through a deferred call.
func (g *Guard) End() {
	if g.done {
		return
	}
	g.done = true
	g.p.End(g.h)
}

// Profiler is the process-wide facade around a RecordRing. The zero
// value is not usable; construct with New.
type Profiler struct {
	active atomic.Bool
	ring   *RecordRing
}

// New builds a Profiler with a ring of the given capacity (0 uses
// DefaultCapacity).
func New(capacity int) *Profiler {
	return &Profiler{ring: NewRecordRing(capacity)}
}

// Start transitions the profiler 0->1. Only the transitioning caller
// pushes a ProfilerStart record; subsequent calls while already
// active are no-ops.
func (p *Profiler) Start() {
	if p.active.CompareAndSwap(false, true) {
		p.ring.Push(ProfilerStart, CallSite{}, currentGoroutineID())
	}
}

// Active reports whether the profiler is currently collecting.
func (p *Profiler) Active() bool {
	return p.active.Load()
}

// StopAndCollect transitions the profiler 1->0 and reconstructs the
// call tree from the ring. It returns (nil, nil, false) if the profiler
// was already inactive, matching spec §4.G. Callers must ensure no
// Begin/End/Section call from any goroutine is still in flight (spec
// §5): join worker goroutines before calling this.
func (p *Profiler) StopAndCollect(cpuFreq uint64, pathTrim string) (*Tree, error, bool) {
	if !p.active.CompareAndSwap(true, false) {
		return nil, nil, false
	}
	p.ring.Push(ProfilerEnd, CallSite{}, currentGoroutineID())
	tree, err := Reconstruct(p.ring, cpuFreq, pathTrim)
	return tree, err, true
}

// Begin pushes a SectionBegin at the caller's source line and returns
// a Handle to pass to End. A no-op (returning an inactive Handle)
// when the profiler isn't active.
func (p *Profiler) Begin(sectionName string) Handle {
	return p.begin(3, sectionName)
}

// begin captures the caller's site skip frames up (so both Begin and
// Section, which both call this at the same call depth, report the
// user's line rather than their own) and pushes SectionBegin.
func (p *Profiler) begin(skip int, sectionName string) Handle {
	if !p.active.Load() {
		return Handle{inactive: true}
	}
	site := captureCallSite(skip, sectionName, sectionName != "")
	p.ring.Push(SectionBegin, site, currentGoroutineID())
	return Handle{site: site}
}

// End pushes a SectionEnd for the section h identifies. A no-op for
// an inactive Handle or an inactive profiler.
func (p *Profiler) End(h Handle) {
	if h.inactive || !p.active.Load() {
		return
	}
	p.ring.Push(SectionEnd, h.site, currentGoroutineID())
}

// Section begins a scoped section and returns a Guard whose End
// method closes it. Typical use: defer p.Section("parse").End().
func (p *Profiler) Section(sectionName string) *Guard {
	return &Guard{p: p, h: p.begin(3, sectionName)}
}
