package profiler

import (
	"bytes"
	"fmt"
	"runtime"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/mabhi256/havbench/internal/profiler/clock"
)

// RecordType discriminates the four events the ring can hold.
type RecordType int

const (
	ProfilerStart RecordType = iota
	ProfilerEnd
	SectionBegin
	SectionEnd
)

func (t RecordType) String() string {
	switch t {
	case ProfilerStart:
		return "ProfilerStart"
	case ProfilerEnd:
		return "ProfilerEnd"
	case SectionBegin:
		return "SectionBegin"
	case SectionEnd:
		return "SectionEnd"
	default:
		return "Unknown"
	}
}

// Record is the fixed-size, immutable entry the ring stores. Spec §3
// describes a literal 64-byte layout; a CallSite carries variable
// length strings, so the location is interned into a table and only
// its integer id is stored here, keeping the record itself small and
// of fixed size regardless of call-site string length.
type Record struct {
	Type       RecordType
	Cycles     uint64
	ThreadID   int32
	LocationID uint32
}

// locationTable interns CallSites so records can carry a uint32
// instead of a string. Interning only happens on Push, never during
// reconstruction.
type locationTable struct {
	mu   sync.Mutex
	ids  map[string]uint32
	list []CallSite
}

func newLocationTable() *locationTable {
	return &locationTable{ids: make(map[string]uint32)}
}

func (t *locationTable) intern(site CallSite) uint32 {
	key := site.ID()
	t.mu.Lock()
	defer t.mu.Unlock()
	if id, ok := t.ids[key]; ok {
		return id
	}
	id := uint32(len(t.list))
	t.list = append(t.list, site)
	t.ids[key] = id
	return id
}

func (t *locationTable) lookup(id uint32) CallSite {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.list[id]
}

// RecordRing is a preallocated, fixed-capacity array that Push
// appends to. Slots are reserved with an atomic increment; interning
// the call site takes the location table's mutex, so Push can block
// while another goroutine interns. Growth is deliberately absent (spec
// §9): callers size the ring for the worst-case section count.
type RecordRing struct {
	records   []Record
	index     atomic.Uint64
	locations *locationTable
}

// DefaultCapacity matches spec §9's default record ring sizing.
const DefaultCapacity = 4096 * 1024

// NewRecordRing preallocates a ring of the given capacity.
func NewRecordRing(capacity int) *RecordRing {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &RecordRing{
		records:   make([]Record, capacity),
		locations: newLocationTable(),
	}
}

// Push performs, in order: an atomic fetch-and-increment of the
// record index, a bounds assertion (fatal on overflow — spec §7
// classifies this as an internal, fatal error), a cycle read, and a
// store at the reserved slot. Building the stored record interns the
// call site under the location table's mutex, so Push is not
// wait-free. Concurrent pushes from different
// threads interleave by the order their atomic increments resolved;
// reconstruction relies only on slot order, not on cycle values being
// globally monotonic (spec §5).
func (r *RecordRing) Push(recordType RecordType, site CallSite, threadID int32) {
	i := r.index.Add(1) - 1
	if i >= uint64(len(r.records)) {
		panic(fmt.Sprintf("profiler: record ring overflow: slot %d exceeds capacity %d", i, len(r.records)))
	}
	cycles := clock.Read()
	r.records[i] = Record{
		Type:       recordType,
		Cycles:     cycles,
		ThreadID:   threadID,
		LocationID: r.locations.intern(site),
	}
}

// Len returns the number of records written so far (recordIndex).
func (r *RecordRing) Len() int {
	n := r.index.Load()
	if n > uint64(len(r.records)) {
		n = uint64(len(r.records))
	}
	return int(n)
}

// Slice returns the records written so far, in slot order. The
// caller must ensure no Push is in flight (spec §5: the profiler's
// active 1->0 transition must happen-before this read).
func (r *RecordRing) Slice() []Record {
	return r.records[:r.Len()]
}

func (r *RecordRing) siteFor(rec Record) CallSite {
	return r.locations.lookup(rec.LocationID)
}

// currentGoroutineID resolves a best-effort goroutine identity for
// the ThreadID field, by parsing runtime.Stack's "goroutine N ["
// header. Go exposes no official goroutine id; this is the same
// technique every unofficial goid package uses. It is kept out of
// RecordRing.Push and resolved once per Begin/End call by the facade,
// which passes the result in.
func currentGoroutineID() int32 {
	buf := make([]byte, 64)
	n := runtime.Stack(buf, false)
	buf = buf[:n]
	fields := bytes.Fields(buf)
	if len(fields) < 2 {
		return -1
	}
	id, err := strconv.ParseInt(string(fields[1]), 10, 64)
	if err != nil {
		return -1
	}
	return int32(id)
}
