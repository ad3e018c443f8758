// Package clock provides the monotonic high-resolution counter the
// profiler timestamps records with. Go exposes no portable intrinsic
// for a raw CPU cycle counter; per spec §4.A and §9 ("global clock
// state... process-wide singleton"), this falls back to the runtime's
// monotonic clock reading (time.Now's hidden monotonic component),
// the same fallback the spec names for platforms without a direct
// counter. Callers treat the returned number as "ticks per second"
// regardless of which mode produced it.
package clock

import "time"

// Read returns a monotonically non-decreasing counter value. Units
// are nanoseconds in this fallback implementation, which the
// EstimateFrequency calibration converts into "ticks per second" for
// the caller transparently.
func Read() uint64 {
	return uint64(time.Since(processStart))
}

// processStart anchors Read to time.Now's monotonic reading; time.Since
// subtracts monotonic readings, unlike UnixNano, which is wall-clock.
var processStart = time.Now()

// EstimateFrequency measures OS wall-clock elapsed time against
// Read()'s own elapsed ticks over a calibration window and returns
// osFreq * cycleElapsed / osElapsed, per spec §4.A. With the
// nanosecond fallback this converges to 1e9, but the calibration is
// performed for real so a future platform-specific Read backed by an
// actual cycle counter needs no change here.
func EstimateFrequency(waitMillis int64) uint64 {
	if waitMillis <= 0 {
		waitMillis = 100
	}

	const osFreq = uint64(time.Second)

	osStart := time.Now()
	cyclesStart := Read()

	osWait := time.Duration(waitMillis) * time.Millisecond
	for time.Since(osStart) < osWait {
		// Busy-wait: the calibration window is short and must not
		// block on a timer with coarser resolution than itself.
	}

	osElapsed := uint64(time.Since(osStart))
	cyclesElapsed := Read() - cyclesStart

	if osElapsed == 0 {
		return osFreq
	}
	return osFreq * cyclesElapsed / osElapsed
}
