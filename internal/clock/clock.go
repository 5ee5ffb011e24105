// Package clock provides microsecond-resolution wall-clock sampling
// and elapsed-time arithmetic for the timing engine.
package clock

import (
	"time"

	"github.com/cockroachdb/errors"
)

// ErrNoClock is returned when the host does not expose a usable
// high-resolution wall clock. This is fatal: no measurement may begin.
var ErrNoClock = errors.New("no high-resolution wall clock available")

// Sampler yields integer microsecond timestamps.
type Sampler interface {
	// NowMicros returns the current wall-clock time as microseconds
	// since the Unix epoch.
	NowMicros() int64
}

// SystemSampler reads the host wall clock.
type SystemSampler struct{}

// NewSystemSampler probes the host clock and returns a SystemSampler.
// The probe runs before any measurement so a broken clock is caught
// up front rather than mid-timing.
func NewSystemSampler() (*SystemSampler, error) {
	if time.Now().IsZero() {
		return nil, ErrNoClock
	}

	return &SystemSampler{}, nil
}

// NowMicros returns the current wall-clock time in microseconds.
func (*SystemSampler) NowMicros() int64 {
	return time.Now().UnixMicro()
}

// Sample is one start/end timing pair. Ephemeral: built and discarded
// within a single invocation.
type Sample struct {
	StartUS int64
	EndUS   int64
}

// Elapsed returns end - start as a pure integer subtraction. No
// clamping is applied; monotonicity is assumed, not enforced.
func (s Sample) Elapsed() int64 {
	return Elapsed(s.StartUS, s.EndUS)
}

// Elapsed returns endUS - startUS.
func Elapsed(startUS, endUS int64) int64 {
	return endUS - startUS
}
