// Package timeline provides the wall-clock plumbing shared by every
// animation phase: a Span that converts elapsed time into clamped progress,
// and a FixedStep pacer for driving simulation updates at a steady rate.
package timeline

import "time"

// Span measures the progress of one timed transition. The zero value is a
// completed span.
type Span struct {
	start    time.Time
	duration time.Duration
}

// NewSpan returns a Span that begins at start and lasts for duration.
func NewSpan(start time.Time, duration time.Duration) Span {
	return Span{start: start, duration: duration}
}

// Progress reports how far through the span the given instant falls, clamped
// to [0,1]. Non-positive durations complete immediately rather than dividing
// by zero.
func (s Span) Progress(now time.Time) float64 {
	if s.duration <= 0 {
		return 1
	}
	p := float64(now.Sub(s.start)) / float64(s.duration)
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

// Done reports whether the span has run its full duration.
func (s Span) Done(now time.Time) bool {
	return s.Progress(now) >= 1
}

// FixedStep helps run simulation updates at a steady ticks-per-second rate.
// Callers feed it the current time so tests can drive it deterministically.
type FixedStep struct {
	step        time.Duration
	accumulator time.Duration
	last        time.Time
}

// NewFixedStep constructs a FixedStep pacer targeting the given TPS.
func NewFixedStep(tps int) *FixedStep {
	if tps <= 0 {
		tps = 60
	}
	fs := &FixedStep{}
	fs.SetTPS(tps)
	fs.accumulator = fs.step
	return fs
}

// SetTPS changes the tick rate. It is safe to call from the main loop.
func (f *FixedStep) SetTPS(tps int) {
	if tps <= 0 {
		tps = 60
	}
	f.step = time.Second / time.Duration(tps)
}

// ShouldStep reports whether the simulation should advance by one tick at
// the provided instant.
func (f *FixedStep) ShouldStep(now time.Time) bool {
	if f.last.IsZero() {
		f.last = now
	}
	delta := now.Sub(f.last)
	f.last = now
	f.accumulator += delta
	if f.accumulator >= f.step {
		f.accumulator -= f.step
		return true
	}
	return false
}
