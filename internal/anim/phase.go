// Package anim provides the single abstraction every timed visual
// transition is built on: a Phase runs one eased, cancellable interpolation,
// ticked once per frame, and resolves as either completed or cancelled.
package anim

import (
	"time"

	"vajontsim/internal/easing"
	"vajontsim/internal/timeline"
)

// Status is the resolution state of a phase.
type Status int

const (
	StatusRunning Status = iota
	StatusCompleted
	StatusCancelled
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case StatusCompleted:
		return "completed"
	case StatusCancelled:
		return "cancelled"
	default:
		return "running"
	}
}

// TickFunc receives eased progress once per frame. The callback mutates
// external scene state; the phase itself has no side effects of its own.
type TickFunc func(eased float64)

// CancelFunc is polled once per tick; returning true resolves the phase
// early as cancelled. This is the cooperative cancellation contract: there
// is no preemption between ticks.
type CancelFunc func() bool

// Phase is one timed transition. Construct with New and drive it by calling
// Advance once per frame until it stops returning StatusRunning.
type Phase struct {
	span      timeline.Span
	ease      easing.Func
	onTick    TickFunc
	cancelled CancelFunc
}

// New creates a phase starting at the given instant. A nil ease means
// linear; a nil onTick or cancelled is treated as a no-op.
func New(start time.Time, duration time.Duration, ease easing.Func, onTick TickFunc, cancelled CancelFunc) *Phase {
	if ease == nil {
		ease = easing.Linear
	}
	return &Phase{
		span:      timeline.NewSpan(start, duration),
		ease:      ease,
		onTick:    onTick,
		cancelled: cancelled,
	}
}

// Advance runs one tick at the given instant. Cancellation is checked
// before the tick fires, so a cancelled phase performs no further scene
// mutation. On the tick where progress reaches 1 the callback still runs,
// guaranteeing the final state is applied exactly.
func (p *Phase) Advance(now time.Time) Status {
	if p.cancelled != nil && p.cancelled() {
		return StatusCancelled
	}
	t := p.span.Progress(now)
	if p.onTick != nil {
		p.onTick(p.ease(t))
	}
	if t >= 1 {
		return StatusCompleted
	}
	return StatusRunning
}

// RawProgress returns the unclamped-by-easing linear progress at an
// instant, for phases that apply several easings to one timeline.
func (p *Phase) RawProgress(now time.Time) float64 {
	return p.span.Progress(now)
}
