package timeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSpanProgress(t *testing.T) {
	start := time.Unix(100, 0)
	span := NewSpan(start, 2*time.Second)

	assert.Equal(t, 0.0, span.Progress(start))
	assert.Equal(t, 0.0, span.Progress(start.Add(-time.Second)), "instants before the span clamp to zero")
	assert.InDelta(t, 0.25, span.Progress(start.Add(500*time.Millisecond)), 1e-12)
	assert.InDelta(t, 0.5, span.Progress(start.Add(time.Second)), 1e-12)
	assert.Equal(t, 1.0, span.Progress(start.Add(2*time.Second)))
	assert.Equal(t, 1.0, span.Progress(start.Add(time.Hour)), "instants after the span clamp to one")
}

func TestSpanZeroDurationCompletesImmediately(t *testing.T) {
	start := time.Unix(100, 0)
	assert.Equal(t, 1.0, NewSpan(start, 0).Progress(start))
	assert.Equal(t, 1.0, NewSpan(start, -time.Second).Progress(start))
	assert.True(t, Span{}.Done(time.Time{}))
}

func TestSpanProgressMonotonic(t *testing.T) {
	start := time.Unix(0, 0)
	span := NewSpan(start, 3*time.Second)
	prev := -1.0
	for i := 0; i < 400; i++ {
		p := span.Progress(start.Add(time.Duration(i) * 10 * time.Millisecond))
		assert.GreaterOrEqual(t, p, prev)
		prev = p
	}
}

func TestFixedStepPacing(t *testing.T) {
	fs := NewFixedStep(10) // 100ms per tick
	now := time.Unix(50, 0)

	// The accumulator is primed so the first poll steps immediately.
	assert.True(t, fs.ShouldStep(now))
	assert.False(t, fs.ShouldStep(now.Add(30*time.Millisecond)))
	assert.False(t, fs.ShouldStep(now.Add(60*time.Millisecond)))
	assert.True(t, fs.ShouldStep(now.Add(110*time.Millisecond)))
}

func TestFixedStepDefaultsOnBadTPS(t *testing.T) {
	fs := NewFixedStep(0)
	now := time.Unix(0, 0)
	assert.True(t, fs.ShouldStep(now))
	// 60 TPS default: a 20ms advance is not enough for the next tick.
	assert.False(t, fs.ShouldStep(now.Add(2*time.Millisecond)))
}
