package easing

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

const eps = 1e-12

func TestEndpoints(t *testing.T) {
	funcs := map[string]Func{
		"Linear":     Linear,
		"OutQuad":    OutQuad,
		"OutCubic":   OutCubic,
		"InOutQuad":  InOutQuad,
		"InOutCubic": InOutCubic,
		"InOutBack":  InOutBack,
	}
	for name, f := range funcs {
		assert.InDelta(t, 0, f(0), eps, "%s(0)", name)
		assert.InDelta(t, 1, f(1), eps, "%s(1)", name)
	}
}

func TestKnownValues(t *testing.T) {
	assert.InDelta(t, 0.5, Linear(0.5), eps)
	assert.InDelta(t, 0.75, OutQuad(0.5), eps)
	assert.InDelta(t, 0.875, OutCubic(0.5), eps)
	assert.InDelta(t, 0.125, InOutQuad(0.25), eps)
	assert.InDelta(t, 0.5, InOutQuad(0.5), eps)
	assert.InDelta(t, 0.0625, InOutCubic(0.25), eps)
	assert.InDelta(t, 0.5, InOutCubic(0.5), eps)
	assert.InDelta(t, 0.5, InOutBack(0.5), eps)
}

func TestInOutBackOvershoots(t *testing.T) {
	// Anticipation dips below zero early on.
	assert.Less(t, InOutBack(0.1), 0.0)
	// Follow-through exceeds one near the end.
	assert.Greater(t, InOutBack(0.9), 1.0)
}

func TestOutCurvesMonotonic(t *testing.T) {
	for _, f := range []Func{Linear, OutQuad, OutCubic, InOutQuad, InOutCubic} {
		prev := math.Inf(-1)
		for i := 0; i <= 100; i++ {
			v := f(float64(i) / 100)
			if v < prev {
				t.Fatalf("easing not monotonic at t=%v: %v < %v", float64(i)/100, v, prev)
			}
			prev = v
		}
	}
}
