package vmath

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVectorOps(t *testing.T) {
	a := V(1, 2, 3)
	b := V(4, -2, 1)

	assert.Equal(t, V(5, 0, 4), a.Add(b))
	assert.Equal(t, V(-3, 4, 2), a.Sub(b))
	assert.Equal(t, V(2, 4, 6), a.Scale(2))
	assert.InDelta(t, 3.0, V(0, 3, 0).Length(), 1e-12)
}

func TestNormalized(t *testing.T) {
	n := V(0, -8, 0).Normalized()
	assert.Equal(t, V(0, -1, 0), n)
	assert.Equal(t, Vec3{}, Vec3{}.Normalized(), "zero vector stays zero")
}

func TestLerp(t *testing.T) {
	a := V(0, 0, 0)
	b := V(10, -20, 30)
	assert.Equal(t, a, Lerp(a, b, 0))
	assert.Equal(t, b, Lerp(a, b, 1))
	assert.Equal(t, V(5, -10, 15), Lerp(a, b, 0.5))
	assert.InDelta(t, 2.5, LerpF(0, 10, 0.25), 1e-12)
}
