package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"coord-transf/pkg/geometry"
)

func pts(xy ...float64) []geometry.Point2D {
	out := make([]geometry.Point2D, 0, len(xy)/2)
	for i := 0; i+1 < len(xy); i += 2 {
		out = append(out, geometry.Point2D{X: xy[i], Y: xy[i+1]})
	}
	return out
}

func mapAll(m geometry.Matrix2x3, in []geometry.Point2D) []geometry.Point2D {
	out := make([]geometry.Point2D, len(in))
	for i, p := range in {
		out[i] = m.Apply(p)
	}
	return out
}

func assertPointNear(t *testing.T, want, got geometry.Point2D, delta float64, msgAndArgs ...interface{}) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, delta, msgAndArgs...)
	assert.InDelta(t, want.Y, got.Y, delta, msgAndArgs...)
}

// assertExactFit checks that every id-point of t is reproduced.
func assertExactFit(t *testing.T, tr Transform) {
	t.Helper()
	for _, r := range Residuals(tr) {
		assert.Less(t, r.Delta, 1e-9, "id-point %d: %v -> %v, want %v", r.Index, r.From, r.Mapped, r.To)
	}
}
