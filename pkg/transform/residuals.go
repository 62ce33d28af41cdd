package transform

import (
	"fmt"
	"math"
	"strings"

	"coord-transf/pkg/geometry"
)

// Residual is the mismatch of one id-point after transformation.
type Residual struct {
	Index  int
	From   geometry.Point2D
	To     geometry.Point2D
	Mapped geometry.Point2D // Transform(From)
	DX, DY float64          // To - Mapped
	Delta  float64          // Euclidean length of (DX, DY)
}

// Residuals applies t to each of its own source id-points and returns one
// record per id-point. Exact fits yield residuals of numerically zero.
func Residuals(t Transform) []Residual {
	from, to := t.IDPoints()
	out := make([]Residual, len(from))
	for i := range from {
		u := t.Transform(from[i])
		v := to[i].Sub(u)
		out[i] = Residual{
			Index:  i,
			From:   from[i],
			To:     to[i],
			Mapped: u,
			DX:     v.X,
			DY:     v.Y,
			Delta:  math.Sqrt(v.X*v.X + v.Y*v.Y),
		}
	}
	return out
}

// RMS returns the root mean square of the residual deltas.
func RMS(residuals []Residual) float64 {
	if len(residuals) == 0 {
		return 0
	}
	var sum float64
	for _, r := range residuals {
		sum += r.Delta * r.Delta
	}
	return math.Sqrt(sum / float64(len(residuals)))
}

// MaxDelta returns the largest residual delta.
func MaxDelta(residuals []Residual) float64 {
	var m float64
	for _, r := range residuals {
		if r.Delta > m {
			m = r.Delta
		}
	}
	return m
}

// ResidualReport renders the residual mismatches of t, one line per id-point.
func ResidualReport(t Transform) string {
	var sb strings.Builder
	sb.WriteString("Original point -> transformed point:\n")
	for _, r := range Residuals(t) {
		fmt.Fprintf(&sb, "%v -> %v: (%v, %v), delta = %v\n", r.From, r.Mapped, r.DX, r.DY, r.Delta)
	}
	return sb.String()
}
