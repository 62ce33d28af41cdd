package transform

import (
	"fmt"

	"coord-transf/pkg/geometry"
)

const modelBilinear = "Bilinear"

// Bilinear is the 8-parameter "4-point transformation". Four id-point pairs
// are always mapped without residual mismatches.
//
//	x' = A x + B y + C x y + D
//	y' = E x + F y + G x y + H
type Bilinear struct {
	idPoints
	A, B, C, D float64
	E, F, G, H float64
}

// FitBilinear computes the transform from exactly four id-point pairs.
func FitBilinear(from, to []geometry.Point2D, opts ...Option) (*Bilinear, error) {
	if err := checkExact(modelBilinear, from, to, 4); err != nil {
		return nil, err
	}
	cfg := newConfig(opts)

	if !geometry.IsConvex(from) {
		cfg.logger.Debugw("source quadrilateral is not convex", "model", modelBilinear, "from", from)
	}

	m := make([][]float64, 0, 8)
	for i := 0; i < 4; i++ {
		f, t := from[i], to[i]
		xy := f.X * f.Y
		m = append(m,
			[]float64{f.X, f.Y, xy, 1, 0, 0, 0, 0, t.X},
			[]float64{0, 0, 0, 0, f.X, f.Y, xy, 1, t.Y},
		)
	}
	p, err := cfg.solve(modelBilinear, m)
	if err != nil {
		return nil, err
	}

	t := &Bilinear{
		idPoints: newIDPoints(from, to),
		A:        p[0],
		B:        p[1],
		C:        p[2],
		D:        p[3],
		E:        p[4],
		F:        p[5],
		G:        p[6],
		H:        p[7],
	}
	cfg.logger.Debugw("fitted", "model", modelBilinear, "params", p)
	return t, nil
}

// Transform maps p into the target system.
func (t *Bilinear) Transform(p geometry.Point2D) geometry.Point2D {
	xy := p.X * p.Y
	return geometry.Point2D{
		X: t.A*p.X + t.B*p.Y + t.C*xy + t.D,
		Y: t.E*p.X + t.F*p.Y + t.G*xy + t.H,
	}
}

// Inside reports whether p lies within the quadrilateral spanned by the
// source id-points, i.e. whether Transform interpolates rather than extrapolates.
func (t *Bilinear) Inside(p geometry.Point2D) bool {
	return geometry.PointInPolygon(p, t.from)
}

func (t *Bilinear) String() string {
	return fmt.Sprintf("%s: %v, %v, %v, %v, %v, %v, translation = (%v, %v)",
		modelBilinear, t.A, t.B, t.C, t.E, t.F, t.G, t.D, t.H)
}
