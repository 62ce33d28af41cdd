package transform

import (
	"fmt"
	"math"

	"github.com/pkg/errors"

	"coord-transf/pkg/geometry"
)

const modelScaleAndTranslate = "ScaleAndTranslate"

// ScaleAndTranslate scales and translates each axis independently
// ("2-point transformation"):
//
//	x' = A x + B
//	y' = C y + D
type ScaleAndTranslate struct {
	idPoints
	A, B, C, D float64

	tol float64
}

// FitScaleAndTranslate computes the transform from exactly two id-point pairs.
func FitScaleAndTranslate(from, to []geometry.Point2D, opts ...Option) (*ScaleAndTranslate, error) {
	if err := checkExact(modelScaleAndTranslate, from, to, 2); err != nil {
		return nil, err
	}
	cfg := newConfig(opts)

	m := [][]float64{
		{from[0].X, 1, 0, 0, to[0].X},
		{0, 0, from[0].Y, 1, to[0].Y},
		{from[1].X, 1, 0, 0, to[1].X},
		{0, 0, from[1].Y, 1, to[1].Y},
	}
	p, err := cfg.solve(modelScaleAndTranslate, m)
	if err != nil {
		return nil, err
	}

	t := &ScaleAndTranslate{
		idPoints: newIDPoints(from, to),
		A:        p[0],
		B:        p[1],
		C:        p[2],
		D:        p[3],
		tol:      cfg.tol,
	}
	cfg.logger.Debugw("fitted", "model", modelScaleAndTranslate, "A", t.A, "B", t.B, "C", t.C, "D", t.D)
	return t, nil
}

// Transform maps p into the target system.
func (t *ScaleAndTranslate) Transform(p geometry.Point2D) geometry.Point2D {
	return geometry.Point2D{
		X: t.A*p.X + t.B,
		Y: t.C*p.Y + t.D,
	}
}

// Matrix returns the transform as an affine matrix.
func (t *ScaleAndTranslate) Matrix() geometry.Matrix2x3 {
	return geometry.Matrix2x3{A: t.A, C: t.B, E: t.C, F: t.D}
}

// Inverse returns the transform mapping the target system back into the source system.
func (t *ScaleAndTranslate) Inverse() (*ScaleAndTranslate, error) {
	if math.Abs(t.A) <= t.tol || math.Abs(t.C) <= t.tol {
		return nil, &FitError{
			Kind:  KindSingularSystem,
			Model: modelScaleAndTranslate,
			Err:   errors.Errorf("scale (%v, %v) is not invertible", t.A, t.C),
		}
	}
	return &ScaleAndTranslate{
		idPoints: t.swapped(),
		A:        1 / t.A,
		B:        -t.B / t.A,
		C:        1 / t.C,
		D:        -t.D / t.C,
		tol:      t.tol,
	}, nil
}

func (t *ScaleAndTranslate) String() string {
	return fmt.Sprintf("%s: scale = (%v, %v), translation = (%v, %v)",
		modelScaleAndTranslate, t.A, t.C, t.B, t.D)
}
