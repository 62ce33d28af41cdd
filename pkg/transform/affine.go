package transform

import (
	"fmt"
	"math"

	"github.com/pkg/errors"

	"coord-transf/pkg/geometry"
)

const (
	modelAffine  = "Affine"
	modelHelmert = "Helmert"
)

// gonPerRadian converts radians to gon (400 gon per full turn).
const gonPerRadian = 200 / math.Pi

// affineFit is the result of the shared affine/Helmert estimator.
//
//	x' = A x + B y + C
//	y' = D x + E y + F
type affineFit struct {
	idPoints
	m         geometry.Matrix2x3
	conformal bool
	tol       float64
}

// Affine is the 6-parameter affine transformation: scaling in x and y,
// rotation, shear and translation. It is fitted exactly for 3 id-points and
// by least squares for more, in which case residual mismatches remain.
type Affine struct {
	affineFit
}

// Helmert is the 4-parameter similarity transformation: uniform scale,
// rotation and translation. For more than 3 id-points the fit enforces
// A = E and B = -D.
type Helmert struct {
	affineFit
}

// FitAffine computes an affine transform from at least 3 id-point pairs.
func FitAffine(from, to []geometry.Point2D, opts ...Option) (*Affine, error) {
	fit, err := estimate(from, to, false, newConfig(opts))
	if err != nil {
		return nil, err
	}
	return &Affine{fit}, nil
}

// FitHelmert computes a Helmert transform from at least 3 id-point pairs.
// With exactly 3 pairs the exact affine solution is used, as for FitAffine.
func FitHelmert(from, to []geometry.Point2D, opts ...Option) (*Helmert, error) {
	fit, err := estimate(from, to, true, newConfig(opts))
	if err != nil {
		return nil, err
	}
	return &Helmert{fit}, nil
}

func estimate(from, to []geometry.Point2D, conformal bool, cfg config) (affineFit, error) {
	model := modelAffine
	if conformal {
		model = modelHelmert
	}
	if err := checkAtLeast(model, from, to, 3); err != nil {
		return affineFit{}, err
	}

	var (
		m   geometry.Matrix2x3
		err error
	)
	if len(from) == 3 {
		m, err = exactAffine(model, from, to, cfg)
	} else {
		m, err = leastSquaresAffine(model, from, to, conformal, cfg.tol)
	}
	if err != nil {
		cfg.logger.Debugw("fit failed", "model", model, "points", len(from), "error", err)
		return affineFit{}, err
	}

	cfg.logger.Debugw("fitted", "model", model, "points", len(from),
		"A", m.A, "B", m.B, "C", m.C, "D", m.D, "E", m.E, "F", m.F)
	return affineFit{
		idPoints:  newIDPoints(from, to),
		m:         m,
		conformal: conformal,
		tol:       cfg.tol,
	}, nil
}

// exactAffine solves the 6x7 system built from exactly 3 id-point pairs.
// Collinear source points make the system singular.
func exactAffine(model string, from, to []geometry.Point2D, cfg config) (geometry.Matrix2x3, error) {
	m := make([][]float64, 0, 6)
	for i := 0; i < 3; i++ {
		f, t := from[i], to[i]
		m = append(m,
			[]float64{f.X, f.Y, 1, 0, 0, 0, t.X},
			[]float64{0, 0, 0, f.X, f.Y, 1, t.Y},
		)
	}
	p, err := cfg.solve(model, m)
	if err != nil {
		return geometry.Matrix2x3{}, err
	}
	return geometry.Matrix2x3{
		A: p[0], B: p[1], C: p[2],
		D: p[3], E: p[4], F: p[5],
	}, nil
}

// leastSquaresAffine reduces all id-points to their centroids and solves the
// normal equations in closed form. The translation maps the source centroid
// exactly onto the target centroid.
func leastSquaresAffine(model string, from, to []geometry.Point2D, conformal bool, tol float64) (geometry.Matrix2x3, error) {
	spOld := geometry.Centroid(from)
	spNew := geometry.Centroid(to)

	var sxx, syy, sxy, sxX, syY, sxY, syX float64
	for i := range from {
		dx := from[i].X - spOld.X
		dy := from[i].Y - spOld.Y
		dX := to[i].X - spNew.X
		dY := to[i].Y - spNew.Y

		sxx += dx * dx
		syy += dy * dy
		sxX += dx * dX
		syY += dy * dY
		sxY += dx * dY
		syX += dy * dX
		if !conformal {
			sxy += dx * dy
		}
	}

	var m geometry.Matrix2x3
	if conformal {
		divisor := sxx + syy
		if math.Abs(divisor) < tol {
			return m, degenerate(model, divisor)
		}
		o := (sxY - syX) / divisor
		a := (sxX + syY) / divisor
		m.A, m.B = a, -o
		m.D, m.E = o, a
	} else {
		divisor := syy*sxx - sxy*sxy
		if math.Abs(divisor) < tol {
			return m, degenerate(model, divisor)
		}
		m.A = (syy*sxX - sxy*syX) / divisor
		m.B = (sxx*syX - sxy*sxX) / divisor
		m.D = (syy*sxY - sxy*syY) / divisor
		m.E = (sxx*syY - sxy*sxY) / divisor
	}
	m.C = spNew.X - m.A*spOld.X - m.B*spOld.Y
	m.F = spNew.Y - m.D*spOld.X - m.E*spOld.Y
	return m, nil
}

func degenerate(model string, divisor float64) error {
	return &FitError{
		Kind:  KindDegenerateConfiguration,
		Model: model,
		Err:   errors.Errorf("numerical error: divisor %v", divisor),
	}
}

// Transform maps p into the target system.
func (f affineFit) Transform(p geometry.Point2D) geometry.Point2D {
	return f.m.Apply(p)
}

// Matrix returns the fitted coefficients.
func (f affineFit) Matrix() geometry.Matrix2x3 {
	return f.m
}

// StandardDeviation returns the root-mean-square residual normalized by the
// degrees of freedom: 2N-4 for Helmert, 2N-6 for affine. It is 0 for N = 3.
func (f affineFit) StandardDeviation() float64 {
	n := len(f.from)
	if n <= 3 {
		return 0
	}

	var sum float64
	for i := range f.from {
		u := f.Transform(f.from[i])
		vx := f.to[i].X - u.X
		vy := f.to[i].Y - u.Y
		sum += vx*vx + vy*vy
	}

	unknowns := 6
	if f.conformal {
		unknowns = 4
	}
	return math.Sqrt(sum / float64(2*n-unknowns))
}

func (f affineFit) inverse(model string) (affineFit, error) {
	inv, ok := f.m.Inverse(f.tol)
	if !ok {
		return affineFit{}, &FitError{
			Kind:  KindSingularSystem,
			Model: model,
			Err:   errors.Errorf("determinant %v is not invertible", f.m.Det()),
		}
	}
	// The linear part of inv * m must come back as the identity; translations
	// are left out since their rounding error scales with the coordinates.
	rt := inv.Compose(f.m)
	rt.C, rt.F = 0, 0
	if d := geometry.Identity().MaxDeviation(rt); d > f.tol {
		return affineFit{}, &FitError{
			Kind:  KindSingularSystem,
			Model: model,
			Err:   errors.Errorf("inverse round trip deviates by %v", d),
		}
	}
	return affineFit{
		idPoints:  f.swapped(),
		m:         inv,
		conformal: f.conformal,
		tol:       f.tol,
	}, nil
}

// Inverse returns the affine transform mapping the target system back into
// the source system.
func (t *Affine) Inverse() (*Affine, error) {
	fit, err := t.inverse(modelAffine)
	if err != nil {
		return nil, err
	}
	return &Affine{fit}, nil
}

func (t *Affine) String() string {
	m := t.m
	mx := math.Hypot(m.A, m.D)
	my := math.Hypot(m.B, m.E)
	alphaX := math.Atan2(m.D, m.A) * gonPerRadian
	alphaY := math.Atan2(-m.B, m.E) * gonPerRadian
	return fmt.Sprintf("%s: scale = (%v, %v), rotation = (%v gon, %v gon), translation = (%v, %v)",
		modelAffine, mx, my, alphaX, alphaY, m.C, m.F)
}

// parts returns the rotation/scale quantities a = s cos(r), o = s sin(r).
// For a least-squares Helmert fit A = E = a and D = -B = o exactly.
func (t *Helmert) parts() (a, o float64) {
	return (t.m.A + t.m.E) / 2, (t.m.D - t.m.B) / 2
}

// Scale returns the uniform scale factor sqrt(a² + o²).
func (t *Helmert) Scale() float64 {
	a, o := t.parts()
	return math.Sqrt(a*a + o*o)
}

// Rotation returns atan(o/a) in gon, in the range [-100, 100]. A fit that
// collapses every point onto one (a = o = 0) has no rotation and reports 0.
func (t *Helmert) Rotation() float64 {
	a, o := t.parts()
	if a == 0 && o == 0 {
		return 0
	}
	return math.Atan(o/a) * gonPerRadian
}

// RotationFull returns the rotation in gon over the full circle, (-200, 200].
func (t *Helmert) RotationFull() float64 {
	a, o := t.parts()
	return math.Atan2(o, a) * gonPerRadian
}

// Inverse returns the Helmert transform mapping the target system back into
// the source system.
func (t *Helmert) Inverse() (*Helmert, error) {
	fit, err := t.inverse(modelHelmert)
	if err != nil {
		return nil, err
	}
	return &Helmert{fit}, nil
}

func (t *Helmert) String() string {
	return fmt.Sprintf("%s: scale = %v, rotation = %v gon, translation = (%v, %v)",
		modelHelmert, t.Scale(), t.Rotation(), t.m.C, t.m.F)
}
