// Package transform estimates 2D coordinate transformations from pairs of
// identical points (id-points) given in a source and a target coordinate
// system, and applies them to arbitrary points.
//
// Four models are provided:
//
//	ScaleAndTranslate  x' = A x + B                y' = C y + D                (2 points, exact)
//	Affine             x' = A x + B y + C          y' = D x + E y + F          (3 exact, N>3 least squares)
//	Helmert            Affine with A = E, B = -D                               (3 exact, N>3 least squares)
//	Bilinear           x' = A x + B y + C x y + D  y' = E x + F y + G x y + H  (4 points, exact)
//
// The point from[i] in the source system corresponds to to[i] in the target
// system. Fitted models are immutable and safe for concurrent use.
package transform

import (
	"fmt"

	"coord-transf/pkg/geometry"
)

// Transform is a fitted coordinate transformation.
type Transform interface {
	// Transform maps a point given in the source system into the target system.
	Transform(p geometry.Point2D) geometry.Point2D

	// IDPoints returns copies of the id-points the model was fitted to.
	IDPoints() (from, to []geometry.Point2D)

	fmt.Stringer
}

// AffineModel is a Transform whose mapping is an affine matrix.
type AffineModel interface {
	Transform
	Matrix() geometry.Matrix2x3
}

var (
	_ AffineModel = (*ScaleAndTranslate)(nil)
	_ AffineModel = (*Affine)(nil)
	_ AffineModel = (*Helmert)(nil)
	_ Transform   = (*Bilinear)(nil)
)

// idPoints holds private copies of the id-point sequences.
type idPoints struct {
	from, to []geometry.Point2D
}

func newIDPoints(from, to []geometry.Point2D) idPoints {
	return idPoints{from: clonePoints(from), to: clonePoints(to)}
}

// IDPoints returns copies of the id-points the model was fitted to.
func (p idPoints) IDPoints() (from, to []geometry.Point2D) {
	return clonePoints(p.from), clonePoints(p.to)
}

// swapped returns the id-points with source and target exchanged.
func (p idPoints) swapped() idPoints {
	return idPoints{from: p.to, to: p.from}
}

func clonePoints(pts []geometry.Point2D) []geometry.Point2D {
	out := make([]geometry.Point2D, len(pts))
	copy(out, pts)
	return out
}
