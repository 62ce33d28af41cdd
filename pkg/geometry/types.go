// Package geometry provides the basic 2D types shared by the solver and the transformation models.
package geometry

import (
	"fmt"
	"math"

	"golang.org/x/image/math/f64"
)

// Point2D represents a 2D point with floating-point coordinates.
type Point2D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// NewPoint2D creates a new Point2D.
func NewPoint2D(x, y float64) Point2D {
	return Point2D{X: x, Y: y}
}

// Add returns the sum of two points.
func (p Point2D) Add(other Point2D) Point2D {
	return Point2D{X: p.X + other.X, Y: p.Y + other.Y}
}

// Sub returns the difference of two points.
func (p Point2D) Sub(other Point2D) Point2D {
	return Point2D{X: p.X - other.X, Y: p.Y - other.Y}
}

// Scale returns the point scaled by a factor.
func (p Point2D) Scale(factor float64) Point2D {
	return Point2D{X: p.X * factor, Y: p.Y * factor}
}

func (p Point2D) String() string {
	return fmt.Sprintf("(%v, %v)", p.X, p.Y)
}

// Centroid computes the centroid (average position) of a set of points.
func Centroid(points []Point2D) Point2D {
	if len(points) == 0 {
		return Point2D{}
	}
	var sumX, sumY float64
	for _, p := range points {
		sumX += p.X
		sumY += p.Y
	}
	n := float64(len(points))
	return Point2D{X: sumX / n, Y: sumY / n}
}

// Matrix2x3 represents a 2x3 affine transformation matrix.
// [a b c]
// [d e f]
type Matrix2x3 struct {
	A, B, C float64
	D, E, F float64
}

// Identity returns the identity matrix.
func Identity() Matrix2x3 {
	return Matrix2x3{A: 1, E: 1}
}

// Apply applies the matrix to a point.
func (m Matrix2x3) Apply(p Point2D) Point2D {
	return Point2D{
		X: m.A*p.X + m.B*p.Y + m.C,
		Y: m.D*p.X + m.E*p.Y + m.F,
	}
}

// Compose returns this matrix composed with another (m * other).
// Applying the result is equivalent to applying other first, then m.
func (m Matrix2x3) Compose(other Matrix2x3) Matrix2x3 {
	return Matrix2x3{
		A: m.A*other.A + m.B*other.D,
		B: m.A*other.B + m.B*other.E,
		C: m.A*other.C + m.B*other.F + m.C,
		D: m.D*other.A + m.E*other.D,
		E: m.D*other.B + m.E*other.E,
		F: m.D*other.C + m.E*other.F + m.F,
	}
}

// Det returns the determinant of the linear part.
func (m Matrix2x3) Det() float64 {
	return m.A*m.E - m.B*m.D
}

// MaxDeviation returns the largest absolute coefficient difference to other.
func (m Matrix2x3) MaxDeviation(other Matrix2x3) float64 {
	d := math.Abs(m.A - other.A)
	for _, v := range []float64{m.B - other.B, m.C - other.C, m.D - other.D, m.E - other.E, m.F - other.F} {
		d = math.Max(d, math.Abs(v))
	}
	return d
}

// Inverse returns the inverse matrix if |det| exceeds eps.
func (m Matrix2x3) Inverse(eps float64) (Matrix2x3, bool) {
	det := m.Det()
	if math.Abs(det) <= eps {
		return Matrix2x3{}, false
	}

	invDet := 1.0 / det
	return Matrix2x3{
		A: m.E * invDet,
		B: -m.B * invDet,
		C: (m.B*m.F - m.E*m.C) * invDet,
		D: -m.D * invDet,
		E: m.A * invDet,
		F: (m.D*m.C - m.A*m.F) * invDet,
	}, true
}

// Aff3 returns the matrix in the row-major layout used by golang.org/x/image.
func (m Matrix2x3) Aff3() f64.Aff3 {
	return f64.Aff3{m.A, m.B, m.C, m.D, m.E, m.F}
}
