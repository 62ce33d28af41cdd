// Package linsys solves dense systems of linear equations given as an
// augmented matrix [A | b].
package linsys

import (
	"fmt"
	"math"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/mat"
)

// DefaultTolerance is the smallest absolute pivot accepted by Solve.
const DefaultTolerance = 1e-6

var (
	// ErrSingular is returned when some column has no pivot above the tolerance,
	// i.e. the system has no unique solution.
	ErrSingular = errors.New("could not find a unique solution")

	// ErrShape is returned when the matrix is not dim x (dim+1).
	ErrShape = errors.New("augmented matrix must have dim rows and dim+1 columns")

	// ErrConsumed is returned when Solve is called a second time on the same System.
	ErrConsumed = errors.New("system has already been solved")
)

// Option configures a System.
type Option func(*System)

// WithTolerance sets the absolute pivot tolerance.
func WithTolerance(tol float64) Option {
	return func(s *System) {
		s.tol = tol
	}
}

// WithLogger sets the logger used for pivot diagnostics.
func WithLogger(logger *zap.SugaredLogger) Option {
	return func(s *System) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// System is a linear equation system A x = b held as the augmented matrix
// M = [A | b]. The matrix is owned by the System from NewSystem on and is
// reduced in place by Solve; it can be solved exactly once.
type System struct {
	m        [][]float64
	tol      float64
	logger   *zap.SugaredLogger
	consumed bool
}

// NewSystem takes ownership of m, which must have n rows of n+1 columns.
func NewSystem(m [][]float64, opts ...Option) *System {
	s := &System{
		m:      m,
		tol:    DefaultTolerance,
		logger: zap.NewNop().Sugar(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Solve is shorthand for NewSystem(m, opts...).Solve().
func Solve(m [][]float64, opts ...Option) ([]float64, error) {
	return NewSystem(m, opts...).Solve()
}

// Dim returns the number of unknowns, or 0 once the system is consumed.
func (s *System) Dim() int {
	if s.consumed {
		return 0
	}
	return len(s.m)
}

// Solve reduces the matrix by Gauss-Jordan elimination with partial row
// pivoting and returns the solution vector x.
func (s *System) Solve() ([]float64, error) {
	if s.consumed {
		return nil, ErrConsumed
	}
	m := s.m
	s.m = nil
	s.consumed = true

	dim := len(m)
	if err := checkShape(m); err != nil {
		return nil, err
	}

	for j := 0; j < dim; j++ {
		// First row at or below j with a usable pivot.
		i := j
		for ; i < dim; i++ {
			if math.Abs(m[i][j]) > s.tol {
				break
			}
		}
		if i == dim {
			s.logger.Debugw("no pivot found", "column", j, "dim", dim, "tolerance", s.tol)
			return nil, errors.Wrapf(ErrSingular, "column %d", j)
		}

		if i != j {
			m[i], m[j] = m[j], m[i]
		}

		pivot := m[j][j]
		s.logger.Debugw("pivot", "column", j, "row", i, "value", pivot)
		for k := 0; k <= dim; k++ {
			m[j][k] /= pivot
		}

		for r := 0; r < dim; r++ {
			if r == j {
				continue
			}
			f := m[r][j]
			if f == 0 {
				continue
			}
			for k := 0; k <= dim; k++ {
				m[r][k] -= f * m[j][k]
			}
		}
	}

	x := make([]float64, dim)
	for i := range m {
		x[i] = m[i][dim]
	}
	return x, nil
}

// String renders the current augmented matrix for diagnostics.
func (s *System) String() string {
	if s.consumed {
		return "<consumed>"
	}
	if err := checkShape(s.m); err != nil {
		return fmt.Sprintf("<invalid: %v>", err)
	}
	dim := len(s.m)
	data := make([]float64, 0, dim*(dim+1))
	for _, row := range s.m {
		data = append(data, row...)
	}
	aug := mat.NewDense(dim, dim+1, data)
	a := aug.Slice(0, dim, 0, dim)
	b := aug.ColView(dim)
	return fmt.Sprintf("A = %v\nb = %v", mat.Formatted(a, mat.Prefix("    "), mat.Squeeze()),
		mat.Formatted(b.T(), mat.Squeeze()))
}

func checkShape(m [][]float64) error {
	dim := len(m)
	if dim == 0 {
		return errors.Wrap(ErrShape, "empty matrix")
	}
	for i, row := range m {
		if len(row) != dim+1 {
			return errors.Wrapf(ErrShape, "row %d has %d columns, want %d", i, len(row), dim+1)
		}
	}
	return nil
}
