package transform

import (
	"fmt"

	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"coord-transf/pkg/geometry"
	"coord-transf/pkg/linsys"
)

// Kind categorizes fitting failures.
type Kind string

const (
	// KindInvalidInput indicates wrong id-point counts or mismatched from/to lengths.
	KindInvalidInput Kind = "INVALID_INPUT"

	// KindSingularSystem indicates the linear system has no unique solution.
	KindSingularSystem Kind = "SINGULAR_SYSTEM"

	// KindDegenerateConfiguration indicates the least-squares divisor fell below
	// the tolerance (collinear or coincident id-points).
	KindDegenerateConfiguration Kind = "DEGENERATE_CONFIGURATION"
)

// FitError is returned by every Fit function. Fitting is all-or-nothing: no
// model is returned alongside a FitError.
type FitError struct {
	Kind  Kind
	Model string
	Err   error
}

// Sentinels for errors.Is. They match any FitError of the same Kind.
var (
	ErrInvalidInput            = &FitError{Kind: KindInvalidInput}
	ErrSingularSystem          = &FitError{Kind: KindSingularSystem}
	ErrDegenerateConfiguration = &FitError{Kind: KindDegenerateConfiguration}
)

// Error implements the error interface.
func (e *FitError) Error() string {
	switch {
	case e.Model == "" && e.Err == nil:
		return string(e.Kind)
	case e.Err == nil:
		return fmt.Sprintf("%s: %s", e.Model, e.Kind)
	case e.Model == "":
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", e.Model, e.Kind, e.Err)
}

// Unwrap returns the underlying cause.
func (e *FitError) Unwrap() error {
	return e.Err
}

// Is reports whether target is a FitError of the same Kind.
func (e *FitError) Is(target error) bool {
	t, ok := target.(*FitError)
	return ok && t.Kind == e.Kind
}

func invalidInput(model string, err error) error {
	return &FitError{Kind: KindInvalidInput, Model: model, Err: err}
}

// checkExact validates that both sequences hold exactly n points.
func checkExact(model string, from, to []geometry.Point2D, n int) error {
	var err error
	if len(from) != n {
		err = multierr.Append(err, errors.Errorf("%d from-points expected, got %d", n, len(from)))
	}
	if len(to) != n {
		err = multierr.Append(err, errors.Errorf("%d to-points expected, got %d", n, len(to)))
	}
	if err != nil {
		return invalidInput(model, err)
	}
	return nil
}

// checkAtLeast validates a minimum count and equal lengths.
func checkAtLeast(model string, from, to []geometry.Point2D, n int) error {
	if len(from) < n {
		return invalidInput(model, errors.Errorf("at least %d id-points expected, got %d", n, len(from)))
	}
	if len(from) != len(to) {
		return invalidInput(model, errors.Errorf("numbers of from-points and to-points must be equal: %d != %d",
			len(from), len(to)))
	}
	return nil
}

// solveErr maps a linsys failure onto the fitting taxonomy.
func solveErr(model string, err error) error {
	if errors.Is(err, linsys.ErrSingular) {
		return &FitError{Kind: KindSingularSystem, Model: model, Err: err}
	}
	return errors.Wrapf(err, "%s: solving", model)
}
