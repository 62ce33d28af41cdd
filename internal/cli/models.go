package cli

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"coord-transf/pkg/geometry"
	"coord-transf/pkg/transform"
)

type fitFunc func(from, to []geometry.Point2D, opts ...transform.Option) (transform.Transform, error)

// models maps the --model names onto the fitting functions.
var models = map[string]fitFunc{
	"scale": func(from, to []geometry.Point2D, opts ...transform.Option) (transform.Transform, error) {
		return nonNil(transform.FitScaleAndTranslate(from, to, opts...))
	},
	"affine": func(from, to []geometry.Point2D, opts ...transform.Option) (transform.Transform, error) {
		return nonNil(transform.FitAffine(from, to, opts...))
	},
	"helmert": func(from, to []geometry.Point2D, opts ...transform.Option) (transform.Transform, error) {
		return nonNil(transform.FitHelmert(from, to, opts...))
	},
	"bilinear": func(from, to []geometry.Point2D, opts ...transform.Option) (transform.Transform, error) {
		return nonNil(transform.FitBilinear(from, to, opts...))
	},
}

// nonNil keeps a typed nil pointer from becoming a non-nil interface.
func nonNil[T transform.Transform](t T, err error) (transform.Transform, error) {
	if err != nil {
		return nil, err
	}
	return t, nil
}

func modelNames() []string {
	names := make([]string, 0, len(models))
	for name := range models {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func fitModel(name string, from, to []geometry.Point2D, opts ...transform.Option) (transform.Transform, error) {
	fit, ok := models[name]
	if !ok {
		return nil, errors.Errorf("unknown model %q: must be one of %v", name, modelNames())
	}
	return fit(from, to, opts...)
}

// parsePoint parses "x,y".
func parsePoint(s string) (geometry.Point2D, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return geometry.Point2D{}, errors.Errorf("invalid point %q: want x,y", s)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return geometry.Point2D{}, errors.Wrapf(err, "invalid point %q", s)
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return geometry.Point2D{}, errors.Wrapf(err, "invalid point %q", s)
	}
	return geometry.Point2D{X: x, Y: y}, nil
}

func parsePoints(values []string) ([]geometry.Point2D, error) {
	out := make([]geometry.Point2D, 0, len(values))
	for _, v := range values {
		p, err := parsePoint(v)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

// writeReport prints the model, its residual mismatches, the standard
// deviation where the model has one, and the mapping of each probe point.
func writeReport(w io.Writer, t transform.Transform, probes []geometry.Point2D) {
	fmt.Fprintln(w, t)
	fmt.Fprint(w, transform.ResidualReport(t))
	if sd, ok := t.(interface{ StandardDeviation() float64 }); ok {
		fmt.Fprintf(w, "Standard deviation: %v\n", sd.StandardDeviation())
	}
	for _, p := range probes {
		fmt.Fprintf(w, "%v -> %v\n", p, t.Transform(p))
	}
}
