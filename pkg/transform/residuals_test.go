package transform

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coord-transf/pkg/geometry"
)

// offsetTransform shifts by a fixed vector; it exercises Residuals through the
// interface alone.
type offsetTransform struct {
	from, to []geometry.Point2D
	dx, dy   float64
}

func (o offsetTransform) Transform(p geometry.Point2D) geometry.Point2D {
	return geometry.Point2D{X: p.X + o.dx, Y: p.Y + o.dy}
}

func (o offsetTransform) IDPoints() (from, to []geometry.Point2D) {
	return o.from, o.to
}

func (o offsetTransform) String() string { return "offset" }

func TestResiduals_Interface(t *testing.T) {
	tr := offsetTransform{
		from: pts(0, 0, 1, 1),
		to:   pts(1, 1, 5, 5),
		dx:   1,
		dy:   1,
	}

	rs := Residuals(tr)
	require.Len(t, rs, 2)

	assert.Equal(t, Residual{
		Index:  0,
		From:   geometry.Point2D{},
		To:     geometry.Point2D{X: 1, Y: 1},
		Mapped: geometry.Point2D{X: 1, Y: 1},
	}, rs[0])

	assert.Equal(t, 1, rs[1].Index)
	assert.Equal(t, 3.0, rs[1].DX)
	assert.Equal(t, 3.0, rs[1].DY)
	assert.InDelta(t, 3*math.Sqrt2, rs[1].Delta, 1e-12)

	assert.InDelta(t, 3, RMS(rs), 1e-12)
	assert.InDelta(t, 3*math.Sqrt2, MaxDelta(rs), 1e-12)
}

func TestResiduals_Empty(t *testing.T) {
	assert.Equal(t, 0.0, RMS(nil))
	assert.Equal(t, 0.0, MaxDelta(nil))
}

func TestResiduals_ExactFitForEveryModel(t *testing.T) {
	st, err := FitScaleAndTranslate(pts(0, 0, 200, 200), pts(3526000, 5730000, 3528000, 5732000))
	require.NoError(t, err)
	af, err := FitAffine(pts(5.75, 7.25, 15.75, 8, 7.25, 13.75), pts(100, 100, 200, 100, 100, 150))
	require.NoError(t, err)
	he, err := FitHelmert(pts(0, 0, 10, 0, 0, 10), pts(1, 1, 1, 3, -1, 1))
	require.NoError(t, err)
	bl, err := FitBilinear(pts(5.75, 7.25, 15.75, 8, 18.5, 15, 7.25, 13.75), pts(100, 100, 200, 100, 200, 150, 100, 150))
	require.NoError(t, err)

	for _, tr := range []Transform{st, af, he, bl} {
		t.Run(strings.SplitN(tr.String(), ":", 2)[0], func(t *testing.T) {
			rs := Residuals(tr)
			from, _ := tr.IDPoints()
			require.Len(t, rs, len(from))
			// Large target coordinates leave a little more rounding.
			assert.Less(t, MaxDelta(rs), 1e-6)
		})
	}
}

func TestResidualReport(t *testing.T) {
	tr := offsetTransform{
		from: pts(0, 0, 1, 1),
		to:   pts(1, 1, 5, 5),
		dx:   1,
		dy:   1,
	}

	want := "Original point -> transformed point:\n" +
		"(0, 0) -> (1, 1): (0, 0), delta = 0\n" +
		"(1, 1) -> (2, 2): (3, 3), delta = 4.242640687119285\n"
	assert.Equal(t, want, ResidualReport(tr))
}

func TestResidualReport_Helmert(t *testing.T) {
	tr, err := FitHelmert(pts(0, 0, 100, 0, 100, 100, 0, 100), pts(-5.1, -5, 0, -4.9, 0.1, 0, -5, -0.1))
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSuffix(ResidualReport(tr), "\n"), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "Original point -> transformed point:", lines[0])
	for _, l := range lines[1:] {
		assert.Contains(t, l, "), delta = ")
	}
}
