package cli

import (
	"bytes"
	"strconv"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coord-transf/pkg/transform"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()
	for _, name := range []string{"demo", "fit", "version"} {
		t.Run(name, func(t *testing.T) {
			sub, _, err := cmd.Find([]string{name})
			require.NoError(t, err)
			assert.Equal(t, name, sub.Name())
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()

	verbose := cmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verbose)
	assert.Equal(t, "v", verbose.Shorthand)

	tol := cmd.PersistentFlags().Lookup("tolerance")
	require.NotNil(t, tol)
	assert.Equal(t, "1e-06", tol.DefValue)
}

func TestInvalidTolerance(t *testing.T) {
	_, err := execute(t, "demo", "--tolerance", "0")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid tolerance")
}

func TestDemo(t *testing.T) {
	out, err := execute(t, "demo")
	require.NoError(t, err)

	assert.Equal(t, 3, strings.Count(out, "--------------------------------------------"))
	assert.Contains(t, out, "ScaleAndTranslate: scale = (")
	assert.Contains(t, out, "Affine: scale = (")
	assert.Contains(t, out, "Helmert: scale = ")
	assert.Contains(t, out, "Bilinear: ")
	assert.Equal(t, 4, strings.Count(out, "Original point -> transformed point:"))
	assert.Contains(t, out, "Standard deviation: ")
	assert.Contains(t, out, "(100, 100) -> (3.527e+06, 5.731e+06)")
}

func TestDemoVerbose(t *testing.T) {
	_, err := execute(t, "demo", "-v")
	require.NoError(t, err)
}

func TestFit(t *testing.T) {
	out, err := execute(t, "fit", "--model", "helmert",
		"--from", "0,0", "--from", "10,0", "--from", "10,10", "--from", "0,10",
		"--to", "100,50", "--to", "100,70", "--to", "80,70", "--to", "80,50",
		"-p", "5,5")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.Len(t, lines, 8)
	assert.True(t, strings.HasPrefix(lines[0], "Helmert: scale = 2, rotation = "))
	assert.Equal(t, "Original point -> transformed point:", lines[1])
	assert.Equal(t, "Standard deviation: 0", lines[6])
	assert.Equal(t, "(5, 5) -> (90, 60)", lines[7])
}

func TestFit_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"unknown model", []string{"fit", "-m", "projective", "--from", "0,0", "--to", "0,0"}, "unknown model"},
		{"bad point", []string{"fit", "--from", "1;2"}, "--from: invalid point"},
		{"bad number", []string{"fit", "--from", "0,0", "--to", "x,1"}, "--to: invalid point"},
		{"bad probe", []string{"fit", "-p", "1"}, "--point: invalid point"},
		{"too few", []string{"fit", "-m", "affine", "--from", "0,0", "--to", "1,1"}, "INVALID_INPUT"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestFit_PropagatesFitError(t *testing.T) {
	_, err := execute(t, "fit", "-m", "affine",
		"--from", "0,0", "--from", "1,1", "--from", "2,2",
		"--to", "0,0", "--to", "1,0", "--to", "0,1")
	assert.ErrorIs(t, err, transform.ErrSingularSystem)
}

func TestFit_WrapsParseCause(t *testing.T) {
	_, err := execute(t, "fit", "--from", "0,0", "--to", "x,1")
	require.Error(t, err)

	var numErr *strconv.NumError
	require.ErrorAs(t, err, &numErr)
	assert.Equal(t, "x", numErr.Num)
	assert.Same(t, numErr, errors.Cause(err))
}

func TestRootCommand_SyncsLogger(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd.PersistentPostRunE)

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"fit", "-m", "scale", "--from", "0,0", "--from", "200,200",
		"--to", "3526000,5730000", "--to", "3528000,5732000"})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "ScaleAndTranslate")
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "coordtransf "))
}
