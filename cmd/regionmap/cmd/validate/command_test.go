package validate

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/regionmap"
	"github.com/agentstation/regionmap/internal/appcontext"
	"github.com/agentstation/regionmap/internal/testutil"
	"github.com/agentstation/regionmap/pkg/errors"
	"github.com/agentstation/regionmap/pkg/hierarchy"
	"github.com/agentstation/regionmap/pkg/logging"
)

func mock(t *testing.T, opts ...regionmap.Option) (*appcontext.Mock, *logging.TestLogger) {
	t.Helper()
	logger := logging.NewTestLogger(t)
	return &appcontext.Mock{
		ClientWithOptionsFunc: func(extra ...regionmap.Option) (regionmap.Client, error) {
			return testutil.Client(t, append(opts, extra...)...), nil
		},
		LoggerFunc:        func() *zerolog.Logger { return logger.Logger },
		OutputFormatValue: "table",
	}, logger
}

func run(app appcontext.Interface, args ...string) (string, error) {
	cmd := NewCommand(app)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestValidatePasses(t *testing.T) {
	app, logger := mock(t)
	out, err := run(app)
	require.NoError(t, err)
	assert.Contains(t, out, "Total regions")
	assert.Contains(t, logger.Messages(zerolog.InfoLevel), "6 regions from 3 rows: 3 matched, 3 synthetic, 0 reserved, 3 palette colours, 0 filler acronyms")
}

func TestValidateFailsOnBrokenInput(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.csv")
	// DR points at a parent index nobody has.
	require.NoError(t, os.WriteFile(bad, []byte("hasSides,abbreviation,name,function,index\nN,VL,Vertical lobe,,1\nY,DR,Deep retina,,4-1\n"), 0o600))

	app, _ := mock(t, regionmap.WithHierarchyFile(bad))
	_, err := run(app)
	require.Error(t, err)
	assert.True(t, errors.IsInvalidInput(err))
}

func TestValidateStrictFlagsUnusedLabels(t *testing.T) {
	dir := t.TempDir()
	annotation := filepath.Join(dir, "annotation.nrrd")
	segments := append(append([]string{}, testutil.Segments...), "1 1 1|60|ZZ")
	require.NoError(t, os.WriteFile(annotation, []byte(testutil.AnnotationNRRD(segments...)), 0o600))

	p := testutil.Profile(t)
	p.SegmentCount = len(segments)
	app, logger := mock(t, regionmap.WithProfile(p), regionmap.WithAnnotationFile(annotation))
	_, err := run(app)
	require.NoError(t, err)
	assert.Contains(t, logger.Messages(zerolog.WarnLevel), "Catalogue labels not used by any region")

	_, err = run(app, "--strict")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "catalogue label ZZ is not used by any region")
}

func TestStrict(t *testing.T) {
	assert.NoError(t, Strict(&hierarchy.Result{}))

	err := Strict(&hierarchy.Result{
		OrderViolations: []hierarchy.OrderViolation{{Region: "DRl", Positional: "VL", Structural: "OLl"}},
		Stripped:        []hierarchy.StrippedRecord{{Line: 6, Name: "vasomotor", Fields: []string{"x"}}},
	})
	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))
	assert.True(t, errors.IsShapeError(err))
	assert.Contains(t, err.Error(), "DRl follows VL but belongs under OLl")
}
