package profile

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/regionmap"
	"github.com/agentstation/regionmap/internal/appcontext"
	"github.com/agentstation/regionmap/pkg/dataset"
)

func run(t *testing.T, format string, args ...string) string {
	t.Helper()
	app := &appcontext.Mock{
		ClientFunc:        func() (regionmap.Client, error) { return regionmap.New() },
		OutputFormatValue: format,
	}
	cmd := NewCommand(app)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs(args)
	require.NoError(t, cmd.ExecuteContext(context.Background()))
	return out.String()
}

func TestProfileYAMLParsesBack(t *testing.T) {
	out := run(t, "")
	p, err := dataset.Parse([]byte(out), "stdout")
	require.NoError(t, err)

	want, err := dataset.Load("columbia_cuttlefish")
	require.NoError(t, err)
	assert.Equal(t, want, p)
}

func TestProfileJSON(t *testing.T) {
	var p dataset.Profile
	require.NoError(t, json.Unmarshal([]byte(run(t, "json")), &p))
	assert.Equal(t, 999, p.Root.ID)
	assert.Equal(t, 70, p.SegmentCount)
}

func TestProfileNames(t *testing.T) {
	assert.Contains(t, run(t, "", "--names"), "columbia_cuttlefish\n")
}
