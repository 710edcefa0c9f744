package fetch

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/regionmap"
	"github.com/agentstation/regionmap/internal/appcontext"
	"github.com/agentstation/regionmap/internal/fetch"
	"github.com/agentstation/regionmap/internal/testutil"
	"github.com/agentstation/regionmap/pkg/errors"
)

func TestFetchReportsSources(t *testing.T) {
	client := testutil.Client(t)
	app := &appcontext.Mock{
		ClientFunc:        func() (regionmap.Client, error) { return client, nil },
		OutputFormatValue: "json",
	}

	cmd := NewCommand(app)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs(nil)
	require.NoError(t, cmd.ExecuteContext(context.Background()))

	var sources []Source
	require.NoError(t, json.Unmarshal(out.Bytes(), &sources))
	require.Len(t, sources, 2)
	assert.Equal(t, "hierarchy", sources[0].Role)
	assert.Equal(t, "annotation", sources[1].Role)

	sum, err := fetch.FileSHA256(sources[0].Path)
	require.NoError(t, err)
	assert.Equal(t, sum, sources[0].SHA256)
}

func TestFetchPropagatesClientError(t *testing.T) {
	app := &appcontext.Mock{
		ClientFunc: func() (regionmap.Client, error) {
			return nil, errors.NewConfigError("client", "broken", nil)
		},
	}

	cmd := NewCommand(app)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs(nil)
	err := cmd.ExecuteContext(context.Background())
	var cfgErr *errors.ConfigError
	assert.ErrorAs(t, err, &cfgErr)
}

func TestFetchCheck(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodHead, r.Method)
		if r.URL.Path == "/broken" {
			w.WriteHeader(http.StatusBadGateway)
		}
	}))
	t.Cleanup(srv.Close)

	p := testutil.Profile(t)
	p.Sources.Hierarchy.URL = srv.URL + "/hierarchy.csv"
	p.Sources.Annotation.URL = srv.URL + "/broken"
	p.Sources.Template.URL = ""
	client := testutil.Client(t, regionmap.WithProfile(p))

	app := &appcontext.Mock{
		ClientFunc:        func() (regionmap.Client, error) { return client, nil },
		OutputFormatValue: "json",
	}
	cmd := NewCommand(app)
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--check"})
	err := cmd.ExecuteContext(context.Background())

	var dlErr *errors.DownloadError
	require.ErrorAs(t, err, &dlErr)
	assert.Equal(t, http.StatusBadGateway, dlErr.StatusCode)

	var results []Reachability
	require.NoError(t, json.Unmarshal(out.Bytes(), &results))
	require.Len(t, results, 2)
	assert.Equal(t, "ok", results[0].Status)
	assert.Equal(t, "annotation", results[1].Role)
	assert.NotEqual(t, "ok", results[1].Status)
}
