package fetch_test

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/regionmap/internal/fetch"
	"github.com/agentstation/regionmap/pkg/dataset"
	"github.com/agentstation/regionmap/pkg/errors"
)

const body = "hasSides,abbreviation,name,function,index\nN,VL,Vertical lobe,,1\n"

func sum(s string) string {
	h := sha256.Sum256([]byte(s))
	return hex.EncodeToString(h[:])
}

func server(t *testing.T, hits *atomic.Int32) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		switch r.URL.Path {
		case "/brain-hierarchy.csv":
			_, _ = w.Write([]byte(body))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestRetrieve(t *testing.T) {
	var hits atomic.Int32
	srv := server(t, &hits)
	f := fetch.New(t.TempDir())

	src := dataset.Source{URL: srv.URL + "/brain-hierarchy.csv?dl=1", FileName: "brain-hierarchy.csv", SHA256: sum(body)}
	path, err := f.Retrieve(context.Background(), src)
	require.NoError(t, err)
	assert.Equal(t, sum(body)[:8]+"-brain-hierarchy.csv", filepath.Base(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, body, string(data))

	// A second call reuses the cached copy.
	again, err := f.Retrieve(context.Background(), src)
	require.NoError(t, err)
	assert.Equal(t, path, again)
	assert.Equal(t, int32(1), hits.Load())
}

func TestRetrieveReplacesCorruptCache(t *testing.T) {
	var hits atomic.Int32
	srv := server(t, &hits)
	f := fetch.New(t.TempDir())

	src := dataset.Source{URL: srv.URL + "/brain-hierarchy.csv", FileName: "brain-hierarchy.csv", SHA256: sum(body)}
	require.NoError(t, os.WriteFile(f.Path(src), []byte("stale"), 0o600))

	path, err := f.Retrieve(context.Background(), src)
	require.NoError(t, err)
	got, err := fetch.FileSHA256(path)
	require.NoError(t, err)
	assert.Equal(t, sum(body), got)
	assert.Equal(t, int32(1), hits.Load())
}

func TestRetrieveChecksumMismatch(t *testing.T) {
	var hits atomic.Int32
	srv := server(t, &hits)
	dir := t.TempDir()
	f := fetch.New(dir)

	src := dataset.Source{URL: srv.URL + "/brain-hierarchy.csv", FileName: "brain-hierarchy.csv", SHA256: sum("something else")}
	_, err := f.Retrieve(context.Background(), src)
	require.Error(t, err)
	assert.True(t, errors.IsChecksum(err))

	_, statErr := os.Stat(f.Path(src))
	assert.True(t, os.IsNotExist(statErr))
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "temp file left behind")
}

func TestRetrieveHTTPError(t *testing.T) {
	var hits atomic.Int32
	srv := server(t, &hits)
	f := fetch.New(t.TempDir())

	_, err := f.Retrieve(context.Background(), dataset.Source{URL: srv.URL + "/missing.nrrd", SHA256: sum(body)})
	require.Error(t, err)
	var dl *errors.DownloadError
	require.ErrorAs(t, err, &dl)
	assert.Equal(t, http.StatusNotFound, dl.StatusCode)
	assert.Equal(t, int32(1), hits.Load(), "no retry")
}

func TestPath(t *testing.T) {
	f := fetch.New("/cache")
	assert.Equal(t, filepath.Join("/cache", "labels.nrrd"), f.Path(dataset.Source{URL: "https://example.org/x/labels.nrrd?dl=1"}))
	assert.Equal(t, filepath.Join("/cache", "01234567-a.csv"), f.Path(dataset.Source{FileName: "a.csv", SHA256: "0123456789abcdef"}))
}

func TestCheckConnectivity(t *testing.T) {
	var hits atomic.Int32
	srv := server(t, &hits)
	f := fetch.New(t.TempDir(), fetch.WithHTTPClient(srv.Client()))

	assert.NoError(t, f.CheckConnectivity(context.Background(), srv.URL))

	srv.Close()
	assert.Error(t, f.CheckConnectivity(context.Background(), srv.URL))
}
