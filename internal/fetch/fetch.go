// Package fetch downloads dataset sources into a local cache and verifies
// them against their known sha256. A download is attempted once.
package fetch

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/agentstation/regionmap/pkg/constants"
	"github.com/agentstation/regionmap/pkg/dataset"
	"github.com/agentstation/regionmap/pkg/errors"
	"github.com/agentstation/regionmap/pkg/logging"
)

// Retriever resolves a source to a verified local file.
type Retriever interface {
	Retrieve(ctx context.Context, src dataset.Source) (string, error)
}

// Fetcher downloads sources into CacheDir.
type Fetcher struct {
	CacheDir string
	Client   *http.Client
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithHTTPClient sets the HTTP client used for downloads.
func WithHTTPClient(c *http.Client) Option {
	return func(f *Fetcher) {
		f.Client = c
	}
}

// New creates a Fetcher caching into cacheDir.
func New(cacheDir string, opts ...Option) *Fetcher {
	f := &Fetcher{
		CacheDir: cacheDir,
		Client:   &http.Client{Timeout: constants.DefaultHTTPTimeout},
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Path returns where src is cached.
func (f *Fetcher) Path(src dataset.Source) string {
	name := src.FileName
	if name == "" {
		name = filepath.Base(strings.SplitN(src.URL, "?", 2)[0])
	}
	if len(src.SHA256) >= 8 {
		name = src.SHA256[:8] + "-" + name
	}
	return filepath.Join(f.CacheDir, name)
}

// Retrieve returns the path of a verified local copy of src, downloading it
// when the cache holds no copy or a copy with the wrong hash.
func (f *Fetcher) Retrieve(ctx context.Context, src dataset.Source) (string, error) {
	logger := logging.FromContext(logging.WithFields(ctx, map[string]any{
		"stage":  string(logging.StageFetch),
		"source": src.URL,
	}))
	path := f.Path(src)

	if sum, err := FileSHA256(path); err == nil {
		if src.SHA256 == "" || strings.EqualFold(sum, src.SHA256) {
			logger.Debug().Str("path", path).Msg("Using cached download")
			return path, nil
		}
		logger.Warn().Str("path", path).Str("sha256", sum).Msg("Cached download has wrong hash, fetching again")
	}

	if err := os.MkdirAll(f.CacheDir, constants.DirPermissions); err != nil {
		return "", errors.WrapIO("create", f.CacheDir, err)
	}

	logger.Info().Str("path", path).Msg("Downloading")
	if err := f.download(ctx, src, path); err != nil {
		return "", err
	}
	logger.Info().Str("path", path).Msg("Downloaded")
	return path, nil
}

func (f *Fetcher) download(ctx context.Context, src dataset.Source, path string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src.URL, nil)
	if err != nil {
		return &errors.DownloadError{URL: src.URL, Err: err}
	}
	resp, err := f.Client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return errors.ErrCanceled
		}
		return &errors.DownloadError{URL: src.URL, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return &errors.DownloadError{URL: src.URL, StatusCode: resp.StatusCode}
	}

	tempFile, err := os.CreateTemp(f.CacheDir, ".download_*")
	if err != nil {
		return errors.WrapIO("create", "temp file", err)
	}
	tempPath := tempFile.Name()
	defer func() { _ = os.Remove(tempPath) }()

	h := sha256.New()
	_, err = io.Copy(io.MultiWriter(tempFile, h), resp.Body)
	if cerr := tempFile.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return errors.WrapIO("write", path, err)
	}

	sum := hex.EncodeToString(h.Sum(nil))
	if src.SHA256 != "" && !strings.EqualFold(sum, src.SHA256) {
		return &errors.ChecksumError{Path: src.URL, Expected: src.SHA256, Actual: sum}
	}

	if err := os.Rename(tempPath, path); err != nil {
		return errors.WrapIO("move", path, err)
	}
	return nil
}

// FileSHA256 returns the hex sha256 of the file at path.
func FileSHA256(path string) (string, error) {
	f, err := os.Open(path) //nolint:gosec // cache path
	if err != nil {
		return "", err
	}
	defer func() { _ = f.Close() }()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// CheckConnectivity reports whether url answers within the connectivity
// timeout.
func (f *Fetcher) CheckConnectivity(ctx context.Context, url string) error {
	ctx, cancel := context.WithTimeout(ctx, constants.ConnectivityTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		return &errors.DownloadError{URL: url, Err: err}
	}
	resp, err := f.Client.Do(req)
	if err != nil {
		return &errors.DownloadError{URL: url, Err: err}
	}
	_ = resp.Body.Close()
	if resp.StatusCode >= http.StatusInternalServerError {
		return &errors.DownloadError{URL: url, StatusCode: resp.StatusCode}
	}
	return nil
}
