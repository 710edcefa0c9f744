package errors_test

import (
	"errors"
	"fmt"
	"testing"

	pkgerrors "github.com/agentstation/regionmap/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestNotFoundError(t *testing.T) {
	err := pkgerrors.NewNotFoundError("profile", "columbia_cuttlefish")
	assert.Equal(t, "profile with ID columbia_cuttlefish not found", err.Error())
	assert.True(t, pkgerrors.IsNotFound(err))
	assert.True(t, pkgerrors.IsNotFound(fmt.Errorf("loading: %w", err)))
}

func TestShapeError(t *testing.T) {
	t.Run("with line and field", func(t *testing.T) {
		err := pkgerrors.NewShapeError("hierarchy", 12, "hasSides", "column missing")
		assert.Equal(t, "unexpected hierarchy shape at line 12 (field hasSides): column missing", err.Error())
		assert.True(t, pkgerrors.IsInvalidInput(err))
		assert.True(t, pkgerrors.IsShapeError(err))
	})

	t.Run("without location", func(t *testing.T) {
		err := pkgerrors.NewShapeError("annotation", 0, "", "expected 70 segments, found 69")
		assert.Equal(t, "unexpected annotation shape: expected 70 segments, found 69", err.Error())
	})

	t.Run("wrapped", func(t *testing.T) {
		err := fmt.Errorf("synthesis: %w", pkgerrors.NewShapeError("hierarchy", 0, "", "x"))
		assert.True(t, pkgerrors.IsShapeError(err))
		assert.False(t, pkgerrors.IsExhausted(err))
	})
}

func TestExhaustionError(t *testing.T) {
	err := pkgerrors.NewExhaustionError("palette", 14, 15)
	assert.Equal(t, "palette exhausted: capacity 14, needed at least 15", err.Error())
	assert.True(t, pkgerrors.IsExhausted(err))
	assert.False(t, pkgerrors.IsInvalidInput(err))
}

func TestCollisionError(t *testing.T) {
	err := pkgerrors.NewCollisionError("id", "5", []string{"optic lobe", "white body"})
	assert.Equal(t, "id 5 shared by regions: optic lobe, white body", err.Error())
	assert.True(t, pkgerrors.IsCollision(errors.Join(errors.New("validate"), err)))
}

func TestAncestryError(t *testing.T) {
	err := pkgerrors.NewAncestryError("vertical lobe", "3-4-1", "no region with index 3-4")
	assert.Contains(t, err.Error(), "vertical lobe")
	assert.Contains(t, err.Error(), "3-4")
	assert.True(t, pkgerrors.IsInvalidInput(err))
}

func TestChecksumError(t *testing.T) {
	err := &pkgerrors.ChecksumError{Path: "/tmp/x.csv", Expected: "aa", Actual: "bb"}
	assert.Equal(t, "sha256 of /tmp/x.csv is bb, expected aa", err.Error())
	assert.True(t, pkgerrors.IsChecksum(err))
}

func TestDownloadError(t *testing.T) {
	t.Run("status", func(t *testing.T) {
		err := &pkgerrors.DownloadError{URL: "https://example.org/a", StatusCode: 404}
		assert.Equal(t, "download of https://example.org/a failed (status 404)", err.Error())
	})

	t.Run("transport", func(t *testing.T) {
		base := errors.New("connection refused")
		err := &pkgerrors.DownloadError{URL: "https://example.org/a", Err: base}
		assert.ErrorIs(t, err, base)
	})
}

func TestParseError(t *testing.T) {
	tests := []struct {
		name string
		err  *pkgerrors.ParseError
		want string
	}{
		{"file and line", &pkgerrors.ParseError{Format: "csv", File: "h.csv", Line: 3, Message: "bad"}, "parse error in csv at h.csv:3: bad"},
		{"file only", &pkgerrors.ParseError{Format: "yaml", File: "p.yaml", Message: "bad"}, "parse error in yaml file p.yaml: bad"},
		{"line only", &pkgerrors.ParseError{Format: "csv", Line: 7, Message: "bad"}, "csv parse error at line 7: bad"},
		{"bare", &pkgerrors.ParseError{Format: "nrrd", Message: "bad"}, "nrrd parse error: bad"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
			assert.True(t, pkgerrors.IsInvalidInput(tt.err))
		})
	}
}

func TestWrapHelpers(t *testing.T) {
	assert.NoError(t, pkgerrors.WrapIO("read", "x", nil))
	assert.NoError(t, pkgerrors.WrapParse("csv", "x", nil))

	base := errors.New("boom")
	assert.ErrorIs(t, pkgerrors.WrapIO("read", "x", base), base)
	assert.ErrorIs(t, pkgerrors.WrapParse("csv", "x", base), base)
	assert.EqualError(t, pkgerrors.WrapIO("read", "x", base), "IO error during read of x: boom")
}
