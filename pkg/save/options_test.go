package save_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/regionmap/pkg/errors"
	"github.com/agentstation/regionmap/pkg/save"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want save.Format
	}{
		{"", save.FormatJSON},
		{"json", save.FormatJSON},
		{" YAML ", save.FormatYAML},
		{"yml", save.FormatYAML},
	}
	for _, tt := range tests {
		got, err := save.ParseFormat(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := save.ParseFormat("csv")
	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "yaml", save.FormatYAML.Extension())
	assert.False(t, save.Format(9).IsValid())
	assert.Equal(t, "unknown", save.Format(9).String())
}

func TestApply(t *testing.T) {
	var buf bytes.Buffer
	opts := save.Defaults().Apply(
		save.WithPath("out"),
		save.WithFormat(save.FormatYAML),
		save.WithWriter(&buf),
		save.WithOverwrite(true),
	)
	assert.Equal(t, "out", opts.Path())
	assert.Equal(t, save.FormatYAML, opts.Format())
	assert.Same(t, &buf, opts.Writer())
	assert.True(t, opts.Overwrite())

	defaults := save.Defaults()
	assert.Equal(t, save.FormatJSON, defaults.Format())
	assert.False(t, defaults.Overwrite())
}
