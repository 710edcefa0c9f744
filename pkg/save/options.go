// Package save holds the options shared by everything that writes
// synthesized regions to disk or to a stream.
package save

import (
	"io"
	"strings"

	"github.com/agentstation/regionmap/pkg/errors"
)

// Format is an output encoding.
type Format int

// Format constants.
const (
	FormatJSON Format = iota
	FormatYAML
)

// IsValid checks if the format is valid.
func (f Format) IsValid() bool {
	switch f {
	case FormatJSON, FormatYAML:
		return true
	default:
		return false
	}
}

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatYAML:
		return "yaml"
	}
	return "unknown"
}

// Extension returns the file extension for the format, without the dot.
func (f Format) Extension() string {
	return f.String()
}

// ParseFormat parses "json", "yaml" or "yml".
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json", "":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return FormatJSON, errors.NewValidationError("format", s, "must be json or yaml")
}

// Options is the configuration for save.
type Options struct {
	path      string
	writer    io.Writer
	format    Format
	overwrite bool
}

// Path returns the output directory.
func (s *Options) Path() string {
	return s.path
}

// Writer returns the stream to write to instead of a directory.
func (s *Options) Writer() io.Writer {
	return s.writer
}

// Format returns the output encoding.
func (s *Options) Format() Format {
	return s.format
}

// Overwrite reports whether existing output files may be replaced.
func (s *Options) Overwrite() bool {
	return s.overwrite
}

// Defaults returns the default save options.
func Defaults() *Options {
	return &Options{
		format: FormatJSON,
	}
}

// Apply applies the given options to the save options.
func (s *Options) Apply(opts ...Option) Options {
	for _, opt := range opts {
		opt(s)
	}
	return *s
}

// Option is a function that configures save options.
type Option func(*Options)

// WithFormat sets the output encoding.
func WithFormat(f Format) Option {
	return func(s *Options) {
		s.format = f
	}
}

// WithPath sets the output directory.
func WithPath(path string) Option {
	return func(s *Options) {
		s.path = path
	}
}

// WithWriter writes the structures document to w instead of a directory.
func WithWriter(w io.Writer) Option {
	return func(s *Options) {
		s.writer = w
	}
}

// WithOverwrite allows replacing files from an earlier run.
func WithOverwrite(enabled bool) Option {
	return func(s *Options) {
		s.overwrite = enabled
	}
}
