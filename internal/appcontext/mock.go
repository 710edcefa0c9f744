package appcontext

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/regionmap"
)

// Mock provides a mock implementation of Interface for testing.
// Each method can be customized by setting the corresponding function field.
// If a function field is nil, the method returns a default/zero value.
type Mock struct {
	ClientFunc            func() (regionmap.Client, error)
	ClientWithOptionsFunc func(...regionmap.Option) (regionmap.Client, error)
	LoggerFunc            func() *zerolog.Logger
	OutputFormatValue     string
	OutputDirValue        string
	VersionValue          string
}

// Client returns a client using the mock function or nil.
func (m *Mock) Client() (regionmap.Client, error) {
	if m.ClientFunc != nil {
		return m.ClientFunc()
	}
	return nil, nil
}

// ClientWithOptions returns a client using the mock function, falling back
// to ClientFunc.
func (m *Mock) ClientWithOptions(opts ...regionmap.Option) (regionmap.Client, error) {
	if m.ClientWithOptionsFunc != nil {
		return m.ClientWithOptionsFunc(opts...)
	}
	return m.Client()
}

// Logger returns a logger using the mock function or a no-op logger.
func (m *Mock) Logger() *zerolog.Logger {
	if m.LoggerFunc != nil {
		return m.LoggerFunc()
	}
	logger := zerolog.Nop()
	return &logger
}

// OutputFormat returns the configured format or "table".
func (m *Mock) OutputFormat() string {
	if m.OutputFormatValue != "" {
		return m.OutputFormatValue
	}
	return "table"
}

// OutputDir returns the configured directory or "out".
func (m *Mock) OutputDir() string {
	if m.OutputDirValue != "" {
		return m.OutputDirValue
	}
	return "out"
}

// Version returns the configured version or "dev".
func (m *Mock) Version() string {
	if m.VersionValue != "" {
		return m.VersionValue
	}
	return "dev"
}

// Commit returns "unknown".
func (m *Mock) Commit() string { return "unknown" }

// Date returns "unknown".
func (m *Mock) Date() string { return "unknown" }

// BuiltBy returns "test".
func (m *Mock) BuiltBy() string { return "test" }

// Ensure Mock implements Interface at compile time.
var _ Interface = (*Mock)(nil)
