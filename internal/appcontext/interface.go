// Package appcontext provides the shared application context interface
// used by all commands, so every command package depends on one small
// surface instead of the concrete App.
package appcontext

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/regionmap"
)

// Interface defines what commands need from the application.
// The App struct from cmd/regionmap/app implements it; tests use Mock.
type Interface interface {
	// Client returns the default regionmap client, creating it lazily.
	Client() (regionmap.Client, error)

	// ClientWithOptions creates a new client with extra options on top of
	// the configured ones, e.g. local input files given as flags.
	ClientWithOptions(...regionmap.Option) (regionmap.Client, error)

	// Logger returns the configured logger instance.
	Logger() *zerolog.Logger

	// OutputFormat returns the configured output format (table, wide, json, yaml).
	OutputFormat() string

	// OutputDir returns where build writes the packaged documents.
	OutputDir() string

	// Version returns the application version string.
	Version() string

	// Commit returns the git commit hash.
	Commit() string

	// Date returns the build date.
	Date() string

	// BuiltBy returns the build system identifier.
	BuiltBy() string
}
