// Package app wires configuration, logging and the regionmap client
// together for the CLI.
package app

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/agentstation/regionmap"
	"github.com/agentstation/regionmap/pkg/errors"
)

// App represents the regionmap application with all its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	config *Config
	logger *zerolog.Logger

	// Client is created lazily after flags are parsed
	mu     sync.RWMutex
	client regionmap.Client
}

// New creates a new App instance with the given version information.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
	}

	config, err := LoadConfig()
	if err != nil {
		return nil, err
	}
	app.config = config

	logger := NewLogger(config)
	app.logger = &logger

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	return app, nil
}

// Version returns the version information.
func (a *App) Version() string {
	return a.version
}

// Commit returns the git commit hash.
func (a *App) Commit() string {
	return a.commit
}

// Date returns the build date.
func (a *App) Date() string {
	return a.date
}

// BuiltBy returns the build system identifier.
func (a *App) BuiltBy() string {
	return a.builtBy
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// OutputFormat returns the --format value.
func (a *App) OutputFormat() string {
	return a.config.Format
}

// OutputDir returns the configured build output directory.
func (a *App) OutputDir() string {
	return a.config.OutputDir
}

// Client returns the regionmap client, creating it on first use.
func (a *App) Client() (regionmap.Client, error) {
	a.mu.RLock()
	if a.client != nil {
		c := a.client
		a.mu.RUnlock()
		return c, nil
	}
	a.mu.RUnlock()

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.client != nil {
		return a.client, nil
	}

	c, err := regionmap.New(a.clientOptions()...)
	if err != nil {
		return nil, errors.NewConfigError("client", "creating regionmap client", err)
	}
	a.client = c
	return c, nil
}

// ClientWithOptions returns a new client with opts applied after the
// configured options.
func (a *App) ClientWithOptions(opts ...regionmap.Option) (regionmap.Client, error) {
	c, err := regionmap.New(append(a.clientOptions(), opts...)...)
	if err != nil {
		return nil, errors.NewConfigError("client", "creating regionmap client with custom options", err)
	}
	return c, nil
}

// Shutdown releases the client. A later Client call creates a fresh one.
func (a *App) Shutdown(ctx context.Context) error {
	a.mu.Lock()
	a.client = nil
	a.mu.Unlock()
	return ctx.Err()
}

func (a *App) clientOptions() []regionmap.Option {
	opts := []regionmap.Option{
		regionmap.WithLogger(a.logger),
		regionmap.WithCacheDir(a.config.CacheDir),
		regionmap.WithGenerator("regionmap " + a.version),
	}
	if a.config.ProfileFile != "" {
		opts = append(opts, regionmap.WithProfileFile(a.config.ProfileFile))
	} else if a.config.Dataset != "" {
		opts = append(opts, regionmap.WithProfileName(a.config.Dataset))
	}
	if a.config.HierarchyFile != "" {
		opts = append(opts, regionmap.WithHierarchyFile(a.config.HierarchyFile))
	}
	if a.config.AnnotationFile != "" {
		opts = append(opts, regionmap.WithAnnotationFile(a.config.AnnotationFile))
	}
	return opts
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		if config == nil {
			return &errors.ValidationError{Field: "config", Message: "cannot be nil"}
		}
		a.config = config
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		return nil
	}
}

// WithClient sets the regionmap client (useful for testing).
func WithClient(c regionmap.Client) Option {
	return func(a *App) error {
		a.client = c
		return nil
	}
}
