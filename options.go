package regionmap

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/regionmap/internal/fetch"
	"github.com/agentstation/regionmap/pkg/constants"
	"github.com/agentstation/regionmap/pkg/dataset"
	"github.com/agentstation/regionmap/pkg/errors"
)

// Option is a function that configures a Client
type Option func(*config) error

type config struct {
	profile        *dataset.Profile
	profileName    string
	profileFile    string
	hierarchyFile  string
	annotationFile string
	cacheDir       string
	retriever      fetch.Retriever
	logger         *zerolog.Logger
	validate       bool
	generator      string
}

func defaultConfig() *config {
	return &config{
		profileName: constants.DefaultDataset,
		cacheDir:    constants.DefaultCacheDir,
		validate:    true,
		generator:   "regionmap",
	}
}

// options applies the given options to the client
func (c *client) options(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(c.config); err != nil {
			return err
		}
	}
	return nil
}

func (c *config) loadProfile() (*dataset.Profile, error) {
	switch {
	case c.profile != nil:
		return c.profile, nil
	case c.profileFile != "":
		return dataset.LoadFile(c.profileFile)
	default:
		return dataset.Load(c.profileName)
	}
}

// WithProfile uses an already loaded dataset profile
func WithProfile(p *dataset.Profile) Option {
	return func(c *config) error {
		if p == nil {
			return &errors.ValidationError{Field: "profile", Message: "cannot be nil"}
		}
		c.profile = p
		return nil
	}
}

// WithProfileName selects an embedded dataset profile by name
func WithProfileName(name string) Option {
	return func(c *config) error {
		if name == "" {
			return &errors.ValidationError{Field: "profile", Message: "name cannot be empty"}
		}
		c.profileName = name
		return nil
	}
}

// WithProfileFile loads the dataset profile from a YAML file
func WithProfileFile(path string) Option {
	return func(c *config) error {
		c.profileFile = path
		return nil
	}
}

// WithHierarchyFile uses a local hierarchy table instead of downloading it
func WithHierarchyFile(path string) Option {
	return func(c *config) error {
		c.hierarchyFile = path
		return nil
	}
}

// WithAnnotationFile uses a local annotation volume instead of downloading it
func WithAnnotationFile(path string) Option {
	return func(c *config) error {
		c.annotationFile = path
		return nil
	}
}

// WithCacheDir sets where downloads are cached
func WithCacheDir(dir string) Option {
	return func(c *config) error {
		if dir != "" {
			c.cacheDir = dir
		}
		return nil
	}
}

// WithRetriever replaces the downloader
func WithRetriever(r fetch.Retriever) Option {
	return func(c *config) error {
		if r == nil {
			return &errors.ValidationError{Field: "retriever", Message: "cannot be nil"}
		}
		c.retriever = r
		return nil
	}
}

// WithLogger sets the logger for every operation of the client
func WithLogger(logger *zerolog.Logger) Option {
	return func(c *config) error {
		c.logger = logger
		return nil
	}
}

// WithValidation enables or disables the final invariant check
func WithValidation(enabled bool) Option {
	return func(c *config) error {
		c.validate = enabled
		return nil
	}
}

// WithGenerator sets the generator string recorded in metadata
func WithGenerator(generator string) Option {
	return func(c *config) error {
		c.generator = generator
		return nil
	}
}
