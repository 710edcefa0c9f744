// Package regionmap synthesizes an atlas region hierarchy from a curated
// hierarchy table and a segmentation label catalogue, and writes it in the
// shape atlas packaging consumes.
//
//	client, err := regionmap.New(regionmap.WithCacheDir("~/.regionmap/downloads"))
//	result, err := client.Synthesize(ctx)
//	manifest, err := client.Package(ctx, save.WithPath("out"))
package regionmap

import (
	"context"
	"fmt"
	"sync"

	"github.com/agentstation/regionmap/internal/fetch"
	"github.com/agentstation/regionmap/internal/packaging"
	"github.com/agentstation/regionmap/internal/sources/nrrd"
	"github.com/agentstation/regionmap/internal/sources/table"
	"github.com/agentstation/regionmap/pkg/dataset"
	"github.com/agentstation/regionmap/pkg/hierarchy"
	"github.com/agentstation/regionmap/pkg/logging"
	"github.com/agentstation/regionmap/pkg/save"
)

// Client synthesizes and packages the hierarchy of one dataset.
type Client interface {
	// Profile returns the dataset profile in use
	Profile() *dataset.Profile

	// Sources resolves the local input files, downloading any not given
	Sources(ctx context.Context) (*Sources, error)

	// Synthesize reads the inputs and runs the synthesis pipeline
	Synthesize(ctx context.Context) (*hierarchy.Result, error)

	// Package synthesizes and writes the structures and metadata documents
	Package(ctx context.Context, opts ...save.Option) (*packaging.Manifest, error)

	// OnSynthesized registers a callback run after each successful synthesis
	OnSynthesized(SynthesizedHook)

	// OnPackaged registers a callback run after output has been written
	OnPackaged(PackagedHook)
}

// Sources are the resolved local input files and their sha256.
type Sources struct {
	HierarchyFile    string
	AnnotationFile   string
	HierarchySHA256  string
	AnnotationSHA256 string
}

// Checksums maps source roles to sha256, as recorded in metadata.
func (s *Sources) Checksums() map[string]string {
	return map[string]string{
		"hierarchy":  s.HierarchySHA256,
		"annotation": s.AnnotationSHA256,
	}
}

type client struct {
	mu      sync.Mutex
	config  *config
	profile *dataset.Profile
	hooks   *hooks
}

// New creates a Client with the given options.
func New(opts ...Option) (Client, error) {
	c := &client{
		config: defaultConfig(),
		hooks:  newHooks(),
	}
	if err := c.options(opts...); err != nil {
		return nil, fmt.Errorf("applying options: %w", err)
	}

	profile, err := c.config.loadProfile()
	if err != nil {
		return nil, fmt.Errorf("loading dataset profile: %w", err)
	}
	if err := profile.Validate(); err != nil {
		return nil, fmt.Errorf("validating dataset profile: %w", err)
	}
	c.profile = profile

	if c.config.retriever == nil {
		c.config.retriever = fetch.New(c.config.cacheDir)
	}
	return c, nil
}

func (c *client) Profile() *dataset.Profile {
	return c.profile
}

func (c *client) context(ctx context.Context) context.Context {
	if c.config.logger != nil {
		ctx = logging.WithLogger(ctx, c.config.logger)
	}
	return logging.WithDataset(ctx, c.profile.Name)
}

func (c *client) Sources(ctx context.Context) (*Sources, error) {
	ctx = c.context(ctx)
	src := &Sources{
		HierarchyFile:  c.config.hierarchyFile,
		AnnotationFile: c.config.annotationFile,
	}

	var err error
	if src.HierarchyFile == "" {
		if src.HierarchyFile, err = c.config.retriever.Retrieve(ctx, c.profile.Sources.Hierarchy); err != nil {
			return nil, fmt.Errorf("retrieving hierarchy table: %w", err)
		}
	}
	if src.AnnotationFile == "" {
		if src.AnnotationFile, err = c.config.retriever.Retrieve(ctx, c.profile.Sources.Annotation); err != nil {
			return nil, fmt.Errorf("retrieving annotation volume: %w", err)
		}
	}

	if src.HierarchySHA256, err = fetch.FileSHA256(src.HierarchyFile); err != nil {
		return nil, fmt.Errorf("hashing hierarchy table: %w", err)
	}
	if src.AnnotationSHA256, err = fetch.FileSHA256(src.AnnotationFile); err != nil {
		return nil, fmt.Errorf("hashing annotation volume: %w", err)
	}
	return src, nil
}

func (c *client) Synthesize(ctx context.Context) (*hierarchy.Result, error) {
	result, _, err := c.synthesize(ctx)
	return result, err
}

func (c *client) synthesize(ctx context.Context) (*hierarchy.Result, *Sources, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	src, err := c.Sources(ctx)
	if err != nil {
		return nil, nil, err
	}

	ctx = c.context(ctx)
	rows, err := table.ReadFile(ctx, src.HierarchyFile)
	if err != nil {
		return nil, nil, err
	}
	cat, err := nrrd.ReadCatalogue(ctx, src.AnnotationFile, c.profile.SegmentCount)
	if err != nil {
		return nil, nil, err
	}

	s, err := hierarchy.New(c.profile, hierarchy.WithValidation(c.config.validate))
	if err != nil {
		return nil, nil, err
	}
	result, err := s.Run(ctx, rows, cat)
	if err != nil {
		return nil, nil, err
	}

	c.hooks.triggerSynthesized(result)
	return result, src, nil
}

func (c *client) Package(ctx context.Context, opts ...save.Option) (*packaging.Manifest, error) {
	result, src, err := c.synthesize(ctx)
	if err != nil {
		return nil, err
	}

	manifest, err := packaging.Write(c.context(ctx), packaging.Input{
		Result:    result,
		Profile:   c.profile,
		Sources:   src.Checksums(),
		Generator: c.config.generator,
	}, opts...)
	if err != nil {
		return nil, err
	}

	c.hooks.triggerPackaged(manifest)
	return manifest, nil
}

func (c *client) OnSynthesized(fn SynthesizedHook) {
	c.hooks.OnSynthesized(fn)
}

func (c *client) OnPackaged(fn PackagedHook) {
	c.hooks.OnPackaged(fn)
}
