package hierarchy

import (
	"context"
	"fmt"
	"time"

	"github.com/agentstation/utc"

	"github.com/agentstation/regionmap/pkg/dataset"
	"github.com/agentstation/regionmap/pkg/errors"
	"github.com/agentstation/regionmap/pkg/logging"
	"github.com/agentstation/regionmap/pkg/regions"
)

// Synthesizer runs the synthesis pipeline for one dataset profile.
type Synthesizer struct {
	profile *dataset.Profile
	options *options
}

// New creates a Synthesizer. The profile is validated up front.
func New(p *dataset.Profile, opts ...Option) (*Synthesizer, error) {
	if p == nil {
		return nil, &errors.ValidationError{Field: "profile", Message: "cannot be nil"}
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	o, err := defaultOptions().apply(opts...)
	if err != nil {
		return nil, err
	}
	return &Synthesizer{profile: p, options: o}, nil
}

// Result is the outcome of a synthesis run.
type Result struct {
	// Regions in table order with the root last.
	Regions []regions.Region

	// Stripped lists rows whose malformed fields were removed.
	Stripped []StrippedRecord

	// OrderViolations lists rows that do not follow their parent in the table.
	OrderViolations []OrderViolation

	// UnusedLabels are catalogue acronyms no region matched.
	UnusedLabels []string

	Metadata ResultMetadata
}

// ResultMetadata describes a synthesis run.
type ResultMetadata struct {
	Dataset   string           `json:"dataset" yaml:"dataset"`
	StartTime utc.Time         `json:"start_time" yaml:"start_time"`
	EndTime   utc.Time         `json:"end_time" yaml:"end_time"`
	Duration  time.Duration    `json:"duration" yaml:"duration"`
	Stats     ResultStatistics `json:"stats" yaml:"stats"`
}

// ResultStatistics counts what each stage did.
type ResultStatistics struct {
	RawRows       int `json:"raw_rows" yaml:"raw_rows"`
	Expanded      int `json:"expanded" yaml:"expanded"`
	Synthetic     int `json:"synthetic" yaml:"synthetic"`
	Reserved      int `json:"reserved" yaml:"reserved"`
	Matched       int `json:"matched" yaml:"matched"`
	PaletteUsed   int `json:"palette_used" yaml:"palette_used"`
	FillersUsed   int `json:"fillers_used" yaml:"fillers_used"`
	StrippedRows  int `json:"stripped_rows" yaml:"stripped_rows"`
	TotalRegions  int `json:"total_regions" yaml:"total_regions"`
	CatalogueSize int `json:"catalogue_size" yaml:"catalogue_size"`
}

// Summary returns a one line human-readable summary of the result.
func (r *Result) Summary() string {
	s := r.Metadata.Stats
	return fmt.Sprintf("%d regions from %d rows: %d matched, %d synthetic, %d reserved, %d palette colours, %d filler acronyms",
		s.TotalRegions, s.RawRows, s.Matched, s.Synthetic, s.Reserved, s.PaletteUsed, s.FillersUsed)
}

// Region returns the region with id, if present.
func (r *Result) Region(id int) (regions.Region, bool) {
	for _, reg := range r.Regions {
		if reg.ID == id {
			return reg, true
		}
	}
	return regions.Region{}, false
}

// Tree links the result's regions.
func (r *Result) Tree() (*Tree, error) {
	return BuildTree(r.Regions)
}

func (r *Result) finalize() {
	r.Metadata.EndTime = utc.Now()
	r.Metadata.Duration = r.Metadata.EndTime.Sub(r.Metadata.StartTime)
	r.Metadata.Stats.TotalRegions = len(r.Regions)
}

// Run synthesizes the region hierarchy from the table rows and the segment
// catalogue. The input rows are not modified. Any stage failure aborts the
// run and no result is returned.
func (s *Synthesizer) Run(ctx context.Context, rows []regions.RawRecord, cat *regions.Catalogue) (*Result, error) {
	if s.options.logger != nil && logging.FromContext(ctx) == logging.Default() {
		ctx = logging.WithLogger(ctx, s.options.logger)
	}
	ctx = logging.WithDataset(ctx, s.profile.Name)
	logger := logging.FromContext(ctx)

	result := &Result{
		Metadata: ResultMetadata{
			Dataset:   s.profile.Name,
			StartTime: utc.Now(),
		},
	}
	stats := &result.Metadata.Stats
	stats.RawRows = len(rows)
	stats.CatalogueSize = cat.Len()

	logger.Info().
		Int("rows", len(rows)).
		Int("labels", cat.Len()).
		Msg("Synthesizing region hierarchy")

	rs, err := Expand(rows, s.profile.Sides)
	if err != nil {
		return nil, err
	}
	stats.Expanded = len(rs)
	logging.FromContext(logging.WithStage(ctx, logging.StageExpand)).Debug().
		Int("regions", len(rs)).
		Msg("Bilateral rows expanded")

	nctx := logging.WithStage(ctx, logging.StageNormalize)
	ns, err := Normalize(nctx, rs, NewIDAllocator(s.profile.Bands), s.profile)
	if err != nil {
		return nil, err
	}
	stats.Synthetic = ns.Synthetic
	stats.Reserved = ns.Reserved
	stats.StrippedRows = len(ns.Stripped)
	result.Stripped = ns.Stripped
	logging.FromContext(nctx).Debug().
		Int("synthetic", ns.Synthetic).
		Int("reserved", ns.Reserved).
		Int("stripped", len(ns.Stripped)).
		Msg("Paths normalized")

	rctx := logging.WithStage(ctx, logging.StageReconcile)
	rs, rstats, err := Reconcile(rctx, rs, cat, s.profile)
	if err != nil {
		return nil, err
	}
	if err := CatalogueConflicts(rs, cat); err != nil {
		return nil, err
	}
	stats.Matched = rstats.Matched
	result.UnusedLabels = rstats.UnusedLabels
	result.OrderViolations = rstats.OrderViolations
	logging.FromContext(rctx).Debug().
		Int("matched", rstats.Matched).
		Int("unused_labels", len(rstats.UnusedLabels)).
		Int("order_violations", len(rstats.OrderViolations)).
		Msg("Labels reconciled")

	fctx := logging.WithStage(ctx, logging.StageFill)
	fs, err := Fill(fctx, rs, s.profile)
	if err != nil {
		return nil, err
	}
	stats.PaletteUsed = fs.Colors
	stats.FillersUsed = fs.Acronyms
	logging.FromContext(fctx).Debug().
		Int("colors", fs.Colors).
		Int("acronyms", fs.Acronyms).
		Msg("Gaps filled")

	if s.options.validate {
		if err := Validate(rs, s.profile); err != nil {
			return nil, err
		}
		logging.FromContext(logging.WithStage(ctx, logging.StageValidate)).Debug().
			Int("regions", len(rs)).
			Msg("Invariants hold")
	}

	result.Regions = rs
	result.finalize()

	logger.Info().
		Int("regions", stats.TotalRegions).
		Dur("duration", result.Metadata.Duration).
		Msg("Region hierarchy synthesized")
	return result, nil
}

// Profile returns the dataset profile the synthesizer runs with.
func (s *Synthesizer) Profile() *dataset.Profile {
	return s.profile
}
