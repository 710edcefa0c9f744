// Package dataset describes the dataset-specific knowledge that hierarchy
// synthesis needs: where the sources live, which ids are reserved, the id
// bands, the fallback palette and filler acronyms. Profiles are YAML
// documents; the shipped ones are embedded in the binary.
package dataset

import (
	"fmt"
	"slices"

	"github.com/agentstation/regionmap/pkg/constants"
	"github.com/agentstation/regionmap/pkg/errors"
	"github.com/agentstation/regionmap/pkg/regions"
)

// Profile is the complete description of one dataset.
type Profile struct {
	Name           string        `yaml:"name" json:"name"`
	Atlas          Atlas         `yaml:"atlas" json:"atlas"`
	Sources        Sources       `yaml:"sources" json:"sources"`
	Root           Root          `yaml:"root" json:"root"`
	Bands          Bands         `yaml:"bands" json:"bands"`
	Reserved       []Reservation `yaml:"reserved" json:"reserved"`
	Sides          Sides         `yaml:"sides" json:"sides"`
	SegmentCount   int           `yaml:"segment_count" json:"segment_count"`
	Palette        []regions.RGB `yaml:"palette" json:"palette"`
	FillerAcronyms []string      `yaml:"filler_acronyms" json:"filler_acronyms"`
}

// Atlas holds the descriptive metadata written next to the structures.
type Atlas struct {
	Name        string    `yaml:"name" json:"name"`
	Version     string    `yaml:"version" json:"version"`
	Species     string    `yaml:"species" json:"species"`
	Link        string    `yaml:"link" json:"link"`
	Citation    string    `yaml:"citation" json:"citation"`
	Orientation string    `yaml:"orientation" json:"orientation"`
	Resolution  []float64 `yaml:"resolution,flow" json:"resolution"`
	Packager    string    `yaml:"packager" json:"packager"`
}

// Source is one downloadable input.
type Source struct {
	URL      string `yaml:"url" json:"url"`
	FileName string `yaml:"file_name" json:"file_name"`
	SHA256   string `yaml:"sha256" json:"sha256"`
}

// Sources lists the dataset inputs.
type Sources struct {
	Hierarchy  Source `yaml:"hierarchy" json:"hierarchy"`
	Annotation Source `yaml:"annotation" json:"annotation"`
	Template   Source `yaml:"template" json:"template"`
}

// Root describes the synthetic whole-volume region.
type Root struct {
	ID    int    `yaml:"id" json:"id"`
	Label string `yaml:"label" json:"label"`
}

// Bands configures synthetic id allocation.
type Bands struct {
	Width               int    `yaml:"width" json:"width"`
	AuthoritativeMarker int    `yaml:"authoritative_marker" json:"authoritative_marker"`
	Levels              []Band `yaml:"levels" json:"levels"`
}

// Band is the id range used for one depth.
type Band struct {
	Depth int `yaml:"depth" json:"depth"`
	Start int `yaml:"start" json:"start"`
}

// Reservation pins an acronym to a fixed id.
type Reservation struct {
	Acronym string `yaml:"acronym" json:"acronym"`
	ID      int    `yaml:"id" json:"id"`
}

// SideMarker is what a bilateral copy appends to acronym and name.
type SideMarker struct {
	Acronym string `yaml:"acronym" json:"acronym"`
	Name    string `yaml:"name" json:"name"`
}

// Sides holds the left and right markers.
type Sides struct {
	Left  SideMarker `yaml:"left" json:"left"`
	Right SideMarker `yaml:"right" json:"right"`
}

// Band returns the band configured for depth.
func (b Bands) Band(depth int) (Band, bool) {
	for _, l := range b.Levels {
		if l.Depth == depth {
			return l, true
		}
	}
	return Band{}, false
}

// Contains reports whether id lies inside any band.
func (b Bands) Contains(id int) bool {
	for _, l := range b.Levels {
		if id >= l.Start && id < l.Start+b.Width {
			return true
		}
	}
	return false
}

// ReservedID returns the fixed id for acronym, if any.
func (p *Profile) ReservedID(acronym string) (int, bool) {
	for _, r := range p.Reserved {
		if r.Acronym == acronym {
			return r.ID, true
		}
	}
	return 0, false
}

// Validate checks the profile for internal consistency.
func (p *Profile) Validate() error {
	if p.Name == "" {
		return errors.NewValidationError("name", p.Name, "cannot be empty")
	}
	if p.Root.ID <= 0 {
		return errors.NewValidationError("root.id", p.Root.ID, "must be positive")
	}
	if p.Root.Label == "" {
		return errors.NewValidationError("root.label", p.Root.Label, "cannot be empty")
	}
	if err := p.validateBands(); err != nil {
		return err
	}
	if p.Bands.Contains(p.Root.ID) {
		return errors.NewValidationError("root.id", p.Root.ID, "falls inside a synthetic id band")
	}

	seenIDs := map[int]string{}
	seenAcronyms := map[string]bool{}
	for _, r := range p.Reserved {
		if r.Acronym == "" {
			return errors.NewValidationError("reserved", r, "acronym cannot be empty")
		}
		if seenAcronyms[r.Acronym] {
			return errors.NewValidationError("reserved", r.Acronym, "acronym reserved twice")
		}
		if other, dup := seenIDs[r.ID]; dup {
			return errors.NewValidationError("reserved", r.ID, fmt.Sprintf("id reserved for both %s and %s", other, r.Acronym))
		}
		if r.ID == p.Root.ID || p.Bands.Contains(r.ID) {
			return errors.NewValidationError("reserved", r.ID, fmt.Sprintf("id for %s collides with the root or a band", r.Acronym))
		}
		seenAcronyms[r.Acronym] = true
		seenIDs[r.ID] = r.Acronym
	}

	if p.Sides.Left.Acronym == p.Sides.Right.Acronym {
		return errors.NewValidationError("sides", p.Sides.Left.Acronym, "left and right acronym markers must differ")
	}
	if p.Sides.Left.Name == p.Sides.Right.Name {
		return errors.NewValidationError("sides", p.Sides.Left.Name, "left and right name markers must differ")
	}
	if p.SegmentCount < 0 {
		return errors.NewValidationError("segment_count", p.SegmentCount, "cannot be negative")
	}

	for i, c := range p.Palette {
		if !c.Valid() {
			return errors.NewValidationError(fmt.Sprintf("palette[%d]", i), c, "channels must be within [0,255]")
		}
	}
	for i, a := range p.FillerAcronyms {
		if a == "" {
			return errors.NewValidationError(fmt.Sprintf("filler_acronyms[%d]", i), a, "cannot be empty")
		}
		if slices.Contains(p.FillerAcronyms[:i], a) {
			return errors.NewValidationError(fmt.Sprintf("filler_acronyms[%d]", i), a, "duplicate filler acronym")
		}
	}
	return nil
}

func (p *Profile) validateBands() error {
	if p.Bands.Width <= 0 {
		return errors.NewValidationError("bands.width", p.Bands.Width, "must be positive")
	}
	levels := slices.Clone(p.Bands.Levels)
	slices.SortFunc(levels, func(a, b Band) int { return a.Start - b.Start })
	seen := map[int]bool{}
	for i, l := range levels {
		if l.Depth < 2 || l.Depth >= constants.MaxDepth {
			return errors.NewValidationError("bands.levels", l.Depth,
				fmt.Sprintf("depth must be between 2 and %d", constants.MaxDepth-1))
		}
		if seen[l.Depth] {
			return errors.NewValidationError("bands.levels", l.Depth, "depth configured twice")
		}
		seen[l.Depth] = true
		if l.Start <= 0 {
			return errors.NewValidationError("bands.levels", l.Start, "start must be positive")
		}
		if i > 0 && levels[i-1].Start+p.Bands.Width > l.Start {
			return errors.NewValidationError("bands.levels", l.Start,
				fmt.Sprintf("band for depth %d overlaps band for depth %d", l.Depth, levels[i-1].Depth))
		}
	}
	return nil
}
