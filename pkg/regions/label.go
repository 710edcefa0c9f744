package regions

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/agentstation/regionmap/pkg/errors"
)

// Label is one labelled segment of the annotation volume.
type Label struct {
	Acronym string     `json:"acronym" yaml:"acronym"`
	ID      int        `json:"id" yaml:"id"`
	Color   [3]float64 `json:"color" yaml:"color,flow"` // channels in [0,1]
}

// RGB converts the [0,1] colour to bytes, rounding each channel independently.
func (l Label) RGB() RGB {
	var c RGB
	for i, v := range l.Color {
		c[i] = int(math.Round(255 * v))
	}
	return c
}

// ParseColor parses a space separated "r g b" string of floats in [0,1].
func ParseColor(s string) ([3]float64, error) {
	var color [3]float64
	fields := strings.Fields(s)
	if len(fields) != 3 {
		return color, fmt.Errorf("color %q: expected 3 components, got %d", s, len(fields))
	}
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return color, fmt.Errorf("color %q: %w", s, err)
		}
		if v < 0 || v > 1 || math.IsNaN(v) {
			return color, fmt.Errorf("color %q: component %g outside [0,1]", s, v)
		}
		color[i] = v
	}
	return color, nil
}

// Catalogue is the ordered, read-only set of segmentation labels.
type Catalogue struct {
	labels    []Label
	byAcronym map[string]int
	byID      map[int]int
}

// NewCatalogue indexes labels by acronym and id. Empty or duplicate
// acronyms and duplicate ids make the catalogue ambiguous and are rejected.
func NewCatalogue(labels []Label) (*Catalogue, error) {
	c := &Catalogue{
		labels:    make([]Label, len(labels)),
		byAcronym: make(map[string]int, len(labels)),
		byID:      make(map[int]int, len(labels)),
	}
	copy(c.labels, labels)

	for i, l := range c.labels {
		if l.Acronym == "" {
			return nil, errors.NewShapeError("annotation", 0, "acronym", fmt.Sprintf("segment with label value %d has no name", l.ID))
		}
		if prev, dup := c.byAcronym[l.Acronym]; dup {
			return nil, errors.NewShapeError("annotation", 0, "acronym",
				fmt.Sprintf("segment name %q used by label values %d and %d", l.Acronym, c.labels[prev].ID, l.ID))
		}
		if prev, dup := c.byID[l.ID]; dup {
			return nil, errors.NewShapeError("annotation", 0, "id",
				fmt.Sprintf("label value %d used by %q and %q", l.ID, c.labels[prev].Acronym, l.Acronym))
		}
		c.byAcronym[l.Acronym] = i
		c.byID[l.ID] = i
	}
	return c, nil
}

// Lookup returns the label whose acronym equals acronym exactly.
func (c *Catalogue) Lookup(acronym string) (Label, bool) {
	if c == nil || acronym == "" {
		return Label{}, false
	}
	i, ok := c.byAcronym[acronym]
	if !ok {
		return Label{}, false
	}
	return c.labels[i], true
}

// HasID reports whether any label carries id.
func (c *Catalogue) HasID(id int) bool {
	if c == nil {
		return false
	}
	_, ok := c.byID[id]
	return ok
}

// Len returns the number of labels.
func (c *Catalogue) Len() int {
	if c == nil {
		return 0
	}
	return len(c.labels)
}

// Labels returns a copy of the labels in catalogue order.
func (c *Catalogue) Labels() []Label {
	if c == nil {
		return nil
	}
	out := make([]Label, len(c.labels))
	copy(out, c.labels)
	return out
}
