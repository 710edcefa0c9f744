// Package regions defines the records that flow through hierarchy
// synthesis: raw table rows, the working region record, and the
// segmentation label catalogue used as the authoritative id/colour source.
package regions

import (
	"fmt"
	"slices"
)

// Side marks which half of a bilaterally expanded row a region came from.
type Side int

const (
	// SideNone is a region that was not expanded.
	SideNone Side = iota
	// SideLeft is the left copy of an expanded row.
	SideLeft
	// SideRight is the right copy of an expanded row.
	SideRight
)

// String returns the string representation of a Side.
func (s Side) String() string {
	switch s {
	case SideLeft:
		return "left"
	case SideRight:
		return "right"
	default:
		return "none"
	}
}

// IDSource records where a region's id came from.
type IDSource int

const (
	// IDSourceNone means no id has been assigned yet.
	IDSourceNone IDSource = iota
	// IDSourceSynthetic is an id allocated from a depth band.
	IDSourceSynthetic
	// IDSourceReserved is a fixed id for a region absent from the volume.
	IDSourceReserved
	// IDSourceCatalogue is an id taken from the segmentation catalogue.
	IDSourceCatalogue
	// IDSourceRoot is the root sentinel.
	IDSourceRoot
)

// String returns the string representation of an IDSource.
func (s IDSource) String() string {
	switch s {
	case IDSourceSynthetic:
		return "synthetic"
	case IDSourceReserved:
		return "reserved"
	case IDSourceCatalogue:
		return "catalogue"
	case IDSourceRoot:
		return "root"
	default:
		return "none"
	}
}

// RGB is a display colour with channels in [0,255].
type RGB [3]int

// Valid reports whether every channel is within [0,255].
func (c RGB) Valid() bool {
	for _, v := range c {
		if v < 0 || v > 255 {
			return false
		}
	}
	return true
}

// String returns the colour as "r,g,b".
func (c RGB) String() string {
	return fmt.Sprintf("%d,%d,%d", c[0], c[1], c[2])
}

// Region is one anatomical region. The exported, tagged fields are the
// descriptor handed to the packaging step; the untagged ones are working
// state used while the hierarchy is synthesized.
type Region struct {
	Name            string `json:"name" yaml:"name"`
	Acronym         string `json:"acronym" yaml:"acronym"`
	ID              int    `json:"id" yaml:"id"`
	StructureIDPath []int  `json:"structure_id_path" yaml:"structure_id_path,flow"`
	RGBTriplet      *RGB   `json:"rgb_triplet,omitempty" yaml:"rgb_triplet,omitempty,flow"`

	Side     Side     `json:"-" yaml:"-"` // bilateral copy marker
	Index    []int    `json:"-" yaml:"-"` // ancestry index components from the table
	RawIndex string   `json:"-" yaml:"-"` // ancestry index as written in the table
	IDSource IDSource `json:"-" yaml:"-"`
	Function string   `json:"-" yaml:"-"` // auxiliary text, dropped by normalization
	Extra    []string `json:"-" yaml:"-"` // malformed unnamed fields
	Line     int      `json:"-" yaml:"-"` // source line of the originating row
}

// Depth returns the number of elements in the ancestry path, root included.
func (r *Region) Depth() int {
	return len(r.StructureIDPath)
}

// HasID reports whether an id has been assigned.
func (r *Region) HasID() bool {
	return r.IDSource != IDSourceNone
}

// HasColor reports whether an RGB triplet has been assigned.
func (r *Region) HasColor() bool {
	return r.RGBTriplet != nil
}

// SetColor assigns a copy of c.
func (r *Region) SetColor(c RGB) {
	r.RGBTriplet = &c
}

// ParentID returns the id of the direct parent, or false for the root.
func (r *Region) ParentID() (int, bool) {
	if len(r.StructureIDPath) < 2 {
		return 0, false
	}
	return r.StructureIDPath[len(r.StructureIDPath)-2], true
}

// Label returns a short human description used in logs and errors.
func (r *Region) Label() string {
	if r.Acronym != "" {
		return fmt.Sprintf("%s (%s)", r.Name, r.Acronym)
	}
	return r.Name
}

// Clone returns a deep copy of the region.
func (r Region) Clone() Region {
	r.StructureIDPath = slices.Clone(r.StructureIDPath)
	r.Index = slices.Clone(r.Index)
	r.Extra = slices.Clone(r.Extra)
	if r.RGBTriplet != nil {
		c := *r.RGBTriplet
		r.RGBTriplet = &c
	}
	return r
}

// CloneAll deep copies a region slice.
func CloneAll(in []Region) []Region {
	if in == nil {
		return nil
	}
	out := make([]Region, len(in))
	for i := range in {
		out[i] = in[i].Clone()
	}
	return out
}
