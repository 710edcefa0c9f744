package regions

import (
	"strings"

	"github.com/agentstation/regionmap/pkg/errors"
)

// Sidedness is the "has two sides" flag of a hierarchy table row.
type Sidedness int

const (
	// SidednessUnknown means the flag was absent from the row.
	SidednessUnknown Sidedness = iota
	// Unilateral rows describe a single midline structure.
	Unilateral
	// Bilateral rows describe a structure present in both hemispheres.
	Bilateral
)

// String returns the string representation of a Sidedness.
func (s Sidedness) String() string {
	switch s {
	case Unilateral:
		return "unilateral"
	case Bilateral:
		return "bilateral"
	default:
		return "unknown"
	}
}

// ParseSidedness reads the table flag. "Y" is bilateral, "N" or an empty
// cell is unilateral.
func ParseSidedness(s string) (Sidedness, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "Y", "YES":
		return Bilateral, nil
	case "N", "NO", "":
		return Unilateral, nil
	default:
		return SidednessUnknown, errors.NewValidationError("hasSides", s, "expected Y or N")
	}
}

// RawRecord is one row of the curated hierarchy table.
type RawRecord struct {
	Name         string
	Abbreviation string
	Sides        Sidedness
	Index        string   // dash-delimited ancestry index, e.g. "3-2-1"
	Function     string   // free-text description
	Extra        []string // cells beyond the header, from delimiters inside free text
	Line         int      // 1-based line in the source file
}
