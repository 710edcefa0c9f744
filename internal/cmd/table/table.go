// Package table converts regionmap values into rows for the CLI formatters.
package table

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/agentstation/regionmap/pkg/hierarchy"
	"github.com/agentstation/regionmap/pkg/regions"
)

// Align represents column alignment in tables.
type Align int

const (
	// AlignDefault uses the default alignment (skip).
	AlignDefault Align = iota
	// AlignLeft aligns content to the left.
	AlignLeft
	// AlignCenter centers content.
	AlignCenter
	// AlignRight aligns content to the right.
	AlignRight
)

// Data represents table formatting data to avoid import cycles.
type Data struct {
	Headers         []string
	Rows            [][]string
	ColumnAlignment []Align // Optional: column alignment
}

// RegionsToTableData converts regions to table format. Wide adds the full
// ancestry path, the side of bilateral copies and where the id came from.
func RegionsToTableData(rs []regions.Region, wide bool) Data {
	headers := []string{"ID", "Acronym", "Name", "Parent", "RGB"}
	align := []Align{AlignRight, AlignLeft, AlignLeft, AlignRight, AlignLeft}
	if wide {
		headers = append(headers, "Path", "Side", "Source")
		align = append(align, AlignLeft, AlignLeft, AlignLeft)
	}

	rows := make([][]string, 0, len(rs))
	for i := range rs {
		r := &rs[i]
		row := []string{
			strconv.Itoa(r.ID),
			r.Acronym,
			r.Name,
			parent(r),
			color(r),
		}
		if wide {
			row = append(row, FormatPath(r.StructureIDPath), r.Side.String(), r.IDSource.String())
		}
		rows = append(rows, row)
	}

	return Data{Headers: headers, Rows: rows, ColumnAlignment: align}
}

// TreeToTableData renders the hierarchy depth first, indenting names by depth.
func TreeToTableData(t *hierarchy.Tree, rs []regions.Region) Data {
	var rows [][]string
	t.Walk(func(pos, depth int) bool {
		r := &rs[pos]
		rows = append(rows, []string{
			strconv.Itoa(r.ID),
			r.Acronym,
			strings.Repeat("  ", depth-1) + r.Name,
			color(r),
		})
		return true
	})

	return Data{
		Headers:         []string{"ID", "Acronym", "Name", "RGB"},
		Rows:            rows,
		ColumnAlignment: []Align{AlignRight, AlignLeft, AlignLeft, AlignLeft},
	}
}

// StatsToTableData converts synthesis statistics to a key-value table.
func StatsToTableData(result *hierarchy.Result) Data {
	s := result.Metadata.Stats
	rows := [][]string{
		{"Dataset", result.Metadata.Dataset},
		{"Hierarchy rows", strconv.Itoa(s.RawRows)},
		{"After bilateral expansion", strconv.Itoa(s.Expanded)},
		{"Catalogue labels", strconv.Itoa(s.CatalogueSize)},
		{"Matched to catalogue", strconv.Itoa(s.Matched)},
		{"Synthetic ids", strconv.Itoa(s.Synthetic)},
		{"Reserved ids", strconv.Itoa(s.Reserved)},
		{"Palette colours", strconv.Itoa(s.PaletteUsed)},
		{"Filler acronyms", strconv.Itoa(s.FillersUsed)},
		{"Rows stripped", strconv.Itoa(s.StrippedRows)},
		{"Order violations", strconv.Itoa(len(result.OrderViolations))},
		{"Unused labels", strconv.Itoa(len(result.UnusedLabels))},
		{"Total regions", strconv.Itoa(s.TotalRegions)},
		{"Duration", result.Metadata.Duration.String()},
	}

	return Data{
		Headers:         []string{"Property", "Value"},
		Rows:            rows,
		ColumnAlignment: []Align{AlignLeft, AlignRight},
	}
}

// FormatPath renders a structure id path as "999/1/5".
func FormatPath(path []int) string {
	parts := make([]string, len(path))
	for i, id := range path {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, "/")
}

func parent(r *regions.Region) string {
	if id, ok := r.ParentID(); ok {
		return strconv.Itoa(id)
	}
	return "-"
}

func color(r *regions.Region) string {
	if r.RGBTriplet == nil {
		return "-"
	}
	c := *r.RGBTriplet
	return fmt.Sprintf("#%02x%02x%02x", c[0], c[1], c[2])
}
