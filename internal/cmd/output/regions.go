package output

import (
	"io"

	"github.com/agentstation/regionmap/internal/cmd/table"
	"github.com/agentstation/regionmap/pkg/hierarchy"
	"github.com/agentstation/regionmap/pkg/regions"
)

// FormatRegions writes regions as a table, or as the packaged descriptor
// documents for json and yaml.
func FormatRegions(w io.Writer, rs []regions.Region, format Format) error {
	var data any = rs
	if format.IsTable() {
		data = table.RegionsToTableData(rs, format == FormatWide)
	}
	return NewFormatter(format).Format(w, data)
}

// FormatTree writes the hierarchy depth first. Structured formats get the
// regions in walk order.
func FormatTree(w io.Writer, result *hierarchy.Result, format Format) error {
	tree, err := result.Tree()
	if err != nil {
		return err
	}
	if format.IsTable() {
		return NewFormatter(format).Format(w, table.TreeToTableData(tree, result.Regions))
	}

	ordered := make([]regions.Region, 0, len(result.Regions))
	tree.Walk(func(pos, _ int) bool {
		ordered = append(ordered, result.Regions[pos])
		return true
	})
	return NewFormatter(format).Format(w, ordered)
}

// FormatStats writes the statistics of a synthesis run.
func FormatStats(w io.Writer, result *hierarchy.Result, format Format) error {
	if format.IsTable() {
		return NewFormatter(format).Format(w, table.StatsToTableData(result))
	}
	return NewFormatter(format).Format(w, result.Metadata)
}

// FormatAny writes any value in the requested format.
func FormatAny(w io.Writer, data any, format Format) error {
	return NewFormatter(format).Format(w, data)
}
