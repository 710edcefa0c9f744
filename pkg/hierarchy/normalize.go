package hierarchy

import (
	"context"
	"strconv"
	"strings"

	"github.com/agentstation/regionmap/pkg/constants"
	"github.com/agentstation/regionmap/pkg/dataset"
	"github.com/agentstation/regionmap/pkg/errors"
	"github.com/agentstation/regionmap/pkg/logging"
	"github.com/agentstation/regionmap/pkg/regions"
)

// StrippedRecord describes malformed fields removed from a region.
type StrippedRecord struct {
	Line   int      `json:"line" yaml:"line"`
	Name   string   `json:"name" yaml:"name"`
	Fields []string `json:"fields" yaml:"fields"`
}

// NormalizeStats summarizes the normalization stage.
type NormalizeStats struct {
	Synthetic int
	Reserved  int
	Stripped  []StrippedRecord
}

// Normalize derives every region's structure_id_path from its ancestry
// index, drops the fields that are no longer needed, strips malformed
// fields, and assigns synthetic or reserved ids. Regions are modified in
// place.
//
// A region gets a synthetic id when its path is shorter than the maximum
// depth and its parent index is not the authoritative marker; its id then
// comes from the band of its depth. Reserved acronyms override the band id.
func Normalize(ctx context.Context, rs []regions.Region, alloc *IDAllocator, p *dataset.Profile) (NormalizeStats, error) {
	var stats NormalizeStats
	logger := logging.FromContext(ctx)

	for i := range rs {
		r := &rs[i]

		if len(r.Extra) > 0 {
			logger.Warn().
				Int("line", r.Line).
				Str("region", r.Name).
				Strs("fields", r.Extra).
				Msg("Stripping malformed fields")
			stats.Stripped = append(stats.Stripped, StrippedRecord{Line: r.Line, Name: r.Name, Fields: r.Extra})
			r.Extra = nil
		}

		index, err := parseIndex(r.RawIndex, r.Line)
		if err != nil {
			return stats, err
		}
		if len(index)+1 > constants.MaxDepth {
			return stats, errors.NewShapeError("hierarchy", r.Line, "index",
				"ancestry index "+r.RawIndex+" is nested deeper than supported")
		}
		r.Index = index
		r.StructureIDPath = append([]int{p.Root.ID}, index...)
		r.Function = ""

		path := r.StructureIDPath
		if len(path) < constants.MaxDepth && path[len(path)-2] != p.Bands.AuthoritativeMarker {
			id, err := alloc.Next(len(path))
			if err != nil {
				return stats, err
			}
			r.ID = id
			r.IDSource = regions.IDSourceSynthetic
			stats.Synthetic++
		}

		if id, ok := p.ReservedID(r.Acronym); ok {
			if r.IDSource == regions.IDSourceSynthetic {
				stats.Synthetic--
			}
			r.ID = id
			r.IDSource = regions.IDSourceReserved
			stats.Reserved++
		}

		logger.Trace().
			Dict("region", logging.RegionDict(r)).
			Msg("Normalized region")
	}

	return stats, nil
}

// parseIndex splits a dash-delimited ancestry index into integers.
func parseIndex(raw string, line int) ([]int, error) {
	parts := strings.Split(strings.TrimSpace(raw), constants.IndexSeparator)
	index := make([]int, len(parts))
	for i, part := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, &errors.ParseError{
				Format:  "csv",
				Line:    line,
				Message: "ancestry index " + strconv.Quote(raw) + " is not a dash-delimited list of integers",
				Err:     err,
			}
		}
		index[i] = v
	}
	return index, nil
}
