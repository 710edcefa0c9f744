package hierarchy

import (
	"github.com/agentstation/regionmap/pkg/dataset"
	"github.com/agentstation/regionmap/pkg/errors"
	"github.com/agentstation/regionmap/pkg/regions"
)

// Expand converts raw table rows into regions. A bilateral row yields a left
// and a right region whose acronym and name carry the side markers; any other
// row yields one region. A row without a side flag is rejected.
func Expand(rows []regions.RawRecord, sides dataset.Sides) ([]regions.Region, error) {
	out := make([]regions.Region, 0, len(rows))
	for _, row := range rows {
		base := regions.Region{
			Name:     row.Name,
			Acronym:  row.Abbreviation,
			RawIndex: row.Index,
			Function: row.Function,
			Extra:    row.Extra,
			Line:     row.Line,
		}

		switch row.Sides {
		case regions.Bilateral:
			left := base.Clone()
			left.Acronym += sides.Left.Acronym
			left.Name += sides.Left.Name
			left.Side = regions.SideLeft

			right := base.Clone()
			right.Acronym += sides.Right.Acronym
			right.Name += sides.Right.Name
			right.Side = regions.SideRight

			out = append(out, left, right)
		case regions.Unilateral:
			out = append(out, base.Clone())
		default:
			return nil, errors.NewShapeError("hierarchy", row.Line, "hasSides", "side flag missing for "+row.Name)
		}
	}
	return out, nil
}
