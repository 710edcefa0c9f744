package hierarchy

import (
	"context"

	"github.com/agentstation/regionmap/pkg/dataset"
	"github.com/agentstation/regionmap/pkg/logging"
	"github.com/agentstation/regionmap/pkg/regions"
)

// ReconcileStats summarizes the reconciliation stage.
type ReconcileStats struct {
	Matched         int
	UnusedLabels    []string
	OrderViolations []OrderViolation
}

// Join copies id and colour from the catalogue label whose acronym equals a
// region's acronym. Catalogue values win over anything assigned earlier.
// Regions are modified in place.
func Join(ctx context.Context, rs []regions.Region, cat *regions.Catalogue) (matched int, unused []string) {
	logger := logging.FromContext(ctx)
	used := make(map[string]bool, cat.Len())

	for i := range rs {
		r := &rs[i]
		label, ok := cat.Lookup(r.Acronym)
		if !ok {
			continue
		}
		if r.IDSource == regions.IDSourceSynthetic || r.IDSource == regions.IDSourceReserved {
			logger.Debug().
				Str("region", r.Label()).
				Int("previous_id", r.ID).
				Int("id", label.ID).
				Msg("Segment label overrides assigned id")
		}
		r.ID = label.ID
		r.IDSource = regions.IDSourceCatalogue
		r.SetColor(label.RGB())
		used[label.Acronym] = true
		matched++
	}

	for _, l := range cat.Labels() {
		if !used[l.Acronym] {
			unused = append(unused, l.Acronym)
		}
	}
	return matched, unused
}

// RootRegion returns the synthetic whole-volume region of a profile.
func RootRegion(p *dataset.Profile) regions.Region {
	return regions.Region{
		Name:            p.Root.Label,
		Acronym:         p.Root.Label,
		ID:              p.Root.ID,
		StructureIDPath: []int{p.Root.ID},
		IDSource:        regions.IDSourceRoot,
	}
}

// Reconcile joins the catalogue, appends the root, and rewrites every
// structure_id_path from the resolved ids. The returned slice has the root as
// its last element.
func Reconcile(ctx context.Context, rs []regions.Region, cat *regions.Catalogue, p *dataset.Profile) ([]regions.Region, ReconcileStats, error) {
	var stats ReconcileStats
	logger := logging.FromContext(ctx)

	stats.Matched, stats.UnusedLabels = Join(ctx, rs, cat)
	if len(stats.UnusedLabels) > 0 {
		logger.Debug().
			Strs("labels", stats.UnusedLabels).
			Msg("Segment labels without a matching region")
	}

	rs = append(rs, RootRegion(p))

	tree, err := BuildTree(rs)
	if err != nil {
		return nil, stats, err
	}
	for i := range rs {
		rs[i].StructureIDPath = tree.Path(i)
	}

	stats.OrderViolations = tree.OrderViolations()
	for _, v := range stats.OrderViolations {
		logger.Debug().
			Str("region", v.Region).
			Str("preceding", v.Positional).
			Str("parent", v.Structural).
			Msg("Table row does not follow its parent")
	}
	return rs, stats, nil
}
