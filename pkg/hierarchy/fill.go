package hierarchy

import (
	"context"

	"github.com/agentstation/regionmap/pkg/dataset"
	"github.com/agentstation/regionmap/pkg/errors"
	"github.com/agentstation/regionmap/pkg/logging"
	"github.com/agentstation/regionmap/pkg/regions"
)

// FillStats summarizes the gap filling stage.
type FillStats struct {
	Colors   int
	Acronyms int
}

// Fill gives every uncoloured region the next palette colour and every
// region with an empty acronym the next filler acronym, both in table order.
// Capacity is checked before anything is modified.
func Fill(ctx context.Context, rs []regions.Region, p *dataset.Profile) (FillStats, error) {
	var stats FillStats
	logger := logging.FromContext(ctx)

	needColor, needAcronym := needs(rs)
	if needColor > len(p.Palette) {
		return stats, errors.NewExhaustionError("palette", len(p.Palette), needColor)
	}
	if needAcronym > len(p.FillerAcronyms) {
		return stats, errors.NewExhaustionError("filler acronyms", len(p.FillerAcronyms), needAcronym)
	}

	for i := range rs {
		r := &rs[i]
		if !r.HasColor() {
			r.SetColor(p.Palette[stats.Colors])
			stats.Colors++
			logger.Debug().Str("region", r.Label()).Stringer("rgb", r.RGBTriplet).Msg("Assigned palette colour")
		}
	}
	for i := range rs {
		r := &rs[i]
		if r.Acronym == "" {
			r.Acronym = p.FillerAcronyms[stats.Acronyms]
			stats.Acronyms++
			logger.Debug().Str("region", r.Name).Str("acronym", r.Acronym).Msg("Assigned filler acronym")
		}
	}
	return stats, nil
}

// needs reports how many colours and acronyms Fill would consume.
func needs(rs []regions.Region) (colors, acronyms int) {
	for i := range rs {
		if !rs[i].HasColor() {
			colors++
		}
		if rs[i].Acronym == "" {
			acronyms++
		}
	}
	return colors, acronyms
}
