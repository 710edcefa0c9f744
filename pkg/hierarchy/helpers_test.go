package hierarchy_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/agentstation/regionmap/pkg/dataset"
	"github.com/agentstation/regionmap/pkg/regions"
)

func cuttlefish(t *testing.T) *dataset.Profile {
	t.Helper()
	p, err := dataset.Load("columbia_cuttlefish")
	require.NoError(t, err)
	return p
}

func row(name, acronym string, sides regions.Sidedness, index string) regions.RawRecord {
	return regions.RawRecord{Name: name, Abbreviation: acronym, Sides: sides, Index: index}
}

func catalogue(t *testing.T, labels ...regions.Label) *regions.Catalogue {
	t.Helper()
	cat, err := regions.NewCatalogue(labels)
	require.NoError(t, err)
	return cat
}

// tableRows is a small table shaped like the cuttlefish hierarchy: bilateral
// lobes, an authoritative branch under index 3 whose ids come only from the
// catalogue, reserved acronyms, a row without acronym and a malformed row.
func tableRows() []regions.RawRecord {
	rows := []regions.RawRecord{
		row("Vertical lobe", "VL", regions.Unilateral, "1"),
		row("Subvertical lobe", "SB", regions.Unilateral, "1-1"),
		row("Inferior buccal lobe", "IB", regions.Unilateral, "1-2"),
		row("Median basal lobe", "", regions.Unilateral, "1-3"),
		row("Vasomotor lobe", "VS", regions.Unilateral, "1-4"),
		row("Superior frontal lobe", "SFL", regions.Bilateral, "2"),
		row("Optic lobe", "OL", regions.Bilateral, "3"),
		row("Deep retina", "DR", regions.Bilateral, "3-1"),
		row("Outer granular layer", "OGL", regions.Bilateral, "3-1-1"),
	}
	for i := range rows {
		rows[i].Line = i + 2
	}
	rows[4].Function = "controls, among others, chromatophores"
	rows[4].Extra = []string{" among others"}
	return rows
}

func tableCatalogue(t *testing.T) *regions.Catalogue {
	t.Helper()
	return catalogue(t,
		regions.Label{Acronym: "VL", ID: 5, Color: [3]float64{1, 0, 0}},
		regions.Label{Acronym: "DRl", ID: 10, Color: [3]float64{0, 1, 0}},
		regions.Label{Acronym: "DRr", ID: 11, Color: [3]float64{0, 0, 1}},
		regions.Label{Acronym: "OGLl", ID: 12, Color: [3]float64{0.5, 0.5, 0.5}},
		regions.Label{Acronym: "OGLr", ID: 13, Color: [3]float64{0.2, 0.4, 0.6}},
		regions.Label{Acronym: "ZZ", ID: 60, Color: [3]float64{0, 0, 0}},
	)
}

func find(t *testing.T, rs []regions.Region, acronym string) regions.Region {
	t.Helper()
	for _, r := range rs {
		if r.Acronym == acronym {
			return r
		}
	}
	require.Failf(t, "region not found", "acronym %q", acronym)
	return regions.Region{}
}
