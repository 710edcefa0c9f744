package dataset_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/regionmap/pkg/dataset"
	"github.com/agentstation/regionmap/pkg/errors"
	"github.com/agentstation/regionmap/pkg/regions"
)

func TestLoadEmbeddedCuttlefish(t *testing.T) {
	p, err := dataset.Load("columbia_cuttlefish")
	require.NoError(t, err)

	assert.Equal(t, "columbia_cuttlefish", p.Name)
	assert.Equal(t, "Sepia bandensis", p.Atlas.Species)
	assert.Equal(t, "srp", p.Atlas.Orientation)
	assert.Equal(t, []float64{2, 2, 2}, p.Atlas.Resolution)
	assert.Equal(t, 999, p.Root.ID)
	assert.Equal(t, "root", p.Root.Label)
	assert.Equal(t, 70, p.SegmentCount)
	assert.Equal(t, 3, p.Bands.AuthoritativeMarker)

	band, ok := p.Bands.Band(2)
	require.True(t, ok)
	assert.Equal(t, 100, band.Start)
	band, ok = p.Bands.Band(3)
	require.True(t, ok)
	assert.Equal(t, 200, band.Start)
	_, ok = p.Bands.Band(4)
	assert.False(t, ok)

	id, ok := p.ReservedID("SB")
	assert.True(t, ok)
	assert.Equal(t, 71, id)
	id, ok = p.ReservedID("IB")
	assert.True(t, ok)
	assert.Equal(t, 72, id)

	assert.Equal(t, "l", p.Sides.Left.Acronym)
	assert.Equal(t, " (right)", p.Sides.Right.Name)

	require.Len(t, p.Palette, 14)
	assert.Equal(t, regions.RGB{156, 23, 189}, p.Palette[0])
	assert.Equal(t, regions.RGB{255, 255, 255}, p.Palette[13])
	require.Len(t, p.FillerAcronyms, 11)
	assert.Equal(t, "SpEM", p.FillerAcronyms[0])
	assert.Equal(t, "NF", p.FillerAcronyms[10])

	assert.Len(t, p.Sources.Hierarchy.SHA256, 64)
	assert.Equal(t, "brain-hierarchy.csv", p.Sources.Hierarchy.FileName)
}

func TestNames(t *testing.T) {
	assert.Contains(t, dataset.Names(), "columbia_cuttlefish")
}

func TestLoadUnknownProfile(t *testing.T) {
	_, err := dataset.Load("giant_squid")
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))
}

func TestYAMLRoundTrip(t *testing.T) {
	p, err := dataset.Load("columbia_cuttlefish")
	require.NoError(t, err)

	data, err := p.YAML()
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "profile.yaml")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	again, err := dataset.LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, p, again)
}

func TestParseRejectsUnknownKeys(t *testing.T) {
	_, err := dataset.Parse([]byte("name: x\npallete: []\n"), "typo.yaml")
	require.Error(t, err)
	assert.True(t, errors.IsInvalidInput(err))
}

func TestLoadFileMissing(t *testing.T) {
	_, err := dataset.LoadFile(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	var ioErr *errors.IOError
	assert.ErrorAs(t, err, &ioErr)
}

func validProfile() *dataset.Profile {
	return &dataset.Profile{
		Name: "test",
		Root: dataset.Root{ID: 999, Label: "root"},
		Bands: dataset.Bands{
			Width:               100,
			AuthoritativeMarker: 3,
			Levels:              []dataset.Band{{Depth: 2, Start: 100}, {Depth: 3, Start: 200}},
		},
		Reserved: []dataset.Reservation{{Acronym: "SB", ID: 71}},
		Sides: dataset.Sides{
			Left:  dataset.SideMarker{Acronym: "l", Name: " (left)"},
			Right: dataset.SideMarker{Acronym: "r", Name: " (right)"},
		},
		Palette:        []regions.RGB{{1, 2, 3}},
		FillerAcronyms: []string{"A", "B"},
	}
}

func TestValidate(t *testing.T) {
	require.NoError(t, validProfile().Validate())

	tests := []struct {
		name   string
		mutate func(p *dataset.Profile)
	}{
		{"empty name", func(p *dataset.Profile) { p.Name = "" }},
		{"root id zero", func(p *dataset.Profile) { p.Root.ID = 0 }},
		{"root label empty", func(p *dataset.Profile) { p.Root.Label = "" }},
		{"root inside band", func(p *dataset.Profile) { p.Root.ID = 150 }},
		{"zero width", func(p *dataset.Profile) { p.Bands.Width = 0 }},
		{"overlapping bands", func(p *dataset.Profile) { p.Bands.Levels[1].Start = 150 }},
		{"band for root depth", func(p *dataset.Profile) { p.Bands.Levels[0].Depth = 1 }},
		{"band for leaf depth", func(p *dataset.Profile) { p.Bands.Levels[1].Depth = 4 }},
		{"duplicate band depth", func(p *dataset.Profile) { p.Bands.Levels[1].Depth = 2 }},
		{"reserved inside band", func(p *dataset.Profile) { p.Reserved[0].ID = 120 }},
		{"reserved equals root", func(p *dataset.Profile) { p.Reserved[0].ID = 999 }},
		{"reserved twice", func(p *dataset.Profile) {
			p.Reserved = append(p.Reserved, dataset.Reservation{Acronym: "SB", ID: 72})
		}},
		{"reserved id shared", func(p *dataset.Profile) {
			p.Reserved = append(p.Reserved, dataset.Reservation{Acronym: "IB", ID: 71})
		}},
		{"same side markers", func(p *dataset.Profile) { p.Sides.Right.Acronym = "l" }},
		{"palette out of range", func(p *dataset.Profile) { p.Palette[0] = regions.RGB{0, 0, 300} }},
		{"empty filler", func(p *dataset.Profile) { p.FillerAcronyms[1] = "" }},
		{"duplicate filler", func(p *dataset.Profile) { p.FillerAcronyms[1] = "A" }},
		{"negative segment count", func(p *dataset.Profile) { p.SegmentCount = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validProfile()
			tt.mutate(p)
			err := p.Validate()
			require.Error(t, err)
			assert.True(t, errors.IsValidationError(err), "got %T: %v", err, err)
		})
	}
}
