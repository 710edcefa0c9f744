package hierarchy_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/regionmap/pkg/errors"
	"github.com/agentstation/regionmap/pkg/hierarchy"
	"github.com/agentstation/regionmap/pkg/regions"
)

func TestFill(t *testing.T) {
	p := cuttlefish(t)
	rs, _ := reconciled(t)

	stats, err := hierarchy.Fill(context.Background(), rs, p)
	require.NoError(t, err)
	assert.Equal(t, 9, stats.Colors)
	assert.Equal(t, 1, stats.Acronyms)

	for _, r := range rs {
		assert.NotEmpty(t, r.Acronym)
		require.NotNil(t, r.RGBTriplet, r.Name)
		assert.True(t, r.RGBTriplet.Valid())
	}

	// Palette colours go out in table order, the root last.
	assert.Equal(t, p.Palette[0], *find(t, rs, "SB").RGBTriplet)
	assert.Equal(t, p.Palette[1], *find(t, rs, "IB").RGBTriplet)
	assert.Equal(t, p.Palette[8], *find(t, rs, "root").RGBTriplet)
	assert.Equal(t, regions.RGB{255, 0, 0}, *find(t, rs, "VL").RGBTriplet)

	median := find(t, rs, "SpEM")
	assert.Equal(t, "Median basal lobe", median.Name)
	assert.Equal(t, p.Palette[2], *median.RGBTriplet)
}

func TestFillExhaustion(t *testing.T) {
	t.Run("palette", func(t *testing.T) {
		p := cuttlefish(t)
		p.Palette = p.Palette[:3]
		rs, _ := reconciled(t)
		before := regions.CloneAll(rs)

		_, err := hierarchy.Fill(context.Background(), rs, p)
		require.Error(t, err)
		assert.True(t, errors.IsExhausted(err))
		var ex *errors.ExhaustionError
		require.ErrorAs(t, err, &ex)
		assert.Equal(t, "palette", ex.Resource)
		assert.Equal(t, 3, ex.Capacity)
		assert.Equal(t, 9, ex.Needed)
		assert.Equal(t, before, rs)
	})

	t.Run("filler acronyms", func(t *testing.T) {
		p := cuttlefish(t)
		p.FillerAcronyms = nil
		rs, _ := reconciled(t)

		_, err := hierarchy.Fill(context.Background(), rs, p)
		require.Error(t, err)
		assert.True(t, errors.IsExhausted(err))
		assert.Nil(t, find(t, rs, "VS").RGBTriplet)
	})
}
