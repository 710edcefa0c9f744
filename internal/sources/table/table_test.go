package table_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/regionmap/internal/sources/table"
	"github.com/agentstation/regionmap/pkg/errors"
	"github.com/agentstation/regionmap/pkg/regions"
)

const sample = "\ufeffhasSides,abbreviation,name,function,index\n" +
	"N,VL,Vertical lobe,learning and memory,1\n" +
	"Y,OL,Optic lobe,visual processing,3\n" +
	"N,,Median basal lobe,,1-3\n" +
	"N,VS,Vasomotor lobe,controls, among others, chromatophores,1-4\n"

func TestRead(t *testing.T) {
	rows, err := table.Read(strings.NewReader(sample))
	require.NoError(t, err)
	require.Len(t, rows, 4)

	assert.Equal(t, regions.RawRecord{
		Name:         "Vertical lobe",
		Abbreviation: "VL",
		Sides:        regions.Unilateral,
		Index:        "1",
		Function:     "learning and memory",
		Line:         2,
	}, rows[0])

	assert.Equal(t, regions.Bilateral, rows[1].Sides)
	assert.Equal(t, 3, rows[1].Line)
	assert.Empty(t, rows[2].Abbreviation)
	assert.Equal(t, "1-3", rows[2].Index)
}

func TestReadKeepsOverflowCells(t *testing.T) {
	rows, err := table.Read(strings.NewReader(sample))
	require.NoError(t, err)

	vs := rows[3]
	// The unquoted commas shift the row; the index column receives a
	// fragment of the function text and the overflow lands in Extra.
	assert.Equal(t, "controls", vs.Function)
	assert.Equal(t, "among others", vs.Index)
	assert.Equal(t, []string{" chromatophores", "1-4"}, vs.Extra)
	assert.Nil(t, rows[0].Extra)
}

func TestReadColumnsByName(t *testing.T) {
	in := "index,name,abbreviation,hasSides\n2,Superior frontal lobe,SFL,Y\n"
	rows, err := table.Read(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "SFL", rows[0].Abbreviation)
	assert.Equal(t, "2", rows[0].Index)
	assert.Equal(t, regions.Bilateral, rows[0].Sides)
	assert.Empty(t, rows[0].Function)
}

func TestReadBlankOverflowIgnored(t *testing.T) {
	in := "hasSides,abbreviation,name,function,index\nN,VL,Vertical lobe,,1,,\n"
	rows, err := table.Read(strings.NewReader(in))
	require.NoError(t, err)
	assert.Nil(t, rows[0].Extra)
}

func TestReadShortRowLeavesSidednessUnknown(t *testing.T) {
	in := "abbreviation,name,index,hasSides\nVL,Vertical lobe,1\n"
	rows, err := table.Read(strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, regions.SidednessUnknown, rows[0].Sides)
}

func TestReadErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
		msg  string
	}{
		{"empty", "", "table is empty"},
		{"missing column", "abbreviation,name,index\nVL,Vertical lobe,1\n", "(field hasSides): required column missing"},
		{"duplicate column", "hasSides,name,name,abbreviation,index\n", "column appears twice"},
		{"bad side flag", "hasSides,abbreviation,name,index\nmaybe,VL,Vertical lobe,1\n", "line 2 (field hasSides)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := table.Read(strings.NewReader(tt.in))
			require.Error(t, err)
			assert.True(t, errors.IsShapeError(err))
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "brain-hierarchy.csv")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o600))

	rows, err := table.ReadFile(context.Background(), path)
	require.NoError(t, err)
	assert.Len(t, rows, 4)

	_, err = table.ReadFile(context.Background(), filepath.Join(t.TempDir(), "missing.csv"))
	require.Error(t, err)
	var ioErr *errors.IOError
	assert.ErrorAs(t, err, &ioErr)
}
