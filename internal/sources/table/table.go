// Package table reads the curated hierarchy table: one row per anatomical
// region with a side flag, acronym, display name, free-text function and a
// dash-delimited ancestry index.
package table

import (
	"context"
	"encoding/csv"
	"io"
	"os"
	"strings"

	"github.com/agentstation/regionmap/pkg/errors"
	"github.com/agentstation/regionmap/pkg/logging"
	"github.com/agentstation/regionmap/pkg/regions"
)

// Column names of the hierarchy table.
const (
	ColumnSides        = "hasSides"
	ColumnAbbreviation = "abbreviation"
	ColumnName         = "name"
	ColumnFunction     = "function"
	ColumnIndex        = "index"
)

// Required lists the columns every table must carry. The function column
// is optional.
var Required = []string{ColumnSides, ColumnAbbreviation, ColumnName, ColumnIndex}

const bom = "\ufeff"

// ReadFile reads the table at path.
func ReadFile(ctx context.Context, path string) ([]regions.RawRecord, error) {
	logger := logging.FromContext(logging.WithSource(ctx, path))

	f, err := os.Open(path) //nolint:gosec // path comes from config or the download cache
	if err != nil {
		return nil, errors.WrapIO("open", path, err)
	}
	defer func() { _ = f.Close() }()

	rows, err := Read(f)
	if err != nil {
		var perr *errors.ParseError
		if errors.As(err, &perr) && perr.File == "" {
			perr.File = path
		}
		return nil, err
	}

	logger.Debug().Int("rows", len(rows)).Msg("Read hierarchy table")
	return rows, nil
}

// Read parses a hierarchy table. Columns are located by header name, a
// leading byte order mark is ignored, and cells beyond the header width are
// kept as RawRecord.Extra.
func Read(r io.Reader) ([]regions.RawRecord, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, errors.NewShapeError("hierarchy", 1, "", "table is empty")
	}
	if err != nil {
		return nil, errors.WrapParse("csv", "", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], bom)
	}

	cols, err := locate(header)
	if err != nil {
		return nil, err
	}

	var rows []regions.RawRecord
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.WrapParse("csv", "", err)
		}
		line, _ := cr.FieldPos(0)

		raw := regions.RawRecord{
			Name:         cell(rec, cols[ColumnName]),
			Abbreviation: cell(rec, cols[ColumnAbbreviation]),
			Index:        cell(rec, cols[ColumnIndex]),
			Function:     cell(rec, cols[ColumnFunction]),
			Line:         line,
		}
		if len(rec) > len(header) {
			raw.Extra = extra(rec[len(header):])
		}

		if cols[ColumnSides] < len(rec) {
			sides, err := regions.ParseSidedness(rec[cols[ColumnSides]])
			if err != nil {
				return nil, errors.NewShapeError("hierarchy", line, ColumnSides, err.Error())
			}
			raw.Sides = sides
		}

		rows = append(rows, raw)
	}
	return rows, nil
}

// locate maps column names to positions. Missing optional columns map to -1.
func locate(header []string) (map[string]int, error) {
	cols := make(map[string]int, len(header)+1)
	for i, h := range header {
		name := strings.TrimSpace(h)
		if _, dup := cols[name]; dup {
			return nil, errors.NewShapeError("hierarchy", 1, name, "column appears twice")
		}
		cols[name] = i
	}
	if _, ok := cols[ColumnFunction]; !ok {
		cols[ColumnFunction] = -1
	}
	for _, name := range Required {
		if _, ok := cols[name]; !ok {
			return nil, errors.NewShapeError("hierarchy", 1, name, "required column missing from header")
		}
	}
	return cols, nil
}

// extra returns the overflow cells, or nil when all of them are blank.
func extra(cells []string) []string {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return append([]string(nil), cells...)
		}
	}
	return nil
}

func cell(rec []string, i int) string {
	if i < 0 || i >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[i])
}
