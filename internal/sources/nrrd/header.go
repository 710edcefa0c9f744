// Package nrrd reads the header of an NRRD segmentation file and extracts
// its segment label table. The voxel payload is never read.
package nrrd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/agentstation/regionmap/pkg/errors"
	"github.com/agentstation/regionmap/pkg/logging"
	"github.com/agentstation/regionmap/pkg/regions"
)

const source = "annotation"

// Header holds the fields ("key: value") and key/value pairs ("key:=value")
// of an NRRD header.
type Header struct {
	Magic     string
	Fields    map[string]string
	KeyValues map[string]string

	lines map[string]int
}

// Field returns a header field such as "type" or "encoding".
func (h *Header) Field(name string) (string, bool) {
	v, ok := h.Fields[name]
	return v, ok
}

// Value returns a key/value pair such as "Segment0_Name".
func (h *Header) Value(key string) (string, bool) {
	v, ok := h.KeyValues[key]
	return v, ok
}

// ReadHeaderFile reads the header of the NRRD file at path.
func ReadHeaderFile(ctx context.Context, path string) (*Header, error) {
	f, err := os.Open(path) //nolint:gosec // path comes from config or the download cache
	if err != nil {
		return nil, errors.WrapIO("open", path, err)
	}
	defer func() { _ = f.Close() }()

	h, err := ReadHeader(f)
	if err != nil {
		return nil, err
	}
	logging.FromContext(logging.WithSource(ctx, path)).Debug().
		Str("magic", h.Magic).
		Int("fields", len(h.Fields)).
		Int("key_values", len(h.KeyValues)).
		Msg("Read NRRD header")
	return h, nil
}

// ReadHeader parses an NRRD header from r. Reading stops at the blank line
// that separates the header from an attached payload.
func ReadHeader(r io.Reader) (*Header, error) {
	br := bufio.NewReader(r)
	h := &Header{
		Fields:    map[string]string{},
		KeyValues: map[string]string{},
		lines:     map[string]int{},
	}

	for line := 1; ; line++ {
		text, err := br.ReadString('\n')
		if err != nil && err != io.EOF {
			return nil, errors.WrapIO("read", "", err)
		}
		if text == "" && err == io.EOF {
			if line == 1 {
				return nil, errors.NewShapeError(source, 1, "", "file is empty")
			}
			break
		}
		text = strings.TrimRight(text, "\r\n")

		switch {
		case line == 1:
			if !strings.HasPrefix(text, "NRRD") {
				return nil, errors.NewShapeError(source, 1, "", fmt.Sprintf("not an NRRD file: magic %q", text))
			}
			h.Magic = text
		case text == "":
			return h, nil
		case strings.HasPrefix(text, "#"):
			// comment
		case strings.Contains(text, ":="):
			key, value, _ := strings.Cut(text, ":=")
			h.KeyValues[key] = value
			h.lines[key] = line
		case strings.Contains(text, ": "):
			key, value, _ := strings.Cut(text, ": ")
			h.Fields[strings.TrimSpace(key)] = strings.TrimSpace(value)
		default:
			return nil, errors.NewShapeError(source, line, "", fmt.Sprintf("malformed header line %q", text))
		}

		if err == io.EOF {
			break
		}
	}
	return h, nil
}

var segmentKey = regexp.MustCompile(`^Segment(\d+)_`)

// SegmentCount returns the number of distinct segments described.
func (h *Header) SegmentCount() int {
	return len(h.segmentNumbers())
}

func (h *Header) segmentNumbers() []int {
	seen := map[int]bool{}
	var nums []int
	for key := range h.KeyValues {
		m := segmentKey.FindStringSubmatch(key)
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil || seen[n] {
			continue
		}
		seen[n] = true
		nums = append(nums, n)
	}
	slices.Sort(nums)
	return nums
}

// Segments returns the label of every segment in segment order. When
// expected is positive the header must describe exactly that many segments,
// numbered from zero.
func (h *Header) Segments(expected int) ([]regions.Label, error) {
	nums := h.segmentNumbers()
	if expected > 0 && len(nums) != expected {
		return nil, errors.NewShapeError(source, 0, "", fmt.Sprintf("found %d segments, expected %d", len(nums), expected))
	}

	labels := make([]regions.Label, 0, len(nums))
	for i, n := range nums {
		if n != i {
			return nil, errors.NewShapeError(source, 0, fmt.Sprintf("Segment%d", i), "segment numbering has a gap")
		}

		name, err := h.segmentValue(n, "Name")
		if err != nil {
			return nil, err
		}
		rawID, err := h.segmentValue(n, "LabelValue")
		if err != nil {
			return nil, err
		}
		rawColor, err := h.segmentValue(n, "Color")
		if err != nil {
			return nil, err
		}

		id, err := strconv.Atoi(strings.TrimSpace(rawID))
		if err != nil {
			key := fmt.Sprintf("Segment%d_LabelValue", n)
			return nil, errors.NewShapeError(source, h.lines[key], key, fmt.Sprintf("label value %q is not an integer", rawID))
		}
		color, err := regions.ParseColor(rawColor)
		if err != nil {
			key := fmt.Sprintf("Segment%d_Color", n)
			return nil, errors.NewShapeError(source, h.lines[key], key, err.Error())
		}

		labels = append(labels, regions.Label{Acronym: strings.TrimSpace(name), ID: id, Color: color})
	}
	return labels, nil
}

func (h *Header) segmentValue(n int, attr string) (string, error) {
	key := fmt.Sprintf("Segment%d_%s", n, attr)
	v, ok := h.KeyValues[key]
	if !ok {
		return "", errors.NewShapeError(source, 0, key, "missing from header")
	}
	return v, nil
}

// ReadCatalogue reads the segment label catalogue from the NRRD file at
// path, requiring exactly expected segments when expected is positive.
func ReadCatalogue(ctx context.Context, path string, expected int) (*regions.Catalogue, error) {
	h, err := ReadHeaderFile(ctx, path)
	if err != nil {
		return nil, err
	}
	labels, err := h.Segments(expected)
	if err != nil {
		return nil, err
	}
	cat, err := regions.NewCatalogue(labels)
	if err != nil {
		return nil, err
	}
	logging.FromContext(logging.WithSource(ctx, path)).Debug().
		Int("segments", cat.Len()).
		Msg("Read segment catalogue")
	return cat, nil
}
