// Package testutil writes small hierarchy and annotation fixtures for tests
// that exercise the client and the CLI end to end.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/agentstation/regionmap"
	"github.com/agentstation/regionmap/pkg/dataset"
)

// HierarchyCSV is a three row table: one unilateral lobe and a bilateral
// lobe with a bilateral child.
const HierarchyCSV = "hasSides,abbreviation,name,function,index\n" +
	"N,VL,Vertical lobe,memory,1\n" +
	"Y,OL,Optic lobe,vision,3\n" +
	"Y,DR,Deep retina,,3-1\n"

// Segments are the labels matching HierarchyCSV, as "color|value|name".
var Segments = []string{"1 0 0|5|VL", "0 1 0|10|DRl", "0 0 1|11|DRr"}

// AnnotationNRRD renders an NRRD header carrying the given segments,
// followed by the first bytes of a gzip payload.
func AnnotationNRRD(segments ...string) string {
	var b strings.Builder
	b.WriteString("NRRD0004\ntype: unsigned char\nencoding: gzip\n")
	for i, s := range segments {
		parts := strings.Split(s, "|")
		fmt.Fprintf(&b, "Segment%d_Color:=%s\nSegment%d_LabelValue:=%s\nSegment%d_Name:=%s\n", i, parts[0], i, parts[1], i, parts[2])
	}
	b.WriteString("\n\x1f\x8b")
	return b.String()
}

// Profile loads the embedded cuttlefish profile sized for Segments.
func Profile(t testing.TB) *dataset.Profile {
	t.Helper()
	p, err := dataset.Load("columbia_cuttlefish")
	require.NoError(t, err)
	p.SegmentCount = len(Segments)
	return p
}

// WriteSources writes the fixture table and annotation header into a
// temporary directory and returns their paths.
func WriteSources(t testing.TB) (hierarchyFile, annotationFile string) {
	t.Helper()
	dir := t.TempDir()
	hierarchyFile = filepath.Join(dir, "brain-hierarchy.csv")
	annotationFile = filepath.Join(dir, "annotation.nrrd")
	require.NoError(t, os.WriteFile(hierarchyFile, []byte(HierarchyCSV), 0o600))
	require.NoError(t, os.WriteFile(annotationFile, []byte(AnnotationNRRD(Segments...)), 0o600))
	return hierarchyFile, annotationFile
}

// Client returns a client reading the fixtures from local files.
func Client(t testing.TB, opts ...regionmap.Option) regionmap.Client {
	t.Helper()
	h, a := WriteSources(t)
	opts = append([]regionmap.Option{
		regionmap.WithProfile(Profile(t)),
		regionmap.WithHierarchyFile(h),
		regionmap.WithAnnotationFile(a),
	}, opts...)
	c, err := regionmap.New(opts...)
	require.NoError(t, err)
	return c
}
