// Package packaging writes a synthesized hierarchy in the shape the atlas
// packaging pipeline consumes: an ordered structures document and an atlas
// metadata document.
package packaging

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/agentstation/utc"
	"github.com/goccy/go-yaml"

	"github.com/agentstation/regionmap/pkg/constants"
	"github.com/agentstation/regionmap/pkg/dataset"
	"github.com/agentstation/regionmap/pkg/errors"
	"github.com/agentstation/regionmap/pkg/hierarchy"
	"github.com/agentstation/regionmap/pkg/logging"
	"github.com/agentstation/regionmap/pkg/regions"
	"github.com/agentstation/regionmap/pkg/save"
)

// Metadata describes the atlas the structures belong to.
type Metadata struct {
	Name          string            `json:"name" yaml:"name"`
	Version       string            `json:"version" yaml:"version"`
	Species       string            `json:"species" yaml:"species"`
	Citation      string            `json:"citation" yaml:"citation"`
	AtlasLink     string            `json:"atlas_link" yaml:"atlas_link"`
	Orientation   string            `json:"orientation" yaml:"orientation"`
	Resolution    []float64         `json:"resolution" yaml:"resolution,flow"`
	RootID        int               `json:"root_id" yaml:"root_id"`
	AtlasPackager string            `json:"atlas_packager" yaml:"atlas_packager"`
	Regions       int               `json:"regions" yaml:"regions"`
	Generator     string            `json:"generator,omitempty" yaml:"generator,omitempty"`
	GeneratedAt   utc.Time          `json:"generated_at" yaml:"generated_at"`
	Sources       map[string]string `json:"sources,omitempty" yaml:"sources,omitempty"` // role -> sha256
}

// Input is everything Write needs.
type Input struct {
	Result    *hierarchy.Result
	Profile   *dataset.Profile
	Sources   map[string]string // role -> sha256 of the file used
	Generator string
}

// File is one written output file.
type File struct {
	Name   string `json:"name" yaml:"name"`
	Path   string `json:"path" yaml:"path"`
	SHA256 string `json:"sha256" yaml:"sha256"`
	Size   int    `json:"size" yaml:"size"`
}

// Manifest lists what Write produced.
type Manifest struct {
	Dir      string   `json:"dir" yaml:"dir"`
	Files    []File   `json:"files" yaml:"files"`
	Metadata Metadata `json:"metadata" yaml:"metadata"`
}

// NewMetadata builds the metadata document for a result.
func NewMetadata(in Input) Metadata {
	p := in.Profile
	return Metadata{
		Name:          p.Atlas.Name,
		Version:       p.Atlas.Version,
		Species:       p.Atlas.Species,
		Citation:      p.Atlas.Citation,
		AtlasLink:     p.Atlas.Link,
		Orientation:   p.Atlas.Orientation,
		Resolution:    p.Atlas.Resolution,
		RootID:        p.Root.ID,
		AtlasPackager: p.Atlas.Packager,
		Regions:       len(in.Result.Regions),
		Generator:     in.Generator,
		GeneratedAt:   utc.Now(),
		Sources:       in.Sources,
	}
}

// Encode writes the region descriptors to w in the given format.
func Encode(w io.Writer, rs []regions.Region, format save.Format) error {
	return encode(w, descriptors(rs), format)
}

// Write writes the structures and metadata documents. With a writer option
// only the structures document is written, to that writer.
func Write(ctx context.Context, in Input, opts ...save.Option) (*Manifest, error) {
	if in.Result == nil || in.Profile == nil {
		return nil, &errors.ValidationError{Field: "input", Message: "result and profile are required"}
	}
	options := save.Defaults().Apply(opts...)
	if !options.Format().IsValid() {
		return nil, errors.NewValidationError("format", options.Format().String(), "unsupported output format")
	}
	logger := logging.FromContext(ctx)

	if w := options.Writer(); w != nil {
		if err := Encode(w, in.Result.Regions, options.Format()); err != nil {
			return nil, err
		}
		return &Manifest{Metadata: NewMetadata(in)}, nil
	}

	dir := options.Path()
	if dir == "" {
		return nil, &errors.ConfigError{Component: "packaging", Message: "no output directory configured"}
	}
	if err := os.MkdirAll(dir, constants.DirPermissions); err != nil {
		return nil, errors.WrapIO("create", dir, err)
	}

	manifest := &Manifest{Dir: dir, Metadata: NewMetadata(in)}
	docs := []struct {
		name string
		v    any
	}{
		{fileName(constants.StructuresFile, options.Format()), descriptors(in.Result.Regions)},
		{fileName(constants.MetadataFile, options.Format()), manifest.Metadata},
	}

	// Encode everything before touching the directory so a failure
	// leaves no partial output behind.
	encoded := make([][]byte, len(docs))
	for i, d := range docs {
		var buf bytes.Buffer
		if err := encode(&buf, d.v, options.Format()); err != nil {
			return nil, err
		}
		encoded[i] = buf.Bytes()

		path := filepath.Join(dir, d.name)
		if _, err := os.Stat(path); err == nil && !options.Overwrite() {
			return nil, errors.WrapIO("write", path, os.ErrExist)
		}
	}

	// Both documents are staged next to their targets and only renamed into
	// place once every write has succeeded.
	staged := make([]string, 0, len(docs))
	defer func() {
		for _, tmp := range staged {
			_ = os.Remove(tmp)
		}
	}()
	for i, d := range docs {
		tmp, err := stage(dir, d.name, encoded[i])
		if err != nil {
			return nil, err
		}
		staged = append(staged, tmp)
	}

	var placed []string
	for i, d := range docs {
		path := filepath.Join(dir, d.name)
		if err := os.Rename(staged[i], path); err != nil {
			for _, p := range placed {
				_ = os.Remove(p)
			}
			return nil, errors.WrapIO("write", path, err)
		}
		placed = append(placed, path)

		sum := sha256.Sum256(encoded[i])
		manifest.Files = append(manifest.Files, File{
			Name:   d.name,
			Path:   path,
			SHA256: hex.EncodeToString(sum[:]),
			Size:   len(encoded[i]),
		})
		logger.Debug().Str("path", path).Int("bytes", len(encoded[i])).Msg("Wrote output file")
	}

	logger.Info().
		Str("dir", dir).
		Int("regions", manifest.Metadata.Regions).
		Msg("Atlas structures written")
	return manifest, nil
}

// descriptor is the serialized shape of a region.
type descriptor struct {
	Acronym         string      `json:"acronym" yaml:"acronym"`
	ID              int         `json:"id" yaml:"id"`
	Name            string      `json:"name" yaml:"name"`
	StructureIDPath []int       `json:"structure_id_path" yaml:"structure_id_path,flow"`
	RGBTriplet      regions.RGB `json:"rgb_triplet" yaml:"rgb_triplet,flow"`
}

func descriptors(rs []regions.Region) []descriptor {
	out := make([]descriptor, len(rs))
	for i, r := range rs {
		out[i] = descriptor{
			Acronym:         r.Acronym,
			ID:              r.ID,
			Name:            r.Name,
			StructureIDPath: r.StructureIDPath,
		}
		if r.RGBTriplet != nil {
			out[i].RGBTriplet = *r.RGBTriplet
		}
	}
	return out
}

func encode(w io.Writer, v any, format save.Format) error {
	switch format {
	case save.FormatYAML:
		enc := yaml.NewEncoder(w, yaml.Indent(2), yaml.IndentSequence(false))
		if err := enc.Encode(v); err != nil {
			return errors.WrapParse("yaml", "", err)
		}
		return nil
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return errors.WrapParse("json", "", err)
		}
		return nil
	}
}

// fileName swaps the extension of a .json file name for the format's.
// stage writes data to a temporary file in dir and returns its path.
func stage(dir, name string, data []byte) (string, error) {
	f, err := os.CreateTemp(dir, "."+name+".*.tmp")
	if err != nil {
		return "", errors.WrapIO("create", dir, err)
	}
	tmp := f.Name()
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return "", errors.WrapIO("write", tmp, err)
	}
	if err := f.Chmod(constants.FilePermissions); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return "", errors.WrapIO("write", tmp, err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return "", errors.WrapIO("write", tmp, err)
	}
	return tmp, nil
}

func fileName(name string, format save.Format) string {
	return strings.TrimSuffix(name, filepath.Ext(name)) + "." + format.Extension()
}
