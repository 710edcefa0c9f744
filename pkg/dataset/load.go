package dataset

import (
	"bytes"
	"embed"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/agentstation/regionmap/pkg/errors"
)

// FS embeds the shipped dataset profiles.
//
//go:embed profiles/*.yaml
var FS embed.FS

const profileDir = "profiles"

// Names lists the embedded profiles in sorted order.
func Names() []string {
	entries, err := fs.ReadDir(FS, profileDir)
	if err != nil {
		return nil
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".yaml") {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), ".yaml"))
	}
	sort.Strings(names)
	return names
}

// Load returns the embedded profile called name.
func Load(name string) (*Profile, error) {
	file := path.Join(profileDir, name+".yaml")
	data, err := FS.ReadFile(file)
	if err != nil {
		return nil, errors.NewNotFoundError("dataset profile", name)
	}
	return Parse(data, file)
}

// LoadFile reads a profile from disk.
func LoadFile(filename string) (*Profile, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, errors.WrapIO("read", filename, err)
	}
	return Parse(data, filename)
}

// Parse decodes and validates a YAML profile. Unknown keys are rejected so
// that typos in a hand-edited profile do not silently fall back to zero values.
func Parse(data []byte, source string) (*Profile, error) {
	var p Profile
	if err := yaml.UnmarshalWithOptions(data, &p, yaml.DisallowUnknownField()); err != nil {
		return nil, errors.NewParseError("yaml", source, yaml.FormatError(err, false, true), err)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// YAML renders the profile the way it is stored.
func (p *Profile) YAML() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf, yaml.Indent(2), yaml.IndentSequence(false))
	if err := enc.Encode(p); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
