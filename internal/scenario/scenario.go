// Package scenario loads scripted interaction sessions from TOML or YAML
// files and replays them against the interactivity managers.
package scenario

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

var (
	// ErrUnknownOp is returned for a step whose op is not recognized.
	ErrUnknownOp = errors.New("unknown op")
	// ErrUnknownStructure is returned when a step names a missing structure.
	ErrUnknownStructure = errors.New("unknown structure")
	// ErrUnknownResidue is returned when a residue seq id is not in the chain.
	ErrUnknownResidue = errors.New("unknown residue")
	// ErrUnknownAtom is returned when an atom name is not in the residue.
	ErrUnknownAtom = errors.New("unknown atom")
	// ErrInvalidTarget is returned for a malformed step target.
	ErrInvalidTarget = errors.New("invalid target")
	// ErrUnsupportedFormat is returned for files that are neither TOML nor YAML.
	ErrUnsupportedFormat = errors.New("unsupported scenario format")
)

// Format is a scenario file encoding.
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// File is a decoded scenario.
type File struct {
	Name        string      `toml:"name" yaml:"name"`
	Granularity string      `toml:"granularity" yaml:"granularity"`
	Structures  []Structure `toml:"structures" yaml:"structures"`
	Steps       []Step      `toml:"steps" yaml:"steps"`
}

// Structure declares a root structure and its derived copies.
type Structure struct {
	Name   string   `toml:"name" yaml:"name"`
	Chains []Chain  `toml:"chains" yaml:"chains"`
	Derive []Derive `toml:"derive" yaml:"derive"`
}

// Chain is one chain given as one-letter residue codes.
type Chain struct {
	ID       string `toml:"id" yaml:"id"`
	Sequence string `toml:"sequence" yaml:"sequence"`
}

// Derive declares a copy of the parent structure restricted to some chains.
type Derive struct {
	Name   string   `toml:"name" yaml:"name"`
	Chains []string `toml:"chains" yaml:"chains"`
}

// Step is one scripted operation.
type Step struct {
	Op string `toml:"op" yaml:"op"`

	// Target
	Structure string   `toml:"structure" yaml:"structure"`
	Chain     string   `toml:"chain" yaml:"chain"`
	Residue   int      `toml:"residue" yaml:"residue"`
	Atom      string   `toml:"atom" yaml:"atom"`
	Region    string   `toml:"region" yaml:"region"`
	Bond      []string `toml:"bond" yaml:"bond"`
	Scoped    bool     `toml:"scoped" yaml:"scoped"`

	// Raw skips the granularity expansion.
	Raw bool `toml:"raw" yaml:"raw"`

	// Pointer input for hover and click.
	Button  string `toml:"button" yaml:"button"`
	Shift   bool   `toml:"shift" yaml:"shift"`
	Control bool   `toml:"control" yaml:"control"`

	Granularity string `toml:"granularity" yaml:"granularity"`
}

// FormatFromPath picks the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}

// Load reads and decodes the scenario at path.
func Load(path string) (*File, error) {
	return LoadFS(os.DirFS(filepath.Dir(path)), filepath.Base(path))
}

// LoadFS reads and decodes the scenario called name within fsys.
func LoadFS(fsys fs.FS, name string) (*File, error) {
	format, err := FormatFromPath(name)
	if err != nil {
		return nil, err
	}
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario: %w", err)
	}
	f, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	if f.Name == "" {
		f.Name = strings.TrimSuffix(path.Base(name), path.Ext(name))
	}
	return f, nil
}

// Parse decodes a scenario. Unknown fields are rejected.
func Parse(data []byte, format Format) (*File, error) {
	var f File
	switch format {
	case FormatTOML:
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&f); err != nil {
			return nil, fmt.Errorf("failed to decode TOML scenario: %w", err)
		}
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&f); err != nil {
			return nil, fmt.Errorf("failed to decode YAML scenario: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	if len(f.Structures) == 0 {
		return nil, errors.New("scenario declares no structures")
	}
	return &f, nil
}

// Demo returns the built-in scenario used when no file is given.
func Demo() *File {
	return &File{
		Name:        "demo",
		Granularity: "residue",
		Structures: []Structure{{
			Name: "crambin",
			Chains: []Chain{
				{ID: "A", Sequence: "TTCCPSIVARSNFNVCRLPGTPEA"},
				{ID: "B", Sequence: "LCATYTGCIIIPGATCPGDYAN"},
			},
			Derive: []Derive{{Name: "crambin-B", Chains: []string{"B"}}},
		}},
	}
}
