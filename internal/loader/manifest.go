package loader

import (
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"

	"github.com/agentstation/langmap/pkg/errors"
)

// Manifest lists the adapter output files of one load, in load order.
// Relative paths are resolved against the manifest's directory.
//
//	languages:
//	  - ethnologue.yaml
//	  - joshuaproject.yaml
//	  - wals.yaml
//	translations:
//	  - findabible.yaml
//	retirements: sil_retired.tsv
//	abs_names: abs_names.yaml
//	coordinates: wals_coordinates.yaml
//	census: census_2011.csv
type Manifest struct {
	// Languages are language bundles (names, classification, translation
	// and attributes), one per source.
	Languages []string `yaml:"languages"`
	// Translations is a translation-only bundle applied to codes that are
	// already known.
	Translations []string `yaml:"translations"`
	// Retirements is the SIL retired code table.
	Retirements string `yaml:"retirements,omitempty"`
	// ABSNames maps census language names to codes.
	ABSNames string `yaml:"abs_names,omitempty"`
	// Coordinates is a coordinates bundle.
	Coordinates string `yaml:"coordinates,omitempty"`
	// Census is the census language table.
	Census string `yaml:"census,omitempty"`
	// ExcludedCodes replaces the default excluded codes when set.
	ExcludedCodes []string `yaml:"excluded_codes,omitempty"`
}

// LoadManifest reads a manifest file and resolves its paths.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, errors.WrapParse("yaml", path, err)
	}
	m.resolve(filepath.Dir(path))
	return &m, nil
}

func (m *Manifest) resolve(dir string) {
	abs := func(p string) string {
		if p == "" || filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(dir, p)
	}
	for i := range m.Languages {
		m.Languages[i] = abs(m.Languages[i])
	}
	for i := range m.Translations {
		m.Translations[i] = abs(m.Translations[i])
	}
	m.Retirements = abs(m.Retirements)
	m.ABSNames = abs(m.ABSNames)
	m.Coordinates = abs(m.Coordinates)
	m.Census = abs(m.Census)
}
