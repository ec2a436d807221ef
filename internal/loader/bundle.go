package loader

import (
	"os"

	"github.com/goccy/go-yaml"

	"github.com/agentstation/langmap/pkg/errors"
	"github.com/agentstation/langmap/pkg/graph"
	"github.com/agentstation/langmap/pkg/ledger"
	"github.com/agentstation/langmap/pkg/sources"
)

// LanguageBundle is the output of a language adapter for one source.
type LanguageBundle struct {
	Source    sources.ID      `yaml:"source"`
	Languages []LanguageEntry `yaml:"languages"`
}

// LanguageEntry is everything one source reports about one code.
type LanguageEntry struct {
	Code           ledger.Code       `yaml:"code"`
	Primary        string            `yaml:"primary,omitempty"`
	Alternates     []string          `yaml:"alternates,omitempty"`
	Dialects       []string          `yaml:"dialects,omitempty"`
	Classification []string          `yaml:"classification,omitempty"`
	Translation    *TranslationEntry `yaml:"translation,omitempty"`
	Speakers       *int              `yaml:"speakers,omitempty"`
	WritingState   string            `yaml:"writing_state,omitempty"`
	Relationships  []graph.Relation  `yaml:"relationships,omitempty"`
}

// TranslationEntry is a translation status and year. A missing year is
// stored as constants.TranslationYearUnknown, or as
// constants.TranslationYearPositive when the source lists the translation
// as present.
type TranslationEntry struct {
	Code    ledger.Code `yaml:"code,omitempty"`
	Status  int         `yaml:"status"`
	Year    *int        `yaml:"year,omitempty"`
	Present bool        `yaml:"present,omitempty"`
}

// TranslationBundle carries translation statuses only.
type TranslationBundle struct {
	Source       sources.ID         `yaml:"source"`
	Translations []TranslationEntry `yaml:"translations"`
}

// NameBundle maps names to codes, as the ABS language list does.
type NameBundle struct {
	Source sources.ID  `yaml:"source"`
	Names  []NameEntry `yaml:"names"`
}

// NameEntry is one name and the codes it belongs to.
type NameEntry struct {
	Name  string        `yaml:"name"`
	Codes []ledger.Code `yaml:"codes"`
}

// CoordinateBundle carries a point per code.
type CoordinateBundle struct {
	Source      sources.ID        `yaml:"source"`
	Coordinates []CoordinateEntry `yaml:"coordinates"`
}

// CoordinateEntry is the point a source gives for a code.
type CoordinateEntry struct {
	Code      ledger.Code `yaml:"code"`
	Latitude  float64     `yaml:"latitude"`
	Longitude float64     `yaml:"longitude"`
}

// bundle is implemented by every bundle type.
type bundle interface {
	source() sources.ID
}

func (b *LanguageBundle) source() sources.ID    { return b.Source }
func (b *TranslationBundle) source() sources.ID { return b.Source }
func (b *NameBundle) source() sources.ID        { return b.Source }
func (b *CoordinateBundle) source() sources.ID  { return b.Source }

// readBundle decodes the YAML file at path into b and checks its source tag.
func readBundle(path string, b bundle) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.WrapIO("read", path, err)
	}
	if err := yaml.Unmarshal(data, b); err != nil {
		return errors.WrapParse("yaml", path, err)
	}
	if src := b.source(); !src.IsValid() {
		return errors.NewParseError("yaml", path, "bundle has no valid source tag: "+string(src), errors.ErrInvalidInput)
	}
	return nil
}
