package resolver

import (
	"io"
	"maps"
	"os"

	"github.com/goccy/go-yaml"

	"github.com/agentstation/langmap/pkg/errors"
	"github.com/agentstation/langmap/pkg/ledger"
)

type overrideKind uint8

const (
	forceKind overrideKind = iota + 1
	suppressKind
)

// Override replaces resolution for one exact name. It either forces a
// single code or suppresses resolution entirely.
type Override struct {
	kind overrideKind
	code ledger.Code
}

// Force returns an override resolving to code.
func Force(code ledger.Code) Override {
	return Override{kind: forceKind, code: code}
}

// Suppress returns an override resolving to nothing.
func Suppress() Override {
	return Override{kind: suppressKind}
}

// IsSuppress reports whether o suppresses resolution.
func (o Override) IsSuppress() bool {
	return o.kind == suppressKind
}

// Code returns the forced code, if o forces one.
func (o Override) Code() (ledger.Code, bool) {
	return o.code, o.kind == forceKind
}

// Codes returns the result the override imposes: the forced code or an
// empty set.
func (o Override) Codes() []ledger.Code {
	if o.kind == forceKind {
		return []ledger.Code{o.code}
	}
	return []ledger.Code{}
}

// String returns "force:<code>" or "suppress".
func (o Override) String() string {
	switch o.kind {
	case forceKind:
		return "force:" + string(o.code)
	case suppressKind:
		return "suppress"
	}
	return "none"
}

// Overrides maps exact names to their override.
type Overrides map[string]Override

// DefaultOverrides returns the built-in table. Guradjara is suppressed
// because its signature collides with unrelated languages.
func DefaultOverrides() Overrides {
	return Overrides{
		"Guradjara": Suppress(),
	}
}

// Lookup returns the override for name.
func (o Overrides) Lookup(name string) (Override, bool) {
	ov, ok := o[name]
	return ov, ok
}

// Merge returns a copy of o with the entries of other added, replacing
// entries for the same name.
func (o Overrides) Merge(other Overrides) Overrides {
	out := maps.Clone(o)
	if out == nil {
		out = make(Overrides, len(other))
	}
	maps.Copy(out, other)
	return out
}

type overridesFile struct {
	Overrides []overrideEntry `yaml:"overrides"`
}

type overrideEntry struct {
	Name     string `yaml:"name"`
	Code     string `yaml:"code,omitempty"`
	Suppress bool   `yaml:"suppress,omitempty"`
}

// ParseOverrides reads an overrides document:
//
//	overrides:
//	  - name: Guradjara
//	    suppress: true
//	  - name: Some Name
//	    code: abc
//
// Each entry names either a code or suppress, not both.
func ParseOverrides(r io.Reader) (Overrides, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.WrapIO("read", "overrides", err)
	}

	var doc overridesFile
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.WrapParse("yaml", "overrides", err)
	}

	out := make(Overrides, len(doc.Overrides))
	for i, e := range doc.Overrides {
		switch {
		case e.Name == "":
			return nil, errors.NewValidationError("overrides.name", i, "entry has no name")
		case e.Suppress && e.Code != "":
			return nil, errors.NewValidationError("overrides.code", e.Name, "cannot both force a code and suppress")
		case e.Suppress:
			out[e.Name] = Suppress()
		case ledger.Code(e.Code).IsValid():
			out[e.Name] = Force(ledger.Code(e.Code))
		default:
			return nil, errors.NewValidationError("overrides.code", e.Code, "must be three lowercase letters")
		}
	}
	return out, nil
}

// LoadOverrides reads an overrides file from path.
func LoadOverrides(path string) (Overrides, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.WrapIO("open", path, err)
	}
	defer f.Close()

	ov, err := ParseOverrides(f)
	if err != nil {
		return nil, err
	}
	return ov, nil
}
