package ledger

import (
	"maps"
	"regexp"

	"github.com/agentstation/langmap/pkg/sources"
)

// Code is a three letter lowercase language identifier, the key joining
// every record in the ledger.
type Code string

var codePattern = regexp.MustCompile(`^[a-z]{3}$`)

// IsValid reports whether c is three lowercase ASCII letters.
func (c Code) IsValid() bool {
	return codePattern.MatchString(string(c))
}

// String returns the code as a string.
func (c Code) String() string {
	return string(c)
}

// AliasKind tags a name as primary, alternate or dialect.
type AliasKind string

// Alias kinds.
const (
	Primary   AliasKind = "p"
	Alternate AliasKind = "a"
	Dialect   AliasKind = "d"
)

// IsValid reports whether k is a known alias kind.
func (k AliasKind) IsValid() bool {
	switch k {
	case Primary, Alternate, Dialect:
		return true
	}
	return false
}

// String returns a readable name for the kind.
func (k AliasKind) String() string {
	switch k {
	case Primary:
		return "primary"
	case Alternate:
		return "alternate"
	case Dialect:
		return "dialect"
	}
	return string(k)
}

// AliasRecord is a name reported for a code by a source.
// Unique on (Code, Kind, Source, Name).
type AliasRecord struct {
	Code   Code       `json:"code" yaml:"code"`
	Kind   AliasKind  `json:"kind" yaml:"kind"`
	Source sources.ID `json:"source" yaml:"source"`
	Name   string     `json:"name" yaml:"name"`
}

// ClassificationRecord is one level of a source's taxonomy for a code.
// Level 0 is the broadest. Unique on (Code, Source, Level).
type ClassificationRecord struct {
	Code   Code       `json:"code" yaml:"code"`
	Source sources.ID `json:"source" yaml:"source"`
	Level  int        `json:"level" yaml:"level"`
	Name   string     `json:"name" yaml:"name"`
}

// TranslationState is the completeness of scripture translation, as an
// ordinal: a larger value is a more complete translation.
type TranslationState int

// Translation states, least to most complete.
const (
	NoRecord     TranslationState = 0
	NoScripture  TranslationState = 1
	CompleteBook TranslationState = 2
	Portions     TranslationState = 3
	NewTestament TranslationState = 4
	WholeBible   TranslationState = 5
)

var translationNames = map[TranslationState]string{
	NoRecord:     "No record of any translation",
	NoScripture:  "No scripture",
	CompleteBook: "A book of scripture",
	Portions:     "Portions of scripture",
	NewTestament: "New Testament",
	WholeBible:   "Whole Bible",
}

// IsValid reports whether s is a defined state.
func (s TranslationState) IsValid() bool {
	return s >= NoRecord && s <= WholeBible
}

// String returns the display name of the state.
func (s TranslationState) String() string {
	if name, ok := translationNames[s]; ok {
		return name
	}
	return "Unknown translation state"
}

// TranslationRecord is a source's translation status for a code.
// Unique on (Code, Source).
type TranslationRecord struct {
	Code   Code             `json:"code" yaml:"code"`
	Source sources.ID       `json:"source" yaml:"source"`
	Status TranslationState `json:"status" yaml:"status"`
	// Year of the most complete translation, or
	// constants.TranslationYearUnknown.
	Year int `json:"year" yaml:"year"`
}

// WritingState describes how a language is written.
type WritingState string

// Writing states.
const (
	Unwritten        WritingState = "U"
	LatinScript      WritingState = "L"
	LatinScriptNotIU WritingState = "N"
	NotRecorded      WritingState = "R"
)

// IsValid reports whether w is a known writing state.
func (w WritingState) IsValid() bool {
	switch w {
	case Unwritten, LatinScript, LatinScriptNotIU, NotRecorded:
		return true
	}
	return false
}

// String returns the display name of the state.
func (w WritingState) String() string {
	switch w {
	case Unwritten:
		return "Unwritten"
	case LatinScript:
		return "Latin script"
	case LatinScriptNotIU:
		return "Latin script, unused"
	case NotRecorded:
		return "Not recorded"
	}
	return string(w)
}

// Coordinate is a point reported by a source.
type Coordinate struct {
	Latitude  float64 `json:"latitude" yaml:"latitude"`
	Longitude float64 `json:"longitude" yaml:"longitude"`
}

// Competency is the share of speakers, in percent, that speak English well,
// reported as a pessimistic and an optimistic bound.
type Competency struct {
	Pessimistic float64 `json:"pessimistic" yaml:"pessimistic"`
	Optimistic  float64 `json:"optimistic" yaml:"optimistic"`
}

// Attributes holds the sparse scalar fields recorded for a code. As a
// patch, nil maps and an empty WritingState mean "not supplied".
type Attributes struct {
	Code              Code                      `json:"code" yaml:"code"`
	Speakers          map[sources.ID]int        `json:"speakers,omitempty" yaml:"speakers,omitempty"`
	Coordinates       map[sources.ID]Coordinate `json:"coordinates,omitempty" yaml:"coordinates,omitempty"`
	EnglishCompetency map[sources.ID]Competency `json:"english_competency,omitempty" yaml:"english_competency,omitempty"`
	WritingState      WritingState              `json:"writing_state,omitempty" yaml:"writing_state,omitempty"`
}

// IsEmpty reports whether the patch sets no field.
func (a Attributes) IsEmpty() bool {
	return len(a.Speakers) == 0 &&
		len(a.Coordinates) == 0 &&
		len(a.EnglishCompetency) == 0 &&
		a.WritingState == ""
}

// Merge applies the fields set in patch, leaving the rest untouched.
func (a *Attributes) Merge(patch Attributes) {
	a.Speakers = mergeMap(a.Speakers, patch.Speakers)
	a.Coordinates = mergeMap(a.Coordinates, patch.Coordinates)
	a.EnglishCompetency = mergeMap(a.EnglishCompetency, patch.EnglishCompetency)
	if patch.WritingState != "" {
		a.WritingState = patch.WritingState
	}
}

// Clone returns a deep copy.
func (a Attributes) Clone() Attributes {
	a.Speakers = maps.Clone(a.Speakers)
	a.Coordinates = maps.Clone(a.Coordinates)
	a.EnglishCompetency = maps.Clone(a.EnglishCompetency)
	return a
}

func mergeMap[V any](dst, src map[sources.ID]V) map[sources.ID]V {
	if len(src) == 0 {
		return dst
	}
	if dst == nil {
		dst = make(map[sources.ID]V, len(src))
	}
	maps.Copy(dst, src)
	return dst
}
