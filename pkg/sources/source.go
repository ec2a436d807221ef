// Package sources defines the identifiers of the upstream data sources that
// feed the ledger.
//
// Primary sources carry a two character tag (EL, WA, SI, ...). Records that
// are synthesized from a primary source rather than observed in it carry the
// primary tag with an "I" suffix (ELI, SII) and are called implied sources.
//
// Example usage:
//
//	src := sources.SILRetired
//	src.IsPrimary()        // true
//	src.Implied()          // "SII"
//	src.Implied().Primary() // "SI"
package sources

import (
	"regexp"
	"slices"
	"strings"
)

// ID represents the identifier of a data source.
type ID string

// String returns the string representation of a source ID.
func (id ID) String() string {
	return string(id)
}

// Known source IDs.
const (
	Ethnologue        ID = "EL"
	EthnologueImplied ID = "ELI"
	FindABible        ID = "FB"
	WALS              ID = "WA"
	JoshuaProject     ID = "JP"
	AustLang          ID = "AL"
	ABS               ID = "AB"
	SILRetired        ID = "SI"
	SILRetiredImplied ID = "SII"
	Census2011        ID = "CN"
)

// impliedSuffix marks a source tag as derived from a primary source.
const impliedSuffix = "I"

var idPattern = regexp.MustCompile(`^[A-Z]{2}I?$`)

// IDs returns all known source IDs.
func IDs() []ID {
	return []ID{
		Ethnologue,
		EthnologueImplied,
		FindABible,
		WALS,
		JoshuaProject,
		AustLang,
		ABS,
		SILRetired,
		SILRetiredImplied,
		Census2011,
	}
}

var names = map[ID]string{
	Ethnologue:        "Ethnologue",
	EthnologueImplied: "Ethnologue (implied)",
	FindABible:        "Find A Bible",
	WALS:              "WALS",
	JoshuaProject:     "Joshua Project",
	AustLang:          "AustLang",
	ABS:               "Australian Bureau of Statistics",
	SILRetired:        "SIL Retired Codes",
	SILRetiredImplied: "SIL Retired Codes (implied)",
	Census2011:        "Census 2011",
}

// IsValid reports whether the ID is well formed: two uppercase letters,
// optionally followed by the implied suffix.
// Unknown but well formed tags are valid so new adapters can be added
// without touching this package.
func (id ID) IsValid() bool {
	return idPattern.MatchString(string(id))
}

// IsKnown returns true if the ID is one of the defined constants.
func (id ID) IsKnown() bool {
	return slices.Contains(IDs(), id)
}

// IsPrimary reports whether the ID names a directly observed source.
func (id ID) IsPrimary() bool {
	return len(id) == 2 && id.IsValid()
}

// IsImplied reports whether the ID names a derived source.
func (id ID) IsImplied() bool {
	return len(id) == 3 && strings.HasSuffix(string(id), impliedSuffix) && id.IsValid()
}

// Implied returns the derived tag for a primary source. Implied tags are
// returned unchanged.
func (id ID) Implied() ID {
	if id.IsImplied() {
		return id
	}
	return id + impliedSuffix
}

// Primary strips the implied suffix, if any.
func (id ID) Primary() ID {
	if id.IsImplied() {
		return id[:2]
	}
	return id
}

// Name returns the human readable name of the source, or the tag itself
// when the source is unknown.
func (id ID) Name() string {
	if name, ok := names[id]; ok {
		return name
	}
	return string(id)
}

// Parse converts s to an ID, accepting any letter case.
func Parse(s string) (ID, bool) {
	id := ID(strings.ToUpper(strings.TrimSpace(s)))
	return id, id.IsValid()
}
