// Package constants provides shared constants used throughout the langmap
// codebase: speaker count sentinels and thresholds, translation year markers,
// file permissions and defaults that should be consistent across packages.
package constants

import "time"

// Speaker count sentinels. Negative counts are never measurements.
const (
	// SpeakerCountNoneExpected marks a language explicitly inferred extinct.
	SpeakerCountNoneExpected = -1

	// SpeakerCountUnknown marks a count that was never measured.
	SpeakerCountUnknown = -2

	// SpeakerCountAmbiguous marks a count that exists but is shared by
	// several codes and cannot be attributed to one of them.
	SpeakerCountAmbiguous = -3
)

// Speaker count bands.
const (
	// SpeakerCountFewThreshold is the smallest count that is not "few".
	SpeakerCountFewThreshold = 10

	// SpeakerCountManyThreshold is the smallest count that is "many".
	SpeakerCountManyThreshold = 100
)

// Translation year markers.
const (
	// TranslationYearUnknown is stored when a source gives no year.
	TranslationYearUnknown = -1

	// TranslationYearPositive is stored when a source lists a translation
	// as present without a year.
	TranslationYearPositive = 2013
)

// Census attribution.
const (
	// CensusSmallCellThreshold is the count at or below which a census
	// language is not mapped to codes. Small cells carry deliberate noise.
	CensusSmallCellThreshold = 20
)

// Display defaults.
const (
	// NotInEthnologue is shown when a code has no Ethnologue primary name.
	NotInEthnologue = "Not in Ethnologue"
)

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)

// Storage defaults.
const (
	// DefaultDatabase is the sqlite file used when none is configured.
	DefaultDatabase = "langmap.db"

	// SQLiteBusyTimeout is how long sqlite waits on a locked database.
	SQLiteBusyTimeout = 5 * time.Second
)

// DefaultExcludedCodes are codes for non-indigenous languages skipped by the
// loader: Cocos Islands Malay, English, Mandarin, Auslan and Pitkern.
func DefaultExcludedCodes() []string {
	return []string{"coa", "eng", "cmn", "asf", "pih"}
}
