package views

import (
	"context"

	"github.com/agentstation/langmap/pkg/constants"
	"github.com/agentstation/langmap/pkg/graph"
	"github.com/agentstation/langmap/pkg/ledger"
	"github.com/agentstation/langmap/pkg/sources"
)

// Band is a coarse speaker count bucket.
type Band string

// Speaker bands.
const (
	BandNone    Band = "none"
	BandFew     Band = "few"
	BandSome    Band = "some"
	BandMany    Band = "many"
	BandUnknown Band = "unknown"
)

// SpeakerBand buckets a speaker count. Zero and SpeakerCountNoneExpected
// are none; the unknown and ambiguous sentinels are unknown.
func SpeakerBand(count int) Band {
	switch {
	case count == 0 || count == constants.SpeakerCountNoneExpected:
		return BandNone
	case count < 0:
		return BandUnknown
	case count < constants.SpeakerCountFewThreshold:
		return BandFew
	case count < constants.SpeakerCountManyThreshold:
		return BandSome
	default:
		return BandMany
	}
}

// Row is one line of the overview table.
type Row struct {
	Code          ledger.Code             `json:"code" yaml:"code"`
	Name          string                  `json:"name" yaml:"name"`
	Speakers      int                     `json:"speakers" yaml:"speakers"`
	Band          Band                    `json:"band" yaml:"band"`
	Translation   ledger.TranslationState `json:"translation" yaml:"translation"`
	Retired       bool                    `json:"retired" yaml:"retired"`
	Relationships []graph.Relationship    `json:"relationships" yaml:"relationships"`
}

// Table returns one row per code in the ledger, sorted by code. Speaker
// counts are Ethnologue's.
func (v *Views) Table(ctx context.Context) ([]Row, error) {
	codes, err := v.ledger.Codes(ctx)
	if err != nil {
		return nil, err
	}

	rows := make([]Row, 0, len(codes))
	for _, code := range codes {
		row := Row{Code: code}
		if row.Name, err = v.PrimaryNameForDisplay(ctx, code); err != nil {
			return nil, err
		}
		if row.Speakers, err = v.SpeakerCount(ctx, code, sources.Ethnologue); err != nil {
			return nil, err
		}
		row.Band = SpeakerBand(row.Speakers)
		if row.Translation, err = v.BestTranslationState(ctx, code); err != nil {
			return nil, err
		}
		if row.Retired, err = v.IsRetired(ctx, code); err != nil {
			return nil, err
		}
		if row.Relationships, err = v.Relationships(ctx, code); err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}
