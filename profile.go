package langmap

import (
	"context"

	"github.com/agentstation/langmap/pkg/errors"
	"github.com/agentstation/langmap/pkg/graph"
	"github.com/agentstation/langmap/pkg/ledger"
	"github.com/agentstation/langmap/pkg/sources"
)

// Profile is everything the ledger holds about one code, plus the
// aggregates derived from it.
type Profile struct {
	Code            ledger.Code                               `json:"code" yaml:"code"`
	DisplayName     string                                    `json:"display_name" yaml:"display_name"`
	PrimaryNames    map[sources.ID][]string                   `json:"primary_names,omitempty" yaml:"primary_names,omitempty"`
	AlternateNames  map[sources.ID][]string                   `json:"alternate_names,omitempty" yaml:"alternate_names,omitempty"`
	Dialects        map[sources.ID][]string                   `json:"dialects,omitempty" yaml:"dialects,omitempty"`
	Classifications map[sources.ID][]string                   `json:"classifications,omitempty" yaml:"classifications,omitempty"`
	Translations    map[sources.ID][]ledger.TranslationRecord `json:"translations,omitempty" yaml:"translations,omitempty"`
	Relationships   []graph.Relationship                      `json:"relationships,omitempty" yaml:"relationships,omitempty"`
	Attributes      ledger.Attributes                         `json:"attributes" yaml:"attributes"`
	BestTranslation ledger.TranslationState                   `json:"best_translation" yaml:"best_translation"`
	Retired         bool                                      `json:"retired" yaml:"retired"`
	HasSpeakers     bool                                      `json:"could_have_speakers" yaml:"could_have_speakers"`
}

// Show collects the profile of code. A code the ledger knows nothing about
// returns an error matching errors.ErrNotFound.
func (m *langmap) Show(ctx context.Context, code ledger.Code) (*Profile, error) {
	if !code.IsValid() {
		return nil, errors.NewValidationError("code", code, "must be three lowercase letters")
	}

	p := &Profile{Code: code}
	var err error
	if p.PrimaryNames, err = m.ledger.PrimaryNames(ctx, code); err != nil {
		return nil, err
	}
	if p.AlternateNames, err = m.ledger.AlternateNames(ctx, code); err != nil {
		return nil, err
	}
	if p.Dialects, err = m.ledger.DialectNames(ctx, code); err != nil {
		return nil, err
	}
	if p.Classifications, err = m.ledger.Classifications(ctx, code); err != nil {
		return nil, err
	}
	if p.Translations, err = m.ledger.Translations(ctx, code); err != nil {
		return nil, err
	}
	if p.Relationships, err = m.graph.Relationships(ctx, code); err != nil {
		return nil, err
	}
	var found bool
	if p.Attributes, found, err = m.ledger.Attributes(ctx, code); err != nil {
		return nil, err
	}

	if !found && len(p.PrimaryNames) == 0 && len(p.AlternateNames) == 0 && len(p.Dialects) == 0 &&
		len(p.Classifications) == 0 && len(p.Translations) == 0 && len(p.Relationships) == 0 {
		return nil, errors.NewNotFoundError("code", code.String())
	}
	p.Attributes.Code = code

	if p.DisplayName, err = m.views.PrimaryNameForDisplay(ctx, code); err != nil {
		return nil, err
	}
	if p.BestTranslation, err = m.views.BestTranslationState(ctx, code); err != nil {
		return nil, err
	}
	if p.Retired, err = m.views.IsRetired(ctx, code); err != nil {
		return nil, err
	}
	if p.HasSpeakers, err = m.views.CouldHaveSpeakers(ctx, code); err != nil {
		return nil, err
	}
	return p, nil
}
