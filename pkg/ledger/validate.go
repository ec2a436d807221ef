package ledger

import (
	"strings"

	"github.com/agentstation/langmap/pkg/errors"
)

// Record kinds, as reported in MalformedRecordError.Kind.
const (
	KindAlias          = "alias"
	KindClassification = "classification"
	KindTranslation    = "translation"
	KindEdge           = "edge"
	KindAttributes     = "attributes"
)

func checkCode(kind, field string, c Code) error {
	if !c.IsValid() {
		return errors.NewMalformedRecordError(kind, field, c, "must be three lowercase letters")
	}
	return nil
}

// Validate checks the alias key fields.
func (r AliasRecord) Validate() error {
	if err := checkCode(KindAlias, "code", r.Code); err != nil {
		return err
	}
	if !r.Kind.IsValid() {
		return errors.NewMalformedRecordError(KindAlias, "kind", r.Kind, "must be p, a or d")
	}
	if !r.Source.IsValid() {
		return errors.NewMalformedRecordError(KindAlias, "source", r.Source, "is not a source tag")
	}
	if strings.TrimSpace(r.Name) == "" {
		return errors.NewMalformedRecordError(KindAlias, "name", r.Name, "cannot be empty")
	}
	return nil
}

// Validate checks the classification key fields.
func (r ClassificationRecord) Validate() error {
	if err := checkCode(KindClassification, "code", r.Code); err != nil {
		return err
	}
	if !r.Source.IsValid() {
		return errors.NewMalformedRecordError(KindClassification, "source", r.Source, "is not a source tag")
	}
	if r.Level < 0 {
		return errors.NewMalformedRecordError(KindClassification, "level", r.Level, "cannot be negative")
	}
	if strings.TrimSpace(r.Name) == "" {
		return errors.NewMalformedRecordError(KindClassification, "name", r.Name, "cannot be empty")
	}
	return nil
}

// Validate checks the translation key fields and status range.
func (r TranslationRecord) Validate() error {
	if err := checkCode(KindTranslation, "code", r.Code); err != nil {
		return err
	}
	if !r.Source.IsValid() {
		return errors.NewMalformedRecordError(KindTranslation, "source", r.Source, "is not a source tag")
	}
	if !r.Status.IsValid() {
		return errors.NewMalformedRecordError(KindTranslation, "status", int(r.Status), "must be between 0 and 5")
	}
	return nil
}

// Validate checks the edge fields. The object may only be empty for verbs
// that take none.
func (e Edge) Validate() error {
	if err := checkCode(KindEdge, "subject", e.Subject); err != nil {
		return err
	}
	if !e.Verb.IsValid() {
		return errors.NewMalformedRecordError(KindEdge, "verb", e.Verb, "is not a relationship verb")
	}
	if e.Object != "" || e.Verb.TakesObject() {
		if err := checkCode(KindEdge, "object", e.Object); err != nil {
			return err
		}
	}
	if !e.Source.IsValid() {
		return errors.NewMalformedRecordError(KindEdge, "source", e.Source, "is not a source tag")
	}
	return nil
}

// Validate checks an attribute patch: a valid code, at least one field, and
// well formed source tags.
func (a Attributes) Validate() error {
	if err := checkCode(KindAttributes, "code", a.Code); err != nil {
		return err
	}
	if a.IsEmpty() {
		return errors.NewMalformedRecordError(KindAttributes, "", nil, "patch sets no fields")
	}
	for src := range a.Speakers {
		if !src.IsValid() {
			return errors.NewMalformedRecordError(KindAttributes, "speakers", src, "is not a source tag")
		}
	}
	for src := range a.Coordinates {
		if !src.IsValid() {
			return errors.NewMalformedRecordError(KindAttributes, "coordinates", src, "is not a source tag")
		}
	}
	for src := range a.EnglishCompetency {
		if !src.IsValid() {
			return errors.NewMalformedRecordError(KindAttributes, "english_competency", src, "is not a source tag")
		}
	}
	if a.WritingState != "" && !a.WritingState.IsValid() {
		return errors.NewMalformedRecordError(KindAttributes, "writing_state", a.WritingState, "must be U, L, N or R")
	}
	return nil
}
