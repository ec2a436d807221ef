package ledger

import "github.com/agentstation/langmap/pkg/sources"

// Verb is the type of a relationship between two codes.
type Verb string

// Similarity-class verbs.
const (
	SimilarTo           Verb = "SI"
	RelatedTo           Verb = "RE"
	DifferentFrom       Verb = "DI"
	MayBeIntelligible   Verb = "MI"
	LimitedIntelligible Verb = "LI"
)

// Retirement-class verbs. The subject is the retired code.
const (
	RetiredChange      Verb = "C"
	RetiredDuplicate   Verb = "D"
	RetiredNonExistent Verb = "N"
	RetiredSplitInto   Verb = "S"
	RetiredMergedInto  Verb = "M"
)

// Implied verbs, only produced by reverse inference.
const (
	SplitFrom  Verb = "SF"
	MergedFrom Verb = "MF"
)

var verbLabels = map[Verb]string{
	SimilarTo:           "is similar to",
	RelatedTo:           "is related to",
	DifferentFrom:       "is different to",
	MayBeIntelligible:   "may be intelligible with",
	LimitedIntelligible: "limited intelligibility with",
	RetiredChange:       "retired, changed into",
	RetiredDuplicate:    "retired, duplicates",
	RetiredNonExistent:  "retired, does not exist",
	RetiredSplitInto:    "retired, split into",
	RetiredMergedInto:   "retired, merged into",
	SplitFrom:           "split from retired code",
	MergedFrom:          "merged from retired code",
}

// Verbs returns every defined verb.
func Verbs() []Verb {
	return []Verb{
		SimilarTo, RelatedTo, DifferentFrom, MayBeIntelligible, LimitedIntelligible,
		RetiredChange, RetiredDuplicate, RetiredNonExistent, RetiredSplitInto, RetiredMergedInto,
		SplitFrom, MergedFrom,
	}
}

// IsValid reports whether v is a defined verb.
func (v Verb) IsValid() bool {
	_, ok := verbLabels[v]
	return ok
}

// Label returns the human readable form of the verb.
func (v Verb) Label() string {
	if label, ok := verbLabels[v]; ok {
		return label
	}
	return string(v)
}

// IsRetirement reports whether v marks its subject as a retired code.
func (v Verb) IsRetirement() bool {
	switch v {
	case RetiredChange, RetiredDuplicate, RetiredNonExistent, RetiredSplitInto, RetiredMergedInto:
		return true
	}
	return false
}

// IsSimilarity reports whether v is a similarity-class verb.
func (v Verb) IsSimilarity() bool {
	switch v {
	case SimilarTo, RelatedTo, DifferentFrom, MayBeIntelligible, LimitedIntelligible:
		return true
	}
	return false
}

// TakesObject reports whether edges with this verb need an object code.
func (v Verb) TakesObject() bool {
	return v != RetiredNonExistent
}

// Edge is a directed, source-tagged relationship.
// Unique on all four fields.
type Edge struct {
	Subject Code       `json:"subject" yaml:"subject"`
	Verb    Verb       `json:"verb" yaml:"verb"`
	Object  Code       `json:"object,omitempty" yaml:"object,omitempty"`
	Source  sources.ID `json:"source" yaml:"source"`
}
