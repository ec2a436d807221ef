// Package signature reduces a language name to a phonetic signature: a
// consonant skeleton that is equal for orthographic variants of the same
// name as written by different transcribers.
//
// The reduction is an ordered table of rewrite rules applied to the
// lowercased name. Order matters: terminal vowels are marked before vowels
// are stripped, and consonant merges run after that. Signatures are not
// unique; different languages can share one.
//
// Example usage:
//
//	signature.Generate("Mudburra")  // "mtbrA"
//	signature.Generate("Moodburra") // "mtbrA"
package signature

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Step records the state of a name after one rule was applied.
type Step struct {
	Rule   string
	Result string
}

// Generator computes signatures with a fixed rule table.
// A Generator is safe for concurrent use.
type Generator struct {
	rules []Rule
}

// New creates a Generator using the given rules, or the default table when
// none are given.
func New(rules ...Rule) *Generator {
	if len(rules) == 0 {
		rules = Rules()
	}
	return &Generator{rules: rules}
}

var defaultGenerator = New()

// Generate returns the signature of name using the default rule table.
func Generate(name string) string {
	return defaultGenerator.Generate(name)
}

// Generate returns the signature of name.
func (g *Generator) Generate(name string) string {
	s := g.normalize(name)
	for _, r := range g.rules {
		s = r.Apply(s)
	}
	return s
}

// Trace returns every intermediate result, starting with the normalized
// input, for diagnosing unexpected signatures.
func (g *Generator) Trace(name string) []Step {
	s := g.normalize(name)
	steps := make([]Step, 0, len(g.rules)+1)
	steps = append(steps, Step{Rule: "normalize", Result: s})
	for _, r := range g.rules {
		s = r.Apply(s)
		steps = append(steps, Step{Rule: r.Name, Result: s})
	}
	return steps
}

// Trace returns every intermediate result using the default rule table.
func Trace(name string) []Step {
	return defaultGenerator.Trace(name)
}

// apostrophes are folded to a plain apostrophe so the glottal-stop rule
// sees a single form.
var apostrophes = runes.Map(func(r rune) rune {
	switch r {
	case '’', '‘', 'ʼ', '`', '´':
		return '\''
	}
	return r
})

// normalize composes the name, folds apostrophe variants and lowercases.
// Casers and transformer chains hold state, so both are built per call.
func (g *Generator) normalize(name string) string {
	t := transform.Chain(norm.NFC, apostrophes)
	s, _, err := transform.String(t, name)
	if err != nil {
		s = name
	}
	return cases.Lower(language.Und).String(strings.TrimSpace(s))
}
