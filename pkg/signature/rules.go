package signature

import (
	"regexp"

	"github.com/dlclark/regexp2"
)

// Rule is one rewrite step of the signature table.
type Rule struct {
	// Name describes the rewrite, e.g. "d -> t".
	Name  string
	apply func(string) string
}

// Apply rewrites s.
func (r Rule) Apply(s string) string {
	return r.apply(s)
}

// Replace builds a rule that replaces every non-overlapping match of
// pattern with repl. repl may use $1 style group references.
func Replace(pattern, repl string) Rule {
	re := regexp.MustCompile(pattern)
	return Rule{
		Name: pattern + " -> " + repl,
		apply: func(s string) string {
			return re.ReplaceAllString(s, repl)
		},
	}
}

// Backref builds a rule whose pattern needs backreferences, which RE2 does
// not support. Matches are replaced left to right without overlap; repl
// refers to groups as $1.
func Backref(pattern, repl string) Rule {
	re := regexp2.MustCompile(pattern, regexp2.None)
	return Rule{
		Name: pattern + " -> " + repl,
		apply: func(s string) string {
			// Replace only fails on a match timeout, and none is set.
			out, err := re.Replace(s, repl, -1, -1)
			if err != nil {
				return s
			}
			return out
		},
	}
}

// Rules returns the default rule table, in application order.
//
// The syllable marker appears twice. A single pass leaves the second of two
// overlapping syllables (e.g. "nanan") unmarked, and some known variant
// groups only converge when both are marked.
func Rules() []Rule {
	return []Rule{
		Replace(`n'a`, `nya`),
		Replace(`[^\p{L}\p{N}_]`, ``),
		Replace(`[ij]a`, `ya`),
		Replace(`yau`, `yaw`),
		Replace(`ie`, `y`),
		Replace(`^u`, `w`),
		Replace(`([aei])n[dt]y?i$`, `${1}ndji`),
		// Terminal vowels survive vowel stripping as uppercase markers.
		Replace(`a+$`, `A`),
		Replace(`e+$`, `E`),
		Replace(`i+$`, `I`),
		Replace(`o+$`, `O`),
		Replace(`u+$`, `U`),
		Replace(`y+$`, `Y`),
		Backref(`(.)[aeiou]\1`, `$1#$1`),
		Backref(`(.)[aeiou]\1`, `$1#$1`),
		Replace(`[aeiou]+`, ``),
		Replace(`d`, `t`),
		Replace(`th`, `t`),
		Replace(`nh`, `n`),
		Replace(`tyn`, `tn`),
		Replace(`rmb`, `mb`),
		Replace(`p`, `b`),
		Replace(`^gn`, `ng`),
		Replace(`k`, `g`),
		// "rrr" becomes "rr": pairs collapse, runs do not.
		Backref(`(.)\1`, `$1`),
	}
}
