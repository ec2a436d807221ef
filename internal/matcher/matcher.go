// Package matcher matches language codes and names against glob, regex or
// plain substring patterns.
package matcher

import (
	"regexp"
	"strings"

	"github.com/agentstation/langmap/pkg/errors"
)

// PatternType represents the type of pattern matching to use.
type PatternType int

const (
	// Substring matches anywhere in the input.
	Substring PatternType = iota
	// Glob uses shell-style glob patterns (*, ?, []) over the whole input.
	Glob
	// Regex uses regular expressions.
	Regex
	// Auto detects the pattern type from its metacharacters.
	Auto
)

// String returns a string representation of the PatternType.
func (pt PatternType) String() string {
	switch pt {
	case Substring:
		return "substring"
	case Glob:
		return "glob"
	case Regex:
		return "regex"
	case Auto:
		return "auto"
	default:
		return "unknown"
	}
}

// Matcher reports whether inputs match one compiled pattern. A Matcher is
// safe for concurrent use.
type Matcher interface {
	// Match checks if the input matches the pattern
	Match(input string) bool
	// MatchAny reports whether any of the inputs match.
	MatchAny(inputs ...string) bool
	// Pattern returns the original pattern string.
	Pattern() string
	// Type returns the pattern type in use, never Auto.
	Type() PatternType
}

type matcher struct {
	pattern     string
	patternType PatternType
	compiled    *regexp.Regexp
}

// Option configures the matcher behavior.
type Option func(*options)

type options struct {
	caseInsensitive bool
}

// CaseInsensitive folds case when matching.
func CaseInsensitive() Option {
	return func(o *options) { o.caseInsensitive = true }
}

// New compiles pattern as patternType. An invalid pattern returns an error
// matching errors.ErrInvalidInput.
func New(patternType PatternType, pattern string, opts ...Option) (Matcher, error) {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	if patternType == Auto {
		patternType = detectPatternType(pattern)
	}

	var expr string
	switch patternType {
	case Substring:
		expr = regexp.QuoteMeta(pattern)
	case Glob:
		expr = globToRegex(pattern)
	case Regex:
		expr = pattern
	default:
		return nil, errors.NewValidationError("pattern type", patternType, "is not supported")
	}
	if o.caseInsensitive && !strings.HasPrefix(expr, "(?i)") {
		expr = "(?i)" + expr
	}

	compiled, err := regexp.Compile(expr)
	if err != nil {
		return nil, errors.NewValidationError("pattern", pattern, "invalid "+patternType.String()+": "+err.Error())
	}
	return &matcher{pattern: pattern, patternType: patternType, compiled: compiled}, nil
}

// MustNew creates a new Matcher and panics if there's an error.
func MustNew(patternType PatternType, pattern string, opts ...Option) Matcher {
	m, err := New(patternType, pattern, opts...)
	if err != nil {
		panic(err)
	}
	return m
}

func (m *matcher) Match(input string) bool {
	return m.compiled.MatchString(input)
}

func (m *matcher) MatchAny(inputs ...string) bool {
	for _, input := range inputs {
		if m.Match(input) {
			return true
		}
	}
	return false
}

func (m *matcher) Pattern() string {
	return m.pattern
}

func (m *matcher) Type() PatternType {
	return m.patternType
}

var regexIndicators = []string{
	"^", "$", `\d`, `\w`, `\s`, `\b`,
	"(?", "{", "}", "+", "|", "(", ")", ".*",
}

// detectPatternType picks Regex when the pattern uses a regex-only
// metacharacter, Glob when it uses a glob one, and Substring otherwise.
func detectPatternType(pattern string) PatternType {
	for _, indicator := range regexIndicators {
		if strings.Contains(pattern, indicator) {
			return Regex
		}
	}
	if strings.ContainsAny(pattern, "*?[") {
		return Glob
	}
	return Substring
}

// globToRegex converts a glob pattern to an anchored regex.
func globToRegex(glob string) string {
	var regex strings.Builder
	regex.WriteString("^")

	for i := 0; i < len(glob); i++ {
		switch glob[i] {
		case '*':
			regex.WriteString(".*")
		case '?':
			regex.WriteString(".")
		case '[':
			end := strings.IndexByte(glob[i+1:], ']')
			if end < 0 {
				regex.WriteString(`\[`)
				continue
			}
			class := glob[i+1 : i+1+end]
			if strings.HasPrefix(class, "!") {
				class = "^" + class[1:]
			}
			regex.WriteString("[" + class + "]")
			i += end + 1
		case '\\':
			if i+1 < len(glob) {
				i++
				regex.WriteString(regexp.QuoteMeta(string(glob[i])))
			}
		default:
			regex.WriteString(regexp.QuoteMeta(string(glob[i])))
		}
	}

	regex.WriteString("$")
	return regex.String()
}
