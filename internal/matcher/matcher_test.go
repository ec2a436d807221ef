package matcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/langmap/pkg/errors"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name        string
		pattern     string
		patternType PatternType
		wantType    PatternType
		wantErr     bool
	}{
		{name: "substring", pattern: "arr", patternType: Substring, wantType: Substring},
		{name: "glob", pattern: "ar?", patternType: Glob, wantType: Glob},
		{name: "regex", pattern: `^a\w+`, patternType: Regex, wantType: Regex},
		{name: "invalid regex", pattern: "[unclosed", patternType: Regex, wantErr: true},
		{name: "auto detects regex", pattern: "^mwp$", patternType: Auto, wantType: Regex},
		{name: "auto detects glob", pattern: "a*", patternType: Auto, wantType: Glob},
		{name: "auto defaults to substring", pattern: "Mudburra", patternType: Auto, wantType: Substring},
		{name: "unknown type", pattern: "x", patternType: PatternType(42), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := New(tt.patternType, tt.pattern)
			if tt.wantErr {
				assert.ErrorIs(t, err, errors.ErrInvalidInput)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantType, m.Type())
			assert.Equal(t, tt.pattern, m.Pattern())
		})
	}
}

func TestMatch(t *testing.T) {
	tests := []struct {
		name        string
		patternType PatternType
		pattern     string
		input       string
		caseless    bool
		want        bool
	}{
		{"substring inside", Substring, "rern", "Arrernte", false, true},
		{"substring is literal", Substring, "a.e", "are", false, false},
		{"substring case", Substring, "ARR", "Arrernte", false, false},
		{"substring caseless", Substring, "ARR", "Arrernte", true, true},
		{"glob anchored", Glob, "ar?", "are", false, true},
		{"glob anchored miss", Glob, "ar?", "aer", false, false},
		{"glob star", Glob, "Mud*", "Mudburra", false, true},
		{"glob class", Glob, "a[ae]r*", "aer", false, true},
		{"glob negated class", Glob, "a[!e]e", "are", false, true},
		{"glob escaped star", Glob, `a\*`, "a*", false, true},
		{"glob unclosed bracket", Glob, "a[", "a[", false, true},
		{"glob caseless", Glob, "mud*", "Mudburra", true, true},
		{"regex", Regex, `^(aer|are)$`, "are", false, true},
		{"regex miss", Regex, `^(aer|are)$`, "mwp", false, false},
		{"regex caseless", Regex, `^mud`, "Mudburra", true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var opts []Option
			if tt.caseless {
				opts = append(opts, CaseInsensitive())
			}
			m := MustNew(tt.patternType, tt.pattern, opts...)
			assert.Equal(t, tt.want, m.Match(tt.input))
		})
	}
}

func TestMatchAny(t *testing.T) {
	m := MustNew(Auto, "arr", CaseInsensitive())
	assert.True(t, m.MatchAny("aer", "Arrernte"))
	assert.False(t, m.MatchAny("mwp", "Mudburra"))
	assert.False(t, m.MatchAny())
}

func TestMustNewPanics(t *testing.T) {
	assert.Panics(t, func() { MustNew(Regex, "(") })
}

func TestPatternTypeString(t *testing.T) {
	assert.Equal(t, "substring", Substring.String())
	assert.Equal(t, "glob", Glob.String())
	assert.Equal(t, "regex", Regex.String())
	assert.Equal(t, "auto", Auto.String())
	assert.Equal(t, "unknown", PatternType(9).String())
}

func BenchmarkMatch(b *testing.B) {
	m := MustNew(Glob, "a[ae]r*", CaseInsensitive())
	for b.Loop() {
		m.Match("Arrernte")
	}
}
