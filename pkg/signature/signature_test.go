package signature_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/langmap/pkg/signature"
)

func TestKnownVariantGroups(t *testing.T) {
	tests := []struct {
		name      string
		signature string
		variants  []string
	}{
		{
			name:      "dwm",
			signature: "mtbrA",
			variants: []string{"Mutpura", "Mudbara", "Mudbera", "Moodburra", "Mudbra",
				"Mudburra", "Madbara", "Mudbura", "Mootburra"},
		},
		{
			name:      "mfr",
			signature: "mrtyl",
			variants:  []string{"Marithiel", "Marithiyel", "Maridhiel", "Maridhiyel", "Marrithiyel"},
		},
		{
			name:      "adt",
			signature: "tnymtnA",
			variants: []string{"Adynyamathanha", "Ad'n'amadana", "Adnyamathanha",
				"Adnymathanha", "Atynyamatana", "Atynyamathanha"},
		},
		{
			name:      "adt with typographic apostrophes",
			signature: "tnymtnA",
			variants:  []string{"Ad’n’amadana", "Adʼnʼamadana"},
		},
		{
			name:      "aly terminal a",
			signature: "lywrA",
			variants:  []string{"Alyawarra", "Iliaura", "Aljawara"},
		},
		{
			name:      "aly no terminal vowel",
			signature: "lywr",
			variants:  []string{"Alyawarr", "Alywarr"},
		},
		{
			name:      "nid",
			signature: "ngntjI",
			variants:  []string{"Ngandi", "Ngandji"},
		},
		{
			name:      "drl",
			signature: "bgntjI",
			variants:  []string{"Paakantyi", "Paakintyi", "Bagandji", "Baagandji", "Paakanti"},
		},
		{
			name:      "nck",
			signature: "ngrA",
			variants:  []string{"Na-kara", "Nagara", "Nakara", "Nakarra", "Nakkara"},
		},
		{
			name:      "nrx",
			signature: "ngmbr",
			variants:  []string{"Ngumbur", "Ngormbur", "Ngurmbur", "Gnormbur"},
		},
		{
			name:      "gbd",
			signature: "grtyrA",
			variants:  []string{"Guradjara"},
		},
		{
			name:      "yowera",
			signature: "ywrA",
			variants:  []string{"Yowera"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, name := range tt.variants {
				assert.Equal(t, tt.signature, signature.Generate(name),
					"name %q has the wrong signature", name)
			}
		})
	}
}

func TestCaseInsensitive(t *testing.T) {
	names := []string{"Mudburra", "Ad'n'amadana", "Na-kara", "Paakantyi", "Iliaura", "x", ""}
	for _, name := range names {
		assert.Equal(t, signature.Generate(name), signature.Generate(strings.ToUpper(name)), name)
		assert.Equal(t, signature.Generate(name), signature.Generate(strings.ToLower(name)), name)
	}
}

func TestDeterministic(t *testing.T) {
	g := signature.New()
	first := g.Generate("Marrithiyel")
	for range 10 {
		assert.Equal(t, first, g.Generate("Marrithiyel"))
	}
	assert.Equal(t, first, signature.Generate("Marrithiyel"))
}

func TestCollisionsAreAllowed(t *testing.T) {
	// Unrelated names may share a signature.
	assert.Equal(t, signature.Generate("Nakara"), signature.Generate("Nagara"))
	assert.Equal(t, signature.Generate("Kata"), signature.Generate("Gada"))
}

func TestSyllableMarker(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		// Both syllables are marked only because the rule runs twice.
		{"nanan", "n#n#n"},
		{"dad", "t#t"},
		{"lolo", "l#lO"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, signature.Generate(tt.in))
		})
	}
}

func TestCollapseIsPairwise(t *testing.T) {
	// Three in a row collapse to two, four to two.
	assert.Equal(t, "rr", signature.Generate("rrr"))
	assert.Equal(t, "rr", signature.Generate("rrrr"))
}

func TestBackref(t *testing.T) {
	syllable := signature.Backref(`(.)[aeiou]\1`, `$1#$1`)
	assert.Equal(t, `(.)[aeiou]\1 -> $1#$1`, syllable.Name)
	assert.Equal(t, "n#nan", syllable.Apply("nanan"))
	assert.Equal(t, "n#n#n", syllable.Apply(syllable.Apply("nanan")))

	collapse := signature.Backref(`(.)\1`, `$1`)
	assert.Equal(t, "rr", collapse.Apply("rrr"))
	assert.Equal(t, "mtbr", collapse.Apply("mttbrr"))
}

func TestRulesArePatterns(t *testing.T) {
	for _, r := range signature.Rules() {
		assert.Contains(t, r.Name, " -> ")
	}
}

func TestTrace(t *testing.T) {
	steps := signature.Trace("Mudburra")
	require.Len(t, steps, len(signature.Rules())+1)
	assert.Equal(t, "normalize", steps[0].Rule)
	assert.Equal(t, "mudburra", steps[0].Result)
	assert.Equal(t, "mtbrA", steps[len(steps)-1].Result)
}

func TestCustomRules(t *testing.T) {
	g := signature.New(signature.Replace(`[aeiou]`, ``))
	assert.Equal(t, "mdbrr", g.Generate("Mudburra"))
}
