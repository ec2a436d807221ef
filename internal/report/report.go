// Package report builds the diagnostic reports used to tune the signature
// rules and the name overrides: how names group under signatures, and which
// codes share a name outright.
package report

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/rs/zerolog"

	"github.com/agentstation/langmap/pkg/ledger"
	"github.com/agentstation/langmap/pkg/signature"
)

// CodeNames is a code and the names through which it reaches a signature.
type CodeNames struct {
	Code  ledger.Code `json:"code" yaml:"code"`
	Names []string    `json:"names" yaml:"names"`
}

// SignatureGroup is every code whose names produce one signature.
type SignatureGroup struct {
	Signature string      `json:"signature" yaml:"signature"`
	Codes     []CodeNames `json:"codes" yaml:"codes"`
}

// SignatureNames is a signature and the names of one code producing it.
type SignatureNames struct {
	Signature string   `json:"signature" yaml:"signature"`
	Names     []string `json:"names" yaml:"names"`
}

// CodeSignatures is every signature a code's names produce.
type CodeSignatures struct {
	Code       ledger.Code      `json:"code" yaml:"code"`
	Signatures []SignatureNames `json:"signatures" yaml:"signatures"`
}

// Bucket counts how many items have a given size.
type Bucket struct {
	Size  int `json:"size" yaml:"size"`
	Count int `json:"count" yaml:"count"`
}

// Histogram is a list of buckets sorted by size.
type Histogram []Bucket

// Signatures is the signature diagnostic report.
type Signatures struct {
	Groups            []SignatureGroup `json:"groups" yaml:"groups"`
	Codes             []CodeSignatures `json:"codes" yaml:"codes"`
	SignaturesPerCode Histogram        `json:"signatures_per_code" yaml:"signatures_per_code"`
	CodesPerSignature Histogram        `json:"codes_per_signature" yaml:"codes_per_signature"`
}

// Collisions returns the groups that hold more than one code.
func (s *Signatures) Collisions() []SignatureGroup {
	var out []SignatureGroup
	for _, g := range s.Groups {
		if len(g.Codes) > 1 {
			out = append(out, g)
		}
	}
	return out
}

// BuildSignatures groups pairs by the signature of their names. A nil
// generator uses the default rules.
func BuildSignatures(pairs []ledger.NamePair, g *signature.Generator) *Signatures {
	if g == nil {
		g = signature.New()
	}

	// signature -> code -> names
	bySig := make(map[string]map[ledger.Code][]string)
	for _, p := range pairs {
		sig := g.Generate(p.Name)
		if bySig[sig] == nil {
			bySig[sig] = make(map[ledger.Code][]string)
		}
		bySig[sig][p.Code] = append(bySig[sig][p.Code], p.Name)
	}

	byCode := make(map[ledger.Code][]SignatureNames)
	codesPerSig := make(map[int]int)
	r := &Signatures{}
	for _, sig := range slices.Sorted(maps.Keys(bySig)) {
		group := SignatureGroup{Signature: sig}
		for _, code := range slices.Sorted(maps.Keys(bySig[sig])) {
			names := slices.Clone(bySig[sig][code])
			slices.Sort(names)
			group.Codes = append(group.Codes, CodeNames{Code: code, Names: names})
			byCode[code] = append(byCode[code], SignatureNames{Signature: sig, Names: names})
		}
		codesPerSig[len(group.Codes)]++
		r.Groups = append(r.Groups, group)
	}

	sigsPerCode := make(map[int]int)
	for _, code := range slices.Sorted(maps.Keys(byCode)) {
		r.Codes = append(r.Codes, CodeSignatures{Code: code, Signatures: byCode[code]})
		sigsPerCode[len(byCode[code])]++
	}
	r.SignaturesPerCode = histogram(sigsPerCode)
	r.CodesPerSignature = histogram(codesPerSig)
	return r
}

// String renders the histogram as "size:count" pairs.
func (h Histogram) String() string {
	parts := make([]string, len(h))
	for i, b := range h {
		parts[i] = fmt.Sprintf("%d:%d", b.Size, b.Count)
	}
	return strings.Join(parts, " ")
}

func histogram(counts map[int]int) Histogram {
	h := make(Histogram, 0, len(counts))
	for _, size := range slices.Sorted(maps.Keys(counts)) {
		h = append(h, Bucket{Size: size, Count: counts[size]})
	}
	return h
}

// LoadSignatures builds the signature report over every name in l.
func LoadSignatures(ctx context.Context, l *ledger.Ledger, g *signature.Generator) (*Signatures, error) {
	pairs, err := l.NamePairs(ctx)
	if err != nil {
		return nil, err
	}
	return BuildSignatures(pairs, g), nil
}

// Log writes the report at info level, one event per group and per code,
// then the two histograms.
func (s *Signatures) Log(logger *zerolog.Logger) {
	for _, g := range s.Groups {
		logger.Info().
			Str("signature", g.Signature).
			Int("codes", len(g.Codes)).
			Str("names", formatCodeNames(g.Codes)).
			Msg("Signature")
	}
	for _, c := range s.Codes {
		logger.Info().
			Str("code", c.Code.String()).
			Int("signatures", len(c.Signatures)).
			Msg("Code signatures")
	}
	logger.Info().Str("histogram", s.SignaturesPerCode.String()).Msg("Signatures per code")
	logger.Info().Str("histogram", s.CodesPerSignature.String()).Msg("Codes per signature")
}

func formatCodeNames(cs []CodeNames) string {
	parts := make([]string, len(cs))
	for i, c := range cs {
		parts[i] = c.Code.String() + ": " + strings.Join(c.Names, ", ")
	}
	return strings.Join(parts, "; ")
}
