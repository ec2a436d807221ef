package loader

import (
	"context"
	"encoding/csv"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/agentstation/langmap/pkg/constants"
	"github.com/agentstation/langmap/pkg/errors"
	"github.com/agentstation/langmap/pkg/ledger"
)

// lesserDuplicates are census languages that share a code with a far larger
// census language. They are dropped so the larger one maps to the code
// alone.
var lesserDuplicates = []string{
	"Central Anmatyerr",
	"Eastern Anmatyerr",
	"Antekerrepenh",
	"Anmatyerr, nfd",
	"Jawi",
	"Gambera",
}

// broadCategories are census groupings too wide to attribute to codes.
var broadCategories = []string{
	"Aboriginal English, so described",
	"Arnhem Land and Daly River Region Languages, nec",
	"Arnhem Land and Daly River Region Languages, nfd",
	"Cape York Peninsula Languages, nec",
	"Cape York Peninsula Languages, nfd",
	"Australian Indigenous Languages, nfd",
	"Kimberley Area Languages, nec",
	"Kimberley Area Languages, nfd",
	"Other Australian Indigenous Languages, nec",
	"Other Australian Indigenous Languages, nfd",
	"Torres Strait Island Languages, nfd",
	"Yolngu Matha, nfd",
}

// CensusRow is one census language with its speaker count and, when
// present, the share of its speakers who speak English well.
type CensusRow struct {
	Language   string
	Count      int
	Competency *ledger.Competency
}

// ReadCensus reads a census CSV with the header
// language,count[,english_pessimistic,english_optimistic].
func ReadCensus(path string) ([]CensusRow, []error, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, errors.WrapIO("open", path, err)
	}
	defer f.Close()
	return readCensus(f, path)
}

func readCensus(r io.Reader, path string) ([]CensusRow, []error, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	if _, err := cr.Read(); err != nil {
		if err == io.EOF {
			return nil, nil, nil
		}
		return nil, nil, errors.WrapParse("csv", path, err)
	}

	var (
		rows []CensusRow
		bad  []error
	)
	for {
		fields, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return rows, bad, errors.WrapParse("csv", path, err)
		}
		row, err := parseCensusRow(fields)
		if err != nil {
			line, _ := cr.FieldPos(0)
			bad = append(bad, &errors.ParseError{Format: "csv", File: path, Line: line, Message: err.Error(), Err: err})
			continue
		}
		rows = append(rows, row)
	}
	return rows, bad, nil
}

func parseCensusRow(fields []string) (CensusRow, error) {
	if len(fields) != 2 && len(fields) != 4 {
		return CensusRow{}, errors.NewMalformedRecordError("census", "", nil, "expected 2 or 4 fields")
	}
	row := CensusRow{Language: strings.TrimSpace(fields[0])}
	if row.Language == "" {
		return CensusRow{}, errors.NewMalformedRecordError("census", "language", "", "cannot be empty")
	}
	count, err := strconv.Atoi(strings.TrimSpace(fields[1]))
	if err != nil || count < 0 {
		return CensusRow{}, errors.NewMalformedRecordError("census", "count", fields[1], "must be a non-negative integer")
	}
	row.Count = count

	if len(fields) == 4 && (fields[2] != "" || fields[3] != "") {
		low, err := strconv.ParseFloat(strings.TrimSpace(fields[2]), 64)
		if err != nil {
			return CensusRow{}, errors.NewMalformedRecordError("census", "english_pessimistic", fields[2], "must be a number")
		}
		high, err := strconv.ParseFloat(strings.TrimSpace(fields[3]), 64)
		if err != nil {
			return CensusRow{}, errors.NewMalformedRecordError("census", "english_optimistic", fields[3], "must be a number")
		}
		row.Competency = &ledger.Competency{Pessimistic: low, Optimistic: high}
	}
	return row, nil
}

// NameLookup finds the codes holding an alias spelled exactly like name.
type NameLookup interface {
	CodesByName(ctx context.Context, name string) ([]ledger.Code, error)
}

// CensusAttribution maps census languages to codes and back.
type CensusAttribution struct {
	codesByLanguage map[string][]ledger.Code
	languagesByCode map[ledger.Code][]string
	rows            map[string]CensusRow
}

// AttributeCensus matches each census language to codes by exact name:
// the part before the first comma first ("Arrernte, nfd" tries
// "Arrernte"), then the full name. Languages at or below the small cell
// threshold are not mapped.
func AttributeCensus(ctx context.Context, rows []CensusRow, lookup NameLookup) (*CensusAttribution, error) {
	a := &CensusAttribution{
		codesByLanguage: make(map[string][]ledger.Code),
		languagesByCode: make(map[ledger.Code][]string),
		rows:            make(map[string]CensusRow),
	}

	for _, row := range rows {
		if slices.Contains(lesserDuplicates, row.Language) || slices.Contains(broadCategories, row.Language) {
			continue
		}
		a.rows[row.Language] = row

		short, _, _ := strings.Cut(row.Language, ",")
		codes, err := lookup.CodesByName(ctx, short)
		if err != nil {
			return nil, err
		}
		if len(codes) == 0 {
			if codes, err = lookup.CodesByName(ctx, row.Language); err != nil {
				return nil, err
			}
		}

		if row.Count <= constants.CensusSmallCellThreshold {
			continue
		}
		a.codesByLanguage[row.Language] = codes
		for _, code := range codes {
			a.languagesByCode[code] = append(a.languagesByCode[code], row.Language)
		}
	}
	return a, nil
}

// Languages returns the census languages attributed to code.
func (a *CensusAttribution) Languages(code ledger.Code) []string {
	return slices.Clone(a.languagesByCode[code])
}

// SpeakerCount returns the census speaker count for code: the sum over its
// census languages, SpeakerCountAmbiguous when any of them maps to more
// than one code, and SpeakerCountUnknown when it has none.
func (a *CensusAttribution) SpeakerCount(code ledger.Code) int {
	langs := a.languagesByCode[code]
	if len(langs) == 0 {
		return constants.SpeakerCountUnknown
	}
	total := 0
	for _, lang := range langs {
		if len(a.codesByLanguage[lang]) > 1 {
			return constants.SpeakerCountAmbiguous
		}
		total += a.rows[lang].Count
	}
	return total
}

// EnglishCompetency returns the English competency of code's census
// language, when code has exactly one that no other code shares.
func (a *CensusAttribution) EnglishCompetency(code ledger.Code) (ledger.Competency, bool) {
	langs := a.languagesByCode[code]
	if len(langs) != 1 || len(a.codesByLanguage[langs[0]]) != 1 {
		return ledger.Competency{}, false
	}
	c := a.rows[langs[0]].Competency
	if c == nil {
		return ledger.Competency{}, false
	}
	return *c, true
}
