package loader

import (
	"bufio"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/agentstation/langmap/pkg/errors"
	"github.com/agentstation/langmap/pkg/ledger"
	"github.com/agentstation/langmap/pkg/sources"
)

// Retirement reasons in the SIL retired code table.
const (
	reasonChange      = "C"
	reasonDuplicate   = "D"
	reasonNonExistent = "N"
	reasonSplit       = "S"
	reasonMerge       = "M"
)

// retirementFields is the column count of the table:
// code, name, reason, change_to, instructions, effective date.
const retirementFields = 6

var splitTarget = regexp.MustCompile(`\[([a-z]{3})\]`)

// Retirement is one parsed row: a retired code and the edges it implies.
type Retirement struct {
	Code   ledger.Code
	Reason string
	Edges  []ledger.Edge
}

// ParseRetirement converts one table row into retirement edges. Split rows
// produce one edge per bracketed code in the instructions. An unknown reason
// returns no edges and an error wrapping errors.ErrMalformedRecord.
func ParseRetirement(fields []string) (Retirement, error) {
	if len(fields) != retirementFields {
		return Retirement{}, errors.NewMalformedRecordError("retirement", "", nil, "expected 6 tab separated fields")
	}
	code := ledger.Code(fields[0])
	reason, changeTo, instructions := fields[2], ledger.Code(fields[3]), fields[4]
	r := Retirement{Code: code, Reason: reason}

	edge := func(verb ledger.Verb, object ledger.Code) ledger.Edge {
		return ledger.Edge{Subject: code, Verb: verb, Object: object, Source: sources.SILRetired}
	}

	switch reason {
	case reasonChange:
		r.Edges = []ledger.Edge{edge(ledger.RetiredChange, changeTo)}
	case reasonDuplicate:
		r.Edges = []ledger.Edge{edge(ledger.RetiredDuplicate, changeTo)}
	case reasonNonExistent:
		r.Edges = []ledger.Edge{edge(ledger.RetiredNonExistent, "")}
	case reasonMerge:
		r.Edges = []ledger.Edge{edge(ledger.RetiredMergedInto, changeTo)}
	case reasonSplit:
		for _, m := range splitTarget.FindAllStringSubmatch(instructions, -1) {
			r.Edges = append(r.Edges, edge(ledger.RetiredSplitInto, ledger.Code(m[1])))
		}
	default:
		return r, errors.NewMalformedRecordError("retirement", "reason", reason, "unknown retirement reason")
	}
	return r, nil
}

// ReadRetirements parses the whole table at path, skipping its header.
// Malformed rows are returned as errors alongside the parsed rows.
func ReadRetirements(path string) ([]Retirement, []error, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, errors.WrapIO("open", path, err)
	}
	defer f.Close()
	return readRetirements(f, path)
}

// readRetirements splits each line on tabs. Quotes carry no meaning in
// the table, so a remedy that starts with one stays on its own line.
func readRetirements(r io.Reader, path string) ([]Retirement, []error, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var (
		out  []Retirement
		bad  []error
		line int
	)
	for sc.Scan() {
		line++
		text := strings.TrimRight(sc.Text(), "\r\n")
		if line == 1 || text == "" {
			continue
		}
		parsed, err := ParseRetirement(strings.Split(text, "\t"))
		if err != nil {
			bad = append(bad, &errors.ParseError{Format: "tsv", File: path, Line: line, Message: err.Error(), Err: err})
			continue
		}
		out = append(out, parsed)
	}
	if err := sc.Err(); err != nil {
		return out, bad, errors.WrapParse("tsv", path, err)
	}
	return out, bad, nil
}
