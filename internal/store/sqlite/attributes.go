package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/agentstation/langmap/pkg/ledger"
	"github.com/agentstation/langmap/pkg/sources"
)

// Attribute column prefixes. The source tag follows the prefix.
const (
	prefixSpeakers    = "speakers_"
	prefixLatitude    = "lat_"
	prefixLongitude   = "lon_"
	prefixEnglishLow  = "english_low_"
	prefixEnglishHigh = "english_high_"

	columnCode         = "code"
	columnWritingState = "writing_state"
)

type column struct {
	name    string
	sqlType string
	value   any
}

// patchColumns flattens a patch into column assignments, sorted by name.
func patchColumns(patch ledger.Attributes) []column {
	var cols []column
	for src, n := range patch.Speakers {
		cols = append(cols, column{prefixSpeakers + string(src), "INTEGER", n})
	}
	for src, c := range patch.Coordinates {
		cols = append(cols,
			column{prefixLatitude + string(src), "REAL", c.Latitude},
			column{prefixLongitude + string(src), "REAL", c.Longitude})
	}
	for src, c := range patch.EnglishCompetency {
		cols = append(cols,
			column{prefixEnglishLow + string(src), "REAL", c.Pessimistic},
			column{prefixEnglishHigh + string(src), "REAL", c.Optimistic})
	}
	if patch.WritingState != "" {
		cols = append(cols, column{columnWritingState, "TEXT", string(patch.WritingState)})
	}
	slices.SortFunc(cols, func(a, b column) int { return strings.Compare(a.name, b.name) })
	return cols
}

// loadColumns reads the current attribute columns from the schema.
func (s *Store) loadColumns(ctx context.Context) error {
	rows, err := s.db.QueryContext(ctx, "SELECT name FROM pragma_table_info('attributes')")
	if err != nil {
		return fmt.Errorf("inspect attributes: %w", err)
	}
	defer rows.Close()

	s.mu.Lock()
	defer s.mu.Unlock()
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return fmt.Errorf("scan column: %w", err)
		}
		s.columns[name] = true
	}
	return rows.Err()
}

// ensureColumns adds the columns the patch needs that do not exist yet.
// Column names are built from validated source tags.
func (s *Store) ensureColumns(ctx context.Context, tx *sql.Tx, cols []column) ([]string, error) {
	s.mu.RLock()
	var missing []column
	for _, c := range cols {
		if !s.columns[c.name] {
			missing = append(missing, c)
		}
	}
	s.mu.RUnlock()

	added := make([]string, 0, len(missing))
	for _, c := range missing {
		stmt := fmt.Sprintf("ALTER TABLE attributes ADD COLUMN %q %s", c.name, c.sqlType)
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return nil, fmt.Errorf("add column %s: %w", c.name, err)
		}
		added = append(added, c.name)
	}
	return added, nil
}

// UpsertAttributes implements ledger.Store. Only the columns carried by
// the patch are written.
func (s *Store) UpsertAttributes(ctx context.Context, patch ledger.Attributes) error {
	cols := patchColumns(patch)
	if len(cols) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin attributes: %w", err)
	}
	added, err := s.ensureColumns(ctx, tx, cols)
	if err != nil {
		_ = tx.Rollback()
		return err
	}

	names := make([]string, 0, len(cols)+1)
	marks := make([]string, 0, len(cols)+1)
	sets := make([]string, 0, len(cols))
	args := make([]any, 0, len(cols)+1)

	names = append(names, columnCode)
	marks = append(marks, "?")
	args = append(args, string(patch.Code))
	for _, c := range cols {
		quoted := strconv.Quote(c.name)
		names = append(names, quoted)
		marks = append(marks, "?")
		sets = append(sets, fmt.Sprintf("%s = excluded.%s", quoted, quoted))
		args = append(args, c.value)
	}

	stmt := fmt.Sprintf("INSERT INTO attributes (%s) VALUES (%s) ON CONFLICT (code) DO UPDATE SET %s",
		strings.Join(names, ", "), strings.Join(marks, ", "), strings.Join(sets, ", "))
	if _, err := tx.ExecContext(ctx, stmt, args...); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("upsert attributes: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit attributes: %w", err)
	}

	if len(added) > 0 {
		s.mu.Lock()
		for _, name := range added {
			s.columns[name] = true
		}
		s.mu.Unlock()
		s.logger.Debug().Strs("columns", added).Msg("Added attribute columns")
	}
	return nil
}

// Attributes implements ledger.Store.
func (s *Store) Attributes(ctx context.Context, code ledger.Code) (ledger.Attributes, bool, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT * FROM attributes WHERE code = ?", string(code))
	if err != nil {
		return ledger.Attributes{}, false, fmt.Errorf("query attributes: %w", err)
	}
	defer rows.Close()

	all, err := scanAttributes(rows)
	if err != nil {
		return ledger.Attributes{}, false, err
	}
	if len(all) == 0 {
		return ledger.Attributes{}, false, nil
	}
	return all[0], true, nil
}

// AllAttributes implements ledger.Store.
func (s *Store) AllAttributes(ctx context.Context) ([]ledger.Attributes, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT * FROM attributes ORDER BY code")
	if err != nil {
		return nil, fmt.Errorf("query attributes: %w", err)
	}
	defer rows.Close()
	return scanAttributes(rows)
}

func scanAttributes(rows *sql.Rows) ([]ledger.Attributes, error) {
	names, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("attribute columns: %w", err)
	}

	out := make([]ledger.Attributes, 0)
	for rows.Next() {
		values := make([]any, len(names))
		ptrs := make([]any, len(names))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("scan attributes: %w", err)
		}
		out = append(out, decodeAttributes(names, values))
	}
	return out, rows.Err()
}

// decodeAttributes rebuilds an Attributes value from a sparse row. NULL
// columns are fields the code never received. A coordinate or competency
// needs both of its columns.
func decodeAttributes(names []string, values []any) ledger.Attributes {
	var a ledger.Attributes
	lat := map[sources.ID]float64{}
	lon := map[sources.ID]float64{}
	low := map[sources.ID]float64{}
	high := map[sources.ID]float64{}

	for i, name := range names {
		v := values[i]
		if v == nil {
			continue
		}
		switch {
		case name == columnCode:
			a.Code = ledger.Code(asString(v))
		case name == columnWritingState:
			a.WritingState = ledger.WritingState(asString(v))
		case strings.HasPrefix(name, prefixSpeakers):
			if a.Speakers == nil {
				a.Speakers = make(map[sources.ID]int)
			}
			a.Speakers[sources.ID(strings.TrimPrefix(name, prefixSpeakers))] = int(asFloat(v))
		case strings.HasPrefix(name, prefixLatitude):
			lat[sources.ID(strings.TrimPrefix(name, prefixLatitude))] = asFloat(v)
		case strings.HasPrefix(name, prefixLongitude):
			lon[sources.ID(strings.TrimPrefix(name, prefixLongitude))] = asFloat(v)
		case strings.HasPrefix(name, prefixEnglishLow):
			low[sources.ID(strings.TrimPrefix(name, prefixEnglishLow))] = asFloat(v)
		case strings.HasPrefix(name, prefixEnglishHigh):
			high[sources.ID(strings.TrimPrefix(name, prefixEnglishHigh))] = asFloat(v)
		}
	}

	for src, la := range lat {
		if lo, ok := lon[src]; ok {
			if a.Coordinates == nil {
				a.Coordinates = make(map[sources.ID]ledger.Coordinate)
			}
			a.Coordinates[src] = ledger.Coordinate{Latitude: la, Longitude: lo}
		}
	}
	for src, p := range low {
		if o, ok := high[src]; ok {
			if a.EnglishCompetency == nil {
				a.EnglishCompetency = make(map[sources.ID]ledger.Competency)
			}
			a.EnglishCompetency[src] = ledger.Competency{Pessimistic: p, Optimistic: o}
		}
	}
	return a
}

func asString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case []byte:
		return string(t)
	}
	return fmt.Sprint(v)
}

func asFloat(v any) float64 {
	switch t := v.(type) {
	case int64:
		return float64(t)
	case float64:
		return t
	case []byte:
		f, _ := strconv.ParseFloat(string(t), 64)
		return f
	case string:
		f, _ := strconv.ParseFloat(t, 64)
		return f
	}
	return 0
}
