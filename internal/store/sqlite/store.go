package sqlite

import (
	"context"
	"fmt"
	"strings"

	"github.com/agentstation/langmap/pkg/ledger"
)

// UpsertAlias implements ledger.Store.
func (s *Store) UpsertAlias(ctx context.Context, r ledger.AliasRecord) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO aliases (code, kind, source, name) VALUES (?, ?, ?, ?)
		ON CONFLICT (code, kind, source, name) DO NOTHING`,
		r.Code, r.Kind, r.Source, r.Name)
	if err != nil {
		return fmt.Errorf("insert alias: %w", err)
	}
	return nil
}

// UpsertClassification implements ledger.Store.
func (s *Store) UpsertClassification(ctx context.Context, r ledger.ClassificationRecord) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO classifications (code, source, level, name) VALUES (?, ?, ?, ?)
		ON CONFLICT (code, source, level) DO UPDATE SET name = excluded.name`,
		r.Code, r.Source, r.Level, r.Name)
	if err != nil {
		return fmt.Errorf("upsert classification: %w", err)
	}
	return nil
}

// UpsertTranslation implements ledger.Store.
func (s *Store) UpsertTranslation(ctx context.Context, r ledger.TranslationRecord) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO translations (code, source, status, year) VALUES (?, ?, ?, ?)
		ON CONFLICT (code, source) DO UPDATE SET status = excluded.status, year = excluded.year`,
		r.Code, r.Source, int(r.Status), r.Year)
	if err != nil {
		return fmt.Errorf("upsert translation: %w", err)
	}
	return nil
}

// UpsertEdge implements ledger.Store.
func (s *Store) UpsertEdge(ctx context.Context, e ledger.Edge) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO edges (subject, verb, object, source) VALUES (?, ?, ?, ?)
		ON CONFLICT (subject, verb, object, source) DO NOTHING`,
		e.Subject, e.Verb, e.Object, e.Source)
	if err != nil {
		return fmt.Errorf("insert edge: %w", err)
	}
	return nil
}

// where accumulates AND-ed equality conditions.
type where struct {
	clauses []string
	args    []any
}

func (w *where) eq(column string, value string) {
	if value == "" {
		return
	}
	w.clauses = append(w.clauses, column+" = ?")
	w.args = append(w.args, value)
}

func (w *where) String() string {
	if len(w.clauses) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.clauses, " AND ")
}

// Aliases implements ledger.Store.
func (s *Store) Aliases(ctx context.Context, f ledger.AliasFilter) ([]ledger.AliasRecord, error) {
	var w where
	w.eq("code", string(f.Code))
	w.eq("kind", string(f.Kind))
	w.eq("source", string(f.Source))
	w.eq("name", f.Name)

	rows, err := s.db.QueryContext(ctx,
		"SELECT code, kind, source, name FROM aliases"+w.String()+" ORDER BY id", w.args...)
	if err != nil {
		return nil, fmt.Errorf("query aliases: %w", err)
	}
	defer rows.Close()

	out := make([]ledger.AliasRecord, 0)
	for rows.Next() {
		var r ledger.AliasRecord
		if err := rows.Scan(&r.Code, &r.Kind, &r.Source, &r.Name); err != nil {
			return nil, fmt.Errorf("scan alias: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Classifications implements ledger.Store.
func (s *Store) Classifications(ctx context.Context, code ledger.Code) ([]ledger.ClassificationRecord, error) {
	var w where
	w.eq("code", string(code))

	rows, err := s.db.QueryContext(ctx,
		"SELECT code, source, level, name FROM classifications"+w.String()+" ORDER BY code, source, level", w.args...)
	if err != nil {
		return nil, fmt.Errorf("query classifications: %w", err)
	}
	defer rows.Close()

	out := make([]ledger.ClassificationRecord, 0)
	for rows.Next() {
		var r ledger.ClassificationRecord
		if err := rows.Scan(&r.Code, &r.Source, &r.Level, &r.Name); err != nil {
			return nil, fmt.Errorf("scan classification: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Translations implements ledger.Store.
func (s *Store) Translations(ctx context.Context, code ledger.Code) ([]ledger.TranslationRecord, error) {
	var w where
	w.eq("code", string(code))

	rows, err := s.db.QueryContext(ctx,
		"SELECT code, source, status, year FROM translations"+w.String()+" ORDER BY code, source", w.args...)
	if err != nil {
		return nil, fmt.Errorf("query translations: %w", err)
	}
	defer rows.Close()

	out := make([]ledger.TranslationRecord, 0)
	for rows.Next() {
		var r ledger.TranslationRecord
		var status int
		if err := rows.Scan(&r.Code, &r.Source, &status, &r.Year); err != nil {
			return nil, fmt.Errorf("scan translation: %w", err)
		}
		r.Status = ledger.TranslationState(status)
		out = append(out, r)
	}
	return out, rows.Err()
}

// Edges implements ledger.Store.
func (s *Store) Edges(ctx context.Context, f ledger.EdgeFilter) ([]ledger.Edge, error) {
	var w where
	w.eq("subject", string(f.Subject))
	w.eq("verb", string(f.Verb))
	w.eq("source", string(f.Source))

	rows, err := s.db.QueryContext(ctx,
		"SELECT subject, verb, object, source FROM edges"+w.String()+" ORDER BY id", w.args...)
	if err != nil {
		return nil, fmt.Errorf("query edges: %w", err)
	}
	defer rows.Close()

	out := make([]ledger.Edge, 0)
	for rows.Next() {
		var e ledger.Edge
		if err := rows.Scan(&e.Subject, &e.Verb, &e.Object, &e.Source); err != nil {
			return nil, fmt.Errorf("scan edge: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// HasEdge implements ledger.Store.
func (s *Store) HasEdge(ctx context.Context, e ledger.Edge) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM edges WHERE subject = ? AND verb = ? AND object = ? AND source = ?)`,
		e.Subject, e.Verb, e.Object, e.Source).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("query edge: %w", err)
	}
	return exists, nil
}
