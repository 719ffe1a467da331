// Package store handles SQLite persistence of the conversion history.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/verte-zerg/dahdit/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// timeLayout is fixed width so stored timestamps sort as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// Store wraps SQLite access for conversion records.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS conversions (
			id INTEGER PRIMARY KEY,
			created_at TEXT NOT NULL,
			op TEXT NOT NULL,
			format TEXT NOT NULL,
			target TEXT NOT NULL DEFAULT '',
			mode TEXT NOT NULL DEFAULT '',
			source TEXT NOT NULL DEFAULT '',
			input TEXT NOT NULL,
			output TEXT NOT NULL,
			tokens INTEGER NOT NULL,
			repaired INTEGER NOT NULL,
			dropped INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_conversions_created_at ON conversions(created_at);`,
		`CREATE INDEX IF NOT EXISTS idx_conversions_op ON conversions(op);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// InsertConversion stores one conversion record and returns its id.
func (s *Store) InsertConversion(ctx context.Context, c model.Conversion) (int64, error) {
	createdAt := c.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO conversions (created_at, op, format, target, mode, source, input, output, tokens, repaired, dropped)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		createdAt.UTC().Format(timeLayout),
		c.Op,
		c.Format,
		c.Target,
		c.Mode,
		c.Source,
		c.Input,
		c.Output,
		c.Tokens,
		c.Repaired,
		c.Dropped,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func filterClauses(filter model.HistoryFilter) (string, []any) {
	clauses := []string{"1=1"}
	args := []any{}
	if filter.Op != "" {
		clauses = append(clauses, "op = ?")
		args = append(args, filter.Op)
	}
	if filter.Since != nil {
		clauses = append(clauses, "created_at >= ?")
		args = append(args, filter.Since.UTC().Format(timeLayout))
	}
	return strings.Join(clauses, " AND "), args
}

// ListConversions returns conversions oldest first. Last keeps only the most
// recent N records.
func (s *Store) ListConversions(ctx context.Context, filter model.HistoryFilter) ([]model.Conversion, error) {
	where, args := filterClauses(filter)
	query := fmt.Sprintf(`SELECT id, created_at, op, format, target, mode, source, input, output, tokens, repaired, dropped
		FROM conversions
		WHERE %s
		ORDER BY created_at DESC, id DESC`, where)
	if filter.Last > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Last)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var result []model.Conversion
	for rows.Next() {
		var c model.Conversion
		var createdAt string
		if err := rows.Scan(&c.ID, &createdAt, &c.Op, &c.Format, &c.Target, &c.Mode, &c.Source, &c.Input, &c.Output, &c.Tokens, &c.Repaired, &c.Dropped); err != nil {
			return nil, err
		}
		parsed, err := time.Parse(timeLayout, createdAt)
		if err != nil {
			return nil, err
		}
		c.CreatedAt = parsed
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i, j := 0, len(result)-1; i < j; i, j = i+1, j-1 {
		result[i], result[j] = result[j], result[i]
	}
	return result, nil
}

// ListOpAggregates groups conversion totals by operation over the records
// ListConversions would return for the same filter.
func (s *Store) ListOpAggregates(ctx context.Context, filter model.HistoryFilter) ([]model.OpAggregate, error) {
	where, args := filterClauses(filter)
	limit := -1
	if filter.Last > 0 {
		limit = filter.Last
	}
	args = append(args, limit)
	query := fmt.Sprintf(`WITH selected AS (
		SELECT op, tokens, repaired, dropped, input, output FROM conversions
		WHERE %s
		ORDER BY created_at DESC, id DESC
		LIMIT ?
	)
	SELECT op, COUNT(*), SUM(tokens), SUM(repaired), SUM(dropped),
		SUM(LENGTH(input)), SUM(LENGTH(output))
	FROM selected
	GROUP BY op
	ORDER BY op`, where)
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var result []model.OpAggregate
	for rows.Next() {
		var agg model.OpAggregate
		if err := rows.Scan(&agg.Op, &agg.Count, &agg.Tokens, &agg.Repaired, &agg.Dropped, &agg.InChars, &agg.OutChars); err != nil {
			return nil, err
		}
		result = append(result, agg)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// DeleteBefore removes conversions older than the given time and returns the
// number of deleted rows.
func (s *Store) DeleteBefore(ctx context.Context, before time.Time) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	res, err := tx.ExecContext(ctx, `DELETE FROM conversions WHERE created_at < ?`, before.UTC().Format(timeLayout))
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	if err = tx.Commit(); err != nil {
		return 0, err
	}
	return n, nil
}
