// Package store writes tables to SQLite files.
package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/KaramelBytes/custlens-cli/internal/table"
)

// DefaultTable is the table name used for customer exports.
const DefaultTable = "customers"

// ExportSQLite writes t into a fresh SQLite database at path, replacing any
// existing file. Every column is stored as TEXT in header order.
func ExportSQLite(ctx context.Context, path, name string, t *table.Table) error {
	if name == "" {
		name = DefaultTable
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove old database: %w", err)
	}
	db, err := sqlx.ConnectContext(ctx, "sqlite", path)
	if err != nil {
		return fmt.Errorf("open sqlite: %w", err)
	}
	defer db.Close()

	header := t.Header()
	defs := make([]string, len(header))
	cols := make([]string, len(header))
	for i, h := range header {
		cols[i] = quoteIdent(h)
		defs[i] = cols[i] + " TEXT"
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `CREATE TABLE `+quoteIdent(name)+` (`+strings.Join(defs, ", ")+`)`); err != nil {
		return fmt.Errorf("create table: %w", err)
	}
	ph := strings.TrimRight(strings.Repeat("?,", len(header)), ",")
	stmt, err := tx.PreparexContext(ctx, `INSERT INTO `+quoteIdent(name)+` (`+strings.Join(cols, ", ")+`) VALUES (`+ph+`)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for i := 0; i < t.Len(); i++ {
		vals := t.Row(i).Values()
		args := make([]any, len(vals))
		for j, v := range vals {
			args[j] = v
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return fmt.Errorf("insert row %d: %w", i+1, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// ImportSQLite reads every row of the named table back into a Table.
func ImportSQLite(ctx context.Context, path, name string) (*table.Table, error) {
	if name == "" {
		name = DefaultTable
	}
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &table.MissingSourceError{Path: path, Err: err}
		}
		return nil, fmt.Errorf("stat database: %w", err)
	}
	db, err := sqlx.ConnectContext(ctx, "sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	defer db.Close()

	rows, err := db.QueryxContext(ctx, `SELECT * FROM `+quoteIdent(name)+` ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", name, err)
	}
	defer rows.Close()

	header, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("columns: %w", err)
	}
	var out [][]string
	for rows.Next() {
		vals, err := rows.SliceScan()
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		rec := make([]string, len(vals))
		for i, v := range vals {
			switch x := v.(type) {
			case nil:
			case []byte:
				rec[i] = string(x)
			default:
				rec[i] = fmt.Sprint(x)
			}
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}
	return table.New(header, out)
}

func quoteIdent(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
