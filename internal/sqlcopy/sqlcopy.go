// Package sqlcopy copies tabular JSON documents into database tables and
// query results into tabular JSON documents.
package sqlcopy

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/arnodel/jsontable"
	"github.com/arnodel/jsontable/cell"
)

type ImportOptions struct {
	Dialect Dialect

	// CreateTable creates the table before inserting.  Column types are
	// taken from the first row, columns with no value in it are TEXT.
	CreateTable bool
}

// Import inserts every remaining row of r into table and returns the number
// of rows inserted.  All the rows are inserted in a single transaction which
// is rolled back on any error.
func Import(ctx context.Context, db *sql.DB, table string, r *jsontable.Reader, opts ImportOptions) (int64, error) {
	headers := r.Headers()
	if len(headers) == 0 {
		return 0, nil
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	hasRow := r.Read()
	if err := r.Err(); err != nil {
		return 0, err
	}

	if opts.CreateTable {
		kinds := make([]cell.Kind, len(headers))
		for i := range kinds {
			kinds[i], _ = r.Kind(i)
		}
		if _, err := tx.ExecContext(ctx, createTableQuery(opts.Dialect, table, headers, kinds)); err != nil {
			return 0, fmt.Errorf("create table: %w", err)
		}
	}

	var n int64
	if hasRow {
		stmt, err := tx.PrepareContext(ctx, insertQuery(opts.Dialect, table, headers))
		if err != nil {
			return 0, fmt.Errorf("prepare insert: %w", err)
		}
		defer stmt.Close()

		args := make([]any, len(headers))
		for ok := true; ok; ok = r.Read() {
			if err := ctx.Err(); err != nil {
				return 0, err
			}
			for i := range args {
				v, _ := r.Value(i)
				args[i] = opts.Dialect.driverValue(v)
			}
			if _, err := stmt.ExecContext(ctx, args...); err != nil {
				return 0, fmt.Errorf("insert row %d: %w", r.Rows(), err)
			}
			n++
		}
		if err := r.Err(); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return n, nil
}

func createTableQuery(d Dialect, table string, headers []string, kinds []cell.Kind) string {
	cols := make([]string, len(headers))
	for i, h := range headers {
		cols[i] = d.QuoteIdent(h) + " " + d.ColumnType(kinds[i])
	}
	return fmt.Sprintf("CREATE TABLE %s (%s)", d.QuoteIdent(table), strings.Join(cols, ", "))
}

func insertQuery(d Dialect, table string, headers []string) string {
	cols := make([]string, len(headers))
	params := make([]string, len(headers))
	for i, h := range headers {
		cols[i] = d.QuoteIdent(h)
		params[i] = d.Placeholder(i + 1)
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		d.QuoteIdent(table), strings.Join(cols, ", "), strings.Join(params, ", "))
}

// Export runs query and writes every resulting row to w, with the columns in
// query order.  It returns the number of rows written.  w is not closed.
func Export(ctx context.Context, db *sql.DB, query string, w *jsontable.Writer, args ...any) (int64, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	types, err := rows.ColumnTypes()
	if err != nil {
		return 0, fmt.Errorf("column types: %w", err)
	}
	names := make([]string, len(types))
	for i, ct := range types {
		names[i] = ct.Name()
	}

	start := w.Rows()
	for rows.Next() {
		values := make([]any, len(types))
		ptrs := make([]any, len(types))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return w.Rows() - start, fmt.Errorf("scan row: %w", err)
		}
		for i, v := range values {
			values[i] = fromDriver(v, types[i].DatabaseTypeName())
		}
		if err := w.WriteOrderedRow(names, values); err != nil {
			return w.Rows() - start, err
		}
	}
	if err := rows.Err(); err != nil {
		return w.Rows() - start, fmt.Errorf("rows: %w", err)
	}
	return w.Rows() - start, nil
}

// fromDriver interprets the raw bytes some drivers return according to the
// database type of the column.
func fromDriver(v any, dbType string) any {
	b, ok := v.([]byte)
	if !ok {
		return v
	}
	dbType = strings.ToUpper(dbType)
	switch {
	case dbType == "DECIMAL" || dbType == "NUMERIC":
		return json.Number(b)
	case strings.HasSuffix(dbType, "INT") || dbType == "INTEGER" || dbType == "BIGINT":
		if n, err := strconv.ParseInt(string(b), 10, 64); err == nil {
			return n
		}
	case dbType == "FLOAT" || dbType == "DOUBLE" || dbType == "REAL" || dbType == "DOUBLE PRECISION":
		if x, err := strconv.ParseFloat(string(b), 64); err == nil {
			return x
		}
	case isTextType(dbType):
		return string(b)
	}
	return b
}

func isTextType(dbType string) bool {
	if strings.Contains(dbType, "CHAR") || strings.Contains(dbType, "TEXT") || strings.Contains(dbType, "CLOB") {
		return true
	}
	switch dbType {
	case "JSON", "JSONB", "UUID", "ENUM", "SET", "DATE", "TIME", "DATETIME", "TIMESTAMP", "YEAR":
		return true
	}
	return false
}
