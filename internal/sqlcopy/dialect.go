package sqlcopy

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/arnodel/jsontable/cell"
)

// Dialect captures the differences between the supported databases.
type Dialect int

const (
	SQLite Dialect = iota
	MySQL
	Postgres
)

func (d Dialect) String() string {
	switch d {
	case SQLite:
		return "sqlite"
	case MySQL:
		return "mysql"
	case Postgres:
		return "postgres"
	default:
		return "Dialect(" + strconv.Itoa(int(d)) + ")"
	}
}

// DialectFor returns the dialect spoken by a database/sql driver name.
func DialectFor(driver string) (Dialect, error) {
	switch strings.ToLower(driver) {
	case "sqlite", "sqlite3":
		return SQLite, nil
	case "mysql":
		return MySQL, nil
	case "postgres", "postgresql", "pq":
		return Postgres, nil
	default:
		return 0, fmt.Errorf("unsupported driver: %q", driver)
	}
}

// Placeholder returns the bind parameter for the n-th argument (1-based).
func (d Dialect) Placeholder(n int) string {
	if d == Postgres {
		return "$" + strconv.Itoa(n)
	}
	return "?"
}

// QuoteIdent quotes a possibly schema-qualified identifier.
func (d Dialect) QuoteIdent(name string) string {
	q := `"`
	if d == MySQL {
		q = "`"
	}
	parts := strings.Split(name, ".")
	for i, p := range parts {
		parts[i] = q + strings.ReplaceAll(p, q, q+q) + q
	}
	return strings.Join(parts, ".")
}

// ColumnType returns the column type used to store cells of kind k.
func (d Dialect) ColumnType(k cell.Kind) string {
	switch k {
	case cell.KindInteger:
		if d == SQLite {
			return "INTEGER"
		}
		return "BIGINT"
	case cell.KindFloat:
		switch d {
		case Postgres:
			return "DOUBLE PRECISION"
		case MySQL:
			return "DOUBLE"
		}
		return "REAL"
	case cell.KindBool:
		return "BOOLEAN"
	case cell.KindDateTime:
		switch d {
		case Postgres:
			return "TIMESTAMPTZ"
		case MySQL:
			return "DATETIME(6)"
		}
		return "TEXT"
	case cell.KindBytes:
		if d == Postgres {
			return "BYTEA"
		}
		return "BLOB"
	case cell.KindUUID:
		switch d {
		case Postgres:
			return "UUID"
		case MySQL:
			return "CHAR(36)"
		}
		return "TEXT"
	}
	return "TEXT"
}

// driverValue converts a cell to a value accepted by database/sql drivers.
// SQLite has no date type, dates are stored as RFC 3339 text.
func (d Dialect) driverValue(v cell.Value) any {
	switch x := v.(type) {
	case nil, cell.Null:
		return nil
	case cell.Integer:
		return int64(x)
	case cell.Float:
		return float64(x)
	case cell.Text:
		return string(x)
	case cell.Bool:
		return bool(x)
	case cell.DateTime:
		if d == SQLite {
			return x.String()
		}
		return x.Time()
	case cell.Bytes:
		return []byte(x)
	}
	// UUID, URI and Duration
	return v.String()
}
