package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	pq "github.com/lib/pq"
)

// undefinedTable is the Postgres SQLSTATE for a missing relation.
const undefinedTable = "42P01"

// DefaultTable is read when no table is configured.
const DefaultTable = "ladder"

type postgresLoader struct {
	db    *sql.DB
	table string
}

// NewPostgresLoader reads the ladder table through an open handle. The
// table may be schema-qualified ("analytics.ladder").
func NewPostgresLoader(db *sql.DB, table string) Loader {
	if strings.TrimSpace(table) == "" {
		table = DefaultTable
	}
	return &postgresLoader{db: db, table: table}
}

func (l *postgresLoader) Location() string { return "postgres:" + l.table }

func (l *postgresLoader) Load(ctx context.Context) ([]Row, error) {
	query := fmt.Sprintf("SELECT * FROM %s", quoteTable(l.table))
	rs, err := l.db.QueryContext(ctx, query)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == undefinedTable {
			return nil, &MissingDataError{Location: l.Location(), Err: err}
		}
		return nil, fmt.Errorf("query ladder table: %w", err)
	}
	defer rs.Close()

	names, err := rs.Columns()
	if err != nil {
		return nil, err
	}
	cols := make([]string, len(names))
	for i, n := range names {
		cols[i] = normalizeHeader(n)
	}

	var rows []Row
	vals := make([]any, len(cols))
	ptrs := make([]any, len(cols))
	for i := range vals {
		ptrs[i] = &vals[i]
	}
	for rs.Next() {
		if err := rs.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("scan ladder row: %w", err)
		}
		row := make(Row, len(cols))
		for i, c := range cols {
			row[c] = sqlValue(vals[i])
		}
		rows = append(rows, row)
	}
	if err := rs.Err(); err != nil {
		return nil, fmt.Errorf("iterate ladder rows: %w", err)
	}
	return rows, nil
}

// sqlValue normalizes driver values; numeric columns arrive as text bytes.
func sqlValue(v any) any {
	switch x := v.(type) {
	case []byte:
		return string(x)
	case int32:
		return int64(x)
	case float32:
		return float64(x)
	}
	return v
}

func quoteTable(table string) string {
	parts := strings.Split(table, ".")
	for i, p := range parts {
		parts[i] = pq.QuoteIdentifier(strings.TrimSpace(p))
	}
	return strings.Join(parts, ".")
}
