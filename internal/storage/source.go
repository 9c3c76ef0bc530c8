package storage

import (
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"
)

// Source names a dataset backend.
type Source string

const (
	SourceAuto     Source = "auto"
	SourceParquet  Source = "parquet"
	SourceCSV      Source = "csv"
	SourceXLSX     Source = "xlsx"
	SourcePostgres Source = "postgres"
)

// Options selects and configures a Loader.
//
// Fields:
//   - Source: backend; SourceAuto picks one from the Path extension.
//   - Path: dataset file for the file backends.
//   - Sheet: worksheet for xlsx; empty means the first sheet.
//   - Table: table (optionally schema-qualified) for postgres.
//   - DB: open handle for postgres.
type Options struct {
	Source Source
	Path   string
	Sheet  string
	Table  string
	DB     *sql.DB
}

// ResolveSource maps SourceAuto to a concrete backend.
func ResolveSource(src Source, path string) (Source, error) {
	src = Source(strings.ToLower(strings.TrimSpace(string(src))))
	switch src {
	case SourceParquet, SourceCSV, SourceXLSX, SourcePostgres:
		return src, nil
	case "", SourceAuto:
		switch strings.ToLower(filepath.Ext(path)) {
		case ".parquet", ".pq":
			return SourceParquet, nil
		case ".csv":
			return SourceCSV, nil
		case ".xlsx", ".xlsm":
			return SourceXLSX, nil
		}
		return "", fmt.Errorf("%w: cannot infer source from %q", ErrUnsupportedSource, path)
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedSource, src)
}

// NewLoader builds the loader named by opts.
func NewLoader(opts Options) (Loader, error) {
	src, err := ResolveSource(opts.Source, opts.Path)
	if err != nil {
		return nil, err
	}
	switch src {
	case SourceParquet:
		return NewParquetLoader(opts.Path), nil
	case SourceCSV:
		return NewCSVLoader(opts.Path), nil
	case SourceXLSX:
		return NewXLSXLoader(opts.Path, opts.Sheet), nil
	default:
		if opts.DB == nil {
			return nil, fmt.Errorf("%w: postgres source needs a database handle", ErrUnsupportedSource)
		}
		return NewPostgresLoader(opts.DB, opts.Table), nil
	}
}

// normalizeHeader lower-cases and trims a column name.
func normalizeHeader(s string) string {
	return strings.ToLower(strings.TrimSpace(strings.TrimPrefix(s, "\ufeff")))
}
