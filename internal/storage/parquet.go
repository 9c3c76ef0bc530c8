package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math/big"
	"os"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/parquet-go/parquet-go/deprecated"
	"github.com/parquet-go/parquet-go/format"
	"github.com/shopspring/decimal"
)

// julianUnixEpoch is the Julian day number of 1970-01-01.
const julianUnixEpoch = 2440588

const parquetBatch = 256

type parquetLoader struct {
	path string
}

// NewParquetLoader reads a flat parquet file, the pipeline's native output.
func NewParquetLoader(path string) Loader {
	return &parquetLoader{path: path}
}

func (l *parquetLoader) Location() string { return l.path }

// parquetColumn describes how to decode one leaf column.
type parquetColumn struct {
	name    string
	logical *format.LogicalType
}

func (l *parquetLoader) Load(ctx context.Context) ([]Row, error) {
	fh, err := os.Open(l.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &MissingDataError{Location: l.path, Err: err}
		}
		return nil, fmt.Errorf("open parquet: %w", err)
	}
	defer fh.Close()

	st, err := fh.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat parquet: %w", err)
	}
	pf, err := parquet.OpenFile(fh, st.Size())
	if err != nil {
		return nil, fmt.Errorf("open parquet: %w", err)
	}

	schema := pf.Schema()
	paths := schema.Columns()
	cols := make([]parquetColumn, len(paths))
	for _, path := range paths {
		leaf, ok := schema.Lookup(path...)
		if !ok {
			continue
		}
		cols[leaf.ColumnIndex] = parquetColumn{
			name:    normalizeHeader(path[len(path)-1]),
			logical: leaf.Node.Type().LogicalType(),
		}
	}

	out := make([]Row, 0, pf.NumRows())
	buf := make([]parquet.Row, parquetBatch)
	for _, rg := range pf.RowGroups() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := readRowGroup(rg, cols, buf, &out); err != nil {
			return nil, fmt.Errorf("read parquet: %w", err)
		}
	}
	return out, nil
}

func readRowGroup(rg parquet.RowGroup, cols []parquetColumn, buf []parquet.Row, out *[]Row) error {
	rows := rg.Rows()
	defer rows.Close()

	for {
		n, err := rows.ReadRows(buf)
		for _, r := range buf[:n] {
			row := make(Row, len(cols))
			for _, c := range cols {
				if c.name != "" {
					row[c.name] = nil
				}
			}
			for _, v := range r {
				idx := v.Column()
				if idx < 0 || idx >= len(cols) || cols[idx].name == "" {
					continue
				}
				row[cols[idx].name] = parquetValue(v, cols[idx].logical)
			}
			*out = append(*out, row)
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

// parquetValue converts a physical value using the column's logical type.
func parquetValue(v parquet.Value, lt *format.LogicalType) any {
	if v.IsNull() {
		return nil
	}
	switch v.Kind() {
	case parquet.Boolean:
		return v.Boolean()
	case parquet.Int32:
		n := int64(v.Int32())
		switch {
		case lt != nil && lt.Date != nil:
			return time.Unix(n*86400, 0).UTC()
		case lt != nil && lt.Decimal != nil:
			return decimal.New(n, -lt.Decimal.Scale)
		}
		return n
	case parquet.Int64:
		n := v.Int64()
		switch {
		case lt != nil && lt.Timestamp != nil:
			return unitTime(n, lt.Timestamp.Unit)
		case lt != nil && lt.Decimal != nil:
			return decimal.New(n, -lt.Decimal.Scale)
		}
		return n
	case parquet.Int96:
		return int96Time(v.Int96())
	case parquet.Float:
		return float64(v.Float())
	case parquet.Double:
		return v.Double()
	case parquet.ByteArray, parquet.FixedLenByteArray:
		b := v.ByteArray()
		if lt != nil && lt.Decimal != nil {
			return decimal.NewFromBigInt(signedBigEndian(b), -lt.Decimal.Scale)
		}
		return string(b)
	}
	return nil
}

func unitTime(n int64, unit format.TimeUnit) time.Time {
	switch {
	case unit.Micros != nil:
		return time.UnixMicro(n).UTC()
	case unit.Nanos != nil:
		return time.Unix(0, n).UTC()
	default:
		return time.UnixMilli(n).UTC()
	}
}

// int96Time decodes the legacy impala timestamp: nanoseconds of the day in
// the low 8 bytes, Julian day in the high 4.
func int96Time(i deprecated.Int96) time.Time {
	nanos := int64(uint64(i[1])<<32 | uint64(i[0]))
	days := int64(i[2]) - julianUnixEpoch
	return time.Unix(days*86400, nanos).UTC()
}

// signedBigEndian decodes a two's complement big-endian integer.
func signedBigEndian(b []byte) *big.Int {
	n := new(big.Int).SetBytes(b)
	if len(b) > 0 && b[0]&0x80 != 0 {
		n.Sub(n, new(big.Int).Lsh(big.NewInt(1), uint(len(b)*8)))
	}
	return n
}
