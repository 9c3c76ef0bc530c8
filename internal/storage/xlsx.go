package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/xuri/excelize/v2"
)

// maxExcelSerial is the serial number of 9999-12-31.
const maxExcelSerial = 2958465

type xlsxLoader struct {
	path  string
	sheet string
}

// NewXLSXLoader reads a worksheet whose first row is the header. An empty
// sheet name selects the first worksheet.
func NewXLSXLoader(path, sheet string) Loader {
	return &xlsxLoader{path: path, sheet: sheet}
}

func (l *xlsxLoader) Location() string {
	if l.sheet == "" {
		return l.path
	}
	return l.path + "#" + l.sheet
}

func (l *xlsxLoader) Load(ctx context.Context) ([]Row, error) {
	if _, err := os.Stat(l.path); errors.Is(err, fs.ErrNotExist) {
		return nil, &MissingDataError{Location: l.path, Err: err}
	}
	f, err := excelize.OpenFile(l.path)
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheet := l.sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, nil
		}
		sheet = sheets[0]
	}

	cells, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	if len(cells) == 0 {
		return nil, nil
	}

	cols := make([]string, len(cells[0]))
	for i, h := range cells[0] {
		cols[i] = normalizeHeader(h)
	}

	rows := make([]Row, 0, len(cells)-1)
	for n, rec := range cells[1:] {
		if n%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		if isBlank(rec) {
			continue
		}
		row := make(Row, len(cols))
		for i, c := range cols {
			if i >= len(rec) || rec[i] == "" {
				row[c] = nil
				continue
			}
			if c == "date" {
				row[c] = xlsxDate(rec[i])
				continue
			}
			row[c] = rec[i]
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// xlsxDate converts a raw date cell. Date-formatted cells come back as
// serial numbers; anything else (including 8-digit YYYYMMDD) stays text.
func xlsxDate(raw string) any {
	serial, err := strconv.ParseFloat(raw, 64)
	if err != nil || serial <= 0 || serial > maxExcelSerial {
		return raw
	}
	t, err := excelize.ExcelDateToTime(serial, false)
	if err != nil {
		return raw
	}
	return t
}

func isBlank(rec []string) bool {
	for _, v := range rec {
		if v != "" {
			return false
		}
	}
	return true
}
