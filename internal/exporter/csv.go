package exporter

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/guttosm/boardpulse/internal/domain/dto"
	"github.com/guttosm/boardpulse/internal/domain/models"
)

// utf8BOM lets spreadsheet tools detect UTF-8 (stock names are CJK).
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

func writeCSV(w io.Writer, rows []dto.LadderRow) error {
	if _, err := w.Write(utf8BOM); err != nil {
		return fmt.Errorf("failed to write BOM: %w", err)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(models.Columns); err != nil {
		return fmt.Errorf("failed to write headers: %w", err)
	}
	for i, r := range rows {
		if err := cw.Write(r.Strings()); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
