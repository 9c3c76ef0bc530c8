package exporter

import (
	"io"

	"github.com/guttosm/boardpulse/internal/domain/dto"
	"github.com/guttosm/boardpulse/internal/domain/models"
	"github.com/xuri/excelize/v2"
)

const xlsxSheet = "ladder"

func writeXLSX(w io.Writer, rows []dto.LadderRow) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", xlsxSheet); err != nil {
		return err
	}

	header := make([]any, len(models.Columns))
	for i, c := range models.Columns {
		header[i] = c
	}
	if err := f.SetSheetRow(xlsxSheet, "A1", &header); err != nil {
		return err
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(len(models.Columns), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(xlsxSheet, "A1", last, bold); err != nil {
		return err
	}

	for i, r := range rows {
		var next any
		if r.NextDayOpenChangePct != nil {
			next = r.NextDayOpenChangePct.InexactFloat64()
		}
		vals := []any{
			r.Date,
			r.Symbol,
			r.Name,
			r.Close.InexactFloat64(),
			r.LimitPrice.InexactFloat64(),
			r.IsLimitUp,
			r.ConsecutiveLimitUpDays,
			r.BoardType,
			next,
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(xlsxSheet, cell, &vals); err != nil {
			return err
		}
	}

	return f.Write(w)
}
