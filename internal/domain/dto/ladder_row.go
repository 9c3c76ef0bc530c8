package dto

import (
	"strconv"

	"github.com/guttosm/boardpulse/internal/domain/models"
	"github.com/shopspring/decimal"
)

// LadderRow is the export shape of a record: every column, flattened to
// plain values.
type LadderRow struct {
	Date                   string           `json:"date"`
	Symbol                 string           `json:"symbol"`
	Name                   string           `json:"name"`
	Close                  decimal.Decimal  `json:"close"`
	LimitPrice             decimal.Decimal  `json:"limit_price"`
	IsLimitUp              bool             `json:"is_limit_up"`
	ConsecutiveLimitUpDays int              `json:"consecutive_limit_up_days"`
	BoardType              string           `json:"board_type"`
	NextDayOpenChangePct   *decimal.Decimal `json:"next_day_open_change_pct"`
}

// NewLadderRow flattens a record.
func NewLadderRow(r models.LadderRecord) LadderRow {
	row := LadderRow{
		Date:                   r.Date.String(),
		Symbol:                 r.Symbol,
		Name:                   r.Name,
		Close:                  r.Close,
		LimitPrice:             r.LimitPrice,
		IsLimitUp:              r.IsLimitUp,
		ConsecutiveLimitUpDays: r.ConsecutiveLimitUpDays,
		BoardType:              r.BoardType.String(),
	}
	if r.NextDayOpenChangePct.Valid {
		v := r.NextDayOpenChangePct.Decimal
		row.NextDayOpenChangePct = &v
	}
	return row
}

// Strings renders the row in models.Columns order. Null values are empty.
func (r LadderRow) Strings() []string {
	next := ""
	if r.NextDayOpenChangePct != nil {
		next = r.NextDayOpenChangePct.String()
	}
	return []string{
		r.Date,
		r.Symbol,
		r.Name,
		r.Close.String(),
		r.LimitPrice.String(),
		strconv.FormatBool(r.IsLimitUp),
		strconv.Itoa(r.ConsecutiveLimitUpDays),
		r.BoardType,
		next,
	}
}

// LadderStock is one entry of the grouped JSON export.
type LadderStock struct {
	Symbol               string           `json:"symbol"`
	Name                 string           `json:"name"`
	Close                decimal.Decimal  `json:"close"`
	BoardType            string           `json:"board_type"`
	NextDayOpenChangePct *decimal.Decimal `json:"next_day_open_change_pct"`
}
