package models

import (
	"slices"

	"github.com/shopspring/decimal"
)

// LadderRecord represents a single row of the ladder dataset: one symbol on
// one trading session.
//
// Column order (as produced by the ladder pipeline):
//  1. date
//  2. symbol
//  3. name
//  4. close
//  5. limit_price
//  6. is_limit_up
//  7. consecutive_limit_up_days
//  8. board_type
//  9. next_day_open_change_pct
type LadderRecord struct {
	Date                   SessionDate
	Symbol                 string
	Name                   string
	Close                  decimal.Decimal
	LimitPrice             decimal.Decimal
	IsLimitUp              bool
	ConsecutiveLimitUpDays int
	BoardType              BoardType
	NextDayOpenChangePct   decimal.NullDecimal // invalid when the next session is not in the dataset yet
}

// Columns lists the dataset column names in the order above.
var Columns = []string{
	"date",
	"symbol",
	"name",
	"close",
	"limit_price",
	"is_limit_up",
	"consecutive_limit_up_days",
	"board_type",
	"next_day_open_change_pct",
}

// Dataset is the loaded ladder table. It is built once and never mutated;
// accessors hand out copies so callers may sort freely.
type Dataset struct {
	records []LadderRecord
	limitUp []LadderRecord
}

// NewDataset builds a Dataset from records in source order.
func NewDataset(records []LadderRecord) *Dataset {
	d := &Dataset{records: slices.Clone(records)}
	for _, r := range d.records {
		if r.IsLimitUp {
			d.limitUp = append(d.limitUp, r)
		}
	}
	return d
}

// Len returns the number of records, limit-up or not.
func (d *Dataset) Len() int { return len(d.records) }

// Records returns every record in source order.
func (d *Dataset) Records() []LadderRecord { return slices.Clone(d.records) }

// LimitUp returns the limit-up subset in source order.
func (d *Dataset) LimitUp() []LadderRecord { return slices.Clone(d.limitUp) }
