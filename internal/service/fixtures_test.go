package service

import (
	"context"
	"time"

	"github.com/guttosm/boardpulse/internal/domain/models"
	"github.com/shopspring/decimal"
)

type stubStore struct {
	ds  *models.Dataset
	err error
}

func (s *stubStore) Load(ctx context.Context) (*models.Dataset, error) {
	if s.err != nil {
		return nil, s.err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.ds, nil
}

func newStore(recs ...models.LadderRecord) *stubStore {
	return &stubStore{ds: models.NewDataset(recs)}
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// rec builds a limit-up record on a calendar date.
func rec(date time.Time, symbol, name string, streak int, board string) models.LadderRecord {
	return models.LadderRecord{
		Date:                   models.CalendarDate(date),
		Symbol:                 symbol,
		Name:                   name,
		Close:                  decimal.NewFromInt(10),
		LimitPrice:             decimal.NewFromInt(10),
		IsLimitUp:              true,
		ConsecutiveLimitUpDays: streak,
		BoardType:              models.BoardTypeFromText(board),
	}
}

func withNext(r models.LadderRecord, pct string) models.LadderRecord {
	r.NextDayOpenChangePct = decimal.NewNullDecimal(decimal.RequireFromString(pct))
	return r
}

func notLimitUp(r models.LadderRecord) models.LadderRecord {
	r.IsLimitUp = false
	r.ConsecutiveLimitUpDays = 0
	return r
}

func symbols(recs []models.LadderRecord) []string {
	out := make([]string, len(recs))
	for i, r := range recs {
		out[i] = r.Symbol
	}
	return out
}

func intPtr(n int) *int { return &n }
