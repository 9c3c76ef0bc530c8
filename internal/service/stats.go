package service

import (
	"context"
	"sort"
	"time"

	"github.com/guttosm/boardpulse/internal/dates"
	"github.com/guttosm/boardpulse/internal/domain/models"
	"github.com/guttosm/boardpulse/internal/logger"
	"github.com/guttosm/boardpulse/internal/storage"
	"github.com/shopspring/decimal"
)

// StatsOptions restricts the stats window. Bounds are YYYYMMDD and
// inclusive; empty or malformed bounds leave that side open.
type StatsOptions struct {
	StartDate string
	EndDate   string
}

// StatsService summarizes the limit-up population.
type StatsService interface {
	Stats(ctx context.Context, opts StatsOptions) (*models.StatsReport, error)
}

type statsService struct {
	store storage.Provider
}

func NewStatsService(store storage.Provider) StatsService {
	return &statsService{store: store}
}

var hundred = decimal.NewFromInt(100)

func (s *statsService) Stats(ctx context.Context, opts StatsOptions) (*models.StatsReport, error) {
	ds, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}

	start, hasStart := parseBound("start_date", opts.StartDate)
	end, hasEnd := parseBound("end_date", opts.EndDate)

	var recs []models.LadderRecord
	for _, r := range ds.LimitUp() {
		if hasStart || hasEnd {
			day, ok := r.Date.Day()
			if !ok {
				continue
			}
			if hasStart && day.Before(start) {
				continue
			}
			if hasEnd && day.After(end) {
				continue
			}
		}
		recs = append(recs, r)
	}

	report := &models.StatsReport{
		TotalRecords:          len(recs),
		StreakDistribution:    []models.StreakCount{},
		BoardTypeDistribution: []models.BoardTypeCount{},
	}
	if len(recs) == 0 {
		return report, nil
	}

	symbols := make(map[string]struct{})
	streaks := make(map[int]int)
	boardIdx := make(map[string]int)
	dr := models.DateRange{Min: recs[0].Date, Max: recs[0].Date}

	for _, r := range recs {
		symbols[r.Symbol] = struct{}{}
		streaks[r.ConsecutiveLimitUpDays]++

		label := r.BoardType.String()
		if i, ok := boardIdx[label]; ok {
			report.BoardTypeDistribution[i].Count++
		} else {
			boardIdx[label] = len(report.BoardTypeDistribution)
			report.BoardTypeDistribution = append(report.BoardTypeDistribution,
				models.BoardTypeCount{BoardType: r.BoardType, Count: 1})
		}

		if r.Date.Compare(dr.Min) < 0 {
			dr.Min = r.Date
		}
		if r.Date.Compare(dr.Max) > 0 {
			dr.Max = r.Date
		}
	}

	report.UniqueSymbols = len(symbols)
	report.DateRange = &dr

	for days, n := range streaks {
		report.StreakDistribution = append(report.StreakDistribution, models.StreakCount{Days: days, Count: n})
	}
	sort.Slice(report.StreakDistribution, func(i, j int) bool {
		return report.StreakDistribution[i].Days < report.StreakDistribution[j].Days
	})
	sort.SliceStable(report.BoardTypeDistribution, func(i, j int) bool {
		return report.BoardTypeDistribution[i].Count > report.BoardTypeDistribution[j].Count
	})

	report.NextDay = nextDayStats(recs)
	return report, nil
}

func parseBound(name, raw string) (day time.Time, ok bool) {
	if raw == "" {
		return day, false
	}
	day, ok = dates.ParseBound(raw)
	if !ok {
		logger.L().Debug().Str("bound", name).Str("value", raw).Msg("ignoring unparseable date bound")
	}
	return day, ok
}

// nextDayStats returns nil when no record carries a next-session value.
func nextDayStats(recs []models.LadderRecord) *models.NextDayStats {
	var vals []decimal.Decimal
	for _, r := range recs {
		if r.NextDayOpenChangePct.Valid {
			vals = append(vals, r.NextDayOpenChangePct.Decimal)
		}
	}
	if len(vals) == 0 {
		return nil
	}

	n := decimal.NewFromInt(int64(len(vals)))
	st := &models.NextDayStats{Samples: len(vals), Max: vals[0], Min: vals[0]}
	sum := decimal.Zero
	positive := 0
	for _, v := range vals {
		sum = sum.Add(v)
		if v.IsPositive() {
			positive++
		}
		st.Max = decimal.Max(st.Max, v)
		st.Min = decimal.Min(st.Min, v)
	}
	st.Mean = sum.Div(n)
	st.PositivePct = decimal.NewFromInt(int64(positive)).Mul(hundred).Div(n)
	return st
}
