package service

import (
	"context"
	"sort"

	"github.com/guttosm/boardpulse/internal/domain/models"
	"github.com/guttosm/boardpulse/internal/storage"
)

// DefaultTrendDays is used when the caller asks for fewer than one day.
const DefaultTrendDays = 7

// TrendService buckets recent sessions by streak length.
type TrendService interface {
	Trend(ctx context.Context, days int) ([]models.DayBucket, error)
}

type trendService struct {
	store storage.Provider
}

func NewTrendService(store storage.Provider) TrendService {
	return &trendService{store: store}
}

// Trend returns one bucket per session for the most recent days distinct
// limit-up sessions, newest first.
func (s *trendService) Trend(ctx context.Context, days int) ([]models.DayBucket, error) {
	if days < 1 {
		days = DefaultTrendDays
	}
	ds, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}

	groups := groupBySession(ds.LimitUp())
	if len(groups) > days {
		groups = groups[:days]
	}

	out := make([]models.DayBucket, 0, len(groups))
	for _, g := range groups {
		b := models.DayBucket{Date: g.date, Total: len(g.records)}
		for _, r := range g.records {
			switch n := r.ConsecutiveLimitUpDays; {
			case n <= 1:
				b.One++
			case n == 2:
				b.Two++
			case n == 3:
				b.Three++
			default:
				b.FourPlus++
			}
		}
		out = append(out, b)
	}
	return out, nil
}

type sessionGroup struct {
	date    models.SessionDate
	records []models.LadderRecord
}

// groupBySession groups records by session, newest session first. Records
// keep dataset order within a group.
func groupBySession(recs []models.LadderRecord) []sessionGroup {
	idx := make(map[string]int)
	var groups []sessionGroup
	for _, r := range recs {
		k := r.Date.Key()
		i, ok := idx[k]
		if !ok {
			i = len(groups)
			idx[k] = i
			groups = append(groups, sessionGroup{date: r.Date})
		}
		groups[i].records = append(groups[i].records, r)
	}
	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].date.Compare(groups[j].date) > 0
	})
	return groups
}
