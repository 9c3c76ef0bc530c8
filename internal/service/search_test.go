package service

import (
	"context"
	"errors"
	"testing"

	"github.com/guttosm/boardpulse/internal/domain/models"
)

func TestSearch_History(t *testing.T) {
	store := newStore(
		rec(day(2024, 1, 5), "000001", "平安银行", 4, "consecutive"),
		rec(day(2024, 1, 2), "000001", "平安银行", 1, "first"),
		rec(day(2024, 1, 4), "000001", "平安银行", 3, "consecutive"),
		rec(day(2024, 1, 3), "000001", "平安银行", 2, "consecutive"),
		rec(day(2024, 1, 5), "000002", "万科A", 1, "first"),
		notLimitUp(rec(day(2024, 1, 1), "000001", "平安银行", 0, "")),
	)

	res, err := NewSearchService(store).Search(context.Background(), "000001")
	if err != nil || res == nil {
		t.Fatalf("Search: res=%v err=%v", res, err)
	}
	if res.Match.Symbol != "000001" || res.Match.Date.Display() != "2024-01-05" {
		t.Fatalf("match=%+v", res.Match)
	}
	if len(res.History) != 4 {
		t.Fatalf("history=%d, want 4", len(res.History))
	}
	for i, h := range res.History {
		if h.Symbol != "000001" || !h.IsLimitUp {
			t.Fatalf("history entry %d=%+v", i, h)
		}
		if i > 0 && res.History[i-1].Date.Compare(h.Date) >= 0 {
			t.Fatalf("history not strictly ascending at %d", i)
		}
	}
}

func TestSearch_TableDriven(t *testing.T) {
	latest := day(2024, 2, 1)
	store := newStore(
		rec(day(2024, 1, 31), "600519", "贵州茅台", 1, "first"),
		rec(latest, "300750", "宁德时代", 2, "consecutive"),
		rec(latest, "002594", "BYD Auto", 1, "first"),
		rec(latest, "002595", "Byd Parts", 1, "first"),
	)
	svc := NewSearchService(store)

	cases := []struct {
		name    string
		keyword string
		want    string // empty means not found
	}{
		{"symbol substring", "0750", "300750"},
		{"name case-insensitive", "byd", "002594"},
		{"chinese name", "宁德", "300750"},
		{"only latest date is searched", "茅台", ""},
		{"no match", "zzz", ""},
		{"blank keyword", "  ", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res, err := svc.Search(context.Background(), tc.keyword)
			if err != nil {
				t.Fatalf("unexpected err: %v", err)
			}
			if tc.want == "" {
				if res != nil {
					t.Fatalf("want not found, got %+v", res.Match)
				}
				return
			}
			if res == nil || res.Match.Symbol != tc.want {
				t.Fatalf("got %+v, want %s", res, tc.want)
			}
		})
	}
}

func TestSearch_EmptyAndError(t *testing.T) {
	res, err := NewSearchService(newStore()).Search(context.Background(), "x")
	if err != nil || res != nil {
		t.Fatalf("empty dataset: res=%v err=%v", res, err)
	}

	boom := errors.New("boom")
	if _, err := NewSearchService(&stubStore{err: boom}).Search(context.Background(), "x"); !errors.Is(err, boom) {
		t.Fatalf("want boom, got %v", err)
	}

	// text dates that do not parse sort before calendar dates
	store := newStore(
		models.LadderRecord{Date: models.TextDate("unknown"), Symbol: "OLD", IsLimitUp: true, ConsecutiveLimitUpDays: 1},
		rec(day(2024, 1, 1), "NEW", "", 1, ""),
	)
	res, err = NewSearchService(store).Search(context.Background(), "old")
	if err != nil || res != nil {
		t.Fatalf("OLD is not on the latest date: res=%v err=%v", res, err)
	}
}
