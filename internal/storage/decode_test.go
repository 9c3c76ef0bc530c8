package storage

import (
	"math"
	"testing"
	"time"

	"github.com/guttosm/boardpulse/internal/domain/models"
	"github.com/shopspring/decimal"
)

func ladderRow(date any, symbol string, limitUp any, streak any) Row {
	return Row{
		"date":                      date,
		"symbol":                    symbol,
		"name":                      "Name " + symbol,
		"close":                     "10.5",
		"limit_price":               "10.5",
		"is_limit_up":               limitUp,
		"consecutive_limit_up_days": streak,
		"board_type":                "first",
		"next_day_open_change_pct":  nil,
	}
}

func TestBuildDataset_Invariants(t *testing.T) {
	rows := []Row{
		ladderRow("2024-01-01", "000001", true, int64(1)),
		ladderRow("2024-01-01", "000002", true, int64(0)),    // bad streak
		ladderRow("2024-01-01", "000001", true, int64(2)),    // duplicate
		ladderRow("2024-01-01", "000003", false, nil),        // not limit-up, streak absent
		ladderRow("2024-01-01", "000004", "maybe", int64(1)), // undecodable
		ladderRow("2024-01-01", "", true, int64(1)),          // no symbol
		ladderRow("2024-01-02", "000001", "True", "2"),       // next session
	}

	ds, err := buildDataset(rows, "test")
	if err != nil {
		t.Fatalf("buildDataset: %v", err)
	}
	if ds.Len() != 3 {
		t.Fatalf("Len=%d, want 3", ds.Len())
	}
	lu := ds.LimitUp()
	if len(lu) != 2 {
		t.Fatalf("limit-up=%d, want 2", len(lu))
	}
	if lu[0].ConsecutiveLimitUpDays != 1 || lu[1].ConsecutiveLimitUpDays != 2 {
		t.Fatalf("first occurrence should win: %+v", lu)
	}
}

func TestBuildDataset_MissingColumn(t *testing.T) {
	row := ladderRow("2024-01-01", "000001", true, int64(1))
	delete(row, "is_limit_up")
	if _, err := buildDataset([]Row{row}, "test"); err == nil {
		t.Fatalf("expected missing column error")
	}
}

func TestBuildDataset_Empty(t *testing.T) {
	ds, err := buildDataset(nil, "test")
	if err != nil || ds == nil || ds.Len() != 0 {
		t.Fatalf("empty input: ds=%v err=%v", ds, err)
	}
}

func TestDecodeRecord_Values(t *testing.T) {
	day := time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC)
	row := Row{
		"date":                      day,
		"symbol":                    " 600000 ",
		"name":                      []byte("浦发银行"),
		"close":                     float64(11),
		"limit_price":               decimal.RequireFromString("11.00"),
		"is_limit_up":               int64(1),
		"consecutive_limit_up_days": float64(3),
		"board_type":                int64(5),
		"next_day_open_change_pct":  "-2.5",
	}
	rec, err := decodeRecord(row)
	if err != nil {
		t.Fatalf("decodeRecord: %v", err)
	}
	if rec.Date.Kind != models.DateCalendar || rec.Date.String() != "2024-01-03" {
		t.Fatalf("date=%+v", rec.Date)
	}
	if rec.Symbol != "600000" || rec.Name != "浦发银行" {
		t.Fatalf("symbol/name=%q/%q", rec.Symbol, rec.Name)
	}
	if !rec.IsLimitUp || rec.ConsecutiveLimitUpDays != 3 {
		t.Fatalf("limit-up=%v streak=%d", rec.IsLimitUp, rec.ConsecutiveLimitUpDays)
	}
	if rec.BoardType.Kind != models.BoardOneWord {
		t.Fatalf("board=%+v", rec.BoardType)
	}
	if !rec.NextDayOpenChangePct.Valid || !rec.NextDayOpenChangePct.Decimal.Equal(decimal.NewFromFloat(-2.5)) {
		t.Fatalf("next day=%+v", rec.NextDayOpenChangePct)
	}
}

func TestConverters(t *testing.T) {
	boolCases := []struct {
		in      any
		want    bool
		wantErr bool
	}{
		{nil, false, false},
		{true, true, false},
		{"TRUE", true, false},
		{"0", false, false},
		{int64(2), true, false},
		{math.NaN(), false, false},
		{"sometimes", false, true},
	}
	for _, c := range boolCases {
		got, err := toBool(c.in)
		if got != c.want || (err != nil) != c.wantErr {
			t.Fatalf("toBool(%v)=%v,%v", c.in, got, err)
		}
	}

	intCases := []struct {
		in      any
		want    int
		wantErr bool
	}{
		{nil, 0, false},
		{"", 0, false},
		{"NaN", 0, false},
		{"4", 4, false},
		{"4.0", 4, false},
		{float64(2), 2, false},
		{float64(2.5), 0, true},
		{"x", 0, true},
	}
	for _, c := range intCases {
		got, err := toInt(c.in)
		if got != c.want || (err != nil) != c.wantErr {
			t.Fatalf("toInt(%v)=%v,%v", c.in, got, err)
		}
	}

	if d, err := toDecimal("nan"); err != nil || d.Valid {
		t.Fatalf("nan should be null: %+v %v", d, err)
	}
	if _, err := toDecimal("abc"); err == nil {
		t.Fatalf("expected decimal error")
	}

	boardCases := []struct {
		in   any
		want string
	}{
		{"2", "consecutive"},
		{float64(4), "high-open"},
		{"反包", "reopened"},
		{nil, "unknown"},
		{"T字板", "T字板"},
		{"1.0", "first"},
		{" 2.0 ", "consecutive"},
		{"1.5", "1.5"},
	}
	for _, c := range boardCases {
		if got := toBoardType(c.in).Label; got != c.want {
			t.Fatalf("toBoardType(%v)=%q, want %q", c.in, got, c.want)
		}
	}
}

func TestToBoardType_SameKeyForEveryEncoding(t *testing.T) {
	want := toBoardType(int64(1))
	for _, in := range []any{float64(1), "1", "1.0", " 1.00 ", decimal.NewFromInt(1), "first", "首板"} {
		if got := toBoardType(in); got != want {
			t.Fatalf("toBoardType(%#v)=%+v, want %+v", in, got, want)
		}
	}
}
