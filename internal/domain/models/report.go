package models

import "github.com/shopspring/decimal"

// SearchResult is the outcome of a keyword search: the matched record on
// the most recent date and the symbol's full limit-up history.
type SearchResult struct {
	Match   LadderRecord
	History []LadderRecord // ascending by date
}

// StreakCount is one entry of the streak distribution.
type StreakCount struct {
	Days  int
	Count int
}

// BoardTypeCount is one entry of the board type distribution.
type BoardTypeCount struct {
	BoardType BoardType
	Count     int
}

// DateRange is an inclusive span of session dates.
type DateRange struct {
	Min SessionDate
	Max SessionDate
}

// NextDayStats summarizes next-session open performance in percent.
type NextDayStats struct {
	Samples     int
	Mean        decimal.Decimal
	PositivePct decimal.Decimal
	Max         decimal.Decimal
	Min         decimal.Decimal
}

// StatsReport is returned by the stats engine.
//
// Fields:
//   - TotalRecords: limit-up records after the date filter.
//   - UniqueSymbols: distinct symbols among them.
//   - DateRange: nil when no record matched.
//   - StreakDistribution: ascending by Days.
//   - BoardTypeDistribution: descending by Count.
//   - NextDay: nil when no record carries a next-day value.
type StatsReport struct {
	TotalRecords          int
	UniqueSymbols         int
	DateRange             *DateRange
	StreakDistribution    []StreakCount
	BoardTypeDistribution []BoardTypeCount
	NextDay               *NextDayStats
}

// DayBucket counts one session's limit-ups by streak length.
// One+Two+Three+FourPlus == Total.
type DayBucket struct {
	Date     SessionDate
	Total    int
	One      int
	Two      int
	Three    int
	FourPlus int
}

// QueryResult holds every record matching a query. Total is the full match
// count even when the caller displays fewer rows.
type QueryResult struct {
	Records []LadderRecord
	Total   int
}
