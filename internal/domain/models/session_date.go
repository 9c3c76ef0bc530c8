package models

import (
	"strings"
	"time"
)

// DateKind tells how the dataset stored a session date.
type DateKind int

const (
	DateText     DateKind = iota // stored as a string column
	DateCalendar                 // stored as a date/timestamp column
)

// textLayouts are tried in order when a text date is read.
var textLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"20060102",
	"2006/01/02",
	"2006/1/2",
}

// SessionDate is the trading session date of a record, keeping whatever
// representation the source used.
//
// Fields:
//   - Kind: text or calendar.
//   - Text: the stored string (text dates only).
//   - Time: the calendar value; for text dates it is set only when Text parses.
type SessionDate struct {
	Kind DateKind
	Text string
	Time time.Time
}

// CalendarDate wraps a calendar value read from a typed column.
func CalendarDate(t time.Time) SessionDate {
	return SessionDate{Kind: DateCalendar, Time: t}
}

// TextDate wraps a stored string, parsing it when it has a known layout.
func TextDate(s string) SessionDate {
	s = strings.TrimSpace(s)
	d := SessionDate{Kind: DateText, Text: s}
	for _, layout := range textLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			d.Time = t
			break
		}
	}
	return d
}

// Day returns the calendar day (midnight UTC) when it is known.
func (d SessionDate) Day() (time.Time, bool) {
	if d.Time.IsZero() {
		return time.Time{}, false
	}
	y, m, dd := d.Time.Date()
	return time.Date(y, m, dd, 0, 0, 0, 0, time.UTC), true
}

// String coerces the date to text: the stored string for text dates,
// "2006-01-02" (or with a clock when not midnight) for calendar dates.
func (d SessionDate) String() string {
	if d.Kind == DateText {
		return d.Text
	}
	if d.Time.IsZero() {
		return ""
	}
	h, m, s := d.Time.Clock()
	if h == 0 && m == 0 && s == 0 && d.Time.Nanosecond() == 0 {
		return d.Time.Format("2006-01-02")
	}
	return d.Time.Format("2006-01-02 15:04:05")
}

// Display is the user-facing form: the calendar day when known.
func (d SessionDate) Display() string {
	if day, ok := d.Day(); ok {
		return day.Format("2006-01-02")
	}
	return d.Text
}

// Key groups records by trading session.
func (d SessionDate) Key() string {
	return d.Display()
}

// Compare orders by calendar day. Dates without a known day sort before
// dates with one and compare among themselves by text.
func (d SessionDate) Compare(o SessionDate) int {
	dd, okD := d.Day()
	od, okO := o.Day()
	switch {
	case okD && okO:
		return dd.Compare(od)
	case okD:
		return 1
	case okO:
		return -1
	default:
		return strings.Compare(d.Text, o.Text)
	}
}
