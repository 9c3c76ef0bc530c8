// Package dates is the single place where user date input is reconciled with
// the representations stored in the ladder dataset.
package dates

import (
	"strings"
	"time"

	"github.com/guttosm/boardpulse/internal/domain/models"
)

// InputLayout is the 8-digit date format accepted from users.
const InputLayout = "20060102"

// Target is a user-supplied session date prepared for matching.
//
// When Parsed is true, Day is the canonical calendar day. Otherwise the
// input failed structured parsing and Fragment holds the "YYYY-MM-DD"
// substring used by the lenient fallback.
type Target struct {
	Raw      string
	Parsed   bool
	Day      time.Time
	Fragment string
}

// ParseTarget prepares an 8-digit YYYYMMDD string for matching.
func ParseTarget(s string) Target {
	s = strings.TrimSpace(s)
	t := Target{Raw: s}
	if day, err := time.Parse(InputLayout, s); err == nil && len(s) == len(InputLayout) {
		t.Parsed = true
		t.Day = day
		t.Fragment = day.Format("2006-01-02")
		return t
	}
	t.Fragment = fallbackFragment(s)
	return t
}

// fallbackFragment reformats YYYYMMDD as YYYY-MM-DD without validating it.
// Separators are ignored, so "2024-01-05" and "2024/01/05" give the same
// fragment. Inputs with fewer than eight digits are used as-is.
func fallbackFragment(s string) string {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)
	if len(digits) < len(InputLayout) {
		return s
	}
	return digits[:4] + "-" + digits[4:6] + "-" + digits[6:8]
}

// Matches reports whether a stored session date falls on the target.
//
// Behavior:
//   - Parsed target, date with a known day: compare calendar days.
//   - Otherwise: substring test of Fragment against the stored date coerced
//     to text. This is best-effort and may over- or under-match.
func (t Target) Matches(d models.SessionDate) bool {
	if t.Parsed {
		if day, ok := d.Day(); ok {
			return day.Equal(t.Day)
		}
	}
	if t.Fragment == "" {
		return false
	}
	return strings.Contains(d.String(), t.Fragment)
}

// ParseBound parses an optional YYYYMMDD range bound. Empty or malformed
// input reports ok == false and the caller ignores the bound.
func ParseBound(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if len(s) != len(InputLayout) {
		return time.Time{}, false
	}
	day, err := time.Parse(InputLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return day, true
}
