package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/guttosm/boardpulse/internal/domain/models"
	"github.com/shopspring/decimal"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("245")).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	gainStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")) // red is up on mainland boards
	lossStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errorStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	hintStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))

	tierHighStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	tierMidStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
)

const highTier = 5

// tierLabel names a streak the way traders do.
func tierLabel(days int) string {
	if days <= 1 {
		return "first board"
	}
	return strconv.Itoa(days) + "-board"
}

func tierStyle(days int) lipgloss.Style {
	switch {
	case days >= highTier:
		return tierHighStyle
	case days >= 3:
		return tierMidStyle
	default:
		return lipgloss.NewStyle()
	}
}

func pct(v decimal.NullDecimal) string {
	if !v.Valid {
		return dimStyle.Render("-")
	}
	s := v.Decimal.StringFixed(2) + "%"
	switch v.Decimal.Sign() {
	case 1:
		return gainStyle.Render("+" + s)
	case -1:
		return lossStyle.Render(s)
	default:
		return s
	}
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(dimStyle).
		Headers(headers...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
}

func ladderTable(recs []models.LadderRecord, withDate bool) *table.Table {
	headers := []string{"#", "Symbol", "Name", "Streak", "Board", "Close", "Next open"}
	if withDate {
		headers = append([]string{"Date"}, headers[1:]...)
	}
	t := newTable(headers...)
	for i, r := range recs {
		row := []string{
			r.Symbol,
			r.Name,
			tierStyle(r.ConsecutiveLimitUpDays).Render(tierLabel(r.ConsecutiveLimitUpDays)),
			r.BoardType.String(),
			r.Close.StringFixed(2),
			pct(r.NextDayOpenChangePct),
		}
		if withDate {
			row = append([]string{r.Date.Display()}, row...)
		} else {
			row = append([]string{strconv.Itoa(i + 1)}, row...)
		}
		t.Row(row...)
	}
	return t
}

func renderQuery(w io.Writer, date string, res *models.QueryResult, limit int) {
	fmt.Fprintln(w, titleStyle.Render(fmt.Sprintf("Limit-up ladder %s: %d stocks", date, res.Total)))
	if res.Total == 0 {
		fmt.Fprintln(w, dimStyle.Render("no matching records"))
		return
	}
	shown := res.Records
	if limit > 0 && len(shown) > limit {
		shown = shown[:limit]
	}
	fmt.Fprintln(w, ladderTable(shown, false).String())
	if rest := res.Total - len(shown); rest > 0 {
		fmt.Fprintln(w, dimStyle.Render(fmt.Sprintf("... %d more not shown", rest)))
	}
}

func renderSearch(w io.Writer, res *models.SearchResult) {
	m := res.Match
	fmt.Fprintln(w, titleStyle.Render(fmt.Sprintf("%s %s", m.Symbol, m.Name)))
	fmt.Fprintf(w, "latest session %s: %s, board %s, close %s\n",
		m.Date.Display(),
		tierStyle(m.ConsecutiveLimitUpDays).Render(tierLabel(m.ConsecutiveLimitUpDays)),
		m.BoardType, m.Close.StringFixed(2))
	fmt.Fprintln(w, titleStyle.Render(fmt.Sprintf("Limit-up history: %d sessions", len(res.History))))
	fmt.Fprintln(w, ladderTable(res.History, true).String())
}

func renderStats(w io.Writer, r *models.StatsReport) {
	fmt.Fprintln(w, titleStyle.Render("Limit-up statistics"))
	fmt.Fprintf(w, "records: %d\nsymbols: %d\n", r.TotalRecords, r.UniqueSymbols)
	if r.DateRange == nil {
		fmt.Fprintln(w, dimStyle.Render("no matching records"))
		return
	}
	fmt.Fprintf(w, "range:   %s .. %s\n", r.DateRange.Min.Display(), r.DateRange.Max.Display())

	streaks := newTable("Streak", "Count", "Share")
	for _, s := range r.StreakDistribution {
		streaks.Row(
			tierStyle(s.Days).Render(tierLabel(s.Days)),
			strconv.Itoa(s.Count),
			share(s.Count, r.TotalRecords),
		)
	}
	fmt.Fprintln(w, streaks.String())

	boards := newTable("Board", "Count", "Share")
	for _, b := range r.BoardTypeDistribution {
		boards.Row(b.BoardType.String(), strconv.Itoa(b.Count), share(b.Count, r.TotalRecords))
	}
	fmt.Fprintln(w, boards.String())

	if n := r.NextDay; n != nil {
		fmt.Fprintln(w, titleStyle.Render(fmt.Sprintf("Next-session open (%d samples)", n.Samples)))
		fmt.Fprintf(w, "mean %s  up %s%%  max %s  min %s\n",
			pct(decimal.NewNullDecimal(n.Mean)),
			n.PositivePct.StringFixed(1),
			pct(decimal.NewNullDecimal(n.Max)),
			pct(decimal.NewNullDecimal(n.Min)))
	}
}

func share(n, total int) string {
	if total == 0 {
		return "0.0%"
	}
	return decimal.NewFromInt(int64(n)).
		Mul(decimal.NewFromInt(100)).
		Div(decimal.NewFromInt(int64(total))).
		StringFixed(1) + "%"
}

func renderTrend(w io.Writer, buckets []models.DayBucket) {
	fmt.Fprintln(w, titleStyle.Render(fmt.Sprintf("Ladder trend: last %d sessions", len(buckets))))
	if len(buckets) == 0 {
		fmt.Fprintln(w, dimStyle.Render("no matching records"))
		return
	}
	t := newTable("Date", "Total", "1", "2", "3", "4+")
	for _, b := range buckets {
		t.Row(
			b.Date.Display(),
			strconv.Itoa(b.Total),
			strconv.Itoa(b.One),
			strconv.Itoa(b.Two),
			strconv.Itoa(b.Three),
			tierStyle(highTier).Render(strconv.Itoa(b.FourPlus)),
		)
	}
	fmt.Fprintln(w, t.String())
}

func renderDates(w io.Writer, all []models.SessionDate, nearest *models.SessionDate, limit int) {
	fmt.Fprintln(w, titleStyle.Render(fmt.Sprintf("Sessions with limit-up records: %d", len(all))))
	if len(all) == 0 {
		fmt.Fprintln(w, dimStyle.Render("no matching records"))
		return
	}
	shown := all
	if limit > 0 && len(shown) > limit {
		shown = shown[:limit]
	}
	for _, d := range shown {
		fmt.Fprintln(w, "  "+d.Display())
	}
	if rest := len(all) - len(shown); rest > 0 {
		fmt.Fprintln(w, dimStyle.Render(fmt.Sprintf("... %d more not shown", rest)))
	}
	if nearest != nil {
		fmt.Fprintf(w, "nearest trading date: %s\n", nearest.Display())
	}
}
