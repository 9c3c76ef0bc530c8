package exporter

import (
	"encoding/json"
	"io"
	"strconv"

	"github.com/guttosm/boardpulse/internal/domain/dto"
)

// LadderJSON is the grouped export layout: session date, then streak
// length, then the stocks on that rung.
type LadderJSON map[string]map[string][]dto.LadderStock

// GroupRows builds the grouped layout; stocks keep row order.
func GroupRows(rows []dto.LadderRow) LadderJSON {
	out := make(LadderJSON)
	for _, r := range rows {
		byStreak, ok := out[r.Date]
		if !ok {
			byStreak = make(map[string][]dto.LadderStock)
			out[r.Date] = byStreak
		}
		k := strconv.Itoa(r.ConsecutiveLimitUpDays)
		byStreak[k] = append(byStreak[k], dto.LadderStock{
			Symbol:               r.Symbol,
			Name:                 r.Name,
			Close:                r.Close,
			BoardType:            r.BoardType,
			NextDayOpenChangePct: r.NextDayOpenChangePct,
		})
	}
	return out
}

func writeJSON(w io.Writer, rows []dto.LadderRow) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(GroupRows(rows))
}
