package storage

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/guttosm/boardpulse/internal/domain/models"
	"github.com/guttosm/boardpulse/internal/logger"
	"github.com/shopspring/decimal"
)

// Row is one raw dataset row keyed by lower-case column name.
//
// Loaders put every header column in the map; a nil value marks an empty
// cell. Values are one of: nil, string, int64, float64, bool, time.Time or
// decimal.Decimal.
type Row map[string]any

// requiredColumns must exist in every source.
var requiredColumns = []string{"date", "symbol", "is_limit_up", "consecutive_limit_up_days"}

var errInvalidValue = errors.New("invalid value")

// buildDataset decodes raw rows and enforces the load-time invariants:
//   - limit-up rows with a streak below 1 are dropped
//   - for duplicate (date, symbol) pairs the first row wins
func buildDataset(rows []Row, location string) (*models.Dataset, error) {
	if len(rows) > 0 {
		for _, c := range requiredColumns {
			if _, ok := rows[0][c]; !ok {
				return nil, fmt.Errorf("ladder data at %s: missing column %q", location, c)
			}
		}
	}

	records := make([]models.LadderRecord, 0, len(rows))
	seen := make(map[string]struct{}, len(rows))
	var invalid, badStreak, dupes int

	for i, row := range rows {
		rec, err := decodeRecord(row)
		if err != nil {
			invalid++
			logger.L().Debug().Err(err).Int("row", i+1).Msg("skipping undecodable row")
			continue
		}
		if rec.IsLimitUp && rec.ConsecutiveLimitUpDays < 1 {
			badStreak++
			logger.L().Debug().Int("row", i+1).Str("symbol", rec.Symbol).
				Int("streak", rec.ConsecutiveLimitUpDays).Msg("skipping limit-up row with streak < 1")
			continue
		}
		key := rec.Date.Key() + "\x00" + rec.Symbol
		if _, dup := seen[key]; dup {
			dupes++
			logger.L().Debug().Int("row", i+1).Str("symbol", rec.Symbol).
				Str("date", rec.Date.String()).Msg("skipping duplicate row")
			continue
		}
		seen[key] = struct{}{}
		records = append(records, rec)
	}

	if invalid+badStreak+dupes > 0 {
		logger.L().Warn().
			Str("source", location).
			Int("undecodable", invalid).
			Int("bad_streak", badStreak).
			Int("duplicates", dupes).
			Msg("dropped invalid ladder rows")
	}
	return models.NewDataset(records), nil
}

func decodeRecord(row Row) (models.LadderRecord, error) {
	var rec models.LadderRecord
	var err error

	rec.Date = toSessionDate(row["date"])
	rec.Symbol = toString(row["symbol"])
	if rec.Symbol == "" {
		return rec, fmt.Errorf("symbol: %w", errInvalidValue)
	}
	rec.Name = toString(row["name"])

	if rec.IsLimitUp, err = toBool(row["is_limit_up"]); err != nil {
		return rec, fmt.Errorf("is_limit_up: %w", err)
	}
	if rec.ConsecutiveLimitUpDays, err = toInt(row["consecutive_limit_up_days"]); err != nil {
		return rec, fmt.Errorf("consecutive_limit_up_days: %w", err)
	}

	closePx, err := toDecimal(row["close"])
	if err != nil {
		return rec, fmt.Errorf("close: %w", err)
	}
	rec.Close = closePx.Decimal
	limit, err := toDecimal(row["limit_price"])
	if err != nil {
		return rec, fmt.Errorf("limit_price: %w", err)
	}
	rec.LimitPrice = limit.Decimal
	if rec.NextDayOpenChangePct, err = toDecimal(row["next_day_open_change_pct"]); err != nil {
		return rec, fmt.Errorf("next_day_open_change_pct: %w", err)
	}

	rec.BoardType = toBoardType(row["board_type"])
	return rec, nil
}

func toString(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(x)
	case []byte:
		return strings.TrimSpace(string(x))
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	case decimal.Decimal:
		return x.String()
	case time.Time:
		return models.CalendarDate(x).String()
	default:
		return fmt.Sprint(x)
	}
}

func toSessionDate(v any) models.SessionDate {
	if t, ok := v.(time.Time); ok {
		return models.CalendarDate(t)
	}
	return models.TextDate(toString(v))
}

func toBool(v any) (bool, error) {
	switch x := v.(type) {
	case nil:
		return false, nil
	case bool:
		return x, nil
	case int64:
		return x != 0, nil
	case float64:
		return x != 0 && !math.IsNaN(x), nil
	case decimal.Decimal:
		return !x.IsZero(), nil
	}
	switch strings.ToLower(toString(v)) {
	case "", "false", "f", "0", "0.0", "no", "n", "nan":
		return false, nil
	case "true", "t", "1", "1.0", "yes", "y":
		return true, nil
	}
	return false, errInvalidValue
}

// toInt reads a streak count. Empty cells count as zero.
func toInt(v any) (int, error) {
	switch x := v.(type) {
	case nil:
		return 0, nil
	case int64:
		return int(x), nil
	case float64:
		if math.IsNaN(x) {
			return 0, nil
		}
		if x != math.Trunc(x) {
			return 0, errInvalidValue
		}
		return int(x), nil
	case decimal.Decimal:
		if !x.IsInteger() {
			return 0, errInvalidValue
		}
		return int(x.IntPart()), nil
	case bool:
		return 0, errInvalidValue
	}
	s := toString(v)
	if s == "" || strings.EqualFold(s, "nan") {
		return 0, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil || !d.IsInteger() {
		return 0, errInvalidValue
	}
	return int(d.IntPart()), nil
}

// toDecimal reads an optional numeric cell. Empty and NaN cells are null.
func toDecimal(v any) (decimal.NullDecimal, error) {
	switch x := v.(type) {
	case nil:
		return decimal.NullDecimal{}, nil
	case decimal.Decimal:
		return decimal.NewNullDecimal(x), nil
	case int64:
		return decimal.NewNullDecimal(decimal.NewFromInt(x)), nil
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return decimal.NullDecimal{}, nil
		}
		return decimal.NewNullDecimal(decimal.NewFromFloat(x)), nil
	case bool, time.Time:
		return decimal.NullDecimal{}, errInvalidValue
	}
	s := toString(v)
	if s == "" || strings.EqualFold(s, "nan") {
		return decimal.NullDecimal{}, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.NullDecimal{}, errInvalidValue
	}
	return decimal.NewNullDecimal(d), nil
}

// toBoardType accepts the integer encoding (native or as text) as well as
// text tags.
func toBoardType(v any) models.BoardType {
	switch x := v.(type) {
	case int64:
		return models.BoardTypeFromCode(x)
	case float64:
		if x == math.Trunc(x) {
			return models.BoardTypeFromCode(int64(x))
		}
	case decimal.Decimal:
		if x.IsInteger() {
			return models.BoardTypeFromCode(x.IntPart())
		}
	}
	s := strings.TrimSpace(toString(v))
	if code, err := strconv.ParseInt(s, 10, 64); err == nil {
		return models.BoardTypeFromCode(code)
	}
	// integer codes written through a float column, e.g. "1.0"
	if d, err := decimal.NewFromString(s); err == nil && d.IsInteger() {
		return models.BoardTypeFromCode(d.IntPart())
	}
	return models.BoardTypeFromText(s)
}
