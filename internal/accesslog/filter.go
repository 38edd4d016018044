package accesslog

import (
	"strings"
	"time"

	"github.com/Egor213/LogKeeper/internal/domain"
)

// TimeLayout is the date format of the access-log date token.
const TimeLayout = "02/Jan/2006:15:04:05"

var rangeLayouts = []string{
	TimeLayout,
	"02/Jan/2006",
	time.DateOnly,
}

// ParseTimestamp decodes a record date token such as "[10/Oct/2023:13:55:36".
func ParseTimestamp(token string) (time.Time, error) {
	s := strings.TrimPrefix(token, "[")
	s = strings.TrimSuffix(s, "]")
	if fields := strings.Fields(s); len(fields) > 0 {
		s = fields[0]
	}

	t, err := time.ParseInLocation(TimeLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, &DateParseError{Value: token, Err: err}
	}
	return t, nil
}

// NewDateRange builds a range from user input. It returns nil when both
// bounds are empty, meaning no filtering. A missing end defaults to start.
func NewDateRange(from, to string) (*domain.DateRange, error) {
	from, to = strings.TrimSpace(from), strings.TrimSpace(to)
	if from == "" && to == "" {
		return nil, nil
	}
	if from == "" {
		return nil, ErrMissingRangeStart
	}

	start, err := parseBound(from)
	if err != nil {
		return nil, err
	}
	end := start
	if to != "" {
		if end, err = parseBound(to); err != nil {
			return nil, err
		}
	}

	return &domain.DateRange{Start: start, End: end}, nil
}

func parseBound(value string) (time.Time, error) {
	var err error
	for _, layout := range rangeLayouts {
		var t time.Time
		if t, err = time.ParseInLocation(layout, strings.TrimPrefix(value, "["), time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, &DateParseError{Value: value, Err: err}
}

// Filter keeps the records dated within rng, in their original order. A nil
// rng returns records unchanged. One unparsable timestamp fails the call.
func Filter(records []domain.LogRecord, rng *domain.DateRange) ([]domain.LogRecord, error) {
	if rng == nil {
		return records, nil
	}

	lo := startOfDay(rng.Start)
	hi := startOfDay(rng.End).AddDate(0, 0, 1).Add(-time.Nanosecond)

	filtered := make([]domain.LogRecord, 0, len(records))
	for _, rec := range records {
		t, err := ParseTimestamp(rec.Timestamp)
		if err != nil {
			return nil, err
		}
		if t.Before(lo) || t.After(hi) {
			continue
		}
		filtered = append(filtered, rec)
	}
	return filtered, nil
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
