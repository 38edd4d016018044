package accesslog_test

import (
	"testing"
	"time"

	"github.com/Egor213/LogKeeper/internal/accesslog"
	"github.com/Egor213/LogKeeper/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recordAt(ts string) domain.LogRecord {
	return domain.LogRecord{
		Host:        "10.0.0.1",
		Identity:    "-",
		User:        "-",
		Timestamp:   "[" + ts,
		RequestLine: `"GET / HTTP/1.1"`,
		Status:      "200",
		Size:        "1",
	}
}

func day(t *testing.T, value string) time.Time {
	t.Helper()
	d, err := time.Parse(time.DateOnly, value)
	require.NoError(t, err)
	return d
}

func TestFilter(t *testing.T) {
	records := []domain.LogRecord{
		recordAt("09/Oct/2023:23:59:59"),
		recordAt("10/Oct/2023:00:00:00"),
		recordAt("10/Oct/2023:13:55:36"),
		recordAt("10/Oct/2023:23:59:59"),
		recordAt("11/Oct/2023:00:00:00"),
		recordAt("12/Oct/2023:08:00:00"),
	}

	testCases := []struct {
		name string
		rng  *domain.DateRange
		want []domain.LogRecord
	}{
		{
			name: "no range passes everything",
			rng:  nil,
			want: records,
		},
		{
			name: "single day includes both boundaries",
			rng:  &domain.DateRange{Start: day(t, "2023-10-10"), End: day(t, "2023-10-10")},
			want: records[1:4],
		},
		{
			name: "multi day range",
			rng:  &domain.DateRange{Start: day(t, "2023-10-10"), End: day(t, "2023-10-11")},
			want: records[1:5],
		},
		{
			name: "time of day in bounds is ignored",
			rng: &domain.DateRange{
				Start: time.Date(2023, time.October, 10, 13, 0, 0, 0, time.UTC),
				End:   time.Date(2023, time.October, 10, 13, 0, 0, 0, time.UTC),
			},
			want: records[1:4],
		},
		{
			name: "start after end",
			rng:  &domain.DateRange{Start: day(t, "2023-10-12"), End: day(t, "2023-10-10")},
			want: []domain.LogRecord{},
		},
		{
			name: "no matches",
			rng:  &domain.DateRange{Start: day(t, "2024-01-01"), End: day(t, "2024-12-31")},
			want: []domain.LogRecord{},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := accesslog.Filter(records, tc.rng)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestFilter_BadTimestampFailsWholeCall(t *testing.T) {
	records := []domain.LogRecord{
		recordAt("10/Oct/2023:13:55:36"),
		recordAt("not-a-date"),
	}
	rng := &domain.DateRange{Start: day(t, "2023-10-10"), End: day(t, "2023-10-10")}

	got, err := accesslog.Filter(records, rng)

	assert.ErrorIs(t, err, accesslog.ErrDateParse)
	assert.Nil(t, got)
}

func TestFilter_NilRangeSkipsTimestampParsing(t *testing.T) {
	records := []domain.LogRecord{recordAt("garbage")}

	got, err := accesslog.Filter(records, nil)

	require.NoError(t, err)
	assert.Equal(t, records, got)
}

func TestParseTimestamp(t *testing.T) {
	want := time.Date(2023, time.October, 10, 13, 55, 36, 0, time.UTC)

	for _, token := range []string{
		"[10/Oct/2023:13:55:36",
		"10/Oct/2023:13:55:36",
		"[10/Oct/2023:13:55:36]",
		"[10/oct/2023:13:55:36 +0000]",
	} {
		got, err := accesslog.ParseTimestamp(token)
		require.NoError(t, err, token)
		assert.True(t, want.Equal(got), token)
	}

	_, err := accesslog.ParseTimestamp("[2023-10-10T13:55:36")
	assert.ErrorIs(t, err, accesslog.ErrDateParse)
}

func TestNewDateRange(t *testing.T) {
	testCases := []struct {
		name    string
		from    string
		to      string
		want    *domain.DateRange
		wantErr error
	}{
		{
			name: "no bounds",
		},
		{
			name: "start only",
			from: "10/Oct/2023:13:55:36",
			want: &domain.DateRange{
				Start: time.Date(2023, time.October, 10, 13, 55, 36, 0, time.UTC),
				End:   time.Date(2023, time.October, 10, 13, 55, 36, 0, time.UTC),
			},
		},
		{
			name: "both bounds, mixed layouts",
			from: "10/Oct/2023",
			to:   "2023-10-12",
			want: &domain.DateRange{
				Start: time.Date(2023, time.October, 10, 0, 0, 0, 0, time.UTC),
				End:   time.Date(2023, time.October, 12, 0, 0, 0, 0, time.UTC),
			},
		},
		{
			name:    "end without start",
			to:      "10/Oct/2023",
			wantErr: accesslog.ErrMissingRangeStart,
		},
		{
			name:    "malformed start",
			from:    "yesterday",
			wantErr: accesslog.ErrDateParse,
		},
		{
			name:    "malformed end",
			from:    "10/Oct/2023",
			to:      "32/Oct/2023",
			wantErr: accesslog.ErrDateParse,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := accesslog.NewDateRange(tc.from, tc.to)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}
