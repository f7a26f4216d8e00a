package timewindow

import (
	stderrors "errors"
	"fmt"
	"testing"
	"time"

	"menu-workers/internal/common/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(t *testing.T, s string) time.Time {
	t.Helper()
	ts, err := time.Parse("2006-01-02T15:04", s)
	require.NoError(t, err)
	return ts
}

func TestInDateRange(t *testing.T) {
	tests := []struct {
		name       string
		start, end string
		now        string
		want       bool
	}{
		{"inside", "2024-06-01", "2024-08-31", "2024-07-04T15:00", true},
		{"start inclusive", "2024-06-01", "2024-08-31", "2024-06-01T00:00", true},
		{"end inclusive", "2024-06-01", "2024-08-31", "2024-08-31T23:59", true},
		{"before", "2024-06-01", "2024-08-31", "2024-05-31T23:59", false},
		{"after", "2024-06-01", "2024-08-31", "2024-09-01T00:00", false},
		{"single day", "2024-12-25", "2024-12-25", "2024-12-25T12:00", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := InDateRange(tt.start, tt.end, at(t, tt.now))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestInDateRange_UsesNowLocation(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*3600)
	// 2024-05-31T20:00Z is already June 1st in Tokyo.
	now := time.Date(2024, 5, 31, 20, 0, 0, 0, time.UTC)

	got, err := InDateRange("2024-06-01", "2024-06-30", now)
	require.NoError(t, err)
	assert.False(t, got)

	got, err = InDateRange("2024-06-01", "2024-06-30", now.In(tokyo))
	require.NoError(t, err)
	assert.True(t, got)
}

func TestInTimeRange(t *testing.T) {
	tests := []struct {
		name       string
		start, end string
		clock      string
		want       bool
	}{
		{"daytime inside", "11:00", "21:00", "15:00", true},
		{"daytime start inclusive", "11:00", "21:00", "11:00", true},
		{"daytime end inclusive", "11:00", "21:00", "21:00", true},
		{"daytime before", "11:00", "21:00", "10:59", false},
		{"daytime after", "11:00", "21:00", "21:01", false},
		{"overnight late", "22:00", "06:00", "23:30", true},
		{"overnight early", "22:00", "06:00", "03:15", true},
		{"overnight start", "22:00", "06:00", "22:00", true},
		{"overnight end", "22:00", "06:00", "06:00", true},
		{"overnight midday", "22:00", "06:00", "12:00", false},
		{"zero width", "09:00", "09:00", "09:00", false},
		{"zero width elsewhere", "09:00", "09:00", "10:00", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := InTimeRange(tt.start, tt.end, at(t, "2024-07-04T"+tt.clock))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// Exhaustive check over every minute of the day against the closed-form rule.
func TestInTimeRange_AllMinutes(t *testing.T) {
	pairs := [][2]string{{"00:00", "23:59"}, {"08:30", "17:45"}, {"23:00", "01:00"}, {"18:00", "06:00"}}
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	for _, p := range pairs {
		for m := 0; m < 24*60; m++ {
			now := base.Add(time.Duration(m) * time.Minute)
			clock := now.Format(ClockLayout)

			var want bool
			if p[0] <= p[1] {
				want = p[0] <= clock && clock <= p[1]
			} else {
				want = clock >= p[0] || clock <= p[1]
			}

			got, err := InTimeRange(p[0], p[1], now)
			require.NoError(t, err)
			require.Equal(t, want, got, fmt.Sprintf("%s-%s at %s", p[0], p[1], clock))
		}
	}
}

func TestMalformedInputIsFormatError(t *testing.T) {
	now := at(t, "2024-07-04T15:00")

	dates := [][2]string{
		{"2024-6-01", "2024-08-31"},
		{"2024-06-01", "31/08/2024"},
		{"2024-13-01", "2024-12-31"},
		{"", "2024-12-31"},
	}
	for _, d := range dates {
		_, err := InDateRange(d[0], d[1], now)
		assert.True(t, stderrors.Is(err, errors.ErrFormat), "%v", d)
	}

	clocks := [][2]string{
		{"9:00", "17:00"},
		{"09:00", "24:00"},
		{"09:60", "17:00"},
		{"0900", "1700"},
		{"", "17:00"},
		{"09:00 ", "17:00"},
	}
	for _, c := range clocks {
		_, err := InTimeRange(c[0], c[1], now)
		assert.True(t, stderrors.Is(err, errors.ErrFormat), "%v", c)
	}
}

func TestWindow_Contains(t *testing.T) {
	summer := Window{StartDate: "2024-06-01", EndDate: "2024-08-31", StartTime: "11:00", EndTime: "21:00"}
	late := Window{StartDate: "2024-01-01", EndDate: "2024-12-31", StartTime: "22:00", EndTime: "06:00"}

	ok, err := summer.Contains(at(t, "2024-07-04T15:00"))
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = late.Contains(at(t, "2024-07-04T23:30"))
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = late.Contains(at(t, "2024-07-04T12:00"))
	require.NoError(t, err)
	assert.False(t, ok)

	// A date miss does not hide a malformed clock.
	broken := Window{StartDate: "2020-01-01", EndDate: "2020-01-02", StartTime: "25:00", EndTime: "06:00"}
	_, err = broken.Contains(at(t, "2024-07-04T12:00"))
	assert.True(t, stderrors.Is(err, errors.ErrFormat))
}

func TestWindow_Validate(t *testing.T) {
	assert.NoError(t, Window{StartDate: "2024-06-01", EndDate: "2024-08-31", StartTime: "22:00", EndTime: "06:00"}.Validate())

	err := Window{StartDate: "2024-09-01", EndDate: "2024-08-31", StartTime: "11:00", EndTime: "21:00"}.Validate()
	assert.True(t, stderrors.Is(err, errors.ErrInvalidInput))

	err = Window{StartDate: "2024-06-01", EndDate: "2024-08-31", StartTime: "11:00", EndTime: "7pm"}.Validate()
	assert.True(t, stderrors.Is(err, errors.ErrFormat))
}

func TestParseInstant(t *testing.T) {
	tokyo, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)

	got, err := ParseInstant("now", "2024-07-04T15:30:00Z", tokyo)
	require.NoError(t, err)
	assert.Equal(t, "2024-07-05 00:30", got.Format(DateLayout+" "+ClockLayout))

	got, err = ParseInstant("now", "2024-07-04T15:30:00+02:00", nil)
	require.NoError(t, err)
	assert.Equal(t, time.UTC, got.Location())
	assert.Equal(t, 13, got.Hour())

	_, err = ParseInstant("now", "2024-07-04 15:30", nil)
	assert.True(t, stderrors.Is(err, errors.ErrFormat))
}
