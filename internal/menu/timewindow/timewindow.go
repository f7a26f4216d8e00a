// Package timewindow evaluates seasonal menu date and clock windows.
package timewindow

import (
	"regexp"
	"time"

	"menu-workers/internal/common/errors"
)

const (
	DateLayout  = "2006-01-02"
	ClockLayout = "15:04"
)

var clockPattern = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

// ValidateDate checks a YYYY-MM-DD calendar date.
func ValidateDate(field, s string) error {
	if len(s) != len(DateLayout) {
		return errors.NewFormatError(field, s, "YYYY-MM-DD")
	}
	if _, err := time.Parse(DateLayout, s); err != nil {
		return errors.NewFormatError(field, s, "YYYY-MM-DD")
	}
	return nil
}

// ValidateClock checks a zero-padded 24h HH:mm time.
func ValidateClock(field, s string) error {
	if !clockPattern.MatchString(s) {
		return errors.NewFormatError(field, s, "HH:mm")
	}
	return nil
}

// InDateRange reports whether now's calendar date lies in [start, end].
// The fixed-width layout makes string order match calendar order.
func InDateRange(start, end string, now time.Time) (bool, error) {
	if err := ValidateDate("startDate", start); err != nil {
		return false, err
	}
	if err := ValidateDate("endDate", end); err != nil {
		return false, err
	}
	today := now.Format(DateLayout)
	return start <= today && today <= end, nil
}

// InTimeRange reports whether now's clock lies in the daily window.
// start > end wraps past midnight; start == end is never active.
func InTimeRange(start, end string, now time.Time) (bool, error) {
	if err := ValidateClock("startTime", start); err != nil {
		return false, err
	}
	if err := ValidateClock("endTime", end); err != nil {
		return false, err
	}
	return clockIn(start, end, now.Format(ClockLayout)), nil
}

func clockIn(start, end, t string) bool {
	switch {
	case start == end:
		return false
	case start < end:
		return start <= t && t <= end
	default:
		return t >= start || t <= end
	}
}

// Window is a date range combined with a daily clock range.
type Window struct {
	StartDate string
	EndDate   string
	StartTime string
	EndTime   string
}

// Validate checks all four bounds without evaluating against a clock.
func (w Window) Validate() error {
	if err := ValidateDate("startDate", w.StartDate); err != nil {
		return err
	}
	if err := ValidateDate("endDate", w.EndDate); err != nil {
		return err
	}
	if w.StartDate > w.EndDate {
		return errors.NewInvalidInputError("startDate " + w.StartDate + " is after endDate " + w.EndDate)
	}
	if err := ValidateClock("startTime", w.StartTime); err != nil {
		return err
	}
	return ValidateClock("endTime", w.EndTime)
}

// Contains reports whether now falls inside both the date and clock ranges.
// Both ranges are validated even when the first one already excludes now.
func (w Window) Contains(now time.Time) (bool, error) {
	inDate, err := InDateRange(w.StartDate, w.EndDate, now)
	if err != nil {
		return false, err
	}
	inTime, err := InTimeRange(w.StartTime, w.EndTime, now)
	if err != nil {
		return false, err
	}
	return inDate && inTime, nil
}

// ParseInstant parses an RFC 3339 instant and converts it into loc, the zone
// whose calendar date and wall clock seasonal windows are written in.
func ParseInstant(field, s string, loc *time.Location) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, errors.NewFormatError(field, s, "RFC 3339 timestamp")
	}
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc), nil
}
