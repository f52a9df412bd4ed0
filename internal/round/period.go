package round

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"digitdraw/pkg/realtime"
)

// Daily reset in IST. Round index 1 starts at this time of day.
const (
	ResetHour   = 5
	ResetMinute = 30

	minutesPerDay = 24 * 60
	resetMinutes  = ResetHour*60 + ResetMinute

	// periodInfix sits between the date and the round index.
	periodInfix = "100010000"
)

// PeriodData is recomputed on every query and never stored.
type PeriodData struct {
	Period      string
	RoundIndex  int
	SecondsLeft int
	// GameDate is the calendar date the round belongs to; before the reset
	// it is the previous day.
	GameDate time.Time
}

// ComputePeriod derives the round index, period id and countdown for an instant.
func ComputePeriod(now time.Time) PeriodData {
	local := Local(now)
	idx := RoundIndex(local)
	day := GameDate(local)
	return PeriodData{
		Period:      FormatPeriod(day, idx),
		RoundIndex:  idx,
		SecondsLeft: realtime.SecondsPerMinute.Remaining(local),
		GameDate:    day,
	}
}

// RoundIndex counts minutes since the last reset, starting at 1.
func RoundIndex(now time.Time) int {
	local := Local(now)
	m := local.Hour()*60 + local.Minute()
	if m >= resetMinutes {
		return m - resetMinutes + 1
	}
	return (minutesPerDay - resetMinutes) + m + 1
}

// GameDate returns midnight of the gaming day containing now: the calendar
// date, shifted back one day when now precedes the reset.
func GameDate(now time.Time) time.Time {
	local := Local(now)
	day := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, IST)
	if local.Hour()*60+local.Minute() < resetMinutes {
		day = day.AddDate(0, 0, -1)
	}
	return day
}

// FormatPeriod builds YYYYMMDD + infix + index padded to three digits.
// Indices above 999 print in full.
func FormatPeriod(day time.Time, idx int) string {
	return fmt.Sprintf("%s%s%03d", day.Format("20060102"), periodInfix, idx)
}

// ErrMalformedPeriod is returned by ParsePeriod.
var ErrMalformedPeriod = errors.New("malformed period")

// ParsePeriod splits a period id back into its gaming day and round index.
func ParsePeriod(period string) (time.Time, int, error) {
	const dateLen = len("20060102")
	if len(period) < dateLen+len(periodInfix)+3 || period[dateLen:dateLen+len(periodInfix)] != periodInfix {
		return time.Time{}, 0, fmt.Errorf("%w: %q", ErrMalformedPeriod, period)
	}
	day, err := time.ParseInLocation("20060102", period[:dateLen], IST)
	if err != nil {
		return time.Time{}, 0, fmt.Errorf("%w: %q: %v", ErrMalformedPeriod, period, err)
	}
	idx, err := strconv.Atoi(period[dateLen+len(periodInfix):])
	if err != nil || idx < 1 || idx > minutesPerDay {
		return time.Time{}, 0, fmt.Errorf("%w: %q: round index", ErrMalformedPeriod, period)
	}
	return day, idx, nil
}
