package realtime

import "time"

// Cadence describes a fixed wall-clock rhythm: ticks every Step, grouped
// into cycles of Cycle length (e.g. one tick per second, one cycle per minute).
// It holds no game state; callers feed it the current time.
type Cadence struct {
	Step  time.Duration
	Cycle time.Duration
}

// SecondsPerMinute is the usual cadence: tick each second, cycle each minute.
var SecondsPerMinute = Cadence{Step: time.Second, Cycle: time.Minute}

// NextWake returns the next step boundary strictly after now.
func (c Cadence) NextWake(now time.Time) time.Time {
	if c.Step <= 0 {
		return now
	}
	return now.Truncate(c.Step).Add(c.Step)
}

// Offset returns how many whole steps into the current cycle now falls.
// Boundaries are computed on wall-clock fields so a zone offset with
// half hours (IST) still lines cycles up with the minute.
func (c Cadence) Offset(now time.Time) int {
	if c.Step <= 0 || c.Cycle <= 0 {
		return 0
	}
	sinceMidnight := time.Duration(now.Hour())*time.Hour +
		time.Duration(now.Minute())*time.Minute +
		time.Duration(now.Second())*time.Second +
		time.Duration(now.Nanosecond())
	return int((sinceMidnight % c.Cycle) / c.Step)
}

// Remaining returns the whole steps left in the current cycle, counting the
// current one (so a cycle of 60 one-second steps yields 60 at offset 0).
func (c Cadence) Remaining(now time.Time) int {
	if c.Step <= 0 {
		return 0
	}
	return int(c.Cycle/c.Step) - c.Offset(now)
}
