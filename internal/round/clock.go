package round

import "time"

// IST is the reference zone for every period and reset computation,
// regardless of where the server runs. Fixed offset, no tzdata lookup.
var IST = time.FixedZone("IST", 5*60*60+30*60)

// Clock abstracts time.Now so schedules can be driven by synthetic instants.
type Clock interface {
	Now() time.Time
}

// ISTClock reads the system clock and expresses it in IST.
type ISTClock struct{}

// Now returns the current instant in IST.
func (ISTClock) Now() time.Time {
	return time.Now().In(IST)
}

// FixedClock always returns the same instant, in IST.
type FixedClock struct {
	At time.Time
}

// Now returns At expressed in IST.
func (c FixedClock) Now() time.Time {
	return c.At.In(IST)
}

// Local converts any instant to IST.
func Local(t time.Time) time.Time {
	return t.In(IST)
}
