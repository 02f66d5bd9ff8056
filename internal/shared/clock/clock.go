package clock

import "time"

// Clock abstracts the wall clock so due dates and passcode expiry can be tested
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now().UTC()
}

// New returns the system clock (UTC)
func New() Clock {
	return realClock{}
}
