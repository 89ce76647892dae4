package sim

// Clock tracks simulated time-of-day for one business day. Hour is
// only ever observed inside [OpenHour, CloseHour].
type Clock struct {
	Hour        float64
	DaysElapsed int
	OpenHour    float64
	CloseHour   float64
}

func NewClock(openHour, closeHour float64) *Clock {
	return &Clock{
		Hour:      openHour,
		OpenHour:  openHour,
		CloseHour: closeHour,
	}
}

// Advance adds simMinutes of simulated time and reports whether the
// business day has ended. The clock freezes exactly at CloseHour; it
// never overshoots.
func (c *Clock) Advance(simMinutes float64) (dayEnded bool) {
	if c.Hour >= c.CloseHour {
		return true
	}
	c.Hour += simMinutes / 60.0
	if c.Hour >= c.CloseHour {
		c.Hour = c.CloseHour
		return true
	}
	return false
}

// StartNextDay resets the clock to opening time and increments the
// day counter.
func (c *Clock) StartNextDay() {
	c.Hour = c.OpenHour
	c.DaysElapsed++
}
