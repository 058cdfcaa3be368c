package tage

// Counter is an unsigned saturating counter. Its upper bound is owned by the
// table that holds it, so the same type serves 2-, 3- and 4-bit counters.
type Counter uint32

// Increment adds one unless the counter is already at limit.
func (c *Counter) Increment(limit Counter) {
	if *c < limit {
		*c++
	}
}

// Decrement subtracts one unless the counter is already zero.
func (c *Counter) Decrement() {
	if *c > 0 {
		*c--
	}
}

// Train moves the counter toward the outcome.
func (c *Counter) Train(taken bool, limit Counter) {
	if taken {
		c.Increment(limit)
	} else {
		c.Decrement()
	}
}

// Taken reports the counter's binary verdict: at or above the midpoint.
func (c Counter) Taken(limit Counter) bool {
	return c >= Midpoint(limit)
}

// Midpoint is the smallest value that predicts taken, (limit+1)/2.
func Midpoint(limit Counter) Counter {
	return (limit + 1) / 2
}
