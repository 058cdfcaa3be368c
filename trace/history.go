package trace

// History is a 64-bit global branch history register. The most recent
// outcome sits in bit 0.
type History uint64

// Push shifts in a resolved outcome.
func (h *History) Push(taken bool) {
	*h <<= 1
	if taken {
		*h |= 1
	}
}

// Value returns the register for use as a predictor input.
func (h History) Value() uint64 {
	return uint64(h)
}
