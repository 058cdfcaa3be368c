package tage

// Entry is one slot of a tagged component.
type Entry struct {
	// Tag identifies the branch and history context that owns the slot.
	// Zero is a valid, matchable tag.
	Tag uint32
	// Counter is the direction counter.
	Counter Counter
	// Useful tracks whether the entry has beaten the alternate prediction.
	Useful Counter
}

// component is one tagged, history-indexed table.
type component struct {
	entries    []Entry
	historyLen uint
	ctrMax     Counter
	usefulMax  Counter
}

func newComponent(size uint32, historyLen uint, ctrBits, usefulBits uint) *component {
	return &component{
		entries:    make([]Entry, size),
		historyLen: historyLen,
		ctrMax:     counterMax(ctrBits),
		usefulMax:  counterMax(usefulBits),
	}
}

// probe returns the slot index and the tag the branch would carry in this
// component.
func (c *component) probe(pc, history uint64) (index, tag uint32) {
	bits := HistoryBits(history, c.historyLen)
	return ComputeIndex(pc, bits, uint32(len(c.entries))), ComputeTag(pc, bits)
}

func (c *component) hits(index, tag uint32) bool {
	return c.entries[index].Tag == tag
}

func (c *component) taken(index uint32) bool {
	return c.entries[index].Counter.Taken(c.ctrMax)
}

// weak reports whether the slot looks freshly allocated: never useful and
// still sitting on one of the two seed values around the midpoint.
func (c *component) weak(index uint32) bool {
	e := c.entries[index]
	mid := Midpoint(c.ctrMax)
	return e.Useful == 0 && (e.Counter == mid-1 || e.Counter == mid)
}

// allocate claims a slot for a new context, seeding the counter on the
// weak side of the observed outcome.
func (c *component) allocate(index, tag uint32, taken bool) {
	seed := Midpoint(c.ctrMax)
	if !taken {
		seed--
	}
	c.entries[index] = Entry{Tag: tag, Counter: seed, Useful: 0}
}

func (c *component) reset() {
	for i := range c.entries {
		c.entries[i] = Entry{}
	}
}
