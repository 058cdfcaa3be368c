package tage

// bimodalTable is the untagged base predictor: one saturating counter per
// program-counter bucket.
type bimodalTable struct {
	counters []Counter
	max      Counter
}

func newBimodalTable(size uint32, bits uint) *bimodalTable {
	return &bimodalTable{
		counters: make([]Counter, size),
		max:      counterMax(bits),
	}
}

func (b *bimodalTable) index(pc uint64) uint32 {
	return BimodalIndex(pc, uint32(len(b.counters)))
}

func (b *bimodalTable) taken(index uint32) bool {
	return b.counters[index].Taken(b.max)
}

func (b *bimodalTable) train(index uint32, taken bool) {
	b.counters[index].Train(taken, b.max)
}

func (b *bimodalTable) reset() {
	for i := range b.counters {
		b.counters[i] = 0
	}
}
