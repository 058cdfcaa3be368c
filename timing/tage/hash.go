package tage

// ComputeTag folds the low 32 bits of pc XOR historyBits into an 8-bit tag
// by XOR-ing its four bytes. The chunks are taken by modulus and division.
func ComputeTag(pc uint64, historyBits uint32) uint32 {
	return fold(uint32(pc)^historyBits, TagChunk)
}

// ComputeIndex folds the low 32 bits of pc XOR historyBits into an index in
// [0, tableSize). tableSize must be a power of two no smaller than 256.
func ComputeIndex(pc uint64, historyBits uint32, tableSize uint32) uint32 {
	return fold(uint32(pc)^historyBits, tableSize)
}

// fold splits v into four chunks of width n and XORs them together. The
// last chunk keeps whatever bits remain above the third.
func fold(v, n uint32) uint32 {
	c0 := v % n
	c1 := (v / n) % n
	c2 := ((v / n) / n) % n
	c3 := ((v / n) / n) / n
	return c0 ^ c1 ^ c2 ^ c3
}

// HistoryBits returns the low length bits of the global history register.
func HistoryBits(history uint64, length uint) uint32 {
	if length >= MaxHistoryLength {
		return uint32(history)
	}
	return uint32(history & (uint64(1)<<length - 1))
}

// BimodalIndex maps a program counter to a bimodal slot.
func BimodalIndex(pc uint64, size uint32) uint32 {
	return uint32(pc % uint64(size))
}
