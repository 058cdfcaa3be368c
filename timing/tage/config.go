package tage

import (
	"github.com/pkg/errors"
)

// Fixed geometry of the predictor.
const (
	// BimodalSize is the number of entries in the bimodal table.
	BimodalSize = 4096

	// TaggedSize is the number of entries in each tagged component.
	TaggedSize = 1024

	// NumComponents is the number of tagged components (T1..T4).
	NumComponents = 4

	// BimodalCounterBits is the width of a bimodal counter.
	BimodalCounterBits = 2

	// PredictionCounterBits is the width of a tagged prediction counter.
	PredictionCounterBits = 3

	// UsefulnessCounterBits is the width of a tagged usefulness counter.
	UsefulnessCounterBits = 2

	// MetaCounterBits is the width of the global meta-confidence counter.
	MetaCounterBits = 4

	// TagChunk is the fold width used by ComputeTag. Tags are 8 bits.
	TagChunk = 256

	// MaxHistoryLength is the longest history a component may use. The
	// hash inputs are 32 bits wide.
	MaxHistoryLength = 32

	// minTaggedSize keeps the fourth index chunk below the table size.
	minTaggedSize = 256
)

// DefaultHistoryLengths are the history lengths of T1..T4.
var DefaultHistoryLengths = [NumComponents]uint{4, 8, 16, 32}

// Config holds the construction-time geometry of a predictor.
type Config struct {
	// BimodalSize is the number of bimodal counters. Default: 4096.
	BimodalSize uint32 `json:"bimodal_size"`

	// TaggedSize is the number of entries per tagged component. Must be a
	// power of two no smaller than 256. Default: 1024.
	TaggedSize uint32 `json:"tagged_size"`

	// BimodalCounterBits is the bimodal counter width. Default: 2.
	BimodalCounterBits uint `json:"bimodal_counter_bits"`

	// PredictionCounterBits is the tagged prediction counter width.
	// Default: 3.
	PredictionCounterBits uint `json:"prediction_counter_bits"`

	// UsefulnessCounterBits is the tagged usefulness counter width.
	// Default: 2.
	UsefulnessCounterBits uint `json:"usefulness_counter_bits"`

	// MetaCounterBits is the meta-confidence counter width. Default: 4.
	MetaCounterBits uint `json:"meta_counter_bits"`

	// HistoryLengths lists how many low history bits each component hashes,
	// shortest first. Default: 4, 8, 16, 32.
	HistoryLengths [NumComponents]uint `json:"history_lengths"`
}

// DefaultConfig returns the reference geometry.
func DefaultConfig() Config {
	return Config{
		BimodalSize:           BimodalSize,
		TaggedSize:            TaggedSize,
		BimodalCounterBits:    BimodalCounterBits,
		PredictionCounterBits: PredictionCounterBits,
		UsefulnessCounterBits: UsefulnessCounterBits,
		MetaCounterBits:       MetaCounterBits,
		HistoryLengths:        DefaultHistoryLengths,
	}
}

// Validate checks that the geometry is one the hash functions and counters
// can represent.
func (c Config) Validate() error {
	if c.BimodalSize == 0 {
		return errors.New("bimodal_size must be > 0")
	}
	if c.TaggedSize < minTaggedSize || c.TaggedSize&(c.TaggedSize-1) != 0 {
		return errors.Errorf(
			"tagged_size must be a power of two >= %d, got %d",
			minTaggedSize, c.TaggedSize)
	}
	if err := checkWidth("bimodal_counter_bits", c.BimodalCounterBits, 1); err != nil {
		return err
	}
	if err := checkWidth("prediction_counter_bits", c.PredictionCounterBits, 2); err != nil {
		return err
	}
	if err := checkWidth("usefulness_counter_bits", c.UsefulnessCounterBits, 1); err != nil {
		return err
	}
	if err := checkWidth("meta_counter_bits", c.MetaCounterBits, 1); err != nil {
		return err
	}

	prev := uint(0)
	for i, l := range c.HistoryLengths {
		if l == 0 || l > MaxHistoryLength {
			return errors.Errorf(
				"history_lengths[%d] must be in [1, %d], got %d",
				i, MaxHistoryLength, l)
		}
		if l <= prev {
			return errors.Errorf(
				"history_lengths must be strictly increasing, got %v",
				c.HistoryLengths)
		}
		prev = l
	}

	return nil
}

func checkWidth(name string, bits, lo uint) error {
	if bits < lo || bits > 16 {
		return errors.Errorf("%s must be in [%d, 16], got %d", name, lo, bits)
	}
	return nil
}

func counterMax(bits uint) Counter {
	return Counter(1)<<bits - 1
}
