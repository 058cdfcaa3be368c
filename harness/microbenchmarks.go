package harness

import (
	"math/rand"

	"github.com/sarchlab/tagesim/trace"
)

// GetMicrobenchmarks returns the built-in synthetic branch kernels. Each
// targets one predictor behaviour.
func GetMicrobenchmarks() []Workload {
	return []Workload{
		alwaysTaken(),
		alternating(),
		loopExit(),
		correlatedPair(),
		nestedLoops(),
		biasedRandom(),
	}
}

// 1. Always taken - bimodal alone should saturate.
func alwaysTaken() Workload {
	records := make([]trace.Record, 5000)
	for i := range records {
		records[i] = trace.Record{PC: 0x400100, Taken: true}
	}

	return Workload{
		Name:        "always_taken",
		Description: "one branch, always taken - bimodal baseline",
		Records:     records,
	}
}

// 2. Alternating - needs one bit of history.
func alternating() Workload {
	records := make([]trace.Record, 5000)
	for i := range records {
		records[i] = trace.Record{PC: 0x400200, Taken: i%2 == 0}
	}

	return Workload{
		Name:        "alternating",
		Description: "one branch, T/N/T/N - shortest tagged history",
		Records:     records,
	}
}

// 3. Loop exit - a back edge taken 7 times then not taken once.
func loopExit() Workload {
	var records []trace.Record
	for iter := 0; iter < 600; iter++ {
		for i := 0; i < 8; i++ {
			records = append(records, trace.Record{PC: 0x400300, Taken: i != 7})
		}
	}

	return Workload{
		Name:        "loop_exit",
		Description: "8-trip loop back edge - exit needs 8 bits of history",
		Records:     records,
	}
}

// 4. Correlated pair - the second branch repeats the first.
func correlatedPair() Workload {
	rng := rand.New(rand.NewSource(1))

	var records []trace.Record
	for i := 0; i < 2500; i++ {
		t := rng.Intn(2) == 0
		records = append(records,
			trace.Record{PC: 0x400400, Taken: t},
			trace.Record{PC: 0x400440, Taken: t},
		)
	}

	return Workload{
		Name:        "correlated_pair",
		Description: "random branch followed by a copy - global correlation",
		Records:     records,
	}
}

// 5. Nested loops - inner trip count 12, outer 4, with an if inside.
func nestedLoops() Workload {
	var records []trace.Record
	for rep := 0; rep < 100; rep++ {
		for outer := 0; outer < 4; outer++ {
			for inner := 0; inner < 12; inner++ {
				records = append(records,
					trace.Record{PC: 0x400510, Taken: inner%3 == 0},
					trace.Record{PC: 0x400520, Taken: inner != 11},
				)
			}
			records = append(records, trace.Record{PC: 0x400530, Taken: outer != 3})
		}
	}

	return Workload{
		Name:        "nested_loops",
		Description: "12x4 loop nest with a periodic if - long history",
		Records:     records,
	}
}

// 6. Biased random - 90% taken with no pattern to learn.
func biasedRandom() Workload {
	rng := rand.New(rand.NewSource(2))

	records := make([]trace.Record, 5000)
	for i := range records {
		records[i] = trace.Record{PC: 0x400600, Taken: rng.Intn(10) != 0}
	}

	return Workload{
		Name:        "biased_random",
		Description: "one branch, 90% taken at random - noise tolerance",
		Records:     records,
	}
}
