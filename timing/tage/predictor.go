// Package tage models the direction logic of a hybrid branch predictor: a
// bimodal base table plus four tagged components indexed with geometrically
// increasing global history, a meta-confidence counter that arbitrates for
// freshly allocated entries, and a throttle that spreads allocations.
//
// A Predictor serves one decision stream. Callers must serialize Predict and
// Update; the predictor does no locking.
package tage

import (
	"github.com/sarchlab/akita/v4/sim"
)

// Predictor is a bimodal + TAGE direction predictor.
type Predictor struct {
	*sim.HookableBase

	name   string
	config Config

	bimodal    *bimodalTable
	components [NumComponents]*component

	meta     Counter
	metaMax  Counter
	throttle uint32

	stats Stats
}

// New creates an initialized predictor with the given geometry.
func New(config Config) (*Predictor, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	p := &Predictor{
		HookableBase: sim.NewHookableBase(),
		name:         "TAGE",
		config:       config,
		bimodal:      newBimodalTable(config.BimodalSize, config.BimodalCounterBits),
		metaMax:      counterMax(config.MetaCounterBits),
	}
	for i := range p.components {
		p.components[i] = newComponent(
			config.TaggedSize,
			config.HistoryLengths[i],
			config.PredictionCounterBits,
			config.UsefulnessCounterBits,
		)
	}

	p.Initialize()

	return p, nil
}

// NewDefault creates a predictor with the reference geometry.
func NewDefault() *Predictor {
	p, err := New(DefaultConfig())
	if err != nil {
		panic(err)
	}
	return p
}

// Name returns the name used when the predictor invokes hooks.
func (p *Predictor) Name() string {
	return p.name
}

// SetName renames the predictor, typically after the workload it serves.
func (p *Predictor) SetName(name string) {
	p.name = name
}

// Config returns the predictor geometry.
func (p *Predictor) Config() Config {
	return p.config
}

// Initialize zeroes every table entry (counter, tag and usefulness),
// saturates the meta-confidence counter, clears the allocation throttle and
// resets statistics. Calling it again fully re-zeroes the predictor.
func (p *Predictor) Initialize() {
	p.bimodal.reset()
	for _, c := range p.components {
		c.reset()
	}

	p.meta = p.metaMax
	p.throttle = 0
	p.stats = Stats{}
}

// Predict returns the taken/not-taken prediction for a branch. It does not
// modify the predictor.
func (p *Predictor) Predict(pc, history uint64) bool {
	return p.lookup(pc, history).Taken
}

// Lookup returns the prediction together with the provider and alternate
// that produced it. It does not modify the predictor.
func (p *Predictor) Lookup(pc, history uint64) Lookup {
	return p.lookup(pc, history)
}

// Entry returns a copy of a tagged component slot.
func (p *Predictor) Entry(component int, index uint32) Entry {
	return p.components[component].entries[index]
}

// BimodalCounter returns the bimodal counter at index.
func (p *Predictor) BimodalCounter(index uint32) Counter {
	return p.bimodal.counters[index]
}

// MetaCounter returns the meta-confidence counter.
func (p *Predictor) MetaCounter() Counter {
	return p.meta
}

// Throttle returns the allocation throttle value.
func (p *Predictor) Throttle() uint32 {
	return p.throttle
}

// Limits returns the upper bounds of the bimodal, prediction, usefulness and
// meta-confidence counters.
func (p *Predictor) Limits() (bimodal, prediction, useful, meta Counter) {
	c := p.components[0]
	return p.bimodal.max, c.ctrMax, c.usefulMax, p.metaMax
}

// Stats returns the predictor statistics.
func (p *Predictor) Stats() Stats {
	return p.stats
}

// ResetStats clears the statistics without touching the tables.
func (p *Predictor) ResetStats() {
	p.stats = Stats{}
}
