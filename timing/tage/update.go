package tage

import (
	"github.com/sarchlab/akita/v4/sim"
)

// Allocation describes a tagged slot claimed after a misprediction.
type Allocation struct {
	PC        uint64
	History   uint64
	Component Source
	Index     uint32
	Tag       uint32
	Taken     bool
}

// Update trains the predictor with the resolved outcome of a branch.
//
// The (pc, history) pair must be the one passed to the Predict call this
// outcome answers. The provider and alternate are re-derived from the
// current tables, so any other pair silently trains the wrong entries.
func (p *Predictor) Update(pc, history uint64, taken bool) {
	l := p.lookup(pc, history)
	provider, hasProvider := l.Provider.Component()

	p.stats.record(l, taken)

	// The provider only earns or loses usefulness when it changed the
	// outcome relative to the alternate. Without a provider both verdicts
	// are the bimodal one.
	if hasProvider && l.Taken != l.AltTaken {
		c := p.components[provider]
		u := &c.entries[l.Indices[provider]].Useful
		if l.Taken == taken {
			u.Increment(c.usefulMax)
		} else {
			u.Decrement()
		}
	}

	if hasProvider {
		c := p.components[provider]
		c.entries[l.Indices[provider]].Counter.Train(taken, c.ctrMax)
	} else {
		p.bimodal.train(l.BimodalIndex, taken)
	}

	if l.Taken != taken && l.Provider.rank() < NumComponents-1 {
		p.allocate(pc, history, l, taken)
	}

	if hasProvider {
		if l.ProviderTaken == taken {
			p.meta.Increment(p.metaMax)
		}
		if l.AltTaken == taken {
			p.meta.Decrement()
		}
	}

	p.InvokeHook(sim.HookCtx{
		Domain: p,
		Pos:    HookPosResolve,
		Item:   l,
		Detail: taken,
	})
}

// allocate claims a slot in a component with longer history than the
// provider. When two components have a free (useless) slot the throttle
// picks the shorter one twice, then the longer one once. When none is free
// the candidates' usefulness is aged instead.
func (p *Predictor) allocate(pc, history uint64, l Lookup, taken bool) {
	first, second := -1, -1
	for i := l.Provider.rank() + 1; i < NumComponents; i++ {
		if p.components[i].entries[l.Indices[i]].Useful != 0 {
			continue
		}
		if first < 0 {
			first = i
			continue
		}
		second = i
		break
	}

	if first < 0 {
		p.age(l)
		return
	}

	target := first
	if second >= 0 {
		if p.throttle <= 1 {
			p.throttle++
		} else {
			target = second
			p.throttle = 0
		}
	}

	p.components[target].allocate(l.Indices[target], l.Tags[target], taken)
	p.stats.Allocations[target]++

	p.InvokeHook(sim.HookCtx{
		Domain: p,
		Pos:    HookPosAllocate,
		Item: Allocation{
			PC:        pc,
			History:   history,
			Component: Component(target),
			Index:     l.Indices[target],
			Tag:       l.Tags[target],
			Taken:     taken,
		},
	})
}

func (p *Predictor) age(l Lookup) {
	for i := l.Provider.rank() + 1; i < NumComponents; i++ {
		p.components[i].entries[l.Indices[i]].Useful.Decrement()
	}
	p.stats.Agings++

	p.InvokeHook(sim.HookCtx{
		Domain: p,
		Pos:    HookPosAge,
		Item:   l,
	})
}
