package harness

import (
	"github.com/davecgh/go-spew/spew"
	"github.com/sarchlab/akita/v4/sim"
	log "github.com/sirupsen/logrus"

	"github.com/sarchlab/tagesim/timing/tage"
)

// AllocationEvent records a tagged slot claimed while replaying a workload.
type AllocationEvent struct {
	// Branch is the zero-based position of the mispredicted branch.
	Branch uint64 `json:"branch"`
	// Component is the tagged component that received the slot, e.g. "T2".
	Component string `json:"component"`
	// PC is the branch address.
	PC uint64 `json:"pc"`
}

// windowTracer is a predictor hook that scores every resolved branch, folds
// the scores into fixed-size accuracy windows and records when each tagged
// slot was claimed.
type windowTracer struct {
	size     int
	logger   *log.Entry
	branches uint64
	seen     int
	correct  int
	windows  []float64
	timeline []AllocationEvent
	last     tage.Lookup
}

func newWindowTracer(size int, logger *log.Entry) *windowTracer {
	return &windowTracer{size: size, logger: logger}
}

// Func implements sim.Hook.
func (t *windowTracer) Func(ctx sim.HookCtx) {
	switch ctx.Pos {
	case tage.HookPosResolve:
		t.resolve(ctx.Item.(tage.Lookup), ctx.Detail.(bool))
	case tage.HookPosAllocate:
		a := ctx.Item.(tage.Allocation)
		// Allocation fires inside Update, before the branch resolves.
		t.timeline = append(t.timeline, AllocationEvent{
			Branch:    t.branches,
			Component: a.Component.String(),
			PC:        a.PC,
		})
		if t.logger.Logger.IsLevelEnabled(log.TraceLevel) {
			t.logger.WithFields(log.Fields{
				"component": a.Component.String(),
				"index":     a.Index,
				"tag":       a.Tag,
			}).Tracef("allocate pc=%#x", a.PC)
		}
	}
}

func (t *windowTracer) resolve(l tage.Lookup, taken bool) {
	t.last = l
	t.branches++
	t.seen++
	if l.Taken == taken {
		t.correct++
	} else if t.logger.Logger.IsLevelEnabled(log.TraceLevel) {
		t.logger.Tracef("mispredict, outcome=%v\n%s", taken, spew.Sdump(l))
	}

	if t.seen == t.size {
		t.windows = append(t.windows, float64(t.correct)/float64(t.size)*100)
		t.seen = 0
		t.correct = 0
	}
}
