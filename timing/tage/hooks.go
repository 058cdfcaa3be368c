package tage

import "github.com/sarchlab/akita/v4/sim"

// Hook positions invoked by Update.
var (
	// HookPosResolve fires once per Update. Item is the Lookup the outcome
	// was scored against, Detail is the outcome.
	HookPosResolve = &sim.HookPos{Name: "TAGE Resolve"}

	// HookPosAllocate fires when a tagged slot is claimed. Item is an
	// Allocation.
	HookPosAllocate = &sim.HookPos{Name: "TAGE Allocate"}

	// HookPosAge fires when no slot was free and the longer components'
	// usefulness was aged. Item is the Lookup.
	HookPosAge = &sim.HookPos{Name: "TAGE Age"}
)
