package tage

import "fmt"

// Source identifies the table that supplied a verdict: either the bimodal
// table or one of the tagged components. The zero value is Bimodal.
type Source struct {
	component int
	tagged    bool
}

// Bimodal is the Source of verdicts that fall back to the base predictor.
var Bimodal = Source{}

// Component returns the Source for tagged component i (0 is T1).
func Component(i int) Source {
	if i < 0 || i >= NumComponents {
		panic(fmt.Sprintf("tage: component %d out of range", i))
	}
	return Source{component: i, tagged: true}
}

// IsBimodal reports whether the verdict came from the base predictor.
func (s Source) IsBimodal() bool {
	return !s.tagged
}

// Component returns the tagged component index and true, or false for the
// bimodal source.
func (s Source) Component() (int, bool) {
	return s.component, s.tagged
}

// rank orders sources by history length; bimodal ranks below T1.
func (s Source) rank() int {
	if !s.tagged {
		return -1
	}
	return s.component
}

func (s Source) String() string {
	if !s.tagged {
		return "bimodal"
	}
	return fmt.Sprintf("T%d", s.component+1)
}

// Lookup is the full outcome of a prediction query.
type Lookup struct {
	// Taken is the final prediction.
	Taken bool
	// ProviderTaken is the provider's own verdict.
	ProviderTaken bool
	// AltTaken is the alternate's verdict.
	AltTaken bool
	// Provider is the longest-history component with a tag hit.
	Provider Source
	// Alt is the next shorter component with a tag hit.
	Alt Source
	// WeakProvider is set when the provider entry looked freshly allocated
	// and the meta-confidence counter arbitrated.
	WeakProvider bool
	// UsedAlt is set when that arbitration chose the alternate.
	UsedAlt bool

	// BimodalIndex is the bimodal slot of the branch.
	BimodalIndex uint32
	// Indices and Tags are the slot and tag computed for each component.
	Indices [NumComponents]uint32
	Tags    [NumComponents]uint32
}

// lookup runs the provider/alternate selection without touching any state.
func (p *Predictor) lookup(pc, history uint64) Lookup {
	l := Lookup{BimodalIndex: p.bimodal.index(pc)}
	for i, c := range p.components {
		l.Indices[i], l.Tags[i] = c.probe(pc, history)
	}

	base := p.bimodal.taken(l.BimodalIndex)
	l.ProviderTaken = base
	l.AltTaken = base

	provider := -1
	for i := NumComponents - 1; i >= 0; i-- {
		if p.components[i].hits(l.Indices[i], l.Tags[i]) {
			provider = i
			break
		}
	}
	if provider < 0 {
		l.Taken = base
		return l
	}

	l.Provider = Component(provider)
	l.ProviderTaken = p.components[provider].taken(l.Indices[provider])

	for j := provider - 1; j >= 0; j-- {
		if p.components[j].hits(l.Indices[j], l.Tags[j]) {
			l.Alt = Component(j)
			l.AltTaken = p.components[j].taken(l.Indices[j])
			break
		}
	}

	l.Taken = l.ProviderTaken
	if p.components[provider].weak(l.Indices[provider]) {
		l.WeakProvider = true
		if !p.meta.Taken(p.metaMax) {
			l.Taken = l.AltTaken
			l.UsedAlt = true
		}
	}

	return l
}
