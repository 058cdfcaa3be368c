package tage

// Stats holds statistics for a predictor. Only Update changes them.
type Stats struct {
	// Predictions is the number of resolved branches.
	Predictions uint64
	// Correct is the number of correct predictions.
	Correct uint64
	// Mispredictions is the number of incorrect predictions.
	Mispredictions uint64
	// BimodalProvided counts branches with no tagged hit.
	BimodalProvided uint64
	// ProviderHits counts branches provided by each tagged component.
	ProviderHits [NumComponents]uint64
	// WeakProviders counts branches whose provider looked freshly allocated.
	WeakProviders uint64
	// AltSelected counts weak providers overruled by the alternate.
	AltSelected uint64
	// Allocations counts slots claimed in each tagged component.
	Allocations [NumComponents]uint64
	// Agings counts mispredictions that found no free slot.
	Agings uint64
}

func (s *Stats) record(l Lookup, taken bool) {
	s.Predictions++
	if l.Taken == taken {
		s.Correct++
	} else {
		s.Mispredictions++
	}

	if i, ok := l.Provider.Component(); ok {
		s.ProviderHits[i]++
	} else {
		s.BimodalProvided++
	}

	if l.WeakProvider {
		s.WeakProviders++
	}
	if l.UsedAlt {
		s.AltSelected++
	}
}

// Accuracy returns the prediction accuracy as a percentage.
func (s Stats) Accuracy() float64 {
	if s.Predictions == 0 {
		return 0
	}
	return float64(s.Correct) / float64(s.Predictions) * 100
}

// MispredictionRate returns the misprediction rate as a percentage.
func (s Stats) MispredictionRate() float64 {
	if s.Predictions == 0 {
		return 0
	}
	return float64(s.Mispredictions) / float64(s.Predictions) * 100
}

// TotalAllocations sums allocations over all components.
func (s Stats) TotalAllocations() uint64 {
	var total uint64
	for _, n := range s.Allocations {
		total += n
	}
	return total
}
