package harness

import (
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/montanaflynn/stats"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/stat"

	"github.com/sarchlab/tagesim/timing/tage"
)

// Result holds the outcome of one workload.
type Result struct {
	// Name identifies the workload
	Name string `json:"name"`

	// Description explains what the workload exercises
	Description string `json:"description"`

	// Branches is the number of resolved branches
	Branches uint64 `json:"branches"`

	// Correct is the number of correct predictions
	Correct uint64 `json:"correct"`

	// Mispredictions is the number of incorrect predictions
	Mispredictions uint64 `json:"mispredictions"`

	// AccuracyPercent is Correct / Branches
	AccuracyPercent float64 `json:"accuracy_percent"`

	// BimodalProvided counts branches with no tagged hit
	BimodalProvided uint64 `json:"bimodal_provided"`

	// ProviderHits counts branches provided by T1..T4
	ProviderHits [tage.NumComponents]uint64 `json:"provider_hits"`

	// AltSelected counts weak providers overruled by the alternate
	AltSelected uint64 `json:"alt_selected"`

	// Allocations counts slots claimed in T1..T4
	Allocations [tage.NumComponents]uint64 `json:"allocations"`

	// Agings counts mispredictions that found no free slot
	Agings uint64 `json:"agings"`

	// Window summarises per-window accuracy
	Window WindowSummary `json:"window"`

	// Windows is the accuracy of each full window, in percent
	Windows []float64 `json:"windows,omitempty"`

	// Timeline lists every allocation in replay order
	Timeline []AllocationEvent `json:"timeline,omitempty"`

	// WallTime is the actual time taken to replay the workload
	WallTime time.Duration `json:"wall_time_ns"`
}

// WindowSummary describes the spread of windowed accuracy.
type WindowSummary struct {
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
	Median float64 `json:"median"`
	P5     float64 `json:"p5"`
}

func newResult(w Workload, s tage.Stats, windows []float64) Result {
	return Result{
		Name:            w.Name,
		Description:     w.Description,
		Branches:        s.Predictions,
		Correct:         s.Correct,
		Mispredictions:  s.Mispredictions,
		AccuracyPercent: s.Accuracy(),
		BimodalProvided: s.BimodalProvided,
		ProviderHits:    s.ProviderHits,
		AltSelected:     s.AltSelected,
		Allocations:     s.Allocations,
		Agings:          s.Agings,
		Window:          summarizeWindows(windows),
		Windows:         windows,
	}
}

// summarizeWindows computes the spread of window accuracies. The 5th
// percentile falls back to the minimum when there are too few windows for
// it to be defined.
func summarizeWindows(windows []float64) WindowSummary {
	summary := WindowSummary{Count: len(windows)}
	if len(windows) == 0 {
		return summary
	}

	if len(windows) == 1 {
		summary.Mean = windows[0]
	} else {
		summary.Mean, summary.StdDev = stat.MeanStdDev(windows, nil)
	}

	summary.Median, _ = stats.Median(windows)

	p5, err := stats.Percentile(windows, 5)
	if err != nil || math.IsNaN(p5) {
		p5, _ = stats.Min(windows)
	}
	summary.P5 = p5

	return summary
}

// PrintResults outputs results in a human-readable format.
func (h *Harness) PrintResults(results []Result) {
	out := h.config.Output

	_, _ = fmt.Fprintln(out, "=== TAGE Predictor Results ===")
	_, _ = fmt.Fprintln(out, "")

	for _, r := range results {
		_, _ = fmt.Fprintf(out, "Workload: %s\n", r.Name)
		_, _ = fmt.Fprintf(out, "  Description: %s\n", r.Description)
		_, _ = fmt.Fprintf(out, "  Branches:        %d\n", r.Branches)
		_, _ = fmt.Fprintf(out, "  Correct:         %d\n", r.Correct)
		_, _ = fmt.Fprintf(out, "  Mispredictions:  %d\n", r.Mispredictions)
		_, _ = fmt.Fprintf(out, "  Accuracy:        %.2f%%\n", r.AccuracyPercent)

		_, _ = fmt.Fprintln(out, "  --- Providers ---")
		_, _ = fmt.Fprintf(out, "  Bimodal:         %d\n", r.BimodalProvided)
		for i, n := range r.ProviderHits {
			_, _ = fmt.Fprintf(out, "  %-16s %d\n", tage.Component(i).String()+":", n)
		}
		_, _ = fmt.Fprintf(out, "  Alt Selected:    %d\n", r.AltSelected)

		_, _ = fmt.Fprintln(out, "  --- Allocation ---")
		for i, n := range r.Allocations {
			_, _ = fmt.Fprintf(out, "  %-16s %d\n", tage.Component(i).String()+":", n)
		}
		_, _ = fmt.Fprintf(out, "  Agings:          %d\n", r.Agings)

		if r.Window.Count > 0 {
			_, _ = fmt.Fprintln(out, "  --- Windows ---")
			_, _ = fmt.Fprintf(out, "  Count:           %d\n", r.Window.Count)
			_, _ = fmt.Fprintf(out, "  Mean:            %.2f%% (std %.2f)\n", r.Window.Mean, r.Window.StdDev)
			_, _ = fmt.Fprintf(out, "  Median:          %.2f%%\n", r.Window.Median)
			_, _ = fmt.Fprintf(out, "  P5:              %.2f%%\n", r.Window.P5)
		}

		_, _ = fmt.Fprintf(out, "  Wall Time: %v\n", r.WallTime)
		_, _ = fmt.Fprintln(out, "")
	}
}

// PrintCSV outputs results in CSV format for easy comparison.
func (h *Harness) PrintCSV(results []Result) {
	_, _ = fmt.Fprintln(h.config.Output,
		"name,branches,correct,mispredictions,accuracy,bimodal,t1,t2,t3,t4,alt_selected,alloc_t1,alloc_t2,alloc_t3,alloc_t4,agings,window_mean,window_p5")

	for _, r := range results {
		_, _ = fmt.Fprintf(h.config.Output,
			"%s,%d,%d,%d,%.3f,%d,%d,%d,%d,%d,%d,%d,%d,%d,%d,%d,%.3f,%.3f\n",
			r.Name,
			r.Branches,
			r.Correct,
			r.Mispredictions,
			r.AccuracyPercent,
			r.BimodalProvided,
			r.ProviderHits[0],
			r.ProviderHits[1],
			r.ProviderHits[2],
			r.ProviderHits[3],
			r.AltSelected,
			r.Allocations[0],
			r.Allocations[1],
			r.Allocations[2],
			r.Allocations[3],
			r.Agings,
			r.Window.Mean,
			r.Window.P5,
		)
	}
}

// Report is the JSON document written by PrintJSON.
type Report struct {
	Metadata ReportMetadata `json:"metadata"`
	Results  []Result       `json:"results"`
	Summary  ReportSummary  `json:"summary"`
}

// ReportMetadata records when and how the results were produced.
type ReportMetadata struct {
	Timestamp  string      `json:"timestamp"`
	WindowSize int         `json:"window_size"`
	Predictor  tage.Config `json:"predictor"`
}

// ReportSummary aggregates all workloads.
type ReportSummary struct {
	TotalBranches       uint64        `json:"total_branches"`
	TotalMispredictions uint64        `json:"total_mispredictions"`
	AccuracyPercent     float64       `json:"accuracy_percent"`
	TotalWallTime       time.Duration `json:"total_wall_time_ns"`
}

// Summarize aggregates results across workloads.
func Summarize(results []Result) ReportSummary {
	var s ReportSummary
	var correct uint64
	for _, r := range results {
		s.TotalBranches += r.Branches
		s.TotalMispredictions += r.Mispredictions
		s.TotalWallTime += r.WallTime
		correct += r.Correct
	}
	if s.TotalBranches > 0 {
		s.AccuracyPercent = float64(correct) / float64(s.TotalBranches) * 100
	}
	return s
}

// PrintJSON outputs results in JSON format for automated comparison.
// Per-window accuracy and the allocation timeline are included only when
// KeepWindows and KeepTimeline are set.
func (h *Harness) PrintJSON(results []Result) error {
	out := make([]Result, len(results))
	copy(out, results)
	for i := range out {
		if !h.config.KeepWindows {
			out[i].Windows = nil
		}
		if !h.config.KeepTimeline {
			out[i].Timeline = nil
		}
	}

	report := Report{
		Metadata: ReportMetadata{
			Timestamp:  time.Now().UTC().Format(time.RFC3339),
			WindowSize: h.config.WindowSize,
			Predictor:  h.config.Predictor,
		},
		Results: out,
		Summary: Summarize(results),
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return errors.Wrap(err, "failed to serialize report")
	}

	_, err = fmt.Fprintln(h.config.Output, string(data))
	return errors.Wrap(err, "failed to write report")
}
