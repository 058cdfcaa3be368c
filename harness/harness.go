// Package harness replays branch workloads through TAGE predictors and
// reports their accuracy.
package harness

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/sarchlab/tagesim/timing/tage"
	"github.com/sarchlab/tagesim/trace"
)

// cancelCheckInterval is how many branches run between context checks.
const cancelCheckInterval = 4096

// Workload is one branch stream. Exactly one of Records and Path is set.
type Workload struct {
	// Name identifies the workload.
	Name string

	// Description explains what the workload exercises.
	Description string

	// Records is an in-memory trace.
	Records []trace.Record

	// Path is a text trace file, streamed when the workload runs.
	Path string
}

// FileWorkload creates a workload that streams a trace file.
func FileWorkload(path string) Workload {
	return Workload{
		Name:        path,
		Description: "trace file",
		Path:        path,
	}
}

// Harness runs workloads and reports results.
type Harness struct {
	config    Config
	workloads []Workload
}

// NewHarness creates a new harness.
func NewHarness(config Config) *Harness {
	if config.Output == nil {
		config.Output = os.Stdout
	}
	return &Harness{
		config:    config,
		workloads: []Workload{},
	}
}

// AddWorkload adds a workload to the harness.
func (h *Harness) AddWorkload(w Workload) {
	h.workloads = append(h.workloads, w)
}

// AddWorkloads adds multiple workloads to the harness.
func (h *Harness) AddWorkloads(workloads []Workload) {
	h.workloads = append(h.workloads, workloads...)
}

// RunAll executes every workload, each on a fresh predictor, and returns
// the results in the order the workloads were added. Workloads run
// concurrently up to the configured parallelism; a predictor is never shared
// between goroutines.
func (h *Harness) RunAll(ctx context.Context) ([]Result, error) {
	if err := h.config.Validate(); err != nil {
		return nil, err
	}

	results := make([]Result, len(h.workloads))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(h.config.Parallelism)

	for i, w := range h.workloads {
		g.Go(func() error {
			r, err := h.runWorkload(ctx, w)
			if err != nil {
				return errors.Wrapf(err, "workload %s", w.Name)
			}
			results[i] = r
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}

func (h *Harness) runWorkload(ctx context.Context, w Workload) (Result, error) {
	logger := log.WithField("workload", w.Name)

	src, closer, err := openWorkload(w)
	if err != nil {
		return Result{}, err
	}
	defer closer()

	p, err := tage.New(h.config.Predictor)
	if err != nil {
		return Result{}, err
	}
	p.SetName(w.Name)

	tracer := newWindowTracer(h.config.WindowSize, logger)
	p.AcceptHook(tracer)

	logger.Debug("workload started")
	start := time.Now()

	var history trace.History
	for n := 0; ; n++ {
		if n%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return Result{}, err
			}
		}

		rec, err := src.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return Result{}, err
		}

		predicted := p.Predict(rec.PC, history.Value())
		p.Update(rec.PC, history.Value(), rec.Taken)
		if tracer.last.Taken != predicted {
			return Result{}, errors.Errorf(
				"branch %d (pc %#x): update scored %v, predict returned %v",
				n, rec.PC, tracer.last.Taken, predicted)
		}
		history.Push(rec.Taken)
	}

	result := newResult(w, p.Stats(), tracer.windows)
	result.Timeline = tracer.timeline
	result.WallTime = time.Since(start)

	logger.WithFields(log.Fields{
		"branches": result.Branches,
		"accuracy": result.AccuracyPercent,
		"wall":     result.WallTime,
	}).Debug("workload finished")

	return result, nil
}

func openWorkload(w Workload) (trace.Source, func(), error) {
	if w.Path == "" {
		return trace.NewSliceSource(w.Records), func() {}, nil
	}

	f, err := os.Open(w.Path)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "failed to open trace %q", w.Path)
	}

	return trace.NewReader(f), func() { _ = f.Close() }, nil
}
