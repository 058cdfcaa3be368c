// Command tagesim replays conditional-branch traces through the bimodal +
// TAGE predictor and reports prediction accuracy.
//
// Usage:
//
//	go run ./cmd/tagesim [flags] [trace ...]
//
// With no trace files the built-in synthetic kernels run instead.
//
// Flags:
//
//	-config       Path to harness configuration JSON file
//	-save-config  Write the effective configuration to a JSON file and exit
//	-csv          Output results in CSV format
//	-json         Output results in JSON format
//	-plot         Write a windowed accuracy chart (.png, .svg, .pdf)
//	-timeline     Include the allocation timeline in JSON output
//	-window       Branches per accuracy window (overrides the config)
//	-parallel     Workloads replayed at once (overrides the config)
//	-timeout      Abort after this long (0 = no limit)
//	-cpuprofile   Write a CPU profile to file
//	-v, -vv       Debug / trace logging
//
// Example:
//
//	# Built-in kernels, human-readable
//	go run ./cmd/tagesim
//
//	# Two traces, CSV, with a chart
//	go run ./cmd/tagesim -csv -plot acc.png gcc.trace mcf.trace > results.csv
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime/pprof"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/sarchlab/tagesim/harness"
)

var (
	configPath     = flag.String("config", "", "Path to harness configuration JSON file")
	saveConfigPath = flag.String("save-config", "", "Write the effective configuration to a JSON file and exit")
	csvOutput      = flag.Bool("csv", false, "Output results in CSV format")
	jsonOutput     = flag.Bool("json", false, "Output results in JSON format")
	plotPath       = flag.String("plot", "", "Write a windowed accuracy chart to file")
	timeline       = flag.Bool("timeline", false, "Include the allocation timeline in JSON output")
	window         = flag.Int("window", 0, "Branches per accuracy window (0 = from config)")
	parallel       = flag.Int("parallel", 0, "Workloads replayed at once (0 = from config)")
	timeout        = flag.Duration("timeout", 0, "Abort after this long (0 = no limit)")
	cpuProfile     = flag.String("cpuprofile", "", "write cpu profile to file")
	verbose        = flag.Bool("v", false, "Debug logging")
	veryVerbose    = flag.Bool("vv", false, "Trace logging, dumps every misprediction")
)

func main() {
	flag.Parse()

	log.SetOutput(os.Stderr)
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	switch {
	case *veryVerbose:
		log.SetLevel(log.TraceLevel)
	case *verbose:
		log.SetLevel(log.DebugLevel)
	default:
		log.SetLevel(log.InfoLevel)
	}

	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	config, err := loadConfig()
	if err != nil {
		return err
	}

	if *saveConfigPath != "" {
		if err := config.SaveConfig(*saveConfigPath); err != nil {
			return err
		}
		log.Infof("Configuration written to %s", *saveConfigPath)
		return nil
	}

	if *cpuProfile != "" {
		f, err := os.Create(*cpuProfile)
		if err != nil {
			return errors.Wrap(err, "failed to create CPU profile")
		}
		defer func() { _ = f.Close() }()

		if err := pprof.StartCPUProfile(f); err != nil {
			return errors.Wrap(err, "failed to start CPU profile")
		}
		defer pprof.StopCPUProfile()
	}

	workloads := harness.GetMicrobenchmarks()
	if flag.NArg() > 0 {
		workloads = nil
		for _, path := range flag.Args() {
			workloads = append(workloads, harness.FileWorkload(path))
		}
	}

	h := harness.NewHarness(config)
	h.AddWorkloads(workloads)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if *timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, *timeout)
		defer cancel()
	}

	log.WithFields(log.Fields{
		"workloads":   len(workloads),
		"window":      config.WindowSize,
		"parallelism": config.Parallelism,
	}).Debug("Starting run")

	start := time.Now()
	results, err := h.RunAll(ctx)
	if err != nil {
		return err
	}
	log.Debugf("Run finished in %v", time.Since(start))

	switch {
	case *jsonOutput:
		if err := h.PrintJSON(results); err != nil {
			return err
		}
	case *csvOutput:
		h.PrintCSV(results)
	default:
		h.PrintResults(results)

		summary := harness.Summarize(results)
		fmt.Println("=== Summary ===")
		fmt.Printf("Branches:       %d\n", summary.TotalBranches)
		fmt.Printf("Mispredictions: %d\n", summary.TotalMispredictions)
		fmt.Printf("Accuracy:       %.2f%%\n", summary.AccuracyPercent)
	}

	if *plotPath != "" {
		if err := h.PlotWindows(results, *plotPath); err != nil {
			return err
		}
		log.Infof("Accuracy chart written to %s", *plotPath)
	}

	return nil
}

func loadConfig() (harness.Config, error) {
	config := harness.DefaultConfig()
	if *configPath != "" {
		var err error
		config, err = harness.LoadConfig(*configPath)
		if err != nil {
			return config, err
		}
	}

	if *window > 0 {
		config.WindowSize = *window
	}
	if *parallel > 0 {
		config.Parallelism = *parallel
	}
	if *timeline {
		config.KeepTimeline = true
	}
	config.Output = os.Stdout

	return config, config.Validate()
}
