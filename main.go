// Package main points users at the tagesim command.
// tagesim models a bimodal + TAGE conditional branch direction predictor;
// the runnable CLI lives in ./cmd/tagesim.
package main

import (
	"fmt"
	"os"
)

const usage = `tagesim - bimodal + TAGE branch direction predictor

Usage: go run ./cmd/tagesim [flags] [trace ...]

With no trace files the built-in synthetic kernels run.

Flags:
  -config PATH       harness configuration JSON file
  -save-config PATH  write the effective configuration and exit
  -csv               CSV output
  -json              JSON output
  -timeline          include the allocation timeline in JSON output
  -plot PATH         windowed accuracy chart (.png, .svg, .pdf)
  -window N          branches per accuracy window
  -parallel N        workloads replayed at once
  -timeout D         abort after duration D
  -cpuprofile PATH   write a CPU profile
  -v, -vv            debug / trace logging
`

func main() {
	fmt.Print(usage)
	if len(os.Args) > 1 {
		fmt.Fprintln(os.Stderr, "\nArguments are ignored here; pass them to ./cmd/tagesim.")
		os.Exit(2)
	}
}
