// Command smoke submits synthetic patients to a running MedAssist server and
// verifies that every answer is internally consistent.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/SiddharthSingh5771/MedAssist-AI/internal/smoke"
	"github.com/SiddharthSingh5771/MedAssist-AI/pkg/logger"
)

// Default configuration constants.
const (
	defaultPatients    = 200
	defaultWorkers     = 2 // multiplier for runtime.NumCPU()
	defaultTimeout     = 10 * time.Second
	defaultTestTimeout = 5 * time.Minute
	defaultIncomplete  = 0.1
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:])
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string) int {
	fs := flag.NewFlagSet("smoke", flag.ContinueOnError)
	baseURL := fs.String("url", "http://localhost:8501", "Base URL of the service")
	patients := fs.Int("patients", defaultPatients, "Number of synthetic patients to submit")
	workers := fs.Int("workers", runtime.NumCPU()*defaultWorkers, "Number of concurrent workers")
	timeout := fs.Duration("timeout", defaultTimeout, "HTTP request timeout")
	seed := fs.Uint64("seed", uint64(time.Now().UnixNano()), "Seed for patient generation")
	incomplete := fs.Float64("incomplete", defaultIncomplete, "Share of patients sent with a required field missing")
	output := fs.String("output", "", "Write the generated patients to this JSON file")
	verbose := fs.Bool("verbose", false, "Log every response")
	quiet := fs.Bool("quiet", false, "Disable the progress bar")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return 1
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTestTimeout)
	defer cancel()

	cfg := &smoke.Config{
		BaseURL:    *baseURL,
		Patients:   *patients,
		Workers:    *workers,
		Timeout:    *timeout,
		Seed:       *seed,
		Incomplete: *incomplete,
		OutputFile: *output,
		Verbose:    *verbose,
		Logger:     logger.Named("smoke"),
	}
	if !*quiet {
		cfg.Progress = os.Stderr
	}

	if _, err := smoke.Run(ctx, cfg); err != nil {
		os.Stderr.WriteString("smoke run failed: " + err.Error() + "\n")
		return 1
	}
	return 0
}
