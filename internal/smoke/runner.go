// Package smoke drives a running MedAssist server with synthetic patients and
// checks every answer for internal consistency.
package smoke

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/SiddharthSingh5771/MedAssist-AI/internal/domain/schema"
	"github.com/SiddharthSingh5771/MedAssist-AI/pkg/logger"
)

// File permission constants.
const (
	directoryPermission = 0o750
	filePermission      = 0o600
)

type submission struct {
	verdict string
	tier    string
	err     error
}

// Run checks the service, submits the patients and verifies every response.
// It returns ErrVerification when any response was inconsistent.
func Run(ctx context.Context, cfg *Config) (*Stats, error) {
	log := cfg.Logger
	if log == nil {
		log = logger.Nop()
	}
	stats := &Stats{StartTime: time.Now(), Tiers: make(map[string]int)}
	client := newHTTPClient(cfg.Timeout)

	log.Info(ctx, "starting smoke run",
		logger.String("baseURL", cfg.BaseURL),
		logger.Int("patients", cfg.Patients),
		logger.Int("workers", cfg.Workers))

	if err := checkServiceHealth(ctx, client, cfg.BaseURL); err != nil {
		return stats, err
	}
	if err := checkModels(ctx, client, cfg.BaseURL); err != nil {
		return stats, err
	}

	patients := generatePatients(cfg)
	stats.Generated = len(patients)
	if cfg.OutputFile != "" {
		if err := savePatients(cfg.OutputFile, patients); err != nil {
			log.Warn(ctx, "failed to save patients", logger.Error(err))
		}
	}

	submit(ctx, cfg, client, patients, stats, log)
	stats.Duration = time.Since(stats.StartTime)

	log.Info(ctx, "final statistics",
		logger.Int("generated", stats.Generated),
		logger.Int("submitted", stats.Submitted),
		logger.Int("verified", stats.Verified),
		logger.Int("rejected", stats.Rejected),
		logger.Int("mismatched", stats.Mismatched),
		logger.Int("failed", stats.Failed),
		logger.Any("tiers", stats.Tiers),
		logger.String("duration", stats.Duration.String()))

	if err := ctx.Err(); err != nil {
		return stats, err
	}
	if stats.Mismatched > 0 || stats.Failed > 0 {
		return stats, fmt.Errorf("%w: %d mismatched, %d failed", ErrVerification, stats.Mismatched, stats.Failed)
	}
	return stats, nil
}

// submit posts patients from a worker pool and folds the results into stats.
func submit(ctx context.Context, cfg *Config, client *HTTPClient, patients []Patient, stats *Stats, log logger.Logger) {
	workers := max(1, min(cfg.Workers, len(patients)))
	jobs := make(chan Patient, workers*2)
	results := make(chan submission, workers*2)

	var bar *progressbar.ProgressBar
	if cfg.Progress != nil {
		bar = progressbar.NewOptions(len(patients),
			progressbar.OptionSetWriter(cfg.Progress),
			progressbar.OptionSetDescription("patients"),
			progressbar.OptionSetWidth(30),
			progressbar.OptionClearOnFinish())
	}

	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for p := range jobs {
				results <- submitOne(ctx, client, cfg.BaseURL, p)
			}
		}()
	}

	go func() {
		defer close(jobs)
		for _, p := range patients {
			select {
			case <-ctx.Done():
				return
			case jobs <- p:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	for r := range results {
		stats.Submitted++
		if bar != nil {
			_ = bar.Add(1)
		}
		switch {
		case errors.Is(r.err, ErrVerification):
			stats.Mismatched++
			log.Warn(ctx, "inconsistent response", logger.Error(r.err))
		case r.err != nil:
			stats.Failed++
			log.Warn(ctx, "request failed", logger.Error(r.err))
		case r.verdict == verdictRejected:
			stats.Rejected++
		default:
			stats.Verified++
			stats.Tiers[r.tier]++
		}
		if cfg.Verbose && r.err == nil {
			log.Info(ctx, "response verified", logger.String("verdict", r.verdict), logger.String("tier", r.tier))
		}
	}
	if bar != nil {
		_ = bar.Finish()
	}
}

func submitOne(ctx context.Context, client *HTTPClient, baseURL string, p Patient) submission {
	resp, err := client.Post(ctx, baseURL+"/api/v1/predict/"+string(p.Disease), p.Body)
	if err != nil {
		return submission{err: err}
	}
	body, err := readResponseBody(resp)
	if err != nil {
		return submission{err: err}
	}
	verdict, tier, err := checkResponse(p, resp.StatusCode, body)
	return submission{verdict: verdict, tier: tier, err: err}
}

// checkServiceHealth verifies the service is running.
func checkServiceHealth(ctx context.Context, client *HTTPClient, baseURL string) error {
	resp, err := client.Get(ctx, baseURL+"/healthz")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnhealthy, err)
	}
	_, _ = readResponseBody(resp)
	// Accept any 200 response as healthy (the service returns Prometheus metrics)
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: status %d", ErrUnhealthy, resp.StatusCode)
	}
	return nil
}

// checkModels requires a loaded model behind every declared schema.
func checkModels(ctx context.Context, client *HTTPClient, baseURL string) error {
	resp, err := client.Get(ctx, baseURL+"/api/v1/schemas")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnhealthy, err)
	}
	body, err := readResponseBody(resp)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnhealthy, err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: schemas status %d", ErrUnhealthy, resp.StatusCode)
	}

	var views []struct {
		Disease schema.Disease `json:"disease"`
		Model   *struct {
			Kind string `json:"kind"`
		} `json:"model"`
	}
	if err := json.Unmarshal(body, &views); err != nil {
		return fmt.Errorf("%w: %w", ErrUnhealthy, err)
	}
	loaded := make(map[schema.Disease]bool, len(views))
	for _, v := range views {
		loaded[v.Disease] = v.Model != nil
	}
	for _, s := range schema.All() {
		if !loaded[s.Disease] {
			return fmt.Errorf("%w: %s", ErrModelMissing, s.Disease)
		}
	}
	return nil
}

// savePatients writes the generated patients as a JSON array.
func savePatients(path string, patients []Patient) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, directoryPermission); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}
	data, err := json.MarshalIndent(patients, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal patients: %w", err)
	}
	return os.WriteFile(path, data, filePermission)
}
