// Command train fits the diabetes and heart classifiers and writes their
// artifacts to the configured store. It exits 1 when any job fails.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/SiddharthSingh5771/MedAssist-AI/internal/adapters/artifact"
	"github.com/SiddharthSingh5771/MedAssist-AI/internal/config"
	"github.com/SiddharthSingh5771/MedAssist-AI/internal/training"
	"github.com/SiddharthSingh5771/MedAssist-AI/pkg/logger"
	"github.com/SiddharthSingh5771/MedAssist-AI/pkg/metrics"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:])
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string) int {
	fs := flag.NewFlagSet("train", flag.ContinueOnError)
	diabetes := fs.String("diabetes", "", "diabetes CSV path (overrides diabetes_dataset)")
	heart := fs.String("heart", "", "heart CSV path (overrides heart_dataset)")
	modelDir := fs.String("model-dir", "", "artifact directory (overrides model_dir)")
	quiet := fs.Bool("quiet", false, "disable the progress bar")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		return 1
	}
	if *diabetes != "" {
		cfg.DiabetesDataset = *diabetes
	}
	if *heart != "" {
		cfg.HeartDataset = *heart
	}
	if *modelDir != "" {
		cfg.ModelDir = *modelDir
	}

	if err := logger.Init(logger.WithFormat(cfg.LogFormat), logger.WithFile(cfg.LogFile)); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return 1
	}
	defer func() { _ = logger.Sync() }()
	log := logger.Named("training")
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel))
		_ = logger.SetLevelString("info")
	}

	store, err := artifact.FromConfig(ctx, cfg)
	if err != nil {
		log.Error(ctx, "failed to open artifact store", logger.Error(err))
		return 1
	}

	opts := []training.Option{
		training.WithLogger(log),
		training.WithMetrics(metrics.Default()),
		training.WithHoldout(cfg.HoldoutRatio, cfg.ForestSeed),
	}
	if !*quiet {
		opts = append(opts, training.WithProgress(os.Stderr))
	}

	report := training.New(store, training.JobsFromConfig(cfg), opts...).Run(ctx)
	if err := report.WriteSummary(os.Stdout); err != nil {
		log.Warn(ctx, "failed to write summary", logger.Error(err))
	}
	if !report.OK() {
		return 1
	}
	return 0
}
