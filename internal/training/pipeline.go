// Package training fits the risk classifiers from CSV datasets and writes
// their artifacts.
package training

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/SiddharthSingh5771/MedAssist-AI/internal/adapters/artifact"
	"github.com/SiddharthSingh5771/MedAssist-AI/internal/adapters/dataset"
	"github.com/SiddharthSingh5771/MedAssist-AI/internal/config"
	"github.com/SiddharthSingh5771/MedAssist-AI/internal/domain/classifier"
	"github.com/SiddharthSingh5771/MedAssist-AI/internal/domain/schema"
	"github.com/SiddharthSingh5771/MedAssist-AI/pkg/logger"
	"github.com/SiddharthSingh5771/MedAssist-AI/pkg/metrics"
)

// Job trains one classifier.
type Job struct {
	Schema  schema.Schema
	Dataset string
	Trainer classifier.Trainer
}

// JobsFromConfig returns the diabetes and heart jobs.
func JobsFromConfig(cfg *config.Config) []Job {
	return []Job{
		{
			Schema:  schema.Diabetes,
			Dataset: cfg.DiabetesDataset,
			Trainer: classifier.NewLogisticTrainer(cfg.LogRegIterations, cfg.LogRegLearningRate),
		},
		{
			Schema:  schema.Heart,
			Dataset: cfg.HeartDataset,
			Trainer: classifier.NewForestTrainer(cfg.ForestTrees, cfg.ForestMaxDepth, cfg.ForestSeed),
		},
	}
}

// Pipeline runs jobs one after another. A failing job never stops the rest.
type Pipeline struct {
	store    artifact.Store
	jobs     []Job
	logger   logger.Logger
	metrics  *metrics.Manager
	holdout  float64
	seed     int64
	progress io.Writer
}

// Option applies a configuration option to the Pipeline.
type Option func(*Pipeline)

// WithLogger sets the pipeline logger.
func WithLogger(l logger.Logger) Option {
	return func(p *Pipeline) {
		if l != nil {
			p.logger = l
		}
	}
}

// WithMetrics sets the metrics manager.
func WithMetrics(m *metrics.Manager) Option {
	return func(p *Pipeline) {
		if m != nil {
			p.metrics = m
		}
	}
}

// WithHoldout evaluates each model on ratio of its rows, split with seed.
// The stored model is still fitted on every row.
func WithHoldout(ratio float64, seed int64) Option {
	return func(p *Pipeline) {
		if ratio >= 0 && ratio < 1 {
			p.holdout = ratio
			p.seed = seed
		}
	}
}

// WithProgress renders a progress bar to w.
func WithProgress(w io.Writer) Option {
	return func(p *Pipeline) {
		if w != nil {
			p.progress = w
		}
	}
}

// New builds a pipeline writing to store.
func New(store artifact.Store, jobs []Job, opts ...Option) *Pipeline {
	p := &Pipeline{
		store:    store,
		jobs:     jobs,
		logger:   logger.Nop(),
		metrics:  metrics.NewNop(),
		progress: io.Discard,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run executes every job.
func (p *Pipeline) Run(ctx context.Context) Report {
	bar := progressbar.NewOptions(len(p.jobs),
		progressbar.OptionSetWriter(p.progress),
		progressbar.OptionSetDescription("training"),
		progressbar.OptionSetWidth(30),
		progressbar.OptionClearOnFinish(),
	)

	report := Report{Results: make([]Result, 0, len(p.jobs))}
	for _, job := range p.jobs {
		bar.Describe("training " + string(job.Schema.Disease))
		res := p.runJob(ctx, job)
		report.Results = append(report.Results, res)

		status := "ok"
		if !res.OK() {
			status = "failed"
			p.logger.Error(ctx, "training job failed",
				logger.String("disease", string(res.Disease)),
				logger.String("dataset", job.Dataset),
				logger.Error(res.Err))
		} else {
			p.logger.Info(ctx, "model saved",
				logger.String("disease", string(res.Disease)),
				logger.String("kind", res.Kind),
				logger.String("location", res.Location),
				logger.Int("rows", res.Rows),
				logger.Float64("holdout_accuracy", res.Holdout.Accuracy),
				logger.Float64("holdout_precision", res.Holdout.Precision),
				logger.Float64("holdout_recall", res.Holdout.Recall))
		}
		p.metrics.RecordTraining(string(res.Disease), status,
			float64(res.Duration.Milliseconds()), res.Rows, res.Holdout.Accuracy)
		_ = bar.Add(1)
	}
	_ = bar.Finish()
	return report
}

func (p *Pipeline) runJob(ctx context.Context, job Job) (res Result) {
	start := time.Now()
	res = Result{Disease: job.Schema.Disease, Schema: job.Schema.ID()}
	defer func() { res.Duration = time.Since(start) }()

	if err := ctx.Err(); err != nil {
		res.Err = err
		return res
	}

	ds, err := dataset.Load(ctx, job.Dataset, job.Schema)
	if err != nil {
		res.Err = err
		return res
	}
	res.Rows, res.Positives = ds.Len(), ds.Positives()
	p.logger.Debug(ctx, "dataset loaded",
		logger.String("disease", string(job.Schema.Disease)),
		logger.Int("rows", res.Rows),
		logger.Int("positives", res.Positives))

	if p.holdout > 0 {
		train, test := ds.Split(p.holdout, p.seed)
		probe, err := job.Trainer.Fit(train.X, train.Y)
		if err != nil {
			res.Err = fmt.Errorf("fit on training split: %w", err)
			return res
		}
		if res.Holdout, err = Evaluate(ctx, probe, test.X, test.Y); err != nil {
			res.Err = fmt.Errorf("evaluate holdout: %w", err)
			return res
		}
	}

	clf, err := job.Trainer.Fit(ds.X, ds.Y)
	if err != nil {
		res.Err = fmt.Errorf("fit: %w", err)
		return res
	}

	var buf bytes.Buffer
	if err := classifier.Encode(&buf, job.Schema, clf); err != nil {
		res.Err = err
		return res
	}
	if err := p.store.Put(ctx, job.Schema.Artifact, &buf); err != nil {
		res.Err = err
		return res
	}

	res.Location = p.store.Location(job.Schema.Artifact)
	res.Kind = kindOf(clf)
	return res
}

func kindOf(clf classifier.Classifier) string {
	switch clf.(type) {
	case *classifier.LogisticRegression:
		return classifier.KindLogisticRegression
	case *classifier.RandomForest:
		return classifier.KindRandomForest
	}
	return fmt.Sprintf("%T", clf)
}
