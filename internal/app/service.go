// Package service validates patient input, runs the loaded classifiers and
// turns their answer into a displayable outcome.
package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/SiddharthSingh5771/MedAssist-AI/internal/domain/classifier"
	"github.com/SiddharthSingh5771/MedAssist-AI/internal/domain/intake"
	"github.com/SiddharthSingh5771/MedAssist-AI/internal/domain/risk"
	"github.com/SiddharthSingh5771/MedAssist-AI/internal/domain/schema"
	"github.com/SiddharthSingh5771/MedAssist-AI/pkg/logger"
	"github.com/SiddharthSingh5771/MedAssist-AI/pkg/metrics"
)

// Result is the raw model answer. Positive comes from Predict and the
// percentage from PredictProbability; they are never merged.
type Result struct {
	Positive           bool    `json:"positive"`
	ProbabilityPercent float64 `json:"probability_percent"`
}

// Outcome is a Result with its display tier and advice.
type Outcome struct {
	Disease schema.Disease `json:"disease"`
	Schema  string         `json:"schema"`
	Result  Result         `json:"result"`
	Tier    risk.Tier      `json:"tier"`
	Color   string         `json:"color"`
	Advice  risk.Advice    `json:"advice"`
}

// Service is immutable after New and safe for concurrent use.
type Service struct {
	models  Models
	timeout time.Duration
	logger  logger.Logger
	metrics *metrics.Manager
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithTimeout bounds each model call. Zero disables the bound.
func WithTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d >= 0 {
			s.timeout = d
		}
	}
}

// WithMetrics sets the metrics manager.
func WithMetrics(m *metrics.Manager) Option {
	return func(s *Service) {
		if m != nil {
			s.metrics = m
		}
	}
}

// New constructs a Service over already loaded models.
func New(models Models, opts ...Option) *Service {
	s := &Service{
		models:  models,
		logger:  logger.Nop(),
		metrics: metrics.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	for disease, m := range s.models {
		s.metrics.MarkModelLoaded(string(disease), m.Header.Schema, m.Header.Kind)
	}
	return s
}

// Header returns the artifact header of the model serving disease.
func (s *Service) Header(disease schema.Disease) (classifier.Header, bool) {
	m, ok := s.models[disease]
	return m.Header, ok
}

// PredictDiabetes scores a diabetes form.
func (s *Service) PredictDiabetes(ctx context.Context, in intake.DiabetesInput) (Outcome, error) {
	return s.Predict(ctx, in)
}

// PredictHeart scores a heart form.
func (s *Service) PredictHeart(ctx context.Context, in intake.HeartInput) (Outcome, error) {
	return s.Predict(ctx, in)
}

// Predict validates in, assembles its vector and asks the model. A
// validation error is returned as is and the model is not called.
func (s *Service) Predict(ctx context.Context, in intake.Input) (Outcome, error) {
	disease := in.Disease()
	x, err := in.Vector()
	if err != nil {
		var ve *intake.ValidationError
		if errors.As(err, &ve) {
			s.metrics.RecordValidationFailure(string(disease), ve.KindLabel())
			s.logger.Debug(ctx, "input rejected",
				logger.String("disease", string(disease)),
				logger.String("kind", ve.KindLabel()),
				logger.Int("fields", len(ve.Fields)))
		}
		return Outcome{}, err
	}

	m, ok := s.models[disease]
	if !ok {
		s.metrics.RecordPredictionError(string(disease), "not_loaded")
		return Outcome{}, fmt.Errorf("%w: no %s model loaded", ErrPredictionUnavailable, disease)
	}

	start := time.Now()
	res, err := s.score(ctx, m, x)
	if err != nil {
		reason := "model_error"
		if errors.Is(err, context.DeadlineExceeded) {
			reason = "timeout"
		}
		s.metrics.RecordPredictionError(string(disease), reason)
		s.logger.Error(ctx, "prediction failed",
			logger.String("disease", string(disease)),
			logger.String("reason", reason),
			logger.Error(err))
		return Outcome{}, err
	}

	tier := risk.Classify(res.ProbabilityPercent)
	s.metrics.RecordPrediction(string(disease), res.Positive, string(tier),
		float64(time.Since(start).Microseconds())/1000)

	return Outcome{
		Disease: disease,
		Schema:  m.Header.Schema,
		Result:  res,
		Tier:    tier,
		Color:   tier.Color(),
		Advice:  risk.Verdict(disease, res.Positive),
	}, nil
}

type scored struct {
	label int
	p     float64
	err   error
}

func (s *Service) score(ctx context.Context, m Model, x []float64) (Result, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	ch := make(chan scored, 1)
	go func() {
		label, err := m.Predict(ctx, x)
		if err != nil {
			ch <- scored{err: err}
			return
		}
		p, err := m.PredictProbability(ctx, x)
		ch <- scored{label: label, p: p, err: err}
	}()

	var r scored
	select {
	case <-ctx.Done():
		return Result{}, fmt.Errorf("%w: %w", ErrPredictionUnavailable, ctx.Err())
	case r = <-ch:
	}
	if r.err != nil {
		return Result{}, fmt.Errorf("%w: %w", ErrPredictionUnavailable, r.err)
	}
	if math.IsNaN(r.p) || r.p < 0 || r.p > 1 {
		return Result{}, fmt.Errorf("%w: probability %v out of range", ErrPredictionUnavailable, r.p)
	}
	return Result{Positive: r.label == 1, ProbabilityPercent: r.p * 100}, nil
}
