// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"

	service "github.com/SiddharthSingh5771/MedAssist-AI/internal/app"
	"github.com/SiddharthSingh5771/MedAssist-AI/internal/domain/classifier"
	"github.com/SiddharthSingh5771/MedAssist-AI/internal/domain/intake"
	"github.com/SiddharthSingh5771/MedAssist-AI/internal/domain/schema"
	"github.com/SiddharthSingh5771/MedAssist-AI/pkg/logger"
	"github.com/SiddharthSingh5771/MedAssist-AI/pkg/metrics"
)

// Dependencies required by HTTP handlers. *service.Service satisfies it.
type Dependencies interface {
	Predict(ctx context.Context, in intake.Input) (service.Outcome, error)
	Header(disease schema.Disease) (classifier.Header, bool)
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler  *HealthHandler
	predictHandler *PredictHandler
	schemasHandler *SchemasHandler
	metrics        *metrics.Manager
}

// Option applies a configuration option to the Server.
type Option func(*Server)

// WithMetrics sets the manager used by MetricsMiddleware and /healthz.
func WithMetrics(m *metrics.Manager) Option {
	return func(s *Server) {
		if m != nil {
			s.metrics = m
		}
	}
}

// WithGatherer serves /healthz from g instead of the global registry.
func WithGatherer(g prometheus.Gatherer) Option {
	return func(s *Server) {
		if g != nil {
			s.healthHandler = NewHealthHandler(g)
		}
	}
}

// WithLogger sets the logger used for unexpected failures.
func WithLogger(l logger.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.predictHandler.logger = l
		}
	}
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, opts ...Option) *Server {
	s := &Server{
		healthHandler:  NewHealthHandler(metrics.GetRegistry()),
		predictHandler: NewPredictHandler(deps),
		schemasHandler: NewSchemasHandler(deps),
		metrics:        metrics.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.metrics, s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/api/v1/schemas", MetricsMiddleware(s.metrics, s.schemasHandler.HandleSchemas, "schemas"))
	mux.HandleFunc("/api/v1/predict/", MetricsMiddleware(s.metrics, s.predictHandler.HandlePredict, "predict"))
}

type errorResponse struct {
	Code    string                `json:"code"`
	Message string                `json:"message"`
	Fields  []intake.FieldProblem `json:"fields,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
