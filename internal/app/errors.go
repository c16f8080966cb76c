package service

import "errors"

var (
	// ErrMissingArtifact means a model artifact is absent or unreadable at startup.
	ErrMissingArtifact = errors.New("model artifact missing")
	// ErrSchemaMismatch means an artifact was trained for a different feature layout.
	ErrSchemaMismatch = errors.New("model artifact schema mismatch")
	// ErrPredictionUnavailable means the model could not answer in time or failed.
	ErrPredictionUnavailable = errors.New("prediction unavailable")
)
