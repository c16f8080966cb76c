package schema

import "errors"

// Sentinel kinds for schema errors.
var (
	ErrUnknownDisease = errors.New("unknown disease")
	ErrVectorLength   = errors.New("feature vector length mismatch")
	ErrColumnMismatch = errors.New("dataset columns do not match schema")
)
