package artifact

import "errors"

var (
	ErrNotFound    = errors.New("artifact not found")
	ErrInvalidName = errors.New("invalid artifact name")
	ErrUnknownKind = errors.New("unknown artifact backend")
)
