package smoke

import "errors"

var (
	ErrUnhealthy    = errors.New("service unhealthy")
	ErrModelMissing = errors.New("model not loaded")
	ErrVerification = errors.New("verification failed")
)
