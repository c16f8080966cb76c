package dataset

import (
	"errors"
	"fmt"
)

var (
	ErrMissingDataset = errors.New("dataset missing or unreadable")
	// ErrMissingLabel is a format problem reported as a missing dataset.
	ErrMissingLabel = fmt.Errorf("%w: label column not found", ErrMissingDataset)
	ErrMalformedRow = errors.New("malformed dataset row")
)
