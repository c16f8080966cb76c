package classifier

import "errors"

var (
	ErrEmptyTrainingSet = errors.New("training set is empty")
	ErrSizeMismatch     = errors.New("features and labels size mismatch")
	ErrInvalidLabel     = errors.New("labels must be 0 or 1")
	ErrFeatureCount     = errors.New("feature vector has wrong length")
	ErrNonFinite        = errors.New("feature vector has a non-finite value")
	ErrNotTrained       = errors.New("model not trained")
	ErrUnknownKind      = errors.New("unknown model kind")
	ErrCorruptArtifact  = errors.New("corrupt model artifact")
)
