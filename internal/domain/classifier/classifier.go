// Package classifier holds the binary classifiers used for risk prediction and
// the artifact format they are persisted in.
package classifier

import (
	"context"
	"fmt"
	"math"
)

// Classifier scores a FeatureVector. Implementations are read-only after
// training and safe for concurrent use.
type Classifier interface {
	// Predict returns the binary verdict, 0 or 1.
	Predict(ctx context.Context, x []float64) (int, error)
	// PredictProbability returns P(class=1) in [0,1].
	PredictProbability(ctx context.Context, x []float64) (float64, error)
}

// Trainer fits a Classifier on a labeled matrix.
type Trainer interface {
	Fit(X [][]float64, y []int) (Classifier, error)
}

// Model kinds stored in artifacts.
const (
	KindLogisticRegression = "logistic_regression"
	KindRandomForest       = "random_forest"
)

// decisionThreshold turns a probability into a verdict.
const decisionThreshold = 0.5

func verdict(p float64) int {
	if p >= decisionThreshold {
		return 1
	}
	return 0
}

func checkTrainingSet(X [][]float64, y []int) (int, error) {
	if len(X) == 0 || len(y) == 0 {
		return 0, ErrEmptyTrainingSet
	}
	if len(X) != len(y) {
		return 0, fmt.Errorf("%w: %d rows, %d labels", ErrSizeMismatch, len(X), len(y))
	}
	n := len(X[0])
	if n == 0 {
		return 0, ErrEmptyTrainingSet
	}
	for i, row := range X {
		if len(row) != n {
			return 0, fmt.Errorf("%w: row %d has %d values, want %d", ErrFeatureCount, i, len(row), n)
		}
		if y[i] != 0 && y[i] != 1 {
			return 0, fmt.Errorf("%w: row %d has label %d", ErrInvalidLabel, i, y[i])
		}
	}
	return n, nil
}

func checkInput(ctx context.Context, x []float64, want int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if want == 0 {
		return ErrNotTrained
	}
	if len(x) != want {
		return fmt.Errorf("%w: got %d, want %d", ErrFeatureCount, len(x), want)
	}
	for i, v := range x {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: index %d", ErrNonFinite, i)
		}
	}
	return nil
}
