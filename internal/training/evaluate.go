package training

import (
	"context"

	"github.com/SiddharthSingh5771/MedAssist-AI/internal/domain/classifier"
)

// Evaluation holds holdout quality figures.
type Evaluation struct {
	Samples   int     `json:"samples"`
	Accuracy  float64 `json:"accuracy"`
	Precision float64 `json:"precision"`
	Recall    float64 `json:"recall"`
}

// Evaluate scores clf against labeled rows. Precision and recall are zero when
// their denominators are.
func Evaluate(ctx context.Context, clf classifier.Classifier, X [][]float64, y []int) (Evaluation, error) {
	ev := Evaluation{Samples: len(X)}
	if len(X) == 0 {
		return ev, nil
	}

	var correct, truePositive, predictedPositive, actualPositive int
	for i, row := range X {
		label, err := clf.Predict(ctx, row)
		if err != nil {
			return ev, err
		}
		if label == y[i] {
			correct++
		}
		if label == 1 {
			predictedPositive++
		}
		if y[i] == 1 {
			actualPositive++
			if label == 1 {
				truePositive++
			}
		}
	}

	ev.Accuracy = float64(correct) / float64(len(X))
	if predictedPositive > 0 {
		ev.Precision = float64(truePositive) / float64(predictedPositive)
	}
	if actualPositive > 0 {
		ev.Recall = float64(truePositive) / float64(actualPositive)
	}
	return ev, nil
}
