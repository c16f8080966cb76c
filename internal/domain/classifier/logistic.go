package classifier

import (
	"context"
	"math"
)

// LogisticRegression is a standardized linear model. Inputs are scaled with
// the training means and deviations stored alongside the weights, so callers
// pass raw feature values.
type LogisticRegression struct {
	Weights []float64 `json:"weights"`
	Bias    float64   `json:"bias"`
	Means   []float64 `json:"means"`
	Scales  []float64 `json:"scales"`
}

// LogisticTrainer fits a LogisticRegression with batch gradient descent.
type LogisticTrainer struct {
	Iterations   int
	LearningRate float64
	L2           float64
}

// NewLogisticTrainer returns a trainer with defaults for zero values.
func NewLogisticTrainer(iterations int, learningRate float64) LogisticTrainer {
	if iterations <= 0 {
		iterations = 1000
	}
	if learningRate <= 0 {
		learningRate = 0.1
	}
	return LogisticTrainer{Iterations: iterations, LearningRate: learningRate, L2: 1e-3}
}

// Fit implements Trainer.
func (t LogisticTrainer) Fit(X [][]float64, y []int) (Classifier, error) {
	n, err := checkTrainingSet(X, y)
	if err != nil {
		return nil, err
	}
	if t.Iterations <= 0 || t.LearningRate <= 0 {
		t = NewLogisticTrainer(t.Iterations, t.LearningRate)
	}

	m := &LogisticRegression{
		Weights: make([]float64, n),
		Means:   make([]float64, n),
		Scales:  make([]float64, n),
	}
	m.fitScaler(X)

	scaled := make([][]float64, len(X))
	for i, row := range X {
		scaled[i] = m.scale(row)
	}

	rows := float64(len(X))
	grad := make([]float64, n)
	for it := 0; it < t.Iterations; it++ {
		for j := range grad {
			grad[j] = 0
		}
		var gradBias float64
		for i, row := range scaled {
			diff := sigmoid(m.Bias+dot(m.Weights, row)) - float64(y[i])
			for j, v := range row {
				grad[j] += diff * v
			}
			gradBias += diff
		}
		for j := range m.Weights {
			m.Weights[j] -= t.LearningRate * (grad[j]/rows + t.L2*m.Weights[j])
		}
		m.Bias -= t.LearningRate * gradBias / rows
	}
	return m, nil
}

func (m *LogisticRegression) fitScaler(X [][]float64) {
	rows := float64(len(X))
	for _, row := range X {
		for j, v := range row {
			m.Means[j] += v
		}
	}
	for j := range m.Means {
		m.Means[j] /= rows
	}
	for _, row := range X {
		for j, v := range row {
			d := v - m.Means[j]
			m.Scales[j] += d * d
		}
	}
	for j := range m.Scales {
		m.Scales[j] = math.Sqrt(m.Scales[j] / rows)
		if m.Scales[j] == 0 {
			m.Scales[j] = 1
		}
	}
}

func (m *LogisticRegression) scale(x []float64) []float64 {
	out := make([]float64, len(x))
	for j, v := range x {
		out[j] = (v - m.Means[j]) / m.Scales[j]
	}
	return out
}

func (m *LogisticRegression) features() int {
	if len(m.Means) != len(m.Weights) || len(m.Scales) != len(m.Weights) {
		return 0
	}
	return len(m.Weights)
}

// PredictProbability implements Classifier.
func (m *LogisticRegression) PredictProbability(ctx context.Context, x []float64) (float64, error) {
	if err := checkInput(ctx, x, m.features()); err != nil {
		return 0, err
	}
	return sigmoid(m.Bias + dot(m.Weights, m.scale(x))), nil
}

// Predict implements Classifier.
func (m *LogisticRegression) Predict(ctx context.Context, x []float64) (int, error) {
	p, err := m.PredictProbability(ctx, x)
	if err != nil {
		return 0, err
	}
	return verdict(p), nil
}

func sigmoid(z float64) float64 {
	if z >= 0 {
		return 1 / (1 + math.Exp(-z))
	}
	e := math.Exp(z)
	return e / (1 + e)
}

func dot(a, b []float64) float64 {
	var s float64
	for i := range a {
		s += a[i] * b[i]
	}
	return s
}
