package classifier

import (
	"context"
	"math"
	"math/rand/v2"
)

// RandomForest averages the leaf positive share of bagged decision trees.
type RandomForest struct {
	Features int            `json:"features"`
	Trees    []DecisionTree `json:"trees"`
}

// ForestTrainer fits a RandomForest. A fixed Seed gives identical forests for
// identical input.
type ForestTrainer struct {
	Trees    int
	MaxDepth int
	MinLeaf  int
	Seed     int64
}

// NewForestTrainer returns a trainer with defaults for zero values.
func NewForestTrainer(trees, maxDepth int, seed int64) ForestTrainer {
	if trees <= 0 {
		trees = 100
	}
	if maxDepth <= 0 {
		maxDepth = 8
	}
	return ForestTrainer{Trees: trees, MaxDepth: maxDepth, MinLeaf: 1, Seed: seed}
}

// Fit implements Trainer.
func (t ForestTrainer) Fit(X [][]float64, y []int) (Classifier, error) {
	n, err := checkTrainingSet(X, y)
	if err != nil {
		return nil, err
	}
	if t.Trees <= 0 || t.MaxDepth <= 0 {
		t = NewForestTrainer(t.Trees, t.MaxDepth, t.Seed)
	}
	if t.MinLeaf <= 0 {
		t.MinLeaf = 1
	}

	rng := rand.New(rand.NewPCG(uint64(t.Seed), uint64(t.Seed)^0x9e3779b97f4a7c15))
	b := &treeBuilder{
		X:           X,
		y:           y,
		maxDepth:    t.MaxDepth,
		minLeaf:     t.MinLeaf,
		maxFeatures: max(1, int(math.Sqrt(float64(n)))),
		rng:         rng,
	}

	forest := &RandomForest{Features: n, Trees: make([]DecisionTree, 0, t.Trees)}
	sample := make([]int, len(X))
	for range t.Trees {
		for i := range sample {
			sample[i] = rng.IntN(len(X))
		}
		forest.Trees = append(forest.Trees, b.tree(sample))
	}
	return forest, nil
}

// PredictProbability implements Classifier.
func (f *RandomForest) PredictProbability(ctx context.Context, x []float64) (float64, error) {
	features := f.Features
	if len(f.Trees) == 0 {
		features = 0
	}
	if err := checkInput(ctx, x, features); err != nil {
		return 0, err
	}
	var sum float64
	for i := range f.Trees {
		p, err := f.Trees[i].probability(x)
		if err != nil {
			return 0, err
		}
		sum += p
	}
	return sum / float64(len(f.Trees)), nil
}

// Predict implements Classifier.
func (f *RandomForest) Predict(ctx context.Context, x []float64) (int, error) {
	p, err := f.PredictProbability(ctx, x)
	if err != nil {
		return 0, err
	}
	return verdict(p), nil
}
