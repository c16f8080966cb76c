package classifier

import (
	"fmt"
	"math/rand/v2"
	"slices"
)

// TreeNode is one node of a flattened CART tree. Children are indexes into
// DecisionTree.Nodes; leaves have Left and Right set to -1.
type TreeNode struct {
	Feature   int     `json:"feature"`
	Threshold float64 `json:"threshold"`
	Left      int     `json:"left"`
	Right     int     `json:"right"`
	Positive  float64 `json:"positive"`
	Leaf      bool    `json:"leaf"`
}

// DecisionTree is a binary CART tree split on gini impurity. Leaves keep the
// share of positive training rows that reached them.
type DecisionTree struct {
	Nodes []TreeNode `json:"nodes"`
}

// probability walks x down to a leaf.
func (dt *DecisionTree) probability(x []float64) (float64, error) {
	if len(dt.Nodes) == 0 {
		return 0, ErrNotTrained
	}
	idx := 0
	for steps := 0; steps <= len(dt.Nodes); steps++ {
		node := dt.Nodes[idx]
		if node.Leaf {
			return node.Positive, nil
		}
		if node.Feature < 0 || node.Feature >= len(x) {
			return 0, fmt.Errorf("%w: node %d splits on feature %d", ErrCorruptArtifact, idx, node.Feature)
		}
		if x[node.Feature] <= node.Threshold {
			idx = node.Left
		} else {
			idx = node.Right
		}
		if idx < 0 || idx >= len(dt.Nodes) {
			return 0, fmt.Errorf("%w: invalid child index %d", ErrCorruptArtifact, idx)
		}
	}
	return 0, fmt.Errorf("%w: tree has a cycle", ErrCorruptArtifact)
}

type treeBuilder struct {
	X           [][]float64
	y           []int
	maxDepth    int
	minLeaf     int
	maxFeatures int
	rng         *rand.Rand
	nodes       []TreeNode
}

func (b *treeBuilder) tree(rows []int) DecisionTree {
	b.nodes = nil
	b.build(rows, 0)
	return DecisionTree{Nodes: b.nodes}
}

// build appends the subtree for rows and returns the index of its root.
func (b *treeBuilder) build(rows []int, depth int) int {
	pos := b.positiveRate(rows)
	self := len(b.nodes)
	b.nodes = append(b.nodes, TreeNode{Feature: -1, Left: -1, Right: -1, Positive: pos, Leaf: true})

	if depth >= b.maxDepth || pos == 0 || pos == 1 || len(rows) < 2*b.minLeaf {
		return self
	}
	feature, threshold, ok := b.bestSplit(rows, gini(pos))
	if !ok {
		return self
	}
	left, right := b.partition(rows, feature, threshold)
	l := b.build(left, depth+1)
	r := b.build(right, depth+1)
	b.nodes[self] = TreeNode{Feature: feature, Threshold: threshold, Left: l, Right: r, Positive: pos}
	return self
}

func (b *treeBuilder) candidates() []int {
	n := len(b.X[0])
	if b.maxFeatures <= 0 || b.maxFeatures >= n || b.rng == nil {
		all := make([]int, n)
		for i := range all {
			all[i] = i
		}
		return all
	}
	picked := b.rng.Perm(n)[:b.maxFeatures]
	slices.Sort(picked)
	return picked
}

// bestSplit tries the median of each candidate feature, falling back to the
// midpoint of its range when the median leaves one side empty.
func (b *treeBuilder) bestSplit(rows []int, parent float64) (int, float64, bool) {
	bestFeature := -1
	bestThreshold := 0.0
	bestImpurity := parent

	values := make([]float64, len(rows))
	for _, f := range b.candidates() {
		for i, r := range rows {
			values[i] = b.X[r][f]
		}
		for _, threshold := range thresholds(values) {
			impurity, ok := b.splitImpurity(rows, f, threshold)
			if ok && impurity < bestImpurity {
				bestImpurity = impurity
				bestFeature = f
				bestThreshold = threshold
			}
		}
	}
	return bestFeature, bestThreshold, bestFeature >= 0
}

func (b *treeBuilder) splitImpurity(rows []int, feature int, threshold float64) (float64, bool) {
	var nl, pl, nr, pr int
	for _, r := range rows {
		if b.X[r][feature] <= threshold {
			nl++
			pl += b.y[r]
		} else {
			nr++
			pr += b.y[r]
		}
	}
	if nl < b.minLeaf || nr < b.minLeaf || nl == 0 || nr == 0 {
		return 0, false
	}
	total := float64(nl + nr)
	left := gini(float64(pl) / float64(nl))
	right := gini(float64(pr) / float64(nr))
	return float64(nl)/total*left + float64(nr)/total*right, true
}

func (b *treeBuilder) partition(rows []int, feature int, threshold float64) (left, right []int) {
	for _, r := range rows {
		if b.X[r][feature] <= threshold {
			left = append(left, r)
		} else {
			right = append(right, r)
		}
	}
	return left, right
}

func (b *treeBuilder) positiveRate(rows []int) float64 {
	if len(rows) == 0 {
		return 0
	}
	var pos int
	for _, r := range rows {
		pos += b.y[r]
	}
	return float64(pos) / float64(len(rows))
}

// gini impurity of a binary node with positive share p.
func gini(p float64) float64 {
	return 1 - p*p - (1-p)*(1-p)
}

func thresholds(values []float64) []float64 {
	sorted := slices.Clone(values)
	slices.Sort(sorted)
	lo, hi := sorted[0], sorted[len(sorted)-1]
	if lo == hi {
		return nil
	}
	mid := len(sorted) / 2
	median := sorted[mid]
	if len(sorted)%2 == 0 {
		median = (sorted[mid-1] + sorted[mid]) / 2
	}
	if median < hi {
		return []float64{median, (lo + hi) / 2}
	}
	return []float64{(lo + hi) / 2}
}
