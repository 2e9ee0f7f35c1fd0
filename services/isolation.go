package services

import (
	"math"
	"math/rand"
)

// Isolation forest: anomalous rows are isolated by fewer random splits,
// so their expected path length across the ensemble is short. Scores are
// s = 2^(-E[h]/c(ψ)) in (0, 1], higher meaning more anomalous.

const (
	isolationSeed      = 42
	isolationTrees     = 100
	isolationSubsample = 256
)

type isoNode struct {
	feature int
	split   float64
	left    *isoNode
	right   *isoNode
	size    int // external node only
}

type isolationForest struct {
	trees     []*isoNode
	subsample int
}

// fitIsolationForest builds the ensemble on data, each tree over a random
// subsample without replacement.
func fitIsolationForest(data [][]float64, rng *rand.Rand) *isolationForest {
	n := len(data)
	psi := n
	if psi > isolationSubsample {
		psi = isolationSubsample
	}
	heightLimit := int(math.Ceil(math.Log2(float64(psi))))
	if heightLimit < 1 {
		heightLimit = 1
	}

	forest := &isolationForest{subsample: psi}
	sample := make([][]float64, psi)
	for t := 0; t < isolationTrees; t++ {
		for i, idx := range rng.Perm(n)[:psi] {
			sample[i] = data[idx]
		}
		forest.trees = append(forest.trees, buildIsoTree(sample, 0, heightLimit, rng))
	}
	return forest
}

func buildIsoTree(points [][]float64, depth, heightLimit int, rng *rand.Rand) *isoNode {
	if len(points) <= 1 || depth >= heightLimit {
		return &isoNode{size: len(points)}
	}

	// Splittable features are those with spread in this node.
	dims := len(points[0])
	var splittable []int
	for j := 0; j < dims; j++ {
		lo, hi := featureRange(points, j)
		if hi > lo {
			splittable = append(splittable, j)
		}
	}
	if len(splittable) == 0 {
		return &isoNode{size: len(points)}
	}

	feature := splittable[rng.Intn(len(splittable))]
	lo, hi := featureRange(points, feature)
	split := lo + rng.Float64()*(hi-lo)

	var left, right [][]float64
	for _, p := range points {
		if p[feature] < split {
			left = append(left, p)
		} else {
			right = append(right, p)
		}
	}
	return &isoNode{
		feature: feature,
		split:   split,
		left:    buildIsoTree(left, depth+1, heightLimit, rng),
		right:   buildIsoTree(right, depth+1, heightLimit, rng),
	}
}

func featureRange(points [][]float64, j int) (lo, hi float64) {
	lo, hi = points[0][j], points[0][j]
	for _, p := range points[1:] {
		if p[j] < lo {
			lo = p[j]
		}
		if p[j] > hi {
			hi = p[j]
		}
	}
	return lo, hi
}

// score returns the anomaly score for one point.
func (f *isolationForest) score(point []float64) float64 {
	var total float64
	for _, tree := range f.trees {
		total += pathLength(point, tree, 0)
	}
	avg := total / float64(len(f.trees))
	return math.Pow(2, -avg/averagePathLength(f.subsample))
}

// scoreAll returns the anomaly score per row.
func (f *isolationForest) scoreAll(data [][]float64) []float64 {
	scores := make([]float64, len(data))
	for i, point := range data {
		scores[i] = f.score(point)
	}
	return scores
}

func pathLength(point []float64, node *isoNode, depth int) float64 {
	if node.left == nil {
		return float64(depth) + averagePathLength(node.size)
	}
	if point[node.feature] < node.split {
		return pathLength(point, node.left, depth+1)
	}
	return pathLength(point, node.right, depth+1)
}

const eulerMascheroni = 0.5772156649

// averagePathLength is c(n), the expected path length of an unsuccessful
// BST search over n points; it normalizes path lengths across node sizes.
func averagePathLength(n int) float64 {
	if n <= 1 {
		return 0
	}
	h := math.Log(float64(n-1)) + eulerMascheroni
	return 2*h - 2*float64(n-1)/float64(n)
}
