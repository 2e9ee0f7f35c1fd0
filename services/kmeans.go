package services

import (
	"math"
	"math/rand"
)

// kmeansResult holds the best partitioning found across restarts.
type kmeansResult struct {
	labels    []int
	centroids [][]float64
	inertia   float64
}

const (
	clusteringSeed = 42
	kmeansRestarts = 10
	kmeansMaxIter  = 100
)

// runKMeans partitions data into k clusters with Lloyd's algorithm. The
// seeded generator plus restart count make repeated calls on the same
// input deterministic; the lowest-inertia run wins.
func runKMeans(data [][]float64, k int, rng *rand.Rand) kmeansResult {
	n := len(data)
	best := kmeansResult{inertia: math.Inf(1)}

	for restart := 0; restart < kmeansRestarts; restart++ {
		centroids := make([][]float64, k)
		for i, idx := range rng.Perm(n)[:k] {
			centroids[i] = append([]float64(nil), data[idx]...)
		}

		labels := make([]int, n)
		for i, point := range data {
			labels[i] = nearestCentroid(point, centroids)
		}
		for iter := 0; iter < kmeansMaxIter; iter++ {
			recomputeCentroids(data, labels, centroids)
			changed := false
			for i, point := range data {
				c := nearestCentroid(point, centroids)
				if labels[i] != c {
					labels[i] = c
					changed = true
				}
			}
			if !changed {
				break
			}
		}

		var inertia float64
		for i, point := range data {
			inertia += squaredDistance(point, centroids[labels[i]])
		}
		if inertia < best.inertia {
			best = kmeansResult{labels: labels, centroids: centroids, inertia: inertia}
		}
	}
	return best
}

func nearestCentroid(point []float64, centroids [][]float64) int {
	bestIdx := 0
	bestDist := math.Inf(1)
	for c, centroid := range centroids {
		if d := squaredDistance(point, centroid); d < bestDist {
			bestDist = d
			bestIdx = c
		}
	}
	return bestIdx
}

// recomputeCentroids moves each centroid to the mean of its members. An
// emptied cluster is re-seeded from the point farthest from its current
// centroid so k distinct clusters survive every iteration.
func recomputeCentroids(data [][]float64, labels []int, centroids [][]float64) {
	dims := len(data[0])
	counts := make([]int, len(centroids))
	sums := make([][]float64, len(centroids))
	for c := range centroids {
		sums[c] = make([]float64, dims)
	}
	for i, point := range data {
		counts[labels[i]]++
		for j, v := range point {
			sums[labels[i]][j] += v
		}
	}
	for c := range centroids {
		if counts[c] == 0 {
			far := farthestPoint(data, labels, centroids)
			copy(centroids[c], data[far])
			labels[far] = c
			continue
		}
		for j := range centroids[c] {
			centroids[c][j] = sums[c][j] / float64(counts[c])
		}
	}
}

func farthestPoint(data [][]float64, labels []int, centroids [][]float64) int {
	worst := 0
	worstDist := -1.0
	for i, point := range data {
		if d := squaredDistance(point, centroids[labels[i]]); d > worstDist {
			worstDist = d
			worst = i
		}
	}
	return worst
}

func squaredDistance(a, b []float64) float64 {
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}
