// Package cluster groups cards by mechanic feature vectors into a bounded
// number of natural clusters. Cluster membership is a descriptive signal
// for grouping and explanation, never an authoritative scoring input.
package cluster

import (
	"github.com/okian/manascore/internal/domain/synergy"
)

// DefaultClusterCount is the cluster count selected offline by the
// model-selection step; it is not re-derived per scoring run.
const DefaultClusterCount = 8

// Assigner assigns cards to the nearest fixed centroid. It holds read-only
// state and is safe for concurrent use.
type Assigner struct {
	top       []string
	topIndex  map[string]int
	centroids [][]float64
	norms     []float64
}

// NewAssigner builds an assigner over the given top-mechanic feature space
// with fixed centroids. Centroid vectors must have one component per top
// mechanic.
func NewAssigner(top []string, centroids [][]float64) *Assigner {
	a := &Assigner{
		top:       append([]string(nil), top...),
		topIndex:  make(map[string]int, len(top)),
		centroids: centroids,
		norms:     make([]float64, len(centroids)),
	}
	for i, id := range a.top {
		a.topIndex[id] = i
	}
	for i, c := range centroids {
		for _, v := range c {
			a.norms[i] += v * v
		}
	}
	return a
}

// Count returns the number of clusters.
func (a *Assigner) Count() int {
	return len(a.centroids)
}

// Assign returns the cluster id for a mechanic set: the centroid with the
// smallest squared distance to the card's binary feature vector, ties going
// to the lower id. Cards with no top mechanics collapse into whichever
// cluster sits nearest the origin; the resulting imbalance is expected for
// a sparse feature space.
func (a *Assigner) Assign(mechanicIDs []string) int {
	if len(a.centroids) == 0 {
		return 0
	}

	// Indices of the card's mechanics inside the feature space.
	features := make([]int, 0, len(mechanicIDs))
	for _, id := range mechanicIDs {
		if i, ok := a.topIndex[id]; ok {
			features = append(features, i)
		}
	}

	best, bestDist := 0, -1.0
	for i, c := range a.centroids {
		// ||c - x||^2 = ||c||^2 - 2*c.x + ||x||^2 for binary x.
		dist := a.norms[i] + float64(len(features))
		for _, f := range features {
			dist -= 2 * c[f]
		}
		if bestDist < 0 || dist < bestDist {
			best, bestDist = i, dist
		}
	}
	return best
}

// Fit derives centroids from a corpus with deterministic k-means over the
// tables' top-mechanic feature space and returns a ready assigner. The
// same corpus and tables always produce identical centroids.
func Fit(mechanicSets [][]string, tables *synergy.Tables, k int) *Assigner {
	top := tables.TopMechanics()
	if k <= 0 {
		k = DefaultClusterCount
	}
	if k > len(top) && len(top) > 0 {
		k = len(top)
	}
	if len(top) == 0 {
		return NewAssigner(nil, nil)
	}

	topIndex := make(map[string]int, len(top))
	for i, id := range top {
		topIndex[id] = i
	}

	vectors := make([][]int, len(mechanicSets))
	for i, ids := range mechanicSets {
		for _, id := range ids {
			if j, ok := topIndex[id]; ok {
				vectors[i] = append(vectors[i], j)
			}
		}
	}

	centroids := kmeans(vectors, len(top), k)
	return NewAssigner(top, centroids)
}
