package cluster

// maxIterations caps Lloyd iterations; sparse binary corpora converge in a
// handful of rounds.
const maxIterations = 20

// kmeans runs deterministic Lloyd iterations over sparse binary vectors in
// a dim-dimensional space. Initialization seeds centroid i on the one-hot
// vector of feature i (features are frequency-ranked), so there is no
// random component anywhere.
func kmeans(vectors [][]int, dim, k int) [][]float64 {
	centroids := make([][]float64, k)
	for i := range centroids {
		centroids[i] = make([]float64, dim)
		centroids[i][i%dim] = 1
	}

	assignments := make([]int, len(vectors))
	for iter := 0; iter < maxIterations; iter++ {
		changed := false
		for vi, features := range vectors {
			best, bestDist := 0, -1.0
			for ci, c := range centroids {
				dist := float64(len(features))
				for _, v := range c {
					dist += v * v
				}
				for _, f := range features {
					dist -= 2 * c[f]
				}
				if bestDist < 0 || dist < bestDist {
					best, bestDist = ci, dist
				}
			}
			if assignments[vi] != best {
				assignments[vi] = best
				changed = true
			}
		}
		if !changed && iter > 0 {
			break
		}

		// Recompute centroids as member means; empty clusters keep their
		// previous position instead of being reseeded randomly.
		counts := make([]int, k)
		sums := make([][]float64, k)
		for i := range sums {
			sums[i] = make([]float64, dim)
		}
		for vi, features := range vectors {
			ci := assignments[vi]
			counts[ci]++
			for _, f := range features {
				sums[ci][f]++
			}
		}
		for ci := range centroids {
			if counts[ci] == 0 {
				continue
			}
			for d := 0; d < dim; d++ {
				centroids[ci][d] = sums[ci][d] / float64(counts[ci])
			}
		}
	}
	return centroids
}
