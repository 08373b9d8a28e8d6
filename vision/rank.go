package vision

import "sort"

// ClassScore pairs a class index with its probability.
type ClassScore struct {
	Index      int
	Confidence float32
}

// ArgMax returns the index and value of the largest probability. Ties go to
// the lowest index. An empty vector returns (-1, 0).
func ArgMax(probs []float32) (int, float32) {
	if len(probs) == 0 {
		return -1, 0
	}
	bestIdx, bestVal := 0, probs[0]
	for i := 1; i < len(probs); i++ {
		if probs[i] > bestVal {
			bestIdx, bestVal = i, probs[i]
		}
	}
	return bestIdx, bestVal
}

// TopK returns the k highest-probability classes in descending order.
// Equal probabilities rank by lower index (stable order).
func TopK(probs []float32, k int) []ClassScore {
	scores := make([]ClassScore, len(probs))
	for i, p := range probs {
		scores[i] = ClassScore{Index: i, Confidence: p}
	}
	sort.SliceStable(scores, func(a, b int) bool {
		return scores[a].Confidence > scores[b].Confidence
	})
	if k > len(scores) {
		k = len(scores)
	}
	return scores[:k]
}
