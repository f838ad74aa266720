package metrics

import (
	"math"
	"strings"
)

// maxBleuOrder is the highest n-gram order used by Score.
const maxBleuOrder = 4

// BleuScorer computes BLEU against a fixed set of reference sentences.
type BleuScorer struct {
	references [][]string
}

// NewBleuScorer returns a scorer over the given references. At least one
// reference is expected; an empty set scores every candidate 0.
func NewBleuScorer(references []string) *BleuScorer {
	tokenized := make([][]string, len(references))
	for i, ref := range references {
		tokenized[i] = tokenize(ref, false)
	}
	return &BleuScorer{references: tokenized}
}

// Score returns the BLEU score of candidate in [0, 1]: the geometric mean of
// clipped n-gram precisions up to order 4, scaled by the brevity penalty. A
// candidate identical to a reference scores 1.
func (s *BleuScorer) Score(candidate string) float64 {
	cand := tokenize(candidate, false)
	if len(cand) == 0 || len(s.references) == 0 {
		return 0
	}

	// Short candidates cannot form higher-order n-grams; scoring them over
	// the orders they do have keeps single-word candidates comparable.
	maxOrder := maxBleuOrder
	if len(cand) < maxOrder {
		maxOrder = len(cand)
	}

	logSum := 0.0
	for n := 1; n <= maxOrder; n++ {
		p := s.precision(cand, n)
		if p == 0 {
			return 0
		}
		logSum += math.Log(p)
	}
	geoMean := math.Exp(logSum / float64(maxOrder))

	return s.brevityPenalty(len(cand)) * geoMean
}

// precision is the clipped n-gram precision: each candidate n-gram counts at
// most as often as it appears in the closest-matching reference.
func (s *BleuScorer) precision(cand []string, n int) float64 {
	candCounts := ngramCounts(cand, n)
	if len(candCounts) == 0 {
		return 0
	}

	maxRefCounts := map[string]int{}
	for _, ref := range s.references {
		for gram, count := range ngramCounts(ref, n) {
			if count > maxRefCounts[gram] {
				maxRefCounts[gram] = count
			}
		}
	}

	matched, total := 0, 0
	for gram, count := range candCounts {
		total += count
		if clip := maxRefCounts[gram]; clip < count {
			matched += clip
		} else {
			matched += count
		}
	}
	return float64(matched) / float64(total)
}

// brevityPenalty penalizes candidates shorter than the closest reference
// length.
func (s *BleuScorer) brevityPenalty(candLen int) float64 {
	closest := len(s.references[0])
	for _, ref := range s.references[1:] {
		if diff, best := abs(len(ref)-candLen), abs(closest-candLen); diff < best || (diff == best && len(ref) < closest) {
			closest = len(ref)
		}
	}
	if candLen >= closest {
		return 1
	}
	return math.Exp(1 - float64(closest)/float64(candLen))
}

func ngramCounts(tokens []string, n int) map[string]int {
	counts := map[string]int{}
	for i := 0; i+n <= len(tokens); i++ {
		counts[strings.Join(tokens[i:i+n], " ")]++
	}
	return counts
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
