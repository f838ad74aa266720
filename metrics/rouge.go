// Package metrics provides traditional text-similarity metrics (ROUGE and
// BLEU) for evaluating generated conversation turns against references. The
// scorers are pure computation and safe for concurrent use.
package metrics

import (
	"strings"
	"unicode"
)

// RougeType selects a ROUGE variant.
type RougeType string

const (
	// Rouge1 scores unigram overlap.
	Rouge1 RougeType = "rouge1"
	// RougeL scores the longest common subsequence.
	RougeL RougeType = "rougeL"
)

// RougeScore holds the precision, recall and F1 for one ROUGE variant.
type RougeScore struct {
	Precision float64
	Recall    float64
	F1        float64
}

// RougeScorer computes ROUGE scores for a candidate against a reference.
type RougeScorer struct {
	stemmer bool
	types   []RougeType
}

// NewRougeScorer returns a scorer for the given variants. When stemmer is
// true, tokens are reduced with a light suffix stemmer before matching, so
// "jumps" and "jumping" count as the same word.
func NewRougeScorer(stemmer bool, types ...RougeType) *RougeScorer {
	if len(types) == 0 {
		types = []RougeType{Rouge1}
	}
	return &RougeScorer{stemmer: stemmer, types: types}
}

// Score computes the configured ROUGE variants for candidate against
// reference.
func (s *RougeScorer) Score(candidate, reference string) map[RougeType]RougeScore {
	cand := tokenize(candidate, s.stemmer)
	ref := tokenize(reference, s.stemmer)

	scores := make(map[RougeType]RougeScore, len(s.types))
	for _, t := range s.types {
		switch t {
		case RougeL:
			scores[t] = prf(lcsLength(cand, ref), len(cand), len(ref))
		default:
			scores[t] = prf(unigramOverlap(cand, ref), len(cand), len(ref))
		}
	}
	return scores
}

// prf builds a RougeScore from a match count and the candidate/reference
// lengths, guarding the empty-input divisions.
func prf(matches, candLen, refLen int) RougeScore {
	var score RougeScore
	if candLen > 0 {
		score.Precision = float64(matches) / float64(candLen)
	}
	if refLen > 0 {
		score.Recall = float64(matches) / float64(refLen)
	}
	if score.Precision+score.Recall > 0 {
		score.F1 = 2 * score.Precision * score.Recall / (score.Precision + score.Recall)
	}
	return score
}

// unigramOverlap counts candidate tokens that also occur in the reference,
// clipped to the reference's token counts.
func unigramOverlap(cand, ref []string) int {
	refCounts := make(map[string]int, len(ref))
	for _, tok := range ref {
		refCounts[tok]++
	}
	matches := 0
	for _, tok := range cand {
		if refCounts[tok] > 0 {
			refCounts[tok]--
			matches++
		}
	}
	return matches
}

func lcsLength(a, b []string) int {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			if a[i-1] == b[j-1] {
				curr[j] = prev[j-1] + 1
			} else if prev[j] >= curr[j-1] {
				curr[j] = prev[j]
			} else {
				curr[j] = curr[j-1]
			}
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}

func tokenize(text string, stem bool) []string {
	tokens := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	if !stem {
		return tokens
	}
	stemmed := make([]string, len(tokens))
	for i, tok := range tokens {
		stemmed[i] = lightStem(tok)
	}
	return stemmed
}

// lightStem strips common English suffixes. It is intentionally crude; the
// goal is matching inflected forms, not linguistic correctness.
func lightStem(tok string) string {
	for _, suffix := range []string{"ing", "ed", "es", "s"} {
		if trimmed, ok := strings.CutSuffix(tok, suffix); ok && len(trimmed) >= 3 {
			return trimmed
		}
	}
	return tok
}
