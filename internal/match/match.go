// Package match pairs movie titles across independently-scraped record sets.
// The two source sites share no movie id, so correspondence is established by
// string similarity alone: word overlap dominates (titles are usually
// near-exact modulo punctuation and edition suffixes), edit distance breaks
// ties on typos and transliteration differences.
package match

import (
	"strings"

	"github.com/antzucaro/matchr"
)

const (
	jaccardWeight     = 0.8
	levenshteinWeight = 0.2

	// bonus when the first two words agree, anchors franchise and sequel
	// titles that otherwise share few words
	prefixBonus = 0.2
)

// tokenize lowercases and strips surrounding punctuation so "Dune:" and
// "Dune" count as the same word.
func tokenize(title string) []string {
	fields := strings.Fields(strings.ToLower(title))
	words := fields[:0]
	for _, f := range fields {
		if w := strings.Trim(f, `.,:;!?()[]"'`); w != "" {
			words = append(words, w)
		}
	}
	return words
}

func wordSetSimilarity(a, b string) float64 {
	wordsA := tokenize(a)
	wordsB := tokenize(b)
	if len(wordsA) == 0 || len(wordsB) == 0 {
		return 0
	}

	setB := make(map[string]bool, len(wordsB))
	for _, w := range wordsB {
		setB[w] = true
	}

	union := make(map[string]bool, len(wordsA)+len(wordsB))
	intersection := 0
	for _, w := range wordsA {
		if setB[w] && !union[w] {
			intersection++
		}
		union[w] = true
	}
	for _, w := range wordsB {
		union[w] = true
	}

	score := float64(intersection) / float64(len(union))

	if len(wordsA) >= 2 && len(wordsB) >= 2 &&
		wordsA[0] == wordsB[0] && wordsA[1] == wordsB[1] {
		score += prefixBonus
	}
	if score > 1 {
		score = 1
	}
	return score
}

func levenshteinSimilarity(a, b string) float64 {
	la := len([]rune(a))
	lb := len([]rune(b))
	maxLen := la
	if lb > maxLen {
		maxLen = lb
	}
	if maxLen == 0 {
		return 1
	}
	distance := matchr.Levenshtein(strings.ToLower(a), strings.ToLower(b))
	return 1 - float64(distance)/float64(maxLen)
}

// Similarity scores two titles in [0,1].
func Similarity(a, b string) float64 {
	return jaccardWeight*wordSetSimilarity(a, b) + levenshteinWeight*levenshteinSimilarity(a, b)
}

// Closest returns the best-scoring candidate for title, accepting it only
// above the threshold. Below threshold the caller must fall back to sentinel
// metadata, a forced low-confidence pairing is worse than no pairing.
func Closest(title string, candidates []string, threshold float64) (string, float64, bool) {
	var best string
	var bestScore float64

	for _, candidate := range candidates {
		score := Similarity(title, candidate)
		if score > bestScore {
			bestScore = score
			best = candidate
		}
	}

	if bestScore <= threshold {
		return "", bestScore, false
	}
	return best, bestScore, true
}
