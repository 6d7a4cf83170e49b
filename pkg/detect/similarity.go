package detect

import "strings"

// tokenize lowercases and splits on non-alphanumeric runes.
func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		isAlnum := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
		return !isAlnum
	})
}

// TokenSetSimilarity returns the Jaccard similarity of the token sets of
// two texts. Used for near-duplicate detection: two turns above the
// configured threshold count as repetition.
func TokenSetSimilarity(a, b string) float64 {
	setA := make(map[string]bool)
	for _, tok := range tokenize(a) {
		setA[tok] = true
	}
	setB := make(map[string]bool)
	for _, tok := range tokenize(b) {
		setB[tok] = true
	}
	if len(setA) == 0 || len(setB) == 0 {
		return 0
	}

	intersection := 0
	for tok := range setA {
		if setB[tok] {
			intersection++
		}
	}
	union := len(setA) + len(setB) - intersection
	return float64(intersection) / float64(union)
}

// RepetitionCount returns how many prior user turns are near-duplicates of
// the current message at the given similarity threshold.
func RepetitionCount(message string, priorUserTurns []string, threshold float64) int {
	count := 0
	for _, prior := range priorUserTurns {
		if TokenSetSimilarity(message, prior) >= threshold {
			count++
		}
	}
	return count
}
