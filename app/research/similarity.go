package research

import (
	"strings"
)

// Similarity thresholds. Downstream email behavior (what gets suppressed
// as a repeat) depends on this exact arithmetic, so the values and the
// ratio-over-minimum rule are fixed.
const (
	BlogTopicThreshold    = 0.5
	CoveredTopicThreshold = 0.6
	CrossRunThreshold     = 0.5
)

// KeywordsSimilar reports whether two keyword sets overlap above the given
// threshold. A candidate token matches when some reference token is a
// substring of it or it is a substring of some reference token, which
// catches simple stems ("bah" vs "bahs"). The ratio is taken over the
// smaller set. Empty sets never match.
func KeywordsSimilar(candidate, reference []string, threshold float64) bool {
	if len(candidate) == 0 || len(reference) == 0 {
		return false
	}

	matches := 0
	for _, kw := range candidate {
		for _, ref := range reference {
			if strings.Contains(ref, kw) || strings.Contains(kw, ref) {
				matches++
				break
			}
		}
	}

	smaller := len(candidate)
	if len(reference) < smaller {
		smaller = len(reference)
	}

	overlapRatio := float64(matches) / float64(smaller)
	return overlapRatio > threshold
}

// TitlesSimilar applies the keyword heuristic at the blog threshold plus a
// cheap prefix fallback: the first 20 lowercase characters of one title
// contained in the first 30 of the other. Short keyword-sparse titles that
// are lexically identical would slip past the keyword check alone.
func TitlesSimilar(newTitle, existingTitle string) bool {
	newKeywords := ExtractKeywords(newTitle)
	existingKeywords := ExtractKeywords(existingTitle)

	if KeywordsSimilar(newKeywords, existingKeywords, BlogTopicThreshold) {
		return true
	}

	newPrefix := prefixOf(strings.ToLower(newTitle), 30)
	existingPrefix := prefixOf(strings.ToLower(existingTitle), 30)

	return strings.Contains(newPrefix, prefixOf(existingPrefix, 20)) ||
		strings.Contains(existingPrefix, prefixOf(newPrefix, 20))
}

func prefixOf(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
