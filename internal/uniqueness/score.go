package uniqueness

import "strings"

// Score returns the uniqueness of draft content against a corpus of already
// accepted bodies, in [0, 100]. The draft is tokenized into a word set; for
// each corpus entry the overlap fraction |intersection| / |draft set| is
// computed, and the complement of the worst (maximum) overlap is returned.
//
// An empty corpus scores exactly 100: there is nothing to conflict with.
//
// This is a cheap, order-independent lexical heuristic, not semantic
// similarity. A draft that reuses a large shared boilerplate footer scores
// lower even when its substantive content differs, so callers must keep
// boilerplate small relative to total length.
func Score(draft string, corpus []string) float64 {
	if len(corpus) == 0 {
		return 100
	}

	draftWords := wordSet(draft)
	if len(draftWords) == 0 {
		return 100
	}

	maxOverlap := 0.0
	for _, existing := range corpus {
		existingWords := wordSet(existing)
		intersection := 0
		for word := range draftWords {
			if existingWords[word] {
				intersection++
			}
		}
		overlap := float64(intersection) / float64(len(draftWords)) * 100
		if overlap > maxOverlap {
			maxOverlap = overlap
		}
	}

	return 100 - maxOverlap
}

func wordSet(text string) map[string]bool {
	set := make(map[string]bool)
	for _, word := range strings.Fields(strings.ToLower(text)) {
		set[word] = true
	}
	return set
}
