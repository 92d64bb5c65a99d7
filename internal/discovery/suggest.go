package discovery

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

const (
	// DefaultSuggestionThreshold is the minimum normalized similarity for a
	// capability to appear in "did you mean" output.
	DefaultSuggestionThreshold = 0.6

	// DefaultSuggestionLimit caps the number of suggestions returned.
	DefaultSuggestionLimit = 5
)

// similarity is 1 - editDistance/maxLen, so 1.0 is an exact match and 0.0
// shares nothing. Comparison is case-insensitive: suggestions are a typo
// recovery aid, not an exact lookup.
func similarity(a, b string) float64 {
	a = strings.ToLower(a)
	b = strings.ToLower(b)
	if a == b {
		return 1.0
	}
	maxLen := len(a)
	if len(b) > maxLen {
		maxLen = len(b)
	}
	if maxLen == 0 {
		return 1.0
	}
	dist := levenshtein.ComputeDistance(a, b)
	return 1.0 - float64(dist)/float64(maxLen)
}

// Suggest returns up to limit capability names similar to invalidName,
// best first. Each capability is scored by the better of its name and id
// similarity; scores below threshold are dropped. Pass the Default*
// constants for standard "did you mean" behavior.
func (r *Resolver) Suggest(invalidName string, threshold float64, limit int) []string {
	if threshold <= 0 {
		threshold = DefaultSuggestionThreshold
	}
	if limit <= 0 {
		limit = DefaultSuggestionLimit
	}

	type scored struct {
		name  string
		score float64
		order int
	}

	var candidates []scored
	for i, rec := range r.store.All() {
		score := similarity(invalidName, rec.Name)
		if s := similarity(invalidName, rec.ID); s > score {
			score = s
		}
		if score >= threshold {
			candidates = append(candidates, scored{name: rec.Name, score: score, order: i})
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].score != candidates[j].score {
			return candidates[i].score > candidates[j].score
		}
		return candidates[i].order < candidates[j].order
	})

	if len(candidates) > limit {
		candidates = candidates[:limit]
	}
	names := make([]string, len(candidates))
	for i, c := range candidates {
		names[i] = c.name
	}
	return names
}
