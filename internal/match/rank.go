package match

import "sort"

// Scored pairs a candidate with its scoring result.
type Scored[T any] struct {
	Candidate T
	Result    *Result
}

// Rank orders scored candidates best-first: overall score descending, ties
// broken by admission chance descending, remaining ties keep the original
// catalog order. Candidates scoring at or below minScore are dropped, and
// the result is truncated to limit entries when limit is positive. The input
// slice is not modified.
func Rank[T any](items []Scored[T], minScore, limit int) []Scored[T] {
	ranked := make([]Scored[T], 0, len(items))
	for _, item := range items {
		if item.Result == nil || item.Result.OverallScore <= minScore {
			continue
		}
		ranked = append(ranked, item)
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i].Result, ranked[j].Result
		if a.OverallScore != b.OverallScore {
			return a.OverallScore > b.OverallScore
		}
		return a.AdmissionChance > b.AdmissionChance
	})

	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}
