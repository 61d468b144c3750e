package match

import (
	"math"
	"strings"
)

// clamp bounds v to [lo, hi].
func clamp(v, lo, hi float64) float64 {
	return math.Min(hi, math.Max(lo, v))
}

// clampScore bounds an integer score to the surfaced [0,100] scale. Category
// scores may exceed the scale internally (bonuses); they are clamped here
// before leaving the engine.
func clampScore(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// weightedAggregate computes round(Σ score·weight / Σ weight) over the
// categories present in scores. Categories without usable data must not be
// in the map at all: they are excluded from both numerator and denominator,
// which renormalizes the remaining weights instead of counting missing data
// as zero. Returns 0 when nothing scored.
func weightedAggregate(scores map[Category]float64, weights map[Category]float64) int {
	var sum, weightSum float64
	for category, score := range scores {
		weight, ok := weights[category]
		if !ok {
			continue
		}
		sum += score * weight
		weightSum += weight
	}
	if weightSum == 0 {
		return 0
	}
	return int(math.Round(sum / weightSum))
}

// tier is one rung of a partial-credit ladder.
type tier struct {
	ok    bool
	score int
}

// partialCredit returns the score of the first tier that holds, evaluated
// strictest first, else the floor. Floors are deliberately non-zero so a
// sparse profile is marked down, not eliminated.
func partialCredit(floor int, tiers ...tier) int {
	for _, t := range tiers {
		if t.ok {
			return t.score
		}
	}
	return floor
}

// containsEither reports a case-insensitive bidirectional substring match.
// Empty strings never match.
func containsEither(a, b string) bool {
	a = strings.ToLower(strings.TrimSpace(a))
	b = strings.ToLower(strings.TrimSpace(b))
	if a == "" || b == "" {
		return false
	}
	return strings.Contains(a, b) || strings.Contains(b, a)
}

// overlapFraction counts how many of the mentor-side entries match any
// profile-side entry (bidirectional substring) and divides by the total
// mentor-side entries. The owner's breadth dilutes the score on purpose.
func overlapFraction(own, other []string) float64 {
	if len(own) == 0 {
		return 0
	}
	matched := 0
	for _, entry := range own {
		for _, candidate := range other {
			if containsEither(entry, candidate) {
				matched++
				break
			}
		}
	}
	return float64(matched) / float64(len(own))
}
