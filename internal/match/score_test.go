package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWeightedAggregateRenormalizes(t *testing.T) {
	weights := map[Category]float64{
		CategoryAcademicMatch: 0.5,
		CategoryProgramMatch:  0.5,
	}

	// a category without data must not count as zero against the total
	got := weightedAggregate(map[Category]float64{CategoryAcademicMatch: 100}, weights)
	assert.Equal(t, 100, got)

	got = weightedAggregate(map[Category]float64{
		CategoryAcademicMatch: 100,
		CategoryProgramMatch:  50,
	}, weights)
	assert.Equal(t, 75, got)
}

func TestWeightedAggregateEmpty(t *testing.T) {
	weights := map[Category]float64{CategoryAcademicMatch: 1}
	assert.Equal(t, 0, weightedAggregate(nil, weights))
	assert.Equal(t, 0, weightedAggregate(map[Category]float64{}, weights))
	// categories with no configured weight are ignored
	assert.Equal(t, 0, weightedAggregate(map[Category]float64{CategoryFit: 90}, weights))
}

func TestPartialCreditFloor(t *testing.T) {
	got := partialCredit(20, tier{false, 100}, tier{false, 60})
	assert.Equal(t, 20, got)

	got = partialCredit(20, tier{false, 100}, tier{true, 60}, tier{true, 40})
	assert.Equal(t, 60, got)
}

func TestClampScore(t *testing.T) {
	assert.Equal(t, 0, clampScore(-3))
	assert.Equal(t, 100, clampScore(140))
	assert.Equal(t, 55, clampScore(55))
}

func TestContainsEither(t *testing.T) {
	assert.True(t, containsEither("Computer Science", "computer science"))
	assert.True(t, containsEither("Science", "Computer Science"))
	assert.True(t, containsEither("Artificial Intelligence", "Intelligence"))
	// acronyms are not substrings of their expansions
	assert.False(t, containsEither("Artificial Intelligence", "AI"))
	assert.False(t, containsEither("Biology", "Computer Science"))
	assert.False(t, containsEither("", "Computer Science"))
	assert.False(t, containsEither("Computer Science", "  "))
}

func TestOverlapFraction(t *testing.T) {
	own := []string{"Machine Learning", "Quantum Computing", "Robotics", "Compilers"}
	other := []string{"machine learning", "robotics"}
	assert.InDelta(t, 0.5, overlapFraction(own, other), 1e-9)
	assert.Zero(t, overlapFraction(nil, other))
	assert.Zero(t, overlapFraction(own, nil))
}

func TestDedupeKeepsFirstSeenOrder(t *testing.T) {
	got := dedupe([]string{"b", "a", "b", "c", "a"})
	assert.Equal(t, []string{"b", "a", "c"}, got)
	assert.Nil(t, dedupe(nil))
}
