package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func scored(name string, overall, admission int) Scored[string] {
	return Scored[string]{
		Candidate: name,
		Result:    &Result{OverallScore: overall, AdmissionChance: admission},
	}
}

func names[T any](items []Scored[T]) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		out = append(out, item.Candidate)
	}
	return out
}

func TestRankOrdersAndCuts(t *testing.T) {
	items := []Scored[string]{
		scored("low", 15, 50),
		scored("mid", 60, 30),
		scored("top", 85, 10),
		scored("edge", 20, 90), // at the cutoff, dropped
	}
	ranked := Rank(items, 20, 0)
	assert.Equal(t, []string{"top", "mid"}, names(ranked))
}

func TestRankTieBreakByAdmissionChance(t *testing.T) {
	items := []Scored[string]{
		scored("a", 70, 12),
		scored("b", 70, 40),
		scored("c", 70, 40),
	}
	ranked := Rank(items, 0, 0)
	// higher admission chance wins the tie; equal pairs keep catalog order
	assert.Equal(t, []string{"b", "c", "a"}, names(ranked))
}

func TestRankStableForEqualResults(t *testing.T) {
	items := []Scored[string]{
		scored("first", 50, 20),
		scored("second", 50, 20),
		scored("third", 50, 20),
	}
	ranked := Rank(items, 0, 0)
	assert.Equal(t, []string{"first", "second", "third"}, names(ranked))
}

func TestRankTruncates(t *testing.T) {
	items := []Scored[string]{
		scored("a", 90, 0),
		scored("b", 80, 0),
		scored("c", 70, 0),
	}
	ranked := Rank(items, 0, 2)
	assert.Equal(t, []string{"a", "b"}, names(ranked))

	// non-positive limit means unlimited
	assert.Len(t, Rank(items, 0, 0), 3)
	assert.Len(t, Rank(items, 0, -1), 3)
}

func TestRankDoesNotMutateInput(t *testing.T) {
	items := []Scored[string]{
		scored("worst", 10, 0),
		scored("best", 90, 0),
	}
	Rank(items, 0, 0)
	assert.Equal(t, "worst", items[0].Candidate)
	assert.Equal(t, "best", items[1].Candidate)
}

func TestRankSkipsNilResults(t *testing.T) {
	items := []Scored[string]{
		{Candidate: "broken"},
		scored("ok", 50, 0),
	}
	ranked := Rank(items, 0, 0)
	assert.Equal(t, []string{"ok"}, names(ranked))
}
