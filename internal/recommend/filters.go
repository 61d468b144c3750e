// Package recommend turns catalogs and a student profile into ranked
// recommendation lists. Candidate filters narrow a catalog before scoring;
// the scorers in internal/match stay pure and filter-free.
package recommend

import (
	"strings"

	"go.uber.org/zap"

	"github.com/uniassist/uniassist/internal/catalog"
)

// Step describes the outcome of one candidate filter.
type Step struct {
	Initial int
	Dropped int
	Left    int
}

// Filter narrows a candidate list before scoring. Filters must not mutate
// the input slice.
type Filter[T any] interface {
	Name() string
	IsEnabled() bool
	Apply(items []T) ([]T, Step, error)
}

// runFilters applies filters in order, logging each step.
func runFilters[T any](logger *zap.Logger, filters []Filter[T], items []T) ([]T, error) {
	for _, filter := range filters {
		if !filter.IsEnabled() {
			if logger != nil {
				logger.Info("filter disabled", zap.String("name", filter.Name()))
			}
			continue
		}

		next, step, err := filter.Apply(items)
		if err != nil {
			return nil, err
		}
		if logger != nil {
			logger.Info("filter step",
				zap.String("name", filter.Name()),
				zap.Int("initial", step.Initial),
				zap.Int("dropped", step.Dropped),
				zap.Int("left", step.Left),
			)
		}
		items = next
	}
	return items, nil
}

type mentorAvailabilityFilter struct{}

// NewMentorAvailability creates a filter that removes mentors not open for
// mentoring. They are never scored.
func NewMentorAvailability() Filter[*catalog.Mentor] {
	return &mentorAvailabilityFilter{}
}

func (f *mentorAvailabilityFilter) Name() string { return "mentor_availability" }

func (f *mentorAvailabilityFilter) IsEnabled() bool { return true }

func (f *mentorAvailabilityFilter) Apply(items []*catalog.Mentor) ([]*catalog.Mentor, Step, error) {
	initial := len(items)
	kept := make([]*catalog.Mentor, 0, initial)
	for _, mentor := range items {
		if mentor.AvailableForMentoring {
			kept = append(kept, mentor)
		}
	}
	return kept, Step{Initial: initial, Dropped: initial - len(kept), Left: len(kept)}, nil
}

type roommateSearchFilter struct {
	query string
}

// NewRoommateSearch creates a filter that keeps candidates whose name, major
// or any interest contains the query. An empty query disables the filter.
func NewRoommateSearch(query string) Filter[*catalog.RoommateCandidate] {
	return &roommateSearchFilter{query: strings.ToLower(strings.TrimSpace(query))}
}

func (f *roommateSearchFilter) Name() string { return "roommate_search" }

func (f *roommateSearchFilter) IsEnabled() bool { return f.query != "" }

func (f *roommateSearchFilter) Apply(items []*catalog.RoommateCandidate) ([]*catalog.RoommateCandidate, Step, error) {
	initial := len(items)
	kept := make([]*catalog.RoommateCandidate, 0, initial)
	for _, candidate := range items {
		if f.matches(candidate) {
			kept = append(kept, candidate)
		}
	}
	return kept, Step{Initial: initial, Dropped: initial - len(kept), Left: len(kept)}, nil
}

func (f *roommateSearchFilter) matches(c *catalog.RoommateCandidate) bool {
	if strings.Contains(strings.ToLower(c.Name), f.query) {
		return true
	}
	if strings.Contains(strings.ToLower(c.Major), f.query) {
		return true
	}
	for _, interest := range c.Interests {
		if strings.Contains(strings.ToLower(interest), f.query) {
			return true
		}
	}
	return false
}

type roommateUniversityFilter struct {
	university string
}

// NewRoommateUniversity creates a filter that keeps candidates targeting the
// given university. An empty value disables the filter.
func NewRoommateUniversity(university string) Filter[*catalog.RoommateCandidate] {
	return &roommateUniversityFilter{university: strings.TrimSpace(university)}
}

func (f *roommateUniversityFilter) Name() string { return "roommate_university" }

func (f *roommateUniversityFilter) IsEnabled() bool { return f.university != "" }

func (f *roommateUniversityFilter) Apply(items []*catalog.RoommateCandidate) ([]*catalog.RoommateCandidate, Step, error) {
	initial := len(items)
	kept := make([]*catalog.RoommateCandidate, 0, initial)
	for _, candidate := range items {
		for _, target := range candidate.TargetUniversities {
			if strings.EqualFold(strings.TrimSpace(target), f.university) {
				kept = append(kept, candidate)
				break
			}
		}
	}
	return kept, Step{Initial: initial, Dropped: initial - len(kept), Left: len(kept)}, nil
}

type roommateRoomTypeFilter struct {
	roomType string
}

// NewRoommateRoomType creates a filter that keeps candidates wanting the
// given room type. An empty value disables the filter.
func NewRoommateRoomType(roomType string) Filter[*catalog.RoommateCandidate] {
	return &roommateRoomTypeFilter{roomType: strings.TrimSpace(roomType)}
}

func (f *roommateRoomTypeFilter) Name() string { return "roommate_room_type" }

func (f *roommateRoomTypeFilter) IsEnabled() bool { return f.roomType != "" }

func (f *roommateRoomTypeFilter) Apply(items []*catalog.RoommateCandidate) ([]*catalog.RoommateCandidate, Step, error) {
	initial := len(items)
	kept := make([]*catalog.RoommateCandidate, 0, initial)
	for _, candidate := range items {
		if strings.EqualFold(strings.TrimSpace(candidate.Housing.RoomType), f.roomType) {
			kept = append(kept, candidate)
		}
	}
	return kept, Step{Initial: initial, Dropped: initial - len(kept), Left: len(kept)}, nil
}
