package match

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/uniassist/uniassist/internal/catalog"
	"github.com/uniassist/uniassist/internal/profile"
)

var rentNumbers = regexp.MustCompile(`\d+`)

// RoommateScorer scores roommate candidates against one student profile.
//
// Unlike the other scorers this one is additive: fixed point values
// accumulate per matching signal and the sum is clamped to [0,100]. There is
// no renormalization and no narrative output.
type RoommateScorer struct {
	profile *profile.StudentProfile
	params  RoommateParams
}

// NewRoommateScorer builds a scorer for the given profile with default
// tuning.
func NewRoommateScorer(p *profile.StudentProfile) (*RoommateScorer, error) {
	if p == nil {
		return nil, missingInput("profile", "student profile is required")
	}
	return &RoommateScorer{profile: p, params: DefaultRoommateParams()}, nil
}

// WithParams swaps the tuning constants.
func (s *RoommateScorer) WithParams(params RoommateParams) *RoommateScorer {
	s.params = params
	return s
}

// Score evaluates one candidate. All comparisons are case-insensitive on
// trimmed text; malformed housing input scores zero for that signal instead
// of faulting.
func (s *RoommateScorer) Score(c *catalog.RoommateCandidate) (*Result, error) {
	if c == nil {
		return nil, missingInput("roommate", "roommate record is required")
	}
	if c.Name == "" {
		return nil, missingInput("roommate.name", "name is required")
	}

	p := s.profile
	params := s.params
	score := 0

	if anyShared(c.TargetUniversities, p.TargetUniversities) {
		score += params.SharedUniversity
	}
	score += sharedCount(c.LivingPreferences, p.LivingPreferences) * params.PerLifestyleTag
	score += sharedCount(c.Interests, p.Interests) * params.PerInterest

	if rentRangesOverlap(c.Housing.RentRange, p.Housing.RentRange) {
		score += params.RentOverlap
	}
	if equalText(c.Housing.MoveInDate, p.Housing.MoveInDate) {
		score += params.MoveInDate
	}
	if equalText(c.Housing.Location, p.Housing.Location) {
		score += params.Location
	}
	if equalText(c.Housing.RoomType, p.Housing.RoomType) {
		score += params.RoomType
	}

	return &Result{OverallScore: clampScore(score)}, nil
}

func equalText(a, b string) bool {
	a = strings.TrimSpace(a)
	b = strings.TrimSpace(b)
	if a == "" || b == "" {
		return false
	}
	return strings.EqualFold(a, b)
}

func anyShared(a, b []string) bool {
	for _, item := range a {
		for _, other := range b {
			if equalText(item, other) {
				return true
			}
		}
	}
	return false
}

func sharedCount(a, b []string) int {
	count := 0
	for _, item := range a {
		for _, other := range b {
			if equalText(item, other) {
				count++
				break
			}
		}
	}
	return count
}

// rentRangesOverlap parses the first two numbers out of each "$min - $max"
// string and reports whether the two intervals intersect. Sides with fewer
// than two numbers never overlap.
func rentRangesOverlap(a, b string) bool {
	aMin, aMax, ok := parseRentRange(a)
	if !ok {
		return false
	}
	bMin, bMax, ok := parseRentRange(b)
	if !ok {
		return false
	}
	return aMax >= bMin && aMin <= bMax
}

func parseRentRange(s string) (min, max int, ok bool) {
	numbers := rentNumbers.FindAllString(s, 2)
	if len(numbers) < 2 {
		return 0, 0, false
	}
	min, err := strconv.Atoi(numbers[0])
	if err != nil {
		return 0, 0, false
	}
	max, err = strconv.Atoi(numbers[1])
	if err != nil {
		return 0, 0, false
	}
	return min, max, true
}
