package match

import (
	"math"
	"strings"

	"github.com/uniassist/uniassist/internal/catalog"
	"github.com/uniassist/uniassist/internal/profile"
)

// MentorScorer scores mentors against one student profile.
//
// Unlike the university scorer, a category only enters the aggregate when
// both sides carry data for it. A category with data that fails to match
// still counts, with a zero score: the student is penalized for a stated
// preference a mentor does not meet, but never for silence.
type MentorScorer struct {
	profile *profile.StudentProfile
	params  MentorParams
}

// NewMentorScorer builds a scorer for the given profile with default tuning.
func NewMentorScorer(p *profile.StudentProfile) (*MentorScorer, error) {
	if p == nil {
		return nil, missingInput("profile", "student profile is required")
	}
	return &MentorScorer{profile: p, params: DefaultMentorParams()}, nil
}

// WithParams swaps the tuning constants.
func (s *MentorScorer) WithParams(params MentorParams) *MentorScorer {
	s.params = params
	return s
}

// Score evaluates one mentor. Returns 0 overall when no category has data.
func (s *MentorScorer) Score(m *catalog.Mentor) (*Result, error) {
	if m == nil {
		return nil, missingInput("mentor", "mentor record is required")
	}
	if m.Name == "" {
		return nil, missingInput("mentor.name", "name is required")
	}

	p := s.profile
	scores := make(map[Category]float64, 4)

	if p.IntendedMajor != "" && m.Field != "" {
		score := 0.0
		if containsEither(m.Field, p.IntendedMajor) {
			score = 100
		}
		scores[CategoryFieldMatch] = score
	}

	if len(p.TechnicalInterests) > 0 && len(m.ResearchInterests) > 0 {
		scores[CategoryResearchInterests] = overlapFraction(m.ResearchInterests, p.TechnicalInterests) * 100
	}

	if len(p.ProgramPreferences) > 0 && len(m.Expertise) > 0 {
		scores[CategoryExpertise] = overlapFraction(m.Expertise, p.ProgramPreferences) * 100
	}

	if len(p.PreferredRegions) > 0 {
		score := 0.0
		for _, region := range p.PreferredRegions {
			if region == "" {
				continue
			}
			if strings.Contains(strings.ToLower(m.University), strings.ToLower(region)) {
				score = 100
				break
			}
		}
		scores[CategoryUniversityAlignment] = score
	}

	result := &Result{
		OverallScore:   clampScore(weightedAggregate(scores, s.params.Weights)),
		CategoryScores: make(map[Category]int, len(scores)),
	}
	for category, score := range scores {
		result.CategoryScores[category] = clampScore(int(math.Round(score)))
	}
	return result, nil
}
