package match

import (
	"math"

	"github.com/uniassist/uniassist/internal/catalog"
	"github.com/uniassist/uniassist/internal/profile"
)

// UniversityScorer scores universities against one student profile. A scorer
// is cheap to build, safe for concurrent use and carries no mutable state.
type UniversityScorer struct {
	profile *profile.StudentProfile
	regions catalog.Regions
	params  UniversityParams
}

// NewUniversityScorer builds a scorer for the given profile with the bundled
// region table and default tuning. A nil profile is a contract violation.
func NewUniversityScorer(p *profile.StudentProfile) (*UniversityScorer, error) {
	if p == nil {
		return nil, missingInput("profile", "student profile is required")
	}
	return &UniversityScorer{
		profile: p,
		regions: catalog.DefaultRegions(),
		params:  DefaultUniversityParams(),
	}, nil
}

// WithRegions swaps the region lookup table.
func (s *UniversityScorer) WithRegions(regions catalog.Regions) *UniversityScorer {
	s.regions = regions
	return s
}

// WithParams swaps the tuning constants.
func (s *UniversityScorer) WithParams(params UniversityParams) *UniversityScorer {
	s.params = params
	return s
}

// Score evaluates one university. The six categories always score: absent
// profile fields fall back to benefit-of-the-doubt defaults rather than
// dropping the category.
func (s *UniversityScorer) Score(u *catalog.University) (*Result, error) {
	if u == nil {
		return nil, missingInput("university", "university record is required")
	}
	if u.Name == "" {
		return nil, missingInput("university.name", "name is required")
	}
	if u.Country == "" {
		return nil, missingInput("university.country", "country is required")
	}

	p := s.profile
	params := s.params

	academic, likelihood := s.academicMatch(u)
	admission := s.admissionChance(likelihood, u.AdmissionCriteria.AcceptanceRate)

	scores := map[Category]float64{
		CategoryAcademicMatch:     academic,
		CategoryProgramMatch:      s.programMatch(u),
		CategoryLocationMatch:     s.locationMatch(u),
		CategoryResearchAlignment: s.researchAlignment(u),
		CategoryCareerAlignment:   s.careerAlignment(u),
		CategoryFinancialFit:      s.financialFit(u),
	}

	overall := weightedAggregate(scores, params.Weights)
	success := int(math.Round((scores[CategoryAcademicMatch] + scores[CategoryCareerAlignment]) / 2))

	result := &Result{
		OverallScore:    clampScore(overall),
		CategoryScores:  make(map[Category]int, len(scores)),
		AdmissionChance: admission,
		SuccessChance:   clampScore(success),
	}
	for category, score := range scores {
		result.CategoryScores[category] = clampScore(int(math.Round(score)))
	}

	var reasons []string
	if result.OverallScore >= 90 {
		reasons = append(reasons, "Exceptional overall fit")
	}
	if scores[CategoryAcademicMatch] >= 90 && p.HasGPA() {
		reasons = append(reasons, "Academic record is competitive for this university")
	}
	if scores[CategoryProgramMatch] >= 100 && p.IntendedMajor != "" {
		reasons = append(reasons, "Offers programs matching your intended major")
	}
	if scores[CategoryLocationMatch] >= 100 && len(p.PreferredRegions) > 0 {
		reasons = append(reasons, "Located in one of your preferred regions")
	}
	if scores[CategoryResearchAlignment] >= 100 && p.LearningStyle != "" {
		reasons = append(reasons, "Campus style suits your learning preferences")
	}
	if scores[CategoryCareerAlignment] >= 85 {
		reasons = append(reasons, "Strong graduate employment outcomes")
	}
	if scores[CategoryFinancialFit] >= 100 && p.TuitionPreference != "" && p.TuitionPreference != profile.TuitionAny {
		reasons = append(reasons, "Tuition fits your stated budget")
	}
	result.Reasons = dedupe(reasons)

	return result, nil
}

// academicMatch returns the academic category score and the raw admission
// likelihood before acceptance-rate scaling.
func (s *UniversityScorer) academicMatch(u *catalog.University) (match, likelihood float64) {
	params := s.params
	if !s.profile.HasGPA() || u.AdmissionCriteria.MinGPA <= 0 {
		return params.MissingGPAMatch, params.MissingGPAAdmission
	}

	gpa := s.profile.GPA
	minGPA := u.AdmissionCriteria.MinGPA
	avgGPA := u.AdmissionCriteria.AvgGPA

	switch {
	case gpa >= avgGPA:
		return 100, 90
	case gpa >= minGPA:
		pct := 100.0
		if span := avgGPA - minGPA; span > 0 {
			pct = (gpa - minGPA) / span * 100
		}
		return math.Min(100, 60+pct), 50 + pct/2
	default:
		ratio := gpa / minGPA
		switch {
		case ratio > 0.7:
			return 40, 30
		case ratio > 0.6:
			return 30, 20
		default:
			// floor, never zero
			return 20, 10
		}
	}
}

// admissionChance scales the raw likelihood by the institution's acceptance
// rate: a strong academic match still faces an institution-specific
// bottleneck. The boost and the [floor, ceiling] clamp are tuning constants.
func (s *UniversityScorer) admissionChance(likelihood, acceptanceRate float64) int {
	params := s.params
	scaled := likelihood * acceptanceRate * params.AcceptanceBoost
	return int(math.Round(clamp(scaled, params.AdmissionFloor, params.AdmissionCeiling)))
}

func (s *UniversityScorer) programMatch(u *catalog.University) float64 {
	if s.profile.IntendedMajor == "" {
		return 100
	}
	for _, program := range u.Programs {
		if containsEither(program, s.profile.IntendedMajor) {
			return 100
		}
	}
	return s.params.ProgramMismatch
}

func (s *UniversityScorer) locationMatch(u *catalog.University) float64 {
	if len(s.profile.PreferredRegions) == 0 {
		return 100
	}
	if s.regions.ContainsAny(s.profile.PreferredRegions, u.Country) {
		return 100
	}
	return s.params.LocationMismatch
}

func (s *UniversityScorer) researchAlignment(u *catalog.University) float64 {
	switch s.profile.LearningStyle {
	case profile.LearningResearchOriented:
		if u.ResearchFocus {
			return 100
		}
		return s.params.StyleMismatch
	case profile.LearningHandsOn:
		if !u.ResearchFocus {
			return 100
		}
		return s.params.StyleMismatch
	default:
		return s.params.StyleBaseline
	}
}

func (s *UniversityScorer) careerAlignment(u *catalog.University) float64 {
	metrics := u.SuccessMetrics
	if metrics == nil {
		return s.params.DefaultCareerAlignment
	}
	return math.Round(
		metrics.EmploymentRate*100*0.4 +
			metrics.InternshipRate*100*0.4 +
			float64(metrics.IndustryConnections)*10*0.2)
}

func (s *UniversityScorer) financialFit(u *catalog.University) float64 {
	switch s.profile.TuitionPreference {
	case profile.TuitionFree:
		switch u.TuitionRange {
		case catalog.TuitionTierFree:
			return 100
		case catalog.TuitionTierLow:
			return 80
		case catalog.TuitionTierModerate:
			return 60
		default:
			return 40
		}
	case profile.TuitionLowCost:
		switch u.TuitionRange {
		case catalog.TuitionTierFree:
			return 100
		case catalog.TuitionTierLow:
			return 90
		case catalog.TuitionTierModerate:
			return 80
		default:
			return 60
		}
	default:
		return 100
	}
}
