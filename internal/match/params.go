package match

// The numbers in this file are tuning constants, not derived values. They
// live here as configuration so they can be revisited without touching
// scorer logic.

// UniversityParams holds the tuning constants of the university scorer.
type UniversityParams struct {
	// Weights for the overall aggregate. They sum to 1.0 when every
	// category scores; missing categories renormalize the rest.
	Weights map[Category]float64

	// Benefit-of-the-doubt scores applied when no GPA is provided.
	MissingGPAMatch     float64
	MissingGPAAdmission float64

	// Partial credit for a program or region that does not match.
	ProgramMismatch  float64
	LocationMismatch float64

	// Baseline when the learning style is unstated or mixed.
	StyleBaseline float64
	// Score for a learning style that exists but disagrees with the
	// university's focus.
	StyleMismatch float64

	// Career alignment used when the record carries no success metrics.
	DefaultCareerAlignment float64

	// Admission-likelihood scaling: likelihood × acceptanceRate × Boost,
	// clamped to [Floor, Ceiling].
	AcceptanceBoost  float64
	AdmissionFloor   float64
	AdmissionCeiling float64
}

// DefaultUniversityParams returns the tuned defaults.
func DefaultUniversityParams() UniversityParams {
	return UniversityParams{
		Weights: map[Category]float64{
			CategoryAcademicMatch:     0.25,
			CategoryProgramMatch:      0.25,
			CategoryLocationMatch:     0.15,
			CategoryResearchAlignment: 0.15,
			CategoryCareerAlignment:   0.10,
			CategoryFinancialFit:      0.10,
		},
		MissingGPAMatch:        70,
		MissingGPAAdmission:    60,
		ProgramMismatch:        50,
		LocationMismatch:       50,
		StyleBaseline:          80,
		StyleMismatch:          70,
		DefaultCareerAlignment: 80,
		AcceptanceBoost:        1.5,
		AdmissionFloor:         5,
		AdmissionCeiling:       95,
	}
}

// MentorParams holds the mentor scorer weights. Only categories with
// underlying data enter the aggregate.
type MentorParams struct {
	Weights map[Category]float64
}

// DefaultMentorParams returns the tuned defaults.
func DefaultMentorParams() MentorParams {
	return MentorParams{
		Weights: map[Category]float64{
			CategoryFieldMatch:          35,
			CategoryResearchInterests:   25,
			CategoryExpertise:           25,
			CategoryUniversityAlignment: 15,
		},
	}
}

// RoommateParams holds the fixed additive points of the roommate scorer.
// Points accumulate and the sum is clamped to [0,100] at the end.
type RoommateParams struct {
	SharedUniversity int
	PerLifestyleTag  int
	PerInterest      int
	RentOverlap      int
	MoveInDate       int
	Location         int
	RoomType         int
}

// DefaultRoommateParams returns the tuned defaults.
func DefaultRoommateParams() RoommateParams {
	return RoommateParams{
		SharedUniversity: 30,
		PerLifestyleTag:  10,
		PerInterest:      5,
		RentOverlap:      15,
		MoveInDate:       10,
		Location:         5,
		RoomType:         5,
	}
}

// AnalyzerParams holds the application-strength aggregation weights and the
// university-fit bonuses.
type AnalyzerParams struct {
	// Weights aggregate the four categories; only categories that scored
	// above zero enter the denominator.
	Weights map[Category]float64

	FitBase float64
	// Bonus budget spread over the fraction of university strengths the
	// goals mention, plus a flat bonus when more than one matches.
	StrengthBudget        float64
	MultiStrengthBonus    float64
	ProgramBudget         float64
	ProgramMentionedBonus float64
}

// DefaultAnalyzerParams returns the tuned defaults.
func DefaultAnalyzerParams() AnalyzerParams {
	return AnalyzerParams{
		Weights: map[Category]float64{
			CategoryAcademic:        0.3,
			CategoryExperience:      0.25,
			CategoryExtracurricular: 0.25,
			CategoryFit:             0.2,
		},
		FitBase:               50,
		StrengthBudget:        30,
		MultiStrengthBonus:    10,
		ProgramBudget:         20,
		ProgramMentionedBonus: 10,
	}
}

// RankParams holds presentation-facing defaults for the ranker.
type RankParams struct {
	MinUniversityScore int
	UniversityLimit    int
	MentorLimit        int
	RoommateLimit      int
}

// DefaultRankParams returns the tuned defaults.
func DefaultRankParams() RankParams {
	return RankParams{
		MinUniversityScore: 20,
		UniversityLimit:    10,
		MentorLimit:        3,
		RoommateLimit:      5,
	}
}
