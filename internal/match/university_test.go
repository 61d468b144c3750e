package match

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uniassist/uniassist/internal/catalog"
	"github.com/uniassist/uniassist/internal/profile"
)

func selectiveUniversity() *catalog.University {
	return &catalog.University{
		Name:          "Massachusetts Institute of Technology",
		Country:       "United States",
		Programs:      []string{"Computer Science", "Electrical Engineering"},
		ResearchFocus: true,
		TuitionRange:  catalog.TuitionTierHigh,
		AdmissionCriteria: catalog.AdmissionCriteria{
			MinGPA:         3.9,
			AvgGPA:         4.0,
			AcceptanceRate: 0.07,
		},
	}
}

func strongProfile() *profile.StudentProfile {
	return &profile.StudentProfile{
		GPA:               3.95,
		IntendedMajor:     "Computer Science",
		PreferredRegions:  []string{"North America"},
		TuitionPreference: profile.TuitionAny,
		LearningStyle:     profile.LearningResearchOriented,
	}
}

func TestUniversityScoreSelectiveSchool(t *testing.T) {
	scorer, err := NewUniversityScorer(strongProfile())
	require.NoError(t, err)

	result, err := scorer.Score(selectiveUniversity())
	require.NoError(t, err)

	assert.Equal(t, 100, result.CategoryScores[CategoryAcademicMatch])
	assert.Equal(t, 100, result.CategoryScores[CategoryProgramMatch])
	assert.Equal(t, 100, result.CategoryScores[CategoryLocationMatch])
	assert.Equal(t, 100, result.CategoryScores[CategoryResearchAlignment])
	assert.GreaterOrEqual(t, result.OverallScore, 90)

	// likelihood 75 scaled by the 7% acceptance rate and the 1.5 boost
	assert.Equal(t, 8, result.AdmissionChance)
	assert.Equal(t, 90, result.SuccessChance)
	assert.Contains(t, result.Reasons, "Offers programs matching your intended major")
}

func TestUniversityScoreMissingGPA(t *testing.T) {
	p := strongProfile()
	p.GPA = 0
	scorer, err := NewUniversityScorer(p)
	require.NoError(t, err)

	result, err := scorer.Score(selectiveUniversity())
	require.NoError(t, err)

	// benefit of the doubt, not elimination
	assert.Equal(t, 70, result.CategoryScores[CategoryAcademicMatch])
	assert.Equal(t, 6, result.AdmissionChance)
}

func TestUniversityScoreGPAMonotonic(t *testing.T) {
	u := selectiveUniversity()
	prevMatch, prevChance := -1, -1
	for gpa := 2.0; gpa <= 4.01; gpa += 0.05 {
		p := strongProfile()
		p.GPA = gpa
		scorer, err := NewUniversityScorer(p)
		require.NoError(t, err)
		result, err := scorer.Score(u)
		require.NoError(t, err)

		match := result.CategoryScores[CategoryAcademicMatch]
		assert.GreaterOrEqual(t, match, prevMatch, "academic match regressed at gpa %.2f", gpa)
		assert.GreaterOrEqual(t, result.AdmissionChance, prevChance, "admission chance regressed at gpa %.2f", gpa)
		prevMatch, prevChance = match, result.AdmissionChance
	}
}

func TestUniversityScoreBelowMinimumFloors(t *testing.T) {
	u := selectiveUniversity()
	cases := []struct {
		gpa            float64
		match, chance  int
		acceptanceRate float64
	}{
		{gpa: 2.9, match: 40, chance: 5, acceptanceRate: 0.07},  // ratio 0.743, chance 3.15 hits the floor
		{gpa: 2.5, match: 30, chance: 5, acceptanceRate: 0.07},  // ratio 0.641
		{gpa: 1.5, match: 20, chance: 5, acceptanceRate: 0.07},  // floor tier, never zero
		{gpa: 2.9, match: 40, chance: 27, acceptanceRate: 0.60}, // 30×0.6×1.5
	}
	for _, tc := range cases {
		t.Run(fmt.Sprintf("gpa=%.1f rate=%.2f", tc.gpa, tc.acceptanceRate), func(t *testing.T) {
			p := strongProfile()
			p.GPA = tc.gpa
			u.AdmissionCriteria.AcceptanceRate = tc.acceptanceRate
			scorer, err := NewUniversityScorer(p)
			require.NoError(t, err)
			result, err := scorer.Score(u)
			require.NoError(t, err)
			assert.Equal(t, tc.match, result.CategoryScores[CategoryAcademicMatch])
			assert.Equal(t, tc.chance, result.AdmissionChance)
		})
	}
}

func TestUniversityScoreFinancialFit(t *testing.T) {
	cases := []struct {
		pref  profile.TuitionPreference
		tier  catalog.TuitionTier
		score int
	}{
		{profile.TuitionFree, catalog.TuitionTierFree, 100},
		{profile.TuitionFree, catalog.TuitionTierLow, 80},
		{profile.TuitionFree, catalog.TuitionTierModerate, 60},
		{profile.TuitionFree, catalog.TuitionTierHigh, 40},
		{profile.TuitionLowCost, catalog.TuitionTierFree, 100},
		{profile.TuitionLowCost, catalog.TuitionTierLow, 90},
		{profile.TuitionLowCost, catalog.TuitionTierModerate, 80},
		{profile.TuitionLowCost, catalog.TuitionTierHigh, 60},
		{profile.TuitionAny, catalog.TuitionTierHigh, 100},
		{"", catalog.TuitionTierHigh, 100},
	}
	for _, tc := range cases {
		t.Run(fmt.Sprintf("%s/%s", tc.pref, tc.tier), func(t *testing.T) {
			p := strongProfile()
			p.TuitionPreference = tc.pref
			u := selectiveUniversity()
			u.TuitionRange = tc.tier
			scorer, err := NewUniversityScorer(p)
			require.NoError(t, err)
			result, err := scorer.Score(u)
			require.NoError(t, err)
			assert.Equal(t, tc.score, result.CategoryScores[CategoryFinancialFit])
		})
	}
}

func TestUniversityScoreResearchAlignment(t *testing.T) {
	cases := []struct {
		style profile.LearningStyle
		focus bool
		score int
	}{
		{profile.LearningResearchOriented, true, 100},
		{profile.LearningResearchOriented, false, 70},
		{profile.LearningHandsOn, true, 70},
		{profile.LearningHandsOn, false, 100},
		{profile.LearningMixed, true, 80},
		{"", false, 80},
	}
	for _, tc := range cases {
		t.Run(fmt.Sprintf("%s/focus=%v", tc.style, tc.focus), func(t *testing.T) {
			p := strongProfile()
			p.LearningStyle = tc.style
			u := selectiveUniversity()
			u.ResearchFocus = tc.focus
			scorer, err := NewUniversityScorer(p)
			require.NoError(t, err)
			result, err := scorer.Score(u)
			require.NoError(t, err)
			assert.Equal(t, tc.score, result.CategoryScores[CategoryResearchAlignment])
		})
	}
}

func TestUniversityScoreCareerAlignment(t *testing.T) {
	p := strongProfile()
	u := selectiveUniversity()
	u.SuccessMetrics = &catalog.SuccessMetrics{
		EmploymentRate:      0.93,
		InternshipRate:      0.85,
		IndustryConnections: 9,
	}
	scorer, err := NewUniversityScorer(p)
	require.NoError(t, err)
	result, err := scorer.Score(u)
	require.NoError(t, err)

	// 93×0.4 + 85×0.4 + 90×0.2 = 89.2
	assert.Equal(t, 89, result.CategoryScores[CategoryCareerAlignment])

	u.SuccessMetrics = nil
	result, err = scorer.Score(u)
	require.NoError(t, err)
	assert.Equal(t, 80, result.CategoryScores[CategoryCareerAlignment])
}

func TestUniversityScoreIndifferenceScoresFull(t *testing.T) {
	scorer, err := NewUniversityScorer(&profile.StudentProfile{})
	require.NoError(t, err)
	result, err := scorer.Score(selectiveUniversity())
	require.NoError(t, err)

	// unstated major, regions and budget are not penalized
	assert.Equal(t, 100, result.CategoryScores[CategoryProgramMatch])
	assert.Equal(t, 100, result.CategoryScores[CategoryLocationMatch])
	assert.Equal(t, 100, result.CategoryScores[CategoryFinancialFit])
}

func TestUniversityScoreRangeInvariants(t *testing.T) {
	profiles := []*profile.StudentProfile{
		{},
		strongProfile(),
		{GPA: 1.2, TuitionPreference: profile.TuitionFree, LearningStyle: profile.LearningHandsOn},
		{GPA: 4.0, IntendedMajor: "History", PreferredRegions: []string{"Atlantis"}},
	}
	universities := []*catalog.University{
		selectiveUniversity(),
		{Name: "Open College", Country: "Germany", TuitionRange: catalog.TuitionTierFree,
			AdmissionCriteria: catalog.AdmissionCriteria{MinGPA: 2.0, AvgGPA: 2.0, AcceptanceRate: 0.9}},
		{Name: "No Criteria Tech", Country: "Japan"},
	}
	for _, p := range profiles {
		scorer, err := NewUniversityScorer(p)
		require.NoError(t, err)
		for _, u := range universities {
			result, err := scorer.Score(u)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, result.OverallScore, 0)
			assert.LessOrEqual(t, result.OverallScore, 100)
			assert.GreaterOrEqual(t, result.AdmissionChance, 5)
			assert.LessOrEqual(t, result.AdmissionChance, 95)
			assert.GreaterOrEqual(t, result.SuccessChance, 0)
			assert.LessOrEqual(t, result.SuccessChance, 100)
			for category, score := range result.CategoryScores {
				assert.GreaterOrEqual(t, score, 0, category)
				assert.LessOrEqual(t, score, 100, category)
			}
		}
	}
}

func TestUniversityScoreIdempotent(t *testing.T) {
	scorer, err := NewUniversityScorer(strongProfile())
	require.NoError(t, err)
	first, err := scorer.Score(selectiveUniversity())
	require.NoError(t, err)
	second, err := scorer.Score(selectiveUniversity())
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestUniversityScoreValidation(t *testing.T) {
	_, err := NewUniversityScorer(nil)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "profile", verr.Field)

	scorer, err := NewUniversityScorer(strongProfile())
	require.NoError(t, err)

	_, err = scorer.Score(nil)
	require.ErrorAs(t, err, &verr)

	_, err = scorer.Score(&catalog.University{Country: "France"})
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "university.name", verr.Field)

	_, err = scorer.Score(&catalog.University{Name: "Somewhere"})
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "university.country", verr.Field)
}
