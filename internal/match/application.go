package match

import (
	"math"
	"strings"

	"github.com/uniassist/uniassist/internal/catalog"
)

// ApplicationAnswers are the free-text answers a student drafts for one
// application. Empty fields are allowed and surface as improvement notes.
type ApplicationAnswers struct {
	Goals           string `yaml:"goals,omitempty" mapstructure:"goals"`
	Experience      string `yaml:"experience,omitempty" mapstructure:"experience"`
	Achievements    string `yaml:"achievements,omitempty" mapstructure:"achievements"`
	Extracurricular string `yaml:"extracurricular,omitempty" mapstructure:"extracurricular"`
}

// ApplicationAnalyzer scores the apparent strength of application answers
// against one target university.
//
// Aggregation differs from the other weighted scorers: only categories that
// scored above zero enter the denominator, so an untouched field neither
// drags the total down nor counts as data.
type ApplicationAnalyzer struct {
	params AnalyzerParams
	text   TextScorer
}

// NewApplicationAnalyzer builds an analyzer with default tuning and the
// keyword text scorer. Pass a custom TextScorer to swap the heuristics.
func NewApplicationAnalyzer() *ApplicationAnalyzer {
	return &ApplicationAnalyzer{params: DefaultAnalyzerParams(), text: KeywordTextScorer{}}
}

// WithParams swaps the tuning constants.
func (a *ApplicationAnalyzer) WithParams(params AnalyzerParams) *ApplicationAnalyzer {
	a.params = params
	return a
}

// WithTextScorer swaps the free-text classification strategy.
func (a *ApplicationAnalyzer) WithTextScorer(ts TextScorer) *ApplicationAnalyzer {
	a.text = ts
	return a
}

// Analyze scores the answers. The university may be nil, in which case the
// fit category is absent; answers themselves are never a validation error.
func (a *ApplicationAnalyzer) Analyze(answers ApplicationAnswers, u *catalog.University) (*Result, error) {
	if u != nil && u.Name == "" {
		return nil, missingInput("university.name", "name is required")
	}

	var strengths, improvements []string
	collect := func(fa FieldAssessment) int {
		strengths = append(strengths, fa.Strengths...)
		improvements = append(improvements, fa.Improvements...)
		return fa.Score
	}

	academic := collect(a.text.AssessGoals(answers.Goals))
	experience := collect(a.text.AssessExperience(answers.Experience))
	// the achievements bonus lands on the experience category, capped
	experience += collect(a.text.AssessAchievements(answers.Achievements))
	if experience > 100 {
		experience = 100
	}
	extracurricular := collect(a.text.AssessExtracurricular(answers.Extracurricular))

	fit := 0
	if u != nil && strings.TrimSpace(answers.Goals) != "" {
		fit = a.universityFit(answers.Goals, u)
		switch {
		case fit >= 90:
			strengths = append(strengths, "Exceptional alignment with university values and programs")
		case fit >= 75:
			strengths = append(strengths, "Strong alignment with university values and programs")
		case fit >= 60:
			strengths = append(strengths, "Good alignment with university")
			improvements = append(improvements, "Consider highlighting more specific connections to university programs")
		default:
			improvements = append(improvements, "Try to better align your goals with university strengths and programs")
		}
	}

	categories := map[Category]int{
		CategoryAcademic:        academic,
		CategoryExperience:      experience,
		CategoryExtracurricular: extracurricular,
		CategoryFit:             fit,
	}

	scored := make(map[Category]float64, len(categories))
	for category, score := range categories {
		if score > 0 {
			scored[category] = float64(score)
		}
	}

	result := &Result{
		OverallScore:   clampScore(weightedAggregate(scored, a.params.Weights)),
		CategoryScores: make(map[Category]int, len(categories)),
		Strengths:      dedupe(strengths),
		Improvements:   dedupe(improvements),
	}
	for category, score := range categories {
		result.CategoryScores[category] = clampScore(score)
	}
	return result, nil
}

// universityFit starts from a base score and adds bonuses for overlap
// between the stated goals and the university's declared strengths and
// program descriptions, capped at 100.
func (a *ApplicationAnalyzer) universityFit(goals string, u *catalog.University) int {
	params := a.params
	goalsLower := strings.ToLower(goals)
	fit := params.FitBase

	if len(u.Strengths) > 0 {
		matches := 0
		for _, strength := range u.Strengths {
			if strength != "" && strings.Contains(goalsLower, strings.ToLower(strength)) {
				matches++
			}
		}
		fit += float64(matches) / float64(len(u.Strengths)) * params.StrengthBudget
		if matches > 1 {
			fit += params.MultiStrengthBonus
		}
	}

	if len(u.ProgramSpecificInfo) > 0 {
		matches := 0
		for _, info := range u.ProgramSpecificInfo {
			if info.Description != "" && strings.Contains(goalsLower, strings.ToLower(info.Description)) {
				matches++
			}
		}
		fit += float64(matches) / float64(len(u.ProgramSpecificInfo)) * params.ProgramBudget
		if matches > 0 {
			fit += params.ProgramMentionedBonus
		}
	}

	return clampScore(int(math.Round(fit)))
}
