package match

import (
	"regexp"
	"strings"
)

// FieldAssessment is the outcome of scoring one free-text answer: a score
// plus the narrative entries the classification produced.
type FieldAssessment struct {
	Score        int
	Strengths    []string
	Improvements []string
}

// TextScorer classifies free-text application answers. Implementations must
// be deterministic. AssessAchievements returns a bonus (0, 5 or 10), not a
// category score; it is added onto the experience category by the analyzer.
type TextScorer interface {
	AssessGoals(text string) FieldAssessment
	AssessExperience(text string) FieldAssessment
	AssessAchievements(text string) FieldAssessment
	AssessExtracurricular(text string) FieldAssessment
}

// Keyword patterns of the default text scorer. Tier thresholds and patterns
// are heuristics, not linguistics: they approximate "specific and planned"
// well enough to rank drafts of the same answer.
var (
	goalsSpecificityRe = regexp.MustCompile(`(?i)university|career|study|research|degree|major|academic`)
	goalsPlanningRe    = regexp.MustCompile(`(?i)plan|intend|aim|aspire|future|objective`)

	experienceRelevantRe = regexp.MustCompile(`(?i)project|internship|work|research|volunteer|leadership`)
	experienceDetailedRe = regexp.MustCompile(`(?i)responsible|managed|led|developed|created|achieved`)

	achievementsSignificantRe = regexp.MustCompile(`(?i)award|honor|recognition|certificate|scholarship|prize`)

	extracurricularLeadershipRe  = regexp.MustCompile(`(?i)leader|president|founder|captain|chair|coordinator|head|director`)
	extracurricularInvolvementRe = regexp.MustCompile(`(?i)organize|manage|coordinate|develop|create|lead`)

	activitySeparatorsRe = regexp.MustCompile(`[.,;]`)
)

// KeywordTextScorer is the default TextScorer: length thresholds combined
// with keyword-pattern presence, four tiers per field.
type KeywordTextScorer struct{}

func (KeywordTextScorer) AssessGoals(text string) FieldAssessment {
	text = strings.TrimSpace(text)
	if text == "" {
		return FieldAssessment{Improvements: []string{"Add your academic and career goals"}}
	}
	specific := goalsSpecificityRe.MatchString(text)
	planned := goalsPlanningRe.MatchString(text)
	switch {
	case len(text) > 200 && specific && planned:
		return FieldAssessment{Score: 90, Strengths: []string{"Exceptionally well-defined academic goals with clear plans"}}
	case len(text) > 150 && specific:
		return FieldAssessment{Score: 75, Strengths: []string{"Well-defined academic goals with clear direction"}}
	case len(text) > 100:
		return FieldAssessment{
			Score:        60,
			Strengths:    []string{"Good academic goals foundation"},
			Improvements: []string{"Consider adding more specific details about your academic plans"},
		}
	default:
		return FieldAssessment{Score: 40, Improvements: []string{"Elaborate more on your academic goals and be more specific"}}
	}
}

func (KeywordTextScorer) AssessExperience(text string) FieldAssessment {
	text = strings.TrimSpace(text)
	if text == "" {
		return FieldAssessment{Improvements: []string{"Include your relevant experiences"}}
	}
	relevant := experienceRelevantRe.MatchString(text)
	detailed := experienceDetailedRe.MatchString(text)
	switch {
	case len(text) > 200 && relevant && detailed:
		return FieldAssessment{Score: 90, Strengths: []string{"Exceptional relevant experience with detailed accomplishments"}}
	case len(text) > 150 && relevant:
		return FieldAssessment{Score: 75, Strengths: []string{"Strong relevant experience with good details"}}
	case len(text) > 100:
		return FieldAssessment{
			Score:        60,
			Strengths:    []string{"Good experience foundation"},
			Improvements: []string{"Add more specific details about your responsibilities and achievements"},
		}
	default:
		return FieldAssessment{Score: 40, Improvements: []string{"Provide more details about your experiences and their relevance"}}
	}
}

func (KeywordTextScorer) AssessAchievements(text string) FieldAssessment {
	text = strings.TrimSpace(text)
	if text == "" {
		return FieldAssessment{}
	}
	switch {
	case len(text) > 150 && achievementsSignificantRe.MatchString(text):
		return FieldAssessment{Score: 10, Strengths: []string{"Notable achievements and recognition"}}
	case len(text) > 100:
		return FieldAssessment{Score: 5, Improvements: []string{"Consider highlighting more significant achievements"}}
	default:
		return FieldAssessment{}
	}
}

func (KeywordTextScorer) AssessExtracurricular(text string) FieldAssessment {
	text = strings.TrimSpace(text)
	if text == "" {
		return FieldAssessment{Improvements: []string{"Add your extracurricular activities"}}
	}
	activities := countActivities(text)
	leadership := extracurricularLeadershipRe.MatchString(text)
	involvement := extracurricularInvolvementRe.MatchString(text)
	switch {
	case activities >= 3 && leadership && involvement:
		return FieldAssessment{Score: 90, Strengths: []string{"Outstanding extracurricular involvement with leadership roles"}}
	case activities >= 2 && (leadership || involvement):
		return FieldAssessment{Score: 75, Strengths: []string{"Strong extracurricular participation with good involvement"}}
	case activities >= 2:
		return FieldAssessment{
			Score:        60,
			Strengths:    []string{"Good extracurricular participation"},
			Improvements: []string{"Consider taking on leadership roles in your activities"},
		}
	default:
		return FieldAssessment{Score: 40, Improvements: []string{"Consider joining more extracurricular activities and taking leadership roles"}}
	}
}

// countActivities approximates an activity count by segmenting on list
// punctuation and discarding blank segments.
func countActivities(text string) int {
	count := 0
	for _, segment := range activitySeparatorsRe.Split(text, -1) {
		if strings.TrimSpace(segment) != "" {
			count++
		}
	}
	return count
}
