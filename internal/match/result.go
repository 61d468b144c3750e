// Package match is the compatibility scoring engine. Every scorer is a pure
// function of its inputs: no I/O, no shared state, identical output for
// identical input. Callers own the returned results.
package match

import "fmt"

// Category names one scored dimension of a match.
type Category string

// University categories.
const (
	CategoryAcademicMatch     Category = "academicMatch"
	CategoryProgramMatch      Category = "programMatch"
	CategoryLocationMatch     Category = "locationMatch"
	CategoryResearchAlignment Category = "researchAlignment"
	CategoryCareerAlignment   Category = "careerAlignment"
	CategoryFinancialFit      Category = "financialFit"
)

// Mentor categories.
const (
	CategoryFieldMatch          Category = "fieldMatch"
	CategoryResearchInterests   Category = "researchInterests"
	CategoryExpertise           Category = "expertise"
	CategoryUniversityAlignment Category = "universityAlignment"
)

// Application-strength categories.
const (
	CategoryAcademic        Category = "academic"
	CategoryExperience      Category = "experience"
	CategoryExtracurricular Category = "extracurricular"
	CategoryFit             Category = "fit"
)

// Result is the outcome of scoring one candidate. All numeric fields are
// integers in [0,100] except AdmissionChance, which is clamped to [5,95]
// when set. Narrative lists are de-duplicated with first-seen order kept.
type Result struct {
	OverallScore   int
	CategoryScores map[Category]int

	// AdmissionChance and SuccessChance are populated for universities only.
	AdmissionChance int
	SuccessChance   int

	Reasons      []string
	Strengths    []string
	Improvements []string
}

// ValidationError reports a genuine contract violation: an input the engine
// cannot default its way around, such as a missing profile or a catalog
// record without identity fields. These are deterministic and never retried.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid input: %s: %s", e.Field, e.Reason)
}

func missingInput(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// dedupe removes duplicate strings while preserving first-seen order.
func dedupe(items []string) []string {
	if len(items) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		if _, ok := seen[item]; ok {
			continue
		}
		seen[item] = struct{}{}
		out = append(out, item)
	}
	return out
}
