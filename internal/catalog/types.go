// Package catalog holds the immutable records the engine scores against:
// universities, mentors and roommate candidates, plus the region lookup
// table. Records are read-only inputs; nothing here mutates after load.
package catalog

import (
	"strings"

	"github.com/uniassist/uniassist/internal/profile"
)

// TuitionTier is the coarse tuition proxy used for financial fit.
type TuitionTier string

const (
	TuitionTierFree     TuitionTier = "free"
	TuitionTierLow      TuitionTier = "low"
	TuitionTierModerate TuitionTier = "moderate"
	TuitionTierHigh     TuitionTier = "high"
)

// TestScoreRange captures a university's expected range for one test.
type TestScoreRange struct {
	Min float64 `yaml:"min"`
	Avg float64 `yaml:"avg,omitempty"`
}

// AdmissionCriteria describe how hard the gate is.
type AdmissionCriteria struct {
	MinGPA         float64                   `yaml:"min-gpa"`
	AvgGPA         float64                   `yaml:"avg-gpa"`
	AcceptanceRate float64                   `yaml:"acceptance-rate"`
	TestScores     map[string]TestScoreRange `yaml:"test-scores,omitempty"`
}

// SuccessMetrics describe outcomes for admitted students. Rates are 0-1;
// the two opportunity scores are on a 1-10 scale.
type SuccessMetrics struct {
	GraduationRate        float64 `yaml:"graduation-rate"`
	EmploymentRate        float64 `yaml:"employment-rate"`
	InternshipRate        float64 `yaml:"internship-rate"`
	ResearchOpportunities int     `yaml:"research-opportunities"`
	IndustryConnections   int     `yaml:"industry-connections"`
}

// ProgramInfo is the per-major detail block.
type ProgramInfo struct {
	Ranking         int      `yaml:"ranking,omitempty"`
	Specializations []string `yaml:"specializations,omitempty"`
	ResearchAreas   []string `yaml:"research-areas,omitempty"`
	Description     string   `yaml:"description,omitempty"`
	SuccessRate     float64  `yaml:"success-rate,omitempty"`
}

// University is one catalog record. Name and Country are mandatory identity
// fields; everything else may be absent and scores with defaults.
type University struct {
	Name                string                 `yaml:"name"`
	Country             string                 `yaml:"country"`
	Ranking             int                    `yaml:"ranking,omitempty"`
	Programs            []string               `yaml:"programs,omitempty"`
	ResearchFocus       bool                   `yaml:"research-focus"`
	TuitionRange        TuitionTier            `yaml:"tuition-range,omitempty"`
	Strengths           []string               `yaml:"strengths,omitempty"`
	AdmissionCriteria   AdmissionCriteria      `yaml:"admission-criteria"`
	SuccessMetrics      *SuccessMetrics        `yaml:"success-metrics,omitempty"`
	ProgramSpecificInfo map[string]ProgramInfo `yaml:"program-specific-info,omitempty"`
}

// Universities wraps the catalog list.
type Universities struct {
	Items []*University `yaml:"universities"`
}

func (u *Universities) Len() int {
	if u == nil {
		return 0
	}
	return len(u.Items)
}

// FindByName returns the first record whose name matches case-insensitively,
// or nil.
func (u *Universities) FindByName(name string) *University {
	if u == nil {
		return nil
	}
	for _, item := range u.Items {
		if strings.EqualFold(item.Name, name) {
			return item
		}
	}
	return nil
}

// Names lists catalog entries in order.
func (u *Universities) Names() []string {
	names := make([]string, 0, u.Len())
	for _, item := range u.Items {
		names = append(names, item.Name)
	}
	return names
}

// Mentor is one mentor catalog record.
type Mentor struct {
	ID                    string   `yaml:"id,omitempty"`
	Name                  string   `yaml:"name"`
	University            string   `yaml:"university,omitempty"`
	Field                 string   `yaml:"field"`
	Expertise             []string `yaml:"expertise,omitempty"`
	ResearchInterests     []string `yaml:"research-interests,omitempty"`
	YearsOfExperience     int      `yaml:"years-of-experience,omitempty"`
	AvailableForMentoring bool     `yaml:"available-for-mentoring"`
}

// Mentors wraps the mentor list.
type Mentors struct {
	Items []*Mentor `yaml:"mentors"`
}

func (m *Mentors) Len() int {
	if m == nil {
		return 0
	}
	return len(m.Items)
}

// Available returns only mentors open for mentoring, preserving order.
// Unavailable mentors are never scored.
func (m *Mentors) Available() *Mentors {
	out := &Mentors{}
	if m == nil {
		return out
	}
	for _, mentor := range m.Items {
		if mentor.AvailableForMentoring {
			out.Items = append(out.Items, mentor)
		}
	}
	return out
}

// RoommateCandidate is one potential roommate record. The housing block has
// the same shape a student profile carries.
type RoommateCandidate struct {
	ID                 string                     `yaml:"id,omitempty"`
	Name               string                     `yaml:"name"`
	Major              string                     `yaml:"major,omitempty"`
	Bio                string                     `yaml:"bio,omitempty"`
	TargetUniversities []string                   `yaml:"target-universities,omitempty"`
	Interests          []string                   `yaml:"interests,omitempty"`
	LivingPreferences  []string                   `yaml:"living-preferences,omitempty"`
	Housing            profile.HousingPreferences `yaml:"housing,omitempty"`
}

// RoommateCandidates wraps the candidate list.
type RoommateCandidates struct {
	Items []*RoommateCandidate `yaml:"roommates"`
}

func (r *RoommateCandidates) Len() int {
	if r == nil {
		return 0
	}
	return len(r.Items)
}
