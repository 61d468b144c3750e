// Package profile defines the student profile read by the scoring engine and
// the repository used to load and persist it.
package profile

// TuitionPreference is the student's coarse tuition tolerance.
type TuitionPreference string

const (
	TuitionFree    TuitionPreference = "free"
	TuitionLowCost TuitionPreference = "low-cost"
	TuitionAny     TuitionPreference = "any"
)

// LearningStyle captures how the student prefers to study.
type LearningStyle string

const (
	LearningResearchOriented LearningStyle = "research-oriented"
	LearningHandsOn          LearningStyle = "hands-on"
	LearningMixed            LearningStyle = "mixed"
)

// LocationPreferences are the sub-preferences nested under academic goals.
type LocationPreferences struct {
	CitySize   string `yaml:"city-size,omitempty" mapstructure:"city-size"`
	CampusType string `yaml:"campus-type,omitempty" mapstructure:"campus-type"`
}

// AcademicGoals groups the career-facing part of the profile.
type AcademicGoals struct {
	CareerPaths          []string            `yaml:"career-paths,omitempty" mapstructure:"career-paths"`
	StudyEnvironment     string              `yaml:"study-environment,omitempty" mapstructure:"study-environment"`
	InternshipImportance string              `yaml:"internship-importance,omitempty" mapstructure:"internship-importance"`
	Location             LocationPreferences `yaml:"location,omitempty" mapstructure:"location"`
}

// HousingPreferences describe what the student wants from shared housing.
// The rent range is kept as the "$min - $max" text students actually type;
// parsing happens at scoring time and malformed input never faults.
type HousingPreferences struct {
	RentRange   string `yaml:"rent-range,omitempty" mapstructure:"rent-range"`
	MoveInDate  string `yaml:"move-in-date,omitempty" mapstructure:"move-in-date"`
	Location    string `yaml:"location,omitempty" mapstructure:"location"`
	RoomType    string `yaml:"room-type,omitempty" mapstructure:"room-type"`
	Cleanliness string `yaml:"cleanliness,omitempty" mapstructure:"cleanliness"`
}

// StudentProfile is the structured snapshot the engine scores against.
// Every field is optional; absent fields degrade to documented defaults in
// the scorers rather than faulting. A GPA of 0 means "not provided".
type StudentProfile struct {
	GPA               float64            `yaml:"gpa,omitempty" mapstructure:"gpa"`
	IntendedMajor     string             `yaml:"intended-major,omitempty" mapstructure:"intended-major"`
	PreferredRegions  []string           `yaml:"preferred-regions,omitempty" mapstructure:"preferred-regions"`
	TuitionPreference TuitionPreference  `yaml:"tuition-preference,omitempty" mapstructure:"tuition-preference"`
	LearningStyle     LearningStyle      `yaml:"learning-style,omitempty" mapstructure:"learning-style"`
	TestScores        map[string]float64 `yaml:"test-scores,omitempty" mapstructure:"test-scores"`

	TechnicalInterests []string      `yaml:"technical-interests,omitempty" mapstructure:"technical-interests"`
	ProgramPreferences []string      `yaml:"program-preferences,omitempty" mapstructure:"program-preferences"`
	Goals              AcademicGoals `yaml:"goals,omitempty" mapstructure:"goals"`

	TargetUniversities []string           `yaml:"target-universities,omitempty" mapstructure:"target-universities"`
	Interests          []string           `yaml:"interests,omitempty" mapstructure:"interests"`
	LivingPreferences  []string           `yaml:"living-preferences,omitempty" mapstructure:"living-preferences"`
	Housing            HousingPreferences `yaml:"housing,omitempty" mapstructure:"housing"`
}

// HasGPA reports whether a GPA was provided at all.
func (p *StudentProfile) HasGPA() bool {
	return p != nil && p.GPA > 0
}

// Merge overlays non-zero fields of patch onto base and returns the merged
// profile. Neither input is mutated. List and map fields are replaced
// wholesale when present in the patch; there is no element-wise union.
func Merge(base, patch *StudentProfile) *StudentProfile {
	if base == nil {
		base = &StudentProfile{}
	}
	merged := *base
	if patch == nil {
		return &merged
	}

	if patch.GPA > 0 {
		merged.GPA = patch.GPA
	}
	if patch.IntendedMajor != "" {
		merged.IntendedMajor = patch.IntendedMajor
	}
	if len(patch.PreferredRegions) > 0 {
		merged.PreferredRegions = append([]string(nil), patch.PreferredRegions...)
	}
	if patch.TuitionPreference != "" {
		merged.TuitionPreference = patch.TuitionPreference
	}
	if patch.LearningStyle != "" {
		merged.LearningStyle = patch.LearningStyle
	}
	if len(patch.TestScores) > 0 {
		scores := make(map[string]float64, len(patch.TestScores))
		for name, score := range patch.TestScores {
			scores[name] = score
		}
		merged.TestScores = scores
	}
	if len(patch.TechnicalInterests) > 0 {
		merged.TechnicalInterests = append([]string(nil), patch.TechnicalInterests...)
	}
	if len(patch.ProgramPreferences) > 0 {
		merged.ProgramPreferences = append([]string(nil), patch.ProgramPreferences...)
	}
	merged.Goals = mergeGoals(merged.Goals, patch.Goals)
	if len(patch.TargetUniversities) > 0 {
		merged.TargetUniversities = append([]string(nil), patch.TargetUniversities...)
	}
	if len(patch.Interests) > 0 {
		merged.Interests = append([]string(nil), patch.Interests...)
	}
	if len(patch.LivingPreferences) > 0 {
		merged.LivingPreferences = append([]string(nil), patch.LivingPreferences...)
	}
	merged.Housing = mergeHousing(merged.Housing, patch.Housing)

	return &merged
}

func mergeGoals(base, patch AcademicGoals) AcademicGoals {
	if len(patch.CareerPaths) > 0 {
		base.CareerPaths = append([]string(nil), patch.CareerPaths...)
	}
	if patch.StudyEnvironment != "" {
		base.StudyEnvironment = patch.StudyEnvironment
	}
	if patch.InternshipImportance != "" {
		base.InternshipImportance = patch.InternshipImportance
	}
	if patch.Location.CitySize != "" {
		base.Location.CitySize = patch.Location.CitySize
	}
	if patch.Location.CampusType != "" {
		base.Location.CampusType = patch.Location.CampusType
	}
	return base
}

func mergeHousing(base, patch HousingPreferences) HousingPreferences {
	if patch.RentRange != "" {
		base.RentRange = patch.RentRange
	}
	if patch.MoveInDate != "" {
		base.MoveInDate = patch.MoveInDate
	}
	if patch.Location != "" {
		base.Location = patch.Location
	}
	if patch.RoomType != "" {
		base.RoomType = patch.RoomType
	}
	if patch.Cleanliness != "" {
		base.Cleanliness = patch.Cleanliness
	}
	return base
}
