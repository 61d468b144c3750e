package recommend

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/uniassist/uniassist/internal/catalog"
	"github.com/uniassist/uniassist/internal/match"
	"github.com/uniassist/uniassist/internal/profile"
)

// Config holds presentation-facing limits. Unset values fall back to the
// engine defaults.
type Config struct {
	UniversityLimit int `mapstructure:"university-limit"`
	// UniversityCutoff drops universities scoring at or below it. An
	// explicit value is used as-is, so 0 keeps every positive score and a
	// negative value keeps everything.
	UniversityCutoff *int `mapstructure:"university-cutoff"`
	MentorLimit      int  `mapstructure:"mentor-limit"`
	RoommateLimit    int  `mapstructure:"roommate-limit"`
}

// Deps aggregates dependencies shared across the pipeline.
type Deps struct {
	Logger  *zap.Logger
	Regions catalog.Regions
}

// Sources are the catalogs the pipeline draws candidates from. Nil catalogs
// produce empty recommendation lists.
type Sources struct {
	Universities *catalog.Universities
	Mentors      *catalog.Mentors
	Roommates    *catalog.RoommateCandidates
}

// Recommendations is the ranked output, best first in every list.
type Recommendations struct {
	Universities []match.Scored[*catalog.University]
	Mentors      []match.Scored[*catalog.Mentor]
	Roommates    []match.Scored[*catalog.RoommateCandidate]
}

// Pipeline scores and ranks candidates for one student profile.
type Pipeline struct {
	cfg             Config
	deps            Deps
	mentorFilters   []Filter[*catalog.Mentor]
	roommateFilters []Filter[*catalog.RoommateCandidate]
}

// New builds a pipeline with the default candidate filters.
func New(cfg Config, deps Deps) *Pipeline {
	defaults := match.DefaultRankParams()
	if cfg.UniversityLimit == 0 {
		cfg.UniversityLimit = defaults.UniversityLimit
	}
	if cfg.UniversityCutoff == nil {
		cutoff := defaults.MinUniversityScore
		cfg.UniversityCutoff = &cutoff
	}
	if cfg.MentorLimit == 0 {
		cfg.MentorLimit = defaults.MentorLimit
	}
	if cfg.RoommateLimit == 0 {
		cfg.RoommateLimit = defaults.RoommateLimit
	}
	if deps.Regions == nil {
		deps.Regions = catalog.DefaultRegions()
	}
	return &Pipeline{
		cfg:           cfg,
		deps:          deps,
		mentorFilters: []Filter[*catalog.Mentor]{NewMentorAvailability()},
	}
}

// WithRoommateFilters appends candidate filters applied before roommate
// scoring.
func (p *Pipeline) WithRoommateFilters(filters ...Filter[*catalog.RoommateCandidate]) *Pipeline {
	p.roommateFilters = append(p.roommateFilters, filters...)
	return p
}

// Run scores every candidate against the profile and returns ranked lists.
// Records that fail validation are logged and skipped; they never abort the
// whole run.
func (p *Pipeline) Run(ctx context.Context, student *profile.StudentProfile, src Sources) (*Recommendations, error) {
	if student == nil {
		return nil, fmt.Errorf("student profile is required")
	}

	out := &Recommendations{}

	universities, err := p.runUniversities(ctx, student, src.Universities)
	if err != nil {
		return nil, fmt.Errorf("universities: %w", err)
	}
	out.Universities = universities

	mentors, err := p.runMentors(ctx, student, src.Mentors)
	if err != nil {
		return nil, fmt.Errorf("mentors: %w", err)
	}
	out.Mentors = mentors

	roommates, err := p.runRoommates(ctx, student, src.Roommates)
	if err != nil {
		return nil, fmt.Errorf("roommates: %w", err)
	}
	out.Roommates = roommates

	return out, nil
}

func (p *Pipeline) runUniversities(ctx context.Context, student *profile.StudentProfile, universities *catalog.Universities) ([]match.Scored[*catalog.University], error) {
	if universities.Len() == 0 {
		return nil, nil
	}
	scorer, err := match.NewUniversityScorer(student)
	if err != nil {
		return nil, err
	}
	scorer.WithRegions(p.deps.Regions)

	scored := make([]match.Scored[*catalog.University], 0, universities.Len())
	for _, u := range universities.Items {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		result, err := scorer.Score(u)
		if err != nil {
			if p.skippable(err, "university", u.Name) {
				continue
			}
			return nil, err
		}
		scored = append(scored, match.Scored[*catalog.University]{Candidate: u, Result: result})
	}

	ranked := match.Rank(scored, *p.cfg.UniversityCutoff, p.cfg.UniversityLimit)
	p.logRanked("universities", len(scored), len(ranked))
	return ranked, nil
}

func (p *Pipeline) runMentors(ctx context.Context, student *profile.StudentProfile, mentors *catalog.Mentors) ([]match.Scored[*catalog.Mentor], error) {
	if mentors.Len() == 0 {
		return nil, nil
	}
	candidates, err := runFilters(p.deps.Logger, p.mentorFilters, mentors.Items)
	if err != nil {
		return nil, err
	}

	scorer, err := match.NewMentorScorer(student)
	if err != nil {
		return nil, err
	}

	scored := make([]match.Scored[*catalog.Mentor], 0, len(candidates))
	for _, m := range candidates {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		result, err := scorer.Score(m)
		if err != nil {
			if p.skippable(err, "mentor", m.Name) {
				continue
			}
			return nil, err
		}
		scored = append(scored, match.Scored[*catalog.Mentor]{Candidate: m, Result: result})
	}

	// zero-score mentors are never recommended
	ranked := match.Rank(scored, 0, p.cfg.MentorLimit)
	p.logRanked("mentors", len(scored), len(ranked))
	return ranked, nil
}

func (p *Pipeline) runRoommates(ctx context.Context, student *profile.StudentProfile, roommates *catalog.RoommateCandidates) ([]match.Scored[*catalog.RoommateCandidate], error) {
	if roommates.Len() == 0 {
		return nil, nil
	}
	candidates, err := runFilters(p.deps.Logger, p.roommateFilters, roommates.Items)
	if err != nil {
		return nil, err
	}

	scorer, err := match.NewRoommateScorer(student)
	if err != nil {
		return nil, err
	}

	scored := make([]match.Scored[*catalog.RoommateCandidate], 0, len(candidates))
	for _, c := range candidates {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		result, err := scorer.Score(c)
		if err != nil {
			if p.skippable(err, "roommate", c.Name) {
				continue
			}
			return nil, err
		}
		scored = append(scored, match.Scored[*catalog.RoommateCandidate]{Candidate: c, Result: result})
	}

	// roommate lists keep zero scores, sorted to the bottom
	ranked := match.Rank(scored, -1, p.cfg.RoommateLimit)
	p.logRanked("roommates", len(scored), len(ranked))
	return ranked, nil
}

// skippable reports whether the error is a per-record validation problem. A
// malformed catalog entry is worth a warning, not an aborted run.
func (p *Pipeline) skippable(err error, kind, name string) bool {
	var verr *match.ValidationError
	if !errors.As(err, &verr) {
		return false
	}
	if p.deps.Logger != nil {
		p.deps.Logger.Warn("skipping invalid catalog record",
			zap.String("kind", kind),
			zap.String("name", name),
			zap.String("field", verr.Field),
			zap.String("reason", verr.Reason),
		)
	}
	return true
}

func (p *Pipeline) logRanked(kind string, scored, ranked int) {
	if p.deps.Logger == nil {
		return
	}
	p.deps.Logger.Info("ranking completed",
		zap.String("kind", kind),
		zap.Int("scored", scored),
		zap.Int("recommended", ranked),
	)
}
