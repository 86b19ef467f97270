package services

import (
	"fmt"
	"strings"

	"github.com/engimate/backend/internal/app/models"
	"github.com/engimate/backend/internal/domain"
)

// Scorer assigns the ranking score ("points") of a choice. Higher is more favorable.
type Scorer interface {
	Name() string
	Score(choice models.CollegeChoice, profile models.StudentProfile, d domain.Descriptor) float64
}

// Scoring strategy names accepted by config
const (
	ScoringProximity = "proximity"
	ScoringPrestige  = "prestige"
)

// NewScorer returns the scoring strategy registered under name
func NewScorer(name string) (Scorer, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", ScoringProximity:
		return ProximityScorer{}, nil
	case ScoringPrestige:
		return PrestigeScorer{}, nil
	}
	return nil, fmt.Errorf("unknown scoring strategy %q", name)
}

// proximityScale is the score of a cutoff equal to the student's rank
const proximityScale = 1000.0

// categoryMatchBonus rewards rows where the student's own caste column carries a
// cutoff distinct from the open one
const categoryMatchBonus = 50.0

// ProximityScorer scores a row by how close its cutoff is to the student's
// rank: 1000*min(r,s)/max(r,s), plus a category-match bonus.
// r is the primary category cutoff, falling back to the open cutoff.
type ProximityScorer struct{}

// Name implements Scorer
func (ProximityScorer) Name() string { return ScoringProximity }

// Score implements Scorer
func (ProximityScorer) Score(choice models.CollegeChoice, profile models.StudentProfile, d domain.Descriptor) float64 {
	student := profile.RankFor(choice.Track)
	if student <= 0 {
		return 0
	}

	if choice.Track == models.TrackAllIndia {
		return proximity(choice.CutoffRank(domain.LabelAllIndia), student)
	}

	primary := choice.CutoffRank(d.Primary.Column.Label)
	open := choice.CutoffRank(d.OpenLabel())
	r := primary
	if r == 0 {
		r = open
	}

	score := proximity(r, student)
	if d.GenderOpen.Applicable && primary != 0 && primary != open {
		score += categoryMatchBonus
	}
	return score
}

func proximity(r, s int64) float64 {
	if r <= 0 || s <= 0 {
		return 0
	}
	lo, hi := r, s
	if lo > hi {
		lo, hi = hi, lo
	}
	return proximityScale * float64(lo) / float64(hi)
}

// PrestigeScorer orders rows by the college's overall standing, best first.
// Unranked colleges score 0.
type PrestigeScorer struct{}

// Name implements Scorer
func (PrestigeScorer) Name() string { return ScoringPrestige }

// Score implements Scorer
func (PrestigeScorer) Score(choice models.CollegeChoice, _ models.StudentProfile, _ domain.Descriptor) float64 {
	if choice.CollegeRank <= 0 {
		return 0
	}
	return 10000.0 / float64(choice.CollegeRank)
}

// scoreAll sets Points on every choice in place
func scoreAll(choices []models.CollegeChoice, scorer Scorer, profile models.StudentProfile, d domain.Descriptor) {
	for i := range choices {
		choices[i].Points = scorer.Score(choices[i], profile, d)
	}
}
