package services

import (
	"github.com/engimate/backend/internal/app/models"
)

// Rank classifier thresholds, as fractions of the student's rank
const (
	highRankRatio   = 0.75
	mediumRankRatio = 1.10
)

// Percentile classifier offsets from the student's percentile
const (
	lowPercentileMin    = 1.0
	lowPercentileMax    = 3.0
	mediumPercentileMin = -0.5
	highPercentileMin   = -10.0
)

// RankProbability labels a cutoff rank against the student's rank.
// A 0 cutoff means the category is not offered and yields N/A.
func RankProbability(cutoff, studentRank int64) models.Probability {
	if cutoff <= 0 || studentRank <= 0 {
		return models.ProbabilityNA
	}
	r, s := float64(cutoff), float64(studentRank)
	switch {
	case r <= highRankRatio*s:
		return models.ProbabilityHigh
	case r <= mediumRankRatio*s:
		return models.ProbabilityMedium
	default:
		return models.ProbabilityLow
	}
}

// PercentileProbability labels a cutoff percentile against the student's percentile.
// Cutoffs 1 to 3 points above the student are Low, within half a point below to one
// point above are Medium, and up to 10 points below are High.
func PercentileProbability(cutoff, student float64) models.Probability {
	switch {
	case cutoff >= student+lowPercentileMin && cutoff <= student+lowPercentileMax:
		return models.ProbabilityLow
	case cutoff >= student+mediumPercentileMin && cutoff < student+lowPercentileMin:
		return models.ProbabilityMedium
	case cutoff >= student+highPercentileMin && cutoff < student+mediumPercentileMin:
		return models.ProbabilityHigh
	default:
		return models.ProbabilityNA
	}
}

// Classify sets the probability label of each choice with the classifier of the
// track that produced it
func Classify(choices []models.CollegeChoice, profile models.StudentProfile) {
	female := profile.IsFemale()
	for i := range choices {
		c := &choices[i]
		if c.Track == models.TrackAllIndia && profile.SecondaryPercentile != nil && c.AIPercentile != nil {
			c.Probability = PercentileProbability(*c.AIPercentile, *profile.SecondaryPercentile)
			continue
		}
		c.Probability = RankProbability(c.OpenRank(female), profile.RankFor(c.Track))
	}
}
