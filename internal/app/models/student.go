package models

import "github.com/engimate/backend/internal/domain"

// StudentProfile is the validated, request-scoped input of a prediction.
// It is passed by value through every stage and never shared between requests.
type StudentProfile struct {
	// Rank is the state merit rank. Resolved from Percentile when only that was given.
	Rank       int64
	Percentile *float64
	Category   domain.Category
	Gender     domain.Gender
	Special    domain.SpecialReservation
	TFWS       bool
	// Branches and Cities hold the requested filters; nil means "All"
	Branches []string
	Cities   []string
	// SecondaryRank is the all-India rank, 0 when the student has none
	SecondaryRank       int64
	SecondaryPercentile *float64
	Year                int
	Round               int
}

// Selection returns the column-resolution input of the profile
func (p StudentProfile) Selection() domain.Selection {
	return domain.Selection{
		Category: p.Category,
		Gender:   p.Gender,
		TFWS:     p.TFWS,
		Special:  p.Special,
	}
}

// DualTrack reports whether an all-India rank was supplied
func (p StudentProfile) DualTrack() bool {
	return p.SecondaryRank > 0
}

// RankFor returns the student's rank on the given track
func (p StudentProfile) RankFor(track Track) int64 {
	if track == TrackAllIndia {
		return p.SecondaryRank
	}
	return p.Rank
}

// IsFemale reports whether ladies columns apply
func (p StudentProfile) IsFemale() bool {
	return p.Gender == domain.GenderFemale
}
