package models

// RankBand bounds a cutoff query to an inclusive rank window
type RankBand struct {
	Min int64
	Max int64
}

// Band names used in logs and metrics
const (
	BandUpper = "upper"
	BandLower = "lower"
)

// UpperBand covers colleges whose cutoff is better than or equal to the student's rank
func UpperBand(rank int64) RankBand {
	return RankBand{Min: 1, Max: rank}
}

// LowerBand covers colleges whose cutoff is at or below the student's rank, up to ceiling
func LowerBand(rank, ceiling int64) RankBand {
	return RankBand{Min: rank, Max: ceiling}
}

// Contains reports whether r lies inside the band
func (b RankBand) Contains(r int64) bool {
	return r >= b.Min && r <= b.Max
}
