package domain

import (
	"errors"
	"fmt"
)

// Table lookup errors
var (
	ErrUnsupportedYear  = errors.New("unsupported academic year")
	ErrUnsupportedRound = errors.New("unsupported CAP round")
)

// Supported academic years
const (
	Year2025 = 2025
	Year2024 = 2024
)

type yearTables struct {
	suffix    string
	maxRounds int
}

var years = map[int]yearTables{
	Year2025: {suffix: "2025_26", maxRounds: 4},
	Year2024: {suffix: "2024_25", maxRounds: 3},
}

// TableSet holds the physical table and column names for one (year, round) pair
type TableSet struct {
	Year  int
	Round int
	// Cutoff is the state-quota CAP round cutoff table
	Cutoff string
	// Merit is the merit list mapping rank to percentile
	Merit   string
	College string
	Branch  string
	// AllIndia is the all-India quota cutoff table (all rounds in one table)
	AllIndia           string
	AllIndiaRank       string
	AllIndiaPercentile string
}

// MaxRound returns the number of CAP rounds published for a year, or 0 when unsupported
func MaxRound(year int) int {
	return years[year].maxRounds
}

// SupportedYear reports whether cutoff tables exist for the year
func SupportedYear(year int) bool {
	_, ok := years[year]
	return ok
}

// Tables resolves the table set for a year and CAP round
func Tables(year, round int) (TableSet, error) {
	y, ok := years[year]
	if !ok {
		return TableSet{}, fmt.Errorf("%w: %d", ErrUnsupportedYear, year)
	}
	if round < 1 || round > y.maxRounds {
		return TableSet{}, fmt.Errorf("%w: round %d is not available for %d", ErrUnsupportedRound, round, year)
	}

	return TableSet{
		Year:               year,
		Round:              round,
		Cutoff:             fmt.Sprintf("MH_%s_CAP_%d", y.suffix, round),
		Merit:              "merit_list_" + y.suffix,
		College:            "College_info_" + y.suffix,
		Branch:             "Branch_info_" + y.suffix,
		AllIndia:           fmt.Sprintf("AI_%s_ALL_CAP", y.suffix),
		AllIndiaRank:       fmt.Sprintf("cap_%d_rank", round),
		AllIndiaPercentile: fmt.Sprintf("cap_%d_per", round),
	}, nil
}
