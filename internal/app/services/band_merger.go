package services

import (
	"sort"

	"github.com/engimate/backend/internal/app/models"
)

// CapPolicy holds the list-size targets of the band merger
type CapPolicy struct {
	Upper     int
	Lower     int
	Total     int
	SafetyNet int
}

// DefaultCapPolicy takes 60 upper and 90 lower band rows, 150 in total, plus a 10 row safety net
var DefaultCapPolicy = CapPolicy{Upper: 60, Lower: 90, Total: 150, SafetyNet: 10}

// MergeResult is the output of one track's band merge
type MergeResult struct {
	Track models.Track
	// Merged is the capped, ranked list with the safety net applied
	Merged []models.CollegeChoice
	// Pool is every eligible candidate of both bands, deduplicated and ranked
	Pool []models.CollegeChoice
	// Unfiltered is Pool before the city and branch filters. It backs the
	// browse list; nil means Pool.
	Unfiltered []models.CollegeChoice
}

func (r MergeResult) browsePool() []models.CollegeChoice {
	if r.Unfiltered != nil {
		return r.Unfiltered
	}
	return r.Pool
}

// RankPool concatenates candidate lists, dedupes them and ranks the result.
// The inputs are not modified.
func RankPool(lists ...[]models.CollegeChoice) []models.CollegeChoice {
	var all []models.CollegeChoice
	for _, l := range lists {
		all = append(all, l...)
	}
	pool := Dedupe(all)
	SortByPoints(pool)
	return pool
}

// Dedupe removes repeated choice codes. A code keeps the position of its first
// occurrence and the value of its last.
func Dedupe(choices []models.CollegeChoice) []models.CollegeChoice {
	index := make(map[string]int, len(choices))
	out := make([]models.CollegeChoice, 0, len(choices))
	for _, c := range choices {
		if i, ok := index[c.ChoiceCode]; ok {
			out[i] = c
			continue
		}
		index[c.ChoiceCode] = len(out)
		out = append(out, c)
	}
	return out
}

// SortByPoints orders choices by descending points. Ties keep choice code order
// so results are deterministic.
func SortByPoints(choices []models.CollegeChoice) {
	sort.SliceStable(choices, func(i, j int) bool {
		if choices[i].Points != choices[j].Points {
			return choices[i].Points > choices[j].Points
		}
		return choices[i].ChoiceCode < choices[j].ChoiceCode
	})
}

// CapBands takes up to policy.Upper rows from upper and policy.Lower rows from
// lower. When one band is short, the other band may fill the gap up to policy.Total.
// Both inputs must already be ranked.
func CapBands(upper, lower []models.CollegeChoice, policy CapPolicy) ([]models.CollegeChoice, []models.CollegeChoice) {
	upTake := min(policy.Upper, len(upper))
	downTake := min(policy.Lower, len(lower))

	switch {
	case upTake < policy.Upper:
		downTake = min(max(policy.Total-upTake, 0), len(lower))
	case downTake < policy.Lower:
		upTake = min(max(policy.Total-downTake, 0), len(upper))
	}
	return upper[:upTake], lower[:downTake]
}

// MergeBands ranks both bands, caps them and merges them into one list.
// The best policy.SafetyNet rows of the whole pool are always kept.
func MergeBands(track models.Track, upper, lower []models.CollegeChoice, policy CapPolicy) MergeResult {
	upper = append([]models.CollegeChoice(nil), upper...)
	lower = append([]models.CollegeChoice(nil), lower...)
	SortByPoints(upper)
	SortByPoints(lower)

	pool := RankPool(upper, lower)

	up, down := CapBands(upper, lower, policy)
	merged := make([]models.CollegeChoice, 0, len(up)+len(down))
	merged = append(merged, down...)
	merged = append(merged, up...)

	return MergeResult{
		Track:  track,
		Merged: finalize(merged, pool, policy),
		Pool:   pool,
	}
}

// finalize dedupes and ranks candidates, truncates them to policy.Total and
// appends the top of the pool as a safety net
func finalize(candidates, pool []models.CollegeChoice, policy CapPolicy) []models.CollegeChoice {
	out := Dedupe(candidates)
	SortByPoints(out)
	if len(out) > policy.Total {
		out = out[:policy.Total]
	}

	out = append(out, top(pool, policy.SafetyNet)...)
	out = Dedupe(out)
	SortByPoints(out)
	return out
}

func top(choices []models.CollegeChoice, n int) []models.CollegeChoice {
	if len(choices) < n {
		n = len(choices)
	}
	return choices[:n]
}
