package services

import (
	"github.com/engimate/backend/internal/app/models"
)

// CombineTracks merges independently produced track results into one list,
// treating their candidate pools as a single pool. It returns the final list
// and the browse list: the best policy.SafetyNet candidates of the unified
// pool before city and branch filters.
//
// All-India results are concatenated before state results, so when both tracks
// list the same choice code the state row (which also shows the all-India
// cutoff) wins.
func CombineTracks(results []MergeResult, policy CapPolicy) ([]models.CollegeChoice, []models.CollegeChoice) {
	if len(results) == 1 {
		return results[0].Merged, append([]models.CollegeChoice(nil), top(results[0].browsePool(), policy.SafetyNet)...)
	}

	var merged, pool, browse []models.CollegeChoice
	for _, track := range []models.Track{models.TrackAllIndia, models.TrackState} {
		for _, r := range results {
			if r.Track != track {
				continue
			}
			merged = append(merged, r.Merged...)
			pool = append(pool, r.Pool...)
			browse = append(browse, r.browsePool()...)
		}
	}

	return finalize(merged, RankPool(pool), policy), append([]models.CollegeChoice(nil), top(RankPool(browse), policy.SafetyNet)...)
}
