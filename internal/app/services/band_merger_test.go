package services

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/engimate/backend/internal/app/models"
)

func scored(prefix string, n int, start float64) []models.CollegeChoice {
	out := make([]models.CollegeChoice, n)
	for i := range out {
		out[i] = models.CollegeChoice{
			ChoiceCode: fmt.Sprintf("%s%05d", prefix, i),
			Track:      models.TrackState,
			Points:     start - float64(i),
		}
	}
	return out
}

func codes(choices []models.CollegeChoice) []string {
	out := make([]string, len(choices))
	for i, c := range choices {
		out[i] = c.ChoiceCode
	}
	return out
}

func TestCapBands(t *testing.T) {
	tests := []struct {
		name      string
		upper     int
		lower     int
		wantUpper int
		wantLower int
	}{
		{"both bands full", 100, 100, 60, 90},
		{"short upper band is filled from lower", 40, 200, 40, 110},
		{"short lower band is filled from upper", 200, 40, 110, 40},
		{"both bands short", 10, 5, 10, 5},
		{"empty upper", 0, 300, 0, 150},
		{"empty lower", 300, 0, 150, 0},
		{"both empty", 0, 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			up, down := CapBands(scored("U", tt.upper, 1000), scored("D", tt.lower, 1000), DefaultCapPolicy)
			assert.Len(t, up, tt.wantUpper)
			assert.Len(t, down, tt.wantLower)

			want := min(DefaultCapPolicy.Upper, tt.upper) + min(DefaultCapPolicy.Lower, tt.lower)
			if tt.upper < DefaultCapPolicy.Upper || tt.lower < DefaultCapPolicy.Lower {
				want = min(DefaultCapPolicy.Total, tt.upper+tt.lower)
			}
			assert.Equal(t, want, len(up)+len(down))
		})
	}
}

func TestCapBands_KeepsBestRows(t *testing.T) {
	upper := scored("U", 80, 1000)
	up, _ := CapBands(upper, nil, DefaultCapPolicy)

	require.Len(t, up, 80)
	assert.Equal(t, upper[0].ChoiceCode, up[0].ChoiceCode)
	assert.Equal(t, upper[79].ChoiceCode, up[79].ChoiceCode)
}

func TestDedupe(t *testing.T) {
	in := []models.CollegeChoice{
		{ChoiceCode: "A", Points: 1},
		{ChoiceCode: "B", Points: 2},
		{ChoiceCode: "A", Points: 3},
		{ChoiceCode: "C", Points: 4},
		{ChoiceCode: "B", Points: 5},
	}

	out := Dedupe(in)

	assert.Equal(t, []string{"A", "B", "C"}, codes(out))
	assert.Equal(t, 3.0, out[0].Points, "last value wins")
	assert.Equal(t, 5.0, out[1].Points)
	assert.Len(t, in, 5, "input is not modified")
}

func TestDedupe_Idempotent(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for round := 0; round < 50; round++ {
		n := rng.Intn(200)
		in := make([]models.CollegeChoice, n)
		for i := range in {
			in[i] = models.CollegeChoice{
				ChoiceCode: fmt.Sprintf("%03d", rng.Intn(60)),
				Points:     rng.Float64(),
			}
		}

		once := Dedupe(in)
		twice := Dedupe(once)
		assert.Equal(t, once, twice)

		seen := map[string]bool{}
		for _, c := range once {
			assert.False(t, seen[c.ChoiceCode], "duplicate %s", c.ChoiceCode)
			seen[c.ChoiceCode] = true
		}
	}
}

func TestSortByPoints(t *testing.T) {
	in := []models.CollegeChoice{
		{ChoiceCode: "C", Points: 10},
		{ChoiceCode: "B", Points: 30},
		{ChoiceCode: "A", Points: 10},
		{ChoiceCode: "D", Points: 20},
	}

	SortByPoints(in)

	assert.Equal(t, []string{"B", "D", "A", "C"}, codes(in))
}

func TestMergeBands(t *testing.T) {
	t.Run("size bounded by total plus safety net", func(t *testing.T) {
		res := MergeBands(models.TrackState, scored("U", 300, 500), scored("D", 300, 1000), DefaultCapPolicy)

		assert.Equal(t, models.TrackState, res.Track)
		assert.LessOrEqual(t, len(res.Merged), DefaultCapPolicy.Total+DefaultCapPolicy.SafetyNet)
		assert.Len(t, res.Pool, 600)
		for i := 1; i < len(res.Merged); i++ {
			assert.GreaterOrEqual(t, res.Merged[i-1].Points, res.Merged[i].Points)
		}
	})

	t.Run("safety net holds the best of the pool", func(t *testing.T) {
		res := MergeBands(models.TrackState, scored("U", 300, 500), scored("D", 30, 1000), DefaultCapPolicy)

		merged := map[string]bool{}
		for _, c := range res.Merged {
			merged[c.ChoiceCode] = true
		}
		for _, c := range res.Pool[:DefaultCapPolicy.SafetyNet] {
			assert.True(t, merged[c.ChoiceCode], "missing %s", c.ChoiceCode)
		}
	})

	t.Run("rows present in both bands appear once", func(t *testing.T) {
		shared := scored("S", 5, 800)
		upper := append(scored("U", 10, 500), shared...)
		lower := append(scored("D", 10, 700), shared...)

		res := MergeBands(models.TrackState, upper, lower, DefaultCapPolicy)

		assert.Len(t, res.Merged, 25)
		assert.Equal(t, res.Merged, Dedupe(res.Merged))
	})

	t.Run("empty bands", func(t *testing.T) {
		res := MergeBands(models.TrackAllIndia, nil, nil, DefaultCapPolicy)
		assert.Empty(t, res.Merged)
		assert.Empty(t, res.Pool)
	})

	t.Run("inputs are not reordered", func(t *testing.T) {
		upper := []models.CollegeChoice{{ChoiceCode: "A", Points: 1}, {ChoiceCode: "B", Points: 2}}
		MergeBands(models.TrackState, upper, nil, DefaultCapPolicy)
		assert.Equal(t, []string{"A", "B"}, codes(upper))
	})
}

func TestCombineTracks(t *testing.T) {
	t.Run("single track passes through", func(t *testing.T) {
		res := MergeBands(models.TrackState, scored("U", 20, 500), scored("D", 20, 600), DefaultCapPolicy)

		colleges, all := CombineTracks([]MergeResult{res}, DefaultCapPolicy)

		assert.Equal(t, res.Merged, colleges)
		assert.Equal(t, codes(res.Pool[:10]), codes(all))
	})

	t.Run("state row wins a shared choice code", func(t *testing.T) {
		stateRes := MergeBands(models.TrackState, []models.CollegeChoice{
			{ChoiceCode: "X", Track: models.TrackState, Points: 100},
		}, nil, DefaultCapPolicy)
		aiRes := MergeBands(models.TrackAllIndia, []models.CollegeChoice{
			{ChoiceCode: "X", Track: models.TrackAllIndia, Points: 900},
			{ChoiceCode: "Y", Track: models.TrackAllIndia, Points: 50},
		}, nil, DefaultCapPolicy)

		colleges, all := CombineTracks([]MergeResult{stateRes, aiRes}, DefaultCapPolicy)

		require.Len(t, colleges, 2)
		assert.Equal(t, "X", colleges[0].ChoiceCode)
		assert.Equal(t, models.TrackState, colleges[0].Track)
		assert.Equal(t, []string{"X", "Y"}, codes(all))
	})

	t.Run("browse list uses the unfiltered pool", func(t *testing.T) {
		res := MergeBands(models.TrackState, scored("U", 3, 500), nil, DefaultCapPolicy)
		res.Unfiltered = RankPool(scored("U", 3, 500), scored("X", 2, 900))

		colleges, all := CombineTracks([]MergeResult{res}, DefaultCapPolicy)

		assert.Equal(t, []string{"U00000", "U00001", "U00002"}, codes(colleges))
		assert.Equal(t, []string{"X00000", "X00001", "U00000", "U00001", "U00002"}, codes(all))
	})

	t.Run("browse list of two tracks keeps the state row", func(t *testing.T) {
		stateRes := MergeBands(models.TrackState, nil, nil, DefaultCapPolicy)
		stateRes.Unfiltered = []models.CollegeChoice{{ChoiceCode: "X", Track: models.TrackState, Points: 100}}
		aiRes := MergeBands(models.TrackAllIndia, []models.CollegeChoice{
			{ChoiceCode: "Y", Track: models.TrackAllIndia, Points: 50},
		}, nil, DefaultCapPolicy)
		aiRes.Unfiltered = []models.CollegeChoice{
			{ChoiceCode: "X", Track: models.TrackAllIndia, Points: 900},
			{ChoiceCode: "Y", Track: models.TrackAllIndia, Points: 50},
		}

		colleges, all := CombineTracks([]MergeResult{stateRes, aiRes}, DefaultCapPolicy)

		assert.Equal(t, []string{"Y"}, codes(colleges))
		require.Equal(t, []string{"X", "Y"}, codes(all))
		assert.Equal(t, models.TrackState, all[0].Track)
	})

	t.Run("all colleges come from the union of pools", func(t *testing.T) {
		stateRes := MergeBands(models.TrackState, scored("S", 40, 500), scored("T", 40, 450), DefaultCapPolicy)
		aiRes := MergeBands(models.TrackAllIndia, scored("A", 40, 520), scored("B", 40, 300), DefaultCapPolicy)

		colleges, all := CombineTracks([]MergeResult{stateRes, aiRes}, DefaultCapPolicy)

		union := map[string]bool{}
		for _, c := range append(stateRes.Pool, aiRes.Pool...) {
			union[c.ChoiceCode] = true
		}
		require.Len(t, all, DefaultCapPolicy.SafetyNet)
		for _, c := range all {
			assert.True(t, union[c.ChoiceCode])
		}
		assert.LessOrEqual(t, len(colleges), DefaultCapPolicy.Total+DefaultCapPolicy.SafetyNet)
		assert.Equal(t, colleges, Dedupe(colleges))
	})
}
