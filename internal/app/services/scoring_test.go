package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/engimate/backend/internal/app/models"
	"github.com/engimate/backend/internal/domain"
)

func TestNewScorer(t *testing.T) {
	s, err := NewScorer("")
	require.NoError(t, err)
	assert.Equal(t, ScoringProximity, s.Name())

	s, err = NewScorer(" Prestige ")
	require.NoError(t, err)
	assert.Equal(t, ScoringPrestige, s.Name())

	_, err = NewScorer("random")
	assert.Error(t, err)
}

func TestProximityScorer(t *testing.T) {
	open := domain.Resolve(domain.Selection{Category: domain.CategoryOpen, Gender: domain.GenderMale})
	obc := domain.Resolve(domain.Selection{Category: domain.CategoryOBC, Gender: domain.GenderMale})
	profile := models.StudentProfile{Rank: 5000, SecondaryRank: 20000}

	tests := []struct {
		name   string
		choice models.CollegeChoice
		d      domain.Descriptor
		want   float64
	}{
		{"exact match", stateRow("100100001", 5000), open, 1000},
		{"better cutoff", stateRow("100100001", 2500), open, 500},
		{"worse cutoff", stateRow("100100001", 10000), open, 500},
		{"not offered", stateRow("100100001", 0), open, 0},
		{"caste cutoff with bonus", stateRow("100100001", 2000, withCutoff("GOBC", 5000)), obc, 1050},
		{"caste cutoff equal to open", stateRow("100100001", 5000, withCutoff("GOBC", 5000)), obc, 1000},
		{"caste column falls back to open", stateRow("100100001", 2500, withCutoff("GOBC", 0)), obc, 500},
		{"all-India row", aiRow("100100001", 10000), open, 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, ProximityScorer{}.Score(tt.choice, profile, tt.d), 1e-9)
		})
	}
}

func TestProximityScorer_PeaksAtStudentRank(t *testing.T) {
	d := domain.Resolve(domain.Selection{Category: domain.CategoryOpen, Gender: domain.GenderMale})
	profile := models.StudentProfile{Rank: 5000}

	peak := ProximityScorer{}.Score(stateRow("100100001", 5000), profile, d)
	for _, r := range []int64{1, 1000, 4999, 5001, 9000, 250000} {
		assert.Less(t, ProximityScorer{}.Score(stateRow("100100001", r), profile, d), peak)
	}
}

func TestPrestigeScorer(t *testing.T) {
	d := domain.Resolve(domain.Selection{Category: domain.CategoryOpen, Gender: domain.GenderMale})

	ranked := stateRow("100100001", 5000)
	ranked.CollegeRank = 4
	assert.Equal(t, 2500.0, PrestigeScorer{}.Score(ranked, models.StudentProfile{}, d))

	unranked := stateRow("100100002", 5000)
	assert.Zero(t, PrestigeScorer{}.Score(unranked, models.StudentProfile{}, d))
}

func TestScoreAll(t *testing.T) {
	d := domain.Resolve(domain.Selection{Category: domain.CategoryOpen, Gender: domain.GenderMale})
	choices := []models.CollegeChoice{stateRow("100100001", 5000), stateRow("100100002", 10000)}

	scoreAll(choices, ProximityScorer{}, models.StudentProfile{Rank: 5000}, d)

	assert.InDelta(t, 1000, choices[0].Points, 1e-9)
	assert.InDelta(t, 500, choices[1].Points, 1e-9)
}
