package models

import "github.com/engimate/backend/internal/domain"

// CollegeChoice is one college-branch option returned to the student
type CollegeChoice struct {
	ChoiceCode     string `json:"choiceCode"`
	CollegeCode    string `json:"collegeCode"`
	CollegeName    string `json:"collegeName"`
	BranchName     string `json:"branchName"`
	BranchCategory string `json:"branchCategory"`
	City           string `json:"city"`
	University     string `json:"university"`
	Track          Track  `json:"track"`
	// Cutoffs maps a category label to "rank (percentile)". Only applicable columns are present.
	Cutoffs     map[string]string `json:"cutoffs"`
	Points      float64           `json:"points"`
	Probability Probability       `json:"probability,omitempty"`

	// Ranks holds the effective numeric cutoff behind each Cutoffs entry
	Ranks map[string]int64 `json:"-"`
	// AIPercentile is the all-India cutoff percentile, set on all-India rows only
	AIPercentile *float64 `json:"-"`
	CollegeRank  int      `json:"-"`
	BranchType   string   `json:"-"`
}

// SetCutoff records a category column value on the choice
func (c *CollegeChoice) SetCutoff(label string, rank int64, display string) {
	if c.Cutoffs == nil {
		c.Cutoffs = make(map[string]string)
	}
	if c.Ranks == nil {
		c.Ranks = make(map[string]int64)
	}
	c.Cutoffs[label] = display
	c.Ranks[label] = rank
}

// CutoffRank returns the effective cutoff rank of a column, 0 when absent or not offered
func (c CollegeChoice) CutoffRank(label string) int64 {
	return c.Ranks[label]
}

// Offered reports whether the column carries a real cutoff
func (c CollegeChoice) Offered(label string) bool {
	display, ok := c.Cutoffs[label]
	return ok && display != NotOffered && c.Ranks[label] != 0
}

// FemaleOnly reports whether the branch admits female students only
func (c CollegeChoice) FemaleOnly() bool {
	return c.BranchType == "F"
}

// OpenRank returns the open cutoff the student is compared against on this row:
// the all-India cutoff on all-India rows, otherwise GOPEN with a LOPEN fallback for female students.
func (c CollegeChoice) OpenRank(female bool) int64 {
	if c.Track == TrackAllIndia {
		return c.Ranks[domain.LabelAllIndia]
	}
	if r := c.Ranks[domain.LabelGeneralOpen]; r != 0 {
		return r
	}
	if female {
		return c.Ranks[domain.LabelLadiesOpen]
	}
	return 0
}
