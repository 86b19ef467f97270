package models

// College is a row of the college catalogue
type College struct {
	CollegeCode string `json:"collegeCode"`
	CollegeName string `json:"collegeName"`
	City        string `json:"city"`
	University  string `json:"university"`
	// Rank is the college's overall standing, 0 when unranked
	Rank int `json:"rank"`
}

// CollegeName is the short form used by the name picker
type CollegeName struct {
	CollegeCode string `json:"collegeCode"`
	CollegeName string `json:"collegeName"`
}

// BranchCutoff lists every category cutoff of one branch for a (year, round)
type BranchCutoff struct {
	ChoiceCode     string            `json:"choiceCode"`
	BranchName     string            `json:"branchName"`
	BranchCategory string            `json:"branchCategory"`
	FemaleOnly     bool              `json:"femaleOnly"`
	Cutoffs        map[string]string `json:"cutoffs"`
}
