package dto

// PreferenceListRequest drives the state-quota prediction, optionally dual-track
type PreferenceListRequest struct {
	Rank                *int64   `json:"rank" binding:"omitempty,gte=1" example:"5000"`
	Percentile          *float64 `json:"percentile" binding:"omitempty,gte=0,lte=100" example:"98.75"`
	Category            string   `json:"category" binding:"required" example:"OBC"`
	Gender              string   `json:"gender" binding:"required" example:"Female"`
	TFWS                bool     `json:"tfws"`
	SpecialReservation  string   `json:"specialReservation" example:"None"`
	Year                int      `json:"year" binding:"omitempty" example:"2025"`
	Round               int      `json:"round" binding:"omitempty,gte=1" example:"1"`
	City                []string `json:"city" example:"All"`
	BranchCategory      []string `json:"branchCategory" example:"All"`
	SecondaryRank       *int64   `json:"secondaryRank" binding:"omitempty,gte=1" example:"45000"`
	SecondaryPercentile *float64 `json:"secondaryPercentile" binding:"omitempty,gte=0,lte=100" example:"95.4562"`
}

// AllIndiaRequest drives an all-India quota only prediction
type AllIndiaRequest struct {
	SecondaryRank       *int64   `json:"secondaryRank" binding:"required,gte=1" example:"45000"`
	SecondaryPercentile *float64 `json:"secondaryPercentile" binding:"omitempty,gte=0,lte=100" example:"95.4562"`
	Gender              string   `json:"gender" binding:"required" example:"Male"`
	Year                int      `json:"year" binding:"omitempty" example:"2025"`
	Round               int      `json:"round" binding:"omitempty,gte=1" example:"1"`
	City                []string `json:"city" example:"All"`
	BranchCategory      []string `json:"branchCategory" example:"All"`
}

// TopCollegesRequest filters the college catalogue
type TopCollegesRequest struct {
	University string   `json:"university" example:"All"`
	Cities     []string `json:"cities" example:"Pune"`
	Page       int      `json:"page" binding:"omitempty,gte=1" example:"1"`
	Size       int      `json:"size" binding:"omitempty,gte=1,lte=100" example:"20"`
}

// CutoffQuery selects the table set of the cutoff endpoint
type CutoffQuery struct {
	Year  int `form:"year" binding:"omitempty"`
	Round int `form:"round" binding:"omitempty,gte=1"`
}
