package models

// Track identifies the quota a cutoff row was admitted under
type Track string

const (
	TrackState    Track = "STATE"     // Maharashtra state quota, ranked by state merit rank
	TrackAllIndia Track = "ALL_INDIA" // all-India quota, ranked by the national rank
)

// Probability is the admission-confidence label attached to a choice
type Probability string

const (
	ProbabilityHigh   Probability = "High"
	ProbabilityMedium Probability = "Medium"
	ProbabilityLow    Probability = "Low"
	ProbabilityNA     Probability = "N/A"
)

// NotOffered is the display value of a category cutoff of 0
const NotOffered = "0 (0)"
