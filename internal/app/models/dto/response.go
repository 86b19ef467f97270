package dto

import (
	"time"

	"github.com/engimate/backend/internal/app/models"
)

// APIResponse is the success envelope of every endpoint
type APIResponse struct {
	Success   bool        `json:"success" example:"true"`
	Message   string      `json:"message,omitempty"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp time.Time   `json:"timestamp" example:"2025-06-23T12:01:05.123Z"`
}

// NewAPIResponse wraps data in a success envelope
func NewAPIResponse(data interface{}) APIResponse {
	return APIResponse{
		Success:   true,
		Data:      data,
		Timestamp: time.Now(),
	}
}

// PaginationInfo describes the page returned by a paginated endpoint
type PaginationInfo struct {
	CurrentPage int   `json:"currentPage"`
	TotalPages  int   `json:"totalPages"`
	PageSize    int   `json:"pageSize"`
	TotalItems  int64 `json:"totalItems"`
}

// PaginatedResponse represents a paginated list with metadata
type PaginatedResponse struct {
	Items      interface{}    `json:"items"`
	Pagination PaginationInfo `json:"pagination"`
}

// PreferenceListResponse is the result of a prediction request
type PreferenceListResponse struct {
	// Colleges is the capped, ranked list with probability labels
	Colleges []models.CollegeChoice `json:"colleges"`
	// AllColleges holds the best candidates of the whole search before city and branch filters, at most 10
	AllColleges []models.CollegeChoice `json:"allColleges"`
}

// CollegeCutoffsResponse lists a college's branch cutoffs for one round
type CollegeCutoffsResponse struct {
	College  models.College        `json:"college"`
	Year     int                   `json:"year"`
	Round    int                   `json:"round"`
	Branches []models.BranchCutoff `json:"branches"`
}

// HealthResponse is returned by the health endpoint
type HealthResponse struct {
	Status   string `json:"status" example:"ok"`
	Database string `json:"database" example:"up"`
}
