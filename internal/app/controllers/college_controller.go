package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/engimate/backend/internal/app/models/dto"
	"github.com/engimate/backend/internal/app/services"
	"github.com/engimate/backend/internal/middleware"
)

// CollegeController serves the read-only college catalogue
type CollegeController struct {
	collegeService services.CollegeService
}

// NewCollegeController creates a new CollegeController
func NewCollegeController(collegeService services.CollegeService) *CollegeController {
	return &CollegeController{
		collegeService: collegeService,
	}
}

// ListCollegeNames lists every college code and name
// @Summary List college names
// @Tags colleges
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]models.CollegeName} "College names"
// @Failure 503 {object} dto.ErrorResponse "Cutoff store unavailable"
// @Router /colleges/names [get]
func (c *CollegeController) ListCollegeNames(ctx *gin.Context) {
	names, err := c.collegeService.ListCollegeNames(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(names))
}

// GetCollege returns one college
// @Summary Get college by code
// @Tags colleges
// @Produce json
// @Param code path string true "College code"
// @Success 200 {object} dto.APIResponse{data=models.College} "College"
// @Failure 404 {object} dto.ErrorResponse "College not found"
// @Router /colleges/{code} [get]
func (c *CollegeController) GetCollege(ctx *gin.Context) {
	college, err := c.collegeService.GetCollege(ctx.Request.Context(), ctx.Param("code"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(college))
}

// GetCollegeCutoffs lists every branch cutoff of a college
// @Summary Get college cutoffs
// @Description Every branch of the college with every category cutoff as "rank (percentile)"
// @Tags colleges
// @Produce json
// @Param code path string true "College code"
// @Param year query int false "Academic year"
// @Param round query int false "CAP round"
// @Success 200 {object} dto.APIResponse{data=dto.CollegeCutoffsResponse} "Cutoffs"
// @Failure 400 {object} dto.ErrorResponse "Unsupported year or round"
// @Failure 404 {object} dto.ErrorResponse "College not found"
// @Router /colleges/{code}/cutoffs [get]
func (c *CollegeController) GetCollegeCutoffs(ctx *gin.Context) {
	var q dto.CutoffQuery
	if err := ctx.ShouldBindQuery(&q); err != nil {
		middleware.HandleBindError(ctx, err)
		return
	}

	resp, err := c.collegeService.GetCollegeCutoffs(ctx.Request.Context(), ctx.Param("code"), q)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp))
}

// ListCities lists the distinct college cities
// @Summary List cities
// @Tags colleges
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]string} "Cities"
// @Router /cities [get]
func (c *CollegeController) ListCities(ctx *gin.Context) {
	cities, err := c.collegeService.ListCities(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(cities))
}

// ListUniversities lists the distinct universities
// @Summary List universities
// @Tags colleges
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]string} "Universities"
// @Router /universities [get]
func (c *CollegeController) ListUniversities(ctx *gin.Context) {
	universities, err := c.collegeService.ListUniversities(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(universities))
}

// TopColleges lists colleges by overall standing
// @Summary Top colleges
// @Tags colleges
// @Accept json
// @Produce json
// @Param request body dto.TopCollegesRequest true "Filters"
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse} "Colleges"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Router /top-colleges [post]
func (c *CollegeController) TopColleges(ctx *gin.Context) {
	var req dto.TopCollegesRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindError(ctx, err)
		return
	}

	resp, err := c.collegeService.TopColleges(ctx.Request.Context(), req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp))
}
