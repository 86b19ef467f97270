package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/engimate/backend/internal/app/models/dto"
	"github.com/engimate/backend/internal/app/services"
	"github.com/engimate/backend/internal/middleware"
)

// PreferenceController serves the prediction endpoints
type PreferenceController struct {
	preferenceService services.PreferenceService
}

// NewPreferenceController creates a new PreferenceController
func NewPreferenceController(preferenceService services.PreferenceService) *PreferenceController {
	return &PreferenceController{
		preferenceService: preferenceService,
	}
}

// BuildPreferenceList predicts colleges for a state rank
// @Summary Build a preference list
// @Description Predicts colleges from a state merit rank (or percentile). When secondaryRank is present the all-India quota is searched too and both tracks are merged.
// @Tags predictions
// @Accept json
// @Produce json
// @Param request body dto.PreferenceListRequest true "Student profile"
// @Success 200 {object} dto.APIResponse{data=dto.PreferenceListResponse} "Preference list built"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 503 {object} dto.ErrorResponse "Cutoff store unavailable"
// @Router /preference-list [post]
func (c *PreferenceController) BuildPreferenceList(ctx *gin.Context) {
	var req dto.PreferenceListRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindError(ctx, err)
		return
	}

	resp, err := c.preferenceService.BuildPreferenceList(ctx.Request.Context(), req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp))
}

// BuildAllIndiaList predicts colleges for an all-India rank only
// @Summary Build an all-India preference list
// @Description Predicts colleges from the all-India quota cutoffs only
// @Tags predictions
// @Accept json
// @Produce json
// @Param request body dto.AllIndiaRequest true "All-India profile"
// @Success 200 {object} dto.APIResponse{data=dto.PreferenceListResponse} "Preference list built"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 503 {object} dto.ErrorResponse "Cutoff store unavailable"
// @Router /preference-list/all-india [post]
func (c *PreferenceController) BuildAllIndiaList(ctx *gin.Context) {
	var req dto.AllIndiaRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindError(ctx, err)
		return
	}

	resp, err := c.preferenceService.BuildAllIndiaList(ctx.Request.Context(), req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp))
}
