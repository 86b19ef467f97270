package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/engimate/backend/internal/app/models/dto"
	"github.com/engimate/backend/internal/pkg/logger"
)

// Pinger reports store reachability
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthController serves liveness and readiness checks
type HealthController struct {
	db      Pinger
	timeout time.Duration
}

// NewHealthController creates a new HealthController
func NewHealthController(db Pinger) *HealthController {
	return &HealthController{db: db, timeout: 2 * time.Second}
}

// Health reports whether the cutoff store is reachable
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.HealthResponse} "Healthy"
// @Failure 503 {object} dto.APIResponse{data=dto.HealthResponse} "Store unreachable"
// @Router /health [get]
func (c *HealthController) Health(ctx *gin.Context) {
	pingCtx, cancel := context.WithTimeout(ctx.Request.Context(), c.timeout)
	defer cancel()

	if err := c.db.Ping(pingCtx); err != nil {
		logger.Ctx(ctx.Request.Context()).Warn().Err(err).Msg("Health check failed")
		resp := dto.NewAPIResponse(dto.HealthResponse{Status: "degraded", Database: "down"})
		resp.Success = false
		ctx.JSON(http.StatusServiceUnavailable, resp)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.HealthResponse{Status: "ok", Database: "up"}))
}

// Ping answers liveness probes without touching the store
func (c *HealthController) Ping(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
}
