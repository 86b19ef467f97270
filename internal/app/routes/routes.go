package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/engimate/backend/internal/app/controllers"
	"github.com/engimate/backend/internal/middleware"
)

// Controllers groups the handlers mounted by SetupRouter
type Controllers struct {
	Preference *controllers.PreferenceController
	College    *controllers.CollegeController
	Health     *controllers.HealthController
}

// SetupRouter configures all application routes. authMiddleware may be nil,
// in which case the prediction routes are public.
func SetupRouter(router *gin.Engine, ctrl Controllers, authMiddleware *middleware.AuthMiddleware) {
	router.GET("/ping", ctrl.Health.Ping)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.NoRoute(middleware.NoRoute)

	// API version group
	v1 := router.Group("/api/v1")
	v1.GET("/health", ctrl.Health.Health)

	// --- Prediction routes ---
	predictions := v1.Group("/preference-list")
	if authMiddleware != nil {
		predictions.Use(authMiddleware.RequireVerifiedIdentity())
	}
	{
		predictions.POST("", ctrl.Preference.BuildPreferenceList)
		predictions.POST("/all-india", ctrl.Preference.BuildAllIndiaList)
	}

	// --- Public catalogue routes ---
	colleges := v1.Group("/colleges")
	{
		colleges.GET("/names", ctrl.College.ListCollegeNames)
		colleges.GET("/:code", ctrl.College.GetCollege)
		colleges.GET("/:code/cutoffs", ctrl.College.GetCollegeCutoffs)
	}
	v1.GET("/cities", ctrl.College.ListCities)
	v1.GET("/universities", ctrl.College.ListUniversities)
	v1.POST("/top-colleges", ctrl.College.TopColleges)
}
