package controllers

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"mongo-keeper/internal/env"
	"mongo-keeper/internal/models"
	"mongo-keeper/services"
)

type APIController struct {
	manager   *services.ServiceManager
	startTime time.Time
}

/**
 * Create new API controller instance
 * @param {*services.ServiceManager} manager - Service manager instance
 * @returns {*APIController} New API controller instance
 * @example
 * svcManager := services.GetServiceManager()
 * controller := controllers.NewAPIController(svcManager)
 */
func NewAPIController(manager *services.ServiceManager) *APIController {
	return &APIController{
		manager:   manager,
		startTime: time.Now(),
	}
}

/**
 * Register all API routes to Gin engine
 * @param {*gin.Engine} r - Gin router instance
 * @description
 * - Registers service management routes under /mongokeeper/api/v1
 * - Registers /healthz readiness probe and /metrics Prometheus endpoint
 * @example
 * router := gin.Default()
 * controller := NewAPIController(svcManager)
 * controller.RegisterRoutes(router)
 */
func (a *APIController) RegisterRoutes(r *gin.Engine) {
	NewServiceController(a.manager).RegisterRoutes(r)
	NewFormulaController().RegisterRoutes(r)
	r.GET("/healthz", a.Healthz)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

// @Summary Readiness probe
// @Description Report daemon version, start time and the number of live instances
// @Tags System
// @Produce json
// @Success 200 {object} models.HealthResponse
// @Router /healthz [get]
func (a *APIController) Healthz(c *gin.Context) {
	c.JSON(200, &models.HealthResponse{
		Status:    "ok",
		Version:   env.Version,
		StartTime: a.startTime.Format(time.RFC3339),
		Services:  len(a.manager.GetInstances()),
	})
}
