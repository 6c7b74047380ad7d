package controllers

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"mongo-keeper/internal/config"
	"mongo-keeper/internal/models"
	"mongo-keeper/services"
)

type ServiceController struct {
	manager *services.ServiceManager
}

/**
 * Create new Service controller instance
 * @param {*services.ServiceManager} manager - Service manager instance
 * @returns {*ServiceController} New Service controller instance
 */
func NewServiceController(manager *services.ServiceManager) *ServiceController {
	return &ServiceController{
		manager: manager,
	}
}

/**
 * Register all service API routes to Gin engine
 * @param {*gin.Engine} r - Gin router instance
 * @description
 * - Registers routes for service management (list/get/start/stop)
 */
func (s *ServiceController) RegisterRoutes(r *gin.Engine) {
	api := r.Group("/mongokeeper/api/v1")
	api.GET("/services", s.ListServices)
	api.GET("/services/:name", s.GetService)
	api.POST("/services/:name/start", s.StartService)
	api.POST("/services/:name/stop", s.StopService)
}

// StartOptions is the optional JSON body of the start endpoint.
type StartOptions struct {
	Name     string   `json:"name"`
	Platform string   `json:"platform"`
	Dir      string   `json:"dir"`
	Port     int      `json:"port"`
	Args     []string `json:"args"`
}

// ListServices lists all managed service instances
//
//	@Summary		List all services
//	@Description	Get list of all managed service instances with their current state
//	@Tags			Services
//	@Produce		json
//	@Success		200	{array}		models.ServiceDetail	"List of service instances"
//	@Router			/mongokeeper/api/v1/services [get]
func (s *ServiceController) ListServices(c *gin.Context) {
	results := []models.ServiceDetail{}
	for _, svc := range s.manager.GetInstances() {
		results = append(results, svc.GetDetail())
	}
	c.JSON(200, results)
}

// GetService returns the detail of one service instance
//
//	@Summary		Get service
//	@Description	Get one service instance by instance key or formula name
//	@Tags			Services
//	@Produce		json
//	@Param			name	path		string					true	"Instance key or formula name"
//	@Success		200		{object}	models.ServiceDetail	"Service instance detail"
//	@Failure		404		{object}	models.ErrorResponse	"Service not found"
//	@Router			/mongokeeper/api/v1/services/{name} [get]
func (s *ServiceController) GetService(c *gin.Context) {
	name := c.Param("name")
	svc := s.manager.GetInstance(name)
	if svc == nil {
		c.JSON(404, &models.ErrorResponse{
			Code:  "service.notexist",
			Error: fmt.Sprintf("service [%s] isn't exist", name),
		})
		return
	}
	c.JSON(200, svc.GetDetail())
}

// StartService installs and launches a formula by name
//
//	@Summary		Start service
//	@Description	Install (if needed) and launch the named formula
//	@Tags			Services
//	@Accept			json
//	@Produce		json
//	@Param			name	path		string					true	"Formula name"
//	@Param			body	body		StartOptions			false	"Launch options"
//	@Success		200		{object}	models.ServiceDetail	"Running instance detail"
//	@Failure		500		{object}	models.ErrorResponse	"Launch failure"
//	@Router			/mongokeeper/api/v1/services/{name}/start [post]
func (s *ServiceController) StartService(c *gin.Context) {
	name := c.Param("name")

	var body StartOptions
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(400, &models.ErrorResponse{
				Code:  "service.badrequest",
				Error: err.Error(),
			})
			return
		}
	}
	opts := config.Options{
		Name:     body.Name,
		Platform: body.Platform,
		Dir:      body.Dir,
		Port:     body.Port,
		Args:     body.Args,
	}

	svc, err := s.manager.StartFormula(c.Request.Context(), name, opts, nil)
	if err != nil {
		c.JSON(500, &models.ErrorResponse{
			Code:  "service.start_failed",
			Error: err.Error(),
		})
		return
	}
	c.JSON(200, svc.GetDetail())
}

// StopService stops a service instance by name
//
//	@Summary		Stop service
//	@Description	Stop a running service instance by instance key or formula name
//	@Tags			Services
//	@Produce		json
//	@Param			name	path		string					true	"Instance key or formula name"
//	@Success		200		{object}	map[string]interface{}	"Stop success response"
//	@Failure		500		{object}	models.ErrorResponse	"Stop failure"
//	@Router			/mongokeeper/api/v1/services/{name}/stop [post]
func (s *ServiceController) StopService(c *gin.Context) {
	name := c.Param("name")
	if err := s.manager.StopService(name); err != nil {
		c.JSON(500, &models.ErrorResponse{
			Code:  "service.stop_failed",
			Error: err.Error(),
		})
		return
	}
	c.JSON(200, gin.H{
		"status":  "success",
		"message": fmt.Sprintf("service [%s] stopped", name),
	})
}
