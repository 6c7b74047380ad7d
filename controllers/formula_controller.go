package controllers

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"mongo-keeper/internal/formula"
	"mongo-keeper/internal/models"
)

type FormulaController struct {
	registry *formula.Registry
}

func NewFormulaController() *FormulaController {
	return &FormulaController{
		registry: formula.GetRegistry(),
	}
}

func (f *FormulaController) RegisterRoutes(r *gin.Engine) {
	api := r.Group("/mongokeeper/api/v1")
	api.GET("/formulas", f.ListFormulas)
	api.GET("/formulas/:name", f.GetFormula)
}

// ListFormulas lists the registered formula names and their versions
//
//	@Summary		List formulas
//	@Tags			Formulas
//	@Produce		json
//	@Success		200	{object}	map[string][]string	"Formula versions keyed by name"
//	@Router			/mongokeeper/api/v1/formulas [get]
func (f *FormulaController) ListFormulas(c *gin.Context) {
	results := map[string][]string{}
	for _, name := range f.registry.Names() {
		results[name] = f.registry.Versions(name)
	}
	c.JSON(200, results)
}

// GetFormula returns the newest registered formula of the given name
//
//	@Summary		Get formula
//	@Tags			Formulas
//	@Produce		json
//	@Param			name	path		string					true	"Formula name"
//	@Success		200		{object}	models.Formula			"Formula definition"
//	@Failure		404		{object}	models.ErrorResponse	"Formula not found"
//	@Router			/mongokeeper/api/v1/formulas/{name} [get]
func (f *FormulaController) GetFormula(c *gin.Context) {
	name := c.Param("name")
	def, err := f.registry.Lookup(name)
	if err != nil {
		c.JSON(404, &models.ErrorResponse{
			Code:  "formula.notexist",
			Error: fmt.Sprintf("formula [%s] isn't exist", name),
		})
		return
	}
	c.JSON(200, def)
}
