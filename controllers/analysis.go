package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"minerva/api/types"
	"minerva/services"
)

type AnalysisController struct {
	manager *services.Manager
}

func NewAnalysisController(manager *services.Manager) *AnalysisController {
	return &AnalysisController{manager: manager}
}

func (ctl *AnalysisController) Stats(c *gin.Context) {
	c.JSON(http.StatusOK, types.Response{
		Status: "success",
		Data:   services.ComputeStats(ctl.manager.Notes(), ctl.manager.Projects()),
	})
}

func (ctl *AnalysisController) Suggestions(c *gin.Context) {
	c.JSON(http.StatusOK, types.Response{
		Status: "success",
		Data:   services.Suggestions(ctl.manager.Notes(), ctl.manager.Projects()),
	})
}

func (ctl *AnalysisController) Roadmap(c *gin.Context) {
	c.JSON(http.StatusOK, types.Response{
		Status: "success",
		Data:   services.Roadmap(ctl.manager.Projects()),
	})
}
