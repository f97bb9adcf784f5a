package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"minerva/api/errs"
	"minerva/api/types"
	"minerva/services"
)

type ProjectController struct {
	manager *services.Manager
}

func NewProjectController(manager *services.Manager) *ProjectController {
	return &ProjectController{manager: manager}
}

func (ctl *ProjectController) List(c *gin.Context) {
	c.JSON(http.StatusOK, types.Response{
		Status: "success",
		Data:   ctl.manager.Projects(),
	})
}

func (ctl *ProjectController) Get(c *gin.Context) {
	id := c.Params.ByName("id")
	project, ok := ctl.manager.Project(id)
	if !ok {
		c.Error(errs.ErrProjectNotFound)
		return
	}

	c.JSON(http.StatusOK, types.Response{
		Status: "success",
		Data:   project,
	})
}

func (ctl *ProjectController) Save(c *gin.Context) {
	var request types.ProjectRequest

	if err := c.MustBindWith(&request, binding.JSON); err != nil {
		return
	}

	project, err := ctl.manager.SaveProject(services.ProjectInput{
		ID:          request.ID,
		Name:        request.Name,
		Description: request.Description,
		Status:      request.Status,
	})
	if err != nil {
		c.Error(err)
		return
	}

	status, message := http.StatusCreated, "created"
	if project.Version > 1 {
		status, message = http.StatusOK, "updated"
	}
	c.JSON(status, types.Response{
		Status:  "success",
		Message: message,
		Data:    project,
	})
}

// Delete removes a project only; notes that referenced it are kept as
// orphans.
func (ctl *ProjectController) Delete(c *gin.Context) {
	id := c.Params.ByName("id")
	ctl.manager.DeleteProject(id)
	c.JSON(http.StatusOK, types.Response{
		Status:  "success",
		Message: "deleted",
	})
}
