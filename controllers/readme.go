package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/rs/zerolog/log"

	"minerva/api/errs"
	"minerva/api/types"
	"minerva/services"
)

type ReadmeController struct {
	manager *services.Manager
	readme  *services.ReadmeService
}

func NewReadmeController(manager *services.Manager, readme *services.ReadmeService) *ReadmeController {
	return &ReadmeController{manager: manager, readme: readme}
}

func (ctl *ReadmeController) Generate(c *gin.Context) {
	var request types.ReadmeRequest

	if err := c.MustBindWith(&request, binding.JSON); err != nil {
		return
	}

	project, ok := ctl.manager.Project(request.ProjectID)
	if !ok {
		c.Error(errs.ErrProjectNotFound)
		return
	}

	document, err := ctl.readme.Generate(c.Request.Context(), project, ctl.manager.Notes())
	if err != nil {
		if errors.Is(err, errs.ErrAPIKeyMissing) || errors.Is(err, errs.ErrReadmeInProgress) {
			c.Error(err)
			return
		}
		log.Error().
			Err(err).
			Str("project", project.ID).
			Msg("readme generation failed")
		c.JSON(http.StatusBadGateway, types.Response{
			Status:  "error",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, types.Response{
		Status: "success",
		Data:   gin.H{"readme": document},
	})
}
