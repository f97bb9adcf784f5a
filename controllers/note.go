package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"minerva/api/errs"
	"minerva/api/types"
	"minerva/models"
	"minerva/services"
)

type NoteController struct {
	manager *services.Manager
}

func NewNoteController(manager *services.Manager) *NoteController {
	return &NoteController{manager: manager}
}

// NoteView is a note annotated with the resolved project name; orphaned
// notes keep their projectId and render a placeholder instead.
type NoteView struct {
	models.Note
	ProjectName string `json:"projectName"`
}

func (ctl *NoteController) List(c *gin.Context) {
	notes := ctl.manager.Notes()

	views := make([]NoteView, 0, len(notes))
	for _, note := range notes {
		view := NoteView{Note: note, ProjectName: "project not found"}
		if project, ok := ctl.manager.Project(note.ProjectID); ok {
			view.ProjectName = project.Name
		}
		views = append(views, view)
	}

	c.JSON(http.StatusOK, types.Response{
		Status: "success",
		Data:   views,
	})
}

func (ctl *NoteController) Get(c *gin.Context) {
	id := c.Params.ByName("id")
	note, ok := ctl.manager.Note(id)
	if !ok {
		c.Error(errs.ErrNoteNotFound)
		return
	}

	c.JSON(http.StatusOK, types.Response{
		Status: "success",
		Data:   note,
	})
}

func (ctl *NoteController) Save(c *gin.Context) {
	var request types.NoteRequest

	if err := c.MustBindWith(&request, binding.JSON); err != nil {
		return
	}

	note, err := ctl.manager.SaveNote(services.NoteInput{
		ID:        request.ID,
		Title:     request.Title,
		Content:   request.Content,
		Category:  request.Category,
		ProjectID: request.ProjectID,
	})
	if err != nil {
		c.Error(err)
		return
	}

	status, message := http.StatusCreated, "created"
	if note.Version > 1 {
		status, message = http.StatusOK, "updated"
	}
	c.JSON(status, types.Response{
		Status:  "success",
		Message: message,
		Data:    note,
	})
}

func (ctl *NoteController) Delete(c *gin.Context) {
	id := c.Params.ByName("id")
	ctl.manager.DeleteNote(id)
	c.JSON(http.StatusOK, types.Response{
		Status:  "success",
		Message: "deleted",
	})
}
