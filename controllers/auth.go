package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"minerva/api/errs"
	"minerva/api/types"
	"minerva/services"
)

type AuthController struct {
	session *services.Session
}

func NewAuthController(session *services.Session) *AuthController {
	return &AuthController{session: session}
}

func (ctl *AuthController) Login(c *gin.Context) {
	var request types.LoginRequest

	if err := c.MustBindWith(&request, binding.JSON); err != nil {
		return
	}

	creds := services.Credentials{
		Username: request.Username,
		Password: request.Password,
	}
	if err := ctl.session.Login(creds); err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, types.Response{
		Status:  "success",
		Message: "authenticated",
	})
}

func (ctl *AuthController) Logout(c *gin.Context) {
	ctl.session.Logout()
	c.JSON(http.StatusOK, types.Response{
		Status:  "success",
		Message: "logged out",
	})
}

// RequireAuth gates every route behind the session flag; the logging
// middleware renders the rejection from the error status map.
func (ctl *AuthController) RequireAuth(c *gin.Context) {
	if !ctl.session.Authenticated() {
		c.Error(errs.ErrNotAuthenticated)
		c.Abort()
		return
	}
	c.Next()
}
