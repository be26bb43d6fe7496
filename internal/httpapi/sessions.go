package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"sangha/internal/session"
)

func (a *API) listSessions(c *gin.Context) {
	list, err := a.Sessions.List(c.Request.Context())
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (a *API) mySessions(c *gin.Context) {
	list, err := a.Sessions.ListAttendedBy(c.Request.Context(), me(c).ID)
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (a *API) getSession(c *gin.Context) {
	s, err := a.Sessions.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, s)
}

func (a *API) createSession(c *gin.Context) {
	var s session.Session
	if err := c.ShouldBindJSON(&s); err != nil {
		badRequest(c, "invalid session")
		return
	}
	out, err := a.Sessions.Create(c.Request.Context(), s)
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, out)
}

func (a *API) updateSession(c *gin.Context) {
	var s session.Session
	if err := c.ShouldBindJSON(&s); err != nil {
		badRequest(c, "invalid session")
		return
	}
	s.ID = c.Param("id")
	out, err := a.Sessions.Update(c.Request.Context(), s)
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (a *API) deleteSession(c *gin.Context) {
	if err := a.Sessions.Delete(c.Request.Context(), c.Param("id")); err != nil {
		a.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (a *API) toggleAttendance(c *gin.Context) {
	out, err := a.Sessions.ToggleAttendance(c.Request.Context(), c.Param("id"), c.Param("studentId"))
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}
