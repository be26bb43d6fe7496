package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"sangha/internal/mentorship"
	"sangha/internal/profile"
)

// listMentorshipRequests scopes the board to the caller: students see what they
// sent, mentors what they received, admins everything.
func (a *API) listMentorshipRequests(c *gin.Context) {
	caller := me(c)
	f := mentorship.Filter{Status: mentorship.Status(c.Query("status"))}
	switch caller.Role {
	case profile.RoleAdmin:
		f.StudentID, f.MentorID = c.Query("studentId"), c.Query("mentorId")
	case profile.RoleMentor:
		f.MentorID = caller.ID
	default:
		f.StudentID = caller.ID
	}
	list, err := a.Mentorship.List(c.Request.Context(), f)
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (a *API) requestMentorship(c *gin.Context) {
	var req struct {
		MentorID string `json:"mentorId"`
		Message  string `json:"message"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "mentorId required")
		return
	}
	out, err := a.Mentorship.Request(c.Request.Context(), me(c).ID, req.MentorID, req.Message)
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, out)
}

func (a *API) decideMentorship(c *gin.Context) {
	var req struct {
		Status mentorship.Status `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "status required")
		return
	}
	out, err := a.Mentorship.Decide(c.Request.Context(), c.Param("id"), req.Status, me(c))
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}
