package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"sangha/internal/homework"
)

func (a *API) listHomework(c *gin.Context) {
	list, err := a.Homework.List(c.Request.Context(), c.Query("sessionId"))
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (a *API) getHomework(c *gin.Context) {
	h, err := a.Homework.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, h)
}

func (a *API) createHomework(c *gin.Context) {
	var h homework.Homework
	if err := c.ShouldBindJSON(&h); err != nil {
		badRequest(c, "invalid homework")
		return
	}
	out, err := a.Homework.Create(c.Request.Context(), h)
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, out)
}

func (a *API) updateHomework(c *gin.Context) {
	var h homework.Homework
	if err := c.ShouldBindJSON(&h); err != nil {
		badRequest(c, "invalid homework")
		return
	}
	h.ID = c.Param("id")
	out, err := a.Homework.Update(c.Request.Context(), h)
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (a *API) deleteHomework(c *gin.Context) {
	if err := a.Homework.Delete(c.Request.Context(), c.Param("id")); err != nil {
		a.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (a *API) submitHomework(c *gin.Context) {
	var req struct {
		FileURL *string `json:"fileUrl"`
	}
	if !bindOptional(c, &req) {
		return
	}
	out, err := a.Homework.Submit(c.Request.Context(), c.Param("id"), me(c).ID, req.FileURL)
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, out)
}

func (a *API) mySubmissions(c *gin.Context) {
	list, err := a.Homework.Submissions(c.Request.Context(), "", me(c).ID)
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (a *API) listSubmissions(c *gin.Context) {
	list, err := a.Homework.Submissions(c.Request.Context(), c.Param("id"), "")
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (a *API) gradeSubmission(c *gin.Context) {
	var g homework.Grade
	if err := c.ShouldBindJSON(&g); err != nil {
		badRequest(c, "marks required")
		return
	}
	out, err := a.Homework.Grade(c.Request.Context(), c.Param("id"), g)
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}
