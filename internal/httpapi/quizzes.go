package httpapi

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"sangha/internal/quiz"
)

func (a *API) pendingQuizzes(c *gin.Context) {
	list, err := a.Quizzes.Pending(c.Request.Context(), me(c).ID)
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (a *API) getQuiz(c *gin.Context) {
	q, err := a.Quizzes.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, q)
}

func (a *API) submitQuiz(c *gin.Context) {
	var req struct {
		Answers map[int]int `json:"answers"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "answers must map question index to option index")
		return
	}
	out, err := a.Quizzes.Submit(c.Request.Context(), c.Param("id"), me(c).ID, req.Answers)
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, out)
}

func (a *API) myQuizResults(c *gin.Context) {
	list, err := a.Quizzes.Results(c.Request.Context(), "", me(c).ID)
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (a *API) listQuizzes(c *gin.Context) {
	var (
		list []quiz.Quiz
		err  error
	)
	if ids := c.Query("sessionIds"); ids != "" {
		list, err = a.Quizzes.ListBySessions(c.Request.Context(), strings.Split(ids, ","))
	} else {
		list, err = a.Quizzes.List(c.Request.Context())
	}
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (a *API) createQuiz(c *gin.Context) {
	var q quiz.Quiz
	if err := c.ShouldBindJSON(&q); err != nil {
		badRequest(c, "invalid quiz")
		return
	}
	out, err := a.Quizzes.Create(c.Request.Context(), q)
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, out)
}

func (a *API) updateQuiz(c *gin.Context) {
	var q quiz.Quiz
	if err := c.ShouldBindJSON(&q); err != nil {
		badRequest(c, "invalid quiz")
		return
	}
	q.ID = c.Param("id")
	out, err := a.Quizzes.Update(c.Request.Context(), q)
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (a *API) deleteQuiz(c *gin.Context) {
	if err := a.Quizzes.Delete(c.Request.Context(), c.Param("id")); err != nil {
		a.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (a *API) quizResults(c *gin.Context) {
	list, err := a.Quizzes.Results(c.Request.Context(), c.Param("id"), "")
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// generateQuiz drafts questions; the admin reviews them before POST /admin/quizzes.
func (a *API) generateQuiz(c *gin.Context) {
	var req struct {
		Topic string `json:"topic" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "topic required")
		return
	}
	c.JSON(http.StatusOK, gin.H{"topic": req.Topic, "questions": a.Content.GenerateQuiz(c.Request.Context(), req.Topic)})
}
