package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (a *API) dailyQuote(c *gin.Context) {
	c.JSON(http.StatusOK, a.Content.DailyQuote(c.Request.Context()))
}

func (a *API) ask(c *gin.Context) {
	var req struct {
		Question string `json:"question" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "question required")
		return
	}
	c.JSON(http.StatusOK, gin.H{"answer": a.Content.Ask(c.Request.Context(), req.Question)})
}

func (a *API) dashboard(c *gin.Context) {
	st, err := a.Dashboard.Stats(c.Request.Context())
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, st)
}
