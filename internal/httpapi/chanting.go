package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"sangha/internal/auth"
	"sangha/internal/chanting"
)

func chanter(c *gin.Context) string {
	claims, _ := auth.ClaimsFrom(c)
	return auth.NormalizeEmail(claims.Email)
}

func dateOr(date string) string {
	if date == "" {
		return chanting.Today(time.Now(), time.UTC)
	}
	return date
}

// chantingToday returns the log for ?date= (default today), or zero counts when none exists.
func (a *API) chantingToday(c *gin.Context) {
	email, date := chanter(c), dateOr(c.Query("date"))
	l, err := a.Chanting.Get(c.Request.Context(), email, date)
	if err != nil {
		a.fail(c, err)
		return
	}
	if l == nil {
		l = &chanting.Log{UserEmail: email, Date: date}
	}
	c.JSON(http.StatusOK, l)
}

func (a *API) setRounds(c *gin.Context) {
	var req struct {
		Date   string `json:"date"`
		Rounds *int   `json:"rounds" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "rounds required")
		return
	}
	out, err := a.Chanting.SetRounds(c.Request.Context(), chanter(c), dateOr(req.Date), *req.Rounds)
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (a *API) addBeads(c *gin.Context) {
	var req struct {
		Date  string `json:"date"`
		Count int    `json:"count"`
	}
	if !bindOptional(c, &req) {
		return
	}
	if req.Count == 0 {
		req.Count = 1
	}
	out, err := a.Chanting.AddBeads(c.Request.Context(), chanter(c), dateOr(req.Date), req.Count)
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (a *API) chantingHistory(c *gin.Context) {
	list, err := a.Chanting.History(c.Request.Context(), chanter(c), queryInt(c, "limit", 30))
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}
