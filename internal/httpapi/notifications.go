package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"sangha/internal/notification"
)

func (a *API) listNotifications(c *gin.Context) {
	list, err := a.Notifications.List(c.Request.Context(), queryInt(c, "limit", 0))
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (a *API) markNotificationRead(c *gin.Context) {
	if err := a.Notifications.MarkRead(c.Request.Context(), c.Param("id")); err != nil {
		a.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (a *API) markAllNotificationsRead(c *gin.Context) {
	n, err := a.Notifications.MarkAllRead(c.Request.Context())
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": n})
}

func (a *API) createNotification(c *gin.Context) {
	var n notification.Notification
	if err := c.ShouldBindJSON(&n); err != nil {
		badRequest(c, "invalid notification")
		return
	}
	out, err := a.Notifications.Create(c.Request.Context(), n)
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, out)
}

func (a *API) deleteNotification(c *gin.Context) {
	if err := a.Notifications.Delete(c.Request.Context(), c.Param("id")); err != nil {
		a.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
