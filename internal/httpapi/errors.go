package httpapi

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"sangha/internal/auth"
	"sangha/internal/chanting"
	"sangha/internal/cloudinary"
	"sangha/internal/homework"
	"sangha/internal/mentorship"
	"sangha/internal/notification"
	"sangha/internal/profile"
	"sangha/internal/quiz"
	"sangha/internal/resource"
	"sangha/internal/session"
	"sangha/internal/validation"
)

// statusOf maps domain errors to HTTP status codes.
var statusOf = []struct {
	err    error
	status int
}{
	{auth.ErrInvalidCredentials, http.StatusUnauthorized},
	{auth.ErrInvalidToken, http.StatusUnauthorized},
	{auth.ErrEmailTaken, http.StatusConflict},
	{auth.ErrWeakPassword, http.StatusBadRequest},
	{auth.ErrInvalidEmail, http.StatusBadRequest},
	{auth.ErrGoogleDisabled, http.StatusServiceUnavailable},
	{auth.ErrUnverifiedEmail, http.StatusForbidden},

	{profile.ErrNotFound, http.StatusNotFound},
	{profile.ErrEmailTaken, http.StatusConflict},
	{profile.ErrExists, http.StatusConflict},

	{session.ErrNotFound, http.StatusNotFound},
	{session.ErrInUse, http.StatusConflict},
	{homework.ErrNotFound, http.StatusNotFound},
	{homework.ErrSubmissionNotFound, http.StatusNotFound},
	{quiz.ErrNotFound, http.StatusNotFound},
	{resource.ErrNotFound, http.StatusNotFound},
	{notification.ErrNotFound, http.StatusNotFound},

	{mentorship.ErrNotFound, http.StatusNotFound},
	{mentorship.ErrNotMentor, http.StatusBadRequest},
	{mentorship.ErrBadDecision, http.StatusBadRequest},
	{mentorship.ErrNotYours, http.StatusForbidden},
	{mentorship.ErrAlreadyClosed, http.StatusConflict},

	{chanting.ErrNegative, http.StatusBadRequest},
	{chanting.ErrNoBeads, http.StatusBadRequest},
	{chanting.ErrBadDate, http.StatusBadRequest},

	{cloudinary.ErrEmpty, http.StatusBadRequest},
}

func (a *API) fail(c *gin.Context, err error) {
	var verr *validation.Error
	if errors.As(err, &verr) {
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Error(), "fields": verr.Fields})
		return
	}
	for _, m := range statusOf {
		if errors.Is(err, m.err) {
			c.JSON(m.status, gin.H{"error": m.err.Error()})
			return
		}
	}
	a.log.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}

// bindOptional decodes a JSON body into v when one is sent. It answers 400 and
// returns false when the body is present but malformed.
func bindOptional(c *gin.Context, v any) bool {
	if err := c.ShouldBindJSON(v); err != nil && !errors.Is(err, io.EOF) {
		badRequest(c, "malformed request body")
		return false
	}
	return true
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": msg})
}
