package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"sangha/internal/auth"
	"sangha/internal/profile"
	"sangha/internal/roles"
)

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (a *API) signUp(c *gin.Context) {
	var req credentials
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "email and password required")
		return
	}
	sess, err := a.Auth.SignUp(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, sess)
}

func (a *API) signIn(c *gin.Context) {
	var req credentials
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "email and password required")
		return
	}
	sess, err := a.Auth.SignIn(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, sess)
}

func (a *API) signInWithGoogle(c *gin.Context) {
	var req struct {
		IDToken string `json:"idToken" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "idToken required")
		return
	}
	sess, err := a.Auth.SignInWithGoogle(c.Request.Context(), req.IDToken)
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, sess)
}

func (a *API) refresh(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refreshToken" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "refreshToken required")
		return
	}
	sess, err := a.Auth.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, sess)
}

func (a *API) signOut(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refreshToken"`
	}
	if !bindOptional(c, &req) {
		return
	}
	claims, _ := auth.ClaimsFrom(c)
	if err := a.Auth.SignOut(c.Request.Context(), claims, req.RefreshToken); err != nil {
		a.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (a *API) currentSession(c *gin.Context) {
	claims, _ := auth.ClaimsFrom(c)
	u, err := a.Auth.CurrentUser(c.Request.Context(), claims)
	if err != nil {
		a.fail(c, err)
		return
	}
	res := roles.From(c)
	c.JSON(http.StatusOK, gin.H{
		"user":          u,
		"role":          res.Role,
		"profileExists": res.ProfileExists,
		"profile":       res.Profile,
		"home":          roles.HomePath(res),
	})
}

func (a *API) onboard(c *gin.Context) {
	if roles.From(c).ProfileExists {
		a.fail(c, profile.ErrExists)
		return
	}
	var p profile.Profile
	if err := c.ShouldBindJSON(&p); err != nil {
		badRequest(c, "invalid profile")
		return
	}
	claims, _ := auth.ClaimsFrom(c)
	out, err := a.Profiles.Onboard(c.Request.Context(), claims.UserID(), claims.Email, p)
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"profile": out, "home": roles.PathApp})
}
