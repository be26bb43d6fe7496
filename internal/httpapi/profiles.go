package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"sangha/internal/profile"
)

func (a *API) myProfile(c *gin.Context) {
	c.JSON(http.StatusOK, me(c))
}

func (a *API) updateMyProfile(c *gin.Context) {
	var p profile.Profile
	if err := c.ShouldBindJSON(&p); err != nil {
		badRequest(c, "invalid profile")
		return
	}
	out, err := a.Profiles.UpdateOwn(c.Request.Context(), me(c).ID, p)
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (a *API) listProfiles(c *gin.Context) {
	f := profile.Filter{Role: profile.Role(c.Query("role")), Category: c.Query("category")}
	list, err := a.Profiles.List(c.Request.Context(), f)
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (a *API) createProfile(c *gin.Context) {
	var p profile.Profile
	if err := c.ShouldBindJSON(&p); err != nil {
		badRequest(c, "invalid profile")
		return
	}
	out, err := a.Profiles.Create(c.Request.Context(), p)
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, out)
}

func (a *API) getProfile(c *gin.Context) {
	p, err := a.Profiles.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (a *API) updateProfile(c *gin.Context) {
	var p profile.Profile
	if err := c.ShouldBindJSON(&p); err != nil {
		badRequest(c, "invalid profile")
		return
	}
	p.ID = c.Param("id")
	out, err := a.Profiles.Update(c.Request.Context(), p)
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (a *API) deleteProfile(c *gin.Context) {
	if err := a.Profiles.Delete(c.Request.Context(), c.Param("id")); err != nil {
		a.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (a *API) listMentors(c *gin.Context) {
	list, err := a.Mentorship.Mentors(c.Request.Context())
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}
