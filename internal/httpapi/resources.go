package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"sangha/internal/resource"
)

func (a *API) listResources(c *gin.Context) {
	f := resource.Filter{Type: resource.Type(c.Query("type")), Category: c.Query("category")}
	list, err := a.Resources.List(c.Request.Context(), f)
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (a *API) getResource(c *gin.Context) {
	r, err := a.Resources.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, r)
}

func (a *API) createResource(c *gin.Context) {
	var r resource.Resource
	if err := c.ShouldBindJSON(&r); err != nil {
		badRequest(c, "invalid resource")
		return
	}
	out, err := a.Resources.Create(c.Request.Context(), r)
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, out)
}

func (a *API) updateResource(c *gin.Context) {
	var r resource.Resource
	if err := c.ShouldBindJSON(&r); err != nil {
		badRequest(c, "invalid resource")
		return
	}
	r.ID = c.Param("id")
	out, err := a.Resources.Update(c.Request.Context(), r)
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (a *API) deleteResource(c *gin.Context) {
	if err := a.Resources.Delete(c.Request.Context(), c.Param("id")); err != nil {
		a.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
