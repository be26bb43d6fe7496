package httpapi

import (
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
)

// registerSPA serves the single-page app from WebDir. Unknown non-API GETs get
// index.html so client-side routes survive a reload.
func (a *API) registerSPA(r *gin.Engine) {
	if a.WebDir == "" {
		return
	}
	static := r.Group("/static", func(c *gin.Context) {
		c.Header("Cache-Control", "public, max-age=31536000, immutable")
		c.Next()
	})
	static.Static("/", filepath.Join(a.WebDir, "static"))

	r.NoRoute(func(c *gin.Context) {
		p := c.Request.URL.Path
		if c.Request.Method != http.MethodGet || strings.HasPrefix(p, "/v1/") {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		c.Header("Cache-Control", "no-cache")
		clean := path.Clean("/" + p)
		if clean != "/" {
			file := filepath.Join(a.WebDir, filepath.FromSlash(clean))
			if info, err := os.Stat(file); err == nil && !info.IsDir() {
				c.File(file)
				return
			}
		}
		c.File(filepath.Join(a.WebDir, "index.html"))
	})
}
