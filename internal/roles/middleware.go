package roles

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"sangha/internal/auth"
	"sangha/internal/profile"
)

const resolutionKey = "resolution"

// Gate resolves the caller's role on every request. It must run after auth.UserAuth.
func (r *Resolver) Gate() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, _ := auth.ClaimsFrom(c)
		c.Set(resolutionKey, r.Resolve(c.Request.Context(), claims.Email))
		c.Next()
	}
}

// From returns the resolution stored by Gate.
func From(c *gin.Context) Resolution {
	if v, ok := c.Get(resolutionKey); ok {
		if res, ok := v.(Resolution); ok {
			return res
		}
	}
	return Resolution{Role: profile.RoleStudent}
}

// Require lets registered users with one of the roles through.
// With no roles any registered user passes.
func Require(allowed ...profile.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		res := From(c)
		if !res.ProfileExists {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "profile required", "home": PathOnboarding})
			return
		}
		if !Allowed(res, allowed...) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden", "home": HomePath(res)})
			return
		}
		c.Next()
	}
}
