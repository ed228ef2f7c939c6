package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"innkeeper-backend/utils"
)

// Context keys set by RequireAuth for downstream handlers.
const (
	CtxSubjectID = "subject_id"
	CtxRole      = "role"
)

// RequireAuth validates a Bearer token and, when roles are given, gates the
// request on the token's role claim. The subject id and role are stored in
// the gin context.
func RequireAuth(secret string, roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "error": "missing bearer token"})
			return
		}
		claims, err := utils.ParseToken(secret, strings.TrimPrefix(auth, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "error": "invalid token"})
			return
		}

		if len(roles) > 0 {
			allowed := false
			for _, r := range roles {
				if claims.Role == r {
					allowed = true
					break
				}
			}
			if !allowed {
				c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"success": false, "error": "insufficient role"})
				return
			}
		}

		c.Set(CtxSubjectID, claims.Subject)
		c.Set(CtxRole, claims.Role)
		c.Next()
	}
}

// SubjectID returns the authenticated caller's id from the context.
func SubjectID(c *gin.Context) (uint, bool) {
	v, ok := c.Get(CtxSubjectID)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}
