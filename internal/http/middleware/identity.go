// README: Identity middleware (header-based; real auth comes later).
package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	headerUserID   = "X-User-ID"
	headerUserRole = "X-User-Role"

	// context keys set by Identity
	KeyUserID   = "user_id"
	KeyUserRole = "user_role"

	RoleCustomer  = "customer"
	RoleTherapist = "therapist"
)

// Identity reads the caller's id and role from headers. Requests without
// an identity are rejected up front; role checks happen per route.
// [TODO] Replace with JWT once the account service issues tokens.
func Identity() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(headerUserID)
		role := c.GetHeader(headerUserRole)
		if id == "" || (role != RoleCustomer && role != RoleTherapist) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing identity"})
			return
		}
		c.Set(KeyUserID, id)
		c.Set(KeyUserRole, role)
		c.Next()
	}
}

// RequireRole gates a route group to one role.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(KeyUserRole) != role {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}
		c.Next()
	}
}
