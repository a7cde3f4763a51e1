// README: JWT auth middleware; resolves the calling agent and admin gate.
package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const (
	ctxAgentID = "agent_id"
	ctxIsAdmin = "is_admin"
)

// Auth verifies the Bearer token and stores the caller's identity on the
// request context. Everything behind it can rely on CallerID being set.
func Auth(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			return
		}
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Bearer token required"})
			return
		}

		raw := strings.TrimPrefix(header, "Bearer ")
		token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return secret, nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		// JWT numbers decode as float64.
		id, ok := claims[ctxAgentID].(float64)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		admin, _ := claims[ctxIsAdmin].(bool)

		c.Set(ctxAgentID, int64(id))
		c.Set(ctxIsAdmin, admin)
		c.Next()
	}
}

// RequireAdmin must follow Auth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !CallerIsAdmin(c) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin access required"})
			return
		}
		c.Next()
	}
}

func CallerID(c *gin.Context) int64 {
	v, _ := c.Get(ctxAgentID)
	id, _ := v.(int64)
	return id
}

func CallerIsAdmin(c *gin.Context) bool {
	v, _ := c.Get(ctxIsAdmin)
	admin, _ := v.(bool)
	return admin
}
