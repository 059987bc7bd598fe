package auth

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"ren-assistant/internal/config"
	"ren-assistant/internal/user"
)

// Sessions slide: every authenticated request pushes the expiry out again.
const sessionIdleTimeout = 30 * time.Minute

// BearerToken pulls the JWT out of the Authorization header; empty when the
// header is missing or not a bearer scheme.
func BearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimPrefix(header, "Bearer ")
}

func abortUnauthorized(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": gin.H{"message": msg}})
}

// AuthMiddleware validates the JWT signature and the live redis session, then
// attaches the identity to the gin context.
func AuthMiddleware(cfg *config.Config, rdb *redis.Client, requireAdmin bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := BearerToken(c)
		if tokenStr == "" {
			abortUnauthorized(c, "Missing or invalid Authorization header")
			return
		}
		claims, err := ParseJWT(cfg.Server.JWTSecret, tokenStr)
		if err != nil {
			abortUnauthorized(c, "Invalid or expired token")
			return
		}

		ctx := c.Request.Context()
		sessionToken, err := GetSession(ctx, rdb, claims.UserID)
		if err != nil || sessionToken != tokenStr {
			abortUnauthorized(c, "Session expired or invalid")
			return
		}
		_ = SetSession(ctx, rdb, claims.UserID, tokenStr, sessionIdleTimeout)

		c.Set("userId", claims.UserID)
		c.Set("username", claims.Username)
		c.Set("role", claims.Role)

		if requireAdmin && claims.Role != string(user.RoleAdmin) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": gin.H{"message": "Admin only"}})
			return
		}
		c.Next()
	}
}
