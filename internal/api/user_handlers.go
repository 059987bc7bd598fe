package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"ren-assistant/internal/auth"
	"ren-assistant/internal/config"
	"ren-assistant/internal/db"
	"ren-assistant/internal/user"
)

// Login issues a token valid for a week; idle sessions still expire sooner
// through the middleware's sliding window.
const loginTokenTTL = 7 * 24 * time.Hour

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func invalidCredentials(c *gin.Context) {
	c.JSON(http.StatusUnauthorized, gin.H{"error": gin.H{"message": "Invalid username or password"}})
}

// POST /api/auth/login
func LoginHandler(cfg *config.Config, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var count int64
		if err := db.DB.Model(&user.User{}).Count(&count).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"message": "DB error"}})
			return
		}
		if count == 0 {
			// Fresh install: point the client at /setup instead
			c.JSON(http.StatusForbidden, gin.H{"error": gin.H{"message": "Initial setup required", "need_setup": true}})
			return
		}

		var req LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"message": "Invalid request"}})
			return
		}
		var u user.User
		if err := db.DB.Where("username = ?", req.Username).First(&u).Error; err != nil {
			invalidCredentials(c)
			return
		}
		if err := user.CheckPassword(u.PasswordHash, req.Password); err != nil {
			invalidCredentials(c)
			return
		}

		token, err := auth.GenerateJWT(cfg.Server.JWTSecret, u.ID, u.Username, string(u.Role), loginTokenTTL)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"message": "Failed to generate token"}})
			return
		}
		_ = auth.SetSession(c.Request.Context(), rdb, u.ID, token, loginTokenTTL)

		c.JSON(http.StatusOK, gin.H{
			"token": token,
			"user": gin.H{
				"id":       u.ID,
				"username": u.Username,
				"role":     u.Role,
			},
		})
	}
}

// POST /api/auth/logout
func LogoutHandler(rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := getUserIDFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": gin.H{"message": "Not authenticated"}})
			return
		}
		_ = auth.DeleteSession(c.Request.Context(), rdb, userID)
		c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
	}
}

// GET /api/auth/me
func MeHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _ := getUserIDFromContext(c)
		var u user.User
		if err := db.DB.First(&u, userID).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"message": "User not found"}})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"id":        u.ID,
			"username":  u.Username,
			"role":      u.Role,
			"createdAt": u.CreatedAt,
		})
	}
}

// GET /api/users/online
func OnlineUserCountHandler(rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		count, err := auth.OnlineUserCount(c.Request.Context(), rdb)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"message": "Failed to count online users"}})
			return
		}
		c.JSON(http.StatusOK, gin.H{"online": count})
	}
}
