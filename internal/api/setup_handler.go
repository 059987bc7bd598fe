package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"ren-assistant/internal/db"
	"ren-assistant/internal/user"
)

const setupMinPasswordLen = 8

type SetupRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// SetupHandler bootstraps the first account. It is open only while the user
// table is empty; once an admin exists the endpoint refuses everything.
func SetupHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var count int64
		if err := db.DB.Model(&user.User{}).Count(&count).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"message": "DB error"}})
			return
		}
		if count != 0 {
			c.JSON(http.StatusForbidden, gin.H{"error": gin.H{"message": "Setup already completed"}})
			return
		}

		var req SetupRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"message": "Username and password required"}})
			return
		}
		req.Username = strings.TrimSpace(req.Username)
		if req.Username == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"message": "Username and password required"}})
			return
		}
		if len(req.Password) < setupMinPasswordLen {
			c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"message": "Password must be at least 8 characters"}})
			return
		}

		pwHash, err := user.HashPassword(req.Password)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"message": "Password hash failed"}})
			return
		}
		admin := user.User{
			Username:     req.Username,
			PasswordHash: pwHash,
			Role:         user.RoleAdmin,
		}
		if err := db.DB.Create(&admin).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"message": "DB error"}})
			return
		}
		c.JSON(http.StatusCreated, gin.H{
			"id":             admin.ID,
			"username":       admin.Username,
			"role":           admin.Role,
			"createdAt":      admin.CreatedAt,
			"setup_complete": true,
		})
	}
}
