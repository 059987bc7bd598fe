package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ren-assistant/internal/db"
	"ren-assistant/internal/user"
)

// GET /users  [admin only]
func ListUsersHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var users []user.User
		if err := db.DB.Find(&users).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"message": "List error"}})
			return
		}
		var result []gin.H
		for _, u := range users {
			result = append(result, gin.H{
				"id":        u.ID,
				"username":  u.Username,
				"role":      u.Role,
				"createdAt": u.CreatedAt,
			})
		}
		c.JSON(http.StatusOK, result)
	}
}

// POST /users  [admin only]
func CreateUserHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Username string `json:"username"`
			Password string `json:"password"`
		}
		if err := c.ShouldBindJSON(&req); err != nil || req.Username == "" || req.Password == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"message": "Missing username or password"}})
			return
		}
		pwHash, err := user.HashPassword(req.Password)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"message": "Password hash failed"}})
			return
		}
		newUser := user.User{
			Username:     req.Username,
			PasswordHash: pwHash,
			Role:         user.RoleUser,
		}
		if err := db.DB.Create(&newUser).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"message": "Create error"}})
			return
		}
		c.JSON(http.StatusCreated, gin.H{
			"id":        newUser.ID,
			"username":  newUser.Username,
			"role":      newUser.Role,
			"createdAt": newUser.CreatedAt,
		})
	}
}

// GET /users/me
// Includes the stored marketplace preferences used to personalize replies.
func GetMeHandler(prefs *user.PreferenceStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId, _ := c.Get("userId")
		var u user.User
		if err := db.DB.First(&u, userId.(uint)).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": gin.H{"message": "User not found"}})
			return
		}
		userPrefs, err := prefs.GetUserPreferences(c.Request.Context(), u.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"message": "Preferences load failed"}})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"id":          u.ID,
			"username":    u.Username,
			"role":        u.Role,
			"createdAt":   u.CreatedAt,
			"preferences": userPrefs,
		})
	}
}

type UpdateMeRequest struct {
	Password    string         `json:"password,omitempty"`
	Preferences map[string]any `json:"preferences,omitempty"`
}

// PUT /users/me
func UpdateMeHandler(prefs *user.PreferenceStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId, _ := c.Get("userId")
		var req UpdateMeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"message": "Invalid request"}})
			return
		}
		var u user.User
		if err := db.DB.First(&u, userId.(uint)).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": gin.H{"message": "User not found"}})
			return
		}
		if req.Password != "" {
			pwHash, err := user.HashPassword(req.Password)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"message": "Password hash failed"}})
				return
			}
			u.PasswordHash = pwHash
			if err := db.DB.Save(&u).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"message": "Update error"}})
				return
			}
		}
		if req.Preferences != nil {
			if err := prefs.SetUserPreferences(c.Request.Context(), u.ID, req.Preferences); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"message": "Preferences update failed"}})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"message": "User updated"})
	}
}

// DELETE /users/me
func DeleteMeHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		userId, _ := c.Get("userId")
		if err := db.DB.Delete(&user.User{}, userId.(uint)).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"message": "Delete error"}})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "User deleted"})
	}
}
