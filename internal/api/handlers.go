package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ren-assistant/internal/config"
)

// GET /health
func healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}

// GET /config
func configHandler(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Only return non-sensitive config fields
		c.JSON(http.StatusOK, gin.H{
			"server": gin.H{
				"host": cfg.Server.Host,
				"port": cfg.Server.Port,
			},
			"providers": gin.H{
				"remote": cfg.Remote.Name,
				"local":  cfg.Local.Name,
			},
			"dialogue": cfg.Dialogue,
		})
	}
}
