package api

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"ren-assistant/internal/auth"
	"ren-assistant/internal/config"
	"ren-assistant/internal/conversation"
	"ren-assistant/internal/history"
	"ren-assistant/internal/user"
)

// Deps carries the wired dialogue services into the handlers.
type Deps struct {
	Orchestrator *conversation.Orchestrator
	Store        conversation.Store
	History      *history.Logger
	Prefs        *user.PreferenceStore
}

func SetupRouter(cfg *config.Config, rdb *redis.Client, deps Deps) *gin.Engine {
	r := gin.Default()

	api := r.Group("/api")
	{
		api.GET("/health", healthHandler)
		api.GET("/config", configHandler(cfg))

		// Setup: only if no users
		api.POST("/setup", SetupHandler())

		// Auth
		api.POST("/auth/login", LoginHandler(cfg, rdb))
		api.POST("/auth/logout", auth.AuthMiddleware(cfg, rdb, false), LogoutHandler(rdb))
		api.GET("/auth/me", auth.AuthMiddleware(cfg, rdb, false), MeHandler())

		// Admin: users
		api.GET("/users", auth.AuthMiddleware(cfg, rdb, true), ListUsersHandler())
		api.POST("/users", auth.AuthMiddleware(cfg, rdb, true), CreateUserHandler())

		// User self-service
		api.GET("/users/me", auth.AuthMiddleware(cfg, rdb, false), GetMeHandler(deps.Prefs))
		api.PUT("/users/me", auth.AuthMiddleware(cfg, rdb, false), UpdateMeHandler(deps.Prefs))
		api.DELETE("/users/me", auth.AuthMiddleware(cfg, rdb, false), DeleteMeHandler())

		// Online users count
		api.GET("/users/online", OnlineUserCountHandler(rdb))

		// Chat: anonymous turns are allowed, a session id is minted when absent
		api.POST("/chat/message", optionalAuth(cfg, rdb), ChatMessageHandler(deps.Orchestrator))
		api.GET("/chat/history/:session_id", ChatHistoryHandler(deps.History))
		api.DELETE("/chat/session/:session_id", DeleteSessionHandler(deps.Store))

		// Streaming WebSocket endpoint
		api.GET("/ws/chat", WSChatHandler(cfg, deps.Orchestrator))
	}
	return r
}

// optionalAuth attaches user identity when a valid bearer token is present but
// never rejects the request.
func optionalAuth(cfg *config.Config, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := auth.BearerToken(c); token != "" {
			if claims, err := auth.ParseJWT(cfg.Server.JWTSecret, token); err == nil {
				if sessionToken, err := auth.GetSession(c.Request.Context(), rdb, claims.UserID); err == nil && sessionToken == token {
					c.Set("userId", claims.UserID)
					c.Set("username", claims.Username)
					c.Set("role", claims.Role)
				}
			}
		}
		c.Next()
	}
}
