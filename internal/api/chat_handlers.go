package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"ren-assistant/internal/conversation"
	"ren-assistant/internal/history"
)

// Helper to extract user ID from context
func getUserIDFromContext(c *gin.Context) (uint, bool) {
	idVal, exists := c.Get("userId")
	if !exists {
		return 0, false
	}
	switch v := idVal.(type) {
	case uint:
		return v, true
	case int:
		return uint(v), true
	case float64:
		return uint(v), true
	default:
		return 0, false
	}
}

type ChatMessageRequest struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
}

// POST /api/chat/message
// Runs one dialogue turn. A session id is minted when the client sends none,
// so the first reply tells the client which session to continue.
func ChatMessageHandler(orch *conversation.Orchestrator) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ChatMessageRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.Message == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"message": "missing message"}})
			return
		}
		if req.SessionID == "" {
			req.SessionID = uuid.NewString()
		}

		convCtx := conversation.NewContext(req.SessionID)
		if userID, ok := getUserIDFromContext(c); ok {
			convCtx.UserID = userID
		}

		resp := orch.ProcessMessage(c.Request.Context(), req.Message, convCtx)
		c.JSON(http.StatusOK, gin.H{
			"session_id": req.SessionID,
			"response":   resp,
		})
	}
}

// GET /api/chat/history/:session_id?limit=n
func ChatHistoryHandler(logger *history.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := c.Param("session_id")
		limit := 0
		if raw := c.Query("limit"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n < 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"message": "invalid limit"}})
				return
			}
			limit = n
		}

		turns, err := logger.BySession(c.Request.Context(), sessionID, limit)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"message": "failed to fetch history"}})
			return
		}
		if turns == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": gin.H{"message": "session not found"}})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"session_id": sessionID,
			"turns":      turns,
		})
	}
}

// DELETE /api/chat/session/:session_id
// Drops the live context; the logged transcript is kept.
func DeleteSessionHandler(store conversation.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := c.Param("session_id")
		if err := store.Delete(c.Request.Context(), sessionID); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"message": "failed to delete session"}})
			return
		}
		c.JSON(http.StatusOK, gin.H{"deleted": true})
	}
}
