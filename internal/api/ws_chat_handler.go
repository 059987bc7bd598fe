package api

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"ren-assistant/internal/auth"
	"ren-assistant/internal/config"
	"ren-assistant/internal/conversation"
)

// WebSocket message format
type WSChatMessage struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
}

type WSChatReply struct {
	SessionID string                 `json:"session_id"`
	Response  *conversation.Response `json:"response"`
}

var wsUpgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// WebSocket connection wrapper with mutex for thread-safe writes
type safeWSConn struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (s *safeWSConn) WriteJSON(v interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conn.WriteJSON(v)
}

func (s *safeWSConn) ReadMessage() (int, []byte, error) {
	return s.conn.ReadMessage()
}

func (s *safeWSConn) Close() error {
	return s.conn.Close()
}

// WSChatHandler keeps one session open over a socket: each incoming message is
// a full dialogue turn, each outgoing frame the adapted reply.
func WSChatHandler(cfg *config.Config, orch *conversation.Orchestrator) gin.HandlerFunc {
	return func(c *gin.Context) {
		var userID uint
		token := c.GetHeader("Authorization")
		if token == "" {
			token = c.Query("token")
		}
		if token != "" {
			token = strings.TrimPrefix(token, "Bearer ")
			claims, err := auth.ParseJWT(cfg.Server.JWTSecret, token)
			if err != nil {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid JWT"})
				return
			}
			userID = claims.UserID
		}

		rawConn, err := wsUpgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.Println("WebSocket upgrade failed:", err)
			return
		}
		conn := &safeWSConn{conn: rawConn}
		defer conn.Close()

		// Session id is sticky for the life of the socket.
		sessionID := ""
		for {
			_, msg, err := conn.ReadMessage()
			if err != nil {
				return
			}
			var req WSChatMessage
			if err := json.Unmarshal(msg, &req); err != nil {
				conn.WriteJSON(map[string]string{"error": "invalid JSON"})
				continue
			}
			if req.Message == "" {
				conn.WriteJSON(map[string]string{"error": "missing message"})
				continue
			}
			if req.SessionID != "" {
				sessionID = req.SessionID
			}
			if sessionID == "" {
				sessionID = uuid.NewString()
			}

			convCtx := conversation.NewContext(sessionID)
			convCtx.UserID = userID
			resp := orch.ProcessMessage(c.Request.Context(), req.Message, convCtx)
			conn.WriteJSON(WSChatReply{SessionID: sessionID, Response: resp})
		}
	}
}
