package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"ren-assistant/internal/config"
	"ren-assistant/internal/db"
	"ren-assistant/internal/user"
)

// newLoginRouter wires the login endpoint against a redis client that points
// at a dead port. Session persistence is best-effort on login, so the handler
// still succeeds without a live server.
func newLoginRouter(t *testing.T) *gin.Engine {
	setupTestDB(t)
	cfg := &config.Config{}
	cfg.Server.JWTSecret = "login-test-secret"
	rdb := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})
	t.Cleanup(func() { rdb.Close() })

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/auth/login", LoginHandler(cfg, rdb))
	return r
}

func postLogin(r *gin.Engine, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/auth/login", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestLoginHandler_Success(t *testing.T) {
	r := newLoginRouter(t)
	hash, _ := user.HashPassword("correct-horse")
	db.DB.Create(&user.User{Username: "renter", PasswordHash: hash, Role: user.RoleUser})

	w := postLogin(r, `{"username":"renter","password":"correct-horse"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var resp struct {
		Token string `json:"token"`
		User  struct {
			Username string `json:"username"`
		} `json:"user"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Token == "" {
		t.Errorf("expected a token in the response")
	}
	if resp.User.Username != "renter" {
		t.Errorf("expected username renter, got %q", resp.User.Username)
	}
}

func TestLoginHandler_WrongPassword(t *testing.T) {
	r := newLoginRouter(t)
	hash, _ := user.HashPassword("correct-horse")
	db.DB.Create(&user.User{Username: "renter", PasswordHash: hash, Role: user.RoleUser})

	w := postLogin(r, `{"username":"renter","password":"battery-staple"}`)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

func TestLoginHandler_UnknownUser(t *testing.T) {
	r := newLoginRouter(t)
	hash, _ := user.HashPassword("pw-irrelevant")
	db.DB.Create(&user.User{Username: "renter", PasswordHash: hash, Role: user.RoleUser})

	w := postLogin(r, `{"username":"nobody","password":"whatever"}`)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

func TestLoginHandler_EmptyUserTableRequiresSetup(t *testing.T) {
	r := newLoginRouter(t)

	w := postLogin(r, `{"username":"admin","password":"whatever"}`)
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", w.Code)
	}
	var resp struct {
		Error struct {
			NeedSetup bool `json:"need_setup"`
		} `json:"error"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !resp.Error.NeedSetup {
		t.Errorf("expected need_setup flag in the error payload")
	}
}
