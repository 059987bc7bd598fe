package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"
)

type ProviderConfig struct {
	Name           string `json:"name"`
	URL            string `json:"url"`
	Model          string `json:"model"`
	APIKey         string `json:"api_key"`
	TimeoutSeconds int    `json:"timeout_seconds"`
}

// DialogueConfig holds the tunable thresholds of the dialogue core.
// Defaults match the values the policies were originally tuned with.
type DialogueConfig struct {
	AmbiguityConfidence    float64 `json:"ambiguity_confidence"`     // below this, ask for clarification
	FrustrationConfidence  float64 `json:"frustration_confidence"`   // above this, escalate on frustrated tone
	AccountIntentThreshold float64 `json:"account_intent_threshold"` // account-issue escalation gate
	ClarificationWindow    int     `json:"clarification_window"`     // assistant turns inspected
	ClarificationLimit     int     `json:"clarification_limit"`      // clarifications tolerated inside window
	MaxHistoryChars        int     `json:"max_history_chars"`        // sliding window budget for stored history
}

type SessionConfig struct {
	Store      string `json:"store"` // "memory" or "redis"
	TTLMinutes int    `json:"ttl_minutes"`
	MaxEntries int    `json:"max_entries"` // memory store LRU cap
}

type Config struct {
	Server struct {
		Host      string `json:"host"`
		Port      int    `json:"port"`
		JWTSecret string `json:"jwtSecret"`
	} `json:"server"`
	Postgres struct {
		DSN string `json:"dsn"`
	} `json:"postgres"`
	Redis struct {
		Addr     string `json:"addr"`
		Password string `json:"password"`
		DB       int    `json:"db"`
	} `json:"redis"`
	Remote   ProviderConfig `json:"remote_provider"`
	Local    ProviderConfig `json:"local_provider"`
	Dialogue DialogueConfig `json:"dialogue"`
	Session  SessionConfig  `json:"session"`
}

var (
	once   sync.Once
	cfg    *Config
	cfgErr error
)

// LoadConfig reads config.json from disk (singleton)
func LoadConfig(path string) (*Config, error) {
	once.Do(func() {
		raw, err := os.ReadFile(path)
		if err != nil {
			cfgErr = fmt.Errorf("failed to read config file: %w", err)
			return
		}
		var c Config
		if err := json.Unmarshal(raw, &c); err != nil {
			cfgErr = fmt.Errorf("invalid config format: %w", err)
			return
		}
		if c.Server.JWTSecret == "" {
			cfgErr = errors.New("jwtSecret must be set in config")
			return
		}
		c.ApplyDefaults()
		cfg = &c
	})
	return cfg, cfgErr
}

// ApplyDefaults fills zero-valued tuning fields with the shipped defaults.
func (c *Config) ApplyDefaults() {
	if c.Dialogue.AmbiguityConfidence == 0 {
		c.Dialogue.AmbiguityConfidence = 0.5
	}
	if c.Dialogue.FrustrationConfidence == 0 {
		c.Dialogue.FrustrationConfidence = 0.7
	}
	if c.Dialogue.AccountIntentThreshold == 0 {
		c.Dialogue.AccountIntentThreshold = 0.8
	}
	if c.Dialogue.ClarificationWindow == 0 {
		c.Dialogue.ClarificationWindow = 5
	}
	if c.Dialogue.ClarificationLimit == 0 {
		c.Dialogue.ClarificationLimit = 2
	}
	if c.Dialogue.MaxHistoryChars == 0 {
		c.Dialogue.MaxHistoryChars = 8000
	}
	if c.Remote.TimeoutSeconds == 0 {
		c.Remote.TimeoutSeconds = 30
	}
	if c.Local.TimeoutSeconds == 0 {
		c.Local.TimeoutSeconds = 5
	}
	if c.Session.Store == "" {
		c.Session.Store = "memory"
	}
	if c.Session.TTLMinutes == 0 {
		c.Session.TTLMinutes = 120
	}
	if c.Session.MaxEntries == 0 {
		c.Session.MaxEntries = 10000
	}
}

// RemoteTimeout returns the remote provider tier timeout.
func (c *Config) RemoteTimeout() time.Duration {
	return time.Duration(c.Remote.TimeoutSeconds) * time.Second
}

// LocalTimeout returns the local provider tier timeout.
func (c *Config) LocalTimeout() time.Duration {
	return time.Duration(c.Local.TimeoutSeconds) * time.Second
}

// SessionTTL returns the context store entry lifetime.
func (c *Config) SessionTTL() time.Duration {
	return time.Duration(c.Session.TTLMinutes) * time.Minute
}

// GetConfig returns the loaded config (must call LoadConfig first)
func GetConfig() *Config {
	return cfg
}

// ResetConfigForTest resets the singleton state (for testing only)
func ResetConfigForTest() {
	once = sync.Once{}
	cfg = nil
	cfgErr = nil
}
