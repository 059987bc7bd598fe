package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"ren-assistant/internal/api"
	"ren-assistant/internal/config"
	"ren-assistant/internal/conversation"
	"ren-assistant/internal/db"
	"ren-assistant/internal/history"
	redisdb "ren-assistant/internal/redis"
	"ren-assistant/internal/respond"
	"ren-assistant/internal/user"
)

func main() {
	cfg, err := config.LoadConfig("config.json")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}
	if err := db.Init(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "DB init error: %v\n", err)
		os.Exit(1)
	}
	rdb := redisdb.NewClient(cfg)
	if err := redisdb.Ping(rdb); err != nil {
		log.Printf("[Main] WARNING: redis unreachable: %v", err)
	}

	// Live conversation contexts
	var store conversation.Store
	switch cfg.Session.Store {
	case "redis":
		store = conversation.NewRedisStore(rdb, cfg.SessionTTL())
		log.Printf("[Main] Using redis context store (ttl %s)", cfg.SessionTTL())
	default:
		store = conversation.NewMemoryStore(cfg.Session.MaxEntries, cfg.SessionTTL())
		log.Printf("[Main] Using in-memory context store (cap %d, ttl %s)",
			cfg.Session.MaxEntries, cfg.SessionTTL())
	}

	// Generation tiers: remote model, local model, rule-based terminal
	var tiers []respond.Tier
	if cfg.Remote.URL != "" || cfg.Remote.APIKey != "" {
		breaker := respond.NewBreaker(3, 30*time.Second)
		tiers = append(tiers, respond.Tier{
			Provider: respond.NewRemoteProvider(cfg.Remote, breaker),
			Timeout:  cfg.RemoteTimeout(),
		})
	} else {
		log.Printf("[Main] Remote provider not configured, skipping tier")
	}
	if cfg.Local.URL != "" {
		tiers = append(tiers, respond.Tier{
			Provider: respond.NewLocalProvider(cfg.Local),
			Timeout:  cfg.LocalTimeout(),
		})
	} else {
		log.Printf("[Main] Local provider not configured, skipping tier")
	}
	tiers = append(tiers, respond.Tier{Provider: respond.NewRuleBased()})
	pipeline := respond.NewPipeline(tiers...)

	prefs := user.NewPreferenceStore(db.DB)
	logger := history.NewLogger(db.DB)
	orch := conversation.NewOrchestrator(store, pipeline, prefs, logger, cfg.Dialogue)

	r := api.SetupRouter(cfg, rdb, api.Deps{
		Orchestrator: orch,
		Store:        store,
		History:      logger,
		Prefs:        prefs,
	})
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	fmt.Printf("Starting server on %s\n", addr)
	if err := r.Run(addr); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
