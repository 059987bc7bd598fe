package db

import (
	"log"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"ren-assistant/internal/config"
	"ren-assistant/internal/history"
	"ren-assistant/internal/user"
)

var DB *gorm.DB

func Init(cfg *config.Config) error {
	db, err := gorm.Open(openDialector(cfg.Postgres.DSN), &gorm.Config{})
	if err != nil {
		return err
	}

	// Auto-migrate user model
	if err := db.AutoMigrate(&user.User{}); err != nil {
		return err
	}

	// Auto-migrate conversation history models
	if err := db.AutoMigrate(&history.Conversation{}, &history.Interaction{}); err != nil {
		return err
	}

	DB = db
	log.Printf("Database connected and migrated")
	return nil
}

// openDialector picks sqlite for file/:memory: DSNs so local setups can run
// without a postgres server.
func openDialector(dsn string) gorm.Dialector {
	if dsn == ":memory:" || strings.HasPrefix(dsn, "file:") || strings.HasSuffix(dsn, ".db") {
		return sqlite.Open(dsn)
	}
	return postgres.Open(dsn)
}
