package config

import (
	"os"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type Config struct {
	Port      string
	GinMode   string
	DBDriver  string // "mysql" or "sqlite"
	DBDSN     string
	MenuFile  string
	SeedUsers bool
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// Load reads configuration from the environment. godotenv.Load is the
// caller's job so tests can set plain env vars.
func Load() *Config {
	return &Config{
		Port:      getEnv("PORT", "8080"),
		GinMode:   getEnv("GIN_MODE", "debug"),
		DBDriver:  getEnv("DB_DRIVER", "sqlite"),
		DBDSN:     getEnv("DB_DSN", "hotel.db"),
		MenuFile:  getEnv("MENU_FILE", "menu.json"),
		SeedUsers: getEnv("SEED_USERS", "true") != "false",
	}
}

// InitDB opens the configured database. MySQL in deployments, sqlite
// for local runs and tests.
func (c *Config) InitDB() (*gorm.DB, error) {
	switch c.DBDriver {
	case "mysql":
		return gorm.Open(mysql.Open(c.DBDSN), &gorm.Config{})
	default:
		return gorm.Open(sqlite.Open(c.DBDSN), &gorm.Config{})
	}
}
