package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
)

type Config struct {
	AppName        string
	Env            string
	Port           string
	DatabaseDSN    string
	DBDriver       string // postgres (default) or sqlite
	LogLevel       string
	SessionSecret  string
	SessionTimeout int // seconds
}

// Load reads configuration from the environment with sensible defaults.
// Precedence: explicit env var > .env file (loaded by the caller) > default.
func Load() Config {
	cfg := Config{}
	cfg.AppName = getEnv("APP_NAME", "pizzeria")
	cfg.Env = getEnv("APP_ENV", "development")
	cfg.Port = getEnv("PORT", "8080")
	cfg.DBDriver = getEnv("DB_DRIVER", "postgres")
	cfg.DatabaseDSN = databaseDSN()
	cfg.LogLevel = getEnv("LOG_LEVEL", "info")
	cfg.SessionSecret = getEnv("SESSION_SECRET", "devsessionsecret")
	cfg.SessionTimeout = parseInt("SESSION_TIMEOUT", 3600)
	return cfg
}

// databaseDSN prefers a full DATABASE_DSN and otherwise assembles a URL
// from the individual DB_* variables, escaping the password so special
// characters survive the URL form.
func databaseDSN() string {
	if dsn := os.Getenv("DATABASE_DSN"); dsn != "" {
		return dsn
	}
	host := getEnv("DB_HOST", "localhost")
	port := getEnv("DB_PORT", "5432")
	name := getEnv("DB_NAME", "pizzeria_db")
	user := getEnv("DB_USER", "pizzeria_user")
	pass := os.Getenv("DB_PASSWORD")
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		user, url.QueryEscape(pass), host, port, name)
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
