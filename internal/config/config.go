package config

import (
	"os"
	"strconv"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort    string
	DBDriver      string
	MySQLDSN      string
	SQLitePath    string
	RedisAddr     string
	RedisDB       int
	RedisPass     string
	SessionTTLHrs int
	SessionCookie string
}

// Load builds Config from environment with sensible defaults.
func Load() *Config {
	return &Config{
		ServerPort:    getEnv("SERVER_PORT", "8080"),
		DBDriver:      getEnv("DB_DRIVER", "mysql"),
		MySQLDSN:      getEnv("MYSQL_DSN", "user:password@tcp(localhost:3306)/taskmanager?charset=utf8mb4&parseTime=True&loc=Local"),
		SQLitePath:    getEnv("SQLITE_PATH", "taskmanager.db"),
		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:       getEnvInt("REDIS_DB", 0),
		RedisPass:     os.Getenv("REDIS_PASSWORD"),
		SessionTTLHrs: getEnvInt("SESSION_TTL_HOURS", 168),
		SessionCookie: getEnv("SESSION_COOKIE", "taskmanager_session"),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}
