// internal/config/config.go
//
// Environment-driven configuration for the server and CLI.
// Every setting has a development default so `mastermind serve` runs with an
// empty environment; a .env file is loaded by the caller (godotenv) first.
//
// Environment variables:
//   PORT                     listen port (5175)
//   DB_PATH                  SQLite file (./data/mastermind.db)
//   LOG_LEVEL                zerolog level (info)
//   JWT_SECRET               HMAC key for auth tokens (dev_secret_change_me)
//   JWT_EXPIRES_DAYS         token lifetime in days (14)
//   COOKIE_NAME              auth cookie name (mastermind_token)
//   CLIENT_ORIGIN            CORS origin (http://localhost:5173)
//   NODE_ENV                 "production" enables Secure cookies
//   DAILY_SALT               HMAC salt for the daily secret (local_dev_salt)
//   DAILY_PRESET             preset used by the daily challenge (classic)
//   MASTERMIND_PRESETS_FILE  YAML file replacing the embedded presets
//   MASTERMIND_MAX_UNIVERSE  largest K^L a game may materialize (4194304)
//   GAME_IDLE_MINUTES        unfinished games untouched this long are dropped (120)

package config

import (
	"os"
	"strconv"
	"time"

	"github.com/robalobadob/mastermind/internal/mastermind"
)

// Config holds every runtime setting.
type Config struct {
	Port           string
	DBPath         string
	LogLevel       string
	JWTSecret      string
	JWTExpiresDays int
	CookieName     string
	ClientOrigin   string
	Production     bool
	DailySalt      string
	DailyPreset    string
	PresetsFile    string
	MaxUniverse    int
	GameIdleTTL    time.Duration
}

// Load reads the configuration from the environment.
func Load() Config {
	return Config{
		Port:           GetEnv("PORT", "5175"),
		DBPath:         GetEnv("DB_PATH", "./data/mastermind.db"),
		LogLevel:       GetEnv("LOG_LEVEL", "info"),
		JWTSecret:      GetEnv("JWT_SECRET", "dev_secret_change_me"),
		JWTExpiresDays: GetEnvInt("JWT_EXPIRES_DAYS", 14),
		CookieName:     GetEnv("COOKIE_NAME", "mastermind_token"),
		ClientOrigin:   GetEnv("CLIENT_ORIGIN", "http://localhost:5173"),
		Production:     os.Getenv("NODE_ENV") == "production",
		DailySalt:      GetEnv("DAILY_SALT", "local_dev_salt"),
		DailyPreset:    GetEnv("DAILY_PRESET", "classic"),
		PresetsFile:    os.Getenv("MASTERMIND_PRESETS_FILE"),
		MaxUniverse:    GetEnvInt("MASTERMIND_MAX_UNIVERSE", mastermind.DefaultMaxUniverse),
		GameIdleTTL:    time.Duration(GetEnvInt("GAME_IDLE_MINUTES", 120)) * time.Minute,
	}
}

// GetEnv returns the value of k or def if unset/empty.
func GetEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

// GetEnvInt parses k as an int, falling back to def when unset or malformed.
func GetEnvInt(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
