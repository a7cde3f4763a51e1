// README: Config loader with env defaults for HTTP, storage, Redis, JWT, AI and Sheets settings.
package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type ChatConfig struct {
	// TurnsPerMinute caps chat turns per agent; 0 disables limiting.
	TurnsPerMinute int
}

type SheetsConfig struct {
	SpreadsheetID   string
	CredentialsJSON string
	CredentialsFile string
}

type Config struct {
	HTTP struct {
		Addr string
	}
	DB struct {
		// DSN selects the PostgreSQL engine when set; empty falls back to SQLite.
		DSN        string
		SQLitePath string
	}
	Redis struct {
		Addr string
	}
	Auth struct {
		JWTSecret string
	}
	AI struct {
		GeminiKey string
	}
	Sheets SheetsConfig
	Chat   ChatConfig
}

func Load() (Config, error) {
	// Best effort: a missing .env file is fine in production.
	_ = godotenv.Load()

	var cfg Config
	cfg.HTTP.Addr = envOrDefault("MAWAD_HTTP_ADDR", ":8080")
	cfg.DB.DSN = os.Getenv("MAWAD_DB_DSN")
	cfg.DB.SQLitePath = envOrDefault("MAWAD_SQLITE_PATH", "mawad.db")
	cfg.Redis.Addr = os.Getenv("MAWAD_REDIS_ADDR")
	cfg.Auth.JWTSecret = envOrError("JWT_SECRET_KEY")
	cfg.AI.GeminiKey = os.Getenv("GEMINI_API_KEY")
	cfg.Sheets.SpreadsheetID = os.Getenv("MAWAD_SPREADSHEET_ID")
	cfg.Sheets.CredentialsJSON = os.Getenv("GOOGLE_CREDENTIALS_JSON")
	cfg.Sheets.CredentialsFile = envOrDefault("MAWAD_SHEETS_CREDENTIALS_FILE", "credentials.json")
	cfg.Chat.TurnsPerMinute = envOrDefaultInt("MAWAD_CHAT_TURNS_PER_MINUTE", 20)
	return cfg, nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envOrError(key string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	panic("environment variable " + key + " is required")
}

func envOrDefaultInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
