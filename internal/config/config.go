package config

import (
	"time"

	"github.com/jharkhand-tourism-mvp/server/internal/core"
	pkgredis "github.com/jharkhand-tourism-mvp/server/pkg/redis"
)

// Config defines all configurable parameters for the service, sourced from
// environment variables (loaded from .env for local runs).
type Config struct {
	AppEnv string `envconfig:"APP_ENV" default:"development"`

	Server struct {
		Addr string `envconfig:"SERVER_ADDR" default:":8000"`
	}

	// Persistent store
	Supabase SupabaseConfig

	// LLM provider
	Gemini GeminiConfig

	// Ledger microservice
	Ledger LedgerConfig

	// Infrastructure
	Redis pkgredis.Config

	Chat ChatConfig
}

type SupabaseConfig struct {
	URL string `envconfig:"SUPABASE_URL" required:"true"`
	Key string `envconfig:"SUPABASE_KEY" required:"true"`
}

type GeminiConfig struct {
	APIKey    string `envconfig:"GEMINI_API_KEY" required:"true"`
	BaseURL   string `envconfig:"GEMINI_BASE_URL"`
	Model     string `envconfig:"GEMINI_MODEL" default:"gemini-1.5-flash"`
	MaxTokens int    `envconfig:"GEMINI_MAX_TOKENS" default:"250"`
}

type LedgerConfig struct {
	BaseURL       string        `envconfig:"BLOCKCHAIN_SERVICE_URL" default:"http://127.0.0.1:8001"`
	RecordTimeout time.Duration `envconfig:"LEDGER_RECORD_TIMEOUT" default:"30s"`
	VerifyTimeout time.Duration `envconfig:"LEDGER_VERIFY_TIMEOUT" default:"10s"`
}

type ChatConfig struct {
	PlacesFile string        `envconfig:"PLACES_FILE" default:"places.json"`
	GreetedTTL time.Duration `envconfig:"GREETED_TTL" default:"24h"`
}

// Environment returns the parsed deployment environment.
func (c *Config) Environment() core.Environment {
	return core.ParseEnvironment(c.AppEnv)
}
