package config

import (
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"go.uber.org/dig"

	"github.com/elenaw/gusteau/internal/provider/gemini"
	"github.com/elenaw/gusteau/internal/provider/openai"
)

// Config represents the assistant configuration.
type Config struct {
	Server     ServerConfig
	CORS       CORSConfig
	Generation GenerationConfig
	Gemini     gemini.Config
	OpenAI     openai.Config
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Port         int `env:"SERVER_PORT"          envDefault:"8080"`
	ReadTimeout  int `env:"SERVER_READ_TIMEOUT"  envDefault:"30"`
	WriteTimeout int `env:"SERVER_WRITE_TIMEOUT" envDefault:"120"`
}

// CORSConfig contains CORS policy settings.
type CORSConfig struct {
	AllowedOrigins   []string `env:"CORS_ALLOWED_ORIGINS"   envSeparator:"," envDefault:"*"`
	AllowedMethods   []string `env:"CORS_ALLOWED_METHODS"   envSeparator:"," envDefault:"GET,POST,OPTIONS"`
	AllowedHeaders   []string `env:"CORS_ALLOWED_HEADERS"   envSeparator:"," envDefault:"Content-Type,Authorization"`
	AllowCredentials bool     `env:"CORS_ALLOW_CREDENTIALS"                  envDefault:"true"`
	MaxAge           int      `env:"CORS_MAX_AGE"                            envDefault:"86400"`
}

// GenerationConfig contains the model fallback chain and sampling defaults.
// Models are tried in order; the first one a registered provider serves wins.
type GenerationConfig struct {
	Models          []string `env:"GENERATION_MODELS"            envSeparator:"," envDefault:"gemini-2.0-flash-001,gemini-2.5-pro"`
	Temperature     float64  `env:"GENERATION_TEMPERATURE"       envDefault:"0.8"`
	MaxOutputTokens int      `env:"GENERATION_MAX_OUTPUT_TOKENS" envDefault:"2048"`
}

// DepConfig is used for dependency injection with dig.
type DepConfig struct {
	dig.Out
	*ServerConfig
	*CORSConfig
	*GenerationConfig
	Gemini *gemini.Config
	OpenAI *openai.Config
}

// Load loads environment files and parses configuration.
func Load() *Config {
	for _, file := range []string{".env"} {
		_ = godotenv.Load(file)
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		panic(err)
	}

	return &cfg
}

// ParseDependenciesConfig returns pointers to sub-configs for dependency injection.
func ParseDependenciesConfig(cfg *Config) DepConfig {
	return DepConfig{
		dig.Out{},
		&cfg.Server,
		&cfg.CORS,
		&cfg.Generation,
		&cfg.Gemini,
		&cfg.OpenAI,
	}
}
