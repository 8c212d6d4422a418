package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration values. It is read once at start-up and
// handed to constructors; nothing reads the environment afterwards.
type Config struct {
	AppPort     string `mapstructure:"APP_PORT"`
	Env         string `mapstructure:"ENV"`
	LogLevel    string `mapstructure:"LOG_LEVEL"`
	FrontendURL string `mapstructure:"FRONTEND_URL"`
	DatabaseURL string `mapstructure:"DATABASE_URL"`

	// Language service.
	ExtractionMode string `mapstructure:"EXTRACTION_MODE"`
	LLMBackend     string `mapstructure:"LLM_BACKEND"`
	LLMAPIKey      string `mapstructure:"LLM_API_KEY"`
	LLMAPIURL      string `mapstructure:"LLM_API_URL"`
	LLMModel       string `mapstructure:"LLM_MODEL"`

	// Providers.
	RapidAPIKey        string        `mapstructure:"RAPIDAPI_KEY"`
	HotelHost          string        `mapstructure:"RAPIDAPI_HOTEL_HOST"`
	FlightHost         string        `mapstructure:"RAPIDAPI_FLIGHT_HOST"`
	FlightProvider     string        `mapstructure:"FLIGHT_PROVIDER"`
	AmadeusClientID    string        `mapstructure:"AMADEUS_CLIENT_ID"`
	AmadeusSecret      string        `mapstructure:"AMADEUS_CLIENT_SECRET"`
	AmadeusEnv         string        `mapstructure:"AMADEUS_ENV"`
	ProviderTimeout    time.Duration `mapstructure:"PROVIDER_TIMEOUT"`
	ResultLimit        int           `mapstructure:"RESULT_LIMIT"`
	FlightBudgetFactor float64       `mapstructure:"FLIGHT_BUDGET_FRACTION"`
}

const (
	ModeDelegated = "delegated"
	ModePattern   = "pattern"
	ModeHybrid    = "hybrid"
)

// Load reads .env (if present), an optional config.yaml and the environment.
func Load() (*Config, error) {
	// .env is optional; real deployments set variables directly.
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("FRONTEND_URL", "")
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("EXTRACTION_MODE", ModeHybrid)
	v.SetDefault("LLM_BACKEND", "openai")
	v.SetDefault("LLM_API_KEY", "")
	v.SetDefault("LLM_API_URL", "https://api.groq.com/openai/v1")
	v.SetDefault("LLM_MODEL", "meta-llama/llama-4-scout-17b-16e-instruct")
	v.SetDefault("RAPIDAPI_KEY", "")
	v.SetDefault("RAPIDAPI_HOTEL_HOST", "apidojo-booking-v1.p.rapidapi.com")
	v.SetDefault("RAPIDAPI_FLIGHT_HOST", "flyscraper.p.rapidapi.com")
	v.SetDefault("FLIGHT_PROVIDER", "flyscraper")
	v.SetDefault("AMADEUS_CLIENT_ID", "")
	v.SetDefault("AMADEUS_CLIENT_SECRET", "")
	v.SetDefault("AMADEUS_ENV", "test")
	v.SetDefault("PROVIDER_TIMEOUT", "30s")
	v.SetDefault("RESULT_LIMIT", 5)
	// Share of the total budget assumed for flights when no flight budget
	// is stated. A policy default, not a derived value.
	v.SetDefault("FLIGHT_BUDGET_FRACTION", 0.4)
}

// Validate rejects values the pipeline cannot run with.
func (c *Config) Validate() error {
	switch c.ExtractionMode {
	case ModeDelegated, ModePattern, ModeHybrid:
	default:
		return fmt.Errorf("invalid EXTRACTION_MODE %q", c.ExtractionMode)
	}
	switch c.FlightProvider {
	case "flyscraper", "amadeus":
	default:
		return fmt.Errorf("invalid FLIGHT_PROVIDER %q", c.FlightProvider)
	}
	if c.FlightBudgetFactor <= 0 || c.FlightBudgetFactor > 1 {
		return fmt.Errorf("FLIGHT_BUDGET_FRACTION must be in (0, 1], got %v", c.FlightBudgetFactor)
	}
	if c.ResultLimit <= 0 {
		c.ResultLimit = 5
	}
	if c.ProviderTimeout <= 0 {
		c.ProviderTimeout = 30 * time.Second
	}
	return nil
}

// IsProduction reports whether the service runs with production settings.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// HasLLM reports whether a language service is configured.
func (c *Config) HasLLM() bool {
	return c.LLMAPIKey != ""
}
