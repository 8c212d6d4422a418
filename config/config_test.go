package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.ExtractionMode != ModeHybrid || cfg.FlightProvider != "flyscraper" {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if cfg.FlightBudgetFactor != 0.4 || cfg.ResultLimit != 5 || cfg.ProviderTimeout != 30*time.Second {
		t.Errorf("unexpected search defaults: fraction=%v limit=%d timeout=%v",
			cfg.FlightBudgetFactor, cfg.ResultLimit, cfg.ProviderTimeout)
	}
	if cfg.HasLLM() {
		t.Error("expected no language service without a key")
	}
}

func TestLoad_Environment(t *testing.T) {
	t.Setenv("EXTRACTION_MODE", "pattern")
	t.Setenv("FLIGHT_BUDGET_FRACTION", "0.25")
	t.Setenv("PROVIDER_TIMEOUT", "5s")
	t.Setenv("LLM_API_KEY", "k")
	t.Setenv("ENV", "production")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.ExtractionMode != ModePattern || cfg.FlightBudgetFactor != 0.25 || cfg.ProviderTimeout != 5*time.Second {
		t.Errorf("environment not applied: %+v", cfg)
	}
	if !cfg.HasLLM() || !cfg.IsProduction() {
		t.Error("expected production with a language service")
	}
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{ExtractionMode: ModeHybrid, FlightProvider: "amadeus", FlightBudgetFactor: 0.4}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"unknown mode", func(c *Config) { c.ExtractionMode = "magic" }, true},
		{"unknown flight provider", func(c *Config) { c.FlightProvider = "kayak" }, true},
		{"zero fraction", func(c *Config) { c.FlightBudgetFactor = 0 }, true},
		{"fraction above one", func(c *Config) { c.FlightBudgetFactor = 1.5 }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("expected error %v, got %v", tt.wantErr, err)
			}
		})
	}

	cfg := valid()
	if err := cfg.Validate(); err != nil || cfg.ResultLimit != 5 || cfg.ProviderTimeout != 30*time.Second {
		t.Errorf("expected zero limit and timeout to be filled, got %d %v", cfg.ResultLimit, cfg.ProviderTimeout)
	}
}
