package cfg

import (
	"testing"
)

func TestGetVersion(t *testing.T) {
	if GetVersion() == "" {
		t.Error("GetVersion should never return empty string")
	}
}

func TestGetPanicsBeforeLoad(t *testing.T) {
	globalCfg = nil
	defer func() {
		if recover() == nil {
			t.Error("Expected Get to panic before Load")
		}
	}()

	Get()
}

func TestApplyTimezone(t *testing.T) {
	if err := applyTimezone("UTC"); err != nil {
		t.Errorf("Expected UTC to be a valid timezone, got %v", err)
	}
	if err := applyTimezone("Not/AZone"); err == nil {
		t.Error("Expected error for invalid timezone")
	}
	if err := applyTimezone(""); err != nil {
		t.Errorf("Expected empty timezone to be a no-op, got %v", err)
	}
}

func TestConfigFields(t *testing.T) {
	cfg := &Cfg{
		PerplexityAPIKey: "pplx-key",
		PerplexityURL:    "https://api.perplexity.ai",
		ResendAPIKey:     "re-key",
		EmailFrom:        "from@example.com",
		EmailTo:          "to@example.com",
		ValkeyAddress:    "localhost:6379",
		Port:             "8080",
		CronSecret:       "secret",
		QueriesFile:      "./queries.yml",
		MorningAt:        "07:00",
		EveningAt:        "18:00",
		Timezone:         "America/Denver",
		Debug:            true,
	}

	if cfg.PerplexityURL != "https://api.perplexity.ai" {
		t.Errorf("Expected Perplexity URL, got '%s'", cfg.PerplexityURL)
	}
	if cfg.Port != "8080" {
		t.Errorf("Expected port '8080', got '%s'", cfg.Port)
	}
	if cfg.MorningAt != "07:00" {
		t.Errorf("Expected morning schedule '07:00', got '%s'", cfg.MorningAt)
	}
	if !cfg.Debug {
		t.Error("Expected debug to be enabled")
	}
}
