package cfg

import (
	"testing"
)

func TestGetVersion(t *testing.T) {
	if GetVersion() == "" {
		t.Error("GetVersion should never return empty string")
	}
}

func TestConfigFields(t *testing.T) {
	cfg := &Cfg{
		Port:           "8080",
		UserAgent:      "Test Agent",
		WorkerCount:    2,
		ScrapeInterval: 3600,
		ScraperAPIKey:  "test-key",
		AdminPassword:  "test-password",
		DBHost:         "localhost",
		DBPort:         "5432",
		DBUser:         "test_user",
		DBPassword:     "test_pass",
		DBName:         "test_db",
		Timezone:       "America/New_York",
		Debug:          true,
	}

	if cfg.Port != "8080" {
		t.Errorf("Expected port '8080', got '%s'", cfg.Port)
	}
	if cfg.WorkerCount != 2 {
		t.Errorf("Expected worker count 2, got %d", cfg.WorkerCount)
	}
	if cfg.ScrapeInterval != 3600 {
		t.Errorf("Expected scrape interval 3600, got %d", cfg.ScrapeInterval)
	}
	if cfg.ScraperAPIKey != "test-key" {
		t.Errorf("Expected API key 'test-key', got '%s'", cfg.ScraperAPIKey)
	}
	if cfg.AdminPassword != "test-password" {
		t.Errorf("Expected admin password 'test-password', got '%s'", cfg.AdminPassword)
	}
}

func TestGetPanicsWhenNotLoaded(t *testing.T) {
	saved := globalCfg
	globalCfg = nil
	defer func() {
		globalCfg = saved
		if r := recover(); r == nil {
			t.Error("Get should panic when configuration is not loaded")
		}
	}()

	Get()
}
