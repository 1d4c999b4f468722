package config

import "testing"

func TestGetEnvFallback(t *testing.T) {
	if v := getEnv("TASKPLAN_TEST_UNSET_KEY", "fallback"); v != "fallback" {
		t.Errorf("getEnv() = %q, want %q", v, "fallback")
	}
}

func TestGetEnvSet(t *testing.T) {
	t.Setenv("TASKPLAN_TEST_KEY", "value")

	if v := getEnv("TASKPLAN_TEST_KEY", "fallback"); v != "value" {
		t.Errorf("getEnv() = %q, want %q", v, "value")
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.Port == "" {
		t.Error("Load() returned empty Port")
	}
	if cfg.JWTExpiry.Hours() != 24 {
		t.Errorf("Load() JWTExpiry = %v, want 24h", cfg.JWTExpiry)
	}
}
