package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func validConfig() Config {
	cfg := Config{}
	cfg.ApplyDefaults()
	return cfg
}

func TestApplyDefaults(t *testing.T) {
	cfg := validConfig()

	if cfg.HTTP.Port != 8080 {
		t.Errorf("HTTP.Port = %d", cfg.HTTP.Port)
	}
	if cfg.Search.SemanticWeight != 0.7 || cfg.Search.KeywordWeight != 0.3 {
		t.Errorf("weights = %v/%v", cfg.Search.SemanticWeight, cfg.Search.KeywordWeight)
	}
	if cfg.Search.MaxQueryLength != 500 {
		t.Errorf("MaxQueryLength = %d", cfg.Search.MaxQueryLength)
	}
	if cfg.RateLimit.WindowSec != 60 || cfg.RateLimit.MaxRequests != 10 {
		t.Errorf("rate limit = %d/%d", cfg.RateLimit.MaxRequests, cfg.RateLimit.WindowSec)
	}
	if cfg.RateLimit.Driver != "memory" {
		t.Errorf("Driver = %q", cfg.RateLimit.Driver)
	}
	if !cfg.RateLimit.IsEnabled() {
		t.Error("rate limit should default to enabled")
	}
	if cfg.Embedding.Model != "text-embedding-3-small" || cfg.Embedding.Dimensions != 1536 {
		t.Errorf("embedding = %s/%d", cfg.Embedding.Model, cfg.Embedding.Dimensions)
	}
	if cfg.Embedding.TimeoutMS != 5000 {
		t.Errorf("TimeoutMS = %d", cfg.Embedding.TimeoutMS)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
}

func TestApplyDefaults_KeepsExplicitWeights(t *testing.T) {
	cfg := Config{Search: SearchConfig{SemanticWeight: 0, KeywordWeight: 1}}
	cfg.ApplyDefaults()
	if cfg.Search.SemanticWeight != 0 || cfg.Search.KeywordWeight != 1 {
		t.Errorf("explicit weights overwritten: %v/%v", cfg.Search.SemanticWeight, cfg.Search.KeywordWeight)
	}
}

func TestValidate_InvalidBudgetAction(t *testing.T) {
	cfg := validConfig()
	cfg.Embedding.Budget.Action = "invalid_action"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for invalid budget action")
	}
	expected := `embedding.budget.action must be "warn" or "reject", got "invalid_action"`
	if err.Error() != expected {
		t.Errorf("unexpected error message:\ngot:  %q\nwant: %q", err.Error(), expected)
	}
}

func TestValidate_ValidBudgetActions(t *testing.T) {
	for _, action := range []string{"", "warn", "reject"} {
		t.Run("action="+action, func(t *testing.T) {
			cfg := validConfig()
			cfg.Embedding.Budget.Action = action
			if err := cfg.Validate(); err != nil {
				t.Fatalf("unexpected error for valid action %q: %v", action, err)
			}
		})
	}
}

func TestValidate_InvalidPort(t *testing.T) {
	cfg := validConfig()
	cfg.HTTP.Port = 70000
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for invalid port")
	}
}

func TestValidate_RedisDriverNeedsAddrs(t *testing.T) {
	cfg := validConfig()
	cfg.RateLimit.Driver = "redis"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for redis driver without addrs")
	}

	cfg.Redis.Addrs = []string{"localhost:6379"}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_UnknownDriver(t *testing.T) {
	cfg := validConfig()
	cfg.RateLimit.Driver = "memcached"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for unknown driver")
	}
}

func TestValidate_LimitBounds(t *testing.T) {
	cfg := validConfig()
	cfg.Search.DefaultLimit = 200
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error when default_limit exceeds max_limit")
	}
}

func TestValidate_NegativeWeight(t *testing.T) {
	cfg := validConfig()
	cfg.Search.SemanticWeight = -0.1
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for negative weight")
	}
}

func TestParse_EnvExpansion(t *testing.T) {
	t.Setenv("DOCSEARCH_TEST_KEY", "sk-test")
	t.Setenv("DOCSEARCH_TEST_EMPTY", "")

	data := []byte(`
http:
  port: ${DOCSEARCH_TEST_PORT:-9090}
embedding:
  api_key: ${DOCSEARCH_TEST_KEY}
  base_url: ${DOCSEARCH_TEST_EMPTY:-https://example.com/v1}
rate_limit:
  enabled: false
`)
	cfg, err := Parse(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.HTTP.Port != 9090 {
		t.Errorf("Port = %d, want default 9090", cfg.HTTP.Port)
	}
	if cfg.Embedding.APIKey != "sk-test" {
		t.Errorf("APIKey = %q", cfg.Embedding.APIKey)
	}
	if cfg.Embedding.BaseURL != "https://example.com/v1" {
		t.Errorf("BaseURL = %q", cfg.Embedding.BaseURL)
	}
	if cfg.RateLimit.IsEnabled() {
		t.Error("rate_limit.enabled: false should disable the limiter")
	}
}

func TestParse_InvalidYAML(t *testing.T) {
	if _, err := Parse([]byte("http: [")); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.yaml")
	if err := os.WriteFile(path, []byte("http:\n  port: 8181\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.HTTP.Port != 8181 {
		t.Errorf("Port = %d", cfg.HTTP.Port)
	}

	_, err = LoadFile(filepath.Join(dir, "missing.yaml"))
	if err == nil || !strings.Contains(err.Error(), "failed to read config") {
		t.Errorf("expected read error, got %v", err)
	}
}

func TestLoad_ShippedLocalConfig(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	cfg, err := Load("local")
	if err != nil {
		t.Fatalf("local config should load: %v", err)
	}
	if cfg.Search.IndexFile == "" {
		t.Error("expected index file")
	}
}

func TestGetEnv(t *testing.T) {
	t.Setenv("ENV", "")
	if GetEnv() != "local" {
		t.Errorf("GetEnv() = %q", GetEnv())
	}
	t.Setenv("ENV", "prod")
	if GetEnv() != "prod" {
		t.Errorf("GetEnv() = %q", GetEnv())
	}
}
