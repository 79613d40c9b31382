package config

import (
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "GRAPHQL_ENDPOINT", "WIDGET_HIDDEN_PATHS", "WIDGET_MODE", "FETCH_TIMEOUT", "LOG_MODE"} {
		t.Setenv(key, "")
	}
	t.Setenv("PORT", "8080")
	t.Setenv("WIDGET_HIDDEN_PATHS", "/checkout, /cart ,")
	t.Setenv("WIDGET_MODE", "popup")
	t.Setenv("FETCH_TIMEOUT", "0s")
	t.Setenv("LOG_MODE", "development")

	cfg := LoadConfig()
	if cfg.Port != "8080" {
		t.Fatalf("port = %q", cfg.Port)
	}
	if len(cfg.HiddenPaths) != 2 || cfg.HiddenPaths[0] != "/checkout" || cfg.HiddenPaths[1] != "/cart" {
		t.Fatalf("hidden paths = %#v", cfg.HiddenPaths)
	}
	if cfg.FetchTimeout != 0 {
		t.Fatalf("timeout = %v", cfg.FetchTimeout)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error: %v", err)
	}
}

func TestLoadConfigTimeout(t *testing.T) {
	t.Setenv("FETCH_TIMEOUT", "3s")
	if got := LoadConfig().FetchTimeout; got != 3*time.Second {
		t.Fatalf("timeout = %v", got)
	}
	t.Setenv("FETCH_TIMEOUT", "soon")
	if got := LoadConfig().FetchTimeout; got != 0 {
		t.Fatalf("invalid timeout should fall back to 0, got %v", got)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "endpoint not a url", mutate: func(c *Config) { c.GraphQLEndpoint = "not a url" }, wantErr: true},
		{name: "unknown mode", mutate: func(c *Config) { c.WidgetMode = "banner" }, wantErr: true},
		{name: "relative hidden path", mutate: func(c *Config) { c.HiddenPaths = []string{"cart"} }, wantErr: true},
		{name: "port not numeric", mutate: func(c *Config) { c.Port = "http" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{
				Port:            "8080",
				GraphQLEndpoint: "https://example.test/graphql",
				HiddenPaths:     []string{"/checkout"},
				WidgetMode:      "popup",
				LogMode:         "production",
			}
			tt.mutate(cfg)
			if err := cfg.Validate(); (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
