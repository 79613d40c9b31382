package config

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	Port              string        `validate:"required,numeric"`
	GraphQLEndpoint   string        `validate:"omitempty,url"`
	StorefrontConfig  string        // path to the storefront's config.json
	HiddenPaths       []string      `validate:"dive,startswith=/"`
	WidgetMode        string        `validate:"oneof=popup button"`
	FetchTimeout      time.Duration `validate:"gte=0"`
	LogMode           string        `validate:"oneof=development production"`
	AllowedOrigin     string
	DefaultIconButton string
	DefaultIconPopup  string
}

// LoadConfig reads .env (when present) and the process environment.
func LoadConfig() *Config {
	err := godotenv.Load()
	if err != nil {
		log.Println("Warning: Error loading .env file")
	}

	timeout, err := time.ParseDuration(getEnv("FETCH_TIMEOUT", "0s"))
	if err != nil {
		log.Printf("Warning: invalid FETCH_TIMEOUT, fetching without timeout: %v", err)
		timeout = 0
	}

	return &Config{
		Port:              getEnv("PORT", "8080"),
		GraphQLEndpoint:   getEnv("GRAPHQL_ENDPOINT", ""),
		StorefrontConfig:  getEnv("STOREFRONT_CONFIG", ""),
		HiddenPaths:       splitList(getEnv("WIDGET_HIDDEN_PATHS", "/checkout,/cart")),
		WidgetMode:        getEnv("WIDGET_MODE", "popup"),
		FetchTimeout:      timeout,
		LogMode:           getEnv("LOG_MODE", "development"),
		AllowedOrigin:     getEnv("ALLOWED_ORIGIN", "*"),
		DefaultIconButton: getEnv("WIDGET_ICON_BUTTON", "/icons/whatsapp-contact.svg"),
		DefaultIconPopup:  getEnv("WIDGET_ICON_POPUP", "/icons/whatsapp.svg"),
	}
}

// Validate checks the loaded values. An empty endpoint is allowed: the widget
// then renders from defaults and host attributes only.
func (c *Config) Validate() error {
	return validator.New().Struct(c)
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
