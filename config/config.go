// Package config loads service configuration from the environment. A .env
// file is honored in development; real deployments set variables directly.
package config

import (
	"strings"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// Config holds everything the service and runner need from the environment.
type Config struct {
	// Mem0APIKey authenticates against the managed memory service.
	Mem0APIKey string
	// OpenAIAPIKey authenticates the default model provider.
	OpenAIAPIKey string
	// AnthropicAPIKey authenticates the alternate provider; only required
	// when ModelProvider is "anthropic".
	AnthropicAPIKey string
	// APIBaseURL is the base URL of the RevOS data API.
	APIBaseURL string
	// SupabaseURL and SupabaseAnonKey point the fallback path at the data
	// store.
	SupabaseURL     string
	SupabaseAnonKey string
	// Addr is the listen address for the HTTP front door.
	Addr string
	// ModelProvider selects "openai" or "anthropic".
	ModelProvider string
	// AllowedOrigins lists the CORS origins the front door accepts.
	AllowedOrigins []string
}

// Load reads configuration from the environment, first folding in a .env
// file when one exists.
func Load() (*Config, error) {
	// Missing .env is the normal production case.
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("HGC_ADDR", ":8000")
	v.SetDefault("HGC_MODEL_PROVIDER", "openai")
	v.SetDefault("HGC_ALLOWED_ORIGINS", "http://localhost:3000")

	cfg := &Config{
		Mem0APIKey:      v.GetString("MEM0_API_KEY"),
		OpenAIAPIKey:    v.GetString("OPENAI_API_KEY"),
		AnthropicAPIKey: v.GetString("ANTHROPIC_API_KEY"),
		APIBaseURL:      v.GetString("HGC_API_BASE_URL"),
		SupabaseURL:     v.GetString("SUPABASE_URL"),
		SupabaseAnonKey: v.GetString("SUPABASE_ANON_KEY"),
		Addr:            v.GetString("HGC_ADDR"),
		ModelProvider:   strings.ToLower(v.GetString("HGC_MODEL_PROVIDER")),
		AllowedOrigins:  splitOrigins(v.GetString("HGC_ALLOWED_ORIGINS")),
	}
	return cfg, nil
}

// Validate checks that everything the service needs at startup is present.
func (c *Config) Validate() error {
	var missing []string
	if c.Mem0APIKey == "" {
		missing = append(missing, "MEM0_API_KEY")
	}
	if c.APIBaseURL == "" {
		missing = append(missing, "HGC_API_BASE_URL")
	}
	switch c.ModelProvider {
	case "openai":
		if c.OpenAIAPIKey == "" {
			missing = append(missing, "OPENAI_API_KEY")
		}
	case "anthropic":
		if c.AnthropicAPIKey == "" {
			missing = append(missing, "ANTHROPIC_API_KEY")
		}
	default:
		return errors.Errorf("unknown model provider %q", c.ModelProvider)
	}
	if len(missing) > 0 {
		return errors.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}
	return nil
}

// FallbackConfigured reports whether the direct-access path can run.
func (c *Config) FallbackConfigured() bool {
	return c.SupabaseURL != "" && c.SupabaseAnonKey != ""
}

func splitOrigins(raw string) []string {
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}
