package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("MEM0_API_KEY", "m0-key")
	t.Setenv("OPENAI_API_KEY", "oa-key")
	t.Setenv("HGC_API_BASE_URL", "http://localhost:3000/api/hgc")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8000", cfg.Addr)
	assert.Equal(t, "openai", cfg.ModelProvider)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.AllowedOrigins)
	require.NoError(t, cfg.Validate())
	assert.False(t, cfg.FallbackConfigured())
}

func TestValidate_MissingKeys(t *testing.T) {
	cfg := &Config{ModelProvider: "openai"}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MEM0_API_KEY")
	assert.Contains(t, err.Error(), "OPENAI_API_KEY")
	assert.Contains(t, err.Error(), "HGC_API_BASE_URL")
}

func TestValidate_AnthropicProvider(t *testing.T) {
	cfg := &Config{
		Mem0APIKey:    "m0",
		APIBaseURL:    "http://localhost:3000",
		ModelProvider: "anthropic",
	}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ANTHROPIC_API_KEY")

	cfg.AnthropicAPIKey = "an-key"
	require.NoError(t, cfg.Validate())
}

func TestValidate_UnknownProvider(t *testing.T) {
	cfg := &Config{Mem0APIKey: "m0", APIBaseURL: "http://x", OpenAIAPIKey: "oa", ModelProvider: "cohere"}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cohere")
}

func TestSplitOrigins(t *testing.T) {
	assert.Equal(t, []string{"http://a", "https://b"}, splitOrigins("http://a, https://b"))
	assert.Empty(t, splitOrigins(""))
}
