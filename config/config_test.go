package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var envKeys = []string{
	"PORT", "HOST", "APP_ENV", "BASE_URL", "LLM_PROVIDER", "LLM_MODEL", "LLM_BASE_URL",
	"LLM_API_KEY", "GEMINI_API_KEY", "LOG_LEVEL", "LOG_FORMAT", "CAMPAIGN_FROM",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range envKeys {
		t.Setenv(key, "")
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfig_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "googleai", cfg.LLM.Provider)
	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, 60*time.Second, cfg.Server.WriteTimeout)
	assert.Equal(t, "http://localhost:8080", cfg.GetBaseURL())
}

func TestLoadConfig_File(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
server:
  port: "9090"
  host: 127.0.0.1
  write_timeout: 2m
app:
  env: staging
llm:
  provider: ollama
  model: llama3
  base_url: http://localhost:11434
log:
  level: debug
  format: json
campaign:
  from: News <news@example.org>
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "127.0.0.1:9090", cfg.ListenAddr())
	assert.Equal(t, 2*time.Minute, cfg.Server.WriteTimeout)
	assert.Equal(t, 10*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "ollama", cfg.LLM.Provider)
	assert.Equal(t, "llama3", cfg.LLM.Model)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "News <news@example.org>", cfg.Campaign.From)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "7000")
	t.Setenv("GEMINI_API_KEY", "secret")
	t.Setenv("BASE_URL", "https://campaigns.example.com/")

	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "7000", cfg.Server.Port)
	assert.Equal(t, "secret", cfg.LLM.APIKey)
	assert.Equal(t, "https://campaigns.example.com", cfg.GetBaseURL())
}

func TestLoadConfig_GeminiKeyIgnoredForOtherProviders(t *testing.T) {
	clearEnv(t)
	t.Setenv("LLM_PROVIDER", "openai")
	t.Setenv("GEMINI_API_KEY", "gemini")
	t.Setenv("LLM_API_KEY", "openai-key")

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "openai-key", cfg.LLM.APIKey)
}

func TestLoadConfig_EmptyFileKeepsDefaults(t *testing.T) {
	clearEnv(t)

	for _, content := range []string{"", "# just a comment\n", "\n\n"} {
		cfg, err := LoadConfig(writeConfig(t, content))
		require.NoError(t, err, "content %q", content)
		assert.Equal(t, Default(), cfg)
	}
}

func TestLoadConfig_Errors(t *testing.T) {
	clearEnv(t)

	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = LoadConfig(writeConfig(t, "llm:\n  provider: watson\n"))
	assert.ErrorContains(t, err, "unsupported LLM provider")

	_, err = LoadConfig(writeConfig(t, "log:\n  format: xml\n"))
	assert.ErrorContains(t, err, "unsupported log format")

	_, err = LoadConfig(writeConfig(t, "smtp:\n  host: mail\n"))
	assert.Error(t, err, "unknown keys are rejected")
}

func TestGetBaseURL_Production(t *testing.T) {
	cfg := Default()
	cfg.App.Env = "production"
	cfg.Server.Host = "campaigns.example.com"
	assert.Equal(t, "https://campaigns.example.com", cfg.GetBaseURL())

	cfg.Server.Host = "0.0.0.0"
	assert.Equal(t, "http://localhost:8080", cfg.GetBaseURL())
}
