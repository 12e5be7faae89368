package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Port         string        `yaml:"port"`
		Host         string        `yaml:"host"`
		ReadTimeout  time.Duration `yaml:"read_timeout"`
		WriteTimeout time.Duration `yaml:"write_timeout"`
	} `yaml:"server"`

	App struct {
		Env     string `yaml:"env"`
		BaseURL string `yaml:"base_url"`
	} `yaml:"app"`

	LLM LLMConfig `yaml:"llm"`

	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"log"`

	Campaign struct {
		// From is the sender used when rendering message previews.
		From string `yaml:"from"`
	} `yaml:"campaign"`

	Client struct {
		Timeout time.Duration `yaml:"timeout"`
	} `yaml:"client"`
}

type LLMConfig struct {
	Provider string `yaml:"provider"`
	APIKey   string `yaml:"api_key"`
	Model    string `yaml:"model"`
	BaseURL  string `yaml:"base_url"`
}

func Default() *Config {
	c := &Config{}
	c.Server.Port = "8080"
	c.Server.Host = "0.0.0.0"
	c.Server.ReadTimeout = 10 * time.Second
	c.Server.WriteTimeout = 60 * time.Second
	c.App.Env = "development"
	c.LLM.Provider = "googleai"
	c.Log.Level = "info"
	c.Log.Format = "console"
	c.Campaign.From = "Campaigns <campaigns@example.com>"
	c.Client.Timeout = 90 * time.Second
	return c
}

// LoadConfig reads the YAML file at configPath (skipped when empty), applies
// environment overrides and validates the result.
func LoadConfig(configPath string) (*Config, error) {
	config := Default()

	if configPath != "" {
		file, err := os.Open(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open config: %w", err)
		}
		defer file.Close()

		decoder := yaml.NewDecoder(file)
		decoder.KnownFields(true)
		// an empty or comment-only file keeps the defaults
		if err := decoder.Decode(config); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	config.overrideWithEnvVars()

	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

func (c *Config) overrideWithEnvVars() {
	if port := GetEnv("PORT", ""); port != "" {
		c.Server.Port = port
	}
	if host := GetEnv("HOST", ""); host != "" {
		c.Server.Host = host
	}

	if env := GetEnv("APP_ENV", ""); env != "" {
		c.App.Env = env
	}
	if baseURL := GetEnv("BASE_URL", ""); baseURL != "" {
		c.App.BaseURL = baseURL
	}

	if provider := GetEnv("LLM_PROVIDER", ""); provider != "" {
		c.LLM.Provider = provider
	}
	if model := GetEnv("LLM_MODEL", ""); model != "" {
		c.LLM.Model = model
	}
	if baseURL := GetEnv("LLM_BASE_URL", ""); baseURL != "" {
		c.LLM.BaseURL = baseURL
	}
	// GEMINI_API_KEY wins for the default provider, LLM_API_KEY works for any.
	if key := GetEnv("LLM_API_KEY", ""); key != "" {
		c.LLM.APIKey = key
	}
	if key := GetEnv("GEMINI_API_KEY", ""); key != "" && c.LLM.Provider == "googleai" {
		c.LLM.APIKey = key
	}

	if level := GetEnv("LOG_LEVEL", ""); level != "" {
		c.Log.Level = level
	}
	if format := GetEnv("LOG_FORMAT", ""); format != "" {
		c.Log.Format = format
	}

	if from := GetEnv("CAMPAIGN_FROM", ""); from != "" {
		c.Campaign.From = from
	}
}

func (c *Config) validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("server port is required")
	}

	switch c.LLM.Provider {
	case "googleai", "openai", "ollama":
	default:
		return fmt.Errorf("unsupported LLM provider: %s (supported: googleai, openai, ollama)", c.LLM.Provider)
	}

	switch c.Log.Format {
	case "json", "text", "console":
	default:
		return fmt.Errorf("unsupported log format: %s", c.Log.Format)
	}

	return nil
}

func GetEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// GetBaseURL is the URL clients use to reach the server.
func (c *Config) GetBaseURL() string {
	if c.App.BaseURL != "" {
		return strings.TrimRight(c.App.BaseURL, "/")
	}

	if c.App.Env == "production" && c.Server.Host != "" && c.Server.Host != "0.0.0.0" {
		if !strings.HasPrefix(c.Server.Host, "http") {
			return "https://" + c.Server.Host
		}
		return c.Server.Host
	}

	return "http://localhost:" + c.Server.Port
}

func (c *Config) ListenAddr() string {
	return fmt.Sprintf("%s:%s", c.Server.Host, c.Server.Port)
}
