package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// DefaultAuthToken is the placeholder token used when AUTH_TOKEN is unset.
// Deployments running with it accept a publicly known credential.
const DefaultAuthToken = "dev-token-CHANGE"

// Config holds the configuration values for the application.
type Config struct {
	ListenPort       string  `mapstructure:"LISTEN_PORT"`
	Env              string  `mapstructure:"ENV"`
	LogLevel         string  `mapstructure:"LOG_LEVEL"`
	DatabaseURL      string  `mapstructure:"DATABASE_URL"`
	AuthToken        string  `mapstructure:"AUTH_TOKEN"`
	AzureEndpoint    string  `mapstructure:"AZURE_OPENAI_ENDPOINT"`
	AzureKey         string  `mapstructure:"AZURE_OPENAI_KEY"`
	AzureDeployment  string  `mapstructure:"AZURE_OPENAI_DEPLOYMENT_NAME"`
	AzureAPIVersion  string  `mapstructure:"AZURE_OPENAI_API_VERSION"`
	LLMTemperature   float64 `mapstructure:"LLM_TEMPERATURE"`
	LLMMaxTokens     int     `mapstructure:"LLM_MAX_TOKENS"`
	StrictPatientIDs bool    `mapstructure:"STRICT_PATIENT_IDS"`
}

var keys = []string{
	"LISTEN_PORT",
	"ENV",
	"LOG_LEVEL",
	"DATABASE_URL",
	"AUTH_TOKEN",
	"AZURE_OPENAI_ENDPOINT",
	"AZURE_OPENAI_KEY",
	"AZURE_OPENAI_DEPLOYMENT_NAME",
	"AZURE_OPENAI_API_VERSION",
	"LLM_TEMPERATURE",
	"LLM_MAX_TOKENS",
	"STRICT_PATIENT_IDS",
}

// LoadConfig loads configuration from environment variables (and an optional
// .env file) or uses default values. DATABASE_URL has no default.
func LoadConfig() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()

	v.SetDefault("LISTEN_PORT", "8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("AUTH_TOKEN", DefaultAuthToken)
	v.SetDefault("AZURE_OPENAI_API_VERSION", "2024-10-21")
	v.SetDefault("LLM_TEMPERATURE", 0.2)
	v.SetDefault("LLM_MAX_TOKENS", 300)
	v.SetDefault("STRICT_PATIENT_IDS", false)

	for _, k := range keys {
		_ = v.BindEnv(k)
	}

	// A missing .env file is fine.
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.AuthToken == "" {
		cfg.AuthToken = DefaultAuthToken
	}
	return cfg, nil
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// UsesDefaultToken reports whether the server would accept the placeholder token.
func (c *Config) UsesDefaultToken() bool {
	return c.AuthToken == DefaultAuthToken
}

// LLMConfigured reports whether all three Azure OpenAI settings are present.
// A partial set counts as not configured.
func (c *Config) LLMConfigured() bool {
	return c.AzureEndpoint != "" && c.AzureKey != "" && c.AzureDeployment != ""
}
