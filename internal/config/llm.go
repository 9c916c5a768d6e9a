package config

import (
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/Veraticus/denials/internal/common"
)

// Defaults for the chat-completion endpoint.
const (
	DefaultBaseURL = "https://api.openai.com/v1"
	DefaultModel   = "gpt-4o-mini"

	// APIKeyEnv is the environment variable consulted when llm.api_key is unset.
	APIKeyEnv = "OPENAI_API_KEY"
)

// LLMConfig identifies the endpoint, credential and model for a run.
// It is built once at startup and passed by value.
type LLMConfig struct {
	APIKey  string `mapstructure:"api_key"`
	BaseURL string `mapstructure:"base_url"`
	Model   string `mapstructure:"model"`
}

// SetDefaults registers the llm.* defaults on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("llm.base_url", DefaultBaseURL)
	v.SetDefault("llm.model", DefaultModel)
}

// LoadLLMConfig reads llm.* settings from v, falling back to OPENAI_API_KEY
// for the credential. A missing credential is a configuration error.
func LoadLLMConfig(v *viper.Viper) (LLMConfig, error) {
	cfg := LLMConfig{
		APIKey:  strings.TrimSpace(v.GetString("llm.api_key")),
		BaseURL: strings.TrimSpace(v.GetString("llm.base_url")),
		Model:   strings.TrimSpace(v.GetString("llm.model")),
	}

	if cfg.APIKey == "" {
		cfg.APIKey = strings.TrimSpace(os.Getenv(APIKeyEnv))
	}
	if cfg.APIKey == "" {
		return LLMConfig{}, common.NewConfigError(
			"API key not found in config or "+APIKeyEnv+" environment variable", nil)
	}

	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")

	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}

	return cfg, nil
}
