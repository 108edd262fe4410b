package cmd

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/abhisek/studybuddy/internal/llm"
	"github.com/abhisek/studybuddy/internal/logger"
)

// flagKeys maps persistent flag names to their nested config keys.
var flagKeys = map[string]string{
	"llm-provider": "llm.provider",
	"llm-model":    "llm.model",
	"llm-base-url": "llm.base-url",
}

// viperForCmd builds the layered configuration for cmd: flags, then
// STUDYBUDDY_* environment variables, then an optional studybuddy.yaml.
func viperForCmd(cmd *cobra.Command) (*viper.Viper, error) {
	v := viper.New()
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return nil, err
	}
	for flag, key := range flagKeys {
		if f := cmd.Flags().Lookup(flag); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return nil, err
			}
		}
	}

	v.SetEnvPrefix("STUDYBUDDY")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	v.SetDefault("log-level", "warn")
	v.SetDefault("log-format", "text")

	if path, _ := cmd.Flags().GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
		return v, nil
	}

	v.SetConfigName("studybuddy")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.config/studybuddy")
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}
	return v, nil
}

// newLogger builds the process logger from log-level and log-format.
func newLogger(v *viper.Viper) (*logger.Logger, error) {
	return logger.New(v.GetString("log-level"), v.GetString("log-format"))
}

// llmConfig resolves the provider configuration. Keys discovered from the
// usual vendor env vars (GROQ_API_KEY, ...) are the base; llm.* settings
// override them.
func llmConfig(v *viper.Viper) llm.Config {
	cfg, ok := llm.DiscoverConfig()
	if !ok {
		cfg = llm.DefaultConfig()
	}

	if v.IsSet("llm.provider") {
		cfg.Provider = v.GetString("llm.provider")
	}
	if v.IsSet("llm.api-key") {
		key := v.GetString("llm.api-key")
		cfg.OpenAI.APIKey = key
		cfg.Anthropic.APIKey = key
		cfg.Gemini.APIKey = key
		cfg.OpenRouter.APIKey = key
	}
	if v.IsSet("llm.model") {
		model := v.GetString("llm.model")
		switch cfg.Provider {
		case "anthropic":
			cfg.Anthropic.Model = model
		case "gemini":
			cfg.Gemini.Model = model
		case "openrouter":
			cfg.OpenRouter.Model = model
		default:
			cfg.OpenAI.Model = model
		}
	}
	if v.IsSet("llm.base-url") {
		url := v.GetString("llm.base-url")
		cfg.OpenAI.BaseURL = url
		cfg.OpenRouter.BaseURL = url
	}
	if v.IsSet("llm.temperature") {
		cfg.Temperature = v.GetFloat64("llm.temperature")
	}
	if v.IsSet("llm.timeout") {
		cfg.Timeout = v.GetDuration("llm.timeout")
	}
	if v.IsSet("llm.retry.max-attempts") {
		cfg.Retry.MaxAttempts = v.GetInt("llm.retry.max-attempts")
	}

	return cfg
}
