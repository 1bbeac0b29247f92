package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Data      DataConfig
	Reasoning ReasoningConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// DataConfig holds dataset locations
type DataConfig struct {
	// SourceDir is where the raw per-category tables live (preprocess input)
	SourceDir string `mapstructure:"source_dir"`
	// ProcessedPath is the persisted derived dataset (preprocess output,
	// server input)
	ProcessedPath string `mapstructure:"processed_path"`
}

// ReasoningConfig holds reasoning service configuration
type ReasoningConfig struct {
	APIKey            string        `mapstructure:"api_key"`
	BaseURL           string        `mapstructure:"base_url"`
	Model             string        `mapstructure:"model"`
	Timeout           time.Duration `mapstructure:"timeout"`
	RequestsPerMinute int           `mapstructure:"requests_per_minute"`
	MaxConcurrent     int           `mapstructure:"max_concurrent"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/nutriboard/")

	v.SetEnvPrefix("NUTRIBOARD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	// Config file is optional; env vars and defaults cover everything
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:3000"})

	v.SetDefault("data.source_dir", "./data/sources")
	v.SetDefault("data.processed_path", "./data/breakfast_products.csv")

	// API key has no usable default, but registering the key lets the env
	// var bind through AutomaticEnv.
	v.SetDefault("reasoning.api_key", "")
	v.SetDefault("reasoning.base_url", "https://api.openai.com")
	v.SetDefault("reasoning.model", "gpt-4o")
	v.SetDefault("reasoning.timeout", "30s")
	v.SetDefault("reasoning.requests_per_minute", 60)
	v.SetDefault("reasoning.max_concurrent", 3)
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Data.ProcessedPath == "" {
		return fmt.Errorf("processed dataset path is required")
	}

	if config.Reasoning.MaxConcurrent < 1 {
		return fmt.Errorf("reasoning max_concurrent must be at least 1, got: %d", config.Reasoning.MaxConcurrent)
	}

	return nil
}
