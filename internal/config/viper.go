// Package config provides Viper-based hierarchical configuration management
package config

import (
	"fmt"
	"strings"

	"fjacquet/ksef-pdf/internal/models"
	"fjacquet/ksef-pdf/internal/verification"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Config represents the complete application configuration
type Config struct {
	Log struct {
		Level      string `mapstructure:"level" yaml:"level"`
		Format     string `mapstructure:"format" yaml:"format"`
		File       string `mapstructure:"file" yaml:"file"`
		MaxSizeMB  int    `mapstructure:"max_size_mb" yaml:"max_size_mb"`
		MaxBackups int    `mapstructure:"max_backups" yaml:"max_backups"`
	} `mapstructure:"log" yaml:"log"`

	Verification struct {
		BaseURL   string `mapstructure:"base_url" yaml:"base_url"`
		Extractor string `mapstructure:"extractor" yaml:"extractor"`
	} `mapstructure:"verification" yaml:"verification"`

	PDF struct {
		PageSize string  `mapstructure:"page_size" yaml:"page_size"`
		QRSizeMM float64 `mapstructure:"qr_size_mm" yaml:"qr_size_mm"`
		Author   string  `mapstructure:"author" yaml:"author"`
	} `mapstructure:"pdf" yaml:"pdf"`

	Output struct {
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"output" yaml:"output"`
}

// Load reads configuration with the precedence defaults < config file <
// KSEF_* environment variables < overrides. configFile, when non-empty,
// replaces the standard search path and must exist. Override keys use the
// dotted form, e.g. "log.level".
func Load(configFile string, overrides map[string]interface{}) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("$HOME/.ksef-pdf")
		v.AddConfigPath(".ksef-pdf")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("KSEF")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || configFile != "" {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	for key, value := range overrides {
		v.Set(key, value)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// Default returns the configuration used when nothing is overridden.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	var cfg Config
	_ = v.Unmarshal(&cfg)
	return &cfg
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.file", "")
	v.SetDefault("log.max_size_mb", 10)
	v.SetDefault("log.max_backups", 3)

	v.SetDefault("verification.base_url", verification.DefaultBaseURL)
	v.SetDefault("verification.extractor", verification.ExtractorRegex)

	v.SetDefault("pdf.page_size", "A4")
	v.SetDefault("pdf.qr_size_mm", 35.0)
	v.SetDefault("pdf.author", "ksef-pdf")

	v.SetDefault("output.format", string(models.FormatPDF))
}

// Validate checks the configuration values
func Validate(cfg *Config) error {
	if _, err := logrus.ParseLevel(cfg.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", cfg.Log.Level)
	}

	if cfg.Log.Format != "text" && cfg.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", cfg.Log.Format)
	}

	if !strings.HasPrefix(cfg.Verification.BaseURL, "https://") && !strings.HasPrefix(cfg.Verification.BaseURL, "http://") {
		return fmt.Errorf("verification.base_url must be an http(s) URL, got: %s", cfg.Verification.BaseURL)
	}

	if _, ok := verification.NewExtractor(cfg.Verification.Extractor); !ok {
		return fmt.Errorf("verification.extractor must be 'regex' or 'xpath', got: %s", cfg.Verification.Extractor)
	}

	switch strings.ToUpper(cfg.PDF.PageSize) {
	case "A4", "LETTER":
	default:
		return fmt.Errorf("pdf.page_size must be 'A4' or 'Letter', got: %s", cfg.PDF.PageSize)
	}

	if cfg.PDF.QRSizeMM < 10 || cfg.PDF.QRSizeMM > 100 {
		return fmt.Errorf("pdf.qr_size_mm must be between 10 and 100, got: %g", cfg.PDF.QRSizeMM)
	}

	if _, err := models.ParseOutputFormat(cfg.Output.Format); err != nil {
		return err
	}

	return nil
}
