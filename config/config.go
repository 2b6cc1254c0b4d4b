package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Engine selection policies. Exactly one is active per deployment; the two
// are never merged because they disagree on who decides when the cloud
// engine runs.
const (
	// PolicyConfidenceFallback runs tesseract first and re-runs the whole
	// document through Google Vision when the local output is shorter than
	// the fallback threshold. The use_google_vision flag is ignored.
	PolicyConfidenceFallback = "confidence-fallback"

	// PolicyExplicitChoice lets the caller pick the engine with the
	// use_google_vision flag. No automatic fallback in either direction.
	PolicyExplicitChoice = "explicit-choice"
)

type Config struct {
	Port              string        `mapstructure:"port"`
	Policy            string        `mapstructure:"policy"`
	FallbackThreshold int           `mapstructure:"fallback_threshold"`
	OCRLanguage       string        `mapstructure:"ocr_language"`
	RasterDPI         int           `mapstructure:"raster_dpi"`
	OCRTimeout        time.Duration `mapstructure:"ocr_timeout"`
	MaxUploadSize     int64         `mapstructure:"max_upload_size"`
	AllowedOrigins    []string      `mapstructure:"allowed_origins"`

	// Credentials come from the environment only, never from the yaml file.
	GoogleCredentialsJSON string `mapstructure:"GOOGLE_VISION_CREDENTIALS"`
	GoogleCredentialsFile string `mapstructure:"GOOGLE_APPLICATION_CREDENTIALS"`
}

func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()

	// Set up Viper to read from config file
	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")

	// Set up Viper to read from environment variables
	v.AutomaticEnv()

	// Bind environment variables
	v.BindEnv("GOOGLE_VISION_CREDENTIALS")
	v.BindEnv("GOOGLE_APPLICATION_CREDENTIALS")

	v.SetDefault("port", "8080")
	v.SetDefault("policy", PolicyConfidenceFallback)
	// 100 characters reproduces the threshold the platform already depends
	// on; changing it is a product decision, not a tuning knob.
	v.SetDefault("fallback_threshold", 100)
	v.SetDefault("ocr_language", "eng")
	v.SetDefault("raster_dpi", 300)
	v.SetDefault("ocr_timeout", "120s")
	v.SetDefault("max_upload_size", 20<<20)
	v.SetDefault("allowed_origins", []string{"*"})

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if config.Policy != PolicyConfidenceFallback && config.Policy != PolicyExplicitChoice {
		return nil, fmt.Errorf("unknown selection policy %q, expected %q or %q",
			config.Policy, PolicyConfidenceFallback, PolicyExplicitChoice)
	}
	if config.FallbackThreshold < 0 {
		return nil, fmt.Errorf("fallback_threshold must not be negative, got %d", config.FallbackThreshold)
	}

	return &config, nil
}
