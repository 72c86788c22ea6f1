package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds all settings for the server. Values come from the environment,
// seeded from a KEY=VALUE settings file when one exists.
type Config struct {
	// Gmail OAuth2 credentials
	ClientID     string `envconfig:"GMAIL_CLIENT_ID"`
	ClientSecret string `envconfig:"GMAIL_CLIENT_SECRET"`
	RefreshToken string `envconfig:"GMAIL_REFRESH_TOKEN"`

	// Settings file holding the credentials; the login flow writes the
	// refresh token back into it.
	SettingsFile string `envconfig:"SETTINGS_FILE" default:".env"`

	// Space picture of the day tool
	EnableSpacePicture bool   `envconfig:"ENABLE_SPACE_PICTURE" default:"true"`
	NASAAPIKey         string `envconfig:"NASA_API_KEY" default:"DEMO_KEY"`
	APODBaseURL        string `envconfig:"APOD_BASE_URL" default:"https://api.nasa.gov/planetary/apod"`

	TimeoutSeconds int `envconfig:"HTTP_TIMEOUT_SECONDS" default:"30"`

	Timeout time.Duration `ignored:"true"`
}

// Load reads the settings file (if present) into the environment, then
// populates Config from environment variables.
func Load() (*Config, error) {
	settings := os.Getenv("SETTINGS_FILE")
	if settings == "" {
		settings = ".env"
	}
	// A missing settings file is fine; credentials may come from the
	// environment directly.
	_ = godotenv.Load(settings)

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment: %w", err)
	}
	cfg.SettingsFile = settings
	cfg.Timeout = time.Duration(cfg.TimeoutSeconds) * time.Second

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks settings that must be sane at startup. Gmail credentials are
// deliberately not required here; the login flow runs without them.
func (c *Config) Validate() error {
	if c.TimeoutSeconds <= 0 {
		return fmt.Errorf("invalid HTTP_TIMEOUT_SECONDS")
	}
	if c.APODBaseURL == "" {
		return fmt.Errorf("APOD_BASE_URL is required")
	}
	return nil
}

// ValidateForGmail checks that the stored OAuth2 credentials are complete
// enough to build an authenticated Gmail client.
func (c *Config) ValidateForGmail() error {
	if c.ClientID == "" {
		return fmt.Errorf("gmail not configured: GMAIL_CLIENT_ID is required")
	}
	if c.ClientSecret == "" {
		return fmt.Errorf("gmail not configured: GMAIL_CLIENT_SECRET is required")
	}
	if c.RefreshToken == "" {
		return fmt.Errorf("gmail not configured: GMAIL_REFRESH_TOKEN is required (run with -login to obtain one)")
	}
	return nil
}

// HasClientCredentials reports whether the OAuth2 client id/secret pair is
// present (the minimum needed to start the login flow).
func (c *Config) HasClientCredentials() bool {
	return c.ClientID != "" && c.ClientSecret != ""
}
