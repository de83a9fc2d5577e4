package config

import (
	"fmt"
	"os"
	"time"
)

const (
	BackendBayes  = "bayes"
	BackendOpenAI = "openai"

	EnvRecognizerBackend      = "SEREN_RECOGNIZER_BACKEND"
	EnvRecognizerReadyTimeout = "SEREN_RECOGNIZER_READY_TIMEOUT"
	EnvRecognizerModel        = "SEREN_RECOGNIZER_MODEL"
	EnvRecognizerAPIKey       = "SEREN_RECOGNIZER_API_KEY"
)

// RecognizerConfig selects and tunes the classification backend.
// The API key for the openai backend is read from the environment only
// and never appears in config files.
type RecognizerConfig struct {
	Backend      string `toml:"backend"`
	ReadyTimeout string `toml:"ready_timeout"`
	Model        string `toml:"model"`
}

// ReadyTimeoutDuration returns ReadyTimeout as a time.Duration.
func (c *RecognizerConfig) ReadyTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.ReadyTimeout)
	return d
}

// APIKey returns the backend credential from the environment.
func (c *RecognizerConfig) APIKey() string {
	return os.Getenv(EnvRecognizerAPIKey)
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *RecognizerConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *RecognizerConfig) Merge(overlay *RecognizerConfig) {
	if overlay.Backend != "" {
		c.Backend = overlay.Backend
	}
	if overlay.ReadyTimeout != "" {
		c.ReadyTimeout = overlay.ReadyTimeout
	}
	if overlay.Model != "" {
		c.Model = overlay.Model
	}
}

func (c *RecognizerConfig) loadDefaults() {
	if c.Backend == "" {
		c.Backend = BackendBayes
	}
	if c.ReadyTimeout == "" {
		c.ReadyTimeout = "10s"
	}
	if c.Model == "" {
		c.Model = "gpt-4o-mini"
	}
}

func (c *RecognizerConfig) loadEnv() {
	if v := os.Getenv(EnvRecognizerBackend); v != "" {
		c.Backend = v
	}
	if v := os.Getenv(EnvRecognizerReadyTimeout); v != "" {
		c.ReadyTimeout = v
	}
	if v := os.Getenv(EnvRecognizerModel); v != "" {
		c.Model = v
	}
}

func (c *RecognizerConfig) validate() error {
	switch c.Backend {
	case BackendBayes, BackendOpenAI:
	default:
		return fmt.Errorf("invalid backend: %q", c.Backend)
	}

	if _, err := time.ParseDuration(c.ReadyTimeout); err != nil {
		return fmt.Errorf("invalid ready_timeout: %w", err)
	}

	if c.Backend == BackendOpenAI && c.APIKey() == "" {
		return fmt.Errorf("openai backend requires %s", EnvRecognizerAPIKey)
	}

	return nil
}
