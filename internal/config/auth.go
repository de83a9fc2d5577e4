package config

import (
	"fmt"
	"os"
	"strconv"
)

const (
	EnvAuthEnabled  = "SEREN_AUTH_ENABLED"
	EnvAuthIssuer   = "SEREN_AUTH_ISSUER"
	EnvAuthAudience = "SEREN_AUTH_AUDIENCE"
)

// AuthConfig holds OIDC bearer token verification settings. When disabled,
// all requests pass through unauthenticated.
type AuthConfig struct {
	Enabled  bool   `toml:"enabled"`
	Issuer   string `toml:"issuer"`
	Audience string `toml:"audience"`
}

// Finalize applies environment variable overrides and validation.
func (c *AuthConfig) Finalize() error {
	c.loadEnv()
	return c.validate()
}

// Merge overwrites fields from overlay. The boolean field always applies.
func (c *AuthConfig) Merge(overlay *AuthConfig) {
	c.Enabled = overlay.Enabled
	if overlay.Issuer != "" {
		c.Issuer = overlay.Issuer
	}
	if overlay.Audience != "" {
		c.Audience = overlay.Audience
	}
}

func (c *AuthConfig) loadEnv() {
	if v := os.Getenv(EnvAuthEnabled); v != "" {
		if enabled, err := strconv.ParseBool(v); err == nil {
			c.Enabled = enabled
		}
	}
	if v := os.Getenv(EnvAuthIssuer); v != "" {
		c.Issuer = v
	}
	if v := os.Getenv(EnvAuthAudience); v != "" {
		c.Audience = v
	}
}

func (c *AuthConfig) validate() error {
	if !c.Enabled {
		return nil
	}
	if c.Issuer == "" {
		return fmt.Errorf("auth enabled without issuer")
	}
	if c.Audience == "" {
		return fmt.Errorf("auth enabled without audience")
	}
	return nil
}
