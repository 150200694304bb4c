package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Config is the top-level smsgate configuration.
//
// Debug is a *bool so an absent key stays distinguishable from an explicit
// false: nil means "not set", and the backend factory treats that the same as
// true (fail safe, no live provider construction).
type Config struct {
	Debug    *bool          `toml:"debug"`
	Provider ProviderConfig `toml:"provider"`
	Logging  LoggingConfig  `toml:"logging"`
}

// ProviderConfig names and parameterizes the live SMS provider.
type ProviderConfig struct {
	Name       string `toml:"name"`
	APIKey     string `toml:"api_key"`
	LineNumber string `toml:"line_number"`

	// Region is the AWS region for the sns provider.
	Region string `toml:"region"`
	// TemplateID is the verification template for providers that send
	// verification codes through a server-side template (sms.ir).
	TemplateID string `toml:"template_id"`
	// APIURL overrides the provider's API base URL. Intended for tests and
	// self-hosted gateways; empty means the provider's production endpoint.
	APIURL string `toml:"api_url"`
}

// LoggingConfig controls the slog handler.
type LoggingConfig struct {
	Level  string `toml:"level"`  // "debug", "info" (default), "warn", "error"
	Format string `toml:"format"` // "text" (default) or "json"
}

// Load reads a TOML config file and applies environment overrides.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes TOML config bytes and applies environment overrides.
// SMSGATE_API_KEY takes precedence over the api_key file value so the secret
// can stay out of the config file.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	if key := os.Getenv("SMSGATE_API_KEY"); key != "" {
		cfg.Provider.APIKey = key
	}
	return &cfg, nil
}

// DebugEnabled reports whether the fallback console backend should be used:
// true when debug is explicitly on, and also when the key is absent.
func (c *Config) DebugEnabled() bool {
	return c.Debug == nil || *c.Debug
}
