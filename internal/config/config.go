// Package config loads the pokequest CLI configuration from YAML
package config

import (
	"bytes"
	stderrors "errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/KirkDiggler/pokequest/internal/credentials"
	"github.com/KirkDiggler/pokequest/internal/errors"
)

// Environment variables that override the file
const (
	EnvAPIURL           = "POKEQUEST_API_URL"
	EnvCredentialSecret = "POKEQUEST_CREDENTIAL_SECRET"
)

// Credential backends
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendRedis  = "redis"
)

// Log formats
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Config is the full CLI configuration
type Config struct {
	API         APIConfig         `yaml:"api"`
	Encounter   EncounterConfig   `yaml:"encounter"`
	Credentials CredentialsConfig `yaml:"credentials"`
	Log         LogConfig         `yaml:"log"`
	Sandbox     SandboxConfig     `yaml:"sandbox"`
}

// APIConfig points at the backend
type APIConfig struct {
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`
}

// EncounterConfig tunes the encounter screen
type EncounterConfig struct {
	PresentationDelay time.Duration `yaml:"presentation_delay"`
}

// CredentialsConfig selects where the bearer token lives
type CredentialsConfig struct {
	Backend   string `yaml:"backend"`
	File      string `yaml:"file"`
	Secret    string `yaml:"secret"`
	RedisAddr string `yaml:"redis_addr"`
	RedisKey  string `yaml:"redis_key"`
	// Token seeds the memory backend
	Token string `yaml:"token"`
}

// LogConfig configures the slog handler
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// SandboxConfig configures the local backend
type SandboxConfig struct {
	Addr          string            `yaml:"addr"`
	Tokens        map[string]string `yaml:"tokens"`
	OmitInventory bool              `yaml:"omit_inventory"`
	ShinyOdds     int               `yaml:"shiny_odds"`
}

// Default returns the configuration used when no file is given
func Default() *Config {
	return &Config{
		API: APIConfig{
			BaseURL: "http://localhost:3000/api",
			Timeout: 8 * time.Second,
		},
		Encounter: EncounterConfig{
			PresentationDelay: time.Second,
		},
		Credentials: CredentialsConfig{
			Backend:  BackendFile,
			File:     defaultTokenFile(),
			RedisKey: credentials.DefaultKey,
		},
		Log: LogConfig{
			Level:  "info",
			Format: FormatText,
		},
		Sandbox: SandboxConfig{
			Addr:   "127.0.0.1:3000",
			Tokens: map[string]string{"sandbox-token": "trainer"},
		},
	}
}

func defaultTokenFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".pokequest-token"
	}
	return filepath.Join(dir, "pokequest", "token")
}

// Load reads path over the defaults and applies environment overrides.
// An empty path uses the defaults alone.
func Load(path string) (*Config, error) {
	var data []byte
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to read config %s", path)
		}
	}
	return Parse(data, os.LookupEnv)
}

// Parse decodes YAML over the defaults, applies overrides from lookupEnv and validates the result
func Parse(data []byte, lookupEnv func(string) (string, bool)) (*Config, error) {
	cfg := Default()

	if len(bytes.TrimSpace(data)) > 0 {
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil && !stderrors.Is(err, io.EOF) {
			return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to parse config")
		}
	}

	if lookupEnv != nil {
		if v, ok := lookupEnv(EnvAPIURL); ok && v != "" {
			cfg.API.BaseURL = v
		}
		if v, ok := lookupEnv(EnvCredentialSecret); ok && v != "" {
			cfg.Credentials.Secret = v
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	errors.ValidateRequired("api.base_url", c.API.BaseURL, vb)
	if c.API.Timeout <= 0 {
		vb.InvalidField("api.timeout", "must be positive")
	}
	if c.Encounter.PresentationDelay < 0 {
		vb.InvalidField("encounter.presentation_delay", "must not be negative")
	}

	errors.ValidateEnum("credentials.backend", c.Credentials.Backend,
		[]string{BackendMemory, BackendFile, BackendRedis}, vb)
	switch c.Credentials.Backend {
	case BackendFile:
		errors.ValidateRequired("credentials.file", c.Credentials.File, vb)
	case BackendRedis:
		errors.ValidateRequired("credentials.redis_addr", c.Credentials.RedisAddr, vb)
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		vb.InvalidField("log.level", err.Error())
	}
	errors.ValidateEnum("log.format", c.Log.Format, []string{FormatText, FormatJSON}, vb)

	if c.Sandbox.ShinyOdds < 0 {
		vb.InvalidField("sandbox.shiny_odds", "must not be negative")
	}

	return vb.Build()
}

// SlogLevel returns the configured level, info when unparsable
func (c *LogConfig) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Level)); err != nil {
		return slog.LevelInfo
	}
	return level
}
