package config_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/pokequest/internal/config"
	"github.com/KirkDiggler/pokequest/internal/errors"
)

type ConfigTestSuite struct {
	suite.Suite
	env map[string]string
}

func TestConfigSuite(t *testing.T) {
	suite.Run(t, new(ConfigTestSuite))
}

func (s *ConfigTestSuite) SetupTest() {
	s.env = map[string]string{}
}

func (s *ConfigTestSuite) lookup(key string) (string, bool) {
	v, ok := s.env[key]
	return v, ok
}

func (s *ConfigTestSuite) TestDefaults() {
	cfg, err := config.Parse(nil, s.lookup)
	s.Require().NoError(err)

	s.Equal("http://localhost:3000/api", cfg.API.BaseURL)
	s.Equal(8*time.Second, cfg.API.Timeout)
	s.Equal(time.Second, cfg.Encounter.PresentationDelay)
	s.Equal(config.BackendFile, cfg.Credentials.Backend)
	s.NotEmpty(cfg.Credentials.File)
	s.Equal("authToken", cfg.Credentials.RedisKey)
	s.Equal(slog.LevelInfo, cfg.Log.SlogLevel())
	s.Equal(config.FormatText, cfg.Log.Format)
	s.Equal("trainer", cfg.Sandbox.Tokens["sandbox-token"])
}

func (s *ConfigTestSuite) TestParseOverridesDefaults() {
	cfg, err := config.Parse([]byte(`
api:
  base_url: https://pokequest.example/api
  timeout: 3s
encounter:
  presentation_delay: 250ms
credentials:
  backend: redis
  redis_addr: localhost:6379
log:
  level: debug
  format: json
sandbox:
  omit_inventory: true
  shiny_odds: 8
`), s.lookup)
	s.Require().NoError(err)

	s.Equal("https://pokequest.example/api", cfg.API.BaseURL)
	s.Equal(3*time.Second, cfg.API.Timeout)
	s.Equal(250*time.Millisecond, cfg.Encounter.PresentationDelay)
	s.Equal(config.BackendRedis, cfg.Credentials.Backend)
	s.Equal("localhost:6379", cfg.Credentials.RedisAddr)
	s.Equal("authToken", cfg.Credentials.RedisKey, "unset keys keep their default")
	s.Equal(slog.LevelDebug, cfg.Log.SlogLevel())
	s.Equal(config.FormatJSON, cfg.Log.Format)
	s.True(cfg.Sandbox.OmitInventory)
	s.Equal(8, cfg.Sandbox.ShinyOdds)
}

func (s *ConfigTestSuite) TestEnvironmentOverrides() {
	s.env[config.EnvAPIURL] = "http://10.0.0.2:3000/api"
	s.env[config.EnvCredentialSecret] = "s3cret"

	cfg, err := config.Parse([]byte("api:\n  base_url: http://ignored/api\n"), s.lookup)
	s.Require().NoError(err)
	s.Equal("http://10.0.0.2:3000/api", cfg.API.BaseURL)
	s.Equal("s3cret", cfg.Credentials.Secret)
}

func (s *ConfigTestSuite) TestEmptyEnvironmentValueIgnored() {
	s.env[config.EnvAPIURL] = ""

	cfg, err := config.Parse(nil, s.lookup)
	s.Require().NoError(err)
	s.Equal("http://localhost:3000/api", cfg.API.BaseURL)
}

func (s *ConfigTestSuite) TestUnknownKeyRejected() {
	_, err := config.Parse([]byte("api:\n  base_uri: http://typo\n"), s.lookup)
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))
	s.Contains(err.Error(), "base_uri")
}

func (s *ConfigTestSuite) TestValidation() {
	testCases := []struct {
		name   string
		yaml   string
		errMsg string
	}{
		{name: "blank base url", yaml: "api:\n  base_url: ' '\n", errMsg: "api.base_url: is required"},
		{name: "zero timeout", yaml: "api:\n  timeout: 0s\n", errMsg: "api.timeout"},
		{name: "negative delay", yaml: "encounter:\n  presentation_delay: -1s\n", errMsg: "encounter.presentation_delay"},
		{name: "unknown backend", yaml: "credentials:\n  backend: disk\n", errMsg: "must be one of: memory, file, redis"},
		{name: "redis without addr", yaml: "credentials:\n  backend: redis\n", errMsg: "credentials.redis_addr: is required"},
		{name: "file without path", yaml: "credentials:\n  file: ''\n", errMsg: "credentials.file: is required"},
		{name: "bad level", yaml: "log:\n  level: loud\n", errMsg: "log.level"},
		{name: "bad format", yaml: "log:\n  format: xml\n", errMsg: "log.format"},
		{name: "negative shiny odds", yaml: "sandbox:\n  shiny_odds: -3\n", errMsg: "sandbox.shiny_odds"},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			cfg, err := config.Parse([]byte(tc.yaml), s.lookup)
			s.Nil(cfg)
			s.Require().Error(err)
			s.Contains(err.Error(), tc.errMsg)
		})
	}
}

func (s *ConfigTestSuite) TestLoadFile() {
	path := filepath.Join(s.T().TempDir(), "pokequest.yaml")
	s.Require().NoError(os.WriteFile(path, []byte("credentials:\n  backend: memory\n  token: abc\n"), 0o600))

	cfg, err := config.Load(path)
	s.Require().NoError(err)
	s.Equal(config.BackendMemory, cfg.Credentials.Backend)
	s.Equal("abc", cfg.Credentials.Token)
}

func (s *ConfigTestSuite) TestLoadMissingFile() {
	_, err := config.Load(filepath.Join(s.T().TempDir(), "absent.yaml"))
	s.Require().Error(err)
	s.Contains(err.Error(), "failed to read config")
}
