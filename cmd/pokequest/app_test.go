package main

import (
	"bytes"
	"context"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/pokequest/internal/config"
	"github.com/KirkDiggler/pokequest/internal/credentials"
)

type AppTestSuite struct {
	suite.Suite
	ctx context.Context
}

func TestAppSuite(t *testing.T) {
	suite.Run(t, new(AppTestSuite))
}

func (s *AppTestSuite) SetupTest() {
	s.ctx = context.Background()
}

func (s *AppTestSuite) TestMemoryStoreSeededFromConfig() {
	store, err := newCredentialStore(config.CredentialsConfig{Backend: config.BackendMemory, Token: "abc"})
	s.Require().NoError(err)

	token, err := store.Get(s.ctx)
	s.Require().NoError(err)
	s.Equal("abc", token)
}

func (s *AppTestSuite) TestFileStoreWithMachineSecret() {
	path := filepath.Join(s.T().TempDir(), "nested", "token")
	c := config.CredentialsConfig{Backend: config.BackendFile, File: path}

	store, err := newCredentialStore(c)
	s.Require().NoError(err)
	s.Require().NoError(store.Set(s.ctx, "abc"))

	reopened, err := newCredentialStore(c)
	s.Require().NoError(err)
	token, err := reopened.Get(s.ctx)
	s.Require().NoError(err)
	s.Equal("abc", token)
}

func (s *AppTestSuite) TestFileStoreSecretMismatch() {
	path := filepath.Join(s.T().TempDir(), "token")

	store, err := newCredentialStore(config.CredentialsConfig{Backend: config.BackendFile, File: path, Secret: "one"})
	s.Require().NoError(err)
	s.Require().NoError(store.Set(s.ctx, "abc"))

	other, err := newCredentialStore(config.CredentialsConfig{Backend: config.BackendFile, File: path, Secret: "two"})
	s.Require().NoError(err)
	_, err = other.Get(s.ctx)
	s.Require().Error(err)
	s.False(credentials.IsMissing(err))
}

func (s *AppTestSuite) TestUnknownBackend() {
	_, err := newCredentialStore(config.CredentialsConfig{Backend: "disk"})
	s.Require().Error(err)
	s.Contains(err.Error(), `unknown credential backend "disk"`)
}

func (s *AppTestSuite) TestNewLoggerFormats() {
	buf := &bytes.Buffer{}
	newLogger(config.LogConfig{Level: "debug", Format: config.FormatJSON}, buf).Debug("hello", "k", "v")
	s.Contains(buf.String(), `"msg":"hello"`)
	s.Contains(buf.String(), `"k":"v"`)

	buf.Reset()
	logger := newLogger(config.LogConfig{Level: "warn", Format: config.FormatText}, buf)
	logger.Info("hidden")
	s.Empty(buf.String())
	s.False(logger.Enabled(s.ctx, slog.LevelInfo))
}

func (s *AppTestSuite) TestNewAppNavigatesHomeOnce() {
	c := config.Default()
	c.API.BaseURL = "http://127.0.0.1:1/api"

	a, err := newApp(c, credentials.NewMemoryStore(""), &bytes.Buffer{})
	s.Require().NoError(err)
	s.NotNil(a.service)

	_, err = a.service.Open(s.ctx, nil)
	s.Require().Error(err)

	select {
	case <-a.home:
	default:
		s.Fail("a failed open navigates home")
	}
	s.Len(a.toasts.Active(), 1)
}
