package main

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/KirkDiggler/pokequest/internal/clients/backend"
	"github.com/KirkDiggler/pokequest/internal/config"
	"github.com/KirkDiggler/pokequest/internal/credentials"
	"github.com/KirkDiggler/pokequest/internal/errors"
	"github.com/KirkDiggler/pokequest/internal/navigation"
	"github.com/KirkDiggler/pokequest/internal/notify"
	"github.com/KirkDiggler/pokequest/internal/orchestrators/encounter"
	"github.com/KirkDiggler/pokequest/internal/pkg/clock"
	"github.com/KirkDiggler/pokequest/internal/pkg/idgen"
	"github.com/KirkDiggler/pokequest/internal/redis"
)

func newLogger(c config.LogConfig, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: c.SlogLevel()}
	if c.Format == config.FormatJSON {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func newCredentialStore(c config.CredentialsConfig) (credentials.Store, error) {
	switch c.Backend {
	case config.BackendMemory:
		return credentials.NewMemoryStore(c.Token), nil
	case config.BackendRedis:
		client, err := redis.NewClient(c.RedisAddr, nil)
		if err != nil {
			return nil, errors.Wrap(err, "failed to create redis client")
		}
		return credentials.NewRedisStore(&credentials.RedisConfig{
			Client: client,
			Key:    c.RedisKey,
		})
	case config.BackendFile:
		secret := c.Secret
		if secret == "" {
			secret = machineSecret(c.File)
			slog.Debug("No credential secret configured, using a machine-bound one")
		}
		if err := os.MkdirAll(filepath.Dir(c.File), 0o700); err != nil {
			return nil, errors.Wrapf(err, "failed to create %s", filepath.Dir(c.File))
		}
		return credentials.NewFileStore(&credentials.FileConfig{
			Path:   c.File,
			Secret: secret,
		})
	default:
		return nil, errors.InvalidArgumentf("unknown credential backend %q", c.Backend)
	}
}

// machineSecret ties the sealed token to this host and file location
func machineSecret(path string) string {
	host, _ := os.Hostname()
	home, _ := os.UserHomeDir()
	return "pokequest:" + host + ":" + home + ":" + path
}

// app is the wired encounter screen
type app struct {
	service encounter.Service
	toasts  *notify.Queue
	// home is closed once the flow navigates home
	home     chan struct{}
	homeOnce sync.Once
}

func newApp(c *config.Config, store credentials.Store, out io.Writer) (*app, error) {
	client, err := backend.New(&backend.Config{
		BaseURL:     c.API.BaseURL,
		HTTPTimeout: c.API.Timeout,
	})
	if err != nil {
		return nil, err
	}

	clk := clock.New()
	toasts, err := notify.NewQueue(&notify.QueueConfig{
		Clock:       clk,
		IDGenerator: idgen.NewUUID("toast"),
		Listener:    notify.NewPrinter(out).Print,
	})
	if err != nil {
		return nil, err
	}

	loader, err := encounter.NewLoader(&encounter.LoaderConfig{
		Client:      client,
		Credentials: store,
		IDGenerator: idgen.NewUUID("enc"),
	})
	if err != nil {
		return nil, err
	}

	a := &app{
		toasts: toasts,
		home:   make(chan struct{}),
	}
	closeHome := func() {
		a.homeOnce.Do(func() { close(a.home) })
	}

	a.service, err = encounter.NewOrchestrator(&encounter.Config{
		Loader:            loader,
		Client:            client,
		Credentials:       store,
		Notifier:          toasts,
		Navigator:         navigation.HomeFunc(closeHome),
		Clock:             clk,
		PresentationDelay: c.Encounter.PresentationDelay,
	})
	if err != nil {
		return nil, err
	}
	return a, nil
}
