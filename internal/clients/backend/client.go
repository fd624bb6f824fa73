// Package backend is the HTTP client for the pokequest backend API
package backend

//go:generate mockgen -destination=mock/mock_client.go -package=backendmock github.com/KirkDiggler/pokequest/internal/clients/backend Client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/KirkDiggler/pokequest/internal/errors"
)

// Failure reasons attached to every error returned by the client
const (
	// ReasonTransport means the request never produced a response
	ReasonTransport = "transport"
	// ReasonStatus means the backend answered with a non-2xx status
	ReasonStatus = "http_status"
	// ReasonDecode means the response body could not be decoded
	ReasonDecode = "decode"
)

// Error metadata keys set on status errors
const (
	// MetaHTTPStatus holds the response status
	MetaHTTPStatus = "http_status"
	// MetaBackendCode holds the code of the backend's error envelope
	MetaBackendCode = "backend_code"
	// MetaBackendMessage holds the message of the backend's error envelope
	MetaBackendMessage = "backend_message"
)

const (
	defaultHTTPTimeout = 8 * time.Second
	maxErrorBodyBytes  = 64 << 10
)

// Client defines the backend calls the encounter flow depends on
type Client interface {
	// GetEncounter generates a wild pokémon at a location, usually with the caller's pokeballs
	GetEncounter(ctx context.Context, input *GetEncounterInput) (*GetEncounterOutput, error)

	// ListMyPokeballs returns the caller's pokeball inventory
	ListMyPokeballs(ctx context.Context, input *ListMyPokeballsInput) (*ListMyPokeballsOutput, error)

	// CatchPokemon asks the backend to decide a capture attempt
	CatchPokemon(ctx context.Context, input *CatchPokemonInput) (*CatchPokemonOutput, error)
}

// Config contains configuration options for the backend client.
type Config struct {
	// BaseURL of the backend API, e.g. http://localhost:3000/api
	BaseURL string
	// HTTPTimeout for API requests (optional, defaults to 8 seconds)
	HTTPTimeout time.Duration
	// HTTPClient overrides the default client (optional)
	HTTPClient *http.Client
}

// Validate validates the Config and sets defaults if not provided.
func (cfg *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	errors.ValidateRequired("BaseURL", cfg.BaseURL, vb)
	if cfg.BaseURL != "" {
		u, err := url.Parse(cfg.BaseURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			vb.InvalidField("BaseURL", "must be an absolute URL")
		}
	}
	if cfg.HTTPTimeout < 0 {
		vb.InvalidField("HTTPTimeout", "must not be negative")
	}
	if err := vb.Build(); err != nil {
		return err
	}

	if cfg.HTTPTimeout == 0 {
		cfg.HTTPTimeout = defaultHTTPTimeout
	}
	return nil
}

type client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a new backend client with the given configuration.
func New(cfg *Config) (Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout: cfg.HTTPTimeout,
		}
	}

	return &client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: httpClient,
	}, nil
}

func (c *client) GetEncounter(ctx context.Context, input *GetEncounterInput) (*GetEncounterOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.LocationID == "" {
		return nil, errors.InvalidArgument("location id is required")
	}

	path := fmt.Sprintf("/location/%s/encounter", url.PathEscape(input.LocationID))
	body, err := c.do(ctx, http.MethodGet, path, input.Token, nil)
	if err != nil {
		return nil, err
	}

	var payload EncounterPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, decodeError(err, path)
	}

	return normalizeEncounter(&payload), nil
}

func (c *client) ListMyPokeballs(ctx context.Context, input *ListMyPokeballsInput) (*ListMyPokeballsOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	const path = "/item/my-pokeballs"
	body, err := c.do(ctx, http.MethodGet, path, input.Token, nil)
	if err != nil {
		return nil, err
	}

	entries, err := decodeUserPokeballs(body)
	if err != nil {
		return nil, decodeError(err, path)
	}

	out := &ListMyPokeballsOutput{
		Pokeballs: make([]*PokeballData, 0, len(entries)),
	}
	for _, e := range entries {
		out.Pokeballs = append(out.Pokeballs, normalizeUserPokeball(e))
	}
	return out, nil
}

func (c *client) CatchPokemon(ctx context.Context, input *CatchPokemonInput) (*CatchPokemonOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("PokemonID", input.PokemonID, vb)
	errors.ValidateRequired("ItemID", input.ItemID, vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	path := fmt.Sprintf("/pokemon/%s/catch", url.PathEscape(input.PokemonID))
	body, err := c.do(ctx, http.MethodPost, path, input.Token, &CatchRequestPayload{
		LocationID: input.LocationID,
		ItemID:     input.ItemID,
		IsShiny:    input.IsShiny,
	})
	if err != nil {
		return nil, err
	}

	var payload CatchResponsePayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, decodeError(err, path)
	}

	return &CatchPokemonOutput{Captured: payload.Captured}, nil
}

// do sends one request and returns the body of a 2xx response
func (c *client) do(ctx context.Context, method, path, token string, reqBody interface{}) ([]byte, error) {
	var body io.Reader
	if reqBody != nil {
		raw, err := json.Marshal(reqBody)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to marshal request for %s", path)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to build request for %s", path)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		code := errors.CodeUnavailable
		if ctx.Err() != nil {
			code = errors.CodeCanceled
		}
		return nil, errors.WrapWithCode(err, code, fmt.Sprintf("request to %s failed", path)).
			WithReason(ReasonTransport)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	slog.Debug("Backend response",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		return nil, statusError(resp.StatusCode, path, raw)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, fmt.Sprintf("failed to read response from %s", path)).
			WithReason(ReasonTransport)
	}
	return raw, nil
}

// statusError builds the error for a non-2xx response, preferring the message from
// the backend's {"success": false, "error": {...}} envelope.
func statusError(status int, path string, raw []byte) *errors.Error {
	message := fmt.Sprintf("%s returned status %d", path, status)

	var envelope ErrorEnvelope
	backendCode, backendMessage := "", ""
	if len(raw) > 0 && json.Unmarshal(raw, &envelope) == nil && envelope.Error != nil {
		backendCode = envelope.Error.Code
		backendMessage = envelope.Error.Message
	}
	if backendMessage != "" {
		message = backendMessage
	}

	err := errors.New(errors.CodeFromHTTPStatus(status), message).
		WithReason(ReasonStatus).
		WithMeta(MetaHTTPStatus, status)
	if backendCode != "" {
		err = err.WithMeta(MetaBackendCode, backendCode)
	}
	if backendMessage != "" {
		err = err.WithMeta(MetaBackendMessage, backendMessage)
	}
	return err
}

func decodeError(err error, path string) *errors.Error {
	return errors.WrapWithCode(err, errors.CodeInternal, fmt.Sprintf("failed to decode response from %s", path)).
		WithReason(ReasonDecode)
}
