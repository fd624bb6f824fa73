package encounter

import (
	"context"
	"log/slog"
	"strings"

	"github.com/KirkDiggler/pokequest/internal/clients/backend"
	"github.com/KirkDiggler/pokequest/internal/credentials"
	"github.com/KirkDiggler/pokequest/internal/errors"
	"github.com/KirkDiggler/pokequest/internal/pkg/idgen"
)

// Loader builds an encounter session for a location
type Loader interface {
	// Load fetches the wild pokémon and the player's pokeballs. Errors carry one of
	// ReasonMissingLocation, ReasonAuthenticationRequired, ReasonEncounterUnavailable
	// or ReasonConnection. No session is returned alongside an error.
	Load(ctx context.Context, input *LoadInput) (*LoadOutput, error)
}

// LoaderConfig holds the dependencies for the session loader
type LoaderConfig struct {
	Client      backend.Client
	Credentials credentials.Store
	IDGenerator idgen.Generator
}

// Validate ensures all required dependencies are provided
func (c *LoaderConfig) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Client == nil {
		vb.RequiredField("Client")
	}
	if c.Credentials == nil {
		vb.RequiredField("Credentials")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}

	return vb.Build()
}

type loader struct {
	client backend.Client
	creds  credentials.Store
	idGen  idgen.Generator
}

// NewLoader creates a session loader with the provided dependencies
func NewLoader(cfg *LoaderConfig) (Loader, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &loader{
		client: cfg.Client,
		creds:  cfg.Credentials,
		idGen:  cfg.IDGenerator,
	}, nil
}

func (l *loader) Load(ctx context.Context, input *LoadInput) (*LoadOutput, error) {
	if input == nil || strings.TrimSpace(input.LocationID) == "" {
		return nil, missingLocation()
	}

	token, err := readToken(ctx, l.creds)
	if err != nil {
		return nil, err
	}

	encounter, err := l.client.GetEncounter(ctx, &backend.GetEncounterInput{
		Token:      token,
		LocationID: input.LocationID,
	})
	if err != nil {
		return nil, loadFailure(err, input.LocationID)
	}
	if encounter.Pokemon == nil || encounter.Pokemon.ID == "" {
		return nil, errors.New(errors.CodeUnavailable, "encounter payload has no pokémon").
			WithReason(ReasonConnection)
	}

	tools := toTools(encounter.Pokeballs)
	if len(tools) == 0 {
		tools = l.fallbackTools(ctx, token, input.LocationID)
	}

	session := &Session{
		ID:         l.idGen.Generate(),
		LocationID: input.LocationID,
		Creature: &Creature{
			ID:        encounter.Pokemon.ID,
			Name:      encounter.Pokemon.Name,
			SpriteURL: encounter.Pokemon.SpriteURL,
			IsShiny:   encounter.Pokemon.IsShiny,
			CatchRate: encounter.Pokemon.CatchChance,
		},
		Tools:          tools,
		SelectedToolID: SelectDefaultTool(tools),
	}

	slog.Info("Encounter loaded",
		"session_id", session.ID,
		"location_id", session.LocationID,
		"pokemon_id", session.Creature.ID,
		"shiny", session.Creature.IsShiny,
		"tool_count", len(tools),
	)

	return &LoadOutput{Session: session}, nil
}

// fallbackTools reads the general inventory. A failure leaves the session without tools.
func (l *loader) fallbackTools(ctx context.Context, token, locationID string) []*Tool {
	inventory, err := l.client.ListMyPokeballs(ctx, &backend.ListMyPokeballsInput{Token: token})
	if err != nil {
		slog.Warn("Fallback pokeball inventory failed",
			"location_id", locationID,
			"error", err,
		)
		return []*Tool{}
	}
	return toTools(inventory.Pokeballs)
}

func readToken(ctx context.Context, store credentials.Store) (string, error) {
	token, err := store.Get(ctx)
	if err != nil {
		if credentials.IsMissing(err) {
			return "", authenticationRequired(nil)
		}
		return "", authenticationRequired(err)
	}
	if token == "" {
		return "", authenticationRequired(nil)
	}
	return token, nil
}

// loadFailure maps a primary request error: a status answer means the encounter is
// unavailable, anything else is a connection problem.
func loadFailure(err error, locationID string) *errors.Error {
	if errors.GetReason(err) == backend.ReasonStatus {
		return errors.WrapWithCode(err, errors.CodeUnavailable, msgEncounterFailed).
			WithReason(ReasonEncounterUnavailable)
	}

	slog.Warn("Encounter request failed",
		"location_id", locationID,
		"error", err,
	)
	return errors.WrapWithCode(err, errors.CodeUnavailable, msgConnection).
		WithReason(ReasonConnection)
}

func toTools(balls []*backend.PokeballData) []*Tool {
	tools := make([]*Tool, 0, len(balls))
	for _, b := range balls {
		tools = append(tools, &Tool{
			ID:        b.ID,
			Name:      b.Name,
			SpriteURL: b.SpriteURL,
			Quantity:  b.Quantity,
			Bonus:     b.Bonus,
		})
	}
	return tools
}
