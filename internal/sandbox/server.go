// Package sandbox is a local stand-in for the pokequest backend. It serves the
// encounter, inventory and catch endpoints with dice-driven outcomes.
package sandbox

import (
	"encoding/json"
	"log/slog"
	"math"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/KirkDiggler/rpg-toolkit/core"
	"github.com/KirkDiggler/rpg-toolkit/dice"
	"github.com/gorilla/mux"

	"github.com/KirkDiggler/pokequest/internal/clients/backend"
	"github.com/KirkDiggler/pokequest/internal/errors"
)

const (
	defaultShinyOdds = 64
	percentDie       = 100
)

// Config contains configuration for the sandbox backend
type Config struct {
	// Tokens maps bearer tokens to player ids
	Tokens map[string]string
	// Roller drives spawns, shiny rolls and catches (optional, defaults to dice.DefaultRoller)
	Roller dice.Roller
	// Locations defaults to DefaultLocations
	Locations map[string][]Species
	// Balls defaults to DefaultBalls
	Balls []Ball
	// StartingInventory defaults to DefaultInventory
	StartingInventory map[string]int
	// ShinyOdds is N in a 1-in-N shiny chance (optional, defaults to 64)
	ShinyOdds int
	// OmitEncounterInventory leaves pokeballs out of encounter responses
	OmitEncounterInventory bool
}

// Validate validates the Config and sets defaults if not provided.
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if len(c.Tokens) == 0 {
		vb.RequiredField("Tokens")
	}
	for token, player := range c.Tokens {
		if token == "" || player == "" {
			vb.InvalidField("Tokens", "tokens and player ids must be non-empty")
			break
		}
	}
	if c.ShinyOdds < 0 {
		vb.InvalidField("ShinyOdds", "must not be negative")
	}
	if err := vb.Build(); err != nil {
		return err
	}

	if c.Roller == nil {
		c.Roller = dice.DefaultRoller
	}
	if c.Locations == nil {
		c.Locations = DefaultLocations()
	}
	if c.Balls == nil {
		c.Balls = DefaultBalls()
	}
	if c.StartingInventory == nil {
		c.StartingInventory = DefaultInventory()
	}
	if c.ShinyOdds == 0 {
		c.ShinyOdds = defaultShinyOdds
	}
	return nil
}

// wild is the encounter a player currently faces
type wild struct {
	species    Species
	locationID string
	shiny      bool
}

func (w *wild) GetID() string   { return w.species.ID }
func (w *wild) GetType() string { return "pokemon" }

var _ core.Entity = (*wild)(nil)

// Catch is a pokémon a player has caught
type Catch struct {
	PokemonID  string
	Name       string
	LocationID string
	BallID     string
	Shiny      bool
	CaughtAt   time.Time
}

// Server implements the backend endpoints in memory
type Server struct {
	tokens    map[string]string
	roller    dice.Roller
	locations map[string][]Species
	balls     []Ball
	starting  map[string]int
	shinyOdds int
	omitBalls bool

	mu          sync.Mutex
	inventories map[string]map[string]int
	encounters  map[string]*wild
	catches     map[string][]Catch
}

// New creates a sandbox backend
func New(cfg *Config) (*Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &Server{
		tokens:      cfg.Tokens,
		roller:      cfg.Roller,
		locations:   cfg.Locations,
		balls:       cfg.Balls,
		starting:    cfg.StartingInventory,
		shinyOdds:   cfg.ShinyOdds,
		omitBalls:   cfg.OmitEncounterInventory,
		inventories: make(map[string]map[string]int),
		encounters:  make(map[string]*wild),
		catches:     make(map[string][]Catch),
	}, nil
}

// Handler returns the HTTP routes
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	r.Use(logRequests)

	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	api := r.NewRoute().Subrouter()
	api.Use(s.authenticate)
	api.HandleFunc("/location/{locationId}/encounter", s.handleEncounter).Methods(http.MethodGet)
	api.HandleFunc("/item/my-pokeballs", s.handleMyPokeballs).Methods(http.MethodGet)
	api.HandleFunc("/pokemon/{pokemonId}/catch", s.handleCatch).Methods(http.MethodPost)

	return r
}

// Catches returns the pokémon a player has caught, oldest first
func (s *Server) Catches(playerID string) []Catch {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Catch, len(s.catches[playerID]))
	copy(out, s.catches[playerID])
	return out
}

// Quantity returns how many of a ball a player owns
func (s *Server) Quantity(playerID, ballID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inventoryLocked(playerID)[ballID]
}

type playerKey struct{}

func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		player, known := s.tokens[token]
		if !ok || !known {
			writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid or missing token")
			return
		}
		next.ServeHTTP(w, r.WithContext(withPlayer(r.Context(), player)))
	})
}

func (s *Server) handleEncounter(w http.ResponseWriter, r *http.Request) {
	player := playerFrom(r.Context())
	locationID := mux.Vars(r)["locationId"]

	pool := s.locations[locationID]
	if len(pool) == 0 {
		writeError(w, http.StatusNotFound, "LOCATION_NOT_FOUND", "Location not found")
		return
	}

	pick, err := s.roller.Roll(len(pool))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "ROLL_FAILED", "Could not generate an encounter")
		return
	}
	shinyRoll, err := s.roller.Roll(s.shinyOdds)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "ROLL_FAILED", "Could not generate an encounter")
		return
	}

	encounter := &wild{
		species:    pool[pick-1],
		locationID: locationID,
		shiny:      shinyRoll == 1,
	}

	s.mu.Lock()
	s.encounters[player] = encounter
	inventory := s.inventoryLocked(player)
	payload := &backend.EncounterPayload{
		Pokemon: &backend.PokemonPayload{
			ID:          backend.FlexID(encounter.GetID()),
			Name:        encounter.species.Name,
			SpriteURL:   encounter.species.SpriteURL,
			CatchChance: &encounter.species.CatchChance,
		},
		IsShiny: &encounter.shiny,
	}
	if !s.omitBalls {
		for _, b := range s.balls {
			qty := inventory[b.ID]
			bonus := b.Bonus
			payload.Pokeballs = append(payload.Pokeballs, backend.EncounterPokeballPayload{
				Item: &backend.ItemPayload{
					ID:               backend.FlexID(b.ID),
					Name:             b.Name,
					SpriteURL:        b.SpriteURL,
					CatchChanceBonus: &bonus,
				},
				Quantity: &qty,
			})
		}
	}
	s.mu.Unlock()

	slog.Info("Sandbox encounter generated",
		"player_id", player,
		"location_id", locationID,
		"pokemon_id", encounter.GetID(),
		"shiny", encounter.shiny,
	)

	writeJSON(w, http.StatusOK, payload)
}

func (s *Server) handleMyPokeballs(w http.ResponseWriter, r *http.Request) {
	player := playerFrom(r.Context())

	s.mu.Lock()
	inventory := s.inventoryLocked(player)
	payload := &backend.UserPokeballsPayload{
		UserPokeballs: make([]backend.UserPokeballPayload, 0, len(s.balls)),
	}
	for _, b := range s.balls {
		qty := inventory[b.ID]
		bonus := b.Bonus
		payload.UserPokeballs = append(payload.UserPokeballs, backend.UserPokeballPayload{
			ID:               backend.FlexID(b.ID),
			Name:             b.Name,
			SpriteURL:        b.SpriteURL,
			Quantity:         &qty,
			CaptureBonusRate: &bonus,
		})
	}
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, payload)
}

func (s *Server) handleCatch(w http.ResponseWriter, r *http.Request) {
	player := playerFrom(r.Context())
	pokemonID := mux.Vars(r)["pokemonId"]

	var req backend.CatchRequestPayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_BODY", "Invalid request body")
		return
	}

	ball, ok := s.ball(req.ItemID)
	if !ok {
		writeError(w, http.StatusBadRequest, "UNKNOWN_ITEM", "Unknown pokeball")
		return
	}

	s.mu.Lock()
	encounter := s.encounters[player]
	if encounter == nil || encounter.GetID() != pokemonID || encounter.locationID != req.LocationID {
		s.mu.Unlock()
		writeError(w, http.StatusNotFound, "ENCOUNTER_NOT_FOUND", "No matching encounter")
		return
	}
	inventory := s.inventoryLocked(player)
	if inventory[ball.ID] <= 0 {
		s.mu.Unlock()
		writeError(w, http.StatusBadRequest, "NO_POKEBALL", "You have no "+ball.Name+" left")
		return
	}
	inventory[ball.ID]--
	delete(s.encounters, player)
	s.mu.Unlock()

	roll, err := s.roller.Roll(percentDie)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "ROLL_FAILED", "Could not resolve the capture")
		return
	}
	chance := math.Max(0, math.Min(100, math.Round(encounter.species.CatchChance+ball.Bonus)))
	captured := float64(roll) <= chance

	if captured {
		s.mu.Lock()
		s.catches[player] = append(s.catches[player], Catch{
			PokemonID:  encounter.GetID(),
			Name:       encounter.species.Name,
			LocationID: encounter.locationID,
			BallID:     ball.ID,
			Shiny:      encounter.shiny,
			CaughtAt:   time.Now(),
		})
		s.mu.Unlock()
	}

	slog.Info("Sandbox capture resolved",
		"player_id", player,
		"pokemon_id", pokemonID,
		"ball_id", ball.ID,
		"roll", roll,
		"chance", chance,
		"captured", captured,
	)

	writeJSON(w, http.StatusOK, &backend.CatchResponsePayload{Captured: captured})
}

func (s *Server) ball(id string) (Ball, bool) {
	for _, b := range s.balls {
		if b.ID == id {
			return b, true
		}
	}
	return Ball{}, false
}

func (s *Server) inventoryLocked(player string) map[string]int {
	inv, ok := s.inventories[player]
	if !ok {
		inv = make(map[string]int, len(s.starting))
		for id, qty := range s.starting {
			inv[id] = qty
		}
		s.inventories[player] = inv
	}
	return inv
}
