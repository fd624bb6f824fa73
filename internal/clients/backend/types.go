package backend

// PokemonData is the normalized wild pokémon of an encounter
type PokemonData struct {
	ID        string
	Name      string
	SpriteURL string
	IsShiny   bool
	// CatchChance is the base capture probability in percent, nil when the backend omits it
	CatchChance *float64
}

// PokeballData is a normalized pokeball inventory entry
type PokeballData struct {
	ID        string
	Name      string
	SpriteURL string
	Quantity  int
	// Bonus is added to the pokémon's base catch chance, in percent
	Bonus float64
}

// GetEncounterInput defines the request for generating an encounter at a location
type GetEncounterInput struct {
	Token      string
	LocationID string
}

// GetEncounterOutput defines the response for generating an encounter.
// Pokeballs is empty when the backend omitted the inventory.
type GetEncounterOutput struct {
	Pokemon   *PokemonData
	Pokeballs []*PokeballData
}

// ListMyPokeballsInput defines the request for the caller's pokeball inventory
type ListMyPokeballsInput struct {
	Token string
}

// ListMyPokeballsOutput defines the response for the caller's pokeball inventory
type ListMyPokeballsOutput struct {
	Pokeballs []*PokeballData
}

// CatchPokemonInput defines the request for a capture attempt
type CatchPokemonInput struct {
	Token      string
	PokemonID  string
	LocationID string
	ItemID     string
	IsShiny    bool
}

// CatchPokemonOutput defines the backend's capture decision
type CatchPokemonOutput struct {
	Captured bool
}
