package backend

import (
	"bytes"
	"encoding/json"
	"log/slog"
)

// FlexID decodes an identifier sent either as a JSON string or a JSON number
type FlexID string

// UnmarshalJSON implements json.Unmarshaler
func (f *FlexID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*f = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = FlexID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*f = FlexID(n.String())
	return nil
}

// PokemonPayload is the pokémon object of GET /location/{id}/encounter
type PokemonPayload struct {
	ID          FlexID   `json:"id,omitempty"`
	Name        string   `json:"name,omitempty"`
	SpriteURL   string   `json:"spriteUrl,omitempty"`
	CatchChance *float64 `json:"catchChance,omitempty"`
	IsShiny     *bool    `json:"isShiny,omitempty"`
}

// ItemPayload is the item half of an encounter pokeball entry
type ItemPayload struct {
	ID               FlexID   `json:"id"`
	Name             string   `json:"name"`
	SpriteURL        string   `json:"spriteUrl"`
	CatchChanceBonus *float64 `json:"catchChanceBonus,omitempty"`
}

// EncounterPokeballPayload is one inventory entry embedded in an encounter
type EncounterPokeballPayload struct {
	Item     *ItemPayload `json:"item"`
	Quantity *int         `json:"quantity,omitempty"`
}

// EncounterPayload is the body of GET /location/{id}/encounter.
// Older backends sent the pokémon fields at the top level instead of under "pokemon".
type EncounterPayload struct {
	Pokemon   *PokemonPayload            `json:"pokemon,omitempty"`
	IsShiny   *bool                      `json:"isShiny,omitempty"`
	Pokeballs []EncounterPokeballPayload `json:"pokeballs,omitempty"`

	PokemonPayload
}

// UserPokeballPayload is one entry of GET /item/my-pokeballs.
// CaptureBonusRate is canonical; Bonus and BonusCaptureRate are deprecated aliases.
type UserPokeballPayload struct {
	ID               FlexID   `json:"id"`
	Name             string   `json:"name"`
	SpriteURL        string   `json:"spriteUrl"`
	Quantity         *int     `json:"quantity,omitempty"`
	CaptureBonusRate *float64 `json:"captureBonusRate,omitempty"`
	Bonus            *float64 `json:"bonus,omitempty"`
	BonusCaptureRate *float64 `json:"bonusCaptureRate,omitempty"`
}

// UserPokeballsPayload is the wrapped form of GET /item/my-pokeballs
type UserPokeballsPayload struct {
	UserPokeballs []UserPokeballPayload `json:"userPokeballs"`
}

// CatchRequestPayload is the body of POST /pokemon/{id}/catch
type CatchRequestPayload struct {
	LocationID string `json:"locationId"`
	ItemID     string `json:"itemId"`
	IsShiny    bool   `json:"isShiny"`
}

// CatchResponsePayload is the response of POST /pokemon/{id}/catch
type CatchResponsePayload struct {
	Captured bool `json:"captured"`
}

// ErrorBody is the error half of the failure envelope
type ErrorBody struct {
	Message string `json:"message"`
	Code    string `json:"code"`
}

// ErrorEnvelope is the backend's failure body
type ErrorEnvelope struct {
	Success bool       `json:"success"`
	Error   *ErrorBody `json:"error,omitempty"`
}

// normalizeEncounter maps an encounter body onto the target schema:
// pokemon object first, top-level fields second; top-level isShiny wins over pokemon.isShiny.
func normalizeEncounter(p *EncounterPayload) *GetEncounterOutput {
	src := p.Pokemon
	if src == nil {
		src = &p.PokemonPayload
	}

	shiny := false
	switch {
	case p.IsShiny != nil:
		shiny = *p.IsShiny
	case src.IsShiny != nil:
		shiny = *src.IsShiny
	}

	out := &GetEncounterOutput{
		Pokemon: &PokemonData{
			ID:          string(src.ID),
			Name:        src.Name,
			SpriteURL:   src.SpriteURL,
			IsShiny:     shiny,
			CatchChance: src.CatchChance,
		},
	}

	for _, b := range p.Pokeballs {
		if b.Item == nil {
			slog.Debug("Skipping encounter pokeball without item")
			continue
		}
		out.Pokeballs = append(out.Pokeballs, &PokeballData{
			ID:        string(b.Item.ID),
			Name:      b.Item.Name,
			SpriteURL: b.Item.SpriteURL,
			Quantity:  quantity(b.Quantity),
			Bonus:     valueOr(b.Item.CatchChanceBonus, 0),
		})
	}

	return out
}

// decodeUserPokeballs accepts either a bare array or {"userPokeballs": [...]}
func decodeUserPokeballs(body []byte) ([]UserPokeballPayload, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var list []UserPokeballPayload
		if err := json.Unmarshal(trimmed, &list); err != nil {
			return nil, err
		}
		return list, nil
	}

	var wrapped UserPokeballsPayload
	if err := json.Unmarshal(trimmed, &wrapped); err != nil {
		return nil, err
	}
	return wrapped.UserPokeballs, nil
}

func normalizeUserPokeball(b UserPokeballPayload) *PokeballData {
	return &PokeballData{
		ID:        string(b.ID),
		Name:      b.Name,
		SpriteURL: b.SpriteURL,
		Quantity:  quantity(b.Quantity),
		Bonus:     userPokeballBonus(b),
	}
}

func userPokeballBonus(b UserPokeballPayload) float64 {
	if b.CaptureBonusRate != nil {
		return *b.CaptureBonusRate
	}
	if b.Bonus != nil {
		slog.Debug("Pokeball bonus read from deprecated field", "field", "bonus", "pokeball_id", b.ID)
		return *b.Bonus
	}
	if b.BonusCaptureRate != nil {
		slog.Debug("Pokeball bonus read from deprecated field", "field", "bonusCaptureRate", "pokeball_id", b.ID)
		return *b.BonusCaptureRate
	}
	return 0
}

func quantity(q *int) int {
	if q == nil || *q < 0 {
		return 0
	}
	return *q
}

func valueOr(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}
