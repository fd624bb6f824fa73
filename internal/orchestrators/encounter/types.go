package encounter

import "github.com/KirkDiggler/rpg-toolkit/core"

// creatureEntityType is the rpg-toolkit entity type of a wild pokémon
const creatureEntityType = "pokemon"

// Creature is the wild pokémon of an encounter
type Creature struct {
	ID        string
	Name      string
	SpriteURL string
	// IsShiny marks the rare variant; it only changes how the creature looks
	IsShiny bool
	// CatchRate is the server's base capture probability in percent, nil when unknown
	CatchRate *float64
}

// GetID implements core.Entity
func (c *Creature) GetID() string {
	return c.ID
}

// GetType implements core.Entity
func (c *Creature) GetType() string {
	return creatureEntityType
}

var _ core.Entity = (*Creature)(nil)

// Tool is a pokeball the player can throw
type Tool struct {
	ID        string
	Name      string
	SpriteURL string
	Quantity  int
	// Bonus is added to the creature's base rate, in percent
	Bonus float64
}

// Session is one encounter, from load until the player leaves the screen
type Session struct {
	ID         string
	LocationID string
	Creature   *Creature
	// Tools keeps the order the backend returned
	Tools          []*Tool
	SelectedToolID string
}

// Tool returns the tool with the given id, or nil
func (s *Session) Tool(id string) *Tool {
	if id == "" {
		return nil
	}
	for _, t := range s.Tools {
		if t.ID == id {
			return t
		}
	}
	return nil
}

// SelectedTool returns the selected tool, or nil
func (s *Session) SelectedTool() *Tool {
	return s.Tool(s.SelectedToolID)
}

// Rate is the displayed capture percentage for the current selection
func (s *Session) Rate() int {
	var base *float64
	if s.Creature != nil {
		base = s.Creature.CatchRate
	}
	return EstimateRate(base, s.SelectedTool())
}

func (s *Session) clone() *Session {
	out := *s
	if s.Creature != nil {
		c := *s.Creature
		if s.Creature.CatchRate != nil {
			rate := *s.Creature.CatchRate
			c.CatchRate = &rate
		}
		out.Creature = &c
	}
	out.Tools = make([]*Tool, len(s.Tools))
	for i, t := range s.Tools {
		tool := *t
		out.Tools[i] = &tool
	}
	return &out
}

// View is a snapshot of the encounter screen
type View struct {
	Session *Session
	// Rate is derived from the creature and the selected tool on every snapshot
	Rate       int
	Resolving  bool
	CanCapture bool
	CanFlee    bool
}

// Outcome is how a capture attempt ended
type Outcome string

// Capture outcomes
const (
	OutcomeIgnored  Outcome = "ignored"
	OutcomeCaptured Outcome = "captured"
	OutcomeEscaped  Outcome = "escaped"
)

// LoadInput defines the request for loading an encounter
type LoadInput struct {
	LocationID string
}

// LoadOutput defines the response for loading an encounter
type LoadOutput struct {
	Session *Session
}

// OpenInput defines the request for entering the encounter screen
type OpenInput struct {
	LocationID string
}

// OpenOutput defines the response for entering the encounter screen
type OpenOutput struct {
	View *View
}

// SelectToolInput defines the request for choosing a pokeball
type SelectToolInput struct {
	// SessionID must name the live session; selections for older sessions are rejected
	SessionID string
	ToolID    string
}

// SelectToolOutput defines the response for choosing a pokeball
type SelectToolOutput struct {
	View *View
}

// CaptureInput defines the request for throwing the selected pokeball
type CaptureInput struct{}

// CaptureOutput defines the result of a capture attempt.
// Ignored is set when another attempt was already resolving.
type CaptureOutput struct {
	Outcome Outcome
	Ignored bool
}

// FleeInput defines the request for running away
type FleeInput struct{}

// FleeOutput defines the result of running away.
// Ignored is set when a capture was resolving and the flee had no effect.
type FleeOutput struct {
	Ignored bool
}
