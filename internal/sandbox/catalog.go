package sandbox

// Species is a pokémon that can appear in the wild
type Species struct {
	ID          string
	Name        string
	SpriteURL   string
	CatchChance float64
}

// Ball is a pokeball item the sandbox hands out
type Ball struct {
	ID        string
	Name      string
	SpriteURL string
	Bonus     float64
}

const spriteBase = "https://raw.githubusercontent.com/PokeAPI/sprites/master/sprites"

func pokemonSprite(id string) string {
	return spriteBase + "/pokemon/" + id + ".png"
}

func itemSprite(name string) string {
	return spriteBase + "/items/" + name + ".png"
}

// DefaultLocations is the built-in spawn table
func DefaultLocations() map[string][]Species {
	return map[string][]Species{
		"route-1": {
			{ID: "16", Name: "Pidgey", SpriteURL: pokemonSprite("16"), CatchChance: 60},
			{ID: "19", Name: "Rattata", SpriteURL: pokemonSprite("19"), CatchChance: 60},
			{ID: "25", Name: "Pikachu", SpriteURL: pokemonSprite("25"), CatchChance: 35},
		},
		"viridian-forest": {
			{ID: "10", Name: "Caterpie", SpriteURL: pokemonSprite("10"), CatchChance: 70},
			{ID: "13", Name: "Weedle", SpriteURL: pokemonSprite("13"), CatchChance: 70},
			{ID: "25", Name: "Pikachu", SpriteURL: pokemonSprite("25"), CatchChance: 30},
		},
		"mt-moon": {
			{ID: "41", Name: "Zubat", SpriteURL: pokemonSprite("41"), CatchChance: 55},
			{ID: "74", Name: "Geodude", SpriteURL: pokemonSprite("74"), CatchChance: 45},
			{ID: "35", Name: "Clefairy", SpriteURL: pokemonSprite("35"), CatchChance: 20},
		},
	}
}

// DefaultBalls is the built-in pokeball catalog
func DefaultBalls() []Ball {
	return []Ball{
		{ID: "1", Name: "Poke Ball", SpriteURL: itemSprite("poke-ball"), Bonus: 0},
		{ID: "2", Name: "Great Ball", SpriteURL: itemSprite("great-ball"), Bonus: 15},
		{ID: "3", Name: "Ultra Ball", SpriteURL: itemSprite("ultra-ball"), Bonus: 30},
	}
}

// DefaultInventory is what a new player starts with
func DefaultInventory() map[string]int {
	return map[string]int{
		"1": 10,
		"2": 3,
		"3": 0,
	}
}
