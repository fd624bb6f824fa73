// Package navigation defines how the encounter flow leaves its screen
package navigation

//go:generate mockgen -destination=mock/mock_navigator.go -package=navigationmock github.com/KirkDiggler/pokequest/internal/navigation Navigator

// Navigator moves the player between screens
type Navigator interface {
	// GoHome replaces the current screen with home so it cannot be revisited with back
	GoHome()
}

// HomeFunc adapts a plain function to Navigator
type HomeFunc func()

// GoHome calls f
func (f HomeFunc) GoHome() {
	f()
}
